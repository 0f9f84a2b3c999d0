package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"minitwit/internal/db"
	"minitwit/internal/handlers"
	"minitwit/internal/router"
	"minitwit/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	engine *gin.Engine
	store  *db.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	store, err := db.Open(context.Background(), db.Options{
		URL:          filepath.Join(t.TempDir(), "minitwit.db"),
		MaxOpenConns: 4,
		Logger:       zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cache, err := utils.NewCache(16)
	require.NoError(t, err)

	engine, err := router.New(router.Options{
		Handler:       handlers.NewHandler(store, cache, 30, zerolog.Nop()),
		Logger:        zerolog.Nop(),
		SessionSecret: "test-secret",
	})
	require.NoError(t, err)
	return &testApp{engine: engine, store: store}
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) addCompany(t *testing.T, name string) int64 {
	t.Helper()
	w := a.post("/add_company", url.Values{"company_name": {name}})
	require.Equal(t, http.StatusFound, w.Code)
	company, err := a.store.CompanyByName(context.Background(), name)
	require.NoError(t, err)
	return company.ID
}

func TestRootRedirectsToPublic(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/public", w.Header().Get("Location"))
}

func TestAddCompanyThenTimeline(t *testing.T) {
	app := newTestApp(t)

	w := app.post("/add_company", url.Values{"company_name": {"acme"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/acme", w.Header().Get("Location"))

	w = app.get("/acme")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "acme&#39;s Timeline")
	assert.Contains(t, body, "There's no message so far.")
	assert.Contains(t, body, `action="/add_message/`)
}

func TestAddCompanyShowsForm(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/add_company")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="company_name"`)
	assert.NotContains(t, w.Body.String(), "Error:")
}

func TestAddCompanyEmptyName(t *testing.T) {
	app := newTestApp(t)

	w := app.post("/add_company", url.Values{"company_name": {""}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You have to enter a company name")

	names, err := app.store.CompanyNames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestAddCompanyDuplicate(t *testing.T) {
	app := newTestApp(t)
	app.addCompany(t, "acme")

	w := app.post("/add_company", url.Values{"company_name": {"acme"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The company name is already taken")

	names, err := app.store.CompanyNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"acme"}, names)
}

func TestUnknownCompanyIs404(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/nonexistent")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestAddMessageAppearsOnTop(t *testing.T) {
	app := newTestApp(t)
	id := app.addCompany(t, "acme")

	w := app.post(fmt.Sprintf("/add_message/%d", id), url.Values{"text": {"first post"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = app.post(fmt.Sprintf("/add_message/%d", id), url.Values{"text": {"hello"}})
	require.Equal(t, http.StatusFound, w.Code)

	entries, err := app.store.PublicTimeline(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "hello", entries[0].Text)

	w = app.get("/public")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "hello")
	assert.Less(t, strings.Index(body, "hello"), strings.Index(body, "first post"))
}

func TestAddMessageEmptyTextIsIgnored(t *testing.T) {
	app := newTestApp(t)
	id := app.addCompany(t, "acme")

	w := app.post(fmt.Sprintf("/add_message/%d", id), url.Values{"text": {""}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	entries, err := app.store.PublicTimeline(context.Background(), 30)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddMessageBadCompanyID(t *testing.T) {
	app := newTestApp(t)

	w := app.post("/add_message/abc", url.Values{"text": {"x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicTimelineCapsAtPageSize(t *testing.T) {
	app := newTestApp(t)
	id := app.addCompany(t, "acme")

	for i := 0; i < 35; i++ {
		_, err := app.store.CreateMessage(context.Background(), id, fmt.Sprintf("msg-%d", i))
		require.NoError(t, err)
	}

	w := app.get("/public")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, strings.Count(w.Body.String(), "data-message-id="))
}

func TestCommentsRoundTrip(t *testing.T) {
	app := newTestApp(t)

	w := app.post("/add/comment/5/", url.Values{"text": {"nice"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", w.Body.String())

	first := app.get("/show/comments/5/")
	require.Equal(t, http.StatusOK, first.Code)

	var resp struct {
		Comments []struct {
			ID   int64  `json:"id"`
			Text string `json:"text"`
			Date int64  `json:"date"`
		} `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &resp))
	require.Len(t, resp.Comments, 1)
	assert.Equal(t, "nice", resp.Comments[0].Text)
	assert.NotZero(t, resp.Comments[0].Date)

	second := app.get("/show/comments/5/")
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestTimelinesShowComments(t *testing.T) {
	app := newTestApp(t)
	id := app.addCompany(t, "acme")
	app.post(fmt.Sprintf("/add_message/%d", id), url.Values{"text": {"quiet"}})
	app.post(fmt.Sprintf("/add_message/%d", id), url.Values{"text": {"busy"}})

	entries, err := app.store.PublicTimeline(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	busy := entries[0].ID

	w := app.post(fmt.Sprintf("/add/comment/%d/", busy), url.Values{"text": {"great <news>"}})
	require.Equal(t, http.StatusOK, w.Code)

	for _, path := range []string{"/public", "/acme"} {
		w = app.get(path)
		require.Equal(t, http.StatusOK, w.Code, path)
		body := w.Body.String()
		assert.Contains(t, body, "great &lt;news&gt;", path)
		assert.Equal(t, 1, strings.Count(body, "great &lt;news&gt;"), path)
		assert.Contains(t, body, fmt.Sprintf(`data-src="/show/comments/%d/"`, busy), path)
		assert.Contains(t, body, `src="/static/comments.js"`, path)
	}
}

func TestShowCommentsEmpty(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/show/comments/1/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"comments":[]}`, w.Body.String())
}

func TestAddCommentBadMessageID(t *testing.T) {
	app := newTestApp(t)

	w := app.post("/add/comment/nope/", url.Values{"text": {"x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPingAndHealth(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/xxoo")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"a":1}`, w.Body.String())

	w = app.get("/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStorageFailureIs500(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.store.Close())

	w := app.get("/public")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = app.get("/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestFlashAfterAddCompany(t *testing.T) {
	app := newTestApp(t)

	w := app.post("/add_company", url.Values{"company_name": {"acme"}})
	require.Equal(t, http.StatusFound, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/acme", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "add success")
}

func TestNavigationListsNewCompany(t *testing.T) {
	app := newTestApp(t)
	app.addCompany(t, "alpha")

	w := app.get("/public")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `href="/alpha"`)

	app.addCompany(t, "beta")
	w = app.get("/public")
	assert.Contains(t, w.Body.String(), `href="/beta"`)
}

func TestStaticAndMetrics(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/static/style.css")
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.get("/static/comments.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dataset.src")

	w = app.get("/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "minitwit_http_requests_total")
}
