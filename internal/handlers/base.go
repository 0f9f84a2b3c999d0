package handlers

import (
	"context"
	"net/http"
	"time"

	"minitwit/internal/db"
	"minitwit/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const companyNamesCacheKey = "company:names"

// Handler carries the dependencies shared by every route.
type Handler struct {
	store   *db.Store
	cache   *utils.Cache
	perPage int
	log     zerolog.Logger
}

func NewHandler(store *db.Store, cache *utils.Cache, perPage int, log zerolog.Logger) *Handler {
	return &Handler{
		store:   store,
		cache:   cache,
		perPage: perPage,
		log:     log,
	}
}

// Render injects the flash messages queued for this session.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	session := sessions.Default(c)
	if flashes := session.Flashes(); len(flashes) > 0 {
		obj["Flashes"] = flashes
		if err := session.Save(); err != nil {
			_ = c.Error(err)
		}
	}
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// Flash queues a message for the next rendered page.
func Flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
	}
}

// storageError aborts the request with a bare 500; the logger middleware
// reports err.
func storageError(c *gin.Context, err error) {
	_ = c.AbortWithError(http.StatusInternalServerError, err)
}

// companyNames serves the navigation list, cached briefly.
func (h *Handler) companyNames(ctx context.Context) ([]string, error) {
	if cached, ok := h.cache.Get(companyNamesCacheKey).([]string); ok {
		return cached, nil
	}
	names, err := h.store.CompanyNames(ctx)
	if err != nil {
		return nil, err
	}
	h.cache.Set(companyNamesCacheKey, names, 30*time.Second)
	return names, nil
}
