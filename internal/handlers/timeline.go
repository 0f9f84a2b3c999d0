package handlers

import (
	"context"
	"errors"
	"net/http"

	"minitwit/internal/db"
	"minitwit/internal/models"
	"minitwit/web"

	"github.com/gin-gonic/gin"
)

// Timeline has no personalized feed; it always sends visitors to /public.
func (h *Handler) Timeline(c *gin.Context) {
	c.Redirect(http.StatusFound, "/public")
}

// PublicTimeline shows the latest messages of every company.
func (h *Handler) PublicTimeline(c *gin.Context) {
	ctx := c.Request.Context()

	messages, err := h.store.PublicTimeline(ctx, h.perPage)
	if err == nil {
		err = h.attachComments(ctx, messages)
	}
	if err != nil {
		storageError(c, err)
		return
	}
	companies, err := h.companyNames(ctx)
	if err != nil {
		storageError(c, err)
		return
	}

	Render(c, http.StatusOK, web.TimelineView, gin.H{
		"Title":     "Public Timeline",
		"Messages":  messages,
		"Companies": companies,
	})
}

// CompanyTimeline shows one company's messages, or a bare 404.
func (h *Handler) CompanyTimeline(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("company_name")

	company, err := h.store.CompanyByName(ctx, name)
	if errors.Is(err, db.ErrNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if err != nil {
		storageError(c, err)
		return
	}

	messages, err := h.store.CompanyTimeline(ctx, company.ID, h.perPage)
	if err == nil {
		err = h.attachComments(ctx, messages)
	}
	if err != nil {
		storageError(c, err)
		return
	}
	companies, err := h.companyNames(ctx)
	if err != nil {
		storageError(c, err)
		return
	}

	Render(c, http.StatusOK, web.TimelineView, gin.H{
		"Title":          company.Name + "'s Timeline",
		"Messages":       messages,
		"ProfileCompany": company,
		"Companies":      companies,
	})
}

func (h *Handler) attachComments(ctx context.Context, messages []models.TimelineEntry) error {
	ids := make([]int64, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	grouped, err := h.store.CommentsForMessages(ctx, ids)
	if err != nil {
		return err
	}
	for i := range messages {
		messages[i].Comments = grouped[messages[i].ID]
	}
	return nil
}
