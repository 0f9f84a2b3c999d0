package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"minitwit/internal/db"
	"minitwit/web"

	"github.com/gin-gonic/gin"
)

const (
	errCompanyNameMissing = "You have to enter a company name"
	errCompanyNameTaken   = "The company name is already taken"
)

func (h *Handler) ShowAddCompany(c *gin.Context) {
	Render(c, http.StatusOK, web.RegisterView, gin.H{"Title": "Add a company"})
}

// AddCompany registers a company. Validation failures re-render the form
// with an inline error and a 200.
func (h *Handler) AddCompany(c *gin.Context) {
	name := c.PostForm("company_name")
	if name == "" {
		Render(c, http.StatusOK, web.RegisterView, gin.H{
			"Title": "Add a company",
			"Error": errCompanyNameMissing,
		})
		return
	}

	company, err := h.store.CreateCompany(c.Request.Context(), name)
	if errors.Is(err, db.ErrCompanyNameTaken) {
		Render(c, http.StatusOK, web.RegisterView, gin.H{
			"Title":       "Add a company",
			"Error":       errCompanyNameTaken,
			"CompanyName": name,
		})
		return
	}
	if err != nil {
		storageError(c, err)
		return
	}

	h.cache.Delete(companyNamesCacheKey)
	h.log.Info().Int64("company_id", company.ID).Str("company_name", company.Name).Msg("company added")

	Flash(c, "add success")
	c.Redirect(http.StatusFound, "/"+url.PathEscape(company.Name))
}
