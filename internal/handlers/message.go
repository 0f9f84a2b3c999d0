package handlers

import (
	"net/http"

	"minitwit/internal/utils"

	"github.com/gin-gonic/gin"
)

// AddMessage posts text for the company in the path. Empty text is ignored;
// either way the client is sent back to the timeline. The company id is not
// checked against the company table.
func (h *Handler) AddMessage(c *gin.Context) {
	companyID, err := utils.ParseID(c.Param("company_id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if text := c.PostForm("text"); text != "" {
		if _, err := h.store.CreateMessage(c.Request.Context(), companyID, text); err != nil {
			storageError(c, err)
			return
		}
		Flash(c, "add success")
	}
	c.Redirect(http.StatusFound, "/")
}
