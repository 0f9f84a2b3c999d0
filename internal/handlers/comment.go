package handlers

import (
	"net/http"

	"minitwit/internal/models"
	"minitwit/internal/utils"

	"github.com/gin-gonic/gin"
)

type commentJSON struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Date int64  `json:"date"`
}

type commentsResponse struct {
	Comments []commentJSON `json:"comments"`
}

// ShowComments returns a message's comments in insertion order.
func (h *Handler) ShowComments(c *gin.Context) {
	messageID, err := utils.ParseID(c.Param("message_id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	comments, err := h.store.CommentsForMessage(c.Request.Context(), messageID)
	if err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentsResponse{Comments: toCommentJSON(comments)})
}

// AddComment stores the posted text, empty or not, and answers "success".
func (h *Handler) AddComment(c *gin.Context) {
	messageID, err := utils.ParseID(c.Param("message_id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if _, err := h.store.CreateComment(c.Request.Context(), messageID, c.PostForm("text")); err != nil {
		storageError(c, err)
		return
	}
	c.String(http.StatusOK, "success")
}

func toCommentJSON(comments []models.Comment) []commentJSON {
	out := make([]commentJSON, 0, len(comments))
	for _, cm := range comments {
		out = append(out, commentJSON{ID: cm.ID, Text: cm.Text, Date: cm.PubDate})
	}
	return out
}
