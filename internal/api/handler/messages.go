package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ConversationHistory returns every message between the caller and the
// user named in the path, in both directions, oldest first. This is how
// a receiver that was offline at send time catches up.
func (h *Handler) ConversationHistory(c *gin.Context) {
	claims, ok := h.claimsFromCookie(c)
	if !ok {
		return
	}

	otherID := c.Param("userId")
	messages, err := h.Storage.GetConversation(claims.UserID, otherID)
	if err != nil {
		log.Printf("ERROR: Failed to load conversation for %s: %v", claims.UserID, err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, messages)
}
