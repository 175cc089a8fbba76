package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListUsers returns every account as {id, username} for the contact list.
func (h *Handler) ListUsers(c *gin.Context) {
	accounts, err := h.Storage.ListAccounts()
	if err != nil {
		log.Printf("ERROR: Failed to list users: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, accounts)
}
