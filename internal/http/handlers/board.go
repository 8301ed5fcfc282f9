package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Buckets returns the whole board: buckets ordered by position, each with its
// position-ordered task list. This is also the client's resync path after a
// failed optimistic move.
func (h *Handler) Buckets(c *gin.Context) {
	buckets, err := h.Board.Buckets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, buckets)
}
