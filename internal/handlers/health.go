package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pottyspotty/internal/store"
)

func Health(s store.RestroomStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ensureDBConnection(c.Request.Context(), s); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
