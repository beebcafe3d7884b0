package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pottyspotty/internal/store"
)

func handlePanic(c *gin.Context, logger *zap.Logger, route string) {
	if r := recover(); r != nil {
		logger.Error("panic recovered", zap.String("route", route), zap.Any("panic", r))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   codeInternal,
			"message": "internal server error",
		})
	}
}

func ensureDBConnection(ctx context.Context, s store.RestroomStore) error {
	return s.Ping(ctx)
}

func respondWithError(c *gin.Context, logger *zap.Logger, status int, route, code, message string) {
	logger.Info("returning error",
		zap.String("route", route),
		zap.Int("status", status),
		zap.String("code", code),
		zap.String("message", message),
	)
	c.AbortWithStatusJSON(status, gin.H{"error": code, "message": message})
}
