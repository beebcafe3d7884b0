package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pottyspotty/internal/middleware"
	"pottyspotty/internal/store"
	"pottyspotty/internal/submission"
)

func NewRouter(s store.RestroomStore, svc *submission.Service, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS())

	r.GET("/health", Health(s))

	// The browser client calls /api/restrooms; /restrooms is kept for direct use.
	for _, prefix := range []string{"/restrooms", "/api/restrooms"} {
		g := r.Group(prefix)
		g.GET("", GetRestrooms(s, logger))
		g.POST("", CreateRestroom(svc, s, logger))
		g.GET("/in-bounds", GetRestroomsInBounds(s, logger))
		g.GET("/nearby", GetNearbyRestrooms(s, logger))
		g.GET("/check-exists", CheckRestroomExists(s, logger))
		g.GET("/search", SearchRestrooms(s, logger))
	}

	return r
}
