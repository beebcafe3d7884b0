package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pottyspotty/internal/store"
	"pottyspotty/internal/submission"
)

/*
POST /restrooms
- 201 created record
- 400 missing fields / geocode failure, 409 duplicate
*/
func CreateRestroom(svc *submission.Service, s store.RestroomStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /restrooms"
		defer handlePanic(c, logger, route)

		var req submission.Input
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, logger, route, err)
			return
		}

		if err := ensureDBConnection(c.Request.Context(), s); err != nil {
			respondWithError(c, logger, http.StatusServiceUnavailable, route, codeDatabaseUnavailable, "database unavailable")
			return
		}

		restroom, err := svc.Submit(c.Request.Context(), req)
		if err != nil {
			respondWithDomainError(c, logger, route, err)
			return
		}

		c.JSON(http.StatusCreated, restroom)
	}
}
