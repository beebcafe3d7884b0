package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pottyspotty/internal/search"
	"pottyspotty/internal/store"
)

/*
GET /restrooms
- no query           -> every restroom
- bounds=a,b,c,d     -> restrooms inside minLat,maxLat,minLng,maxLng
*/
func GetRestrooms(s store.RestroomStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /restrooms"
		defer handlePanic(c, logger, route)

		logger.Debug("hit", zap.String("route", route), zap.String("bounds", c.Query("bounds")))

		if err := ensureDBConnection(c.Request.Context(), s); err != nil {
			respondWithError(c, logger, http.StatusServiceUnavailable, route, codeDatabaseUnavailable, "database unavailable")
			return
		}

		if raw, ok := c.GetQuery("bounds"); ok {
			bounds, err := parseBoundsList(raw)
			if err != nil {
				respondWithDomainError(c, logger, route, err)
				return
			}
			restrooms, err := s.ListInBounds(c.Request.Context(), bounds)
			if err != nil {
				respondWithDomainError(c, logger, route, err)
				return
			}
			logger.Debug("returning restrooms", zap.String("route", route), zap.Int("count", len(restrooms)))
			c.JSON(http.StatusOK, restrooms)
			return
		}

		restrooms, err := s.ListAll(c.Request.Context())
		if err != nil {
			respondWithDomainError(c, logger, route, err)
			return
		}

		logger.Debug("returning restrooms", zap.String("route", route), zap.Int("count", len(restrooms)))
		c.JSON(http.StatusOK, restrooms)
	}
}

/*
GET /restrooms/in-bounds?minLat&maxLat&minLng&maxLng
*/
func GetRestroomsInBounds(s store.RestroomStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /restrooms/in-bounds"
		defer handlePanic(c, logger, route)

		bounds, err := parseBounds(c.Query("minLat"), c.Query("maxLat"), c.Query("minLng"), c.Query("maxLng"))
		if err != nil {
			respondWithDomainError(c, logger, route, err)
			return
		}

		if err := ensureDBConnection(c.Request.Context(), s); err != nil {
			respondWithError(c, logger, http.StatusServiceUnavailable, route, codeDatabaseUnavailable, "database unavailable")
			return
		}

		restrooms, err := s.ListInBounds(c.Request.Context(), bounds)
		if err != nil {
			respondWithDomainError(c, logger, route, err)
			return
		}
		c.JSON(http.StatusOK, restrooms)
	}
}

/*
GET /restrooms/nearby?lat&lng&maxDistance=10&limit=50
- nearest first, at most 50
*/
func GetNearbyRestrooms(s store.RestroomStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /restrooms/nearby"
		defer handlePanic(c, logger, route)

		lat, err := parseFloatParam("lat", c.Query("lat"))
		if err != nil {
			respondWithDomainError(c, logger, route, err)
			return
		}
		lng, err := parseFloatParam("lng", c.Query("lng"))
		if err != nil {
			respondWithDomainError(c, logger, route, err)
			return
		}
		maxDistance, err := parseDistanceParam("maxDistance", c.Query("maxDistance"), store.DefaultNearbyDistanceKm)
		if err != nil {
			respondWithDomainError(c, logger, route, err)
			return
		}
		limit, err := parseOptionalIntParam("limit", c.Query("limit"), store.MaxNearbyResults)
		if err != nil {
			respondWithDomainError(c, logger, route, err)
			return
		}

		if err := ensureDBConnection(c.Request.Context(), s); err != nil {
			respondWithError(c, logger, http.StatusServiceUnavailable, route, codeDatabaseUnavailable, "database unavailable")
			return
		}

		restrooms, err := s.ListNearby(c.Request.Context(), lat, lng, maxDistance, limit)
		if err != nil {
			respondWithDomainError(c, logger, route, err)
			return
		}
		c.JSON(http.StatusOK, restrooms)
	}
}

/*
GET /restrooms/check-exists?name&street&city
*/
func CheckRestroomExists(s store.RestroomStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /restrooms/check-exists"
		defer handlePanic(c, logger, route)

		name := strings.TrimSpace(c.Query("name"))
		street := strings.TrimSpace(c.Query("street"))
		city := strings.TrimSpace(c.Query("city"))
		if name == "" || street == "" || city == "" {
			respondWithError(c, logger, http.StatusBadRequest, route, codeInvalidArgument, "name, street, and city are required")
			return
		}

		if err := ensureDBConnection(c.Request.Context(), s); err != nil {
			respondWithError(c, logger, http.StatusServiceUnavailable, route, codeDatabaseUnavailable, "database unavailable")
			return
		}

		exists, err := s.Exists(c.Request.Context(), name, street, city)
		if err != nil {
			respondWithDomainError(c, logger, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"exists": exists})
	}
}

/*
GET /restrooms/search?q=
- same token matching as the list view search box
*/
func SearchRestrooms(s store.RestroomStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /restrooms/search"
		defer handlePanic(c, logger, route)

		query := c.Query("q")
		if strings.TrimSpace(query) == "" {
			c.JSON(http.StatusOK, search.Filter("", nil))
			return
		}

		if err := ensureDBConnection(c.Request.Context(), s); err != nil {
			respondWithError(c, logger, http.StatusServiceUnavailable, route, codeDatabaseUnavailable, "database unavailable")
			return
		}

		all, err := s.ListAll(c.Request.Context())
		if err != nil {
			respondWithDomainError(c, logger, route, err)
			return
		}

		results := search.Filter(query, all)
		logger.Debug("search", zap.String("route", route), zap.String("q", query), zap.Int("count", len(results)))
		c.JSON(http.StatusOK, results)
	}
}
