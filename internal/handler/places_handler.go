package handler

import (
	"net/http"
	"strings"

	"forknfriends/backend/internal/logger"
	"forknfriends/backend/internal/places"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlacesClient is the Foursquare client used by SearchPlaces. main wires the
// real one; tests point it at a fake server.
var PlacesClient *places.Client

// SearchPlaces godoc
// @Summary      Search restaurant candidates
// @Description  Proxies a free-text search to the Foursquare Places API to pre-fill the restaurant creation form.
// @Tags         places
// @Produce      json
// @Security     BearerAuth
// @Param        query    query string true  "Free-text search"
// @Param        location query string false "Location hint"
// @Success      200  {object}  map[string][]places.Place
// @Failure      400  {object}  ErrorResponse "Missing query"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /places/search [get]
func SearchPlaces(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter is required"})
		return
	}

	location := strings.TrimSpace(c.Query("location"))

	results, err := PlacesClient.Search(c.Request.Context(), query, location)
	if err != nil {
		logger.Log.Error("Foursquare search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search restaurants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
