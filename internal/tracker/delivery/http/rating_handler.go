package http

import (
	"net/http"
	"strconv"

	"golang-broker-tracker/internal/tracker/dto"
	"golang-broker-tracker/internal/tracker/repository"
	"golang-broker-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	defaultRatingsLimit = 50
	maxRatingsLimit     = 500
)

// RatingHandler handles HTTP requests for stock ratings.
type RatingHandler struct {
	ratingRepo repository.RatingRepository
	logger     *logger.Logger
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratingRepo repository.RatingRepository, logger *logger.Logger) *RatingHandler {
	return &RatingHandler{ratingRepo: ratingRepo, logger: logger}
}

// RegisterRoutes registers the rating routes to the Echo group.
func (h *RatingHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetRatings)
}

// GetRatings godoc
// @Summary List stock ratings
// @Description List recent stock ratings joined with their source article, newest first
// @Tags ratings
// @Produce  json
// @Param   broker  query   string  false   "Filter by broker name"
// @Param   limit   query   int     false   "Maximum rows to return (default 50, max 500)"
// @Success 200 {array} dto.RatingWithArticle
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /ratings [get]
func (h *RatingHandler) GetRatings(c echo.Context) error {
	limit := defaultRatingsLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
		}
		limit = parsed
	}
	if limit > maxRatingsLimit {
		limit = maxRatingsLimit
	}

	ratings, err := h.ratingRepo.FindWithArticles(c.Request().Context(), c.QueryParam("broker"), limit)
	if err != nil {
		h.logger.Error("Failed to list ratings", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list ratings"})
	}

	return c.JSON(http.StatusOK, ratings)
}
