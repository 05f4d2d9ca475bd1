package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"golang-broker-tracker/internal/tracker/dto"
	"golang-broker-tracker/internal/tracker/repository"
	"golang-broker-tracker/internal/tracker/service"
	"golang-broker-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RunHandler handles HTTP requests for ingestion runs.
type RunHandler struct {
	ingestionService service.IngestionService
	ingestionRunRepo repository.IngestionRunRepository
	logger           *logger.Logger
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(ingestionService service.IngestionService, ingestionRunRepo repository.IngestionRunRepository, logger *logger.Logger) *RunHandler {
	return &RunHandler{
		ingestionService: ingestionService,
		ingestionRunRepo: ingestionRunRepo,
		logger:           logger,
	}
}

// RegisterRoutes registers the run routes to the Echo group.
func (h *RunHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetRuns)
	g.POST("", h.TriggerRun)
}

// GetRuns godoc
// @Summary List ingestion runs
// @Description List recent ingestion runs, newest first
// @Tags runs
// @Produce  json
// @Param   limit   query   int     false   "Maximum rows to return (default 20)"
// @Success 200 {array} entity.IngestionRun
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /runs [get]
func (h *RunHandler) GetRuns(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
		}
		limit = parsed
	}

	runs, err := h.ingestionRunRepo.FindRecent(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list runs", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list runs"})
	}

	return c.JSON(http.StatusOK, runs)
}

// TriggerRun godoc
// @Summary Trigger an ingestion run
// @Description Run the pipeline and return its summary; rejected if a run is in progress
// @Tags runs
// @Produce  json
// @Success 200 {object} dto.RunSummary
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /runs [post]
func (h *RunHandler) TriggerRun(c echo.Context) error {
	// The run outlives the request; detach it from the request context so a
	// client disconnect does not abort the pipeline mid-write.
	summary, err := h.ingestionService.Run(context.Background())
	if err != nil {
		if errors.Is(err, service.ErrRunInProgress) {
			return c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("Triggered ingestion run failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Ingestion run failed"})
	}

	return c.JSON(http.StatusOK, summary)
}
