package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finstock/finstock_backend/internal/core/ports/services"
	"github.com/finstock/finstock_backend/internal/dto"
	"github.com/finstock/finstock_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// capitalHandler handles HTTP requests related to owner capital movements.
type capitalHandler struct {
	capitalService portssvc.CapitalSvcFacade
}

func newCapitalHandler(cs portssvc.CapitalSvcFacade) *capitalHandler {
	return &capitalHandler{capitalService: cs}
}

// registerCapitalRoutes registers routes related to owner capital movements.
func registerCapitalRoutes(rg *gin.RouterGroup, capitalService portssvc.CapitalSvcFacade) {
	h := newCapitalHandler(capitalService)

	capital := rg.Group("/capital-movements")
	{
		capital.POST("", h.createCapitalMovement)
		capital.GET("/:id", h.getCapitalMovement)
		capital.GET("", h.listCapitalMovements)
	}
}

func (h *capitalHandler) createCapitalMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCapitalMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCapitalMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing actor identity"})
		return
	}

	movement, err := h.capitalService.CreateCapitalMovement(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "create capital movement")
		return
	}

	logger.Info("Capital movement created", slog.String("movement_id", movement.MovementID))
	c.JSON(http.StatusCreated, dto.ToCapitalMovementResponse(movement))
}

func (h *capitalHandler) getCapitalMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movement, err := h.capitalService.GetCapitalMovementByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "retrieve capital movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToCapitalMovementResponse(movement))
}

func (h *capitalHandler) listCapitalMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID := c.Query("ownerID")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ownerID query parameter is required"})
		return
	}

	var params dto.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listCapitalMovements", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	movements, err := h.capitalService.ListCapitalMovementsByOwner(c.Request.Context(), ownerID, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "list capital movements")
		return
	}
	c.JSON(http.StatusOK, gin.H{"capitalMovements": dto.ToListCapitalMovementResponse(movements)})
}
