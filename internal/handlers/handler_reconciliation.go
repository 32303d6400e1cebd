package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/finstock/finstock_backend/internal/core/ports/services"
	"github.com/finstock/finstock_backend/internal/dto"
	"github.com/finstock/finstock_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles HTTP requests related to daily cash reconciliations.
type reconciliationHandler struct {
	reconService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconService: rs}
}

// registerReconciliationRoutes registers routes related to daily cash reconciliations.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconService)

	recons := rg.Group("/reconciliations")
	{
		recons.POST("/open", h.openDay)
		recons.POST("/:id/close", h.closeDay)
		recons.GET("/:id", h.getReconciliation)
		recons.GET("/state", h.getDayState)
	}

	rg.GET("/accounts/:id/reconciliations", h.listReconciliations)
}

func (h *reconciliationHandler) openDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for openDay", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing actor identity"})
		return
	}

	recon, err := h.reconService.OpenDay(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "open reconciliation")
		return
	}

	logger.Info("Reconciliation opened", slog.String("reconciliation_id", recon.ReconciliationID))
	c.JSON(http.StatusCreated, dto.ToReconciliationResponse(recon))
}

func (h *reconciliationHandler) closeDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reconciliationID := c.Param("id")

	var req dto.CloseDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for closeDay", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing actor identity"})
		return
	}

	recon, err := h.reconService.CloseDay(c.Request.Context(), reconciliationID, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "close reconciliation")
		return
	}

	logger.Info("Reconciliation closed", slog.String("reconciliation_id", reconciliationID))
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(recon))
}

func (h *reconciliationHandler) getReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recon, err := h.reconService.GetReconciliationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "retrieve reconciliation")
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(recon))
}

func (h *reconciliationHandler) getDayState(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Query("accountID")
	dateStr := c.Query("date")
	if accountID == "" || dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountID and date query parameters are required"})
		return
	}

	businessDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted YYYY-MM-DD"})
		return
	}

	recon, err := h.reconService.GetDayState(c.Request.Context(), accountID, businessDate)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve day state")
		return
	}
	if recon == nil {
		c.JSON(http.StatusOK, gin.H{"state": "NOT_OPENED"})
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(recon))
}

func (h *reconciliationHandler) listReconciliations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var params dto.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listReconciliations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	recons, err := h.reconService.ListReconciliationsByAccount(c.Request.Context(), accountID, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "list reconciliations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reconciliations": dto.ToListReconciliationResponse(recons)})
}
