package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finstock/finstock_backend/internal/core/ports/services"
	"github.com/finstock/finstock_backend/internal/dto"
	"github.com/finstock/finstock_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// auditHandler handles HTTP requests related to the product audit trail.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

// registerAuditRoutes registers routes related to inventory audits.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	audits := rg.Group("/stock-audits")
	{
		audits.POST("", h.recordStockCorrection)
		audits.GET("/:id", h.getAudit)
		audits.GET("", h.listAudits)
	}
}

func (h *auditHandler) recordStockCorrection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordStockCorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordStockCorrection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing actor identity"})
		return
	}

	audit, err := h.auditService.RecordStockCorrection(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "record stock correction")
		return
	}

	logger.Info("Stock correction recorded", slog.String("audit_id", audit.AuditID))
	c.JSON(http.StatusCreated, dto.ToAuditTrailResponse(audit))
}

func (h *auditHandler) getAudit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	audit, err := h.auditService.GetAuditByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "retrieve audit entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditTrailResponse(audit))
}

// listAudits filters by either storage or variation; exactly one is required.
func (h *auditHandler) listAudits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	storageID := c.Query("storageID")
	variationID := c.Query("variationID")
	if (storageID == "") == (variationID == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Exactly one of storageID or variationID is required"})
		return
	}

	var params dto.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listAudits", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	if storageID != "" {
		entries, err := h.auditService.ListAuditsByStorage(c.Request.Context(), storageID, params.Limit, params.Offset)
		if err != nil {
			respondServiceError(c, logger, err, "list audit entries")
			return
		}
		c.JSON(http.StatusOK, gin.H{"audits": dto.ToListAuditTrailResponse(entries)})
		return
	}

	entries, err := h.auditService.ListAuditsByVariation(c.Request.Context(), variationID, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "list audit entries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"audits": dto.ToListAuditTrailResponse(entries)})
}
