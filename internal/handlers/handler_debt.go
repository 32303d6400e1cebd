package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finstock/finstock_backend/internal/core/ports/services"
	"github.com/finstock/finstock_backend/internal/dto"
	"github.com/finstock/finstock_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// debtHandler handles HTTP requests related to purchase debt.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
}

func newDebtHandler(ds portssvc.DebtSvcFacade) *debtHandler {
	return &debtHandler{debtService: ds}
}

// registerDebtRoutes registers routes related to purchase debt tracking.
func registerDebtRoutes(rg *gin.RouterGroup, debtService portssvc.DebtSvcFacade) {
	h := newDebtHandler(debtService)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("/payments", h.recordPayment)
		purchases.GET("/unpaid", h.listUnpaidPurchases)
		purchases.GET("/:id/debt", h.getPurchaseDebt)
		purchases.GET("/:id/payments", h.listPayments)
	}
}

func (h *debtHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPurchasePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing actor identity"})
		return
	}

	purchase, payment, err := h.debtService.RecordPurchasePayment(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "record purchase payment")
		return
	}

	logger.Info("Purchase payment recorded",
		slog.String("purchase_id", purchase.PurchaseID),
		slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.RecordPaymentResponse{
		Payment:  dto.ToPurchasePaymentResponse(payment),
		Purchase: dto.ToPurchaseDebtResponse(purchase),
	})
}

func (h *debtHandler) getPurchaseDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")

	purchase, err := h.debtService.GetPurchaseDebt(c.Request.Context(), purchaseID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve purchase debt")
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseDebtResponse(purchase))
}

func (h *debtHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")

	payments, err := h.debtService.ListPaymentsByPurchase(c.Request.Context(), purchaseID)
	if err != nil {
		respondServiceError(c, logger, err, "list purchase payments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": dto.ToListPurchasePaymentResponse(payments)})
}

func (h *debtHandler) listUnpaidPurchases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listUnpaidPurchases", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	purchases, err := h.debtService.ListUnpaidPurchases(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "list unpaid purchases")
		return
	}

	res := make([]dto.PurchaseDebtResponse, len(purchases))
	for i, p := range purchases {
		res[i] = dto.ToPurchaseDebtResponse(&p)
	}
	c.JSON(http.StatusOK, gin.H{"purchases": res})
}
