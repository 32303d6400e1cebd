package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finstock/finstock_backend/internal/core/ports/services"
	"github.com/finstock/finstock_backend/internal/dto"
	"github.com/finstock/finstock_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// noteHandler handles HTTP requests related to credit and debit notes.
type noteHandler struct {
	noteService portssvc.NoteSvcFacade
}

func newNoteHandler(ns portssvc.NoteSvcFacade) *noteHandler {
	return &noteHandler{noteService: ns}
}

// registerNoteRoutes registers routes related to credit and debit notes.
func registerNoteRoutes(rg *gin.RouterGroup, noteService portssvc.NoteSvcFacade) {
	h := newNoteHandler(noteService)

	creditNotes := rg.Group("/credit-notes")
	{
		creditNotes.POST("", h.createCreditNote)
		creditNotes.GET("", h.listCreditNotes)
		creditNotes.GET("/:id", h.getCreditNote)
		creditNotes.POST("/:id/apply", h.applyCreditNote)
		creditNotes.POST("/:id/cancel", h.cancelCreditNote)
	}

	debitNotes := rg.Group("/debit-notes")
	{
		debitNotes.POST("", h.createDebitNote)
		debitNotes.GET("", h.listDebitNotes)
		debitNotes.GET("/:id", h.getDebitNote)
		debitNotes.POST("/:id/apply", h.applyDebitNote)
		debitNotes.POST("/:id/cancel", h.cancelDebitNote)
	}
}

func (h *noteHandler) createCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCreditNote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing actor identity"})
		return
	}

	note, err := h.noteService.CreateCreditNote(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "create credit note")
		return
	}

	logger.Info("Credit note created", slog.String("credit_note_id", note.CreditNoteID))
	c.JSON(http.StatusCreated, dto.ToCreditNoteResponse(note))
}

func (h *noteHandler) createDebitNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDebitNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDebitNote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing actor identity"})
		return
	}

	note, err := h.noteService.CreateDebitNote(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "create debit note")
		return
	}

	logger.Info("Debit note created", slog.String("debit_note_id", note.DebitNoteID))
	c.JSON(http.StatusCreated, dto.ToDebitNoteResponse(note))
}

func (h *noteHandler) getCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	note, err := h.noteService.GetCreditNoteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "retrieve credit note")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditNoteResponse(note))
}

func (h *noteHandler) getDebitNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	note, err := h.noteService.GetDebitNoteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "retrieve debit note")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebitNoteResponse(note))
}

func (h *noteHandler) listCreditNotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListNotesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listCreditNotes", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	notes, err := h.noteService.ListCreditNotes(c.Request.Context(), params.Status, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "list credit notes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"creditNotes": dto.ToListCreditNoteResponse(notes)})
}

func (h *noteHandler) listDebitNotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListNotesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listDebitNotes", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	notes, err := h.noteService.ListDebitNotes(c.Request.Context(), params.Status, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "list debit notes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"debitNotes": dto.ToListDebitNoteResponse(notes)})
}

func (h *noteHandler) applyCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditNoteID := c.Param("id")

	var req dto.ApplyNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for applyCreditNote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing actor identity"})
		return
	}

	note, err := h.noteService.ApplyCreditNote(c.Request.Context(), creditNoteID, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "apply credit note")
		return
	}

	logger.Info("Credit note applied", slog.String("credit_note_id", creditNoteID))
	c.JSON(http.StatusOK, dto.ToCreditNoteResponse(note))
}

func (h *noteHandler) applyDebitNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debitNoteID := c.Param("id")

	var req dto.ApplyNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for applyDebitNote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing actor identity"})
		return
	}

	note, err := h.noteService.ApplyDebitNote(c.Request.Context(), debitNoteID, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "apply debit note")
		return
	}

	logger.Info("Debit note applied", slog.String("debit_note_id", debitNoteID))
	c.JSON(http.StatusOK, dto.ToDebitNoteResponse(note))
}

func (h *noteHandler) cancelCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditNoteID := c.Param("id")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing actor identity"})
		return
	}

	if err := h.noteService.CancelCreditNote(c.Request.Context(), creditNoteID, actorID); err != nil {
		respondServiceError(c, logger, err, "cancel credit note")
		return
	}

	logger.Info("Credit note cancelled", slog.String("credit_note_id", creditNoteID))
	c.Status(http.StatusNoContent)
}

func (h *noteHandler) cancelDebitNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debitNoteID := c.Param("id")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing actor identity"})
		return
	}

	if err := h.noteService.CancelDebitNote(c.Request.Context(), debitNoteID, actorID); err != nil {
		respondServiceError(c, logger, err, "cancel debit note")
		return
	}

	logger.Info("Debit note cancelled", slog.String("debit_note_id", debitNoteID))
	c.Status(http.StatusNoContent)
}
