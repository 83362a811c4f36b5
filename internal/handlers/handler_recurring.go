package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
	"github.com/giantprolu/gestiondecompte/internal/dto"
	"github.com/giantprolu/gestiondecompte/internal/middleware"
)

// recurringHandler exposes the recurring-template processor.
type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
}

func newRecurringHandler(rs portssvc.RecurringSvcFacade) *recurringHandler {
	return &recurringHandler{recurringService: rs}
}

// registerRecurringRoutes registers recurring-processor routes.
func registerRecurringRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringSvcFacade) {
	h := newRecurringHandler(recurringService)

	rg.POST("/process-recurring", h.processDue)
	rg.GET("/process-recurring", h.previewDue)
}

// processDue godoc
// @Summary Process due recurring templates
// @Description Posts a realized copy for every due template and advances each one occurrence. Idempotent per due date: re-running skips already-posted copies.
// @Tags recurring
// @Produce  json
// @Success 200 {object} dto.RecurringRunReport
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Processor run failed"
// @Security BearerAuth
// @Router /process-recurring [post]
func (h *recurringHandler) processDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.recurringService.ProcessDue(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		logger.Error("Recurring processor run failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process recurring transactions"})
		return
	}

	logger.Info("Recurring processor run finished",
		slog.Int("processed", report.Processed),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
	)
	c.JSON(http.StatusOK, report)
}

// previewDue godoc
// @Summary Preview due recurring templates
// @Description Lists the templates a processor run would touch, with no side effects
// @Tags recurring
// @Produce  json
// @Success 200 {object} dto.DuePreviewResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /process-recurring [get]
func (h *recurringHandler) previewDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	due, err := h.recurringService.PreviewDue(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to preview due templates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to preview due templates"})
		return
	}

	res := dto.DuePreviewResponse{Due: make([]dto.TransactionResponse, len(due)), Count: len(due)}
	for i := range due {
		res.Due[i] = dto.ToTransactionResponse(&due[i])
	}
	c.JSON(http.StatusOK, res)
}
