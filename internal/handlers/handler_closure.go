package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/giantprolu/gestiondecompte/internal/apperrors"
	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
	"github.com/giantprolu/gestiondecompte/internal/dto"
	"github.com/giantprolu/gestiondecompte/internal/middleware"
)

// closureHandler exposes the month archiver.
type closureHandler struct {
	closureService portssvc.ClosureSvcFacade
}

func newClosureHandler(cs portssvc.ClosureSvcFacade) *closureHandler {
	return &closureHandler{closureService: cs}
}

// registerClosureRoutes registers month-closure routes.
func registerClosureRoutes(rg *gin.RouterGroup, closureService portssvc.ClosureSvcFacade) {
	h := newClosureHandler(closureService)

	rg.POST("/change-month", h.closeMonth)
	rg.GET("/closures", h.listClosures)
}

// closeMonth godoc
// @Summary Archive past transactions
// @Description Archives all unarchived transactions dated before now and records the covered period. Recurring templates are never archived.
// @Tags closures
// @Produce  json
// @Success 200 {object} dto.CloseMonthResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Nothing to archive"
// @Security BearerAuth
// @Router /change-month [post]
func (h *closureHandler) closeMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	closure, archived, err := h.closureService.CloseMonth(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrNothingToArchive) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No transactions eligible for archiving"})
			return
		}
		logger.Error("Month closure failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close month"})
		return
	}

	logger.Info("Month closed",
		slog.String("month_year", closure.MonthYear),
		slog.Int("archived", archived),
	)
	c.JSON(http.StatusOK, dto.CloseMonthResponse{
		Closure:       dto.ToClosureResponse(closure),
		ArchivedCount: archived,
	})
}

// listClosures godoc
// @Summary List month closures
// @Tags closures
// @Produce  json
// @Success 200 {object} dto.ListClosuresResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /closures [get]
func (h *closureHandler) listClosures(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	closures, err := h.closureService.ListClosures(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list closures", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list closures"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListClosuresResponse(closures))
}
