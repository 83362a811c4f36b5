package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giantprolu/gestiondecompte/internal/apperrors"
	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
	"github.com/giantprolu/gestiondecompte/internal/dto"
	"github.com/giantprolu/gestiondecompte/internal/middleware"
)

// creditHandler handles HTTP requests related to credits (loans).
type creditHandler struct {
	creditService portssvc.CreditSvcFacade
}

func newCreditHandler(cs portssvc.CreditSvcFacade) *creditHandler {
	return &creditHandler{creditService: cs}
}

// registerCreditRoutes registers routes related to credits.
func registerCreditRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := newCreditHandler(creditService)

	credits := rg.Group("/credits")
	{
		credits.POST("", h.createCredit)
		credits.GET("", h.listCredits)
		credits.GET("/:id", h.getCredit)
		credits.PUT("/:id", h.updateCredit)
		credits.DELETE("/:id", h.deleteCredit)
	}
}

// createCredit godoc
// @Summary Create a credit
// @Description Creates a loan record; outstanding defaults to the principal
// @Tags credits
// @Accept  json
// @Produce  json
// @Param   credit body dto.CreateCreditRequest true "Credit details"
// @Success 201 {object} dto.CreditResponse
// @Failure 400 {object} map[string]string "Invalid input or validation error"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /credits [post]
func (h *creditHandler) createCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCredit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	credit, err := h.creditService.CreateCredit(c.Request.Context(), req, userID)
	if err != nil {
		respondCreditError(c, logger, err, "Failed to create credit")
		return
	}

	logger.Info("Credit created", slog.String("credit_id", credit.CreditID))
	c.JSON(http.StatusCreated, dto.ToCreditResponse(credit))
}

// getCredit godoc
// @Summary Get a credit by ID
// @Tags credits
// @Produce  json
// @Param   id path string true "Credit ID"
// @Success 200 {object} dto.CreditResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Credit not found"
// @Security BearerAuth
// @Router /credits/{id} [get]
func (h *creditHandler) getCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	credit, err := h.creditService.GetCreditByID(c.Request.Context(), creditID, userID)
	if err != nil {
		respondCreditError(c, logger, err, "Failed to retrieve credit")
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditResponse(credit))
}

// listCredits godoc
// @Summary List the caller's credits
// @Tags credits
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListCreditsResponse
// @Security BearerAuth
// @Router /credits [get]
func (h *creditHandler) listCredits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListCreditsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	credits, err := h.creditService.ListCredits(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list credits", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list credits"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCreditsResponse(credits))
}

// updateCredit godoc
// @Summary Update a credit
// @Description Applies a partial update; outstanding is directly editable
// @Tags credits
// @Accept  json
// @Produce  json
// @Param   id path string true "Credit ID"
// @Param   credit body dto.UpdateCreditRequest true "Fields to update"
// @Success 200 {object} dto.CreditResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Credit not found"
// @Security BearerAuth
// @Router /credits/{id} [put]
func (h *creditHandler) updateCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCredit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	credit, err := h.creditService.UpdateCredit(c.Request.Context(), creditID, req, userID)
	if err != nil {
		respondCreditError(c, logger, err, "Failed to update credit")
		return
	}

	logger.Info("Credit updated", slog.String("credit_id", creditID))
	c.JSON(http.StatusOK, dto.ToCreditResponse(credit))
}

// deleteCredit godoc
// @Summary Delete a credit
// @Tags credits
// @Produce  json
// @Param   id path string true "Credit ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Credit not found"
// @Security BearerAuth
// @Router /credits/{id} [delete]
func (h *creditHandler) deleteCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.creditService.DeleteCredit(c.Request.Context(), creditID, userID); err != nil {
		respondCreditError(c, logger, err, "Failed to delete credit")
		return
	}

	logger.Info("Credit deleted", slog.String("credit_id", creditID))
	c.Status(http.StatusNoContent)
}

func respondCreditError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
