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

// shareHandler handles HTTP requests related to dashboard shares.
type shareHandler struct {
	shareService portssvc.ShareSvcFacade
}

func newShareHandler(ss portssvc.ShareSvcFacade) *shareHandler {
	return &shareHandler{shareService: ss}
}

// registerShareRoutes registers routes related to dashboard shares.
func registerShareRoutes(rg *gin.RouterGroup, shareService portssvc.ShareSvcFacade) {
	h := newShareHandler(shareService)

	shares := rg.Group("/shares")
	{
		shares.POST("", h.createShare)
		shares.GET("", h.listSharesByOwner)
		shares.GET("/received", h.listSharesWithUser)
		shares.PUT("/:id", h.updateShare)
		shares.DELETE("/:id", h.revokeShare)
	}
}

// createShare godoc
// @Summary Share the dashboard with another user
// @Description Grants a user, looked up by email, VIEW or EDIT access to the caller's dashboard
// @Tags shares
// @Accept  json
// @Produce  json
// @Param   share body dto.CreateShareRequest true "Grantee email and permission"
// @Success 201 {object} dto.ShareResponse
// @Failure 400 {object} map[string]string "Invalid input, or attempt to share with oneself"
// @Failure 404 {object} map[string]string "No user with that email"
// @Failure 409 {object} map[string]string "Already shared with that user"
// @Security BearerAuth
// @Router /shares [post]
func (h *shareHandler) createShare(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateShare", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	share, err := h.shareService.CreateShare(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Dashboard already shared with this user"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No user with that email"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create share", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create share"})
		}
		return
	}

	logger.Info("Share created", slog.String("share_id", share.ShareID))
	c.JSON(http.StatusCreated, dto.ToShareResponse(share))
}

// listSharesByOwner godoc
// @Summary List shares the caller has granted
// @Tags shares
// @Produce  json
// @Success 200 {object} dto.ListSharesResponse
// @Security BearerAuth
// @Router /shares [get]
func (h *shareHandler) listSharesByOwner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	shares, err := h.shareService.ListSharesByOwner(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list shares", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list shares"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSharesResponse(shares))
}

// listSharesWithUser godoc
// @Summary List dashboards shared with the caller
// @Tags shares
// @Produce  json
// @Success 200 {object} dto.ListSharesResponse
// @Security BearerAuth
// @Router /shares/received [get]
func (h *shareHandler) listSharesWithUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	shares, err := h.shareService.ListSharesWithUser(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list received shares", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list received shares"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSharesResponse(shares))
}

// updateShare godoc
// @Summary Change a share's permission
// @Tags shares
// @Accept  json
// @Produce  json
// @Param   id path string true "Share ID"
// @Param   share body dto.UpdateShareRequest true "New permission"
// @Success 200 {object} dto.ShareResponse
// @Failure 403 {object} map[string]string "Not the share's owner"
// @Failure 404 {object} map[string]string "Share not found"
// @Security BearerAuth
// @Router /shares/{id} [put]
func (h *shareHandler) updateShare(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shareID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateShare", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	share, err := h.shareService.UpdateShare(c.Request.Context(), shareID, req, userID)
	if err != nil {
		respondShareError(c, logger, err, "Failed to update share")
		return
	}

	logger.Info("Share updated", slog.String("share_id", shareID))
	c.JSON(http.StatusOK, dto.ToShareResponse(share))
}

// revokeShare godoc
// @Summary Revoke a share
// @Tags shares
// @Produce  json
// @Param   id path string true "Share ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Not the share's owner"
// @Failure 404 {object} map[string]string "Share not found"
// @Security BearerAuth
// @Router /shares/{id} [delete]
func (h *shareHandler) revokeShare(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shareID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.shareService.RevokeShare(c.Request.Context(), shareID, userID); err != nil {
		respondShareError(c, logger, err, "Failed to revoke share")
		return
	}

	logger.Info("Share revoked", slog.String("share_id", shareID))
	c.Status(http.StatusNoContent)
}

func respondShareError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Share not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
