package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
	"github.com/giantprolu/gestiondecompte/internal/dto"
	"github.com/giantprolu/gestiondecompte/internal/middleware"
)

// notificationHandler handles push-subscription registration.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(ns portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{notificationService: ns}
}

// registerNotificationRoutes registers push-notification routes.
func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)

	notifications := rg.Group("/notifications")
	{
		notifications.POST("/subscriptions", h.subscribe)
	}
}

// subscribe godoc
// @Summary Register a web-push subscription
// @Description Stores a browser push endpoint for the caller. Re-registering the same endpoint refreshes its keys.
// @Tags notifications
// @Accept  json
// @Produce  json
// @Param   subscription body dto.SubscribeRequest true "Browser PushSubscription payload"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string "Invalid subscription payload"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /notifications/subscriptions [post]
func (h *notificationHandler) subscribe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Subscribe", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sub, err := h.notificationService.Subscribe(c.Request.Context(), req, userID)
	if err != nil {
		logger.Error("Failed to store push subscription", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store subscription"})
		return
	}

	logger.Info("Push subscription stored", slog.String("subscription_id", sub.SubscriptionID))
	c.JSON(http.StatusCreated, dto.SubscriptionResponse{
		SubscriptionID: sub.SubscriptionID,
		Endpoint:       sub.Endpoint,
	})
}
