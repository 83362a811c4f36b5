package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/giantprolu/gestiondecompte/internal/apperrors"
	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	portsrepo "github.com/giantprolu/gestiondecompte/internal/core/ports/repositories"
	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
	"github.com/giantprolu/gestiondecompte/internal/dto"
)

// notificationService stores push subscriptions and fans deliveries out to
// every endpoint a user has registered.
type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
	deliverer        portssvc.PushDeliverer
}

// NewNotificationService creates a new notification service. deliverer may be
// nil when push is not configured; Notify then only logs.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, deliverer portssvc.PushDeliverer) portssvc.NotificationSvcFacade {
	return &notificationService{
		notificationRepo: notificationRepo,
		deliverer:        deliverer,
	}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) Subscribe(ctx context.Context, req dto.SubscribeRequest, userID string) (*domain.PushSubscription, error) {
	sub := domain.PushSubscription{
		SubscriptionID: uuid.NewString(),
		UserID:         userID,
		Endpoint:       req.Endpoint,
		P256dh:         req.Keys.P256dh,
		Auth:           req.Keys.Auth,
		CreatedAt:      time.Now(),
	}

	if err := s.notificationRepo.SaveSubscription(ctx, sub); err != nil {
		s.LogError(ctx, err, "Failed to save push subscription", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Push subscription registered",
		slog.String("subscription_id", sub.SubscriptionID),
		slog.String("user_id", userID))
	return &sub, nil
}

// pushMessage is the JSON payload handed to the browser service worker.
type pushMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Notify delivers the message to every endpoint registered for the user.
// Per-endpoint failures are logged and never surfaced; endpoints reported
// gone are pruned.
func (s *notificationService) Notify(ctx context.Context, userID string, title string, body string) error {
	if s.deliverer == nil {
		s.LogDebug(ctx, "Push delivery not configured, skipping notification", slog.String("user_id", userID))
		return nil
	}

	subs, err := s.notificationRepo.ListSubscriptionsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list push subscriptions", slog.String("user_id", userID))
		return err
	}
	if len(subs) == 0 {
		return nil
	}

	payload, err := json.Marshal(pushMessage{Title: title, Body: body})
	if err != nil {
		return err
	}

	for _, sub := range subs {
		if err := s.deliverer.Deliver(ctx, sub, payload); err != nil {
			if errors.Is(err, apperrors.ErrSubscriptionGone) {
				s.LogInfo(ctx, "Pruning gone push endpoint",
					slog.String("subscription_id", sub.SubscriptionID))
				if delErr := s.notificationRepo.DeleteSubscription(ctx, sub.SubscriptionID); delErr != nil {
					s.LogError(ctx, delErr, "Failed to prune push subscription",
						slog.String("subscription_id", sub.SubscriptionID))
				}
				continue
			}
			s.LogError(ctx, err, "Push delivery failed",
				slog.String("subscription_id", sub.SubscriptionID))
		}
	}
	return nil
}
