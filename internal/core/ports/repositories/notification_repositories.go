package repositories

import (
	"context"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
)

// NotificationRepositoryFacade manages stored push subscriptions.
type NotificationRepositoryFacade interface {
	// SaveSubscription persists a push subscription, replacing any existing
	// row with the same endpoint for the user.
	SaveSubscription(ctx context.Context, sub domain.PushSubscription) error

	// ListSubscriptionsByUser retrieves all of a user's push subscriptions.
	ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.PushSubscription, error)

	// DeleteSubscription removes a subscription, used when an endpoint is gone.
	DeleteSubscription(ctx context.Context, subscriptionID string) error
}
