package services

import (
	"context"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	"github.com/giantprolu/gestiondecompte/internal/dto"
)

// PushDeliverer sends one payload to one registered endpoint. Implemented by
// the webpush adapter; mocked in tests.
type PushDeliverer interface {
	// Deliver pushes the payload. ErrSubscriptionGone means the endpoint no
	// longer exists and the subscription should be pruned.
	Deliver(ctx context.Context, sub domain.PushSubscription, payload []byte) error
}

// NotificationSvcFacade manages push subscriptions and message delivery.
type NotificationSvcFacade interface {
	// Subscribe stores a browser push endpoint for the user.
	Subscribe(ctx context.Context, req dto.SubscribeRequest, userID string) (*domain.PushSubscription, error)

	// Notify attempts delivery of a message to every endpoint registered for
	// the user. Per-endpoint failures are logged and never fail the call;
	// gone endpoints are pruned.
	Notify(ctx context.Context, userID string, title string, body string) error
}
