// Package push delivers web-push notifications to browser endpoints using
// VAPID-signed requests.
package push

import (
	"context"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/giantprolu/gestiondecompte/internal/apperrors"
	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
	"github.com/giantprolu/gestiondecompte/internal/platform/config"
)

type webpushDeliverer struct {
	subject    string
	publicKey  string
	privateKey string
}

// NewWebpushDeliverer builds a VAPID push sender from the configured key
// pair. Returns nil when the keys are absent, which disables delivery
// without disabling subscription storage.
func NewWebpushDeliverer(cfg *config.Config) portssvc.PushDeliverer {
	if cfg.VAPIDPublicKey == "" || cfg.VAPIDPrivateKey == "" {
		return nil
	}
	return &webpushDeliverer{
		subject:    cfg.VAPIDSubject,
		publicKey:  cfg.VAPIDPublicKey,
		privateKey: cfg.VAPIDPrivateKey,
	}
}

var _ portssvc.PushDeliverer = (*webpushDeliverer)(nil)

// Deliver pushes the payload to a single endpoint. A 404 or 410 from the
// push service means the browser dropped the subscription, reported as
// apperrors.ErrSubscriptionGone so the caller can prune it.
func (d *webpushDeliverer) Deliver(ctx context.Context, sub domain.PushSubscription, payload []byte) error {
	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, target, &webpush.Options{
		Subscriber:      d.subject,
		VAPIDPublicKey:  d.publicKey,
		VAPIDPrivateKey: d.privateKey,
		TTL:             3600,
	})
	if err != nil {
		return fmt.Errorf("failed to send push to %s: %w", sub.Endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return fmt.Errorf("%w: endpoint %s returned %d", apperrors.ErrSubscriptionGone, sub.Endpoint, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service returned %d for endpoint %s", resp.StatusCode, sub.Endpoint)
	}
	return nil
}
