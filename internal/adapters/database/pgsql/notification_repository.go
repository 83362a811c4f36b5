package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giantprolu/gestiondecompte/internal/apperrors"
	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	portsrepo "github.com/giantprolu/gestiondecompte/internal/core/ports/repositories"
)

type PgxNotificationRepository struct {
	BaseRepository
}

// newPgxNotificationRepository creates a new repository for push subscriptions.
func newPgxNotificationRepository(pool *pgxpool.Pool) *PgxNotificationRepository {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxNotificationRepository implements portsrepo.NotificationRepositoryFacade
var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

const subscriptionColumns = `subscription_id, user_id, endpoint, p256dh, auth, created_at`

// SaveSubscription persists a push subscription. Re-registering the same
// endpoint for a user refreshes its keys instead of duplicating the row.
func (r *PgxNotificationRepository) SaveSubscription(ctx context.Context, sub domain.PushSubscription) error {
	query := `
		INSERT INTO push_subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, endpoint) DO UPDATE
		SET p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth;
	`
	_, err := r.Pool.Exec(ctx, query,
		sub.SubscriptionID,
		sub.UserID,
		sub.Endpoint,
		sub.P256dh,
		sub.Auth,
		sub.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save push subscription for user %s: %w", sub.UserID, err)
	}
	return nil
}

// ListSubscriptionsByUser retrieves all of a user's push subscriptions.
func (r *PgxNotificationRepository) ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.PushSubscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM push_subscriptions WHERE user_id = $1 ORDER BY created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list push subscriptions for user %s: %w", userID, err)
	}
	defer rows.Close()

	subs := make([]domain.PushSubscription, 0)
	for rows.Next() {
		var s domain.PushSubscription
		if err := rows.Scan(&s.SubscriptionID, &s.UserID, &s.Endpoint, &s.P256dh, &s.Auth, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan push subscription row: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating push subscription rows: %w", err)
	}
	return subs, nil
}

// DeleteSubscription removes a subscription, used when an endpoint is gone.
func (r *PgxNotificationRepository) DeleteSubscription(ctx context.Context, subscriptionID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM push_subscriptions WHERE subscription_id = $1;`, subscriptionID)
	if err != nil {
		return fmt.Errorf("failed to delete push subscription %s: %w", subscriptionID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: push subscription %s", apperrors.ErrNotFound, subscriptionID)
	}
	return nil
}
