package domain

import "time"

// PushSubscription is a registered web-push endpoint for one of a user's
// browsers or devices. A user may hold several; delivery failures on one
// endpoint never affect the others.
type PushSubscription struct {
	SubscriptionID string    `json:"subscriptionID"` // Primary Key (UUID)
	UserID         string    `json:"userID"`
	Endpoint       string    `json:"endpoint"`
	P256dh         string    `json:"p256dh"` // Client public key
	Auth           string    `json:"auth"`   // Client auth secret
	CreatedAt      time.Time `json:"createdAt"`
}
