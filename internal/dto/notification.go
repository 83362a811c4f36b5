package dto

// SubscriptionKeys carries the client keys of a web-push subscription.
type SubscriptionKeys struct {
	P256dh string `json:"p256dh" binding:"required"`
	Auth   string `json:"auth" binding:"required"`
}

// SubscribeRequest registers a browser push endpoint for the caller.
// The shape mirrors the PushSubscription JSON produced by the browser API.
type SubscribeRequest struct {
	Endpoint string           `json:"endpoint" binding:"required,url"`
	Keys     SubscriptionKeys `json:"keys" binding:"required"`
}

// SubscriptionResponse acknowledges a stored subscription.
type SubscriptionResponse struct {
	SubscriptionID string `json:"subscriptionID"`
	Endpoint       string `json:"endpoint"`
}
