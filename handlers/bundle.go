package handlers

import "localconnect/middleware"

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	// Sessions checks bearer tokens against the auth cache. May be nil.
	Sessions middleware.SessionVerifier

	Auth     *AuthHandler
	Worker   *WorkerHandler
	Listing  *ListingHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Order    *OrderHandler
	Payment  *PaymentHandler
	Review   *ReviewHandler
	AI       *AIHandler
	STT      *STTHandler
}
