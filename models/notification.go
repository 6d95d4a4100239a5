package models

// OrderExpiryPayload is the queued task body that abandons unpaid orders.
type OrderExpiryPayload struct {
	OrderID string `json:"orderId"`
}

// PushMessage is a push notification addressed to a device token.
type PushMessage struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}
