package notification

import (
	"context"

	"localconnect/models"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendWorkerPushNotification(ctx context.Context, token, title, body string, data map[string]string) error
	// NotifyOrderPaid tells every worker booked in order about the payment.
	NotifyOrderPaid(ctx context.Context, order *models.Order) error
}

// Sender is satisfied by *messaging.Client.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// TokenSource resolves the device tokens of the workers behind profiles.
type TokenSource interface {
	DeviceTokensForProfiles(ctx context.Context, profileIDs []string) ([]string, error)
}
