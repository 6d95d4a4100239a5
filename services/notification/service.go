package notification

import (
	"context"
	"fmt"

	"localconnect/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	sender Sender
	tokens TokenSource
	logger *zap.Logger
}

// NewDefaultNotificationService wires the service. A nil sender disables pushes.
func NewDefaultNotificationService(sender Sender, tokens TokenSource, logger *zap.Logger) (*DefaultNotificationService, error) {
	if tokens == nil {
		return nil, fmt.Errorf("notification service initialization error: token source is nil")
	}
	return &DefaultNotificationService{sender: sender, tokens: tokens, logger: logger}, nil
}

// SendWorkerPushNotification sends a high priority push to one device.
func (s *DefaultNotificationService) SendWorkerPushNotification(
	ctx context.Context,
	token, title, body string,
	data map[string]string,
) error {
	if s.sender == nil {
		s.logger.Debug("push notifications disabled, skipping", zap.String("title", title))
		return nil
	}
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "worker"
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendWorkerPushNotification: failed to send FCM message: %w", err)
	}
	return nil
}

// NotifyOrderPaid pushes a booking notice to the workers in a paid service order.
// Individual delivery failures are logged, not returned.
func (s *DefaultNotificationService) NotifyOrderPaid(ctx context.Context, order *models.Order) error {
	if s.sender == nil || order == nil || order.BookingType != models.BookingTypeService {
		return nil
	}
	profileIDs := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		profileIDs = append(profileIDs, item.ItemID)
	}
	tokens, err := s.tokens.DeviceTokensForProfiles(ctx, profileIDs)
	if err != nil {
		return fmt.Errorf("NotifyOrderPaid: could not resolve worker devices: %w", err)
	}

	title := "New booking confirmed 🛠️"
	body := fmt.Sprintf("%s booked you for %s at %s.", customerName(order), order.Date, order.Location)
	for _, token := range tokens {
		data := map[string]string{
			"type":    "order_paid",
			"orderId": order.ID.Hex(),
		}
		if err := s.SendWorkerPushNotification(ctx, token, title, body, data); err != nil {
			s.logger.Warn("worker push failed", zap.String("orderId", order.ID.Hex()), zap.Error(err))
		}
	}
	return nil
}

func customerName(order *models.Order) string {
	if order.ContactInfo != nil && order.ContactInfo.FullName != "" {
		return order.ContactInfo.FullName
	}
	return "A customer"
}
