package notification

import (
	"context"
	"errors"
	"testing"

	"localconnect/models"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, message *messaging.Message) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) DeviceTokensForProfiles(ctx context.Context, ids []string) ([]string, error) {
	args := m.Called(ctx, ids)
	tokens, _ := args.Get(0).([]string)
	return tokens, args.Error(1)
}

func paidOrder() *models.Order {
	return &models.Order{
		ID:          primitive.NewObjectID(),
		BookingType: models.BookingTypeService,
		ContactInfo: &models.ContactInfo{FullName: "Asha Rao"},
		Items:       []models.OrderItem{{ItemID: "p1"}, {ItemID: "p2"}},
		Date:        "2025-03-14",
		Location:    "Indiranagar",
	}
}

func TestNotifyOrderPaidSendsToEveryDevice(t *testing.T) {
	sender, tokens := new(mockSender), new(mockTokens)
	tokens.On("DeviceTokensForProfiles", mock.Anything, []string{"p1", "p2"}).Return([]string{"tok-a", "tok-b"}, nil)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(m *messaging.Message) bool {
		return m.Data["type"] == "order_paid" && m.Data["role"] == "worker" && m.Notification.Body == "Asha Rao booked you for 2025-03-14 at Indiranagar."
	})).Return("msg-id", nil).Twice()

	svc, err := NewDefaultNotificationService(sender, tokens, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, svc.NotifyOrderPaid(context.Background(), paidOrder()))
	sender.AssertExpectations(t)
}

func TestNotifyOrderPaidToleratesSendFailures(t *testing.T) {
	sender, tokens := new(mockSender), new(mockTokens)
	tokens.On("DeviceTokensForProfiles", mock.Anything, mock.Anything).Return([]string{"tok-a"}, nil)
	sender.On("Send", mock.Anything, mock.Anything).Return("", errors.New("unregistered"))

	svc, _ := NewDefaultNotificationService(sender, tokens, zap.NewNop())
	assert.NoError(t, svc.NotifyOrderPaid(context.Background(), paidOrder()))
}

func TestNotifyOrderPaidSkipsEventsAndDisabledSender(t *testing.T) {
	tokens := new(mockTokens)
	svc, _ := NewDefaultNotificationService(nil, tokens, zap.NewNop())
	assert.NoError(t, svc.NotifyOrderPaid(context.Background(), paidOrder()))

	sender := new(mockSender)
	svc, _ = NewDefaultNotificationService(sender, tokens, zap.NewNop())
	order := paidOrder()
	order.BookingType = models.BookingTypeEvent
	assert.NoError(t, svc.NotifyOrderPaid(context.Background(), order))

	tokens.AssertNotCalled(t, "DeviceTokensForProfiles", mock.Anything, mock.Anything)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
