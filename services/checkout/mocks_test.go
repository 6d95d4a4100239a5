package checkout

import (
	"context"
	"time"

	"localconnect/models"

	"github.com/stretchr/testify/mock"
)

type mockOrderStore struct {
	mock.Mock
}

func (m *mockOrderStore) CreateOrder(ctx context.Context, order *models.Order) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

func (m *mockOrderStore) FindBySubmission(ctx context.Context, submissionID string) (*models.Order, error) {
	args := m.Called(ctx, submissionID)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *mockOrderStore) AttachSession(ctx context.Context, orderID, sessionID string) error {
	return m.Called(ctx, orderID, sessionID).Error(0)
}

func (m *mockOrderStore) MarkAbandoned(ctx context.Context, orderID, reason string) error {
	return m.Called(ctx, orderID, reason).Error(0)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateSession(ctx context.Context, req models.CheckoutSessionRequest) (*models.CheckoutSession, error) {
	args := m.Called(ctx, req)
	session, _ := args.Get(0).(*models.CheckoutSession)
	return session, args.Error(1)
}

func (m *mockGateway) RedirectURL(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

type mockExpiry struct {
	mock.Mock
}

func (m *mockExpiry) ScheduleExpiry(ctx context.Context, orderID string, after time.Duration) error {
	return m.Called(ctx, orderID, after).Error(0)
}
