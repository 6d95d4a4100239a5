package order

import (
	"context"

	"localconnect/models"
	"localconnect/services/payment"

	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, order *models.Order) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockRepo) GetBySubmissionID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockRepo) GetBySessionID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockRepo) AttachSession(ctx context.Context, id, sessionID string) error {
	return m.Called(ctx, id, sessionID).Error(0)
}

func (m *mockRepo) MarkPaid(ctx context.Context, id string) (*models.Order, bool, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *mockRepo) MarkAbandoned(ctx context.Context, id, reason string) (bool, error) {
	args := m.Called(ctx, id, reason)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) ListByItemIDs(ctx context.Context, ids []string) ([]models.Order, error) {
	args := m.Called(ctx, ids)
	o, _ := args.Get(0).([]models.Order)
	return o, args.Error(1)
}

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) SessionStatus(ctx context.Context, id string) (*payment.SessionStatus, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*payment.SessionStatus)
	return s, args.Error(1)
}

func (m *mockSessions) ExpireSession(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockCarts struct {
	mock.Mock
}

func (m *mockCarts) Clear(ctx context.Context, cartID string) error {
	return m.Called(ctx, cartID).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyOrderPaid(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Resolve(ctx context.Context, kind models.ItemKind, id string) (*models.CartLineItem, error) {
	args := m.Called(ctx, kind, id)
	item, _ := args.Get(0).(*models.CartLineItem)
	return item, args.Error(1)
}

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) ListProfilesByAccount(ctx context.Context, accountID string) ([]models.WorkerProfile, error) {
	args := m.Called(ctx, accountID)
	p, _ := args.Get(0).([]models.WorkerProfile)
	return p, args.Error(1)
}
