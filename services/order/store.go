package order

import (
	"context"
	"errors"
	"fmt"

	"localconnect/database/repository"
	orderRepo "localconnect/database/repository/order"
	"localconnect/models"
	"localconnect/services/checkout"

	"go.mongodb.org/mongo-driver/mongo"
)

// CheckoutStore adapts the order repository to the checkout flow and marks
// database timeouts and connection failures as unreachable.
type CheckoutStore struct {
	repo orderRepo.OrderRepository
}

// NewCheckoutStore wraps repo.
func NewCheckoutStore(repo orderRepo.OrderRepository) *CheckoutStore {
	return &CheckoutStore{repo: repo}
}

// CreateOrder implements checkout.OrderStore.
func (s *CheckoutStore) CreateOrder(ctx context.Context, order *models.Order) (string, error) {
	id, err := s.repo.Create(ctx, order)
	return id, classify(err)
}

// FindBySubmission implements checkout.OrderStore.
func (s *CheckoutStore) FindBySubmission(ctx context.Context, submissionID string) (*models.Order, error) {
	order, err := s.repo.GetBySubmissionID(ctx, submissionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return order, classify(err)
}

// AttachSession implements checkout.OrderStore.
func (s *CheckoutStore) AttachSession(ctx context.Context, orderID, sessionID string) error {
	return classify(s.repo.AttachSession(ctx, orderID, sessionID))
}

// MarkAbandoned implements checkout.OrderStore.
func (s *CheckoutStore) MarkAbandoned(ctx context.Context, orderID, reason string) error {
	_, err := s.repo.MarkAbandoned(ctx, orderID, reason)
	return classify(err)
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %v", checkout.ErrUnreachable, err)
	}
	return err
}
