package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"localconnect/models"

	"github.com/hibiken/asynq"
)

const TypeOrderExpire = "order:expire"

// NewOrderExpiryTask builds the task that abandons an unpaid order.
func NewOrderExpiryTask(orderID string, after time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(models.OrderExpiryPayload{OrderID: orderID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeOrderExpire, b)
	opts := []asynq.Option{
		asynq.ProcessIn(after),
		asynq.TaskID(TypeOrderExpire + ":" + orderID),
		asynq.MaxRetry(5),
	}
	return task, opts, nil
}

// ParseOrderExpiryTask decodes the payload of an order expiry task.
func ParseOrderExpiryTask(task *asynq.Task) (models.OrderExpiryPayload, error) {
	var p models.OrderExpiryPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid order expiry payload: %w", err)
	}
	if p.OrderID == "" {
		return p, fmt.Errorf("order expiry payload has no order id")
	}
	return p, nil
}

// Enqueuer is the part of asynq.Client the scheduler needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ExpiryScheduler enqueues order expiry tasks.
type ExpiryScheduler struct {
	client Enqueuer
}

// NewExpiryScheduler wraps an asynq client.
func NewExpiryScheduler(client Enqueuer) *ExpiryScheduler {
	return &ExpiryScheduler{client: client}
}

// ScheduleExpiry enqueues the expiry of orderID after the payment window.
// Scheduling the same order twice is not an error.
func (s *ExpiryScheduler) ScheduleExpiry(ctx context.Context, orderID string, after time.Duration) error {
	task, opts, err := NewOrderExpiryTask(orderID, after)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil && err != asynq.ErrTaskIDConflict {
		return fmt.Errorf("failed to enqueue expiry for order %s: %w", orderID, err)
	}
	return nil
}
