package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	r.tasks = append(r.tasks, task)
	if r.err != nil {
		return nil, r.err
	}
	return &asynq.TaskInfo{ID: "x"}, nil
}

func TestScheduleExpiryRoundTrip(t *testing.T) {
	q := &recordingEnqueuer{}
	s := NewExpiryScheduler(q)

	require.NoError(t, s.ScheduleExpiry(context.Background(), "order-1", 30*time.Minute))
	require.Len(t, q.tasks, 1)
	assert.Equal(t, TypeOrderExpire, q.tasks[0].Type())

	p, err := ParseOrderExpiryTask(q.tasks[0])
	require.NoError(t, err)
	assert.Equal(t, "order-1", p.OrderID)
}

func TestScheduleExpiryIgnoresDuplicates(t *testing.T) {
	s := NewExpiryScheduler(&recordingEnqueuer{err: asynq.ErrTaskIDConflict})
	assert.NoError(t, s.ScheduleExpiry(context.Background(), "order-1", time.Minute))

	s = NewExpiryScheduler(&recordingEnqueuer{err: errors.New("redis down")})
	assert.Error(t, s.ScheduleExpiry(context.Background(), "order-1", time.Minute))
}

func TestParseOrderExpiryTaskRejectsEmpty(t *testing.T) {
	_, err := ParseOrderExpiryTask(asynq.NewTask(TypeOrderExpire, []byte(`{}`)))
	assert.Error(t, err)
	_, err = ParseOrderExpiryTask(asynq.NewTask(TypeOrderExpire, []byte(`nope`)))
	assert.Error(t, err)
}
