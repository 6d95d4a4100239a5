package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"localconnect/services/order"
	"localconnect/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// OrderExpirer abandons orders whose payment window elapsed.
type OrderExpirer interface {
	Expire(ctx context.Context, orderID string) error
}

// InitExpiryWorker runs the order expiry worker in the background and returns
// the server so the caller can shut it down.
func InitExpiryWorker(redisOpts asynq.RedisClientOpt, expirer OrderExpirer, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeOrderExpire, handleOrderExpiry(expirer, logger))

	// Start async worker with retry logic
	go func() {
		logger.Info("[ExpiryWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("[ExpiryWorker] failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("[ExpiryWorker] max retry attempts reached")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

func handleOrderExpiry(expirer OrderExpirer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseOrderExpiryTask(task)
		if err != nil {
			logger.Error("[ExpiryHandler] invalid payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		err = expirer.Expire(ctx, p.OrderID)
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			logger.Warn("[ExpiryHandler] order no longer exists", zap.String("orderId", p.OrderID))
			return nil
		case err != nil:
			logger.Error("[ExpiryHandler] failed to expire order", zap.String("orderId", p.OrderID), zap.Error(err))
			return err
		}
		logger.Debug("[ExpiryHandler] order expiry processed", zap.String("orderId", p.OrderID))
		return nil
	}
}

// MonitorRedisConnection pings the queue database periodically until ctx is done.
func MonitorRedisConnection(ctx context.Context, client *redis.Client, logger *zap.Logger) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				logger.Warn("[ExpiryWorker] Redis connection lost", zap.Error(err))
			}
		}
	}
}
