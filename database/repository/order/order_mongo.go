package orderRepo

import (
	"errors"
	"fmt"

	"localconnect/database/repository"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrDuplicateSubmission is returned when an order with the same submission id exists.
var ErrDuplicateSubmission = errors.New("order already submitted")

// MongoOrderRepo implements OrderRepository using MongoDB.
type MongoOrderRepo struct {
	coll *mongo.Collection
}

// NewMongoOrderRepo binds the repository to the orders collection of db.
func NewMongoOrderRepo(db *mongo.Database, logger *zap.Logger) OrderRepository {
	repo := &MongoOrderRepo{coll: db.Collection("orders")}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create order indexes", zap.Error(err))
	}
	return repo
}

func isNoDocuments(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return err
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, isNoDocuments(err))
}
