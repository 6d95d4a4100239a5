package orderRepo

import (
	"context"
	"fmt"

	"localconnect/database/repository"
	"localconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID retrieves an order by its hex id.
func (r *MongoOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// GetBySubmissionID retrieves the order created by a submission attempt.
func (r *MongoOrderRepo) GetBySubmissionID(ctx context.Context, submissionID string) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"submissionId": submissionID})
}

// GetBySessionID retrieves the order a checkout session belongs to.
func (r *MongoOrderRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"checkoutSessionId": sessionID})
}

func (r *MongoOrderRepo) findOne(ctx context.Context, filter bson.M) (*models.Order, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	var order models.Order
	if err := r.coll.FindOne(ctx, filter).Decode(&order); err != nil {
		return nil, wrap("failed to fetch order", err)
	}
	return &order, nil
}

// ListByItemIDs returns orders referencing any of itemIDs.
func (r *MongoOrderRepo) ListByItemIDs(ctx context.Context, itemIDs []string) ([]models.Order, error) {
	if len(itemIDs) == 0 {
		return []models.Order{}, nil
	}
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	filter := bson.M{"items.itemId": bson.M{"$in": itemIDs}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}
