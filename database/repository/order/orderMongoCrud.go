package orderRepo

import (
	"context"
	"fmt"
	"time"

	"localconnect/database/repository"
	"localconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new order document.
func (r *MongoOrderRepo) Create(ctx context.Context, order *models.Order) (string, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	now := time.Now()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	order.CreatedAt = now
	order.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateSubmission
		}
		return "", fmt.Errorf("failed to create order: %w", err)
	}
	return order.ID.Hex(), nil
}

// AttachSession stores the checkout session id on the order.
func (r *MongoOrderRepo) AttachSession(ctx context.Context, id, sessionID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"checkoutSessionId": sessionID, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to attach session to order %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// MarkPaid sets the order to paid. A confirmed payment also revives an
// abandoned order, since the money was taken. changed is false when the order
// was already paid, so only one caller observes the transition.
func (r *MongoOrderRepo) MarkPaid(ctx context.Context, id string) (order *models.Order, changed bool, err error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false, repository.ErrNotFound
	}
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	now := time.Now()
	filter := bson.M{
		"_id":    oid,
		"status": bson.M{"$in": bson.A{models.OrderStatusPending, models.OrderStatusPaid, models.OrderStatusAbandoned}},
	}
	update := bson.M{
		"$set":   bson.M{"status": models.OrderStatusPaid, "updatedAt": now},
		"$min":   bson.M{"paidAt": now},
		"$unset": bson.M{"abandonReason": ""},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var before models.Order
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&before); err != nil {
		return nil, false, wrap("failed to mark order "+id+" paid", err)
	}
	changed = before.Status != models.OrderStatusPaid
	after := before
	after.Status = models.OrderStatusPaid
	after.AbandonReason = ""
	after.UpdatedAt = now
	if after.PaidAt == nil {
		after.PaidAt = &now
	}
	return &after, changed, nil
}

// MarkAbandoned sets a pending order to abandoned and releases its submission
// id so the same submission can be retried.
func (r *MongoOrderRepo) MarkAbandoned(ctx context.Context, id, reason string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, repository.ErrNotFound
	}
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": models.OrderStatusPending}
	update := bson.M{
		"$set": bson.M{
			"status":        models.OrderStatusAbandoned,
			"abandonReason": reason,
			"updatedAt":     time.Now(),
		},
		"$unset": bson.M{"submissionId": ""},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to abandon order %s: %w", id, err)
	}
	return result.ModifiedCount > 0, nil
}
