package reviewRepo

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
	"go.uber.org/zap"
)

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo binds the repository to the FormData collection of db.
func NewMongoReviewRepo(db *mongo.Database, logger *zap.Logger) ReviewRepository {
	repo := &MongoReviewRepo{coll: db.Collection("FormData")}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "consent_to_publish", Value: 1}, {Key: "createdAt", Value: -1}},
	}); err != nil {
		logger.Warn("failed to create review indexes", zap.Error(err))
	}
	return repo
}

// Create inserts a review.
func (r *MongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	now := time.Now()
	review.ID = primitive.NewObjectID()
	review.CreatedAt = now
	review.UpdatedAt = now
	if review.Images == nil {
		review.Images = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}
	return nil
}

// List returns every review.
func (r *MongoReviewRepo) List(ctx context.Context) ([]models.Review, error) {
	return r.find(ctx, bson.M{})
}

// ListPublished returns the publicly visible reviews.
func (r *MongoReviewRepo) ListPublished(ctx context.Context) ([]models.Review, error) {
	return r.find(ctx, bson.M{"consent_to_publish": true, "is_anonymous": false})
}

func (r *MongoReviewRepo) find(ctx context.Context, filter bson.M) ([]models.Review, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}
