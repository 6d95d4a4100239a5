package ticketRepo

import (
	"context"
	"errors"
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

// MongoTicketRepo implements TicketRepository using MongoDB.
type MongoTicketRepo struct {
	coll *mongo.Collection
}

// NewMongoTicketRepo binds the repository to the tickets collection of db.
func NewMongoTicketRepo(db *mongo.Database, logger *zap.Logger) TicketRepository {
	repo := &MongoTicketRepo{coll: db.Collection("tickets")}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create ticket indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoTicketRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "kind", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a ticket listing.
func (r *MongoTicketRepo) Create(ctx context.Context, ticket *models.TicketListing) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	ticket.ID = primitive.NewObjectID()
	ticket.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, ticket); err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

// GetByID retrieves a listing by hex id.
func (r *MongoTicketRepo) GetByID(ctx context.Context, id string) (*models.TicketListing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	var ticket models.TicketListing
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ticket); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch ticket %s: %w", id, err)
	}
	return &ticket, nil
}

// ListByKind returns listings of the given kind.
func (r *MongoTicketRepo) ListByKind(ctx context.Context, kind string) ([]models.TicketListing, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"kind": kind}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer cursor.Close(ctx)

	tickets := []models.TicketListing{}
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("failed to decode tickets: %w", err)
	}
	return tickets, nil
}
