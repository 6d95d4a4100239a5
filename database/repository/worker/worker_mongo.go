package workerRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"localconnect/database/repository"
	"localconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ErrTaken is returned when the username or email is already registered.
var ErrTaken = errors.New("username or email already registered")

// MongoWorkerRepo implements WorkerRepository using MongoDB.
type MongoWorkerRepo struct {
	accounts *mongo.Collection
	profiles *mongo.Collection
}

// NewMongoWorkerRepo binds the repository to the workers database.
func NewMongoWorkerRepo(db *mongo.Database, logger *zap.Logger) WorkerRepository {
	repo := &MongoWorkerRepo{
		accounts: db.Collection("workerauths"),
		profiles: db.Collection("workerforms"),
	}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create worker indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoWorkerRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.accounts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create account indexes: %w", err)
	}
	_, err = r.profiles.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "accountId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}
	return nil
}

// CreateAccount inserts a new worker account.
func (r *MongoWorkerRepo) CreateAccount(ctx context.Context, worker *models.Worker) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	now := time.Now()
	worker.ID = primitive.NewObjectID()
	worker.Email = strings.ToLower(strings.TrimSpace(worker.Email))
	worker.CreatedAt = now
	worker.UpdatedAt = now

	if _, err := r.accounts.InsertOne(ctx, worker); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrTaken
		}
		return fmt.Errorf("failed to create worker: %w", err)
	}
	return nil
}

// GetAccountByID retrieves a worker account by hex id.
func (r *MongoWorkerRepo) GetAccountByID(ctx context.Context, id string) (*models.Worker, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findAccount(ctx, bson.M{"_id": oid})
}

// GetAccountByIdentifier matches username or email.
func (r *MongoWorkerRepo) GetAccountByIdentifier(ctx context.Context, identifier string) (*models.Worker, error) {
	identifier = strings.TrimSpace(identifier)
	return r.findAccount(ctx, bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": strings.ToLower(identifier)},
	}})
}

func (r *MongoWorkerRepo) findAccount(ctx context.Context, filter bson.M) (*models.Worker, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	var worker models.Worker
	if err := r.accounts.FindOne(ctx, filter).Decode(&worker); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch worker: %w", err)
	}
	return &worker, nil
}

// AddFCMToken adds a device token to the account.
func (r *MongoWorkerRepo) AddFCMToken(ctx context.Context, accountID, token string) error {
	oid, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return repository.ErrNotFound
	}
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	update := bson.M{
		"$addToSet": bson.M{"fcmTokens": token},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	result, err := r.accounts.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to add device token for worker %s: %w", accountID, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
