package workerRepo

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
)

// CreateProfile inserts a worker profile.
func (r *MongoWorkerRepo) CreateProfile(ctx context.Context, profile *models.WorkerProfile) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	profile.ID = primitive.NewObjectID()
	profile.CreatedAt = time.Now()
	if _, err := r.profiles.InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("failed to create worker profile: %w", err)
	}
	return nil
}

// GetProfileByID retrieves a profile by hex id.
func (r *MongoWorkerRepo) GetProfileByID(ctx context.Context, id string) (*models.WorkerProfile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	var profile models.WorkerProfile
	if err := r.profiles.FindOne(ctx, bson.M{"_id": oid}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch worker profile %s: %w", id, err)
	}
	return &profile, nil
}

// ListProfiles returns every profile, newest first.
func (r *MongoWorkerRepo) ListProfiles(ctx context.Context) ([]models.WorkerProfile, error) {
	return r.findProfiles(ctx, bson.M{})
}

// ListProfilesByType returns profiles whose workerTypes flag is set.
func (r *MongoWorkerRepo) ListProfilesByType(ctx context.Context, workerType string) ([]models.WorkerProfile, error) {
	return r.findProfiles(ctx, bson.M{"workerTypes." + workerType: true})
}

// ListProfilesByAccount returns the profiles a worker account submitted.
func (r *MongoWorkerRepo) ListProfilesByAccount(ctx context.Context, accountID string) ([]models.WorkerProfile, error) {
	return r.findProfiles(ctx, bson.M{"accountId": accountID})
}

func (r *MongoWorkerRepo) findProfiles(ctx context.Context, filter bson.M) ([]models.WorkerProfile, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.profiles.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list worker profiles: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := []models.WorkerProfile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode worker profiles: %w", err)
	}
	return profiles, nil
}

// DeviceTokensForProfiles collects the FCM tokens of the profile owners.
func (r *MongoWorkerRepo) DeviceTokensForProfiles(ctx context.Context, profileIDs []string) ([]string, error) {
	oids := make([]primitive.ObjectID, 0, len(profileIDs))
	for _, id := range profileIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}

	profiles, err := r.findProfiles(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	var accountIDs []primitive.ObjectID
	for _, p := range profiles {
		if oid, err := primitive.ObjectIDFromHex(p.AccountID); err == nil {
			accountIDs = append(accountIDs, oid)
		}
	}
	if len(accountIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()
	cursor, err := r.accounts.Find(ctx, bson.M{"_id": bson.M{"$in": accountIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch worker accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []models.Worker
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode worker accounts: %w", err)
	}
	seen := map[string]bool{}
	var tokens []string
	for _, a := range accounts {
		for _, t := range a.FCMTokens {
			if !seen[t] {
				seen[t] = true
				tokens = append(tokens, t)
			}
		}
	}
	return tokens, nil
}
