package subscriptionRepo

import (
	"context"
	"fmt"
	"time"

	"subwatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoSubscriptionRepo implements SubscriptionRepository using MongoDB.
type MongoSubscriptionRepo struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewMongoSubscriptionRepo creates a new SubscriptionRepository backed by the
// subscriptions collection.
func NewMongoSubscriptionRepo(db *mongo.Database, logger *zap.Logger) SubscriptionRepository {
	repo := &MongoSubscriptionRepo{coll: db.Collection("subscriptions"), logger: logger}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create subscription indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoSubscriptionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "reminderEnabled", Value: 1},
			{Key: "status", Value: 1},
		}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// ListReminderEligible retrieves the user's active, reminder-enabled
// subscriptions as a filtered query.
func (r *MongoSubscriptionRepo) ListReminderEligible(ctx context.Context, userID string) ([]models.Subscription, error) {
	filter := bson.M{
		"userId":          userID,
		"reminderEnabled": true,
		"status":          models.SubscriptionStatusActive,
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve subscriptions for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var subs []models.Subscription
	for cursor.Next(ctx) {
		var s models.Subscription
		if err := cursor.Decode(&s); err != nil {
			r.logger.Warn("skipping undecodable subscription document",
				zap.String("userId", userID), zap.Error(err))
			continue
		}
		subs = append(subs, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("subscription cursor failed: %w", err)
	}
	return subs, nil
}
