package userRepo

import (
	"context"
	"fmt"
	"time"

	"subwatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewMongoUserRepo creates a new UserRepository backed by the users collection.
func NewMongoUserRepo(db *mongo.Database, logger *zap.Logger) UserRepository {
	repo := &MongoUserRepo{coll: db.Collection("users"), logger: logger}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create user indexes", zap.Error(err))
	}
	return repo
}

// ensureIndexes creates indexes for fields frequently used in queries. The
// offset index is what keeps the hourly bucket query off a full scan.
func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "utcOffset", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a user by its unique ID.
func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return &user, nil
}

// GetAll retrieves all user documents.
func (r *MongoUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	defer cursor.Close(ctx)

	return r.decodeAll(ctx, cursor)
}

// GetReachableByUTCOffset retrieves pushable users in one offset bucket.
func (r *MongoUserRepo) GetReachableByUTCOffset(ctx context.Context, offset int) ([]models.User, error) {
	filter := bson.M{
		"utcOffset": offset,
		"fcmToken":  bson.M{"$exists": true, "$ne": ""},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users for offset %d: %w", offset, err)
	}
	defer cursor.Close(ctx)

	return r.decodeAll(ctx, cursor)
}

// decodeAll drains a cursor, skipping individual documents that fail to
// decode so one corrupt record never poisons a whole bucket.
func (r *MongoUserRepo) decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]models.User, error) {
	var users []models.User
	for cursor.Next(ctx) {
		var u models.User
		if err := cursor.Decode(&u); err != nil {
			r.logger.Warn("skipping undecodable user document", zap.Error(err))
			continue
		}
		users = append(users, u)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("user cursor failed: %w", err)
	}
	return users, nil
}
