package userRepo

import (
	"context"

	"subwatch/models"
)

// UserRepository defines read access to user documents. The reminder engine
// never writes users; ownership stays with the mobile application.
type UserRepository interface {
	// GetByID retrieves a single user. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetAll retrieves every user document.
	GetAll(ctx context.Context) ([]models.User, error)
	// GetReachableByUTCOffset retrieves users in the given offset bucket
	// that carry a non-empty FCM token. An empty result is normal.
	GetReachableByUTCOffset(ctx context.Context, offset int) ([]models.User, error)
}
