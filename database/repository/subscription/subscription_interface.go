package subscriptionRepo

import (
	"context"

	"subwatch/models"
)

// SubscriptionRepository defines read access to subscription documents.
type SubscriptionRepository interface {
	// ListReminderEligible retrieves a user's subscriptions that have
	// reminders enabled and an active status. Due-date parseability is
	// checked by the caller after decoding.
	ListReminderEligible(ctx context.Context, userID string) ([]models.Subscription, error)
}
