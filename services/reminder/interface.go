package reminder

import (
	"context"

	"subwatch/models"
)

// ReminderService runs reminder passes and reports on the last one.
type ReminderService interface {
	// RunPass executes one full reminder cycle: resolve the offset bucket
	// for every reminder class, collect candidates, dispatch pushes, and
	// aggregate a run summary. A store failure aborts the pass with an
	// error and no summary.
	RunPass(ctx context.Context) (*models.RunSummary, error)
	// LastSummary returns the most recent completed summary, or nil when
	// no pass has completed yet.
	LastSummary() *models.RunSummary
}

// PushSender is the transport the engine dispatches through. The production
// implementation lives in services/notification.
type PushSender interface {
	Send(ctx context.Context, msg models.PushMessage) error
}
