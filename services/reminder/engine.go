package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	subscriptionRepo "subwatch/database/repository/subscription"
	userRepo "subwatch/database/repository/user"
	"subwatch/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClassHours holds the local wall-clock hour at which each reminder class
// fires. Distinct hours resolve to disjoint offset buckets within one pass.
type ClassHours struct {
	Billing    int
	Payday     int
	Marketing  int
	Engagement int
}

// Engine is the production ReminderService. All collaborators are injected;
// the engine itself holds no persisted state, so a pass is deterministic for
// a fixed clock instant in its decision phase.
type Engine struct {
	Users  userRepo.UserRepository
	Subs   subscriptionRepo.SubscriptionRepository
	Push   PushSender
	Dedup  DedupStore // optional, nil disables double-send protection
	Logger *zap.Logger
	Hours  ClassHours
	Now    func() time.Time // optional, defaults to time.Now

	mu   sync.Mutex
	last *models.RunSummary
}

// outbound is one composed message waiting for dispatch, tagged with enough
// context for dedup keys and result accounting.
type outbound struct {
	class  string
	userID string
	itemID string
	day    time.Time // offset-local matched day, for the dedup key
	msg    models.PushMessage
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) log() *zap.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return zap.NewNop()
}

// RunPass executes one reminder cycle.
func (e *Engine) RunPass(ctx context.Context) (*models.RunSummary, error) {
	started := time.Now()
	now := e.now().UTC()

	summary := &models.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: now,
		Buckets:   make(map[string]int),
	}
	e.log().Info("reminder pass started",
		zap.String("runId", summary.RunID),
		zap.Int("utcHour", now.Hour()))

	classes := []struct {
		name    string
		hour    int
		collect func(ctx context.Context, now time.Time, offset int) ([]outbound, error)
	}{
		{ClassBilling, e.Hours.Billing, e.collectBilling},
		{ClassPayday, e.Hours.Payday, e.collectPayday},
		{ClassMarketing, e.Hours.Marketing, e.collectMarketing},
		{ClassEngagement, e.Hours.Engagement, e.collectEngagement},
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		batch []outbound
	)
	errCh := make(chan error, 1)

	for _, c := range classes {
		offset := ResolveOffset(c.hour, now.Hour())
		summary.Buckets[c.name] = offset

		wg.Add(1)
		go func(name string, offset int, collect func(context.Context, time.Time, int) ([]outbound, error)) {
			defer wg.Done()
			msgs, err := collect(ctx, now, offset)
			if err != nil {
				select {
				case errCh <- fmt.Errorf("%s: %w", name, err):
				default:
				}
				return
			}
			mu.Lock()
			batch = append(batch, msgs...)
			mu.Unlock()
		}(c.name, offset, c.collect)
	}
	wg.Wait()

	select {
	case err := <-errCh:
		e.log().Error("reminder pass aborted", zap.String("runId", summary.RunID), zap.Error(err))
		return nil, err
	default:
	}

	e.dispatch(ctx, batch, summary)

	summary.DurationMS = time.Since(started).Milliseconds()
	e.mu.Lock()
	e.last = summary
	e.mu.Unlock()

	e.log().Info("reminder pass finished",
		zap.String("runId", summary.RunID),
		zap.Int("attempted", summary.Attempted),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped),
		zap.Int64("durationMs", summary.DurationMS))
	return summary, nil
}

// LastSummary returns the most recent completed run summary.
func (e *Engine) LastSummary() *models.RunSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// collectBilling gathers payment reminders for the bucket whose local clock
// just hit the billing hour.
func (e *Engine) collectBilling(ctx context.Context, now time.Time, offset int) ([]outbound, error) {
	users, err := e.Users.GetReachableByUTCOffset(ctx, offset)
	if err != nil {
		return nil, err
	}

	todayNoon := NormalizeToNoon(now, offset)
	var out []outbound
	for _, u := range users {
		if !u.Reachable() {
			continue
		}
		subs, err := e.Subs.ListReminderEligible(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		for _, s := range subs {
			due := s.DueDate()
			if !due.Valid {
				e.log().Warn("skipping subscription with unparseable due date",
					zap.String("userId", u.ID), zap.String("subscriptionId", s.ID))
				continue
			}
			dueNoon := NormalizeToNoon(AdjustDueDate(due.Time), offset)
			lead := s.ReminderDaysBefore.OrDefault(1)
			if !MatchesLeadTime(todayNoon, dueNoon, lead) {
				continue
			}
			out = append(out, outbound{
				class:  ClassBilling,
				userID: u.ID,
				itemID: s.ID,
				day:    todayNoon,
				msg:    ComposeBillingReminder(u, s, lead),
			})
		}
	}
	return out, nil
}

// collectPayday gathers payday announcements: users whose nextPayday lands on
// the bucket's current local day.
func (e *Engine) collectPayday(ctx context.Context, now time.Time, offset int) ([]outbound, error) {
	users, err := e.Users.GetReachableByUTCOffset(ctx, offset)
	if err != nil {
		return nil, err
	}

	todayNoon := NormalizeToNoon(now, offset)
	var out []outbound
	for _, u := range users {
		if !u.Reachable() || !u.NextPayday.Valid {
			continue
		}
		paydayNoon := NormalizeToNoon(AdjustDueDate(u.NextPayday.Time), offset)
		if !MatchesLeadTime(todayNoon, paydayNoon, 0) {
			continue
		}
		out = append(out, outbound{
			class:  ClassPayday,
			userID: u.ID,
			day:    todayNoon,
			msg:    ComposePayday(u),
		})
	}
	return out, nil
}

// collectMarketing gathers the premium upsell for every non-premium user in
// the bucket. Only an explicit isPremium == true suppresses it.
func (e *Engine) collectMarketing(ctx context.Context, now time.Time, offset int) ([]outbound, error) {
	users, err := e.Users.GetReachableByUTCOffset(ctx, offset)
	if err != nil {
		return nil, err
	}

	todayNoon := NormalizeToNoon(now, offset)
	var out []outbound
	for _, u := range users {
		if !u.Reachable() || u.Premium() {
			continue
		}
		out = append(out, outbound{
			class:  ClassMarketing,
			userID: u.ID,
			day:    todayNoon,
			msg:    ComposeMarketing(u),
		})
	}
	return out, nil
}

// collectEngagement gathers the rotating evening nudge for every user in the
// bucket. The prompt alternates on the bucket-local day of year.
func (e *Engine) collectEngagement(ctx context.Context, now time.Time, offset int) ([]outbound, error) {
	users, err := e.Users.GetReachableByUTCOffset(ctx, offset)
	if err != nil {
		return nil, err
	}

	todayNoon := NormalizeToNoon(now, offset)
	var out []outbound
	for _, u := range users {
		if !u.Reachable() {
			continue
		}
		out = append(out, outbound{
			class:  ClassEngagement,
			userID: u.ID,
			day:    todayNoon,
			msg:    ComposeEngagement(u, todayNoon.YearDay()),
		})
	}
	return out, nil
}

// dispatch fans out every send concurrently. Each failure is caught per item
// so one rejected push never aborts its siblings; all sends are awaited before
// the pass reports completion.
func (e *Engine) dispatch(ctx context.Context, batch []outbound, summary *models.RunSummary) {
	if len(batch) == 0 {
		e.log().Info("no reminders to send this cycle", zap.String("runId", summary.RunID))
		return
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, ob := range batch {
		if e.Dedup != nil {
			reserved, err := e.Dedup.Reserve(ctx, dispatchKey(ob.class, ob.userID, ob.itemID, ob.day))
			if err != nil {
				// Dedup is best-effort: prefer a possible duplicate
				// over a silently dropped reminder.
				e.log().Warn("dedup reserve failed, sending anyway",
					zap.String("userId", ob.userID), zap.Error(err))
			} else if !reserved {
				summary.Skipped++
				continue
			}
		}

		summary.Attempted++
		wg.Add(1)
		go func(ob outbound) {
			defer wg.Done()
			res := models.DispatchResult{Class: ob.class, UserID: ob.userID, ItemID: ob.itemID}
			if err := e.Push.Send(ctx, ob.msg); err != nil {
				res.Error = err.Error()
				e.log().Warn("push send failed",
					zap.String("class", ob.class),
					zap.String("userId", ob.userID),
					zap.Error(err))
			}
			mu.Lock()
			if res.OK() {
				summary.Succeeded++
			} else {
				summary.Failed++
				summary.Failures = append(summary.Failures, res)
			}
			mu.Unlock()
		}(ob)
	}
	wg.Wait()
}
