package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"subwatch/models"
)

// fixedNow is 09:00 UTC, so with the default test hours the billing class
// resolves offset +1, payday 0, marketing +4, engagement +11.
var fixedNow = time.Date(2025, time.December, 25, 9, 0, 0, 0, time.UTC)

var testHours = ClassHours{Billing: 10, Payday: 9, Marketing: 13, Engagement: 20}

type fakeUserRepo struct {
	byOffset map[int][]models.User
	err      error
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, users := range f.byOffset {
		for _, u := range users {
			if u.ID == id {
				return &u, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	var all []models.User
	for _, users := range f.byOffset {
		all = append(all, users...)
	}
	return all, f.err
}

func (f *fakeUserRepo) GetReachableByUTCOffset(_ context.Context, offset int) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byOffset[offset], nil
}

type fakeSubRepo struct {
	byUser map[string][]models.Subscription
	err    error
}

func (f *fakeSubRepo) ListReminderEligible(_ context.Context, userID string) ([]models.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

type fakeSender struct {
	mu        sync.Mutex
	sent      []models.PushMessage
	failToken string
}

func (f *fakeSender) Send(_ context.Context, msg models.PushMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg.Token == f.failToken {
		return errors.New("gateway rejected token")
	}
	f.sent = append(f.sent, msg)
	return nil
}

type memDedup struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newMemDedup() *memDedup { return &memDedup{keys: make(map[string]bool)} }

func (m *memDedup) Reserve(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	return true, nil
}

func flexDate(y int, m time.Month, d int) models.FlexTime {
	return models.FlexTime{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func activeSub(id, userID, name string, due models.FlexTime, lead models.FlexInt) models.Subscription {
	return models.Subscription{
		ID:                 id,
		UserID:             userID,
		Name:               name,
		Amount:             9.99,
		Currency:           "USD",
		NextBillingDate:    due,
		ReminderEnabled:    true,
		Status:             models.SubscriptionStatusActive,
		ReminderDaysBefore: lead,
	}
}

func newTestEngine(users *fakeUserRepo, subs *fakeSubRepo, sender *fakeSender, dedup DedupStore) *Engine {
	return &Engine{
		Users: users,
		Subs:  subs,
		Push:  sender,
		Dedup: dedup,
		Hours: testHours,
		Now:   func() time.Time { return fixedNow },
	}
}

func TestRunPass_EmptyBuckets(t *testing.T) {
	eng := newTestEngine(
		&fakeUserRepo{byOffset: map[int][]models.User{}},
		&fakeSubRepo{byUser: map[string][]models.Subscription{}},
		&fakeSender{},
		nil,
	)

	summary, err := eng.RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if summary.Attempted != 0 || summary.Succeeded != 0 || summary.Failed != 0 {
		t.Fatalf("expected all-zero summary, got %+v", summary)
	}
	if summary.Buckets[ClassBilling] != 1 {
		t.Fatalf("billing bucket = %d, want 1", summary.Buckets[ClassBilling])
	}
}

func TestRunPass_BillingMatch(t *testing.T) {
	// Offset +1 local time is 10:00; due tomorrow with default lead 1.
	users := &fakeUserRepo{byOffset: map[int][]models.User{
		1: {{ID: "u1", FCMToken: "tok-1", UTCOffset: 1}},
	}}
	subs := &fakeSubRepo{byUser: map[string][]models.Subscription{
		"u1": {
			activeSub("s1", "u1", "Netflix", flexDate(2025, time.December, 26), models.FlexInt{}),
			activeSub("s2", "u1", "Spotify", flexDate(2025, time.December, 30), models.FlexInt{}),
		},
	}}
	sender := &fakeSender{}

	summary, err := newTestEngine(users, subs, sender, nil).RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if summary.Attempted != 1 || summary.Succeeded != 1 {
		t.Fatalf("summary = %+v, want exactly the due-tomorrow reminder", summary)
	}
	if len(sender.sent) != 1 || sender.sent[0].Data["id"] != "s1" {
		t.Fatalf("sent = %+v, want the s1 reminder", sender.sent)
	}
}

func TestRunPass_CustomAndMalformedLead(t *testing.T) {
	users := &fakeUserRepo{byOffset: map[int][]models.User{
		1: {{ID: "u1", FCMToken: "tok-1", UTCOffset: 1}},
	}}
	subs := &fakeSubRepo{byUser: map[string][]models.Subscription{
		"u1": {
			// Lead 3, due in 3 days: matches.
			activeSub("s1", "u1", "Gym", flexDate(2025, time.December, 28), models.FlexInt{Value: 3, Valid: true}),
			// Malformed lead falls back to 1; due in 3 days: no match.
			activeSub("s2", "u1", "iCloud", flexDate(2025, time.December, 28), models.FlexInt{}),
			// Malformed lead falls back to 1; due tomorrow: matches.
			activeSub("s3", "u1", "Dropbox", flexDate(2025, time.December, 26), models.FlexInt{}),
		},
	}}
	sender := &fakeSender{}

	summary, err := newTestEngine(users, subs, sender, nil).RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if summary.Succeeded != 2 {
		t.Fatalf("succeeded = %d, want 2 (s1 and s3)", summary.Succeeded)
	}
	got := map[string]bool{}
	for _, m := range sender.sent {
		got[m.Data["id"]] = true
	}
	if !got["s1"] || !got["s3"] || got["s2"] {
		t.Fatalf("sent ids = %v, want s1 and s3 only", got)
	}
}

func TestRunPass_UnparseableDueDateSkipped(t *testing.T) {
	users := &fakeUserRepo{byOffset: map[int][]models.User{
		1: {{ID: "u1", FCMToken: "tok-1", UTCOffset: 1}},
	}}
	subs := &fakeSubRepo{byUser: map[string][]models.Subscription{
		"u1": {activeSub("s1", "u1", "Broken", models.FlexTime{}, models.FlexInt{})},
	}}
	sender := &fakeSender{}

	summary, err := newTestEngine(users, subs, sender, nil).RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if summary.Attempted != 0 {
		t.Fatalf("attempted = %d, want 0: unparseable due date must be skipped", summary.Attempted)
	}
}

func TestRunPass_PartialFailureIsolation(t *testing.T) {
	users := &fakeUserRepo{byOffset: map[int][]models.User{
		1: {
			{ID: "u1", FCMToken: "tok-1", UTCOffset: 1},
			{ID: "u2", FCMToken: "tok-2", UTCOffset: 1},
			{ID: "u3", FCMToken: "tok-3", UTCOffset: 1},
		},
	}}
	due := flexDate(2025, time.December, 26)
	subs := &fakeSubRepo{byUser: map[string][]models.Subscription{
		"u1": {activeSub("s1", "u1", "A", due, models.FlexInt{})},
		"u2": {activeSub("s2", "u2", "B", due, models.FlexInt{})},
		"u3": {activeSub("s3", "u3", "C", due, models.FlexInt{})},
	}}
	sender := &fakeSender{failToken: "tok-2"}

	summary, err := newTestEngine(users, subs, sender, nil).RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if summary.Attempted != 3 || summary.Succeeded != 2 || summary.Failed != 1 {
		t.Fatalf("summary = %+v, want attempted 3 / succeeded 2 / failed 1", summary)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].UserID != "u2" {
		t.Fatalf("failures = %+v, want the u2 dispatch", summary.Failures)
	}
}

func TestRunPass_PaydayAndMarketingAndEngagement(t *testing.T) {
	premium := true
	users := &fakeUserRepo{byOffset: map[int][]models.User{
		// Payday bucket (offset 0): payday lands today.
		0: {{ID: "p1", FCMToken: "tok-p1", NextPayday: flexDate(2025, time.December, 25)}},
		// Marketing bucket (offset +4): premium user must be excluded.
		4: {
			{ID: "m1", FCMToken: "tok-m1"},
			{ID: "m2", FCMToken: "tok-m2", IsPremium: &premium},
		},
		// Engagement bucket (offset +11).
		11: {{ID: "e1", FCMToken: "tok-e1"}},
	}}
	sender := &fakeSender{}

	summary, err := newTestEngine(users, &fakeSubRepo{byUser: map[string][]models.Subscription{}}, sender, nil).
		RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if summary.Succeeded != 3 {
		t.Fatalf("succeeded = %d, want 3 (payday, one marketing, one engagement)", summary.Succeeded)
	}

	byType := map[string]int{}
	for _, m := range sender.sent {
		byType[m.Data["type"]]++
	}
	if byType[ClassPayday] != 1 || byType[ClassMarketing] != 1 || byType[ClassEngagement] != 1 {
		t.Fatalf("sent types = %v", byType)
	}
	for _, m := range sender.sent {
		if m.Token == "tok-m2" {
			t.Fatal("premium user received the marketing prompt")
		}
	}
}

func TestRunPass_StoreFailureAbortsWithoutSummary(t *testing.T) {
	users := &fakeUserRepo{err: errors.New("store unreachable")}
	eng := newTestEngine(users, &fakeSubRepo{}, &fakeSender{}, nil)

	summary, err := eng.RunPass(context.Background())
	if err == nil {
		t.Fatal("expected error from unreachable store")
	}
	if summary != nil {
		t.Fatalf("summary = %+v, want nil on store failure", summary)
	}
	if eng.LastSummary() != nil {
		t.Fatal("aborted pass must not record a summary")
	}
}

func TestRunPass_DedupSkipsRepeatDispatch(t *testing.T) {
	users := &fakeUserRepo{byOffset: map[int][]models.User{
		1: {{ID: "u1", FCMToken: "tok-1", UTCOffset: 1}},
	}}
	subs := &fakeSubRepo{byUser: map[string][]models.Subscription{
		"u1": {activeSub("s1", "u1", "Netflix", flexDate(2025, time.December, 26), models.FlexInt{})},
	}}
	sender := &fakeSender{}
	dedup := newMemDedup()
	eng := newTestEngine(users, subs, sender, dedup)

	first, err := eng.RunPass(context.Background())
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if first.Attempted != 1 || first.Skipped != 0 {
		t.Fatalf("first pass summary = %+v", first)
	}

	// A host-retried run an instant later must not double-send.
	second, err := eng.RunPass(context.Background())
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if second.Attempted != 0 || second.Skipped != 1 {
		t.Fatalf("second pass summary = %+v, want 0 attempted / 1 skipped", second)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages across both passes, want 1", len(sender.sent))
	}
}

func TestRunPass_RecordsLastSummary(t *testing.T) {
	eng := newTestEngine(
		&fakeUserRepo{byOffset: map[int][]models.User{}},
		&fakeSubRepo{},
		&fakeSender{},
		nil,
	)
	if eng.LastSummary() != nil {
		t.Fatal("fresh engine must have no summary")
	}
	summary, err := eng.RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if got := eng.LastSummary(); got != summary {
		t.Fatalf("LastSummary = %p, want %p", got, summary)
	}
}
