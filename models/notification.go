package models

import "time"

// PushMessage is a transport-ready notification payload.
type PushMessage struct {
	Token string            `json:"-"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

// DispatchResult records the outcome of a single send attempt.
type DispatchResult struct {
	Class  string `json:"class"`
	UserID string `json:"userId"`
	ItemID string `json:"itemId,omitempty"`
	Error  string `json:"error,omitempty"`
}

// OK reports whether the send succeeded.
func (r DispatchResult) OK() bool {
	return r.Error == ""
}

// RunSummary aggregates one reminder pass.
type RunSummary struct {
	RunID      string           `json:"runId"`
	StartedAt  time.Time        `json:"startedAt"`
	DurationMS int64            `json:"durationMs"`
	Buckets    map[string]int   `json:"buckets"`
	Attempted  int              `json:"attempted"`
	Succeeded  int              `json:"succeeded"`
	Failed     int              `json:"failed"`
	Skipped    int              `json:"skipped"`
	Failures   []DispatchResult `json:"failures,omitempty"`
}
