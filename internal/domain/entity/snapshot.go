package entity

import "time"

type SnapshotStatus string

const (
	SnapshotStatusIdle      SnapshotStatus = "idle"
	SnapshotStatusListing   SnapshotStatus = "listing"
	SnapshotStatusDetailing SnapshotStatus = "detailing"
	SnapshotStatusDone      SnapshotStatus = "done"
	SnapshotStatusError     SnapshotStatus = "error"
)

// Snapshot is the result of one full refresh run, cached as a unit under a
// fixed key. FetchedAt drives the user-facing staleness warning only; a
// stale snapshot is still served.
type Snapshot struct {
	FetchedAt time.Time    `json:"fetched_at"`
	Records   []GameRecord `json:"records"`
}

// Stale reports whether the snapshot is older than the threshold. Used for
// the UI warning only; stale data is still served.
func (s Snapshot) Stale(threshold time.Duration) bool {
	return time.Since(s.FetchedAt) > threshold
}

// SnapshotRun describes the live progress of one refresh run.
type SnapshotRun struct {
	RunID      string         `json:"run_id"`
	Status     SnapshotStatus `json:"status"`
	Completed  int            `json:"completed"`
	Total      int            `json:"total"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
	Err        string         `json:"error,omitempty"`
}
