package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"scratch_tracker/internal/domain"
	"scratch_tracker/internal/domain/entity"
	"scratch_tracker/pkg/contextx"
	"scratch_tracker/pkg/errcodes"
	"scratch_tracker/pkg/logx"
)

const defaultBatchSize = 8

type gameService interface {
	ListGames(ctx context.Context) ([]entity.GameSummary, error)
	FetchDetail(ctx context.Context, summary entity.GameSummary) entity.GameRecord
}

type snapshotStore interface {
	Get(ctx context.Context) (entity.Snapshot, error)
	Set(ctx context.Context, snapshot entity.Snapshot) error
}

type recordArchive interface {
	UpsertAll(ctx context.Context, fetchedAt time.Time, records []entity.GameRecord) error
}

// Runner drives one snapshot at a time: listing, then detail fetches in
// fixed-size batches. Batch N+1 starts only after batch N fully settles,
// which bounds simultaneous outbound requests without a general worker pool.
type Runner struct {
	games     gameService
	store     snapshotStore
	archive   recordArchive
	alerts    chan<- entity.Alert
	batchSize int

	mu      sync.Mutex
	current *Run
}

func NewRunner(games gameService, store snapshotStore) *Runner {
	return &Runner{
		games:     games,
		store:     store,
		batchSize: defaultBatchSize,
	}
}

func (r *Runner) WithBatchSize(size int) *Runner {
	if size > 0 {
		r.batchSize = size
	}

	return r
}

// WithArchive enables best-effort Postgres archiving of finished snapshots.
func (r *Runner) WithArchive(archive recordArchive) *Runner {
	r.archive = archive
	return r
}

// WithAlerts enables snapshot diffing against the previous cached snapshot;
// differences are sent to the channel.
func (r *Runner) WithAlerts(alerts chan<- entity.Alert) *Runner {
	r.alerts = alerts
	return r
}

// RunOption tunes a single run without touching the runner defaults.
type RunOption func(*runConfig)

type runConfig struct {
	batchSize int
}

// WithRunBatchSize overrides the batch size for one run only.
func WithRunBatchSize(size int) RunOption {
	return func(cfg *runConfig) {
		if size > 0 {
			cfg.batchSize = size
		}
	}
}

// Start begins an independent run and returns its observable handle. Only
// one run may be in flight; a second Start while the first is unsettled is a
// conflict. The run detaches from the caller's cancellation so an aborted
// HTTP request does not kill it mid-flight.
func (r *Runner) Start(ctx context.Context, opts ...RunOption) (*Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil && !r.current.Finished() {
		return nil, domain.NewError(errcodes.SnapshotInFlight, "a snapshot run is already in flight")
	}

	cfg := runConfig{batchSize: r.batchSize}

	for _, opt := range opts {
		opt(&cfg)
	}

	run := newRun(xid.New().String())
	r.current = run

	go r.execute(context.WithoutCancel(ctx), run, cfg)

	return run, nil
}

// Current returns the most recently started run, finished or not.
func (r *Runner) Current() (*Run, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.current, r.current != nil
}

// RunOnce starts a run and blocks until it settles. Used by the scheduled
// refresh task and the export CLI.
func (r *Runner) RunOnce(ctx context.Context) (entity.Snapshot, error) {
	run, err := r.Start(ctx)
	if err != nil {
		return entity.Snapshot{}, err
	}

	select {
	case <-run.Done():
	case <-ctx.Done():
		return entity.Snapshot{}, ctx.Err()
	}

	info := run.Progress()
	if info.Status == entity.SnapshotStatusError {
		return entity.Snapshot{}, fmt.Errorf("snapshot run %s: %s", info.RunID, info.Err)
	}

	return entity.Snapshot{FetchedAt: *info.FinishedAt, Records: run.Records()}, nil
}

func (r *Runner) execute(ctx context.Context, run *Run, cfg runConfig) {
	started := time.Now()

	// Downstream fetch logs pick the run id up from the context.
	ctx = contextx.WithRunID(ctx, contextx.RunID(run.ID()))
	ctx = contextx.WithLogger(ctx, logger(ctx).With(logx.FieldRunID, run.ID()))

	logger(ctx).Info("snapshot run started")

	run.setStatus(entity.SnapshotStatusListing)

	summaries, err := r.games.ListGames(ctx)
	if err != nil {
		logger(ctx).Error("listing failed", "error", err)
		run.fail(err)
		snapshotRunsTotal.WithLabelValues(runResultError).Inc()

		return
	}

	run.begin(summaries)
	run.setStatus(entity.SnapshotStatusDetailing)

	for _, batch := range lo.Chunk(summaries, cfg.batchSize) {
		g, batchCtx := errgroup.WithContext(ctx)

		for _, summary := range batch {
			g.Go(func() error {
				record := r.fetchRecord(batchCtx, summary)
				run.merge(record)
				snapshotItemsTotal.WithLabelValues(string(record.State)).Inc()

				return nil
			})
		}

		// Items never return errors; Wait only fences the batch.
		_ = g.Wait()
	}

	run.finish()
	snapshotRunsTotal.WithLabelValues(runResultSuccess).Inc()
	snapshotDuration.Observe(time.Since(started).Seconds())

	snapshot := entity.Snapshot{FetchedAt: time.Now(), Records: run.Records()}

	r.publish(ctx, snapshot)

	info := run.Progress()
	logger(ctx).Info("snapshot run finished",
		"total", info.Total,
		logx.FieldDurationMs, time.Since(started).Milliseconds(),
	)
}

// fetchRecord guards one item: any panic inside extraction becomes a failed
// record instead of taking down the batch.
func (r *Runner) fetchRecord(ctx context.Context, summary entity.GameSummary) (record entity.GameRecord) {
	defer func() {
		if p := recover(); p != nil {
			record = entity.NewGameRecord(summary)
			record.Fail(fmt.Sprintf("panic during detail fetch: %v", p))
		}
	}()

	return r.games.FetchDetail(ctx, summary)
}

// publish caches the snapshot, archives it, and emits alerts. All of it is
// best-effort: a persistence failure is logged, never fatal to the run.
func (r *Runner) publish(ctx context.Context, snapshot entity.Snapshot) {
	if r.store != nil {
		if r.alerts != nil {
			previous, err := r.store.Get(ctx)
			if err == nil {
				r.sendAlerts(ctx, diffSnapshots(previous.Records, snapshot.Records))
			}
		}

		if err := r.store.Set(ctx, snapshot); err != nil {
			logger(ctx).Error("snapshot cache failed", "error", err)
		}
	}

	if r.archive != nil {
		if err := r.archive.UpsertAll(ctx, snapshot.FetchedAt, snapshot.Records); err != nil {
			logger(ctx).Error("snapshot archive failed", "error", err)
		}
	}
}

func (r *Runner) sendAlerts(ctx context.Context, alerts []entity.Alert) {
	for _, alert := range alerts {
		select {
		case r.alerts <- alert:
		case <-ctx.Done():
			return
		}
	}
}

// Run is the observable handle of one snapshot run. Records improve
// monotonically as items settle; a mid-run reader sees partial results.
type Run struct {
	mu      sync.Mutex
	info    entity.SnapshotRun
	records []entity.GameRecord
	index   map[string]int
	updates chan entity.SnapshotRun
	done    chan struct{}
}

func newRun(id string) *Run {
	return &Run{
		info: entity.SnapshotRun{
			RunID:     id,
			Status:    entity.SnapshotStatusIdle,
			StartedAt: time.Now(),
		},
		index:   make(map[string]int),
		updates: make(chan entity.SnapshotRun, 64), //nolint:mnd
		done:    make(chan struct{}),
	}
}

func (r *Run) ID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.info.RunID
}

// Progress returns a copy of the current lifecycle info.
func (r *Run) Progress() entity.SnapshotRun {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.info
}

// Records returns a copy of the record collection in listing order.
func (r *Run) Records() []entity.GameRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entity.GameRecord, len(r.records))
	copy(out, r.records)

	return out
}

// Updates emits a progress sample after every settled item. Samples are
// dropped when the reader lags; Progress always has the latest.
func (r *Run) Updates() <-chan entity.SnapshotRun {
	return r.updates
}

// Done closes once the run reaches a terminal status.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

func (r *Run) Finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

func (r *Run) setStatus(status entity.SnapshotStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.info.Status = status
	r.notify()
}

func (r *Run) begin(summaries []entity.GameSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make([]entity.GameRecord, 0, len(summaries))

	for _, summary := range summaries {
		r.index[summary.GameNumber] = len(r.records)
		r.records = append(r.records, entity.NewGameRecord(summary))
	}

	r.info.Total = len(r.records)
}

// merge replaces exactly the record for the settled game number and bumps
// the completed counter. Identifier-keyed replacement keeps the merge
// idempotent and independent of completion order within a batch.
func (r *Run) merge(record entity.GameRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.index[record.GameNumber]
	if !ok {
		return
	}

	if r.records[idx].State != entity.GameStatePending {
		return
	}

	r.records[idx] = record
	r.info.Completed++
	r.notify()
}

func (r *Run) finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.info.Status = entity.SnapshotStatusDone
	r.info.FinishedAt = &now
	r.notify()

	close(r.done)
	close(r.updates)
}

func (r *Run) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.info.Status = entity.SnapshotStatusError
	r.info.FinishedAt = &now
	r.info.Err = err.Error()
	r.notify()

	close(r.done)
	close(r.updates)
}

func (r *Run) notify() {
	select {
	case r.updates <- r.info:
	default:
	}
}
