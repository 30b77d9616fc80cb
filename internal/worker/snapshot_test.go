package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scratch_tracker/internal/domain"
	"scratch_tracker/internal/domain/entity"
	"scratch_tracker/internal/worker"
	"scratch_tracker/pkg/errcodes"
)

type fakeGames struct {
	summaries  []entity.GameSummary
	listingErr error
	failing    map[string]string
	delay      time.Duration
}

func (f *fakeGames) ListGames(context.Context) ([]entity.GameSummary, error) {
	return f.summaries, f.listingErr
}

func (f *fakeGames) FetchDetail(_ context.Context, summary entity.GameSummary) entity.GameRecord {
	time.Sleep(f.delay)

	record := entity.NewGameRecord(summary)

	if reason, bad := f.failing[summary.GameNumber]; bad {
		record.Fail(reason)

		return record
	}

	record.Resolve(entity.GameDetail{
		PackSize:         30,
		GuaranteedAmount: 255,
		TopPrize:         100000,
		TopPrizeInGame:   5,
		TopPrizeClaimed:  2,
		PrizesFound:      true,
	})

	return record
}

type fakeStore struct {
	mu       sync.Mutex
	snapshot entity.Snapshot
	cached   bool
	setErr   error
}

func (f *fakeStore) Get(context.Context) (entity.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.cached {
		return entity.Snapshot{}, errors.New("not cached")
	}

	return f.snapshot, nil
}

func (f *fakeStore) Set(_ context.Context, snapshot entity.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setErr != nil {
		return f.setErr
	}

	f.snapshot = snapshot
	f.cached = true

	return nil
}

func summaries(n int) []entity.GameSummary {
	out := make([]entity.GameSummary, 0, n)
	for i := range n {
		out = append(out, entity.GameSummary{
			GameNumber: fmt.Sprintf("%03d", i),
			Name:       fmt.Sprintf("Game %d", i),
			Price:      5,
			DetailURL:  fmt.Sprintf("https://lottery.test/scratchers/%03d.html", i),
		})
	}

	return out
}

func TestRunnerAllRecordsTerminal(t *testing.T) {
	rq := require.New(t)

	games := &fakeGames{
		summaries: summaries(20),
		failing:   map[string]string{"003": "status 503", "011": "status 404"},
	}
	store := &fakeStore{}

	snapshot, err := worker.NewRunner(games, store).WithBatchSize(4).RunOnce(context.Background())
	rq.NoError(err)
	rq.Len(snapshot.Records, 20)

	var failed int

	for _, record := range snapshot.Records {
		rq.NotEqual(entity.GameStatePending, record.State)

		if record.State == entity.GameStateFailed {
			failed++
			rq.NotEmpty(record.FailureReason)
		}
	}

	rq.Equal(2, failed)
	rq.True(store.cached)
}

func TestRunnerPreservesListingOrder(t *testing.T) {
	rq := require.New(t)

	games := &fakeGames{summaries: summaries(10), delay: time.Millisecond}

	snapshot, err := worker.NewRunner(games, &fakeStore{}).WithBatchSize(3).RunOnce(context.Background())
	rq.NoError(err)

	for i, record := range snapshot.Records {
		rq.Equal(fmt.Sprintf("%03d", i), record.GameNumber)
	}
}

func TestRunnerListingFailureIsFatal(t *testing.T) {
	rq := require.New(t)

	games := &fakeGames{listingErr: domain.NewError(errcodes.ListingFetchFailed, "connection refused")}
	runner := worker.NewRunner(games, &fakeStore{})

	_, err := runner.RunOnce(context.Background())
	rq.Error(err)
	rq.Contains(err.Error(), "connection refused")

	run, ok := runner.Current()
	rq.True(ok)
	rq.Equal(entity.SnapshotStatusError, run.Progress().Status)
	rq.Empty(run.Records())
}

func TestRunnerRejectsSecondStart(t *testing.T) {
	rq := require.New(t)

	games := &fakeGames{summaries: summaries(8), delay: 50 * time.Millisecond}
	runner := worker.NewRunner(games, &fakeStore{})

	run, err := runner.Start(context.Background())
	rq.NoError(err)

	_, err = runner.Start(context.Background())

	var appErr *domain.AppError

	rq.ErrorAs(err, &appErr)
	rq.Equal(errcodes.SnapshotInFlight, appErr.Code)

	<-run.Done()

	// A settled run no longer blocks a new one.
	_, err = runner.Start(context.Background())
	rq.NoError(err)
}

func TestRunnerProgressReachesTotal(t *testing.T) {
	rq := require.New(t)

	games := &fakeGames{summaries: summaries(9)}
	runner := worker.NewRunner(games, &fakeStore{}).WithBatchSize(2)

	run, err := runner.Start(context.Background())
	rq.NoError(err)

	var lastCompleted int

	for info := range run.Updates() {
		rq.GreaterOrEqual(info.Completed, lastCompleted)
		lastCompleted = info.Completed
	}

	info := run.Progress()
	rq.Equal(entity.SnapshotStatusDone, info.Status)
	rq.Equal(9, info.Completed)
	rq.Equal(9, info.Total)
	rq.NotNil(info.FinishedAt)
}

func TestRunnerCacheFailureNotFatal(t *testing.T) {
	rq := require.New(t)

	games := &fakeGames{summaries: summaries(3)}
	store := &fakeStore{setErr: errors.New("redis down")}

	snapshot, err := worker.NewRunner(games, store).RunOnce(context.Background())
	rq.NoError(err)
	rq.Len(snapshot.Records, 3)
}

func TestRunnerEmitsAlerts(t *testing.T) {
	rq := require.New(t)

	previous := entity.Snapshot{FetchedAt: time.Now(), Records: []entity.GameRecord{
		{
			GameSummary:        entity.GameSummary{GameNumber: "000", Name: "Game 0"},
			State:              entity.GameStateResolved,
			TopPrizesRemaining: 0,
		},
	}}

	games := &fakeGames{summaries: summaries(2)}
	store := &fakeStore{snapshot: previous, cached: true}
	alerts := make(chan entity.Alert, 8)

	_, err := worker.NewRunner(games, store).WithAlerts(alerts).RunOnce(context.Background())
	rq.NoError(err)

	// Game 001 is new; game 000 was already known and its remaining count
	// went up, which is not alertable.
	rq.Len(alerts, 1)

	alert := <-alerts
	rq.Equal(entity.AlertKindNewGame, alert.Kind)
	rq.Equal("001", alert.GameNumber)
}
