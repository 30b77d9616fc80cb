package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"git.appkode.ru/pub/go/failure"

	"scratch_tracker/internal/domain"
	"scratch_tracker/internal/domain/entity"
	"scratch_tracker/internal/export"
	"scratch_tracker/internal/worker"
	"scratch_tracker/pkg/errcodes"
	"scratch_tracker/pkg/httpx/reply"
	"scratch_tracker/pkg/httpx/req"
	"scratch_tracker/pkg/rest"
)

// staleAfter is the user-facing warning threshold; stale snapshots are still
// served in full.
const staleAfter = 24 * time.Hour

type snapshotRunner interface {
	Start(ctx context.Context, opts ...worker.RunOption) (*worker.Run, error)
	Current() (*worker.Run, bool)
}

type snapshotStore interface {
	Get(ctx context.Context) (entity.Snapshot, error)
	Remove(ctx context.Context) error
}

type GamesServer struct {
	runner snapshotRunner
	store  snapshotStore
}

func NewGamesServer(runner snapshotRunner, store snapshotStore) GamesServer {
	return GamesServer{
		runner: runner,
		store:  store,
	}
}

func (s GamesServer) getV1Games(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	snapshot, err := s.currentSnapshot(ctx)
	if err != nil {
		return err
	}

	records := snapshot.Records

	if state := r.URL.Query().Get("state"); state != "" {
		records = filterByState(records, entity.GameState(state))
	}

	records, err = sortRecords(records, r.URL.Query().Get("sort"), r.URL.Query().Get("order"))
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTGamesResponse(records, snapshot))

	return nil
}

func (s GamesServer) getV1Game(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	gameNumber := r.PathValue("gameNumber")

	snapshot, err := s.currentSnapshot(ctx)
	if err != nil {
		return err
	}

	for _, record := range snapshot.Records {
		if record.GameNumber == gameNumber {
			reply.JSON(ctx, w, http.StatusOK, newRESTGame(record))

			return nil
		}
	}

	return failure.NewNotFoundError(
		fmt.Sprintf("game %s not in current snapshot", gameNumber),
		failure.WithCode(errcodes.GameNotFound),
	)
}

func (s GamesServer) getV1GamesExport(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	snapshot, err := s.currentSnapshot(ctx)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="scratchers.csv"`)

	if err := export.WriteCSV(w, snapshot.Records); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}

	return nil
}

func (s GamesServer) postV1Snapshots(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.RefreshRequest

	if r.ContentLength != 0 {
		if err := req.Read(r, &request); err != nil {
			return fmt.Errorf("req.Read: %w", err)
		}
	}

	var opts []worker.RunOption

	if request.BatchSize > 0 {
		opts = append(opts, worker.WithRunBatchSize(request.BatchSize))
	}

	run, err := s.runner.Start(ctx, opts...)
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) && appErr.Code == errcodes.SnapshotInFlight {
			return failure.NewConflictError(appErr.Message, failure.WithCode(appErr.Code))
		}

		return fmt.Errorf("runner.Start: %w", err)
	}

	reply.JSON(ctx, w, http.StatusAccepted, newRESTSnapshot(run.Progress()))

	return nil
}

// deleteV1SnapshotsCache drops the cached snapshot so the next listing read
// requires a fresh run. Mostly an operational escape hatch.
func (s GamesServer) deleteV1SnapshotsCache(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if err := s.store.Remove(ctx); err != nil {
		return fmt.Errorf("store.Remove: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s GamesServer) getV1SnapshotsCurrent(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	run, ok := s.runner.Current()
	if !ok {
		return failure.NewNotFoundError(
			"no snapshot run started yet",
			failure.WithCode(errcodes.SnapshotNotCached),
		)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSnapshot(run.Progress()))

	return nil
}

// currentSnapshot prefers the in-flight run's partial, monotonically
// improving records over the cached snapshot, so a reader polling mid-run
// watches the collection fill in.
func (s GamesServer) currentSnapshot(ctx context.Context) (entity.Snapshot, error) {
	if run, ok := s.runner.Current(); ok && !run.Finished() {
		return entity.Snapshot{
			FetchedAt: run.Progress().StartedAt,
			Records:   run.Records(),
		}, nil
	}

	snapshot, err := s.store.Get(ctx)
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) && appErr.Code == errcodes.SnapshotNotCached {
			return entity.Snapshot{}, failure.NewNotFoundError(appErr.Message, failure.WithCode(appErr.Code))
		}

		return entity.Snapshot{}, fmt.Errorf("store.Get: %w", err)
	}

	return snapshot, nil
}

func filterByState(records []entity.GameRecord, state entity.GameState) []entity.GameRecord {
	filtered := make([]entity.GameRecord, 0, len(records))

	for _, record := range records {
		if record.State == state {
			filtered = append(filtered, record)
		}
	}

	return filtered
}
