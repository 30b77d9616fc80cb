package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"scratch_tracker/internal/domain"
	"scratch_tracker/pkg/errcodes"
)

const TaskSnapshotRefresh = "snapshot:refresh"

func NewRefreshTask() *asynq.Task {
	return asynq.NewTask(TaskSnapshotRefresh, nil)
}

// HandleRefreshTask runs one scheduled snapshot. A refresh that collides
// with an in-flight run is skipped, not retried: the running snapshot
// already covers it.
func (r *Runner) HandleRefreshTask(ctx context.Context, _ *asynq.Task) error {
	_, err := r.RunOnce(ctx)
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) && appErr.Code == errcodes.SnapshotInFlight {
			logger(ctx).Info("scheduled refresh skipped, run already in flight")

			return nil
		}

		return fmt.Errorf("runner.RunOnce: %w", err)
	}

	return nil
}
