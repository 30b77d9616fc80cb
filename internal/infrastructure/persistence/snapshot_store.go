package persistence

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"scratch_tracker/internal/domain"
	"scratch_tracker/internal/domain/entity"
	"scratch_tracker/pkg/errcodes"
)

const snapshotKey = "scratch_tracker:snapshot"

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// SnapshotStore caches the last successful snapshot under one fixed key.
// The cache never expires on its own: staleness is a user-facing warning,
// not an invalidation rule, so TTL is deliberately absent.
type SnapshotStore struct {
	rdb *redis.Client
}

func NewSnapshotStore(rdb *redis.Client) *SnapshotStore {
	return &SnapshotStore{rdb: rdb}
}

func (s *SnapshotStore) Get(ctx context.Context) (entity.Snapshot, error) {
	raw, err := s.rdb.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entity.Snapshot{}, domain.NewError(errcodes.SnapshotNotCached, "no snapshot cached yet")
		}

		return entity.Snapshot{}, domain.WrapError(err, errcodes.InternalServerError, "failed to read cached snapshot")
	}

	var snapshot entity.Snapshot

	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return entity.Snapshot{}, domain.WrapError(err, errcodes.InternalServerError, "failed to decode cached snapshot")
	}

	return snapshot, nil
}

func (s *SnapshotStore) Set(ctx context.Context, snapshot entity.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := s.rdb.Set(ctx, snapshotKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("rdb.Set: %w", err)
	}

	return nil
}

func (s *SnapshotStore) Remove(ctx context.Context) error {
	if err := s.rdb.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("rdb.Del: %w", err)
	}

	return nil
}
