package persistence

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"scratch_tracker/internal/domain"
	"scratch_tracker/internal/domain/entity"
	"scratch_tracker/pkg/errcodes"
)

// GameRecordRepository archives resolved records, one row per game, updated
// in place after every finished snapshot.
type GameRecordRepository struct {
	db *sqlx.DB
}

func NewGameRecordRepository(db *sqlx.DB) *GameRecordRepository {
	return &GameRecordRepository{db: db}
}

func (r *GameRecordRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// UpsertAll writes every resolved record of a snapshot. Failed records are
// not archived: a row always describes the last successful extraction.
func (r *GameRecordRepository) UpsertAll(ctx context.Context, fetchedAt time.Time, records []entity.GameRecord) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO game_records (
				game_number, name, start_date, price, detail_url,
				pack_size, guaranteed_amount, total_tickets, overall_odds,
				top_prize, top_prize_in_game, top_prize_claimed, prizes_found,
				pack_cost, max_loss, max_loss_percent, top_prizes_remaining,
				fetched_at
			) VALUES (
				:game_number, :name, :start_date, :price, :detail_url,
				:pack_size, :guaranteed_amount, :total_tickets, :overall_odds,
				:top_prize, :top_prize_in_game, :top_prize_claimed, :prizes_found,
				:pack_cost, :max_loss, :max_loss_percent, :top_prizes_remaining,
				:fetched_at
			)
			ON CONFLICT (game_number) DO UPDATE SET
				name = EXCLUDED.name,
				start_date = EXCLUDED.start_date,
				price = EXCLUDED.price,
				detail_url = EXCLUDED.detail_url,
				pack_size = EXCLUDED.pack_size,
				guaranteed_amount = EXCLUDED.guaranteed_amount,
				total_tickets = EXCLUDED.total_tickets,
				overall_odds = EXCLUDED.overall_odds,
				top_prize = EXCLUDED.top_prize,
				top_prize_in_game = EXCLUDED.top_prize_in_game,
				top_prize_claimed = EXCLUDED.top_prize_claimed,
				prizes_found = EXCLUDED.prizes_found,
				pack_cost = EXCLUDED.pack_cost,
				max_loss = EXCLUDED.max_loss,
				max_loss_percent = EXCLUDED.max_loss_percent,
				top_prizes_remaining = EXCLUDED.top_prizes_remaining,
				fetched_at = EXCLUDED.fetched_at`

		for _, record := range records {
			if record.State != entity.GameStateResolved {
				continue
			}

			if _, err := tx.NamedExecContext(ctx, query, fromGameRecord(record, fetchedAt)); err != nil {
				return domain.WrapError(err, errcodes.InternalServerError, "failed to upsert game record")
			}
		}

		return nil
	})
}

// List returns the archived records ordered by game number.
func (r *GameRecordRepository) List(ctx context.Context) ([]entity.GameRecord, error) {
	query := `SELECT * FROM game_records ORDER BY game_number ASC`

	var schemas []gameRecordSchema

	if err := r.db.SelectContext(ctx, &schemas, query); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list game records")
	}

	records := make([]entity.GameRecord, 0, len(schemas))
	for _, schema := range schemas {
		records = append(records, schema.toDomain())
	}

	return records, nil
}
