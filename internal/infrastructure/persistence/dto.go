package persistence

import (
	"time"

	"scratch_tracker/internal/domain/entity"
)

// gameRecordSchema maps one row of the game_records archive table.
type gameRecordSchema struct {
	GameNumber         string    `db:"game_number"`
	Name               string    `db:"name"`
	StartDate          string    `db:"start_date"`
	Price              float64   `db:"price"`
	DetailURL          string    `db:"detail_url"`
	PackSize           int       `db:"pack_size"`
	GuaranteedAmount   float64   `db:"guaranteed_amount"`
	TotalTickets       int       `db:"total_tickets"`
	OverallOdds        string    `db:"overall_odds"`
	TopPrize           float64   `db:"top_prize"`
	TopPrizeInGame     int       `db:"top_prize_in_game"`
	TopPrizeClaimed    int       `db:"top_prize_claimed"`
	PrizesFound        bool      `db:"prizes_found"`
	PackCost           float64   `db:"pack_cost"`
	MaxLoss            float64   `db:"max_loss"`
	MaxLossPercent     float64   `db:"max_loss_percent"`
	TopPrizesRemaining int       `db:"top_prizes_remaining"`
	FetchedAt          time.Time `db:"fetched_at"`
}

func fromGameRecord(record entity.GameRecord, fetchedAt time.Time) gameRecordSchema {
	return gameRecordSchema{
		GameNumber:         record.GameNumber,
		Name:               record.Name,
		StartDate:          record.StartDate,
		Price:              record.Price,
		DetailURL:          record.DetailURL,
		PackSize:           record.PackSize,
		GuaranteedAmount:   record.GuaranteedAmount,
		TotalTickets:       record.TotalTickets,
		OverallOdds:        record.OverallOdds,
		TopPrize:           record.TopPrize,
		TopPrizeInGame:     record.TopPrizeInGame,
		TopPrizeClaimed:    record.TopPrizeClaimed,
		PrizesFound:        record.PrizesFound,
		PackCost:           record.PackCost,
		MaxLoss:            record.MaxLoss,
		MaxLossPercent:     record.MaxLossPercent,
		TopPrizesRemaining: record.TopPrizesRemaining,
		FetchedAt:          fetchedAt,
	}
}

func (s gameRecordSchema) toDomain() entity.GameRecord {
	return entity.GameRecord{
		GameSummary: entity.GameSummary{
			GameNumber: s.GameNumber,
			Name:       s.Name,
			StartDate:  s.StartDate,
			Price:      s.Price,
			DetailURL:  s.DetailURL,
		},
		GameDetail: entity.GameDetail{
			PackSize:         s.PackSize,
			GuaranteedAmount: s.GuaranteedAmount,
			TotalTickets:     s.TotalTickets,
			OverallOdds:      s.OverallOdds,
			TopPrize:         s.TopPrize,
			TopPrizeInGame:   s.TopPrizeInGame,
			TopPrizeClaimed:  s.TopPrizeClaimed,
			PrizesFound:      s.PrizesFound,
		},
		PackCost:           s.PackCost,
		MaxLoss:            s.MaxLoss,
		MaxLossPercent:     s.MaxLossPercent,
		TopPrizesRemaining: s.TopPrizesRemaining,
		State:              entity.GameStateResolved,
	}
}
