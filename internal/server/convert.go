package server

import (
	"sort"

	"git.appkode.ru/pub/go/failure"

	"scratch_tracker/internal/domain/entity"
	"scratch_tracker/pkg/errcodes"
	"scratch_tracker/pkg/lox"
	"scratch_tracker/pkg/rest"
)

func newRESTGame(record entity.GameRecord) rest.Game {
	return rest.Game{
		GameNumber:         record.GameNumber,
		Name:               record.Name,
		StartDate:          record.StartDate,
		Price:              record.Price,
		DetailURL:          record.DetailURL,
		State:              string(record.State),
		FailureReason:      record.FailureReason,
		PackSize:           record.PackSize,
		GuaranteedAmount:   record.GuaranteedAmount,
		PackCost:           record.PackCost,
		MaxLoss:            record.MaxLoss,
		MaxLossPercent:     record.MaxLossPercent,
		TopPrize:           record.TopPrize,
		TopPrizeInGame:     record.TopPrizeInGame,
		TopPrizeClaimed:    record.TopPrizeClaimed,
		TopPrizesRemaining: record.TopPrizesRemaining,
		TotalTickets:       record.TotalTickets,
		OverallOdds:        record.OverallOdds,
		PrizesFound:        record.PrizesFound,
	}
}

func newRESTGamesResponse(records []entity.GameRecord, snapshot entity.Snapshot) rest.GamesResponse {
	return rest.GamesResponse{
		Games:     lox.Map(records, newRESTGame),
		FetchedAt: snapshot.FetchedAt,
		Stale:     snapshot.Stale(staleAfter),
	}
}

func newRESTSnapshot(info entity.SnapshotRun) rest.Snapshot {
	return rest.Snapshot{
		RunID:      info.RunID,
		Status:     string(info.Status),
		Completed:  info.Completed,
		Total:      info.Total,
		StartedAt:  info.StartedAt,
		FinishedAt: info.FinishedAt,
		Error:      info.Err,
	}
}

// Comparison functions per sort key. Listing (document) order is the
// default when no key is given.
//
//nolint:gochecknoglobals
var sortKeys = map[string]func(a, b entity.GameRecord) bool{
	"gameNumber":         func(a, b entity.GameRecord) bool { return a.GameNumber < b.GameNumber },
	"name":               func(a, b entity.GameRecord) bool { return a.Name < b.Name },
	"price":              func(a, b entity.GameRecord) bool { return a.Price < b.Price },
	"packCost":           func(a, b entity.GameRecord) bool { return a.PackCost < b.PackCost },
	"maxLoss":            func(a, b entity.GameRecord) bool { return a.MaxLoss < b.MaxLoss },
	"maxLossPercent":     func(a, b entity.GameRecord) bool { return a.MaxLossPercent < b.MaxLossPercent },
	"topPrize":           func(a, b entity.GameRecord) bool { return a.TopPrize < b.TopPrize },
	"topPrizesRemaining": func(a, b entity.GameRecord) bool { return a.TopPrizesRemaining < b.TopPrizesRemaining },
}

func sortRecords(records []entity.GameRecord, key, order string) ([]entity.GameRecord, error) {
	if key == "" {
		return records, nil
	}

	less, ok := sortKeys[key]
	if !ok {
		return nil, failure.NewInvalidArgumentError(
			"unknown sort key "+key,
			failure.WithCode(errcodes.InvalidSortKey),
		)
	}

	sorted := make([]entity.GameRecord, len(records))
	copy(sorted, records)

	desc := order == "desc"

	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return less(sorted[j], sorted[i])
		}

		return less(sorted[i], sorted[j])
	})

	return sorted, nil
}
