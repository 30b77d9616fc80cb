package worker

import (
	"scratch_tracker/internal/domain/entity"
)

// diffSnapshots compares a finished snapshot with the previously cached one.
// Two things are worth telling someone about: a game that was not on the
// index before, and a game whose last top prize was just claimed.
func diffSnapshots(previous, current []entity.GameRecord) []entity.Alert {
	known := make(map[string]entity.GameRecord, len(previous))
	for _, record := range previous {
		known[record.GameNumber] = record
	}

	var alerts []entity.Alert

	for _, record := range current {
		if record.State != entity.GameStateResolved {
			continue
		}

		before, seen := known[record.GameNumber]
		if !seen {
			alerts = append(alerts, entity.Alert{
				Kind:               entity.AlertKindNewGame,
				GameNumber:         record.GameNumber,
				Name:               record.Name,
				Price:              record.Price,
				TopPrize:           record.TopPrize,
				TopPrizesRemaining: record.TopPrizesRemaining,
			})

			continue
		}

		if before.TopPrizesRemaining > 0 && record.TopPrizesRemaining == 0 && record.PrizesFound {
			alerts = append(alerts, entity.Alert{
				Kind:               entity.AlertKindTopPrizeDrop,
				GameNumber:         record.GameNumber,
				Name:               record.Name,
				Price:              record.Price,
				TopPrize:           record.TopPrize,
				TopPrizesRemaining: record.TopPrizesRemaining,
				PreviousRemaining:  before.TopPrizesRemaining,
			})
		}
	}

	return alerts
}
