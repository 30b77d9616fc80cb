package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/require"

	"scratch_tracker/internal/domain/entity"
	"scratch_tracker/internal/export"
)

func TestWriteCSV(t *testing.T) {
	rq := require.New(t)

	resolved := entity.NewGameRecord(entity.GameSummary{
		GameNumber: "714",
		Name:       "Cash Explosion",
		StartDate:  "2026-01-05",
		Price:      10,
	})
	resolved.Resolve(entity.GameDetail{
		PackSize:         30,
		GuaranteedAmount: 255,
		TotalTickets:     8789340,
		OverallOdds:      "1 in 4.61",
		TopPrize:         1000000,
		TopPrizeInGame:   12,
		TopPrizeClaimed:  5,
		PrizesFound:      true,
	})

	failed := entity.NewGameRecord(entity.GameSummary{GameNumber: "900", Name: "Broken"})
	failed.Fail("status 503")

	var buf bytes.Buffer

	rq.NoError(export.WriteCSV(&buf, []entity.GameRecord{resolved, failed}))

	rows, err := csv.NewReader(&buf).ReadAll()
	rq.NoError(err)
	rq.Len(rows, 2)

	rq.Equal([]string{
		"Game Number", "Name", "Start Date", "Price", "Pack Size",
		"Guaranteed Amount", "Pack Cost", "Max Loss", "Top Prize",
		"Top Prizes Remaining", "Total Tickets", "Overall Odds",
	}, rows[0])

	rq.Equal([]string{
		"714", "Cash Explosion", "2026-01-05", "$10.00", "30",
		"$255.00", "$300.00", "-$45.00", "$1,000,000.00",
		"7", "8789340", "1 in 4.61",
	}, rows[1])
}

func TestWriteCSVEmpty(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer

	rq.NoError(export.WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	rq.NoError(err)
	rq.Len(rows, 1)
}
