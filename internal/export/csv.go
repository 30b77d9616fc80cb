package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"scratch_tracker/internal/domain/entity"
)

// Header row of the spreadsheet, fixed column order.
//
//nolint:gochecknoglobals
var columns = []string{
	"Game Number",
	"Name",
	"Start Date",
	"Price",
	"Pack Size",
	"Guaranteed Amount",
	"Pack Cost",
	"Max Loss",
	"Top Prize",
	"Top Prizes Remaining",
	"Total Tickets",
	"Overall Odds",
}

// WriteCSV serializes the resolved records of a snapshot. Failed and pending
// records carry defaulted fields only and are left out.
func WriteCSV(w io.Writer, records []entity.GameRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("csv.Write header: %w", err)
	}

	for _, record := range records {
		if record.State != entity.GameStateResolved {
			continue
		}

		row := []string{
			record.GameNumber,
			record.Name,
			record.StartDate,
			formatCurrency(record.Price),
			strconv.Itoa(record.PackSize),
			formatCurrency(record.GuaranteedAmount),
			formatCurrency(record.PackCost),
			formatCurrency(record.MaxLoss),
			formatCurrency(record.TopPrize),
			strconv.Itoa(record.TopPrizesRemaining),
			strconv.Itoa(record.TotalTickets),
			record.OverallOdds,
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv.Write row: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv.Flush: %w", err)
	}

	return nil
}

// formatCurrency renders "$1,234.50"; negatives keep the sign ahead of the
// dollar: "-$45.00".
func formatCurrency(amount float64) string {
	sign := ""

	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole := strconv.FormatFloat(amount, 'f', 2, 64)

	intPart, fracPart, _ := strings.Cut(whole, ".")

	return sign + "$" + groupThousands(intPart) + "." + fracPart
}

func groupThousands(digits string) string {
	if len(digits) <= 3 { //nolint:mnd
		return digits
	}

	var b strings.Builder

	lead := len(digits) % 3 //nolint:mnd
	if lead > 0 {
		b.WriteString(digits[:lead])
	}

	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}

		b.WriteString(digits[i : i+3])
	}

	return b.String()
}
