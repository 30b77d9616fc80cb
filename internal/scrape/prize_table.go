package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PrizeFigures is the top prize tier found across all qualifying prize
// tables of one detail page.
type PrizeFigures struct {
	TopPrize        float64
	TopPrizeInGame  int
	TopPrizeClaimed int
	PrizesFound     bool
}

// prizeColumns maps prize-table roles to cell positions. It is built once
// per table from the header row and passed immutably into row parsing.
type prizeColumns struct {
	amount  int
	inGame  int
	claimed int
}

// ResolvePrizeTable scans qualifying tables in document order and keeps the
// tier whose amount strictly exceeds the running maximum, so the first-seen
// tier wins a tie across rows and across tables.
func ResolvePrizeTable(doc *goquery.Document) PrizeFigures {
	var figures PrizeFigures

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if !isPrizeTable(table) {
			return
		}

		scanPrizeRows(table, &figures)
	})

	return figures
}

// isPrizeTable reports whether a table enumerates prize tiers: its text must
// mention "prize" plus at least one of the counter columns.
func isPrizeTable(table *goquery.Selection) bool {
	text := strings.ToLower(table.Text())

	if !strings.Contains(text, "prize") {
		return false
	}

	return strings.Contains(text, "in game") || strings.Contains(text, "claimed")
}

// headerColumns derives the role positions from the header row, defaulting
// to amount/in game/claimed at 0/1/2. The first header cell containing a
// role's token claims that role.
func headerColumns(table *goquery.Selection) prizeColumns {
	cols := prizeColumns{
		amount:  0,
		inGame:  1,
		claimed: 2, //nolint:mnd
	}

	var amountFound, inGameFound, claimedFound bool

	table.Find("tr").First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
		text := strings.ToLower(cell.Text())

		if !amountFound && strings.Contains(text, "amount") {
			cols.amount = i
			amountFound = true
		}

		if !inGameFound && strings.Contains(text, "in game") {
			cols.inGame = i
			inGameFound = true
		}

		if !claimedFound && strings.Contains(text, "claimed") {
			cols.claimed = i
			claimedFound = true
		}
	})

	return cols
}

func scanPrizeRows(table *goquery.Selection, figures *PrizeFigures) {
	cols := headerColumns(table)

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 { //nolint:mnd
			return
		}

		amount := ParseCurrency(cells.Eq(cols.amount).Text())
		if amount <= 0 {
			return
		}

		figures.PrizesFound = true

		if amount > figures.TopPrize {
			figures.TopPrize = amount
			figures.TopPrizeInGame = ParseCount(cells.Eq(cols.inGame).Text())
			figures.TopPrizeClaimed = ParseCount(cells.Eq(cols.claimed).Text())
		}
	})
}
