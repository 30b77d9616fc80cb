package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratch_tracker/internal/domain/entity"
)

// Primary cell layout of the index table: the game-number link sits in the
// first cell, then start date, price, name.
const (
	listingStartDateCell = 1
	listingPriceCell     = 2
	listingNameCell      = 3
)

// bareCurrencyRe matches a cell holding nothing but a dollar amount, the
// telltale of the shifted column layout. A game name that merely mentions an
// amount ("$100,000 Jackpot") does not match.
var bareCurrencyRe = regexp.MustCompile(`^\$\s*[0-9][0-9,]*(?:\.[0-9]+)?$`) //nolint:gochecknoglobals

// ExtractListing scans every table row of the games-index page and returns
// the game summaries in document order. A row counts as a game row only when
// its first cell links to a detail page; rows without such a link or without
// a name are decorative and skipped. Index pages repeat a game's link on
// subordinate prize rows, so later rows with an already-seen game number are
// suppressed.
func ExtractListing(doc *goquery.Document, baseURL, linkPattern string) []entity.GameSummary {
	var summaries []entity.GameSummary

	seen := make(map[string]struct{})

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}

		link := cells.Eq(0).Find("a[href]").First()

		href, ok := link.Attr("href")
		if !ok || !strings.Contains(href, linkPattern) {
			return
		}

		gameNumber := strings.TrimSpace(link.Text())
		if gameNumber == "" {
			return
		}

		if _, dup := seen[gameNumber]; dup {
			return
		}

		name := strings.TrimSpace(cells.Eq(listingNameCell).Text())
		startDate := strings.TrimSpace(cells.Eq(listingStartDateCell).Text())
		price := ParseCurrency(cells.Eq(listingPriceCell).Text())

		// Some index revisions fold the name into the second column and
		// shift date and price one cell right, leaving a bare dollar
		// amount where the primary layout keeps the name.
		if name == "" || bareCurrencyRe.MatchString(name) {
			name = strings.TrimSpace(cells.Eq(listingStartDateCell).Text())
			startDate = strings.TrimSpace(cells.Eq(listingPriceCell).Text())
			price = ParseCurrency(cells.Eq(listingNameCell).Text())
		}

		if name == "" {
			return
		}

		seen[gameNumber] = struct{}{}

		summaries = append(summaries, entity.GameSummary{
			GameNumber: gameNumber,
			Name:       name,
			StartDate:  startDate,
			Price:      price,
			DetailURL:  absoluteURL(baseURL, href),
		})
	})

	return summaries
}

func absoluteURL(baseURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(href, "/")
}
