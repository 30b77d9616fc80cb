package scrape_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"scratch_tracker/internal/domain/entity"
	"scratch_tracker/internal/scrape"
)

const (
	testBaseURL     = "https://www.lottery.example.com"
	testLinkPattern = "/scratchers/"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	return doc
}

func TestExtractListing(t *testing.T) {
	rq := require.New(t)

	const page = `<html><body>
<table>
<tr><th>Game #</th><th>Start Date</th><th>Price</th><th>Name</th></tr>
<tr>
<td><a href="/scratchers/game-714">714</a></td>
<td>01/06/2026</td>
<td>$10</td>
<td>Cash Explosion</td>
</tr>
<tr>
<td>How to claim your prize</td>
<td></td>
<td></td>
<td></td>
</tr>
<tr>
<td><a href="/scratchers/game-714">714</a></td>
<td>01/06/2026</td>
<td>$500</td>
<td>Cash Explosion top prize row</td>
</tr>
<tr>
<td><a href="https://www.lottery.example.com/scratchers/game-801">801</a></td>
<td>02/01/2026</td>
<td>$5</td>
<td>Lucky 7s</td>
</tr>
<tr>
<td><a href="/promotions/second-chance">999</a></td>
<td>03/01/2026</td>
<td>$1</td>
<td>Second Chance Drawing</td>
</tr>
</table>
</body></html>`

	summaries := scrape.ExtractListing(parseDoc(t, page), testBaseURL, testLinkPattern)

	rq.Equal([]entity.GameSummary{
		{
			GameNumber: "714",
			Name:       "Cash Explosion",
			StartDate:  "01/06/2026",
			Price:      10,
			DetailURL:  "https://www.lottery.example.com/scratchers/game-714",
		},
		{
			GameNumber: "801",
			Name:       "Lucky 7s",
			StartDate:  "02/01/2026",
			Price:      5,
			DetailURL:  "https://www.lottery.example.com/scratchers/game-801",
		},
	}, summaries)
}

func TestExtractListingSingleGameRow(t *testing.T) {
	rq := require.New(t)

	const page = `<html><body><table>
<tr><td>Decorative row with no link</td><td>x</td><td>y</td><td>z</td></tr>
<tr><td><a href="/scratchers/game-100">100</a></td><td>05/05/2025</td><td>$2</td><td>Doubler</td></tr>
</table></body></html>`

	summaries := scrape.ExtractListing(parseDoc(t, page), testBaseURL, testLinkPattern)

	rq.Len(summaries, 1)
	rq.Equal("100", summaries[0].GameNumber)
	rq.Equal("Doubler", summaries[0].Name)
}

func TestExtractListingFallbackLayout(t *testing.T) {
	rq := require.New(t)

	// Revision with the name folded into the second column. The shifted row
	// carries a bare dollar amount where the primary layout keeps the name,
	// which is what engages the fallback order.
	const page = `<html><body><table>
<tr><td><a href="/scratchers/game-902">902</a></td><td>Holiday Cash</td><td>12/01/2025</td><td>$20</td></tr>
</table></body></html>`

	summaries := scrape.ExtractListing(parseDoc(t, page), testBaseURL, testLinkPattern)

	rq.Len(summaries, 1)
	rq.Equal("Holiday Cash", summaries[0].Name)
	rq.Equal("12/01/2025", summaries[0].StartDate)
	rq.InDelta(20.0, summaries[0].Price, 1e-9)
}

func TestExtractListingDollarNameStaysPrimary(t *testing.T) {
	rq := require.New(t)

	// A name that mentions an amount is still a name, not a shifted price.
	const page = `<html><body><table>
<tr><td><a href="/scratchers/game-903">903</a></td><td>04/01/2026</td><td>$30</td><td>$100,000 Jackpot</td></tr>
</table></body></html>`

	summaries := scrape.ExtractListing(parseDoc(t, page), testBaseURL, testLinkPattern)

	rq.Len(summaries, 1)
	rq.Equal("$100,000 Jackpot", summaries[0].Name)
	rq.Equal("04/01/2026", summaries[0].StartDate)
	rq.InDelta(30.0, summaries[0].Price, 1e-9)
}

func TestExtractListingEmptyPage(t *testing.T) {
	rq := require.New(t)

	summaries := scrape.ExtractListing(parseDoc(t, "<html><body><p>maintenance</p></body></html>"), testBaseURL, testLinkPattern)

	rq.Empty(summaries)
}
