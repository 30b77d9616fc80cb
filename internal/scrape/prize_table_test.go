package scrape_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scratch_tracker/internal/scrape"
)

func TestResolvePrizeTable(t *testing.T) {
	rq := require.New(t)

	const page = `<html><body>
<table>
<tr><th>Prize Amount</th><th>In Game</th><th>Claimed</th></tr>
<tr><td>$500</td><td>10</td><td>3</td></tr>
<tr><td>$100,000</td><td>2</td><td>2</td></tr>
</table>
</body></html>`

	figures := scrape.ResolvePrizeTable(parseDoc(t, page))

	rq.True(figures.PrizesFound)
	rq.InDelta(100000.0, figures.TopPrize, 1e-9)
	rq.Equal(2, figures.TopPrizeInGame)
	rq.Equal(2, figures.TopPrizeClaimed)
}

func TestResolvePrizeTableHeaderDerivedColumns(t *testing.T) {
	rq := require.New(t)

	// Roles shifted one column right of the 0/1/2 defaults.
	const page = `<html><body>
<table>
<tr><th>Odds</th><th>Prize Amount</th><th># In Game</th><th># Claimed</th></tr>
<tr><td>1 in 10</td><td>$50</td><td>100</td><td>40</td></tr>
<tr><td>1 in 240,000</td><td>$75,000</td><td>8</td><td>1</td></tr>
</table>
</body></html>`

	figures := scrape.ResolvePrizeTable(parseDoc(t, page))

	rq.True(figures.PrizesFound)
	rq.InDelta(75000.0, figures.TopPrize, 1e-9)
	rq.Equal(8, figures.TopPrizeInGame)
	rq.Equal(1, figures.TopPrizeClaimed)
}

func TestResolvePrizeTableTieKeepsFirstSeen(t *testing.T) {
	rq := require.New(t)

	const page = `<html><body>
<table>
<tr><th>Prize Amount</th><th>In Game</th><th>Claimed</th></tr>
<tr><td>$1,000</td><td>10</td><td>1</td></tr>
<tr><td>$1,000</td><td>99</td><td>50</td></tr>
</table>
</body></html>`

	figures := scrape.ResolvePrizeTable(parseDoc(t, page))

	rq.InDelta(1000.0, figures.TopPrize, 1e-9)
	rq.Equal(10, figures.TopPrizeInGame)
	rq.Equal(1, figures.TopPrizeClaimed)
}

func TestResolvePrizeTableAcrossTables(t *testing.T) {
	rq := require.New(t)

	// The navigation table mentions no prize counters and must be skipped
	// even though it carries the largest number on the page.
	const page = `<html><body>
<table>
<tr><td>Jackpot history</td><td>$9,999,999</td><td>archive</td></tr>
</table>
<table>
<tr><th>Prize Amount</th><th>In Game</th><th>Claimed</th></tr>
<tr><td>$500</td><td>20</td><td>5</td></tr>
</table>
<table>
<tr><th>Prize Amount</th><th>In Game</th><th>Claimed</th></tr>
<tr><td>$5,000</td><td>4</td><td>0</td></tr>
</table>
</body></html>`

	figures := scrape.ResolvePrizeTable(parseDoc(t, page))

	rq.True(figures.PrizesFound)
	rq.InDelta(5000.0, figures.TopPrize, 1e-9)
	rq.Equal(4, figures.TopPrizeInGame)
	rq.Equal(0, figures.TopPrizeClaimed)
}

func TestResolvePrizeTableNoParsableRows(t *testing.T) {
	rq := require.New(t)

	const page = `<html><body>
<table>
<tr><th>Prize</th><th>In Game</th><th>Claimed</th></tr>
<tr><td>TBD</td><td>-</td><td>-</td></tr>
</table>
</body></html>`

	figures := scrape.ResolvePrizeTable(parseDoc(t, page))

	rq.False(figures.PrizesFound)
	rq.Zero(figures.TopPrize)
	rq.Zero(figures.TopPrizeInGame)
	rq.Zero(figures.TopPrizeClaimed)
}
