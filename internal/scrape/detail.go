package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratch_tracker/internal/domain/entity"
)

// Labels searched for by the structural and line-pair strategies. Lowercase
// because all label matching folds case.
const (
	labelGuaranteed = "guaranteed total prize amount"
	labelPackSize   = "pack size"
	labelTickets    = "tickets"
	labelOdds       = "overall odds"
)

// Elements the structural scan walks looking for a label plus a value token.
const structuralCandidates = "tr, dl, p"

// Phrase templates tried first against the page's flattened text.
//
//nolint:gochecknoglobals
var (
	guaranteedPhraseRe = regexp.MustCompile(`(?i)guaranteed\s+total\s+prize\s+amount\s*=\s*\$?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
	packSizePhraseRe   = regexp.MustCompile(`(?i)pack\s+size\s*[:=]?\s*([0-9][0-9,]*)`)
	ticketsPhraseRe    = regexp.MustCompile(`(?i)there\s+are\s+approximately\s+([0-9][0-9,]*)\s+tickets`)
	oddsPhraseRe       = regexp.MustCompile(`(?i)overall\s+odds\b\D*?(1\s+in\s+[0-9][0-9,]*(?:\.[0-9]+)?)`)
)

// Token extractors shared by the structural and line-pair strategies.
//
//nolint:gochecknoglobals
var (
	currencyTokenRe = regexp.MustCompile(`\$\s*[0-9][0-9,]*(?:\.[0-9]+)?`)
	numberTokenRe   = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]+)?`)
	countTokenRe    = regexp.MustCompile(`[0-9][0-9,]*`)
)

// ExtractDetail resolves the four scalar fields of a detail page through
// their strategy chains and merges in the prize-table figures. Extraction
// itself never fails: a field missing from the page keeps its zero or N/A
// default, and identical input always yields identical output.
func ExtractDetail(doc *goquery.Document) entity.GameDetail {
	text := doc.Text()
	lines := textLines(text)

	detail := entity.GameDetail{OverallOdds: entity.OddsNotAvailable}

	if v, ok := firstMatch(
		func() (float64, bool) { return currencyPhrase(guaranteedPhraseRe, text) },
		func() (float64, bool) { return valueNearLabel(doc, labelGuaranteed, findCurrency) },
		func() (float64, bool) { return linePairValue(lines, labelGuaranteed, findCurrency) },
	); ok {
		detail.GuaranteedAmount = v
	}

	if v, ok := firstMatch(
		func() (int, bool) { return countPhrase(packSizePhraseRe, text) },
		func() (int, bool) { return valueNearLabel(doc, labelPackSize, findCount) },
		func() (int, bool) { return linePairValue(lines, labelPackSize, findCount) },
	); ok {
		detail.PackSize = v
	}

	if v, ok := firstMatch(
		func() (int, bool) { return countPhrase(ticketsPhraseRe, text) },
		func() (int, bool) { return valueNearLabel(doc, labelTickets, findCount) },
		func() (int, bool) { return linePairValue(lines, labelTickets, findCount) },
	); ok {
		detail.TotalTickets = v
	}

	if v, ok := firstMatch(
		func() (string, bool) { return oddsPhrase(text) },
		func() (string, bool) { return valueNearLabel(doc, labelOdds, findOdds) },
		func() (string, bool) { return linePairValue(lines, labelOdds, findOdds) },
	); ok {
		detail.OverallOdds = v
	}

	figures := ResolvePrizeTable(doc)

	detail.TopPrize = figures.TopPrize
	detail.TopPrizeInGame = figures.TopPrizeInGame
	detail.TopPrizeClaimed = figures.TopPrizeClaimed
	detail.PrizesFound = figures.PrizesFound

	return detail
}

func currencyPhrase(re *regexp.Regexp, text string) (float64, bool) {
	match := re.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}

	return ParseCurrency(match[1]), true
}

func countPhrase(re *regexp.Regexp, text string) (int, bool) {
	match := re.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}

	return ParseCount(match[1]), true
}

func oddsPhrase(text string) (string, bool) {
	match := oddsPhraseRe.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}

	return ParseOdds(match[1]), true
}

// valueNearLabel walks the candidate elements in document order and, for the
// first one whose text both mentions the label and carries an extractable
// token, returns that token's value.
func valueNearLabel[T any](doc *goquery.Document, label string, extract func(string) (T, bool)) (T, bool) {
	var (
		value T
		found bool
	)

	doc.Find(structuralCandidates).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if !strings.Contains(strings.ToLower(text), label) {
			return true
		}

		if v, ok := extract(text); ok {
			value, found = v, true

			return false
		}

		return true
	})

	return value, found
}

// linePairValue scans the page's non-empty text lines; when a line mentions
// the label, the remainder of that line is tried first and the immediately
// following line second.
func linePairValue[T any](lines []string, label string, extract func(string) (T, bool)) (T, bool) {
	for i, line := range lines {
		lower := strings.ToLower(line)

		idx := strings.Index(lower, label)
		if idx < 0 {
			continue
		}

		if v, ok := extract(lower[idx+len(label):]); ok {
			return v, true
		}

		if i+1 < len(lines) {
			if v, ok := extract(lines[i+1]); ok {
				return v, true
			}
		}
	}

	var zero T

	return zero, false
}

func textLines(text string) []string {
	rawLines := strings.Split(text, "\n")

	lines := make([]string, 0, len(rawLines))

	for _, line := range rawLines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	return lines
}

func findCurrency(text string) (float64, bool) {
	if m := currencyTokenRe.FindString(text); m != "" {
		return ParseCurrency(m), true
	}

	if m := numberTokenRe.FindString(text); m != "" {
		return ParseCurrency(m), true
	}

	return 0, false
}

func findCount(text string) (int, bool) {
	if m := countTokenRe.FindString(text); m != "" {
		return ParseCount(m), true
	}

	return 0, false
}

func findOdds(text string) (string, bool) {
	if m := oddsTokenRe.FindString(text); m != "" {
		return ParseOdds(m), true
	}

	return "", false
}
