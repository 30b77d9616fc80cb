package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"scratch_tracker/internal/domain/entity"
)

//nolint:gochecknoglobals
var (
	nonCurrencyRe = regexp.MustCompile(`[^0-9.]`)
	nonDigitRe    = regexp.MustCompile(`[^0-9]`)
	oddsTokenRe   = regexp.MustCompile(`(?i)1\s+in\s+[0-9][0-9,]*(?:\.[0-9]+)?`)
)

// ParseCurrency converts "$1,000,000.50" style text to its numeric value.
// Empty or unparseable input yields 0; by contract a missing amount and a
// true zero amount are indistinguishable.
func ParseCurrency(text string) float64 {
	cleaned := nonCurrencyRe.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}

	return value
}

// ParseCount converts "1,234,567 tickets" style text to an integer, with the
// same zero-as-absence contract as ParseCurrency.
func ParseCount(text string) int {
	cleaned := nonDigitRe.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0
	}

	value, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}

	return value
}

// ParseOdds extracts a "1 in N" phrase and collapses its whitespace. Text
// without a match comes back trimmed as-is so a caller can keep the raw
// wording for debugging; empty input yields the N/A sentinel.
func ParseOdds(text string) string {
	if match := oddsTokenRe.FindString(text); match != "" {
		return strings.Join(strings.Fields(match), " ")
	}

	if trimmed := strings.TrimSpace(text); trimmed != "" {
		return trimmed
	}

	return entity.OddsNotAvailable
}
