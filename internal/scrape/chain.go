package scrape

// firstMatch tries strategies in order and returns the first value produced.
// Once a strategy succeeds the remaining ones are never consulted, so an
// early value stays frozen even when the page repeats a label with a
// different figure further down.
func firstMatch[T any](strategies ...func() (T, bool)) (T, bool) {
	for _, strategy := range strategies {
		if value, ok := strategy(); ok {
			return value, true
		}
	}

	var zero T

	return zero, false
}
