package config

import "time"

type Scrape struct {
	// ListingURL is the single index page enumerating all active games.
	ListingURL string `env:"SCRAPE_LISTING_URL" envDefault:"https://www.lottery.example.com/games/scratchers"`
	// BaseURL prefixes relative detail-page hrefs found on the index.
	BaseURL string `env:"SCRAPE_BASE_URL" envDefault:"https://www.lottery.example.com"`
	// LinkPattern is the substring a first-cell href must contain for the
	// row to count as a game row.
	LinkPattern    string        `env:"SCRAPE_LINK_PATTERN" envDefault:"/scratchers/"`
	Timeout        time.Duration `env:"SCRAPE_TIMEOUT" envDefault:"20s"`
	BatchSize      int           `env:"SCRAPE_BATCH_SIZE" envDefault:"8"`
	DetailCacheTTL time.Duration `env:"SCRAPE_DETAIL_CACHE_TTL" envDefault:"10m"`
	LogFieldMaxLen int           `env:"SCRAPE_LOG_FIELD_MAX_LEN" envDefault:"2048"`
}
