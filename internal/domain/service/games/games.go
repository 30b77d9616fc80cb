package games

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/patrickmn/go-cache"

	"scratch_tracker/internal/domain"
	"scratch_tracker/internal/domain/entity"
	"scratch_tracker/internal/scrape"
	"scratch_tracker/pkg/errcodes"
)

const defaultDetailCacheTTL = 10 * time.Minute

type PageFetcher interface {
	FetchListing(ctx context.Context) (string, error)
	FetchDetail(ctx context.Context, url string) (string, error)
}

// GameService exposes the two core operations of the pipeline: listing the
// active games and resolving one game's detail page into a terminal record.
type GameService struct {
	fetcher     PageFetcher
	baseURL     string
	linkPattern string
	detailCache *cache.Cache
}

func NewGameService(fetcher PageFetcher, baseURL, linkPattern string) *GameService {
	return &GameService{
		fetcher:     fetcher,
		baseURL:     baseURL,
		linkPattern: linkPattern,
		detailCache: cache.New(defaultDetailCacheTTL, time.Minute),
	}
}

func (s *GameService) WithDetailCacheTTL(ttl time.Duration) *GameService {
	s.detailCache = cache.New(ttl, time.Minute)
	return s
}

// ListGames fetches and extracts the games-index page. A failed fetch or an
// index that yields zero summaries is fatal to the whole run; the raw cause
// stays attached so the user sees it unwrapped.
func (s *GameService) ListGames(ctx context.Context) ([]entity.GameSummary, error) {
	html, err := s.fetcher.FetchListing(ctx)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.ListingFetchFailed, "failed to fetch listing page")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, domain.WrapError(err, errcodes.ListingFetchFailed, "failed to parse listing page")
	}

	summaries := scrape.ExtractListing(doc, s.baseURL, s.linkPattern)
	if len(summaries) == 0 {
		return nil, domain.NewError(errcodes.ListingEmpty, "no games extracted from listing page")
	}

	logger(ctx).Info("listing extracted", "games", len(summaries))

	return summaries, nil
}

// FetchDetail resolves one summary into a terminal GameRecord. Failures are
// never returned: they end up on the record as a failed state with a
// human-readable reason, isolated from sibling fetches.
func (s *GameService) FetchDetail(ctx context.Context, summary entity.GameSummary) entity.GameRecord {
	record := entity.NewGameRecord(summary)

	detail, err := s.resolveDetail(ctx, summary.DetailURL)
	if err != nil {
		logger(ctx).Warn("detail fetch failed",
			"game_number", summary.GameNumber,
			"url", summary.DetailURL,
			"error", err,
		)
		record.Fail(err.Error())

		return record
	}

	record.Resolve(detail)

	return record
}

func (s *GameService) resolveDetail(ctx context.Context, url string) (entity.GameDetail, error) {
	if cached, found := s.detailCache.Get(url); found {
		return cached.(entity.GameDetail), nil //nolint:forcetypeassert
	}

	html, err := s.fetcher.FetchDetail(ctx, url)
	if err != nil {
		return entity.GameDetail{}, fmt.Errorf("fetch detail: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return entity.GameDetail{}, fmt.Errorf("parse detail: %w", err)
	}

	detail := scrape.ExtractDetail(doc)

	s.detailCache.Set(url, detail, cache.DefaultExpiration)

	return detail, nil
}
