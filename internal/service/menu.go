package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/domgielar/UDash/internal/domain"
	"github.com/domgielar/UDash/internal/scraper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultFetchConcurrency = 4

// Location pairs a display name with its upstream slug.
type Location struct {
	Name string
	Slug string
}

// DefaultLocations lists the dining locations the pipeline scrapes.
func DefaultLocations() []Location {
	return []Location{
		{Name: "Berkshire DC", Slug: "berkshire"},
		{Name: "Worcester DC", Slug: "worcester"},
		{Name: "Franklin DC", Slug: "franklin"},
		{Name: "Hampshire DC", Slug: "hampshire"},
		{Name: "Grab N Go (Campus)", Slug: "grab-n-go"},
	}
}

// UpstreamFailureError signals that no location yielded items and at least
// one upstream fetch failed. It carries the per-location failure details for
// the 502 response body.
type UpstreamFailureError struct {
	Details []domain.UpstreamError
}

func (e *UpstreamFailureError) Error() string {
	return fmt.Sprintf("upstream error fetching menus (%d failures)", len(e.Details))
}

type MenuService struct {
	client       *scraper.Client
	locations    []Location
	concurrency  int
	mockFallback bool
	logger       *zap.SugaredLogger
}

type MenuConfig struct {
	Locations    []Location
	Concurrency  int
	MockFallback bool
}

func NewMenuService(client *scraper.Client, cfg MenuConfig, logger *zap.SugaredLogger) *MenuService {
	if len(cfg.Locations) == 0 {
		cfg.Locations = DefaultLocations()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultFetchConcurrency
	}

	return &MenuService{
		client:       client,
		locations:    cfg.Locations,
		concurrency:  cfg.Concurrency,
		mockFallback: cfg.MockFallback,
		logger:       logger,
	}
}

// BuildSnapshot fetches every configured location and aggregates the result.
// The upstream source only ever serves the current menu, so client-supplied
// dates are ignored and the snapshot is stamped with the server's current
// date. A single location's failure never aborts the snapshot; failures are
// collected per location. With zero items and at least one failure the
// pipeline reports an *UpstreamFailureError (or, when the mock fallback is
// enabled, a synthesized catalog flagged source "mock"). The collected
// per-location failures are returned alongside successful snapshots too.
func (s *MenuService) BuildSnapshot(ctx context.Context) (*domain.MenuSnapshot, []domain.UpstreamError, error) {
	date := time.Now().Format("2006-01-02")

	menus := make([]*domain.LocationMenu, len(s.locations))
	upstreamErrs := make([]*domain.UpstreamError, len(s.locations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, loc := range s.locations {
		i, loc := i, loc
		g.Go(func() error {
			menuURL := s.client.MenuURL(loc.Slug)

			doc, err := s.client.FetchMenu(gctx, loc.Slug)
			if err != nil {
				if statusErr, ok := err.(*scraper.StatusError); ok {
					s.logger.Warnw("upstream HTTP error", "url", menuURL, "status", statusErr.Code)
					upstreamErrs[i] = &domain.UpstreamError{
						URL:    menuURL,
						Status: strconv.Itoa(statusErr.Code),
					}
				} else {
					s.logger.Warnw("upstream fetch failed", "url", menuURL, "error", err)
					upstreamErrs[i] = &domain.UpstreamError{
						URL:     menuURL,
						Status:  "network/error",
						Message: err.Error(),
					}
				}
				return nil
			}

			items := scraper.ParseMenu(doc)
			if len(items) == 0 {
				s.logger.Infow("no menu items found", "location", loc.Name)
				return nil
			}

			s.logger.Infow("scraped location menu", "location", loc.Name, "items", len(items))
			menus[i] = &domain.LocationMenu{Name: loc.Name, Items: items}
			return nil
		})
	}

	// Workers only record outcomes per slot, they never return errors.
	_ = g.Wait()

	locations := []domain.LocationMenu{}
	for _, m := range menus {
		if m != nil {
			locations = append(locations, *m)
		}
	}

	details := []domain.UpstreamError{}
	for _, e := range upstreamErrs {
		if e != nil {
			details = append(details, *e)
		}
	}

	if len(locations) > 0 {
		return &domain.MenuSnapshot{
			Date:      date,
			Locations: locations,
			Source:    domain.SourceScraped,
		}, details, nil
	}

	if len(details) > 0 {
		if s.mockFallback {
			s.logger.Warnw("scraping failed entirely, serving mock catalog", "failures", len(details))
			return s.mockSnapshot(date), details, nil
		}
		return nil, details, &UpstreamFailureError{Details: details}
	}

	// All locations genuinely have nothing published today.
	return &domain.MenuSnapshot{
		Date:      date,
		Locations: []domain.LocationMenu{},
		Message:   "No menu items found",
	}, details, nil
}

// mockSnapshot synthesizes a fixed orderable catalog for every configured
// location. Prices here are part of the catalog, never upstream-derived.
func (s *MenuService) mockSnapshot(date string) *domain.MenuSnapshot {
	catalog := []domain.MenuItem{
		{Name: "Grilled Chicken Breast", Category: "Grill Station", Price: 8.99, Image: scraper.ImageURL("chicken")},
		{Name: "Vegetable Stir Fry", Category: "International", Price: 9.49, Image: scraper.ImageURL("stirfry")},
		{Name: "Baked Ziti", Category: "Pasta Bar", Price: 8.49, Image: scraper.ImageURL("ziti")},
		{Name: "Roasted Sweet Potato", Category: "Starches", Price: 3.99, Image: scraper.ImageURL("potato")},
		{Name: "Caesar Salad", Category: "Salad Bar", Price: 6.99, Image: scraper.ImageURL("salad")},
	}

	locations := make([]domain.LocationMenu, 0, len(s.locations))
	for _, loc := range s.locations {
		items := make([]domain.MenuItem, len(catalog))
		copy(items, catalog)
		locations = append(locations, domain.LocationMenu{Name: loc.Name, Items: items})
	}

	return &domain.MenuSnapshot{
		Date:      date,
		Locations: locations,
		Source:    domain.SourceMock,
		Message:   "Could not load today's menu. Some items may not be available.",
	}
}
