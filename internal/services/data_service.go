// Package services holds the business logic between the HTTP transport
// and the data layer: dataset loading with caching and fallback, and
// the aggregation and settlement operations exposed by the API.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"pokernight/internal/analytics"
	"pokernight/internal/cache"
	"pokernight/internal/config"
	"pokernight/internal/dataprocessing"
	"pokernight/internal/filter"
	"pokernight/internal/roster"
	"pokernight/internal/sample"
	"pokernight/internal/settlement"
	"pokernight/internal/sheets"
	"pokernight/pkg/contracts/domain"
)

const (
	datasetCacheKey = "dataset"
	bannedCacheKey  = "banned"
)

// Source fetches raw tables from the live spreadsheet. It is an
// interface so tests can substitute fixtures for the Sheets API.
type Source interface {
	Fetch(ctx context.Context) (domain.RawTable, error)
	FetchWorksheet(ctx context.Context, worksheet string) (domain.RawTable, error)
	Diagnostics(ctx context.Context) sheets.Status
}

// Dataset is the normalized result set served to all read endpoints.
type Dataset struct {
	Records []domain.SessionRecord
	Quality domain.DataQuality
}

// SettlementResult is the settlement plan for a single session.
type SettlementResult struct {
	SessionID string            `json:"session_id"`
	Transfers []domain.Transfer `json:"transfers"`
	Text      string            `json:"text"`
}

// DataService loads, normalizes and serves session data.
type DataService struct {
	config *config.Config
	source Source
	cache  *cache.TTL
	group  singleflight.Group
	logger *slog.Logger
}

// NewDataService creates a data service. source may be nil, in which
// case the bundled sample data is always used.
func NewDataService(cfg *config.Config, source Source, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataService{
		config: cfg,
		source: source,
		cache:  cache.New(),
		logger: logger,
	}
}

// Dataset returns the normalized dataset, loading it through the cache.
// Concurrent callers share a single load.
func (ds *DataService) Dataset(ctx context.Context) (Dataset, error) {
	if v, ok := ds.cache.Get(datasetCacheKey); ok {
		return v.(Dataset), nil
	}

	v, err, _ := ds.group.Do(datasetCacheKey, func() (interface{}, error) {
		dataset := ds.load(ctx)
		ds.cache.Put(datasetCacheKey, dataset, ds.config.Data.CacheTTL)
		return dataset, nil
	})
	if err != nil {
		return Dataset{}, err
	}
	return v.(Dataset), nil
}

// load fetches from the live source when configured, falling back to
// the bundled sample on any failure. Loading never errors: problems
// surface as data quality issues instead.
func (ds *DataService) load(ctx context.Context) Dataset {
	var (
		table   domain.RawTable
		quality domain.DataQuality
	)

	switch {
	case ds.source == nil:
		table, quality = ds.loadSample()
	default:
		fetched, err := ds.source.Fetch(ctx)
		if err != nil {
			ds.logger.WarnContext(ctx, "sheets fetch failed, falling back to sample",
				slog.String("error", err.Error()))
			table, quality = ds.loadSample()
			quality.AddIssue(fmt.Sprintf("Sheets load failed: %v", err))
		} else {
			table = fetched
			quality = domain.NewDataQuality(domain.SourceSheets)
		}
	}

	records, normQuality := dataprocessing.Normalize(table)
	quality.Extend(normQuality)

	ds.logger.InfoContext(ctx, "dataset loaded",
		slog.String("source", quality.Source),
		slog.Int("records", len(records)),
		slog.Int("issues", len(quality.Issues)))

	return Dataset{Records: records, Quality: quality}
}

func (ds *DataService) loadSample() (domain.RawTable, domain.DataQuality) {
	quality := domain.NewDataQuality(domain.SourceSample)
	quality.AddIssue("Using bundled sample data (demo mode).")

	table, err := sample.Load(ds.config.Data.SamplePath)
	if err != nil {
		quality.AddIssue(fmt.Sprintf("Sample data missing at %s", ds.config.Data.SamplePath))
		return domain.RawTable{}, quality
	}
	return table, quality
}

// Records returns the dataset filtered by f. Dimension criteria on
// columns the dataset does not carry are ignored rather than matched
// against the empty default values.
func (ds *DataService) Records(ctx context.Context, f domain.Filter) ([]domain.SessionRecord, error) {
	dataset, err := ds.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(dataset.Records, sanitizeFilter(f, dataset.Quality.Headers)), nil
}

// sanitizeFilter drops criteria for optional dimension columns absent
// from the detected headers. Group is not scoped this way: it is
// required (with a default) so every record carries a real value.
func sanitizeFilter(f domain.Filter, headers []string) domain.Filter {
	have := make(map[string]bool, len(headers))
	for _, h := range headers {
		have[h] = true
	}
	if !have[dataprocessing.ColVenue] {
		f.Venues = nil
	}
	if !have[dataprocessing.ColSeason] {
		f.Seasons = nil
	}
	return f
}

// Standings returns the leaderboard over the filtered records.
func (ds *DataService) Standings(ctx context.Context, f domain.Filter) ([]domain.Standing, error) {
	records, err := ds.Records(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.Standings(records), nil
}

// Summary returns headline KPIs over the filtered records.
func (ds *DataService) Summary(ctx context.Context, f domain.Filter) (domain.SummaryKPIs, error) {
	records, err := ds.Records(ctx, f)
	if err != nil {
		return domain.SummaryKPIs{}, err
	}
	return analytics.Summary(records), nil
}

// Profile returns per-player analytics over the filtered records.
// ErrPlayerNotFound means the player appears nowhere in the dataset; a
// known player filtered down to zero rows yields an empty profile
// instead.
func (ds *DataService) Profile(ctx context.Context, f domain.Filter, player string) (domain.PlayerProfile, error) {
	dataset, err := ds.Dataset(ctx)
	if err != nil {
		return domain.PlayerProfile{}, err
	}

	known := false
	for _, rec := range dataset.Records {
		if rec.Player == player {
			known = true
			break
		}
	}
	if !known {
		return domain.PlayerProfile{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, player)
	}

	records := filter.Apply(dataset.Records, sanitizeFilter(f, dataset.Quality.Headers))
	return analytics.Profile(records, player), nil
}

// Swing returns the single largest absolute result over the filtered
// records. With no rows the result carries a reason instead.
func (ds *DataService) Swing(ctx context.Context, f domain.Filter) (domain.SwingSession, error) {
	records, err := ds.Records(ctx, f)
	if err != nil {
		return domain.SwingSession{}, err
	}
	return analytics.BiggestSwing(records), nil
}

// Cumulative returns running net series per player over the filtered
// records.
func (ds *DataService) Cumulative(ctx context.Context, f domain.Filter) ([]domain.CumulativePoint, error) {
	records, err := ds.Records(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.CumulativeNet(records), nil
}

// Quality returns the data quality report for the loaded dataset.
func (ds *DataService) Quality(ctx context.Context) (domain.DataQuality, error) {
	dataset, err := ds.Dataset(ctx)
	if err != nil {
		return domain.DataQuality{}, err
	}
	return dataset.Quality, nil
}

// Settlement computes the transfer plan for one session.
func (ds *DataService) Settlement(ctx context.Context, sessionID string) (SettlementResult, error) {
	dataset, err := ds.Dataset(ctx)
	if err != nil {
		return SettlementResult{}, err
	}

	nets := make(map[string]float64)
	found := false
	for _, rec := range dataset.Records {
		if rec.SessionID != sessionID {
			continue
		}
		found = true
		nets[rec.Player] += rec.Net
	}
	if !found {
		return SettlementResult{}, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	transfers, err := settlement.Compute(nets, ds.config.Data.SettlementTolerance)
	if err != nil {
		return SettlementResult{}, err
	}

	return SettlementResult{
		SessionID: sessionID,
		Transfers: transfers,
		Text:      settlement.FormatTransfers(transfers, ds.config.Data.CurrencySymbol),
	}, nil
}

// Banned returns the banned player roster from its own worksheet. A
// missing or unconfigured source yields an empty roster, not an error.
func (ds *DataService) Banned(ctx context.Context) ([]domain.BannedPlayer, []string, error) {
	type bannedEntry struct {
		players  []domain.BannedPlayer
		warnings []string
	}

	if v, ok := ds.cache.Get(bannedCacheKey); ok {
		entry := v.(bannedEntry)
		return entry.players, entry.warnings, nil
	}

	v, _, _ := ds.group.Do(bannedCacheKey, func() (interface{}, error) {
		entry := bannedEntry{players: []domain.BannedPlayer{}}
		if ds.source != nil {
			table, err := ds.source.FetchWorksheet(ctx, roster.WorksheetName)
			if err != nil {
				ds.logger.WarnContext(ctx, "banned roster fetch failed",
					slog.String("error", err.Error()))
			} else {
				entry.players, entry.warnings = roster.Normalize(table, ds.config.Data.AssetsDir)
			}
		}
		ds.cache.Put(bannedCacheKey, entry, ds.config.Data.CacheTTL)
		return entry, nil
	})
	entry := v.(bannedEntry)
	return entry.players, entry.warnings, nil
}

// Diagnostics reports source connectivity step by step.
func (ds *DataService) Diagnostics(ctx context.Context) sheets.Status {
	if ds.source == nil {
		return sheets.Status{}
	}
	return ds.source.Diagnostics(ctx)
}

// Refresh drops cached data so the next read reloads from the source.
func (ds *DataService) Refresh(ctx context.Context) {
	ds.cache.Invalidate(datasetCacheKey)
	ds.cache.Invalidate(bannedCacheKey)
	ds.logger.InfoContext(ctx, "dataset cache invalidated")
}
