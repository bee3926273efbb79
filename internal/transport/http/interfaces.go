package http

import (
	"context"

	"pokernight/internal/services"
	"pokernight/internal/sheets"
	"pokernight/pkg/contracts/domain"
)

// SessionService is the service surface the handlers depend on.
type SessionService interface {
	Records(ctx context.Context, f domain.Filter) ([]domain.SessionRecord, error)
	Standings(ctx context.Context, f domain.Filter) ([]domain.Standing, error)
	Summary(ctx context.Context, f domain.Filter) (domain.SummaryKPIs, error)
	Profile(ctx context.Context, f domain.Filter, player string) (domain.PlayerProfile, error)
	Swing(ctx context.Context, f domain.Filter) (domain.SwingSession, error)
	Cumulative(ctx context.Context, f domain.Filter) ([]domain.CumulativePoint, error)
	Quality(ctx context.Context) (domain.DataQuality, error)
	Settlement(ctx context.Context, sessionID string) (services.SettlementResult, error)
	Banned(ctx context.Context) ([]domain.BannedPlayer, []string, error)
	Diagnostics(ctx context.Context) sheets.Status
	Refresh(ctx context.Context)
}
