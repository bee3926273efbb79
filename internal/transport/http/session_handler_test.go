package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokernight/internal/services"
	"pokernight/internal/settlement"
	"pokernight/internal/sheets"
	"pokernight/pkg/contracts/domain"
)

// fakeService implements SessionService with canned data.
type fakeService struct {
	records    []domain.SessionRecord
	lastFilter domain.Filter
	refreshed  bool
}

func (f *fakeService) Records(ctx context.Context, filter domain.Filter) ([]domain.SessionRecord, error) {
	f.lastFilter = filter
	return f.records, nil
}

func (f *fakeService) Standings(ctx context.Context, filter domain.Filter) ([]domain.Standing, error) {
	return []domain.Standing{{Player: "Alice", TotalNet: 45, GamesPlayed: 1}}, nil
}

func (f *fakeService) Summary(ctx context.Context, filter domain.Filter) (domain.SummaryKPIs, error) {
	return domain.SummaryKPIs{TotalSessions: 1, TopWinner: "Alice"}, nil
}

func (f *fakeService) Profile(ctx context.Context, filter domain.Filter, player string) (domain.PlayerProfile, error) {
	if player != "Alice" {
		return domain.PlayerProfile{}, fmt.Errorf("%w: %s", services.ErrPlayerNotFound, player)
	}
	return domain.PlayerProfile{Player: "Alice", GamesPlayed: 1}, nil
}

func (f *fakeService) Swing(ctx context.Context, filter domain.Filter) (domain.SwingSession, error) {
	return domain.SwingSession{Player: "Alice", Net: 45}, nil
}

func (f *fakeService) Cumulative(ctx context.Context, filter domain.Filter) ([]domain.CumulativePoint, error) {
	return []domain.CumulativePoint{}, nil
}

func (f *fakeService) Quality(ctx context.Context) (domain.DataQuality, error) {
	return domain.DataQuality{Source: domain.SourceSample}, nil
}

func (f *fakeService) Settlement(ctx context.Context, sessionID string) (services.SettlementResult, error) {
	switch sessionID {
	case "S1":
		return services.SettlementResult{
			SessionID: "S1",
			Transfers: []domain.Transfer{{Payer: "Bob", Payee: "Alice", Amount: 45}},
			Text:      "Bob -> Alice: £45.00",
		}, nil
	case "BAD":
		return services.SettlementResult{}, &settlement.ImbalanceError{Imbalance: 5}
	default:
		return services.SettlementResult{}, fmt.Errorf("%w: %s", services.ErrSessionNotFound, sessionID)
	}
}

func (f *fakeService) Banned(ctx context.Context) ([]domain.BannedPlayer, []string, error) {
	return []domain.BannedPlayer{{Name: "Dodgy Dave", BanType: "Permanent"}}, nil, nil
}

func (f *fakeService) Diagnostics(ctx context.Context) sheets.Status {
	return sheets.Status{Configured: false}
}

func (f *fakeService) Refresh(ctx context.Context) {
	f.refreshed = true
}

func setupHandler(t *testing.T) (*fakeService, http.Handler) {
	t.Helper()
	svc := &fakeService{
		records: []domain.SessionRecord{
			{
				SessionID: "S1",
				Date:      time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
				Player:    "Alice",
				BuyIn:     50,
				CashOut:   95,
				Net:       45,
				Group:     "Friday Crew",
			},
		},
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return svc, NewSessionHandler(svc, logger).Routes()
}

func doRequest(t *testing.T, handler http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestGetSessions(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/sessions")

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Sessions []domain.SessionRecord `json:"sessions"`
		Count    int                    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "Alice", body.Sessions[0].Player)
}

func TestGetSessionsFilterParsing(t *testing.T) {
	svc, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/sessions?from=2025-01-01&to=2025-01-31&players=Alice,Bob&group=Friday+Crew")

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, svc.lastFilter.From)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *svc.lastFilter.From)
	assert.Equal(t, []string{"Alice", "Bob"}, svc.lastFilter.Players)
	assert.Equal(t, []string{"Friday Crew"}, svc.lastFilter.Groups)
}

func TestGetSessionsBadDate(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/sessions?from=03/01/2025")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "VALIDATION_FAILED")
}

func TestGetSessionsInvertedRange(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/sessions?from=2025-02-01&to=2025-01-01")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetStandings(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/standings")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Alice")
}

func TestGetPlayerProfile(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/players/Alice")
	require.Equal(t, http.StatusOK, rr.Code)

	var profile domain.PlayerProfile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &profile))
	assert.Equal(t, "Alice", profile.Player)
}

func TestGetPlayerProfileNotFound(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/players/Nobody")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_FOUND")
}

func TestGetSettlement(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/sessions/S1/settlement")
	require.Equal(t, http.StatusOK, rr.Code)

	var result services.SettlementResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "S1", result.SessionID)
	require.Len(t, result.Transfers, 1)
	assert.Equal(t, "Bob", result.Transfers[0].Payer)
}

func TestGetSettlementNotFound(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/sessions/S99/settlement")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetSettlementImbalance(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/sessions/BAD/settlement")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "SETTLEMENT_IMBALANCE")
}

func TestExportCSV(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/export?format=csv")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Contains(t, rr.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "sessions.csv")

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Alice")
}

func TestExportDefaultsToCSV(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/export")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/csv")
}

func TestExportXLSX(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/export?format=xlsx")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "spreadsheetml")
}

func TestExportUnknownFormat(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/export?format=pdf")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetQuality(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/quality")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), domain.SourceSample)
}

func TestGetBanned(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/banned")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Dodgy Dave")
}

func TestGetDiagnostics(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/diagnostics")
	require.Equal(t, http.StatusOK, rr.Code)

	var status sheets.Status
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.False(t, status.Configured)
}

func TestRefresh(t *testing.T) {
	svc, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodPost, "/refresh")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, svc.refreshed)
}

func TestRefreshRejectsGet(t *testing.T) {
	_, handler := setupHandler(t)
	rr := doRequest(t, handler, http.MethodGet, "/refresh")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
