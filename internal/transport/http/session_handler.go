// Package http contains the chi HTTP handlers for the session API.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "pokernight/internal/errors"
	"pokernight/internal/exporter"
	"pokernight/internal/services"
	"pokernight/internal/settlement"
	"pokernight/pkg/contracts/domain"
)

// filterDateLayout is the accepted format for from/to query parameters.
const filterDateLayout = "2006-01-02"

var validate = validator.New()

// SessionHandler handles session data HTTP requests.
type SessionHandler struct {
	service SessionService
	logger  *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(service SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger.With(slog.String("component", "session_handler")),
	}
}

// Routes returns the session API routes.
func (h *SessionHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/sessions", h.GetSessions)
	r.Get("/sessions/{id}/settlement", h.GetSettlement)
	r.Get("/standings", h.GetStandings)
	r.Get("/summary", h.GetSummary)
	r.Get("/players/{player}", h.GetPlayerProfile)
	r.Get("/swing", h.GetSwing)
	r.Get("/cumulative", h.GetCumulative)
	r.Get("/quality", h.GetQuality)
	r.Get("/diagnostics", h.GetDiagnostics)
	r.Get("/banned", h.GetBanned)
	r.Get("/export", h.Export)
	r.Post("/refresh", h.Refresh)

	return r
}

// parseFilter builds a record filter from query parameters. from and
// to take YYYY-MM-DD dates; list parameters accept comma separation.
func parseFilter(r *http.Request) (domain.Filter, *apierrors.APIError) {
	var f domain.Filter
	q := r.URL.Query()

	if raw := q.Get("from"); raw != "" {
		if err := validate.Var(raw, "datetime=2006-01-02"); err != nil {
			return f, apierrors.ErrValidation("from", "expected date in YYYY-MM-DD format")
		}
		t, _ := time.Parse(filterDateLayout, raw)
		f.From = &t
	}
	if raw := q.Get("to"); raw != "" {
		if err := validate.Var(raw, "datetime=2006-01-02"); err != nil {
			return f, apierrors.ErrValidation("to", "expected date in YYYY-MM-DD format")
		}
		t, _ := time.Parse(filterDateLayout, raw)
		f.To = &t
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return f, apierrors.ErrValidation("to", "must not be before from")
	}

	f.Players = listParam(q["players"])
	f.Venues = listParam(q["venue"])
	f.Groups = listParam(q["group"])
	f.Seasons = listParam(q["season"])
	return f, nil
}

// listParam flattens repeated and comma-separated query values.
func listParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (h *SessionHandler) renderError(w http.ResponseWriter, r *http.Request, apiErr *apierrors.APIError) {
	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error_code", apiErr.ErrorCode),
			slog.String("error", apiErr.Message))
	}
	render.Render(w, r, apierrors.NewErrorResponse(apiErr))
}

// GetSessions handles GET /sessions.
func (h *SessionHandler) GetSessions(w http.ResponseWriter, r *http.Request) {
	f, apiErr := parseFilter(r)
	if apiErr != nil {
		h.renderError(w, r, apiErr)
		return
	}
	records, err := h.service.Records(r.Context(), f)
	if err != nil {
		h.renderError(w, r, apierrors.NewWithDetails(http.StatusInternalServerError, "DATA_LOAD_FAILED", "Failed to load session data", err.Error()))
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"sessions": records,
		"count":    len(records),
	})
}

// GetStandings handles GET /standings.
func (h *SessionHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	f, apiErr := parseFilter(r)
	if apiErr != nil {
		h.renderError(w, r, apiErr)
		return
	}
	standings, err := h.service.Standings(r.Context(), f)
	if err != nil {
		h.renderError(w, r, apierrors.NewWithDetails(http.StatusInternalServerError, "DATA_LOAD_FAILED", "Failed to load session data", err.Error()))
		return
	}
	render.JSON(w, r, map[string]interface{}{"standings": standings})
}

// GetSummary handles GET /summary.
func (h *SessionHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	f, apiErr := parseFilter(r)
	if apiErr != nil {
		h.renderError(w, r, apiErr)
		return
	}
	summary, err := h.service.Summary(r.Context(), f)
	if err != nil {
		h.renderError(w, r, apierrors.NewWithDetails(http.StatusInternalServerError, "DATA_LOAD_FAILED", "Failed to load session data", err.Error()))
		return
	}
	render.JSON(w, r, summary)
}

// GetPlayerProfile handles GET /players/{player}.
func (h *SessionHandler) GetPlayerProfile(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")
	if player == "" {
		h.renderError(w, r, apierrors.ErrValidation("player", "Player name is required"))
		return
	}
	f, apiErr := parseFilter(r)
	if apiErr != nil {
		h.renderError(w, r, apiErr)
		return
	}
	profile, err := h.service.Profile(r.Context(), f, player)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			h.renderError(w, r, apierrors.NotFoundError("Player"))
			return
		}
		h.renderError(w, r, apierrors.NewWithDetails(http.StatusInternalServerError, "DATA_LOAD_FAILED", "Failed to load session data", err.Error()))
		return
	}
	render.JSON(w, r, profile)
}

// GetSettlement handles GET /sessions/{id}/settlement.
func (h *SessionHandler) GetSettlement(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		h.renderError(w, r, apierrors.ErrValidation("id", "Session ID is required"))
		return
	}
	result, err := h.service.Settlement(r.Context(), sessionID)
	if err != nil {
		var imbalance *settlement.ImbalanceError
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			h.renderError(w, r, apierrors.NotFoundError("Session"))
		case errors.As(err, &imbalance):
			h.renderError(w, r, apierrors.ErrSettlementImbalance(imbalance.Imbalance))
		default:
			h.renderError(w, r, apierrors.NewWithDetails(http.StatusInternalServerError, "SETTLEMENT_FAILED", "Failed to compute settlement", err.Error()))
		}
		return
	}
	render.JSON(w, r, result)
}

// GetSwing handles GET /swing.
func (h *SessionHandler) GetSwing(w http.ResponseWriter, r *http.Request) {
	f, apiErr := parseFilter(r)
	if apiErr != nil {
		h.renderError(w, r, apiErr)
		return
	}
	swing, err := h.service.Swing(r.Context(), f)
	if err != nil {
		h.renderError(w, r, apierrors.NewWithDetails(http.StatusInternalServerError, "DATA_LOAD_FAILED", "Failed to load session data", err.Error()))
		return
	}
	render.JSON(w, r, swing)
}

// GetCumulative handles GET /cumulative.
func (h *SessionHandler) GetCumulative(w http.ResponseWriter, r *http.Request) {
	f, apiErr := parseFilter(r)
	if apiErr != nil {
		h.renderError(w, r, apiErr)
		return
	}
	points, err := h.service.Cumulative(r.Context(), f)
	if err != nil {
		h.renderError(w, r, apierrors.NewWithDetails(http.StatusInternalServerError, "DATA_LOAD_FAILED", "Failed to load session data", err.Error()))
		return
	}
	render.JSON(w, r, map[string]interface{}{"points": points})
}

// GetQuality handles GET /quality.
func (h *SessionHandler) GetQuality(w http.ResponseWriter, r *http.Request) {
	quality, err := h.service.Quality(r.Context())
	if err != nil {
		h.renderError(w, r, apierrors.NewWithDetails(http.StatusInternalServerError, "DATA_LOAD_FAILED", "Failed to load session data", err.Error()))
		return
	}
	render.JSON(w, r, quality)
}

// GetDiagnostics handles GET /diagnostics.
func (h *SessionHandler) GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Diagnostics(r.Context()))
}

// GetBanned handles GET /banned.
func (h *SessionHandler) GetBanned(w http.ResponseWriter, r *http.Request) {
	players, warnings, err := h.service.Banned(r.Context())
	if err != nil {
		h.renderError(w, r, apierrors.NewWithDetails(http.StatusInternalServerError, "DATA_LOAD_FAILED", "Failed to load banned roster", err.Error()))
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"players":  players,
		"warnings": warnings,
	})
}

// Export handles GET /export?format=csv|xlsx.
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if err := validate.Var(format, "oneof=csv xlsx"); err != nil {
		h.renderError(w, r, apierrors.ErrValidation("format", fmt.Sprintf("Unsupported export format: %s", format)))
		return
	}

	f, apiErr := parseFilter(r)
	if apiErr != nil {
		h.renderError(w, r, apiErr)
		return
	}
	records, err := h.service.Records(r.Context(), f)
	if err != nil {
		h.renderError(w, r, apierrors.NewWithDetails(http.StatusInternalServerError, "DATA_LOAD_FAILED", "Failed to load session data", err.Error()))
		return
	}

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="sessions.csv"`)
		err = exporter.WriteCSV(w, records)
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="sessions.xlsx"`)
		err = exporter.WriteXLSX(w, records)
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "export failed",
			slog.String("format", format),
			slog.String("error", err.Error()))
	}
}

// Refresh handles POST /refresh by invalidating the dataset cache.
func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.service.Refresh(r.Context())
	render.JSON(w, r, map[string]string{"status": "refreshed"})
}
