// Package sheets is the tabular source collaborator: it reads the
// session worksheet from Google Sheets and converts it into the raw
// table shape the normalizer consumes. Failures are classified so the
// caller's fallback-to-sample policy is an explicit branch rather than
// a catch-all.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"pokernight/pkg/contracts/domain"
)

// Error kinds the dataset service branches on.
var (
	// ErrNotConfigured means spreadsheet id or credentials are absent.
	ErrNotConfigured = errors.New("sheets source not configured")
	// ErrNotFound means the spreadsheet or the named worksheet does
	// not exist.
	ErrNotFound = errors.New("spreadsheet or worksheet not found")
)

// Config identifies the spreadsheet and the credentials to read it with.
type Config struct {
	SpreadsheetID   string
	WorksheetName   string
	CredentialsJSON []byte
}

// Configured reports whether the client has enough to attempt a fetch.
func (c Config) Configured() bool {
	return c.SpreadsheetID != "" && len(c.CredentialsJSON) > 0
}

// Client reads worksheets over the Sheets v4 API. The underlying
// service is created lazily on first use.
type Client struct {
	cfg    Config
	logger *slog.Logger

	mu  sync.Mutex
	svc *sheetsapi.Service
}

// NewClient creates a client. The configuration may be incomplete;
// Fetch reports ErrNotConfigured in that case.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "sheets_client")),
	}
}

func (c *Client) service(ctx context.Context) (*sheetsapi.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.svc != nil {
		return c.svc, nil
	}
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON(c.cfg.CredentialsJSON),
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	c.svc = svc
	return svc, nil
}

// Fetch reads the configured session worksheet.
func (c *Client) Fetch(ctx context.Context) (domain.RawTable, error) {
	return c.FetchWorksheet(ctx, c.cfg.WorksheetName)
}

// FetchWorksheet reads the named worksheet into a raw table. The first
// row is the header; short rows are padded with null cells.
func (c *Client) FetchWorksheet(ctx context.Context, worksheet string) (domain.RawTable, error) {
	if !c.cfg.Configured() {
		return domain.RawTable{}, ErrNotConfigured
	}

	svc, err := c.service(ctx)
	if err != nil {
		return domain.RawTable{}, err
	}

	resp, err := svc.Spreadsheets.Values.Get(c.cfg.SpreadsheetID, worksheet).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return domain.RawTable{}, classify(err, worksheet)
	}

	c.logger.InfoContext(ctx, "worksheet fetched",
		slog.String("worksheet", worksheet),
		slog.Int("rows", len(resp.Values)))

	return tableFromValues(resp.Values), nil
}

// classify maps API failures onto the package error kinds. Anything
// not clearly a missing resource stays a transient wrapped error.
func classify(err error, worksheet string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 404:
			return fmt.Errorf("spreadsheet: %w", ErrNotFound)
		case 400:
			// The Values API reports an unknown worksheet as an
			// unparseable range.
			return fmt.Errorf("worksheet %q: %w", worksheet, ErrNotFound)
		}
	}
	return fmt.Errorf("sheets fetch: %w", err)
}

// tableFromValues converts an API value grid into a RawTable. Headers
// come from the first row; cell types follow the unformatted values
// the API delivers (strings, numbers, bools).
func tableFromValues(values [][]interface{}) domain.RawTable {
	if len(values) == 0 {
		return domain.RawTable{}
	}

	headers := make([]string, len(values[0]))
	for i, v := range values[0] {
		headers[i] = fmt.Sprint(v)
	}

	table := domain.RawTable{
		Headers: headers,
		Columns: make(map[string][]domain.Cell, len(headers)),
	}
	rows := values[1:]
	for col, header := range headers {
		cells := make([]domain.Cell, len(rows))
		for i, row := range rows {
			if col >= len(row) {
				cells[i] = domain.NullCell()
				continue
			}
			cells[i] = cellFromValue(row[col])
		}
		table.Columns[header] = cells
	}
	return table
}

func cellFromValue(v interface{}) domain.Cell {
	switch value := v.(type) {
	case nil:
		return domain.NullCell()
	case string:
		return domain.StringCell(value)
	case float64:
		return domain.NumberCell(value)
	case int:
		return domain.NumberCell(float64(value))
	case int64:
		return domain.NumberCell(float64(value))
	case bool:
		if value {
			return domain.StringCell("true")
		}
		return domain.StringCell("false")
	default:
		return domain.StringCell(fmt.Sprint(value))
	}
}
