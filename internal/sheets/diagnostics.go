package sheets

import (
	"context"
	"fmt"
)

// Status is the connection report for the data-setup help surface.
type Status struct {
	Configured       bool     `json:"configured"`
	SpreadsheetFound bool     `json:"spreadsheet_found"`
	WorksheetFound   bool     `json:"worksheet_found"`
	Headers          []string `json:"headers"`
	Error            string   `json:"error,omitempty"`
}

// Diagnostics checks the connection step by step: configuration,
// spreadsheet access, worksheet access, detected headers. It never
// returns an error; problems land in Status.Error.
func (c *Client) Diagnostics(ctx context.Context) Status {
	status := Status{Headers: []string{}}

	if !c.cfg.Configured() {
		status.Error = "Secrets missing or incomplete."
		return status
	}
	status.Configured = true

	svc, err := c.service(ctx)
	if err != nil {
		status.Error = err.Error()
		return status
	}

	if _, err := svc.Spreadsheets.Get(c.cfg.SpreadsheetID).Context(ctx).Do(); err != nil {
		status.Error = fmt.Sprintf("spreadsheet lookup failed: %v", err)
		return status
	}
	status.SpreadsheetFound = true

	table, err := c.FetchWorksheet(ctx, c.cfg.WorksheetName)
	if err != nil {
		status.Error = fmt.Sprintf("worksheet %q lookup failed: %v", c.cfg.WorksheetName, err)
		return status
	}
	status.WorksheetFound = true
	status.Headers = table.Headers
	return status
}
