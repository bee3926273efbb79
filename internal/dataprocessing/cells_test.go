package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pokernight/pkg/contracts/domain"
)

func TestCoerceDate(t *testing.T) {
	jan3 := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		cell   domain.Cell
		want   time.Time
		reason Reason
	}{
		{"day first slashes", domain.StringCell("03/01/2025"), jan3, ReasonNone},
		{"iso", domain.StringCell("2025-01-03"), jan3, ReasonNone},
		{"month name", domain.StringCell("3 Jan 2025"), jan3, ReasonNone},
		{"trailing nbsp", domain.StringCell("03/01/2025\u00a0"), jan3, ReasonNone},
		{"leading nbsp", domain.StringCell("\u00a003/01/2025"), jan3, ReasonNone},
		{"nbsp as field separator", domain.StringCell("03\u00a001\u00a02025"), jan3, ReasonNone},
		{"nbsp inside month name form", domain.StringCell("3\u00a0Jan\u00a02025"), jan3, ReasonNone},
		{"null", domain.NullCell(), time.Time{}, ReasonNull},
		{"blank", domain.StringCell("   "), time.Time{}, ReasonNull},
		{"garbage", domain.StringCell("not a date"), time.Time{}, ReasonBadDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := CoerceDate(tt.cell)
			assert.Equal(t, tt.reason, reason)
			if tt.reason == ReasonNone {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		name   string
		cell   domain.Cell
		want   float64
		reason Reason
	}{
		{"number cell", domain.NumberCell(12.5), 12.5, ReasonNone},
		{"plain text", domain.StringCell("50"), 50, ReasonNone},
		{"thousands separator", domain.StringCell("1,250.50"), 1250.50, ReasonNone},
		{"negative", domain.StringCell("-45"), -45, ReasonNone},
		{"null", domain.NullCell(), 0, ReasonNull},
		{"blank", domain.StringCell("  "), 0, ReasonNull},
		{"words", domain.StringCell("fifty"), 0, ReasonNotANumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := CoerceNumber(tt.cell)
			assert.Equal(t, tt.reason, reason)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCoerceString(t *testing.T) {
	s, ok := CoerceString(domain.StringCell("Alice"))
	assert.True(t, ok)
	assert.Equal(t, "Alice", s)

	// Numeric session ids round-trip without a trailing ".0".
	s, ok = CoerceString(domain.NumberCell(42))
	assert.True(t, ok)
	assert.Equal(t, "42", s)

	_, ok = CoerceString(domain.NullCell())
	assert.False(t, ok)
}
