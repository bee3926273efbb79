// Package roster cleans the banned-player worksheet. The roster is a
// side table with its own forgiving rules: missing data defaults, bad
// rows are dropped with a warning, and an unconfigured source simply
// yields an empty roster.
package roster

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pokernight/internal/dataprocessing"
	"pokernight/pkg/contracts/domain"
)

// WorksheetName is the sheet tab the roster lives on.
const WorksheetName = "banned_players"

// DefaultReason fills missing ban reasons.
const DefaultReason = "Failure to pay out"

// Ban type values after normalization.
const (
	BanPermanent = "Permanent"
	BanTemporary = "Temporary"
)

const (
	colPlayerName = "player_name"
	colReason     = "reason"
	colBanType    = "ban_type"
)

// Normalize cleans the raw roster table. assetsDir is the local
// directory searched for player mugshots; empty disables the lookup.
// Returned warnings are informational, never fatal.
func Normalize(table domain.RawTable, assetsDir string) ([]domain.BannedPlayer, []string) {
	var warnings []string
	if table.Empty() {
		return []domain.BannedPlayer{}, warnings
	}

	columns := make(map[string][]domain.Cell, len(table.Headers))
	for _, header := range table.Headers {
		columns[dataprocessing.CleanColumnName(header)] = table.Columns[header]
	}
	names, ok := columns[colPlayerName]
	if !ok {
		warnings = append(warnings, "Missing required column: player_name")
		return []domain.BannedPlayer{}, warnings
	}

	cellText := func(col string, i int) string {
		cells, ok := columns[col]
		if !ok || i >= len(cells) {
			return ""
		}
		text, _ := dataprocessing.CoerceString(cells[i])
		return strings.TrimSpace(text)
	}

	players := make([]domain.BannedPlayer, 0, len(names))
	dropped := 0
	for i := range names {
		name := cellText(colPlayerName, i)
		if name == "" {
			dropped++
			continue
		}
		p := domain.BannedPlayer{
			Name:    name,
			Reason:  cellText(colReason, i),
			BanType: normalizeBanType(cellText(colBanType, i)),
		}
		if p.Reason == "" {
			p.Reason = DefaultReason
		}
		p.MugshotPath = mugshotPath(assetsDir, name)
		players = append(players, p)
	}
	if dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("Dropped %d row(s) with empty player_name.", dropped))
	}
	return players, warnings
}

// normalizeBanType maps free text onto the two known ban types,
// defaulting to temporary.
func normalizeBanType(value string) string {
	if strings.EqualFold(value, BanPermanent) {
		return BanPermanent
	}
	return BanTemporary
}

// mugshotPath looks for a local PNG named after the player. Names are
// lowercased, spaces become underscores, and anything outside
// [a-z0-9_] is stripped. Returns "" when no file exists.
func mugshotPath(assetsDir, name string) string {
	if assetsDir == "" {
		return ""
	}
	safe := strings.ToLower(strings.TrimSpace(name))
	safe = strings.ReplaceAll(safe, " ", "_")
	var b strings.Builder
	for _, r := range safe {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	path := filepath.Join(assetsDir, "banned", b.String()+".png")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
