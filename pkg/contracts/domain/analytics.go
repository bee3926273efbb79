package domain

import "time"

// Standing is one row of the player leaderboard.
type Standing struct {
	Player          string  `json:"player"`
	GamesPlayed     int     `json:"games_played"`
	TotalNet        float64 `json:"total_net"`
	WinRate         float64 `json:"win_rate"`
	AvgNet          float64 `json:"avg_net"`
	BestSessionNet  float64 `json:"best_session_net"`
	WorstSessionNet float64 `json:"worst_session_net"`
}

// SummaryKPIs are the headline numbers for the overview surface.
// Empty input yields the zero value with empty player names.
type SummaryKPIs struct {
	TotalSessions   int     `json:"total_sessions"`
	TotalNet        float64 `json:"total_net"`
	TopWinner       string  `json:"top_winner,omitempty"`
	TopWinnerNet    float64 `json:"top_winner_net"`
	BiggestLoser    string  `json:"biggest_loser,omitempty"`
	BiggestLoserNet float64 `json:"biggest_loser_net"`
}

// Streak run classifications.
const (
	StreakWin     = "win"
	StreakLoss    = "loss"
	StreakNeutral = "neutral"
)

// CurrentStreak describes the run a player is presently on.
type CurrentStreak struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
	Label string `json:"label"`
}

// StreakSummary holds a player's streak statistics. Wins extend
// positive runs, losses extend negative runs, and a break-even session
// resets the running streak entirely.
type StreakSummary struct {
	Current     CurrentStreak `json:"current"`
	LongestWin  int           `json:"longest_win"`
	LongestLoss int           `json:"longest_loss"`
}

// PlayerProfile is the per-player insight bundle.
type PlayerProfile struct {
	Player          string          `json:"player"`
	GamesPlayed     int             `json:"games_played"`
	WinRate         float64         `json:"win_rate"`
	AvgNet          float64         `json:"avg_net"`
	MedianNet       float64         `json:"median_net"`
	BestSessionNet  float64         `json:"best_session_net"`
	WorstSessionNet float64         `json:"worst_session_net"`
	Streaks         StreakSummary   `json:"streaks"`
	Recent          []SessionRecord `json:"recent"`
}

// SwingSession identifies the single player-session row with the
// largest absolute net. When no rows qualify all value fields are
// unset and Reason explains why.
type SwingSession struct {
	Player    string     `json:"player,omitempty"`
	Net       float64    `json:"net"`
	Date      *time.Time `json:"date,omitempty"`
	Group     string     `json:"group,omitempty"`
	SessionID string     `json:"session_id,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

// CumulativePoint is one charting sample: a player's running net total
// as of a session date.
type CumulativePoint struct {
	Date          time.Time `json:"date"`
	Player        string    `json:"player"`
	Net           float64   `json:"net"`
	CumulativeNet float64   `json:"cumulative_net"`
}

// BannedPlayer is one entry of the banned roster worksheet.
type BannedPlayer struct {
	Name        string `json:"player_name"`
	Reason      string `json:"reason"`
	BanType     string `json:"ban_type"`
	MugshotPath string `json:"mugshot_path,omitempty"`
}
