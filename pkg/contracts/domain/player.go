package domain

import "math"

// Column codes used in the season files.
const (
	FieldRank          = "Rk"
	FieldPlayer        = "Player"
	FieldPosition      = "Pos"
	FieldAge           = "Age"
	FieldTeam          = "Tm"
	FieldGames         = "G"
	FieldGamesStarted  = "GS"
	FieldMinutes       = "MP"
	FieldFGMade        = "FG"
	FieldFGAttempts    = "FGA"
	FieldFGPct         = "FG%"
	FieldThreeMade     = "3P"
	FieldThreeAttempts = "3PA"
	FieldThreePct      = "3P%"
	FieldTwoMade       = "2P"
	FieldTwoAttempts   = "2PA"
	FieldTwoPct        = "2P%"
	FieldEFGPct        = "eFG%"
	FieldFTMade        = "FT"
	FieldFTAttempts    = "FTA"
	FieldFTPct         = "FT%"
	FieldOffReb        = "ORB"
	FieldDefReb        = "DRB"
	FieldTotalReb      = "TRB"
	FieldAssists       = "AST"
	FieldSteals        = "STL"
	FieldBlocks        = "BLK"
	FieldTurnovers     = "TOV"
	FieldFouls         = "PF"
	FieldPoints        = "PTS"
)

// Sentinels substituted for missing identity fields.
const (
	UnknownPlayer = "Unknown"
	NotAvailable  = "N/A"
)

// Columns lists every season column in file order.
var Columns = []string{
	FieldRank, FieldPlayer, FieldPosition, FieldAge, FieldTeam, FieldGames, FieldGamesStarted, FieldMinutes,
	FieldFGMade, FieldFGAttempts, FieldFGPct, FieldThreeMade, FieldThreeAttempts, FieldThreePct,
	FieldTwoMade, FieldTwoAttempts, FieldTwoPct, FieldEFGPct, FieldFTMade, FieldFTAttempts, FieldFTPct,
	FieldOffReb, FieldDefReb, FieldTotalReb, FieldAssists, FieldSteals, FieldBlocks, FieldTurnovers,
	FieldFouls, FieldPoints,
}

// NumericFields lists every numeric column in file order.
var NumericFields = []string{
	FieldRank, FieldAge, FieldGames, FieldGamesStarted, FieldMinutes,
	FieldFGMade, FieldFGAttempts, FieldFGPct, FieldThreeMade, FieldThreeAttempts, FieldThreePct,
	FieldTwoMade, FieldTwoAttempts, FieldTwoPct, FieldEFGPct, FieldFTMade, FieldFTAttempts, FieldFTPct,
	FieldOffReb, FieldDefReb, FieldTotalReb, FieldAssists, FieldSteals, FieldBlocks, FieldTurnovers,
	FieldFouls, FieldPoints,
}

// PlayerRecord is one cleaned row of a season dataset. Every numeric field is
// finite and non-negative; zero means "zero or unknown".
type PlayerRecord struct {
	Rank           int     `json:"rank"`
	Player         string  `json:"player"`
	Position       string  `json:"position"`
	Team           string  `json:"team"`
	Age            int     `json:"age"`
	GamesPlayed    int     `json:"games_played"`
	GamesStarted   int     `json:"games_started"`
	MinutesPerGame float64 `json:"minutes_per_game"`

	FieldGoalsMade    float64 `json:"field_goals_made"`
	FieldGoalAttempts float64 `json:"field_goal_attempts"`
	FieldGoalPct      float64 `json:"field_goal_pct"`
	ThreeMade         float64 `json:"three_made"`
	ThreeAttempts     float64 `json:"three_attempts"`
	ThreePct          float64 `json:"three_pct"`
	TwoMade           float64 `json:"two_made"`
	TwoAttempts       float64 `json:"two_attempts"`
	TwoPct            float64 `json:"two_pct"`
	EffectiveFGPct    float64 `json:"effective_fg_pct"`
	FTMade            float64 `json:"ft_made"`
	FTAttempts        float64 `json:"ft_attempts"`
	FTPct             float64 `json:"ft_pct"`
	OffReb            float64 `json:"off_reb"`
	DefReb            float64 `json:"def_reb"`
	TotalReb          float64 `json:"total_reb"`
	Assists           float64 `json:"assists"`
	Steals            float64 `json:"steals"`
	Blocks            float64 `json:"blocks"`
	Turnovers         float64 `json:"turnovers"`
	Fouls             float64 `json:"fouls"`
	Points            float64 `json:"points"`

	// Raw keeps the untouched text of columns that were not coerced.
	Raw map[string]string `json:"raw,omitempty"`
}

// IsStatField reports whether field names a numeric column.
func IsStatField(field string) bool {
	var r PlayerRecord
	return r.statPtr(field) != nil || isIntField(field)
}

func isIntField(field string) bool {
	switch field {
	case FieldRank, FieldAge, FieldGames, FieldGamesStarted:
		return true
	}
	return false
}

// Stat returns the value of a numeric column by its code.
func (r PlayerRecord) Stat(field string) (float64, bool) {
	switch field {
	case FieldRank:
		return float64(r.Rank), true
	case FieldAge:
		return float64(r.Age), true
	case FieldGames:
		return float64(r.GamesPlayed), true
	case FieldGamesStarted:
		return float64(r.GamesStarted), true
	}
	if p := r.statPtr(field); p != nil {
		return *p, true
	}
	return 0, false
}

// MustStat is Stat for fields already known to be valid; unknown fields read as 0.
func (r PlayerRecord) MustStat(field string) float64 {
	v, _ := r.Stat(field)
	return v
}

// SetStat assigns a numeric column by its code. Integer columns are truncated.
func (r *PlayerRecord) SetStat(field string, v float64) bool {
	switch field {
	case FieldRank:
		r.Rank = int(math.Trunc(v))
		return true
	case FieldAge:
		r.Age = int(math.Trunc(v))
		return true
	case FieldGames:
		r.GamesPlayed = int(math.Trunc(v))
		return true
	case FieldGamesStarted:
		r.GamesStarted = int(math.Trunc(v))
		return true
	}
	if p := r.statPtr(field); p != nil {
		*p = v
		return true
	}
	return false
}

func (r *PlayerRecord) statPtr(field string) *float64 {
	switch field {
	case FieldMinutes:
		return &r.MinutesPerGame
	case FieldFGMade:
		return &r.FieldGoalsMade
	case FieldFGAttempts:
		return &r.FieldGoalAttempts
	case FieldFGPct:
		return &r.FieldGoalPct
	case FieldThreeMade:
		return &r.ThreeMade
	case FieldThreeAttempts:
		return &r.ThreeAttempts
	case FieldThreePct:
		return &r.ThreePct
	case FieldTwoMade:
		return &r.TwoMade
	case FieldTwoAttempts:
		return &r.TwoAttempts
	case FieldTwoPct:
		return &r.TwoPct
	case FieldEFGPct:
		return &r.EffectiveFGPct
	case FieldFTMade:
		return &r.FTMade
	case FieldFTAttempts:
		return &r.FTAttempts
	case FieldFTPct:
		return &r.FTPct
	case FieldOffReb:
		return &r.OffReb
	case FieldDefReb:
		return &r.DefReb
	case FieldTotalReb:
		return &r.TotalReb
	case FieldAssists:
		return &r.Assists
	case FieldSteals:
		return &r.Steals
	case FieldBlocks:
		return &r.Blocks
	case FieldTurnovers:
		return &r.Turnovers
	case FieldFouls:
		return &r.Fouls
	case FieldPoints:
		return &r.Points
	}
	return nil
}

// Identity returns the value of an identity column (Player, Pos, Tm).
func (r PlayerRecord) Identity(field string) (string, bool) {
	switch field {
	case FieldPlayer:
		return r.Player, true
	case FieldPosition:
		return r.Position, true
	case FieldTeam:
		return r.Team, true
	}
	return "", false
}
