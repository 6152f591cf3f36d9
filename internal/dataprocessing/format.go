package dataprocessing

import (
	"strconv"

	"github.com/kSibalic/nba/pkg/contracts/domain"
)

// NoData is shown in place of a zero value.
const NoData = "-"

// FormatStat renders a per-game value with one decimal, or NoData for 0.
func FormatStat(v float64) string {
	if v <= 0 {
		return NoData
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// FormatPercent renders a 0..1 ratio as a percentage with one decimal, or
// NoData for 0.
func FormatPercent(v float64) string {
	if v <= 0 {
		return NoData
	}
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

// FormatCount renders an integer column, or NoData for 0.
func FormatCount(v int) string {
	if v <= 0 {
		return NoData
	}
	return strconv.Itoa(v)
}

// TableRow is the display form of a record in the stats table.
type TableRow struct {
	Rank     string `json:"rank"`
	Player   string `json:"player"`
	Position string `json:"position"`
	Age      string `json:"age"`
	Team     string `json:"team"`
	Games    string `json:"games"`
	Minutes  string `json:"minutes"`
	FGPct    string `json:"fg_pct"`
	ThreePct string `json:"three_pct"`
	FTPct    string `json:"ft_pct"`
	Rebounds string `json:"rebounds"`
	Assists  string `json:"assists"`
	Points   string `json:"points"`
}

// FormatTableRow renders rec for the stats table.
func FormatTableRow(rec domain.PlayerRecord) TableRow {
	return TableRow{
		Rank:     FormatCount(rec.Rank),
		Player:   rec.Player,
		Position: rec.Position,
		Age:      FormatCount(rec.Age),
		Team:     rec.Team,
		Games:    FormatCount(rec.GamesPlayed),
		Minutes:  FormatStat(rec.MinutesPerGame),
		FGPct:    FormatPercent(rec.FieldGoalPct),
		ThreePct: FormatPercent(rec.ThreePct),
		FTPct:    FormatPercent(rec.FTPct),
		Rebounds: FormatStat(rec.TotalReb),
		Assists:  FormatStat(rec.Assists),
		Points:   FormatStat(rec.Points),
	}
}
