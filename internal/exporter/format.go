package exporter

import (
	"strconv"

	"github.com/kSibalic/nba/pkg/contracts/domain"
)

// formatFloat writes the shortest text that parses back to f.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// RecordRow renders rec in domain.Columns order, the layout of the season files.
func RecordRow(rec domain.PlayerRecord) []string {
	row := make([]string, len(domain.Columns))
	for i, col := range domain.Columns {
		row[i] = columnText(rec, col)
	}
	return row
}

func columnText(rec domain.PlayerRecord, col string) string {
	switch col {
	case domain.FieldPlayer:
		return rec.Player
	case domain.FieldPosition:
		return rec.Position
	case domain.FieldTeam:
		return rec.Team
	case domain.FieldRank:
		return formatInt(rec.Rank)
	case domain.FieldAge:
		return formatInt(rec.Age)
	case domain.FieldGames:
		return formatInt(rec.GamesPlayed)
	case domain.FieldGamesStarted:
		return formatInt(rec.GamesStarted)
	}
	if v, ok := rec.Stat(col); ok {
		return formatFloat(v)
	}
	return rec.Raw[col]
}
