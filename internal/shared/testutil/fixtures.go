package testutil

import (
	"strings"
)

// SeasonHeader is the column order of the season files.
var SeasonHeader = []string{
	"Rk", "Player", "Pos", "Age", "Tm", "G", "GS", "MP",
	"FG", "FGA", "FG%", "3P", "3PA", "3P%", "2P", "2PA", "2P%", "eFG%",
	"FT", "FTA", "FT%", "ORB", "DRB", "TRB", "AST", "STL", "BLK", "TOV", "PF", "PTS",
}

// Row is a sparse season row keyed by column name. Absent columns are written empty.
type Row map[string]string

// SeasonCSV renders rows as a ';'-delimited season file with the full header.
func SeasonCSV(rows ...Row) string {
	var b strings.Builder
	b.WriteString(strings.Join(SeasonHeader, ";"))
	b.WriteByte('\n')
	for _, row := range rows {
		fields := make([]string, len(SeasonHeader))
		for i, col := range SeasonHeader {
			fields[i] = row[col]
		}
		b.WriteString(strings.Join(fields, ";"))
		b.WriteByte('\n')
	}
	return b.String()
}

// SampleRegular is a small regular season with a traded player listed twice.
func SampleRegular() string {
	return SeasonCSV(
		Row{"Rk": "1", "Player": "Jayson Tatum", "Pos": "PF", "Age": "25", "Tm": "BOS", "G": "74", "GS": "74", "MP": "36.9",
			"FG": "9.8", "FGA": "21.1", "FG%": ".466", "3P": "3.2", "3PA": "9.3", "3P%": ".350", "2P": "6.6", "2PA": "11.8", "2P%": ".560",
			"FT": "7.2", "FTA": "8.4", "FT%": ".854", "TRB": "8.8", "AST": "4.6", "STL": "1.1", "BLK": "0.7", "PTS": "30.1"},
		Row{"Rk": "2", "Player": "Jaylen Brown", "Pos": "SG", "Age": "26", "Tm": "BOS", "G": "67", "GS": "67", "MP": "35.9",
			"FG": "10.1", "FGA": "20.6", "FG%": ".491", "3P": "2.4", "3PA": "7.3", "3P%": ".335", "2P": "7.7", "2PA": "13.3", "2P%": ".577",
			"FT": "4.2", "FTA": "5.4", "FT%": ".765", "TRB": "6.9", "AST": "3.5", "STL": "1.1", "BLK": "0.4", "PTS": "26.6"},
		Row{"Rk": "3", "Player": "Jalen Brunson", "Pos": "PG", "Age": "26", "Tm": "NYK", "G": "68", "GS": "68", "MP": "35.0",
			"FG": "8.6", "FGA": "17.6", "FG%": ".491", "3P": "2.0", "3PA": "5.4", "3P%": ".416", "2P": "6.6", "2PA": "12.2", "2P%": ".540",
			"FT": "4.7", "FTA": "5.6", "FT%": ".829", "TRB": "3.5", "AST": "6.2", "STL": "0.9", "BLK": "0.2", "PTS": "24.0"},
		Row{"Rk": "4", "Player": "Kyrie Irving", "Pos": "PG", "Age": "30", "Tm": "BRK", "G": "40", "GS": "40", "MP": "37.4",
			"FG": "10.1", "FGA": "20.1", "FG%": ".486", "3P": "3.1", "3PA": "7.7", "3P%": ".392", "2P": "7.0", "2PA": "12.4", "2P%": ".565",
			"FT": "3.6", "FTA": "4.1", "FT%": ".880", "TRB": "5.1", "AST": "5.3", "STL": "1.1", "BLK": "0.8", "PTS": "27.1"},
		Row{"Rk": "4", "Player": "Kyrie Irving", "Pos": "PG", "Age": "30", "Tm": "DAL", "G": "20", "GS": "20", "MP": "36.0",
			"FG": "9.6", "FGA": "18.8", "FG%": ".510", "3P": "2.9", "3PA": "7.3", "3P%": ".392", "2P": "6.7", "2PA": "11.5", "2P%": ".583",
			"FT": "4.0", "FTA": "4.4", "FT%": ".909", "TRB": "6.1", "AST": "6.0", "STL": "1.3", "BLK": "0.5", "PTS": "27.0"},
		Row{"Rk": "5", "Player": "Two-Way Guy", "Pos": "", "Tm": "", "G": "0", "PTS": ""},
	)
}

// SamplePlayoff is a small playoff dataset.
func SamplePlayoff() string {
	return SeasonCSV(
		Row{"Rk": "1", "Player": "Jayson Tatum", "Pos": "PF", "Age": "25", "Tm": "BOS", "G": "20", "GS": "20", "MP": "41.1",
			"FG": "9.2", "FGA": "21.0", "FG%": ".438", "3P": "2.9", "3PA": "8.6", "3P%": ".337", "2P": "6.3", "2PA": "12.4", "2P%": ".508",
			"FT": "6.8", "FTA": "7.6", "FT%": ".895", "TRB": "10.0", "AST": "5.1", "STL": "1.3", "BLK": "0.8", "PTS": "27.2"},
		Row{"Rk": "2", "Player": "Jalen Brunson", "Pos": "PG", "Age": "26", "Tm": "NYK", "G": "11", "GS": "11", "MP": "40.3",
			"FG": "10.2", "FGA": "21.1", "FG%": ".483", "3P": "2.1", "3PA": "6.0", "3P%": ".348", "2P": "8.1", "2PA": "15.1", "2P%": ".536",
			"FT": "4.6", "FTA": "5.7", "FT%": ".810", "TRB": "4.3", "AST": "5.9", "STL": "1.5", "BLK": "0.2", "PTS": "27.8"},
	)
}
