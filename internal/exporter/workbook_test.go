package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kSibalic/nba/internal/files"
	"github.com/kSibalic/nba/internal/shared/testutil"
	"github.com/kSibalic/nba/pkg/contracts/domain"
)

func TestWorkbookExporter_Export(t *testing.T) {
	season := sampleSeason(t)
	logger, logs := testutil.NewTestLogger(t)
	fm := files.NewManager(t.TempDir(), logger)

	require.NoError(t, NewWorkbookExporter(fm, logger).Export("out/season.xlsx", season))
	assert.True(t, logs.ContainsMessage("Workbook exported"))

	f, err := excelize.OpenFile(fm.Resolve("out/season.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetRegular, SheetPlayoff, SheetTeamAverages}, f.GetSheetList())

	rows, err := f.GetRows(SheetRegular)
	require.NoError(t, err)
	require.Len(t, rows, season.Regular.Len()+1)
	assert.Equal(t, domain.Columns, rows[0])
	assert.Equal(t, "Jayson Tatum", rows[1][1])

	playoff, err := f.GetRows(SheetPlayoff)
	require.NoError(t, err)
	assert.Len(t, playoff, season.Playoff.Len()+1)

	teams, err := f.GetRows(SheetTeamAverages)
	require.NoError(t, err)
	require.Greater(t, len(teams), 1)
	assert.Equal(t, teamAverageHeaders, teams[0])
	assert.Equal(t, string(domain.KindRegular), teams[1][0])
	assert.Equal(t, string(domain.KindPlayoff), teams[len(teams)-1][0])

	pts, err := f.GetCellValue(SheetRegular, "AD2")
	require.NoError(t, err)
	assert.Equal(t, "30.1", pts)
}

func TestWorkbookExporter_EmptySeason(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	fm := files.NewManager(t.TempDir(), logger)

	require.NoError(t, NewWorkbookExporter(fm, logger).Export("empty.xlsx", domain.Season{}))

	f, err := excelize.OpenFile(fm.Resolve("empty.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetTeamAverages)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
