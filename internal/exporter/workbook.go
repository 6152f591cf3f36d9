package exporter

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/kSibalic/nba/internal/dataprocessing"
	"github.com/kSibalic/nba/internal/files"
	"github.com/kSibalic/nba/pkg/contracts/domain"
)

// Sheet names of the season workbook.
const (
	SheetRegular      = "Regular"
	SheetPlayoff      = "Playoff"
	SheetTeamAverages = "Team Averages"
)

var teamAverageHeaders = []string{"Dataset", "Team", "Players", "Total PTS", "Average PTS"}

// WorkbookExporter writes a season as one spreadsheet
type WorkbookExporter struct {
	files  *files.Manager
	logger *slog.Logger
}

// NewWorkbookExporter creates an exporter writing under fm's root.
func NewWorkbookExporter(fm *files.Manager, logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookExporter{
		files:  fm,
		logger: logger.With(slog.String("component", "workbook_exporter")),
	}
}

// Export writes season to filePath with one sheet per dataset and a sheet of
// per-team point averages for both datasets.
func (e *WorkbookExporter) Export(filePath string, season domain.Season) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetRegular); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetPlayoff, SheetTeamAverages} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	if err := e.writeDataset(f, SheetRegular, season.Regular, header); err != nil {
		return err
	}
	if err := e.writeDataset(f, SheetPlayoff, season.Playoff, header); err != nil {
		return err
	}
	if err := e.writeTeamAverages(f, season, header); err != nil {
		return err
	}

	out, err := e.files.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	if err := f.Write(out); err != nil {
		out.Close()
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close workbook: %w", err)
	}

	e.logger.Info("Workbook exported",
		slog.String("file_path", filePath),
		slog.Int("regular_rows", season.Regular.Len()),
		slog.Int("playoff_rows", season.Playoff.Len()))

	return nil
}

func (e *WorkbookExporter) writeDataset(f *excelize.File, sheet string, ds domain.Dataset, headerStyle int) error {
	if err := writeHeader(f, sheet, domain.Columns, headerStyle); err != nil {
		return err
	}

	for i, rec := range ds.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := recordCells(rec)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func (e *WorkbookExporter) writeTeamAverages(f *excelize.File, season domain.Season, headerStyle int) error {
	if err := writeHeader(f, SheetTeamAverages, teamAverageHeaders, headerStyle); err != nil {
		return err
	}

	line := 2
	for _, kind := range domain.Kinds {
		ds, _ := season.Dataset(kind)
		teams, err := dataprocessing.TeamAverages(ds, domain.FieldPoints)
		if err != nil {
			return err
		}
		for _, t := range teams {
			row := []interface{}{string(kind), t.Team, t.PlayerCount, t.TotalPoints, t.AveragePoints}
			if err := f.SetSheetRow(SheetTeamAverages, fmt.Sprintf("A%d", line), &row); err != nil {
				return fmt.Errorf("failed to write team averages row %d: %w", line, err)
			}
			line++
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// recordCells keeps numbers numeric so spreadsheet formulas work on them.
func recordCells(rec domain.PlayerRecord) []interface{} {
	cells := make([]interface{}, len(domain.Columns))
	for i, col := range domain.Columns {
		switch col {
		case domain.FieldPlayer:
			cells[i] = rec.Player
		case domain.FieldPosition:
			cells[i] = rec.Position
		case domain.FieldTeam:
			cells[i] = rec.Team
		default:
			cells[i] = rec.MustStat(col)
		}
	}
	return cells
}
