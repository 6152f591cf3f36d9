package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/kSibalic/nba/internal/config"
	"github.com/kSibalic/nba/internal/dataprocessing"
	"github.com/kSibalic/nba/internal/exporter"
	"github.com/kSibalic/nba/internal/files"
	"github.com/kSibalic/nba/internal/infrastructure"
	"github.com/kSibalic/nba/internal/source"
	"github.com/kSibalic/nba/internal/validation"
	"github.com/kSibalic/nba/pkg/contracts/domain"
)

// options are the command-line flags layered over the loaded config.
type options struct {
	outDir    string
	regular   string
	playoff   string
	stat      string
	top       int
	delimiter string
	workbook  bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(infrastructure.EnsureTraceID(context.Background()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], cfg, logger, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Report generation failed")
		os.Exit(1)
	}
}

func parseFlags(args []string, cfg *config.Config, stderr io.Writer) (options, error) {
	opts := options{}
	fs := flag.NewFlagSet("statsreport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.outDir, "out", cfg.Data.ExportDir, "output directory for the reports")
	fs.StringVar(&opts.regular, "regular", cfg.Data.RegularSource, "regular season file or URL")
	fs.StringVar(&opts.playoff, "playoff", cfg.Data.PlayoffSource, "playoff file or URL")
	fs.StringVar(&opts.stat, "stat", domain.FieldPoints, "column averaged per team")
	fs.IntVar(&opts.top, "n", cfg.Data.ImpactSize, "rows in the impact and shooting reports")
	fs.StringVar(&opts.delimiter, "delimiter", cfg.Data.Delimiter, "field separator of the input and CSV output")
	fs.BoolVar(&opts.workbook, "xlsx", true, "also write season.xlsx")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.outDir == "" {
		return opts, fmt.Errorf("output directory must not be empty")
	}
	if opts.top <= 0 {
		return opts, fmt.Errorf("-n must be positive, got %d", opts.top)
	}
	if err := dataprocessing.ValidateStat(opts.stat); err != nil {
		return opts, err
	}
	return opts, nil
}

// run loads the season and writes per-dataset CSV reports plus an optional
// workbook under the output directory.
func run(ctx context.Context, args []string, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	opts, err := parseFlags(args, cfg, stdout)
	if err != nil {
		return err
	}

	data := cfg.Data
	data.RegularSource = opts.regular
	data.PlayoffSource = opts.playoff
	data.Delimiter = opts.delimiter

	delimiter, err := dataprocessing.ParseDelimiter(data.Delimiter)
	if err != nil {
		return err
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateSources(data.RegularSource, data.PlayoffSource); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(opts.outDir); err != nil {
		return err
	}

	start := time.Now()
	logger.InfoContext(ctx, "Loading season",
		slog.String("regular", data.RegularSource),
		slog.String("playoff", data.PlayoffSource))

	snapshot, err := source.LoadSeason(ctx, source.NewDefaultFetcher("", data, logger), data, source.WithLogger(logger))
	if err != nil {
		return err
	}
	season := snapshot.Season()

	out := files.NewManager(opts.outDir, logger)
	csvWriter := exporter.NewCSVWriter(out, delimiter, logger)

	written := 0
	for _, kind := range domain.Kinds {
		ds, _ := season.Dataset(kind)
		n, err := writeDatasetReports(csvWriter, ds, opts, data.MinAttempts)
		if err != nil {
			return fmt.Errorf("%s reports: %w", kind, err)
		}
		written += n
	}

	if opts.workbook {
		if err := exporter.NewWorkbookExporter(out, logger).Export("season.xlsx", season); err != nil {
			return err
		}
		written++
	}

	logger.InfoContext(ctx, "Reports generated",
		slog.String("out", out.Root()),
		slog.Int("files", written),
		slog.Duration("duration", time.Since(start)))

	fmt.Fprintf(stdout, "wrote %d files to %s (regular: %d rows, playoff: %d rows)\n",
		written, out.Root(), season.Regular.Len(), season.Playoff.Len())
	return nil
}

// writeDatasetReports writes the cleaned dataset and its derived tables under
// a directory named after the dataset kind. It returns the number of files.
func writeDatasetReports(w *exporter.CSVWriter, ds domain.Dataset, opts options, minAttempts float64) (int, error) {
	dir := string(ds.Kind)

	if _, err := w.WriteDatasetCSV(path.Join(dir, "dataset.csv"), ds); err != nil {
		return 0, err
	}

	teams, err := dataprocessing.TeamAverages(ds, opts.stat)
	if err != nil {
		return 1, err
	}
	impact, err := dataprocessing.TopByImpact(ds, opts.top, dataprocessing.ImpactFull)
	if err != nil {
		return 1, err
	}

	reports := []struct {
		name string
		rows interface{}
	}{
		{"team_averages.csv", teams},
		{"impact.csv", impact},
		{"shooting_leaders.csv", dataprocessing.ShootingLeaders(ds, minAttempts, opts.top)},
		{"team_efficiency.csv", dataprocessing.TeamEfficiency(ds)},
	}

	written := 1
	for _, r := range reports {
		if err := w.WriteAggregatesCSV(path.Join(dir, r.name), r.rows); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}
