package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/kSibalic/nba/internal/config"
	"github.com/kSibalic/nba/internal/dataprocessing"
	apperrors "github.com/kSibalic/nba/internal/errors"
	"github.com/kSibalic/nba/internal/files"
	"github.com/kSibalic/nba/internal/infrastructure"
	"github.com/kSibalic/nba/pkg/contracts/domain"
)

// Loader fetches, parses and cleans the two season datasets.
type Loader struct {
	fetcher   Fetcher
	delimiter rune
	cleaner   *dataprocessing.FieldCleaner
	sources   map[domain.Kind]string
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *infrastructure.PipelineMetrics
	now       func() time.Time
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the loader's logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// WithTracer sets the tracer used for load and fetch spans.
func WithTracer(tracer trace.Tracer) LoaderOption {
	return func(l *Loader) { l.tracer = tracer }
}

// WithMetrics sets the pipeline instruments.
func WithMetrics(m *infrastructure.PipelineMetrics) LoaderOption {
	return func(l *Loader) { l.metrics = m }
}

// WithFieldSet overrides the numeric field set used for cleaning.
func WithFieldSet(fs dataprocessing.FieldSet) LoaderOption {
	return func(l *Loader) { l.cleaner = dataprocessing.NewFieldCleaner(fs) }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) LoaderOption {
	return func(l *Loader) { l.now = now }
}

// NewLoader creates a loader for the sources named in cfg.
func NewLoader(fetcher Fetcher, cfg config.DataConfig, opts ...LoaderOption) (*Loader, error) {
	delimiter, err := dataprocessing.ParseDelimiter(cfg.Delimiter)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		fetcher:   fetcher,
		delimiter: delimiter,
		cleaner:   dataprocessing.NewFieldCleaner(dataprocessing.FullFieldSet),
		sources: map[domain.Kind]string{
			domain.KindRegular: cfg.RegularSource,
			domain.KindPlayoff: cfg.PlayoffSource,
		},
		tracer: tracenoop.NewTracerProvider().Tracer(infrastructure.InstrumentationName),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = infrastructure.ComponentLogger(l.logger, "source_loader")

	return l, nil
}

// LoadSeason loads the regular and playoff datasets concurrently. If either
// fails the other is cancelled and no snapshot is returned.
func (l *Loader) LoadSeason(ctx context.Context) (*Snapshot, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := l.tracer.Start(ctx, "source.LoadSeason")
	defer span.End()

	var (
		season  domain.Season
		reports = make([]LoadReport, len(domain.Kinds))
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range domain.Kinds {
		g.Go(func() error {
			ds, report, err := l.LoadDataset(gctx, kind, l.sources[kind])
			if err != nil {
				return err
			}
			// Each goroutine writes a distinct field and slot.
			switch kind {
			case domain.KindRegular:
				season.Regular = ds
			case domain.KindPlayoff:
				season.Playoff = ds
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		infrastructure.RecordError(ctx, err)
		infrastructure.WithError(l.logger, err).ErrorContext(ctx, "season load failed")
		return nil, err
	}

	snapshot := NewSnapshot(season, reports, l.now())
	l.logger.InfoContext(ctx, "season loaded",
		slog.Int("regular_rows", season.Regular.Len()),
		slog.Int("playoff_rows", season.Playoff.Len()))

	return snapshot, nil
}

// LoadDataset fetches and cleans one dataset from location.
func (l *Loader) LoadDataset(ctx context.Context, kind domain.Kind, location string) (domain.Dataset, LoadReport, error) {
	ctx, span := l.tracer.Start(ctx, "source.LoadDataset", trace.WithAttributes(
		attribute.String("dataset", string(kind)),
		attribute.String("location", location),
	))
	defer span.End()

	started := l.now()
	report := LoadReport{Kind: kind, Location: location}

	text, err := l.fetch(ctx, location)
	if err != nil {
		l.metrics.RecordSourceFailure(ctx, string(kind))
		infrastructure.RecordError(ctx, err)
		return domain.Dataset{}, report, apperrors.NewSourceUnavailableError(location, err).
			WithContext("dataset", string(kind))
	}

	mismatches := 0
	parser, err := dataprocessing.NewRecordParser(l.delimiter,
		dataprocessing.WithParserLogger(l.logger),
		dataprocessing.WithMismatchHandler(func(*apperrors.AppError) {
			mismatches++
			l.metrics.RecordMismatch(ctx, string(kind))
		}),
	)
	if err != nil {
		return domain.Dataset{}, report, err
	}

	rows, err := parser.ParseAll(text)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return domain.Dataset{}, report, fmt.Errorf("parse %s dataset: %w", kind, err)
	}

	ds, clean := l.cleaner.CleanAll(kind, rows)

	report.Rows = clean.Rows
	report.Mismatches = mismatches
	report.DefaultedNumbers = clean.DefaultedNumbers
	report.DefaultedIdentity = clean.DefaultedIdentity
	report.Duration = l.now().Sub(started)

	l.metrics.RecordLoad(ctx, string(kind), report.Rows, report.DefaultedNumbers+report.DefaultedIdentity, report.Duration)
	span.SetAttributes(
		attribute.Int("rows", report.Rows),
		attribute.Int("mismatches", report.Mismatches),
	)

	if report.Mismatches > 0 {
		l.logger.WarnContext(ctx, "rows did not match header width",
			slog.String("dataset", string(kind)),
			slog.Int("rows", report.Mismatches))
	}
	l.logger.DebugContext(ctx, "dataset loaded",
		slog.String("dataset", string(kind)),
		slog.String("location", location),
		slog.Int("rows", report.Rows),
		slog.Duration("duration", report.Duration))

	return ds, report, nil
}

func (l *Loader) fetch(ctx context.Context, location string) (string, error) {
	ctx, span := l.tracer.Start(ctx, "source.Fetch", trace.WithAttributes(
		attribute.String("location", location),
		attribute.Bool("remote", IsRemote(location)),
	))
	defer span.End()

	body, err := l.fetcher.Fetch(ctx, location)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", location, err)
	}
	span.SetAttributes(attribute.Int("bytes", len(data)))

	return string(data), nil
}

// LoadSeason builds a loader from cfg and loads both datasets.
func LoadSeason(ctx context.Context, fetcher Fetcher, cfg config.DataConfig, opts ...LoaderOption) (*Snapshot, error) {
	loader, err := NewLoader(fetcher, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return loader.LoadSeason(ctx)
}

// NewDefaultFetcher returns a Router over a FileFetcher rooted at root and an
// HTTPFetcher bounded by cfg.FetchTimeout.
func NewDefaultFetcher(root string, cfg config.DataConfig, logger *slog.Logger) *Router {
	return NewRouter(
		NewFileFetcher(files.NewManager(root, logger)),
		NewHTTPFetcher(nil, cfg.FetchTimeout),
	)
}
