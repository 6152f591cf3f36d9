package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kSibalic/nba/internal/config"
	"github.com/kSibalic/nba/internal/dataprocessing"
	apperrors "github.com/kSibalic/nba/internal/errors"
	"github.com/kSibalic/nba/internal/sampler"
	"github.com/kSibalic/nba/internal/source"
	"github.com/kSibalic/nba/pkg/contracts/domain"
)

// PlayerDetail is one player's record with the derived numbers shown next to it.
type PlayerDetail struct {
	Record        domain.PlayerRecord     `json:"record"`
	Display       dataprocessing.TableRow `json:"display"`
	Impact        float64                 `json:"impact"`
	Efficiency    float64                 `json:"efficiency"`
	PointsPerShot float64                 `json:"points_per_shot"`
}

// StatsService answers every read against the loaded season. Each call
// starts from the immutable snapshot, so results never depend on earlier calls.
type StatsService struct {
	snapshot *source.Snapshot
	shots    sampler.ShotSampler
	cfg      config.DataConfig
	logger   *slog.Logger
}

// NewStatsService creates a service over snapshot. cfg supplies the default
// sizes used when a caller passes n <= 0.
func NewStatsService(snapshot *source.Snapshot, shots sampler.ShotSampler, cfg config.DataConfig, logger *slog.Logger) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}
	if shots == nil {
		shots = sampler.NewSeededShotSampler(cfg.ShotSeed)
	}

	return &StatsService{
		snapshot: snapshot,
		shots:    shots,
		cfg:      cfg,
		logger:   logger.With(slog.String("service", "stats")),
	}
}

// Snapshot returns the season the service reads from.
func (s *StatsService) Snapshot() *source.Snapshot { return s.snapshot }

func (s *StatsService) dataset(ctx context.Context, kind string) (domain.Dataset, error) {
	k, err := domain.ParseKind(strings.ToLower(kind))
	if err != nil {
		return domain.Dataset{}, apperrors.NewNotFoundError("dataset").WithContext("kind", kind)
	}
	ds, ok := s.snapshot.Dataset(k)
	if !ok {
		return domain.Dataset{}, apperrors.NewNotFoundError("dataset").WithContext("kind", kind)
	}
	s.logger.DebugContext(ctx, "dataset resolved",
		slog.String("kind", string(k)),
		slog.Int("records", ds.Len()))
	return ds, nil
}

func orDefault(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}

// Table returns the first n rows in file order, formatted for display.
func (s *StatsService) Table(ctx context.Context, kind string, n int) ([]dataprocessing.TableRow, error) {
	ds, err := s.dataset(ctx, kind)
	if err != nil {
		return nil, err
	}

	recs := ds.Records
	if n = orDefault(n, s.cfg.TableSize); n < len(recs) {
		recs = recs[:n]
	}

	rows := make([]dataprocessing.TableRow, len(recs))
	for i, rec := range recs {
		rows[i] = dataprocessing.FormatTableRow(rec)
	}
	return rows, nil
}

// Summary returns the headline averages of a dataset.
func (s *StatsService) Summary(ctx context.Context, kind string) (domain.SeasonSummary, error) {
	ds, err := s.dataset(ctx, kind)
	if err != nil {
		return domain.SeasonSummary{}, err
	}
	return dataprocessing.SeasonSummary(ds), nil
}

// TopPlayers ranks records by field. With dedup, players listed more than
// once keep only their best row on field before ranking.
func (s *StatsService) TopPlayers(ctx context.Context, kind, field string, n int, dir dataprocessing.Direction, dedup bool) ([]domain.PlayerRecord, error) {
	ds, err := s.dataset(ctx, kind)
	if err != nil {
		return nil, err
	}
	if dedup {
		if ds, err = dataprocessing.DeduplicateByMax(ds, field); err != nil {
			return nil, err
		}
	}
	top, err := dataprocessing.TopN(ds, field, orDefault(n, s.cfg.ChartSize), dir)
	if err != nil {
		return nil, err
	}
	return top.Records, nil
}

// TeamAverages returns per-team means of field.
func (s *StatsService) TeamAverages(ctx context.Context, kind, field string) ([]domain.TeamAggregate, error) {
	ds, err := s.dataset(ctx, kind)
	if err != nil {
		return nil, err
	}
	return dataprocessing.TeamAverages(ds, field)
}

// Histogram buckets field over the dataset.
func (s *StatsService) Histogram(ctx context.Context, kind, field string, bins int) ([]domain.HistogramBucket, error) {
	ds, err := s.dataset(ctx, kind)
	if err != nil {
		return nil, err
	}
	return dataprocessing.HistogramOf(ds, field, orDefault(bins, s.cfg.HistogramBins))
}

// Impact ranks players by points plus assists plus rebounds.
func (s *StatsService) Impact(ctx context.Context, kind string, n int) ([]domain.PlayerImpact, error) {
	ds, err := s.dataset(ctx, kind)
	if err != nil {
		return nil, err
	}
	return dataprocessing.TopByImpact(ds, orDefault(n, s.cfg.ImpactSize), dataprocessing.ImpactCore)
}

// Radar returns normalised profiles for the top players by full impact.
func (s *StatsService) Radar(ctx context.Context, kind string, n int) ([]domain.RadarProfile, error) {
	ds, err := s.dataset(ctx, kind)
	if err != nil {
		return nil, err
	}
	return dataprocessing.RadarProfiles(ds, orDefault(n, s.cfg.RadarSize), dataprocessing.ImpactFull)
}

// ShootingLeaders ranks players above the configured attempt floor by FG%.
func (s *StatsService) ShootingLeaders(ctx context.Context, kind string, n int) ([]domain.ShootingLeader, error) {
	ds, err := s.dataset(ctx, kind)
	if err != nil {
		return nil, err
	}
	return dataprocessing.ShootingLeaders(ds, s.cfg.MinAttempts, orDefault(n, s.cfg.LeadersSize)), nil
}

// Players lists the distinct player names of players who appeared in a game.
func (s *StatsService) Players(ctx context.Context, kind string) ([]string, error) {
	ds, err := s.dataset(ctx, kind)
	if err != nil {
		return nil, err
	}
	return dataprocessing.PlayerNames(dataprocessing.FilterPlayed(ds)), nil
}

// Player returns the detail view of one player.
func (s *StatsService) Player(ctx context.Context, kind, name string) (PlayerDetail, error) {
	rec, err := s.player(ctx, kind, name)
	if err != nil {
		return PlayerDetail{}, err
	}
	return PlayerDetail{
		Record:        rec,
		Display:       dataprocessing.FormatTableRow(rec),
		Impact:        dataprocessing.ImpactScore(rec, dataprocessing.ImpactCore...),
		Efficiency:    dataprocessing.Efficiency(rec),
		PointsPerShot: dataprocessing.PointsPerShot(rec),
	}, nil
}

func (s *StatsService) player(ctx context.Context, kind, name string) (domain.PlayerRecord, error) {
	ds, err := s.dataset(ctx, kind)
	if err != nil {
		return domain.PlayerRecord{}, err
	}
	rec, ok := dataprocessing.FindPlayer(ds, name)
	if !ok {
		return domain.PlayerRecord{}, apperrors.NewNotFoundError("player").WithContext("player", name)
	}
	return rec, nil
}

// Shots returns a synthetic shot chart of about n shots for one player.
func (s *StatsService) Shots(ctx context.Context, kind, name string, n int) (domain.ShotChart, error) {
	rec, err := s.player(ctx, kind, name)
	if err != nil {
		return domain.ShotChart{}, err
	}
	return sampler.Chart(s.shots, rec, orDefault(n, s.cfg.ShotSample)), nil
}

// LeagueAverages averages the league comparison columns over every record.
func (s *StatsService) LeagueAverages(ctx context.Context, kind string) (map[string]float64, error) {
	ds, err := s.dataset(ctx, kind)
	if err != nil {
		return nil, err
	}
	return dataprocessing.LeagueAverages(ds, dataprocessing.LeagueFields)
}

// TeamEfficiency ranks teams by the mean of points, assists and rebounds.
func (s *StatsService) TeamEfficiency(ctx context.Context, kind string) ([]domain.TeamEfficiency, error) {
	ds, err := s.dataset(ctx, kind)
	if err != nil {
		return nil, err
	}
	return dataprocessing.TeamEfficiency(ds), nil
}
