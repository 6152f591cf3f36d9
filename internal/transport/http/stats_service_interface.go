package http

import (
	"context"

	"github.com/kSibalic/nba/internal/dataprocessing"
	"github.com/kSibalic/nba/internal/services"
	"github.com/kSibalic/nba/pkg/contracts/domain"
)

// StatsServiceInterface defines the read operations the dataset routes expose.
// Every method takes the dataset kind as it appeared in the URL.
type StatsServiceInterface interface {
	Table(ctx context.Context, kind string, n int) ([]dataprocessing.TableRow, error)
	Summary(ctx context.Context, kind string) (domain.SeasonSummary, error)
	TopPlayers(ctx context.Context, kind, field string, n int, dir dataprocessing.Direction, dedup bool) ([]domain.PlayerRecord, error)
	TeamAverages(ctx context.Context, kind, field string) ([]domain.TeamAggregate, error)
	Histogram(ctx context.Context, kind, field string, bins int) ([]domain.HistogramBucket, error)
	Impact(ctx context.Context, kind string, n int) ([]domain.PlayerImpact, error)
	Radar(ctx context.Context, kind string, n int) ([]domain.RadarProfile, error)
	ShootingLeaders(ctx context.Context, kind string, n int) ([]domain.ShootingLeader, error)
	Players(ctx context.Context, kind string) ([]string, error)
	Player(ctx context.Context, kind, name string) (services.PlayerDetail, error)
	Shots(ctx context.Context, kind, name string, n int) (domain.ShotChart, error)
	LeagueAverages(ctx context.Context, kind string) (map[string]float64, error)
	TeamEfficiency(ctx context.Context, kind string) ([]domain.TeamEfficiency, error)
}

var _ StatsServiceInterface = (*services.StatsService)(nil)
