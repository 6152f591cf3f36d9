// Package services implements the read side of the stats API.
//
// StatsService resolves a dataset kind against the loaded Snapshot and runs
// the dataprocessing operations over it. Every call starts from the same
// immutable season, so no result depends on an earlier request. Unknown
// dataset kinds and players surface as NOT_FOUND errors and unknown stat
// columns as VALIDATION errors; the HTTP layer maps both to problem details.
//
// HealthService reports liveness and whether both datasets finished loading.
//
//	svc := services.NewStatsService(snapshot, sampler.NewSeededShotSampler(0), cfg.Data, logger)
//	top, err := svc.TopPlayers(ctx, "regular", domain.FieldPoints, 10, dataprocessing.Descending, true)
package services
