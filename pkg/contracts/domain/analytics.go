package domain

// TeamAggregate is the per-team fold of one statistic.
// AveragePoints == TotalPoints / PlayerCount and PlayerCount > 0.
type TeamAggregate struct {
	Team          string  `json:"team" csv:"team"`
	Stat          string  `json:"stat" csv:"stat"`
	TotalPoints   float64 `json:"total_points" csv:"total"`
	PlayerCount   int     `json:"player_count" csv:"players"`
	AveragePoints float64 `json:"average_points" csv:"average"`
}

// HistogramBucket counts values in [Lower, Upper), or [Lower, Upper] for the last bucket.
type HistogramBucket struct {
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Count  int     `json:"count"`
	Closed bool    `json:"closed"`
}

// SeasonSummary holds the headline averages of a dataset.
type SeasonSummary struct {
	Kind          Kind    `json:"kind"`
	Players       int     `json:"players"`
	AvgPoints     float64 `json:"avg_points"`
	AvgRebounds   float64 `json:"avg_rebounds"`
	AvgAssists    float64 `json:"avg_assists"`
	AvgFieldGoals float64 `json:"avg_fg_pct"`
}

// PlayerImpact ranks a player by the sum of selected statistics.
type PlayerImpact struct {
	Player string             `json:"player" csv:"player"`
	Team   string             `json:"team" csv:"team"`
	Stats  map[string]float64 `json:"stats" csv:"-"`
	Impact float64            `json:"impact" csv:"impact"`
}

// TeamEfficiency is the per-team mean of points, assists and rebounds.
type TeamEfficiency struct {
	Team        string  `json:"team" csv:"team"`
	Players     int     `json:"players" csv:"players"`
	AvgPoints   float64 `json:"avg_points" csv:"avg_points"`
	AvgAssists  float64 `json:"avg_assists" csv:"avg_assists"`
	AvgRebounds float64 `json:"avg_rebounds" csv:"avg_rebounds"`
	Efficiency  float64 `json:"efficiency" csv:"efficiency"`
}

// RadarProfile holds a player's categories normalised to [0,1].
type RadarProfile struct {
	Player     string             `json:"player"`
	Team       string             `json:"team"`
	Raw        map[string]float64 `json:"raw"`
	Normalised map[string]float64 `json:"normalised"`
}

// ShootingLeader is one row of the field-goal percentage leaderboard.
type ShootingLeader struct {
	Player        string  `json:"player" csv:"player"`
	Team          string  `json:"team" csv:"team"`
	FieldGoalPct  float64 `json:"field_goal_pct" csv:"fg_pct"`
	Attempts      float64 `json:"attempts" csv:"fga"`
	ThreePct      float64 `json:"three_pct" csv:"three_pct"`
	PointsPerShot float64 `json:"points_per_shot" csv:"points_per_shot"`
}

// ShotType names the kind of a sampled shot.
type ShotType string

const (
	ShotFreeThrow ShotType = "free_throw"
	ShotTwo       ShotType = "two"
	ShotThree     ShotType = "three"
)

// Shot is a synthetic shot location in a normalised half court:
// X runs baseline to baseline [0,1], Y runs from the basket (0) to half court (1).
type Shot struct {
	X    float64  `json:"x"`
	Y    float64  `json:"y"`
	Type ShotType `json:"type"`
	Made bool     `json:"made"`
}

// ShotChart is a synthetic shot sample for one player.
type ShotChart struct {
	Player    string       `json:"player"`
	Synthetic bool         `json:"synthetic"`
	Shots     []Shot       `json:"shots"`
	Trend     []TrendPoint `json:"trend"`
}

// TrendPoint is one synthetic bucket of a scoring trend.
type TrendPoint struct {
	Bucket int     `json:"bucket"`
	Points float64 `json:"points"`
}
