package sampler

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/kSibalic/nba/pkg/contracts/domain"
)

// DefaultShots is the sample size used when none is configured.
const DefaultShots = 50

// TrendFactors shape the fabricated five-bucket scoring trend.
var TrendFactors = []float64{0.9, 1.1, 0.95, 1.05, 1.0}

// ShotSampler fabricates shot locations for a player. Nothing it returns is
// observed data.
type ShotSampler interface {
	Sample(rec domain.PlayerRecord, total int) []domain.Shot
}

// Rect is an axis-aligned region of the normalised half court.
type Rect struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

type zone struct {
	rect   Rect
	weight float64
}

var (
	freeThrowLine  = Rect{MinX: 0.46, MaxX: 0.54, MinY: 0.29, MaxY: 0.31}
	restrictedArea = Rect{MinX: 0.38, MaxX: 0.62, MinY: 0.00, MaxY: 0.15}
	leftWing       = Rect{MinX: 0.12, MaxX: 0.35, MinY: 0.00, MaxY: 0.35}
	rightWing      = Rect{MinX: 0.65, MaxX: 0.88, MinY: 0.00, MaxY: 0.35}
	topKey         = Rect{MinX: 0.35, MaxX: 0.65, MinY: 0.32, MaxY: 0.45}
	leftCorner     = Rect{MinX: 0.00, MaxX: 0.06, MinY: 0.00, MaxY: 0.28}
	rightCorner    = Rect{MinX: 0.94, MaxX: 1.00, MinY: 0.00, MaxY: 0.28}
	arc            = Rect{MinX: 0.10, MaxX: 0.90, MinY: 0.50, MaxY: 0.75}
)

// zoneWeights sum to 1 per shot type.
var zoneWeights = map[domain.ShotType][]zone{
	domain.ShotFreeThrow: {{freeThrowLine, 1}},
	domain.ShotTwo:       {{restrictedArea, 0.3}, {leftWing, 0.15}, {rightWing, 0.15}, {topKey, 0.4}},
	domain.ShotThree:     {{leftCorner, 0.15}, {rightCorner, 0.15}, {arc, 0.7}},
}

// ZonesFor returns the regions shots of typ are drawn from.
func ZonesFor(typ domain.ShotType) []Rect {
	zones := zoneWeights[typ]
	rects := make([]Rect, len(zones))
	for i, z := range zones {
		rects[i] = z.rect
	}
	return rects
}

// ShotCounts is the per-type split of a sample.
type ShotCounts struct {
	FreeThrows int `json:"free_throws"`
	Twos       int `json:"twos"`
	Threes     int `json:"threes"`
}

// Total returns the number of shots across all types.
func (c ShotCounts) Total() int { return c.FreeThrows + c.Twos + c.Threes }

// Counts scales the player's FTA, 2PA and 3PA to roughly total shots. Every
// type gets at least one shot, so the result can exceed total by rounding.
// A player with no attempts gets one of each.
func Counts(rec domain.PlayerRecord, total int) ShotCounts {
	if total <= 0 {
		return ShotCounts{}
	}

	fta := math.Round(rec.FTAttempts)
	twos := math.Round(rec.TwoAttempts)
	threes := math.Round(rec.ThreeAttempts)
	sum := fta + twos + threes
	if sum <= 0 {
		return ShotCounts{FreeThrows: 1, Twos: 1, Threes: 1}
	}

	scale := float64(total) / sum
	return ShotCounts{
		FreeThrows: max(1, int(math.Round(fta*scale))),
		Twos:       max(1, int(math.Round(twos*scale))),
		Threes:     max(1, int(math.Round(threes*scale))),
	}
}

// RandomShotSampler draws shots from an injected generator. It is safe for
// concurrent use.
type RandomShotSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomShotSampler creates a sampler drawing from rng.
func NewRandomShotSampler(rng *rand.Rand) *RandomShotSampler {
	return &RandomShotSampler{rng: rng}
}

// NewSeededShotSampler creates a sampler over a PCG source. A zero seed picks
// a random one.
func NewSeededShotSampler(seed uint64) *RandomShotSampler {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return NewRandomShotSampler(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Sample fabricates about total shots for rec. Free throws, twos and threes
// are made with probability FT%, 2P% and 3P% respectively.
func (s *RandomShotSampler) Sample(rec domain.PlayerRecord, total int) []domain.Shot {
	counts := Counts(rec, total)
	shots := make([]domain.Shot, 0, counts.Total())

	s.mu.Lock()
	defer s.mu.Unlock()

	shots = s.draw(shots, domain.ShotFreeThrow, counts.FreeThrows, probability(rec.FTPct))
	shots = s.draw(shots, domain.ShotTwo, counts.Twos, probability(rec.TwoPct))
	shots = s.draw(shots, domain.ShotThree, counts.Threes, probability(rec.ThreePct))

	return shots
}

func (s *RandomShotSampler) draw(shots []domain.Shot, typ domain.ShotType, n int, p float64) []domain.Shot {
	zones := zoneWeights[typ]
	for range n {
		r := s.pickZone(zones)
		shots = append(shots, domain.Shot{
			X:    r.MinX + s.rng.Float64()*(r.MaxX-r.MinX),
			Y:    r.MinY + s.rng.Float64()*(r.MaxY-r.MinY),
			Type: typ,
			Made: s.rng.Float64() < p,
		})
	}
	return shots
}

func (s *RandomShotSampler) pickZone(zones []zone) Rect {
	u := s.rng.Float64()
	for _, z := range zones {
		if u < z.weight {
			return z.rect
		}
		u -= z.weight
	}
	return zones[len(zones)-1].rect
}

// probability reads a shooting percentage as a probability. Values above 1
// are taken as whole percentages.
func probability(pct float64) float64 {
	if pct > 1 {
		pct /= 100
	}
	return min(max(pct, 0), 1)
}

// SyntheticTrend fabricates a five-bucket scoring trend around the player's
// points per game.
func SyntheticTrend(rec domain.PlayerRecord) []domain.TrendPoint {
	trend := make([]domain.TrendPoint, len(TrendFactors))
	for i, f := range TrendFactors {
		trend[i] = domain.TrendPoint{Bucket: i + 1, Points: rec.Points * f}
	}
	return trend
}

// Chart bundles a shot sample and trend for rec, marked synthetic.
func Chart(s ShotSampler, rec domain.PlayerRecord, total int) domain.ShotChart {
	return domain.ShotChart{
		Player:    rec.Player,
		Synthetic: true,
		Shots:     s.Sample(rec, total),
		Trend:     SyntheticTrend(rec),
	}
}
