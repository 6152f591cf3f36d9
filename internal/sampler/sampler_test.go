package sampler

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kSibalic/nba/pkg/contracts/domain"
)

func shooter() domain.PlayerRecord {
	return domain.PlayerRecord{
		Player:        "Jayson Tatum",
		Team:          "BOS",
		FTAttempts:    8.4,
		FTPct:         0.854,
		TwoAttempts:   11.8,
		TwoPct:        0.560,
		ThreeAttempts: 9.3,
		ThreePct:      0.350,
		Points:        30.1,
	}
}

func TestCounts(t *testing.T) {
	tests := []struct {
		name  string
		rec   domain.PlayerRecord
		total int
		want  ShotCounts
	}{
		// Rounded attempts 8/12/9 scaled by 50/29.
		{name: "proportional", rec: shooter(), total: 50, want: ShotCounts{FreeThrows: 14, Twos: 21, Threes: 16}},
		{name: "no attempts", rec: domain.PlayerRecord{}, total: 50, want: ShotCounts{FreeThrows: 1, Twos: 1, Threes: 1}},
		{name: "non-shooter floors to one", rec: domain.PlayerRecord{TwoAttempts: 10}, total: 10, want: ShotCounts{FreeThrows: 1, Twos: 10, Threes: 1}},
		{name: "zero total", rec: shooter(), total: 0, want: ShotCounts{}},
		{name: "negative total", rec: shooter(), total: -3, want: ShotCounts{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Counts(tt.rec, tt.total))
		})
	}
}

func TestSampleMatchesCountsAndZones(t *testing.T) {
	s := NewRandomShotSampler(rand.New(rand.NewPCG(1, 2)))
	rec := shooter()

	shots := s.Sample(rec, 50)
	counts := Counts(rec, 50)
	require.Len(t, shots, counts.Total())

	byType := map[domain.ShotType]int{}
	for _, shot := range shots {
		byType[shot.Type]++

		inZone := false
		for _, r := range ZonesFor(shot.Type) {
			if r.Contains(shot.X, shot.Y) {
				inZone = true
				break
			}
		}
		assert.True(t, inZone, "shot %+v outside its zones", shot)
		assert.True(t, shot.X >= 0 && shot.X <= 1 && shot.Y >= 0 && shot.Y <= 1)
	}

	assert.Equal(t, counts.FreeThrows, byType[domain.ShotFreeThrow])
	assert.Equal(t, counts.Twos, byType[domain.ShotTwo])
	assert.Equal(t, counts.Threes, byType[domain.ShotThree])
}

func TestSampleMakeRatesFollowPercentages(t *testing.T) {
	s := NewSeededShotSampler(42)
	rec := shooter()

	made := map[domain.ShotType]int{}
	taken := map[domain.ShotType]int{}
	for range 200 {
		for _, shot := range s.Sample(rec, 50) {
			taken[shot.Type]++
			if shot.Made {
				made[shot.Type]++
			}
		}
	}

	// Thousands of draws per type keep the rate within a few points.
	want := map[domain.ShotType]float64{
		domain.ShotFreeThrow: rec.FTPct,
		domain.ShotTwo:       rec.TwoPct,
		domain.ShotThree:     rec.ThreePct,
	}
	for typ, p := range want {
		rate := float64(made[typ]) / float64(taken[typ])
		assert.InDelta(t, p, rate, 0.05, "type %s", typ)
	}
}

func TestSampleDeterministicForSeed(t *testing.T) {
	a := NewSeededShotSampler(7).Sample(shooter(), 30)
	b := NewSeededShotSampler(7).Sample(shooter(), 30)
	assert.Equal(t, a, b)
}

func TestSampleExtremePercentages(t *testing.T) {
	s := NewSeededShotSampler(3)

	never := shooter()
	never.FTPct, never.TwoPct, never.ThreePct = 0, 0, 0
	for _, shot := range s.Sample(never, 40) {
		assert.False(t, shot.Made)
	}

	always := shooter()
	always.FTPct, always.TwoPct, always.ThreePct = 100, 1, 250
	for _, shot := range s.Sample(always, 40) {
		assert.True(t, shot.Made)
	}
}

func TestSampleConcurrentUse(t *testing.T) {
	s := NewSeededShotSampler(9)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotEmpty(t, s.Sample(shooter(), 20))
		}()
	}
	wg.Wait()
}

func TestSyntheticTrend(t *testing.T) {
	trend := SyntheticTrend(domain.PlayerRecord{Points: 20})
	require.Len(t, trend, 5)

	want := []float64{18, 22, 19, 21, 20}
	for i, p := range trend {
		assert.Equal(t, i+1, p.Bucket)
		assert.InDelta(t, want[i], p.Points, 1e-9)
	}
}

func TestChartIsLabelledSynthetic(t *testing.T) {
	chart := Chart(NewSeededShotSampler(5), shooter(), DefaultShots)
	assert.True(t, chart.Synthetic)
	assert.Equal(t, "Jayson Tatum", chart.Player)
	assert.NotEmpty(t, chart.Shots)
	assert.Len(t, chart.Trend, len(TrendFactors))
}
