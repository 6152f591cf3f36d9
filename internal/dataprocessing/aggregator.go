package dataprocessing

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	apperrors "github.com/kSibalic/nba/internal/errors"
	"github.com/kSibalic/nba/pkg/contracts/domain"
)

// Direction orders a ranking.
type Direction int

const (
	Descending Direction = iota
	Ascending
)

// String returns the query form of the direction.
func (d Direction) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

// ParseDirection accepts "asc"/"ascending" and "desc"/"descending" (the default for "").
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc", "descending":
		return Descending, nil
	case "asc", "ascending":
		return Ascending, nil
	}
	return Descending, apperrors.NewAppValidationError(fmt.Sprintf("unknown sort direction %q", s))
}

// ValidateStat returns a VALIDATION error unless field names a numeric column.
func ValidateStat(field string) error {
	if !domain.IsStatField(field) {
		return apperrors.NewAppValidationError(fmt.Sprintf("unknown stat field %q", field))
	}
	return nil
}

// DeduplicateByMax keeps one record per player name: the one with the largest
// field value, the earliest such record on ties. Survivors appear in the order
// their names first occur.
func DeduplicateByMax(ds domain.Dataset, field string) (domain.Dataset, error) {
	if err := ValidateStat(field); err != nil {
		return domain.Dataset{}, err
	}

	best := make(map[string]int, len(ds.Records))
	out := make([]domain.PlayerRecord, 0, len(ds.Records))

	for _, rec := range ds.Records {
		i, seen := best[rec.Player]
		if !seen {
			best[rec.Player] = len(out)
			out = append(out, rec)
			continue
		}
		if rec.MustStat(field) > out[i].MustStat(field) {
			out[i] = rec
		}
	}

	return ds.WithRecords(out), nil
}

// TopN returns the first n records after a stable sort on field.
// n <= 0 or an empty dataset yields an empty dataset.
func TopN(ds domain.Dataset, field string, n int, dir Direction) (domain.Dataset, error) {
	if err := ValidateStat(field); err != nil {
		return domain.Dataset{}, err
	}
	if n <= 0 || len(ds.Records) == 0 {
		return ds.WithRecords([]domain.PlayerRecord{}), nil
	}

	sorted := slices.Clone(ds.Records)
	slices.SortStableFunc(sorted, func(a, b domain.PlayerRecord) int {
		c := cmp.Compare(a.MustStat(field), b.MustStat(field))
		if dir == Descending {
			return -c
		}
		return c
	})

	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return ds.WithRecords(sorted), nil
}

// TeamAverages folds field per team, skipping records without a team or with
// a value <= 0. Teams are ordered by average descending, then by code.
func TeamAverages(ds domain.Dataset, field string) ([]domain.TeamAggregate, error) {
	if err := ValidateStat(field); err != nil {
		return nil, err
	}

	byTeam := make(map[string]*domain.TeamAggregate)
	for _, rec := range ds.Records {
		v := rec.MustStat(field)
		if rec.Team == domain.NotAvailable || v <= 0 {
			continue
		}
		agg, ok := byTeam[rec.Team]
		if !ok {
			agg = &domain.TeamAggregate{Team: rec.Team, Stat: field}
			byTeam[rec.Team] = agg
		}
		agg.TotalPoints += v
		agg.PlayerCount++
		agg.AveragePoints = agg.TotalPoints / float64(agg.PlayerCount)
	}

	out := make([]domain.TeamAggregate, 0, len(byTeam))
	for _, agg := range byTeam {
		out = append(out, *agg)
	}
	slices.SortFunc(out, func(a, b domain.TeamAggregate) int {
		if c := cmp.Compare(b.AveragePoints, a.AveragePoints); c != 0 {
			return c
		}
		return cmp.Compare(a.Team, b.Team)
	})
	return out, nil
}

// Histogram splits [0, max(values)] into binCount equal-width buckets. The
// last bucket includes max. An empty input yields no buckets. When max is 0
// every bucket has zero width and all values land in the first. NaN or
// infinite values are a VALIDATION error.
func Histogram(values []float64, binCount int) ([]domain.HistogramBucket, error) {
	if binCount <= 0 {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("bin count must be positive, got %d", binCount))
	}
	if len(values) == 0 {
		return []domain.HistogramBucket{}, nil
	}

	maxVal := 0.0
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, apperrors.NewAppValidationError(fmt.Sprintf("histogram value %d is not finite: %v", i, v))
		}
		if v > maxVal {
			maxVal = v
		}
	}

	width := maxVal / float64(binCount)
	buckets := make([]domain.HistogramBucket, binCount)
	for i := range buckets {
		buckets[i].Lower = float64(i) * width
		buckets[i].Upper = float64(i+1) * width
	}
	buckets[binCount-1].Upper = maxVal
	buckets[binCount-1].Closed = true

	for _, v := range values {
		buckets[bucketIndex(buckets, v, width)].Count++
	}
	return buckets, nil
}

func bucketIndex(buckets []domain.HistogramBucket, v, width float64) int {
	last := len(buckets) - 1
	if width == 0 || v <= 0 {
		return 0
	}
	i := int(math.Floor(v / width))
	if i > last {
		i = last
	}
	// Correct for rounding in v/width near a boundary.
	if i > 0 && v < buckets[i].Lower {
		i--
	}
	if i < last && v >= buckets[i+1].Lower {
		i++
	}
	return i
}

// HistogramOf bins one column of a dataset.
func HistogramOf(ds domain.Dataset, field string, binCount int) ([]domain.HistogramBucket, error) {
	if err := ValidateStat(field); err != nil {
		return nil, err
	}
	return Histogram(ds.Values(field), binCount)
}

// RequireNonEmpty returns an EMPTY_DATASET error when ds has no records.
// Aggregations never fail on empty input; callers that need something to
// show use this.
func RequireNonEmpty(ds domain.Dataset) error {
	if ds.Len() == 0 {
		name := string(ds.Kind)
		if name == "" {
			name = "dataset"
		}
		return apperrors.NewEmptyDatasetError(name)
	}
	return nil
}
