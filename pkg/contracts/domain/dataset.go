package domain

import "fmt"

// Kind tags a dataset with its competition phase.
type Kind string

const (
	KindRegular Kind = "regular"
	KindPlayoff Kind = "playoff"
)

// Kinds lists the dataset kinds loaded per season.
var Kinds = []Kind{KindRegular, KindPlayoff}

// ParseKind validates a dataset kind taken from user input.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindRegular, KindPlayoff:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown dataset kind %q", s)
}

// Dataset is an ordered sequence of records for one competition phase.
// Datasets are never mutated once loaded; operations return new ones.
type Dataset struct {
	Kind    Kind           `json:"kind"`
	Records []PlayerRecord `json:"records"`
}

// Len returns the number of records.
func (d Dataset) Len() int { return len(d.Records) }

// WithRecords returns a dataset of the same kind holding recs.
func (d Dataset) WithRecords(recs []PlayerRecord) Dataset {
	return Dataset{Kind: d.Kind, Records: recs}
}

// Values extracts one numeric column in dataset order.
func (d Dataset) Values(field string) []float64 {
	out := make([]float64, len(d.Records))
	for i, rec := range d.Records {
		out[i] = rec.MustStat(field)
	}
	return out
}

// Season holds the two datasets loaded together.
type Season struct {
	Regular Dataset `json:"regular"`
	Playoff Dataset `json:"playoff"`
}

// Dataset returns the dataset of the given kind.
func (s Season) Dataset(kind Kind) (Dataset, bool) {
	switch kind {
	case KindRegular:
		return s.Regular, true
	case KindPlayoff:
		return s.Playoff, true
	}
	return Dataset{}, false
}
