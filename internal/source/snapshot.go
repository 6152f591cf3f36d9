package source

import (
	"slices"
	"time"

	"github.com/kSibalic/nba/pkg/contracts/domain"
)

// LoadReport describes how one dataset was loaded.
type LoadReport struct {
	Kind              domain.Kind   `json:"kind"`
	Location          string        `json:"location"`
	Rows              int           `json:"rows"`
	Mismatches        int           `json:"mismatches"`
	DefaultedNumbers  int           `json:"defaulted_numbers"`
	DefaultedIdentity int           `json:"defaulted_identity"`
	Duration          time.Duration `json:"duration"`
}

// Snapshot is the read-only season handed to every consumer after load.
// Accessors return copies so callers cannot alter the shared records.
type Snapshot struct {
	season   domain.Season
	reports  map[domain.Kind]LoadReport
	loadedAt time.Time
}

// NewSnapshot captures season. The caller must not modify season afterwards.
func NewSnapshot(season domain.Season, reports []LoadReport, loadedAt time.Time) *Snapshot {
	byKind := make(map[domain.Kind]LoadReport, len(reports))
	for _, r := range reports {
		byKind[r.Kind] = r
	}
	return &Snapshot{season: season, reports: byKind, loadedAt: loadedAt}
}

// Dataset returns a copy of the dataset of the given kind.
func (s *Snapshot) Dataset(kind domain.Kind) (domain.Dataset, bool) {
	ds, ok := s.season.Dataset(kind)
	if !ok {
		return domain.Dataset{}, false
	}
	return ds.WithRecords(slices.Clone(ds.Records)), true
}

// Season returns a copy of both datasets.
func (s *Snapshot) Season() domain.Season {
	regular, _ := s.Dataset(domain.KindRegular)
	playoff, _ := s.Dataset(domain.KindPlayoff)
	return domain.Season{Regular: regular, Playoff: playoff}
}

// Report returns the load report for kind.
func (s *Snapshot) Report(kind domain.Kind) (LoadReport, bool) {
	r, ok := s.reports[kind]
	return r, ok
}

// Reports returns the load reports in kind order.
func (s *Snapshot) Reports() []LoadReport {
	out := make([]LoadReport, 0, len(s.reports))
	for _, kind := range domain.Kinds {
		if r, ok := s.reports[kind]; ok {
			out = append(out, r)
		}
	}
	return out
}

// LoadedAt returns when the season finished loading.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }
