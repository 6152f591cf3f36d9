package dataprocessing

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/kSibalic/nba/pkg/contracts/domain"
)

// FieldSet is the set of numeric columns a FieldCleaner coerces.
type FieldSet struct {
	name   string
	fields []string
	index  map[string]struct{}
}

// NewFieldSet builds a field set. Names that are not numeric columns are ignored.
func NewFieldSet(name string, fields ...string) FieldSet {
	fs := FieldSet{name: name, index: make(map[string]struct{}, len(fields))}
	for _, f := range fields {
		if !domain.IsStatField(f) {
			continue
		}
		if _, dup := fs.index[f]; dup {
			continue
		}
		fs.index[f] = struct{}{}
		fs.fields = append(fs.fields, f)
	}
	return fs
}

// Name identifies the set in logs and metrics.
func (fs FieldSet) Name() string { return fs.name }

// Fields returns the members in declaration order.
func (fs FieldSet) Fields() []string { return slices.Clone(fs.fields) }

// Contains reports whether field is coerced by this set.
func (fs FieldSet) Contains(field string) bool {
	_, ok := fs.index[field]
	return ok
}

// Stock field sets.
var (
	// FullFieldSet covers every numeric column; tables and player detail use it.
	FullFieldSet = NewFieldSet("full", domain.NumericFields...)

	// ChartFieldSet is the narrower set the chart pages read.
	ChartFieldSet = NewFieldSet("chart",
		domain.FieldPoints, domain.FieldTotalReb, domain.FieldAssists, domain.FieldSteals, domain.FieldBlocks,
		domain.FieldFGPct, domain.FieldThreePct, domain.FieldFTPct, domain.FieldMinutes, domain.FieldGames)

	// ShootingFieldSet covers the makes, attempts and percentages the shot pages need.
	ShootingFieldSet = NewFieldSet("shooting",
		domain.FieldFGMade, domain.FieldFGAttempts, domain.FieldFGPct,
		domain.FieldThreeMade, domain.FieldThreeAttempts, domain.FieldThreePct,
		domain.FieldTwoMade, domain.FieldTwoAttempts, domain.FieldTwoPct,
		domain.FieldFTMade, domain.FieldFTAttempts, domain.FieldFTPct,
		domain.FieldPoints)
)

// CleanNumber coerces a raw field to a finite non-negative float. Like a
// browser's parseFloat it reads the longest leading decimal number and
// ignores the rest, so "24.5%" is 24.5. Empty, unparsable, NaN, infinite and
// negative input all yield 0.
func CleanNumber(raw string) float64 {
	v, ok := parseNumber(raw)
	if !ok {
		return 0
	}
	return v
}

func parseNumber(raw string) (float64, bool) {
	s := numericPrefix(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// numericPrefix returns the longest prefix of s matching
// [+-]?(digits[.digits]|.digits)([eE][+-]?digits)?, or "" when there is none.
// Underscores, hex and the words Inf/NaN never match.
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intEnd := skipDigits(s, i)
	mantissa := intEnd > i
	end := intEnd
	if end < len(s) && s[end] == '.' {
		fracEnd := skipDigits(s, end+1)
		if mantissa || fracEnd > end+1 {
			mantissa = true
			end = fracEnd
		}
	}
	if !mantissa {
		return ""
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		j := end + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if expEnd := skipDigits(s, j); expEnd > j {
			end = expEnd
		}
	}
	return s[:end]
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// CleanReport counts what a cleaning pass had to default.
type CleanReport struct {
	Rows              int `json:"rows"`
	DefaultedNumbers  int `json:"defaulted_numbers"`
	DefaultedIdentity int `json:"defaulted_identity"`
}

// FieldCleaner turns raw rows into PlayerRecords. It is pure and safe for
// concurrent use.
type FieldCleaner struct {
	fields FieldSet
}

// NewFieldCleaner creates a cleaner for the given field set.
func NewFieldCleaner(fields FieldSet) *FieldCleaner {
	return &FieldCleaner{fields: fields}
}

// FieldSet returns the set this cleaner coerces.
func (c *FieldCleaner) FieldSet() FieldSet { return c.fields }

// Clean converts one raw row.
func (c *FieldCleaner) Clean(row RawRow) domain.PlayerRecord {
	rec, _ := c.clean(row)
	return rec
}

// CleanAll converts rows into a dataset of the given kind.
func (c *FieldCleaner) CleanAll(kind domain.Kind, rows []RawRow) (domain.Dataset, CleanReport) {
	report := CleanReport{Rows: len(rows)}
	recs := make([]domain.PlayerRecord, len(rows))
	for i, row := range rows {
		var r CleanReport
		recs[i], r = c.clean(row)
		report.DefaultedNumbers += r.DefaultedNumbers
		report.DefaultedIdentity += r.DefaultedIdentity
	}
	return domain.Dataset{Kind: kind, Records: recs}, report
}

func (c *FieldCleaner) clean(row RawRow) (domain.PlayerRecord, CleanReport) {
	var rec domain.PlayerRecord
	var report CleanReport

	for _, f := range c.fields.fields {
		v, ok := parseNumber(row[f])
		if !ok {
			report.DefaultedNumbers++
		}
		rec.SetStat(f, v)
	}

	identity := func(field, fallback string) string {
		v := strings.TrimSpace(row[field])
		if v == "" {
			report.DefaultedIdentity++
			return fallback
		}
		return v
	}
	rec.Player = identity(domain.FieldPlayer, domain.UnknownPlayer)
	rec.Position = identity(domain.FieldPosition, domain.NotAvailable)
	rec.Team = identity(domain.FieldTeam, domain.NotAvailable)

	for k, v := range row {
		if c.fields.Contains(k) || k == domain.FieldPlayer || k == domain.FieldPosition || k == domain.FieldTeam {
			continue
		}
		if rec.Raw == nil {
			rec.Raw = make(map[string]string)
		}
		rec.Raw[k] = v
	}

	return rec, report
}
