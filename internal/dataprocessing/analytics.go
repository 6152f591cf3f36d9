package dataprocessing

import (
	"cmp"
	"slices"

	"github.com/kSibalic/nba/pkg/contracts/domain"
)

// Impact stat groups.
var (
	ImpactCore = []string{domain.FieldPoints, domain.FieldAssists, domain.FieldTotalReb}
	ImpactFull = []string{domain.FieldPoints, domain.FieldAssists, domain.FieldTotalReb, domain.FieldSteals, domain.FieldBlocks}

	// LeagueFields are the columns of the league average comparison.
	LeagueFields = []string{
		domain.FieldPoints, domain.FieldTotalReb, domain.FieldAssists, domain.FieldSteals, domain.FieldBlocks,
		domain.FieldFGPct, domain.FieldThreePct, domain.FieldFTPct,
	}
)

// LeagueAverages returns sum/len per field over every record, zeros included.
// An empty dataset averages to 0.
func LeagueAverages(ds domain.Dataset, fields []string) (map[string]float64, error) {
	for _, f := range fields {
		if err := ValidateStat(f); err != nil {
			return nil, err
		}
	}

	out := make(map[string]float64, len(fields))
	for _, f := range fields {
		out[f] = 0
	}
	if ds.Len() == 0 {
		return out, nil
	}
	for _, rec := range ds.Records {
		for _, f := range fields {
			out[f] += rec.MustStat(f)
		}
	}
	n := float64(ds.Len())
	for _, f := range fields {
		out[f] /= n
	}
	return out, nil
}

// SeasonSummary averages points, rebounds, assists and FG% over the records
// where each value is positive; a zero counts as no data.
func SeasonSummary(ds domain.Dataset) domain.SeasonSummary {
	return domain.SeasonSummary{
		Kind:          ds.Kind,
		Players:       ds.Len(),
		AvgPoints:     positiveMean(ds, domain.FieldPoints),
		AvgRebounds:   positiveMean(ds, domain.FieldTotalReb),
		AvgAssists:    positiveMean(ds, domain.FieldAssists),
		AvgFieldGoals: positiveMean(ds, domain.FieldFGPct),
	}
}

func positiveMean(ds domain.Dataset, field string) float64 {
	var sum float64
	var n int
	for _, rec := range ds.Records {
		if v := rec.MustStat(field); v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ImpactScore sums the named stats of rec.
func ImpactScore(rec domain.PlayerRecord, stats ...string) float64 {
	var total float64
	for _, s := range stats {
		total += rec.MustStat(s)
	}
	return total
}

// Efficiency is the mean of points, assists and rebounds.
func Efficiency(rec domain.PlayerRecord) float64 {
	return ImpactScore(rec, ImpactCore...) / float64(len(ImpactCore))
}

// TopByImpact ranks records by the sum of stats, highest first, ties in
// dataset order.
func TopByImpact(ds domain.Dataset, n int, stats []string) ([]domain.PlayerImpact, error) {
	for _, s := range stats {
		if err := ValidateStat(s); err != nil {
			return nil, err
		}
	}

	idx := rankByImpact(ds, n, stats)
	out := make([]domain.PlayerImpact, len(idx))
	for i, j := range idx {
		rec := ds.Records[j]
		values := make(map[string]float64, len(stats))
		for _, s := range stats {
			values[s] = rec.MustStat(s)
		}
		out[i] = domain.PlayerImpact{
			Player: rec.Player,
			Team:   rec.Team,
			Stats:  values,
			Impact: ImpactScore(rec, stats...),
		}
	}
	return out, nil
}

// rankByImpact returns the indexes of the n highest impact records.
func rankByImpact(ds domain.Dataset, n int, stats []string) []int {
	if n <= 0 {
		return []int{}
	}
	idx := make([]int, len(ds.Records))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(ImpactScore(ds.Records[b], stats...), ImpactScore(ds.Records[a], stats...))
	})
	if n < len(idx) {
		idx = idx[:n]
	}
	return idx
}

// TeamEfficiency averages points, assists and rebounds per team, most
// efficient first. Records without a team are skipped.
func TeamEfficiency(ds domain.Dataset) []domain.TeamEfficiency {
	type acc struct {
		n             int
		pts, ast, trb float64
	}
	byTeam := make(map[string]*acc)
	for _, rec := range ds.Records {
		if rec.Team == domain.NotAvailable {
			continue
		}
		a, ok := byTeam[rec.Team]
		if !ok {
			a = &acc{}
			byTeam[rec.Team] = a
		}
		a.n++
		a.pts += rec.Points
		a.ast += rec.Assists
		a.trb += rec.TotalReb
	}

	out := make([]domain.TeamEfficiency, 0, len(byTeam))
	for team, a := range byTeam {
		n := float64(a.n)
		te := domain.TeamEfficiency{
			Team:        team,
			Players:     a.n,
			AvgPoints:   a.pts / n,
			AvgAssists:  a.ast / n,
			AvgRebounds: a.trb / n,
		}
		te.Efficiency = (te.AvgPoints + te.AvgAssists + te.AvgRebounds) / 3
		out = append(out, te)
	}
	slices.SortFunc(out, func(a, b domain.TeamEfficiency) int {
		if c := cmp.Compare(b.Efficiency, a.Efficiency); c != 0 {
			return c
		}
		return cmp.Compare(a.Team, b.Team)
	})
	return out
}

// RadarProfiles takes the top n players by full impact and scales each
// category by the largest value among them. A category whose maximum is 0
// scales to 0.
func RadarProfiles(ds domain.Dataset, n int, categories []string) ([]domain.RadarProfile, error) {
	for _, c := range categories {
		if err := ValidateStat(c); err != nil {
			return nil, err
		}
	}

	var recs []domain.PlayerRecord
	for _, i := range rankByImpact(ds, n, ImpactFull) {
		recs = append(recs, ds.Records[i])
	}

	maxima := make(map[string]float64, len(categories))
	for _, rec := range recs {
		for _, c := range categories {
			if v := rec.MustStat(c); v > maxima[c] {
				maxima[c] = v
			}
		}
	}

	out := make([]domain.RadarProfile, len(recs))
	for i, rec := range recs {
		p := domain.RadarProfile{
			Player:     rec.Player,
			Team:       rec.Team,
			Raw:        make(map[string]float64, len(categories)),
			Normalised: make(map[string]float64, len(categories)),
		}
		for _, c := range categories {
			v := rec.MustStat(c)
			p.Raw[c] = v
			if maxima[c] > 0 {
				p.Normalised[c] = v / maxima[c]
			}
		}
		out[i] = p
	}
	return out, nil
}

// ShootingLeaders ranks players with more than minAttempts field goal
// attempts by FG%, best first.
func ShootingLeaders(ds domain.Dataset, minAttempts float64, n int) []domain.ShootingLeader {
	if n <= 0 {
		return []domain.ShootingLeader{}
	}

	qualified := make([]domain.PlayerRecord, 0, len(ds.Records))
	for _, rec := range ds.Records {
		if rec.FieldGoalAttempts > minAttempts {
			qualified = append(qualified, rec)
		}
	}
	slices.SortStableFunc(qualified, func(a, b domain.PlayerRecord) int {
		return cmp.Compare(b.FieldGoalPct, a.FieldGoalPct)
	})
	if n < len(qualified) {
		qualified = qualified[:n]
	}

	out := make([]domain.ShootingLeader, len(qualified))
	for i, rec := range qualified {
		out[i] = domain.ShootingLeader{
			Player:        rec.Player,
			Team:          rec.Team,
			FieldGoalPct:  rec.FieldGoalPct,
			Attempts:      rec.FieldGoalAttempts,
			ThreePct:      rec.ThreePct,
			PointsPerShot: PointsPerShot(rec),
		}
	}
	return out
}

// PointsPerShot is PTS/FGA, or 0 without attempts.
func PointsPerShot(rec domain.PlayerRecord) float64 {
	if rec.FieldGoalAttempts <= 0 {
		return 0
	}
	return rec.Points / rec.FieldGoalAttempts
}

// PlayerNames returns the distinct player names, sorted.
func PlayerNames(ds domain.Dataset) []string {
	seen := make(map[string]struct{}, len(ds.Records))
	names := make([]string, 0, len(ds.Records))
	for _, rec := range ds.Records {
		if _, ok := seen[rec.Player]; ok {
			continue
		}
		seen[rec.Player] = struct{}{}
		names = append(names, rec.Player)
	}
	slices.Sort(names)
	return names
}

// FilterPlayed drops records with no games played.
func FilterPlayed(ds domain.Dataset) domain.Dataset {
	out := make([]domain.PlayerRecord, 0, len(ds.Records))
	for _, rec := range ds.Records {
		if rec.GamesPlayed > 0 {
			out = append(out, rec)
		}
	}
	return ds.WithRecords(out)
}

// FindPlayer returns the first record for name.
func FindPlayer(ds domain.Dataset, name string) (domain.PlayerRecord, bool) {
	for _, rec := range ds.Records {
		if rec.Player == name {
			return rec, true
		}
	}
	return domain.PlayerRecord{}, false
}
