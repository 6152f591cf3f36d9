// Package dataprocessing turns season files into cleaned datasets and derives
// every statistic the API serves from them.
//
// # Architecture
//
// The package is organized into four components:
//
// 1. RecordParser: splits ';'-delimited text into header-keyed RawRows
// 2. FieldCleaner: coerces a FieldSet of numeric columns and fills identity defaults
// 3. Aggregator: DeduplicateByMax, TopN, TeamAverages and Histogram
// 4. Analytics: league averages, impact rankings, radar profiles, shooting leaders
//
// # Usage
//
//	parser, _ := dataprocessing.NewRecordParser(dataprocessing.DefaultDelimiter)
//	rows, err := parser.ParseAll(text)
//	if err != nil {
//	    return err
//	}
//	ds, _ := dataprocessing.NewFieldCleaner(dataprocessing.FullFieldSet).CleanAll(domain.KindRegular, rows)
//	top, err := dataprocessing.TopN(ds, domain.FieldPoints, 10, dataprocessing.Descending)
//
// # Data Flow
//
//	text → RecordParser → RawRows → FieldCleaner → Dataset → Aggregator/Analytics → API
//
// # Zero Values
//
// Cleaning never fails. Missing, empty, unparsable, non-finite and negative
// numbers all become 0, so a cleaned 0 means "zero or unknown" and the two
// cannot be told apart afterwards. Consumers that exclude "no data"
// (TeamAverages, SeasonSummary, FormatStat, FormatPercent) all treat any
// value <= 0 the same way.
//
// # Error Handling
//
// Row width mismatches are reported to a MismatchHandler as MALFORMED_SOURCE
// errors and never stop parsing. Unknown stat fields and bad bin counts are
// VALIDATION errors. Aggregations on an empty dataset return empty results;
// use RequireNonEmpty when something must be shown.
//
// All functions here are pure and take datasets by value, so they are safe to
// call concurrently on a shared snapshot.
package dataprocessing
