// Package shared holds helpers used by more than one internal package.
//
// The testutil subpackage provides a capturing slog handler and season CSV
// fixtures so that parser, source, service and handler tests all build their
// inputs the same way:
//
//	logger, logs := testutil.NewTestLogger(t)
//	text := testutil.SeasonCSV(testutil.Row{"Player": "A", "Tm": "BOS", "PTS": "24.5"})
//
// Nothing in this tree may be imported from production code.
package shared
