// Package source loads the regular and playoff season files.
//
// A Fetcher retrieves raw text from a local path or an http(s) URL. The
// Loader fetches both datasets concurrently, parses and cleans them, and
// returns an immutable Snapshot. A failed fetch on either side cancels the
// other and surfaces as a SOURCE_UNAVAILABLE error; there is no partial
// season.
package source
