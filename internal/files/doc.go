// Package files resolves and accesses files relative to a root directory.
//
// Manager backs both ends of the pipeline: the season sources are opened
// through it when they are local paths, and the report exporter writes its
// CSV and XLSX output through it.
//
//	manager := files.NewManager("/srv/hoops", logger)
//	f, err := manager.Open("data/regular.csv")
package files
