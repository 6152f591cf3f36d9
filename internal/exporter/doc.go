// Package exporter writes season data and derived tables to disk.
//
// CSVWriter produces delimited text: cleaned datasets in the same column
// layout the loader reads, and gocsv-tagged aggregate rows (team averages,
// impact rankings, shooting leaders, team efficiency). WorkbookExporter
// produces an .xlsx workbook with one sheet per dataset plus team averages.
//
// All paths are relative to the files.Manager root the exporter was built with.
//
//	fm := files.NewManager("reports", logger)
//	w := exporter.NewCSVWriter(fm, ';', logger)
//	n, err := w.WriteDatasetCSV("regular.csv", season.Regular)
package exporter
