package exporter

import (
	"fmt"
	"log/slog"

	"github.com/kSibalic/nba/pkg/contracts/domain"
)

// WriteDatasetCSV writes cleaned records back to delimited text with the
// season header, so the file loads again through the parser. It returns the
// number of rows written.
func (w *CSVWriter) WriteDatasetCSV(filePath string, ds domain.Dataset) (int, error) {
	sw, err := w.CreateStreamWriter(filePath, domain.Columns, false)
	if err != nil {
		return 0, err
	}

	for i, rec := range ds.Records {
		if err := sw.WriteRecord(RecordRow(rec)); err != nil {
			sw.Close()
			return sw.Rows(), fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := sw.Close(); err != nil {
		return sw.Rows(), fmt.Errorf("failed to close %s: %w", filePath, err)
	}

	w.logger.Info("Dataset exported",
		slog.String("kind", string(ds.Kind)),
		slog.String("file_path", filePath),
		slog.Int("rows", sw.Rows()))

	return sw.Rows(), nil
}
