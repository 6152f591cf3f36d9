package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kSibalic/nba/internal/files"
)

// utf8BOM helps Excel recognise UTF-8 input.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides delimited export rooted at a files.Manager
type CSVWriter struct {
	files     *files.Manager
	delimiter rune
	logger    *slog.Logger
}

// NewCSVWriter creates a writer using delimiter between fields. A zero
// delimiter means ';', the separator of the season files.
func NewCSVWriter(fm *files.Manager, delimiter rune, logger *slog.Logger) *CSVWriter {
	if delimiter == 0 {
		delimiter = ';'
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		files:     fm,
		delimiter: delimiter,
		logger:    logger.With(slog.String("component", "csv_writer")),
	}
}

// Delimiter returns the field separator in use.
func (w *CSVWriter) Delimiter() rune { return w.delimiter }

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Append    bool
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.files.Resolve(filePath)

	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := w.files.EnsureDirectory(filepath.Dir(filePath)); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix && !options.Append {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := w.newWriter(file)

	if !options.Append && len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}

// WriteSimpleCSV writes a simple CSV file with headers and records
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, records [][]string) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
	rows   int
}

// CreateStreamWriter creates a new streaming CSV writer. The file starts with
// a BOM when bom is set.
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string, bom bool) (*StreamWriter, error) {
	w.logger.Info("Creating CSV stream writer",
		slog.String("file_path", filePath),
		slog.String("full_path", w.files.Resolve(filePath)),
		slog.Int("header_count", len(headers)))

	file, err := w.files.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	if bom {
		if _, err := file.Write(utf8BOM); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := w.newWriter(file)

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	return &StreamWriter{
		file:   file,
		writer: writer,
	}, nil
}

func (w *CSVWriter) newWriter(f *os.File) *csv.Writer {
	cw := csv.NewWriter(f)
	cw.Comma = w.delimiter
	return cw
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	if err := s.writer.Write(record); err != nil {
		return err
	}
	s.rows++
	return nil
}

// Rows returns the number of records written, headers excluded.
func (s *StreamWriter) Rows() int { return s.rows }

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
