package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"
	"unicode/utf8"

	apperrors "github.com/kSibalic/nba/internal/errors"
)

// DefaultDelimiter separates fields in the season files.
const DefaultDelimiter = ';'

// RawRow maps header names to the untouched field text of one data row.
type RawRow map[string]string

// MismatchHandler receives a MALFORMED_SOURCE error for every row whose
// width differs from the header. Parsing always continues.
type MismatchHandler func(err *apperrors.AppError)

// RecordParser splits delimited text into header-keyed rows.
type RecordParser struct {
	delimiter  rune
	onMismatch MismatchHandler
	logger     *slog.Logger
}

// ParserOption configures a RecordParser.
type ParserOption func(*RecordParser)

// WithMismatchHandler registers a callback for width mismatches.
func WithMismatchHandler(fn MismatchHandler) ParserOption {
	return func(p *RecordParser) { p.onMismatch = fn }
}

// WithParserLogger sets the logger used for mismatch warnings.
func WithParserLogger(logger *slog.Logger) ParserOption {
	return func(p *RecordParser) { p.logger = logger }
}

// NewRecordParser creates a parser for the given single-character delimiter.
func NewRecordParser(delimiter rune, opts ...ParserOption) (*RecordParser, error) {
	if delimiter == 0 || delimiter == '"' || delimiter == '\r' || delimiter == '\n' || delimiter == utf8.RuneError {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("invalid delimiter %q", delimiter))
	}

	p := &RecordParser{delimiter: delimiter}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.logger = p.logger.With(slog.String("component", "record_parser"))
	return p, nil
}

// ParseDelimiter validates a configured delimiter string.
func ParseDelimiter(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, apperrors.NewAppValidationError(fmt.Sprintf("delimiter must be a single character, got %q", s))
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Rows returns a lazy sequence over the data rows of text. The header row
// establishes the keys and is not yielded. Every range over the sequence
// parses text from the start, so the sequence can be consumed repeatedly.
//
// Rows narrower than the header pair the missing trailing columns with "";
// surplus fields are dropped. Blank lines are skipped.
func (p *RecordParser) Rows(text string) iter.Seq2[RawRow, error] {
	return func(yield func(RawRow, error) bool) {
		r := csv.NewReader(strings.NewReader(text))
		r.Comma = p.delimiter
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		r.ReuseRecord = true

		header, err := r.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			yield(nil, apperrors.NewParsingError("failed to read header", err))
			return
		}
		keys := normaliseHeader(header)

		for {
			fields, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				if !yield(nil, apperrors.NewParsingError("failed to read row", err)) {
					return
				}
				continue
			}

			if len(fields) != len(keys) {
				line, _ := r.FieldPos(0)
				p.reportMismatch(line, len(keys), len(fields))
			}

			row := make(RawRow, len(keys))
			for i, key := range keys {
				if i < len(fields) {
					row[key] = fields[i]
				} else {
					row[key] = ""
				}
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// ParseAll collects every row of text. It stops at the first read error.
func (p *RecordParser) ParseAll(text string) ([]RawRow, error) {
	var rows []RawRow
	for row, err := range p.Rows(text) {
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (p *RecordParser) reportMismatch(line, headerWidth, rowWidth int) {
	mismatch := apperrors.NewMalformedSourceError(line, headerWidth, rowWidth)
	p.logger.Debug("row width differs from header",
		slog.Int("line", line),
		slog.Int("header_width", headerWidth),
		slog.Int("row_width", rowWidth))
	if p.onMismatch != nil {
		p.onMismatch(mismatch)
	}
}

// normaliseHeader trims header names and a leading byte order mark.
func normaliseHeader(header []string) []string {
	keys := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		keys[i] = strings.TrimSpace(h)
	}
	return keys
}
