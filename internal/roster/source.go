// Package roster reads tabular attendance records one row at a time.
package roster

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const utf8BOM = "\ufeff"

// Source yields rows lazily. Next returns io.EOF once the rows are exhausted.
type Source interface {
	Next() ([]string, error)
}

// CSVSource reads comma-separated records. Rows may have differing lengths;
// checking widths against the header is left to the consumer.
type CSVSource struct {
	reader *csv.Reader
	line   int
}

// NewCSVSource wraps r in a CSV reader.
func NewCSVSource(r io.Reader) *CSVSource {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = false

	return &CSVSource{reader: reader}
}

// Next returns the next record.
func (s *CSVSource) Next() ([]string, error) {
	record, err := s.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	s.line, _ = s.reader.FieldPos(0)
	if s.line == 1 && len(record) > 0 {
		record[0] = strings.TrimPrefix(record[0], utf8BOM)
	}
	return record, nil
}

// Line returns the input line of the record most recently returned by Next.
func (s *CSVSource) Line() int {
	return s.line
}

// FileSource is a CSVSource backed by an open file. It hashes the bytes as
// they are read.
type FileSource struct {
	*CSVSource
	file *os.File
	hash hash.Hash
}

// OpenFile opens path for reading as CSV.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(filepath.Clean(path)) // #nosec G304 -- user-supplied input path
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	h := sha256.New()
	return &FileSource{
		CSVSource: NewCSVSource(io.TeeReader(f, h)),
		file:      f,
		hash:      h,
	}, nil
}

// Digest returns the hex SHA-256 of the bytes read so far. After Next has
// returned io.EOF it covers the whole file.
func (s *FileSource) Digest() string {
	return hex.EncodeToString(s.hash.Sum(nil))
}

// Close closes the underlying file.
func (s *FileSource) Close() error {
	return s.file.Close()
}

// SliceSource serves rows from memory.
type SliceSource struct {
	rows [][]string
	pos  int
}

// NewSliceSource returns a Source over rows.
func NewSliceSource(rows [][]string) *SliceSource {
	return &SliceSource{rows: rows}
}

// Next returns the next row or io.EOF.
func (s *SliceSource) Next() ([]string, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}

// Line returns the 1-based position of the row most recently returned.
func (s *SliceSource) Line() int {
	return s.pos
}
