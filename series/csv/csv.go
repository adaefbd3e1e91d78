package csv

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/TheArtVark/DisplayBars/series"
)

// Reader implements a sample reader for CSV input.
type Reader struct {
	rd io.Reader
}

// NewReader returns a new reader for CSV-encoded samples.
func NewReader(rd io.Reader) *Reader {
	return &Reader{
		rd: rd,
	}
}

// Read all samples from the underlying reader. Rows with a single column
// hold a value, rows with two or more columns hold a time followed by a
// value. A first row that does not parse is skipped as a header.
func (r *Reader) Read() ([]series.Sample, error) {
	buf := bufio.NewReader(r.rd)
	c := csv.NewReader(buf)
	c.FieldsPerRecord = -1 // Column count decides the row shape
	var ss []series.Sample
	line := 0
	for {
		csvRecord, err := c.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(csvRecord) == 0 {
			continue
		}
		s, err := parseRow(csvRecord)
		if err != nil {
			if line == 1 {
				continue // Skip header
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ss = append(ss, s)
	}
	return ss, nil
}

func parseRow(row []string) (series.Sample, error) {
	if len(row) == 1 {
		n, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return series.Sample{}, fmt.Errorf("invalid value: %q: %w", row[0], err)
		}
		return series.Sample{Value: n}, nil
	}
	t, err := series.ParseTime(row[0])
	if err != nil {
		return series.Sample{}, fmt.Errorf("invalid time: %q: %w", row[0], err)
	}
	n, err := strconv.ParseInt(row[1], 10, 64)
	if err != nil {
		return series.Sample{}, fmt.Errorf("invalid value: %q: %w", row[1], err)
	}
	return series.Sample{Time: t, Value: n}, nil
}
