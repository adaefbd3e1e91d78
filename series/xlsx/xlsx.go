package xlsx

import (
	"fmt"
	"io"
	"strconv"

	"github.com/TheArtVark/DisplayBars/series"
	"github.com/xuri/excelize/v2"
)

// Reader implements a sample reader for XLSX input.
type Reader struct {
	rd io.Reader
}

// NewReader returns a new reader for XLSX-encoded samples.
func NewReader(rd io.Reader) *Reader {
	return &Reader{
		rd: rd,
	}
}

func (r *Reader) Read() ([]series.Sample, error) {
	data, err := excelize.OpenReader(r.rd)
	if err != nil {
		return nil, err
	}
	if len(data.GetSheetList()) == 0 {
		return nil, fmt.Errorf("xlsx contains 0 sheets")
	}
	firstSheet := data.GetSheetName(0)
	rows, err := data.GetRows(firstSheet)
	if err != nil {
		return nil, err
	}
	var ss []series.Sample
	for i, cells := range rows {
		if len(cells) == 0 || cells[0] == "" { // Empty row
			continue
		}
		s, err := parseRow(cells)
		if err != nil {
			if i == 0 { // Header row
				continue
			}
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		ss = append(ss, s)
	}
	return ss, nil
}

func parseRow(cells []string) (series.Sample, error) {
	if len(cells) == 1 {
		n, err := strconv.ParseInt(cells[0], 10, 64)
		if err != nil {
			return series.Sample{}, fmt.Errorf("invalid value: %q: %w", cells[0], err)
		}
		return series.Sample{Value: n}, nil
	}
	t, err := series.ParseTime(cells[0])
	if err != nil {
		return series.Sample{}, fmt.Errorf("invalid time: %q: %w", cells[0], err)
	}
	n, err := strconv.ParseInt(cells[1], 10, 64)
	if err != nil {
		return series.Sample{}, fmt.Errorf("invalid value: %q: %w", cells[1], err)
	}
	return series.Sample{Time: t, Value: n}, nil
}
