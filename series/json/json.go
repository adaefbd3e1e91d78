package json

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/TheArtVark/DisplayBars/series"
)

// Reader implements a sample reader for JSON input.
type Reader struct {
	rd io.Reader
}

// NewReader returns a new reader for JSON-encoded samples.
func NewReader(rd io.Reader) *Reader {
	return &Reader{
		rd: rd,
	}
}

// Read all samples from the underlying reader. The input is either an array
// of numbers or an array of objects with a value and an optional time field.
func (r *Reader) Read() ([]series.Sample, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(bufio.NewReader(r.rd)).Decode(&raw); err != nil {
		return nil, err
	}
	ss := make([]series.Sample, 0, len(raw))
	for i, m := range raw {
		var n int64
		if err := json.Unmarshal(m, &n); err == nil {
			ss = append(ss, series.Sample{Value: n})
			continue
		}
		var obj struct {
			Time  string `json:"time"`
			Value int64  `json:"value"`
		}
		if err := json.Unmarshal(m, &obj); err != nil {
			return nil, fmt.Errorf("invalid sample at index %d: %w", i, err)
		}
		s := series.Sample{Value: obj.Value}
		if obj.Time != "" {
			t, err := series.ParseTime(obj.Time)
			if err != nil {
				return nil, fmt.Errorf("invalid time at index %d: %q: %w", i, obj.Time, err)
			}
			s.Time = t
		}
		ss = append(ss, s)
	}
	return ss, nil
}
