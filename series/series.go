package series

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const byteOrderMark = '\uFEFF'

// Time layouts accepted by sample readers.
const (
	TimeLayout = "2006-01-02 15:04:05"
	DateLayout = "2006-01-02"
)

// Reader is the interface for sample readers.
type Reader interface {
	Read() ([]Sample, error)
}

// A Sample is a single measured value at a point in time. A zero Time means
// the source did not carry one.
type Sample struct {
	Time  time.Time
	Value int64
}

// A Bucket is a list of samples grouped under a common point in time.
type Bucket struct {
	Time    time.Time
	Samples []Sample
}

type reader struct {
	rd io.Reader
}

func NewReader(rd io.Reader) Reader {
	return &reader{rd: rd}
}

// ParseTime parses s using TimeLayout, falling back to DateLayout.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(DateLayout, s)
}

// Values returns the values of samples in input order.
func Values(samples []Sample) []int64 {
	vs := make([]int64, len(samples))
	for i, s := range samples {
		vs[i] = s.Value
	}
	return vs
}

// GroupFunc groups samples into buckets keyed by timeFn applied to their
// times. Buckets are sorted by ascending time.
func GroupFunc(samples []Sample, timeFn func(time.Time) time.Time) []Bucket {
	m := make(map[time.Time][]Sample)
	for _, s := range samples {
		key := timeFn(s.Time)
		m[key] = append(m[key], s)
	}
	var bs []Bucket
	for t, ss := range m {
		bs = append(bs, Bucket{Time: t, Samples: ss})
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i].Time.Before(bs[j].Time) })
	return bs
}

// Sum returns the total of all sample values in the bucket.
func (b *Bucket) Sum() int64 {
	var sum int64
	for _, s := range b.Samples {
		sum += s.Value
	}
	return sum
}

// Min returns the smallest sample value in the bucket.
func (b *Bucket) Min() int64 {
	var min int64
	for i, s := range b.Samples {
		if i == 0 || s.Value < min {
			min = s.Value
		}
	}
	return min
}

// Max returns the largest sample value in the bucket.
func (b *Bucket) Max() int64 {
	var max int64
	for i, s := range b.Samples {
		if i == 0 || s.Value > max {
			max = s.Value
		}
	}
	return max
}

// Avg returns the average of all sample values in the bucket, truncated
// towards zero.
func (b *Bucket) Avg() int64 {
	if len(b.Samples) == 0 {
		return 0
	}
	return b.Sum() / int64(len(b.Samples))
}

// Last returns the value of the most recent sample in the bucket. Samples
// sharing the most recent time resolve to the one read last.
func (b *Bucket) Last() int64 {
	var (
		last int64
		t    time.Time
	)
	for i, s := range b.Samples {
		if i == 0 || !s.Time.Before(t) {
			last = s.Value
			t = s.Time
		}
	}
	return last
}

// Read all samples from the reader.
func (r *reader) Read() ([]Sample, error) {
	buf := bufio.NewReader(r.rd)
	// Peek at the first rune to see if the input starts with a byte order mark
	rune, _, err := buf.ReadRune()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if rune != byteOrderMark {
		if err := buf.UnreadRune(); err != nil {
			return nil, err
		}
	}
	scanner := bufio.NewScanner(buf)
	var ss []Sample
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value on line %d: %q", line, text)
		}
		ss = append(ss, Sample{Value: n})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ss, nil
}
