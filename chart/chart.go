package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	marker       = "X"
	fillChar     = "*"
	defaultWidth = 80
)

// Color identifies the threshold bucket a rendered line falls into.
type Color int

// Colors assigned by threshold bucketing.
const (
	ColorNone Color = iota
	ColorRed
	ColorYellow
	ColorGreen
)

// Thresholds divides the resolved range into color buckets. A value whose
// percentage within the range is at most Low is red, at most High is yellow
// and green otherwise. Buckets are checked in that order, so a value matching
// both is red.
type Thresholds struct {
	Low  int
	High int
}

// A Range decides the bounds used to scale values. It is constructed with
// either Auto or Manual, making an ambiguous mode unrepresentable. The zero
// value behaves as Manual(0, 0).
type Range struct {
	min  int64
	max  int64
	auto bool
}

// Auto returns a range resolved from the values themselves.
func Auto() Range { return Range{auto: true} }

// Manual returns a fixed range. The bounds are used verbatim, even when max
// is less than min.
func Manual(min, max int64) Range { return Range{min: min, max: max} }

// Resolve returns the bounds used for scaling values. An automatic range over
// an empty slice resolves to (0, 0).
func (r Range) Resolve(values []int64) (int64, int64) {
	if !r.auto {
		return r.min, r.max
	}
	if len(values) == 0 {
		return 0, 0
	}
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Options controls how values are rendered.
type Options struct {
	Range      Range
	ShowValue  bool        // prefix each bar with its right-aligned value
	ShowHeader bool        // emit a Min/Max header line before the bars
	Prefix     string      // literal text prepended to every bar line
	Fill       string      // bar fill character, empty means "*"
	Thresholds *Thresholds // color bucketing, nil for uncolored output
	Width      int         // terminal width, non-positive means 80
}

// A Line is a single line of rendered output. Color is ColorNone unless
// thresholds are configured.
type Line struct {
	Text  string
	Color Color
}

// Render renders values as horizontal bars, one line per value in input
// order, preceded by a header line when configured. Bars scale linearly
// within the resolved range across 90% of the terminal width. Values below
// the minimum render the marker "X" instead of a bar; values above the
// maximum are not clamped and overflow the width. A degenerate range
// (max <= min, which includes all-equal and empty auto-ranged input) renders
// every in-range bar at zero length with a color percentage of zero rather
// than failing.
func Render(values []int64, opts Options) []Line {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	w := width*90/100 - len(opts.Prefix)
	if w < 0 {
		w = 0
	}
	fill := opts.Fill
	if fill == "" {
		fill = fillChar
	}
	min, max := opts.Range.Resolve(values)
	lines := make([]Line, 0, len(values)+1)
	if opts.ShowHeader {
		lines = append(lines, Line{Text: header(min, max, w)})
	}
	valueRange := max - min
	var step float64
	if valueRange > 0 {
		step = float64(w) / float64(valueRange)
	}
	labelWidth := len(strconv.FormatInt(max, 10))
	for _, v := range values {
		var sb strings.Builder
		sb.WriteString(opts.Prefix)
		if opts.ShowValue {
			fmt.Fprintf(&sb, "%*d: ", labelWidth, v)
		}
		if v < min {
			sb.WriteString(marker)
		} else {
			n := int(math.Floor(float64(v-min) * step))
			sb.WriteString(strings.Repeat(fill, n))
		}
		lines = append(lines, Line{Text: sb.String(), Color: bucket(v, min, valueRange, opts.Thresholds)})
	}
	return lines
}

func header(min, max int64, w int) string {
	minText := strconv.FormatInt(min, 10)
	maxText := strconv.FormatInt(max, 10)
	// 10 = len("Min: ") + len("Max: ")
	pad := w - len(minText) - len(maxText) - 10
	if pad < 0 {
		pad = 0
	}
	return "Min: " + minText + strings.Repeat(" ", pad) + "Max: " + maxText
}

func bucket(v, min, valueRange int64, t *Thresholds) Color {
	if t == nil {
		return ColorNone
	}
	var pct int
	if valueRange > 0 {
		pct = int(math.Floor(float64(v-min) / float64(valueRange) * 100))
	}
	switch {
	case pct <= t.Low:
		return ColorRed
	case pct <= t.High:
		return ColorYellow
	default:
		return ColorGreen
	}
}
