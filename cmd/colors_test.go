package cmd

import (
	"bytes"
	"testing"

	"github.com/TheArtVark/DisplayBars/chart"
)

func TestWriteLines(t *testing.T) {
	var tests = []struct {
		line     chart.Line
		colorize bool
		out      string
	}{
		{chart.Line{Text: "5: *****", Color: chart.ColorRed}, true, "\x1b[31m5: *****\x1b[0m\n"},
		{chart.Line{Text: "5: *****", Color: chart.ColorYellow}, true, "\x1b[33m5: *****\x1b[0m\n"},
		{chart.Line{Text: "5: *****", Color: chart.ColorGreen}, true, "\x1b[32m5: *****\x1b[0m\n"},
		// Header lines carry no color
		{chart.Line{Text: "Min: 0  Max: 10", Color: chart.ColorNone}, true, "Min: 0  Max: 10\n"},
		{chart.Line{Text: "5: *****", Color: chart.ColorRed}, false, "5: *****\n"},
		{chart.Line{Text: "5: *****", Color: chart.ColorNone}, false, "5: *****\n"},
	}
	for i, tt := range tests {
		var buf bytes.Buffer
		if err := writeLines(&buf, []chart.Line{tt.line}, tt.colorize); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != tt.out {
			t.Errorf("#%d: want %q, got %q", i, tt.out, got)
		}
	}
}

func TestColorize(t *testing.T) {
	var tests = []struct {
		color  string
		isPipe bool
		out    bool
	}{
		{"always", true, true},
		{"always", false, true},
		{"never", false, false},
		{"never", true, false},
		{"auto", false, true},
		{"auto", true, false},
	}
	for i, tt := range tests {
		opts := Options{Color: tt.color, IsPipe: tt.isPipe}
		if got := opts.colorize(); got != tt.out {
			t.Errorf("#%d: colorize() with Color = %q, IsPipe = %t: want %t, got %t", i, tt.color, tt.isPipe, got, tt.out)
		}
	}
}
