package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/TheArtVark/DisplayBars/chart"
)

var lineColors = map[chart.Color]*color.Color{
	chart.ColorRed:    forced(color.FgRed),
	chart.ColorYellow: forced(color.FgYellow),
	chart.ColorGreen:  forced(color.FgGreen),
}

// forced creates a color that renders even when stdout is not a TTY. Whether
// to color at all is decided by Options.colorize.
func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

func writeLines(w io.Writer, lines []chart.Line, colorize bool) error {
	for _, l := range lines {
		c, ok := lineColors[l.Color]
		if colorize && ok {
			if _, err := c.Fprintln(w, l.Text); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(w, l.Text); err != nil {
			return err
		}
	}
	return nil
}
