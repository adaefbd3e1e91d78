package main

import (
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/TheArtVark/DisplayBars/cmd"
	"github.com/TheArtVark/DisplayBars/terminal"
)

func main() {
	p := flags.NewParser(nil, flags.HelpFlag|flags.PassDoubleDash)
	log := log.New(os.Stderr, "displaybars: ", 0)

	opts := cmd.Options{
		IsPipe:    !terminal.IsTerminal(os.Stdout),
		TermWidth: terminal.Width(os.Stdout),
		Writer:    os.Stdout,
		Log:       log,
	}

	render := cmd.Render{Options: opts}
	if _, err := p.AddCommand("render", "Render a bar chart", "Renders values given as arguments, or read from a file, as a bar chart.", &render); err != nil {
		log.Fatal(err)
	}

	record := cmd.Record{Options: opts}
	if _, err := p.AddCommand("record", "Record values", "Records values to a series in the database.", &record); err != nil {
		log.Fatal(err)
	}

	ls := cmd.Ls{Options: opts}
	if _, err := p.AddCommand("ls", "List series", "Lists the series stored in the database.", &ls); err != nil {
		log.Fatal(err)
	}

	show := cmd.Show{Options: opts}
	if _, err := p.AddCommand("show", "Show a series", "Renders samples from a stored series as a bar chart.", &show); err != nil {
		log.Fatal(err)
	}

	export := cmd.Export{Options: opts}
	if _, err := p.AddCommand("export", "Export samples", "Writes samples from a stored series as CSV.", &export); err != nil {
		log.Fatal(err)
	}

	if _, err := p.Parse(); err != nil {
		log.Fatal(err)
	}
}
