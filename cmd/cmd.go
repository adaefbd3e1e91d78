package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/TheArtVark/DisplayBars/chart"
	"github.com/TheArtVark/DisplayBars/displaybars"
	"github.com/TheArtVark/DisplayBars/series"
	"github.com/TheArtVark/DisplayBars/timeutil"
)

// Options represents command line options that are shared across sub-commands.
type Options struct {
	Config    string `short:"f" long:"config" description:"Config file" value-name:"FILE" default:"~/.displaybarsrc"`
	Color     string `short:"c" long:"color" description:"When to use colors in output. Default is to use colors if stdout is a TTY" default:"auto" choice:"always" choice:"never" choice:"auto"`
	IsPipe    bool
	TermWidth int
	Writer    io.Writer
	Log       *log.Logger
}

// Render represents options for the render sub-command.
type Render struct {
	Options
	Minimum    *int64 `short:"n" long:"minimum" description:"Lower bound of the value range" value-name:"N"`
	Maximum    *int64 `short:"x" long:"maximum" description:"Upper bound of the value range" value-name:"N"`
	AutoRange  bool   `short:"a" long:"auto-range" description:"Derive the value range from the values themselves"`
	ShowValue  bool   `short:"d" long:"display-value" description:"Prefix each bar with its value"`
	ShowHeader bool   `short:"H" long:"display-header" description:"Print the range bounds above the bars"`
	Prefix     string `short:"p" long:"prefix" description:"Text prepended to every bar line" value-name:"TEXT"`
	Thresholds string `short:"t" long:"color-display" description:"Color bars by their percentage of the range" value-name:"LOW,HIGH"`
	Width      int    `short:"w" long:"width" description:"Terminal width to render for. Default is the detected width" value-name:"N"`
	Input      string `short:"i" long:"input" description:"File to read values from. - means standard input" value-name:"FILE"`
	Reader     string `short:"r" long:"reader" description:"Name of reader to use for input file" choice:"auto" choice:"text" choice:"csv" choice:"json" choice:"xlsx" choice:"html" default:"auto"`
	Args       struct {
		Values []int64 `description:"Values to render" positional-arg-name:"value"`
	} `positional-args:"yes"`
}

// Record represents options for the record sub-command.
type Record struct {
	Options
	Input  string `short:"i" long:"input" description:"File to read values from. - means standard input" value-name:"FILE"`
	Reader string `short:"r" long:"reader" description:"Name of reader to use for input file" choice:"auto" choice:"text" choice:"csv" choice:"json" choice:"xlsx" choice:"html" default:"auto"`
	Args   struct {
		Series string  `description:"Name of the series to record to" positional-arg-name:"series" required:"yes"`
		Values []int64 `description:"Values to record" positional-arg-name:"value"`
	} `positional-args:"yes"`
}

// Ls represents options for the ls sub-command.
type Ls struct {
	Options
}

// Show represents options for the show sub-command.
type Show struct {
	Options
	Minimum    *int64 `short:"n" long:"minimum" description:"Lower bound of the value range" value-name:"N"`
	Maximum    *int64 `short:"x" long:"maximum" description:"Upper bound of the value range" value-name:"N"`
	AutoRange  bool   `short:"a" long:"auto-range" description:"Derive the value range from the values themselves"`
	ShowValue  bool   `short:"d" long:"display-value" description:"Prefix each bar with its value"`
	ShowHeader bool   `short:"H" long:"display-header" description:"Print the range bounds above the bars"`
	Prefix     string `short:"p" long:"prefix" description:"Text prepended to every bar line" value-name:"TEXT"`
	Thresholds string `short:"t" long:"color-display" description:"Color bars by their percentage of the range" value-name:"LOW,HIGH"`
	Width      int    `short:"w" long:"width" description:"Terminal width to render for. Default is the detected width" value-name:"N"`
	Since      string `short:"s" long:"since" description:"Only show samples recorded since this date" value-name:"YYYY-MM-DD"`
	Until      string `short:"u" long:"until" description:"Only show samples recorded until this date" value-name:"YYYY-MM-DD"`
	Month      int    `short:"m" long:"month" description:"Only show samples recorded in this month of the current year" value-name:"M"`
	GroupBy    string `short:"g" long:"group-by" description:"Group samples into time buckets" choice:"hour" choice:"day" choice:"month"`
	Aggregate  string `short:"A" long:"aggregate" description:"Aggregation to apply to each bucket" choice:"min" choice:"max" choice:"sum" choice:"avg" choice:"last" default:"max"`
	Args       struct {
		Series string `description:"Name of the series to show" positional-arg-name:"series"`
	} `positional-args:"yes" required:"yes"`
}

// Export represents options for the export sub-command.
type Export struct {
	Options
	Since string `short:"s" long:"since" description:"Only export samples recorded since this date" value-name:"YYYY-MM-DD"`
	Until string `short:"u" long:"until" description:"Only export samples recorded until this date" value-name:"YYYY-MM-DD"`
	Args  struct {
		Series string `description:"Name of the series to export" positional-arg-name:"series"`
	} `positional-args:"yes" required:"yes"`
}

// NewLogger creates a new preconfigured logger.
func NewLogger(w io.Writer) *log.Logger { return log.New(w, "displaybars: ", 0) }

func (o *Options) colorize() bool {
	switch o.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return !o.IsPipe
}

func (o *Options) width(flag int) int {
	if flag > 0 {
		return flag
	}
	return o.TermWidth
}

func parseThresholds(s string) (*chart.Thresholds, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid thresholds: %q", s)
	}
	low, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid thresholds: %q", s)
	}
	high, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid thresholds: %q", s)
	}
	return &chart.Thresholds{Low: low, High: high}, nil
}

func readInput(input, reader string) ([]series.Sample, error) {
	if input == "-" {
		return displaybars.ReadFile(reader, os.Stdin)
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return displaybars.ReadFile(reader, f)
}

// Execute renders values given on the command line, or read from a file, as a
// bar chart.
func (r *Render) Execute(args []string) error {
	rng, err := r.rangeOptions()
	if err != nil {
		return err
	}

	thresholds, err := parseThresholds(r.Thresholds)
	if err != nil {
		return err
	}

	conf, err := displaybars.ReadConfig(r.Config)
	if err != nil {
		return err
	}
	if thresholds == nil {
		thresholds = conf.Thresholds
	}

	values := r.Args.Values
	if r.Input != "" {
		if len(values) > 0 {
			return fmt.Errorf("--input cannot be combined with value arguments")
		}
		samples, err := readInput(r.Input, r.Reader)
		if err != nil {
			return err
		}
		values = series.Values(samples)
	}

	opts := chart.Options{
		Range:      rng,
		ShowValue:  r.ShowValue,
		ShowHeader: r.ShowHeader,
		Prefix:     r.Prefix,
		Fill:       conf.Fill,
		Thresholds: thresholds,
		Width:      r.width(r.Width),
	}
	return writeLines(r.Writer, chart.Render(values, opts), r.colorize())
}

func (r *Render) rangeOptions() (chart.Range, error) {
	manual := r.Minimum != nil || r.Maximum != nil
	if r.AutoRange && manual {
		return chart.Range{}, fmt.Errorf("--auto-range cannot be combined with --minimum or --maximum")
	}
	if r.AutoRange {
		return chart.Auto(), nil
	}
	if r.Minimum == nil || r.Maximum == nil {
		return chart.Range{}, fmt.Errorf("either --auto-range or both --minimum and --maximum must be given")
	}
	return chart.Manual(*r.Minimum, *r.Maximum), nil
}

// Execute records values to a series, creating the series if necessary.
func (r *Record) Execute(args []string) error {
	d, err := displaybars.FromConfig(r.Config)
	if err != nil {
		return err
	}

	var samples []series.Sample
	if r.Input != "" {
		if len(r.Args.Values) > 0 {
			return fmt.Errorf("--input cannot be combined with value arguments")
		}
		r.Log.Printf("reading samples from %s", r.Input)
		samples, err = readInput(r.Input, r.Reader)
		if err != nil {
			return err
		}
	} else {
		for _, v := range r.Args.Values {
			samples = append(samples, series.Sample{Value: v})
		}
	}

	clock := newClock()
	writes, err := d.Record(r.Args.Series, clock.now(), samples)
	r.Log.Printf("created %d new series", writes.Series)
	r.Log.Printf("recorded %d new sample(s) out of %d total", writes.Sample, len(samples))
	if err != nil {
		return err
	}

	return nil
}

// Execute lists stored series.
func (l *Ls) Execute(args []string) error {
	d, err := displaybars.FromConfig(l.Config)
	if err != nil {
		return err
	}

	ss, err := d.Series()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(l.Writer)
	table.SetHeader([]string{"Name", "Samples", "Min", "Max", "Last", "Updated"})
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		0,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		0,
	})
	for _, s := range ss {
		var updated string
		if !s.Updated.IsZero() {
			updated = s.Updated.Format(series.TimeLayout)
		}
		table.Append([]string{
			s.Name,
			strconv.FormatInt(s.Samples, 10),
			strconv.FormatInt(s.Min, 10),
			strconv.FormatInt(s.Max, 10),
			strconv.FormatInt(s.Last, 10),
			updated,
		})
	}
	table.Render()

	return nil
}

// Execute renders samples from a stored series as a bar chart.
func (s *Show) Execute(args []string) error {
	d, err := displaybars.FromConfig(s.Config)
	if err != nil {
		return err
	}

	clock := newClock()
	var since, until time.Time
	if s.Month != 0 {
		if s.Since != "" || s.Until != "" {
			return fmt.Errorf("--month cannot be combined with --since or --until")
		}
		since, until, err = clock.monthRange(s.Month)
	} else {
		since, until, err = clock.timeRange(s.Since, s.Until)
	}
	if err != nil {
		return err
	}

	rng, err := s.rangeOptions()
	if err != nil {
		return err
	}

	thresholds, err := parseThresholds(s.Thresholds)
	if err != nil {
		return err
	}
	if thresholds == nil {
		thresholds = d.Thresholds
	}

	samples, err := d.Samples(s.Args.Series, since, until)
	if err != nil {
		return err
	}

	s.Log.Printf("displaying series %s between %s and %s", s.Args.Series, since.Format(timeLayout), until.Format(timeLayout))
	if len(samples) == 0 {
		s.Log.Printf("0 samples found")
		return nil
	}

	values := series.Values(samples)
	if s.GroupBy != "" {
		values, err = s.groupValues(samples)
		if err != nil {
			return err
		}
	}

	opts := chart.Options{
		Range:      rng,
		ShowValue:  s.ShowValue,
		ShowHeader: s.ShowHeader,
		Prefix:     s.Prefix,
		Fill:       d.Fill,
		Thresholds: thresholds,
		Width:      s.width(s.Width),
	}
	return writeLines(s.Writer, chart.Render(values, opts), s.colorize())
}

func (s *Show) rangeOptions() (chart.Range, error) {
	manual := s.Minimum != nil || s.Maximum != nil
	if s.AutoRange && manual {
		return chart.Range{}, fmt.Errorf("--auto-range cannot be combined with --minimum or --maximum")
	}
	if !manual {
		return chart.Auto(), nil
	}
	if s.Minimum == nil || s.Maximum == nil {
		return chart.Range{}, fmt.Errorf("both --minimum and --maximum must be given")
	}
	return chart.Manual(*s.Minimum, *s.Maximum), nil
}

func (s *Show) groupValues(samples []series.Sample) ([]int64, error) {
	var timeFn func(time.Time) time.Time
	switch s.GroupBy {
	case "hour":
		timeFn = timeutil.TruncateHour
	case "day":
		timeFn = timeutil.TruncateDay
	case "month":
		timeFn = timeutil.TruncateMonth
	default:
		return nil, fmt.Errorf("invalid group: %q", s.GroupBy)
	}

	var aggregate func(*series.Bucket) int64
	switch s.Aggregate {
	case "min":
		aggregate = (*series.Bucket).Min
	case "max", "":
		aggregate = (*series.Bucket).Max
	case "sum":
		aggregate = (*series.Bucket).Sum
	case "avg":
		aggregate = (*series.Bucket).Avg
	case "last":
		aggregate = (*series.Bucket).Last
	default:
		return nil, fmt.Errorf("invalid aggregation: %q", s.Aggregate)
	}

	buckets := series.GroupFunc(samples, timeFn)
	values := make([]int64, len(buckets))
	for i := range buckets {
		values[i] = aggregate(&buckets[i])
	}
	return values, nil
}

// Execute writes samples from a stored series as CSV.
func (e *Export) Execute(args []string) error {
	d, err := displaybars.FromConfig(e.Config)
	if err != nil {
		return err
	}

	clock := newClock()
	since, until, err := clock.timeRange(e.Since, e.Until)
	if err != nil {
		return err
	}

	samples, err := d.Samples(e.Args.Series, since, until)
	if err != nil {
		return err
	}

	return d.Export(e.Writer, samples, series.TimeLayout)
}
