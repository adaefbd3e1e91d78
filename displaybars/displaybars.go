package displaybars

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/TheArtVark/DisplayBars/chart"
	"github.com/TheArtVark/DisplayBars/series"
	seriescsv "github.com/TheArtVark/DisplayBars/series/csv"
	serieshtml "github.com/TheArtVark/DisplayBars/series/html"
	seriesjson "github.com/TheArtVark/DisplayBars/series/json"
	seriesxlsx "github.com/TheArtVark/DisplayBars/series/xlsx"
	"github.com/TheArtVark/DisplayBars/sql"
)

const (
	defaultConfig   = "~/.displaybarsrc"
	defaultDatabase = "~/.displaybars.db"
	defaultFill     = "*"
)

// Config represents a display configuration.
type Config struct {
	Database   string
	Fill       string
	Thresholds *chart.Thresholds
}

// DisplayBars implements storage and rendering defaults for sample series.
type DisplayBars struct {
	db         *sql.Client
	Fill       string
	Thresholds *chart.Thresholds
}

// A Series describes a stored series and statistics of its samples. Updated
// is the zero time for an empty series.
type Series struct {
	Name    string
	Samples int64
	Min     int64
	Max     int64
	Last    int64
	Updated time.Time
}

// Writes represents statistics of stored updates.
type Writes struct {
	Series int64
	Sample int64
}

func (c *Config) load() error {
	if c.Database == "" {
		c.Database = defaultDatabase
	}
	if c.Database[0] == '~' {
		if len(c.Database) > 1 && c.Database[1] != '/' {
			return fmt.Errorf("invalid database path: %q", c.Database)
		}
		user, err := user.Current()
		if err != nil {
			return err
		}
		c.Database = filepath.Join(user.HomeDir, c.Database[1:])
	}
	if c.Fill == "" {
		c.Fill = defaultFill
	}
	if utf8.RuneCountInString(c.Fill) != 1 {
		return fmt.Errorf("invalid fill: %q", c.Fill)
	}
	return nil
}

func readConfig(r io.Reader) (Config, error) {
	var conf Config
	_, err := toml.NewDecoder(r).Decode(&conf)
	return conf, err
}

// ReadConfig reads the configuration file located at name. A missing file
// yields the default configuration.
func ReadConfig(name string) (Config, error) {
	if name == defaultConfig {
		home := os.Getenv("HOME")
		name = filepath.Join(home, ".displaybarsrc")
	}
	f, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			var conf Config
			return conf, conf.load()
		}
		return Config{}, err
	}
	defer f.Close()
	conf, err := readConfig(f)
	if err != nil {
		return Config{}, err
	}
	if err := conf.load(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// FromConfig creates a new display from a configuration file located at name.
func FromConfig(name string) (*DisplayBars, error) {
	conf, err := ReadConfig(name)
	if err != nil {
		return nil, err
	}
	return New(conf)
}

// New creates a new display from the given configuration.
func New(conf Config) (*DisplayBars, error) {
	if err := conf.load(); err != nil {
		return nil, err
	}
	db, err := sql.New(conf.Database)
	if err != nil {
		return nil, err
	}
	return &DisplayBars{
		db:         db,
		Fill:       conf.Fill,
		Thresholds: conf.Thresholds,
	}, nil
}

// ReadFile reads samples from f using the named reader. The name auto picks
// a reader based on the file extension, falling back to plain text.
func ReadFile(name string, f *os.File) ([]series.Sample, error) {
	if name == "" || name == "auto" {
		name = readerFrom(f.Name())
	}
	var r series.Reader
	switch name {
	case "text":
		r = series.NewReader(f)
	case "csv":
		r = seriescsv.NewReader(f)
	case "json":
		r = seriesjson.NewReader(f)
	case "xlsx":
		r = seriesxlsx.NewReader(f)
	case "html":
		r = serieshtml.NewReader(f)
	default:
		return nil, fmt.Errorf("invalid reader: %q", name)
	}
	return r.Read()
}

func readerFrom(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	case ".xlsx":
		return "xlsx"
	case ".html", ".htm":
		return "html"
	}
	return "text"
}

// Record writes samples to the series seriesName, creating the series unless
// it exists. Samples without a time are stamped with now.
func (d *DisplayBars) Record(seriesName string, now time.Time, samples []series.Sample) (Writes, error) {
	var writes Writes
	n, err := d.db.AddSeries(seriesName)
	if err != nil {
		return writes, err
	}
	writes.Series = n
	ss := make([]sql.Sample, len(samples))
	for i, s := range samples {
		t := s.Time
		if t.IsZero() {
			t = now
		}
		ss[i] = sql.Sample{Time: t.Unix(), Value: s.Value}
	}
	n, err = d.db.AddSamples(seriesName, ss)
	writes.Sample = n
	return writes, err
}

// Samples reads samples from the series seriesName recorded between the
// times since and until. A zero time leaves that end of the interval open.
func (d *DisplayBars) Samples(seriesName string, since, until time.Time) ([]series.Sample, error) {
	if _, err := d.db.GetSeries(seriesName); err != nil {
		return nil, fmt.Errorf("invalid series: %q: %w", seriesName, err)
	}
	ss, err := d.db.SelectSamplesBetween(seriesName, since, until)
	if err != nil {
		return nil, err
	}
	samples := make([]series.Sample, len(ss))
	for i, s := range ss {
		samples[i] = series.Sample{Time: time.Unix(s.Time, 0).UTC(), Value: s.Value}
	}
	return samples, nil
}

// Series returns all stored series along with their sample statistics.
func (d *DisplayBars) Series() ([]Series, error) {
	ss, err := d.db.SelectSeries()
	if err != nil {
		return nil, err
	}
	series := make([]Series, len(ss))
	for i, s := range ss {
		var updated time.Time
		if s.Updated != 0 {
			updated = time.Unix(s.Updated, 0).UTC()
		}
		series[i] = Series{
			Name:    s.Name,
			Samples: s.Samples,
			Min:     s.Min,
			Max:     s.Max,
			Last:    s.Last,
			Updated: updated,
		}
	}
	return series, nil
}

// Export writes samples to writer w using CSV-encoding, one time,value row
// per sample. The timeLayout defines the format of the time field.
func (d *DisplayBars) Export(w io.Writer, samples []series.Sample, timeLayout string) error {
	csv := csv.NewWriter(w)
	for _, s := range samples {
		r := []string{s.Time.Format(timeLayout), strconv.FormatInt(s.Value, 10)}
		if err := csv.Write(r); err != nil {
			return err
		}
	}
	csv.Flush()
	return csv.Error()
}
