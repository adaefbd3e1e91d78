package html

import (
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/TheArtVark/DisplayBars/series"
	"github.com/pkg/errors"
)

type reader struct {
	rd io.Reader
}

func NewReader(rd io.Reader) series.Reader {
	return &reader{
		rd: rd,
	}
}

func (r *reader) Read() ([]series.Sample, error) {
	doc, err := goquery.NewDocumentFromReader(r.rd)
	if err != nil {
		return nil, err
	}
	var parseErr error
	var ss []series.Sample
	doc.Find("tr").EachWithBreak(func(i int, s *goquery.Selection) bool {
		vs := s.Find("td")
		if vs.Length() == 0 { // Header rows hold th cells
			return true
		}
		var sample series.Sample
		valueText := strings.TrimSpace(vs.Eq(0).Text())
		if vs.Length() > 1 {
			timeText := valueText
			time, err := series.ParseTime(timeText)
			if err != nil {
				parseErr = errors.Wrapf(err, "invalid time: %q", timeText)
				return false
			}
			sample.Time = time
			valueText = strings.TrimSpace(vs.Eq(1).Text())
		}
		value, err := strconv.ParseInt(valueText, 10, 64)
		if err != nil {
			parseErr = errors.Wrapf(err, "invalid value: %q", valueText)
			return false
		}
		sample.Value = value
		ss = append(ss, sample)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return ss, nil
}
