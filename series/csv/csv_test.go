package csv

import (
	"strings"
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestRead(t *testing.T) {
	in := `time,value
2024-06-01 08:30:00,1337
2024-06-02,-42
`
	r := NewReader(strings.NewReader(in))
	ss, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}

	var tests = []struct {
		t     time.Time
		value int64
	}{
		{time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC), 1337},
		{date(2024, 6, 2), -42},
	}
	if len(ss) != len(tests) {
		t.Fatalf("want %d samples, got %d", len(tests), len(ss))
	}
	for i, tt := range tests {
		if !ss[i].Time.Equal(tt.t) {
			t.Errorf("#%d: want Time = %s, got %s", i, tt.t, ss[i].Time)
		}
		if ss[i].Value != tt.value {
			t.Errorf("#%d: want Value = %d, got %d", i, tt.value, ss[i].Value)
		}
	}
}

func TestReadValueColumn(t *testing.T) {
	in := `120
56
34
`
	r := NewReader(strings.NewReader(in))
	ss, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}

	want := []int64{120, 56, 34}
	if len(ss) != len(want) {
		t.Fatalf("want %d samples, got %d", len(want), len(ss))
	}
	for i, n := range want {
		if ss[i].Value != n {
			t.Errorf("#%d: want Value = %d, got %d", i, n, ss[i].Value)
		}
		if !ss[i].Time.IsZero() {
			t.Errorf("#%d: want zero Time, got %s", i, ss[i].Time)
		}
	}
}

func TestReadInvalid(t *testing.T) {
	in := `value
42
nope
`
	r := NewReader(strings.NewReader(in))
	if _, err := r.Read(); err == nil {
		t.Fatal("want error for non-numeric value past the header")
	}
}
