package json

import (
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	in := `[
  {"time": "2024-06-01 08:30:00", "value": 1337},
  {"time": "2024-06-02", "value": -42},
  {"value": 7}
]`
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
		{time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), -42},
		{time.Time{}, 7},
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

func TestReadNumbers(t *testing.T) {
	r := NewReader(strings.NewReader(`[120, 56, 34]`))
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
	}
}

func TestReadInvalid(t *testing.T) {
	var tests = []string{
		`{"value": 1}`,
		`[{"time": "01.06.2024", "value": 1}]`,
		`[true]`,
	}
	for i, in := range tests {
		r := NewReader(strings.NewReader(in))
		if _, err := r.Read(); err == nil {
			t.Errorf("#%d: want error for %q", i, in)
		}
	}
}
