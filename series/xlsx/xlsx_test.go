package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func testWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, cells := range rows {
		for j, cell := range cells {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue(sheet, name, cell); err != nil {
				t.Fatal(err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestRead(t *testing.T) {
	buf := testWorkbook(t, [][]interface{}{
		{"time", "value"},
		{"2024-06-01 08:30:00", 1337},
		{"2024-06-02", -42},
	})
	r := NewReader(buf)
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
	buf := testWorkbook(t, [][]interface{}{
		{120},
		{56},
		{34},
	})
	r := NewReader(buf)
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
	buf := testWorkbook(t, [][]interface{}{
		{"time", "value"},
		{"2024-06-01", "x"},
	})
	r := NewReader(buf)
	if _, err := r.Read(); err == nil {
		t.Fatal("want error for non-numeric value")
	}
}
