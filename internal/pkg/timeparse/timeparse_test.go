package timeparse

import (
	"testing"
	"time"
)

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		input string
		want  TimeOfDay
		ok    bool
	}{
		{"3:56PM", TimeOfDay{15, 56, 0}, true},
		{"3:56 pm", TimeOfDay{15, 56, 0}, true},
		{"12:17AM", TimeOfDay{0, 17, 0}, true},
		{"12:00PM", TimeOfDay{12, 0, 0}, true},
		{"9:30 AM", TimeOfDay{9, 30, 0}, true},
		{"3:56:30PM", TimeOfDay{15, 56, 30}, true},
		{"16:00:00", TimeOfDay{16, 0, 0}, true},
		{"16:00", TimeOfDay{16, 0, 0}, true},
		{"0:05", TimeOfDay{0, 5, 0}, true},
		{" 16:00 ", TimeOfDay{16, 0, 0}, true},
		{"24:00", TimeOfDay{}, false},
		{"16:60", TimeOfDay{}, false},
		{"13:00PM", TimeOfDay{}, false},
		{"0:00AM", TimeOfDay{}, false},
		{"noon", TimeOfDay{}, false},
		{"", TimeOfDay{}, false},
		{"  ", TimeOfDay{}, false},
	}
	for _, c := range cases {
		got, ok := ParseClockTime(c.input)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseClockTime(%q) = %v, %v; want %v, %v", c.input, got, ok, c.want, c.ok)
		}
	}
}

func TestParseHeaderDate(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"5/1/25", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"5/1/2025", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"Thu\n5/1/25", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"Thursday 5/1/25", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"5-1-25", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"2025-05-01", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"12/31/99", time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"Fri", time.Time{}, false},
		{"AM", time.Time{}, false},
		{"2/30/25", time.Time{}, false},
		{"13/1/25", time.Time{}, false},
		{"", time.Time{}, false},
		{"Total", time.Time{}, false},
	}
	for _, c := range cases {
		got, ok := ParseHeaderDate(c.input)
		if ok != c.ok || !got.Equal(c.want) {
			t.Errorf("ParseHeaderDate(%q) = %v, %v; want %v, %v", c.input, got, ok, c.want, c.ok)
		}
	}
}

func TestCombine(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	date := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	got := Combine(date, TimeOfDay{Hour: 16, Minute: 30}, loc)
	want := time.Date(2025, 5, 1, 16, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("Combine() = %v, want %v", got, want)
	}
}
