package scheduling

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseTime_Formats(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"14:30", 870},
		{"2:30 PM", 870},
		{"2:30pm", 870},
		{"02:30 am", 150},
		{"9:05", 545},
		{"09:05:59", 545},
		{"12:00 AM", 0},
		{"12:00 PM", 720},
		{"12:45 am", 45},
		{"11:59 PM", 1439},
		{"00:00", 0},
		{"23:59", 1439},
		{"2026-10-21T14:30:00Z", 870},
		{"2026-10-21T14:30:00.000Z", 870},
		{"2026-10-21T14:30:00+05:30", 870},
		{"2026-10-21T14:30", 870},
		{"2026-10-21 14:30:00", 870},
		{"Wed Oct 21 2026 14:30:00 GMT+0000 (Coordinated Universal Time)", 870},
		{"10/21/2026, 2:30:00 PM", 870},
		{"  14:30  ", 870},
	}
	for _, tc := range cases {
		got, err := ParseTime(tc.in)
		if err != nil {
			t.Errorf("ParseTime(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTime(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseTime_RejectsMalformed(t *testing.T) {
	for _, in := range []string{
		"", "   ", "24:00", "25:10", "12:60", "1430", "noon", "13:00 PM", "0:30 AM",
		"2026-10-21", "abc 9:00 xyz", "9:5",
	} {
		_, err := ParseTime(in)
		if err == nil {
			t.Errorf("ParseTime(%q): expected error", in)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseTime(%q): expected *ParseError, got %T", in, err)
		}
		if !errors.Is(err, ErrInvalidTime) {
			t.Errorf("ParseTime(%q): expected error to wrap ErrInvalidTime", in)
		}
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(870); got != "14:30" {
		t.Fatalf("expected 14:30, got %s", got)
	}
	if got := FormatTime(5); got != "00:05" {
		t.Fatalf("expected 00:05, got %s", got)
	}
	if got := TimeOfDay(870).Label(); got != "2:30 PM" {
		t.Fatalf("expected 2:30 PM, got %s", got)
	}
	if got := TimeOfDay(0).Label(); got != "12:00 AM" {
		t.Fatalf("expected 12:00 AM, got %s", got)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for m := TimeOfDay(0); m < MinutesPerDay; m++ {
		got, err := ParseTime(FormatTime(m))
		if err != nil {
			t.Fatalf("round trip of %d: %v", m, err)
		}
		if got != m {
			t.Fatalf("round trip of %d returned %d", m, got)
		}
	}
}

func TestTimeOfDayJSON(t *testing.T) {
	b, err := json.Marshal(TimeOfDay(615))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"10:15"` {
		t.Fatalf("expected \"10:15\", got %s", b)
	}

	var v struct {
		A TimeOfDay `json:"a"`
		B TimeOfDay `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":"2:30 PM","b":90}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.A != 870 || v.B != 90 {
		t.Fatalf("expected 870 and 90, got %d and %d", v.A, v.B)
	}
	if err := json.Unmarshal([]byte(`{"a":"25:00"}`), &v); err == nil {
		t.Fatal("expected error for 25:00")
	}
}

func TestParseDateAndWeekday(t *testing.T) {
	d, err := ParseDate("2026-10-21T00:00:00.000Z")
	if err != nil || d != "2026-10-21" {
		t.Fatalf("expected 2026-10-21, got %q (%v)", d, err)
	}
	if _, err := ParseDate("21/10/2026"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
	if _, err := ParseDate("2026-02-30"); err == nil {
		t.Fatal("expected error for impossible date")
	}
	wd, err := Weekday("2026-10-21")
	if err != nil || wd != time.Wednesday {
		t.Fatalf("expected Wednesday, got %v (%v)", wd, err)
	}
	wd, _ = Weekday("2026-10-18")
	if wd != time.Sunday {
		t.Fatalf("expected Sunday, got %v", wd)
	}
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]time.Weekday{
		"monday": time.Monday, "Wed": time.Wednesday, " FRIDAY ": time.Friday, "0": time.Sunday, "6": time.Saturday,
	}
	for in, want := range cases {
		got, ok := ParseWeekday(in)
		if !ok || got != want {
			t.Errorf("ParseWeekday(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}
	if _, ok := ParseWeekday("7"); ok {
		t.Error("expected 7 to be rejected")
	}
	if _, ok := ParseWeekday("someday"); ok {
		t.Error("expected someday to be rejected")
	}
}
