package schedule

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateRoundTripAcrossZones(t *testing.T) {
	// The bug class under guard: a late-evening wall clock west of UTC (or
	// early morning east of it) must not shift the calendar day.
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC-11", -11*3600),
		time.FixedZone("UTC+13", 13*3600),
	}
	for _, zone := range zones {
		wall := time.Date(2025, time.March, 10, 23, 30, 0, 0, zone)
		got := DateOf(wall)
		if got.String() != "2025-03-10" {
			t.Fatalf("zone %s: got %s, want 2025-03-10", zone, got)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year != 2025 || d.Month != time.March || d.Day != 10 {
		t.Fatalf("unexpected components: %+v", d)
	}
	if d.String() != "2025-03-10" {
		t.Fatalf("round trip: %s", d)
	}

	for _, bad := range []string{"", "10/03/2025", "2025-13-01", "2025-02-30"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestNewDateRejectsImpossibleDays(t *testing.T) {
	if _, err := NewDate(2025, time.February, 30); err == nil {
		t.Fatal("expected error for Feb 30")
	}
	if _, err := NewDate(2024, time.February, 29); err != nil {
		t.Fatalf("2024 is a leap year: %v", err)
	}
}

func TestDateOrdering(t *testing.T) {
	a, _ := NewDate(2025, time.March, 10)
	b, _ := NewDate(2025, time.March, 11)
	c, _ := NewDate(2025, time.April, 1)
	d, _ := NewDate(2026, time.January, 1)
	if !a.Before(b) || !b.Before(c) || !c.Before(d) {
		t.Fatal("expected ascending order a<b<c<d")
	}
	if b.Before(a) {
		t.Fatal("ordering not antisymmetric")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("08:45")
	if err != nil {
		t.Fatalf("ParseTimeOfDay: %v", err)
	}
	if got.Hour != 8 || got.Minute != 45 {
		t.Fatalf("unexpected components: %+v", got)
	}
	if got.String() != "08:45" {
		t.Fatalf("round trip: %s", got)
	}

	for _, bad := range []string{"8:45", "08-45", "24:00", "08:60", "", "08:451"} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Date Date      `json:"fecha"`
		Time TimeOfDay `json:"hora"`
	}
	raw := []byte(`{"fecha":"2025-03-10","hora":"09:15"}`)

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Date.String() != "2025-03-10" || p.Time.String() != "09:15" {
		t.Fatalf("unexpected payload: %+v", p)
	}

	encoded, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(encoded) != `{"fecha":"2025-03-10","hora":"09:15"}` {
		t.Fatalf("unexpected encoding: %s", encoded)
	}

	if err := json.Unmarshal([]byte(`{"fecha":"2025-3-10"}`), &p); err == nil {
		t.Fatal("expected error for non-padded date")
	}
}
