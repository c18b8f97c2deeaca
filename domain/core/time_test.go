package core

import (
	"testing"
	"time"
)

func TestMonthOfIgnoresDayAndTime(t *testing.T) {
	early := time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2023, time.March, 31, 23, 59, 59, 0, time.UTC)

	if MonthOf(early) != MonthOf(late) {
		t.Errorf("Expected %s and %s to share a month", early, late)
	}
	if got := MonthOf(late).Key(); got != "2023-03" {
		t.Errorf("Expected key 2023-03, got %s", got)
	}
}

func TestMonthOrdering(t *testing.T) {
	dec := Month{Year: 2022, Month: time.December}
	jan := Month{Year: 2023, Month: time.January}
	feb := Month{Year: 2023, Month: time.February}

	if !dec.Before(jan) || !jan.Before(feb) {
		t.Error("Expected chronological ordering across the year boundary")
	}
	if feb.Before(jan) || jan.Before(jan) {
		t.Error("Expected Before to be strict")
	}
}

func TestParseMonthRoundTrip(t *testing.T) {
	m, err := ParseMonth("2024-11")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m.Key() != "2024-11" {
		t.Errorf("Expected 2024-11, got %s", m.Key())
	}
	if !m.Start().Equal(time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected month start %s", m.Start())
	}

	if _, err := ParseMonth("November"); err == nil {
		t.Error("Expected error for malformed key")
	}
}

func TestFingerprinterMatchesNewHash(t *testing.T) {
	data := []byte("occurred_at,category\n2023-01-05,Theft\n")

	fp := NewFingerprinter()
	if _, err := fp.Write(data[:10]); err != nil {
		t.Fatal(err)
	}
	if _, err := fp.Write(data[10:]); err != nil {
		t.Fatal(err)
	}

	if fp.Sum() != NewHash(data) {
		t.Errorf("Expected streamed fingerprint to equal one-shot hash")
	}
	if len(fp.Sum().Short()) != 12 {
		t.Errorf("Expected 12-char short hash, got %q", fp.Sum().Short())
	}
}
