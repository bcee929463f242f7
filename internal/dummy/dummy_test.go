package dummy

import (
	"testing"
	"time"
)

func TestGenerateCount(t *testing.T) {
	g := New(42, time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC))

	raws := g.Generate(100)
	if len(raws) != 100 {
		t.Fatalf("expected 100 postings, got %d", len(raws))
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	first := New(42, now).Generate(50)
	second := New(42, now).Generate(50)

	for i := range first {
		if first[i].CompanyName != second[i].CompanyName ||
			first[i].JobTitle != second[i].JobTitle ||
			first[i].Description != second[i].Description ||
			!first[i].PostedDate.Equal(second[i].PostedDate.Time) {
			t.Fatalf("record %d differs between runs:\n%+v\n%+v", i, first[i], second[i])
		}
	}
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	first := New(1, now).Generate(30)
	second := New(2, now).Generate(30)

	same := true
	for i := range first {
		if first[i].JobTitle != second[i].JobTitle || first[i].CompanyName != second[i].CompanyName {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds produced identical batches")
	}
}

func TestGenerateFieldsPopulated(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	earliest := now.AddDate(0, 0, -91)

	for _, raw := range New(7, now).Generate(100) {
		if raw.CompanyName == "" || raw.JobTitle == "" || raw.Description == "" {
			t.Fatalf("incomplete posting: %+v", raw)
		}
		if raw.URL == "" || raw.Source == "" || raw.Location == "" || raw.EmploymentType == "" {
			t.Fatalf("incomplete posting: %+v", raw)
		}
		if raw.PostedDate == nil {
			t.Fatalf("posting without a date: %+v", raw)
		}
		if raw.PostedDate.Before(earliest) || raw.PostedDate.After(now) {
			t.Fatalf("posted date %v outside the 90 day window", raw.PostedDate)
		}
	}
}
