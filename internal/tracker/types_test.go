package tracker

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBook_ProgressPercent(t *testing.T) {
	pages := 200

	b := Book{Pages: &pages, CurrentPage: 50}
	if got := b.ProgressPercent(); got != 25 {
		t.Fatalf("ProgressPercent = %v, want 25", got)
	}

	// Whole percentages only; the remainder truncates.
	b.CurrentPage = 65
	if got := b.ProgressPercent(); got != 32 {
		t.Fatalf("ProgressPercent = %v, want 32", got)
	}

	b.CurrentPage = 999
	if got := b.ProgressPercent(); got != 100 {
		t.Fatalf("ProgressPercent = %v, want clamped to 100", got)
	}

	b.Pages = nil
	if got := b.ProgressPercent(); got != -1 {
		t.Fatalf("ProgressPercent = %v, want -1 without page count", got)
	}

	zero := 0
	b.Pages = &zero
	if got := b.ProgressPercent(); got != -1 {
		t.Fatalf("ProgressPercent = %v, want -1 for zero pages", got)
	}
}

func TestBook_ParsedTimestamps(t *testing.T) {
	b := Book{CreatedAt: "2024-03-01T10:30:00Z", UpdatedAt: "bogus"}

	want := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	if got := b.ParsedCreatedAt(); !got.Equal(want) {
		t.Fatalf("ParsedCreatedAt = %v, want %v", got, want)
	}
	if got := b.ParsedUpdatedAt(); !got.IsZero() {
		t.Fatalf("ParsedUpdatedAt = %v, want zero for unparseable input", got)
	}
}

func TestBook_DecodesNullableFields(t *testing.T) {
	raw := `{"id":"b1","title":"Dune","author":"Herbert","status":"reading",
		"pages":null,"current_page":0,"rating":null,"notes":null}`

	var b Book
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if b.Pages != nil || b.Rating != nil {
		t.Fatalf("book = %#v, want nil pages and rating", b)
	}
	if b.Notes != "" {
		t.Fatalf("Notes = %q, want empty for null", b.Notes)
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusLabel(StatusWantToRead); got != "Want to read" {
		t.Fatalf("StatusLabel = %q, want %q", got, "Want to read")
	}
	if got := StatusLabel("mystery"); got != "mystery" {
		t.Fatalf("StatusLabel = %q, want passthrough for unknown status", got)
	}
}
