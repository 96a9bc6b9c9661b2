package models

import (
	"errors"
	"testing"
)

func TestStylist(t *testing.T) {
	s := Stylist{ID: "p1", Email: " Ana@Example.com ", Specialties: []string{"s1", "s3"}}

	t.Run("HasSpecialty", func(t *testing.T) {
		if !s.HasSpecialty("s3") {
			t.Error("expected s3 to be a specialty")
		}
		if s.HasSpecialty("s2") {
			t.Error("did not expect s2 to be a specialty")
		}
	})

	t.Run("SpecialtySet", func(t *testing.T) {
		set := s.SpecialtySet()
		if len(set) != 2 {
			t.Errorf("expected 2 entries, got %d", len(set))
		}
	})

	t.Run("MatchesEmail", func(t *testing.T) {
		if !s.MatchesEmail("ana@example.com") {
			t.Error("expected case-insensitive match")
		}
		if s.MatchesEmail("bea@example.com") {
			t.Error("did not expect match")
		}
	})
}

func TestSessionValues(t *testing.T) {
	s := Session{Token: "tok", Role: "estilista", Email: "ana@example.com"}

	values := s.Values()
	if len(values) != 3 {
		t.Errorf("expected 3 stored keys, got %d: %v", len(values), values)
	}
	if got := SessionFromValues(values); got != s {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, s)
	}
	if (Session{}).Authenticated() {
		t.Error("empty session should not be authenticated")
	}
	if !s.Authenticated() {
		t.Error("session with token should be authenticated")
	}
}

func TestExportJob(t *testing.T) {
	t.Run("lifecycle", func(t *testing.T) {
		job := NewExportJob("2025-03-01", "csv", 3)
		if job.Status() != ExportPending {
			t.Fatalf("expected pending, got %s", job.Status())
		}

		job.Start()
		if job.Status() != ExportRunning || job.StartedAt() == nil {
			t.Error("expected running job with start time")
		}

		job.SetCounts(3, 2, 1)
		job.Finish(nil)
		if job.Status() != ExportCompleted || job.CompletedAt() == nil {
			t.Error("expected completed job with completion time")
		}
		if err := job.Validate(); err != nil {
			t.Errorf("unexpected validation error: %v", err)
		}
	})

	t.Run("failure records message", func(t *testing.T) {
		job := NewExportJob("2025-03-01", "json", 1)
		job.Finish(errors.New("backend down"))
		if job.Status() != ExportFailed || job.ErrorMessage() != "backend down" {
			t.Errorf("expected failed job with message, got %s %q", job.Status(), job.ErrorMessage())
		}
	})

	t.Run("validation", func(t *testing.T) {
		tc := []struct {
			name string
			job  *ExportJob
		}{
			{"missing date", NewExportJob("", "csv", 1)},
			{"missing format", NewExportJob("2025-03-01", "", 1)},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if err := tt.job.Validate(); err == nil {
					t.Error("expected validation error")
				}
			})
		}

		job := NewExportJob("2025-03-01", "csv", 1)
		job.SetCounts(1, 1, 1)
		if err := job.Validate(); err == nil {
			t.Error("expected error when counts exceed total")
		}
	})
}
