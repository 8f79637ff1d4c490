package memory

import (
	"context"
	"testing"

	"bilty/internal/export"
)

func TestWriteReport(t *testing.T) {
	s := New()

	ref, err := s.WriteReport(context.Background(), export.Report{Name: "a"})
	if err != nil {
		t.Fatal(err)
	}
	if ref != "mem:1" {
		t.Errorf("ref = %q", ref)
	}
	if _, err := s.WriteReport(context.Background(), export.Report{Name: "b"}); err != nil {
		t.Fatal(err)
	}

	reports := s.Reports()
	if len(reports) != 2 || reports[1].Name != "b" {
		t.Errorf("reports = %+v", reports)
	}
}
