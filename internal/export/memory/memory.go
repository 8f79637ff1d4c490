// Package memory keeps written reports in process memory. Used by tests
// and as a no-op export backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"bilty/internal/export"
)

type Store struct {
	mu      sync.Mutex
	reports []export.Report
}

var _ export.ReportWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// WriteReport stores the report and returns a synthetic reference.
func (s *Store) WriteReport(_ context.Context, r export.Report) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, r)
	return fmt.Sprintf("mem:%d", len(s.reports)), nil
}

// Reports returns a copy of everything written so far.
func (s *Store) Reports() []export.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]export.Report(nil), s.reports...)
}
