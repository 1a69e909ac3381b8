//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/provenance/internal/domain/entities"
	"github.com/rios0rios0/provenance/internal/domain/repositories"
)

// SpyReportRepository records every reported branch result in order.
type SpyReportRepository struct {
	Results []entities.BranchResolutionResult
}

var _ repositories.ReportRepository = (*SpyReportRepository)(nil)

func (s *SpyReportRepository) Report(result entities.BranchResolutionResult) {
	s.Results = append(s.Results, result)
}
