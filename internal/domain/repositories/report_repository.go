package repositories

import "github.com/rios0rios0/provenance/internal/domain/entities"

// ReportRepository is the presentation sink receiving one result per branch, in branch order.
type ReportRepository interface {
	Report(result entities.BranchResolutionResult)
}
