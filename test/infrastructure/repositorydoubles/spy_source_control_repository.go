//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/provenance/internal/domain/entities"
	"github.com/rios0rios0/provenance/internal/domain/repositories"
)

// SpySourceControlRepository implements repositories.SourceControlRepository as a configurable spy.
type SpySourceControlRepository struct {
	// --- GetFileContent ---
	Files     map[string]map[string]string // branch -> path -> content
	BranchErr map[string]error             // branch -> error returned for every file

	// spy: "branch:path" in request order
	Requests []string
}

var _ repositories.SourceControlRepository = (*SpySourceControlRepository)(nil)

func (s *SpySourceControlRepository) Name() string { return "spy" }

func (s *SpySourceControlRepository) GetFileContent(_ context.Context, branch, path string) ([]byte, error) {
	s.Requests = append(s.Requests, branch+":"+path)
	if err, ok := s.BranchErr[branch]; ok {
		return nil, err
	}
	if content, ok := s.Files[branch][path]; ok {
		return []byte(content), nil
	}
	return nil, fmt.Errorf("%w: %s at %s", entities.ErrFileNotFound, path, branch)
}
