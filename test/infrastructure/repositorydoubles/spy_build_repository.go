//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/provenance/internal/domain/entities"
	"github.com/rios0rios0/provenance/internal/domain/repositories"
)

// SpyBuildRepository implements repositories.BuildRepository as a configurable spy.
type SpyBuildRepository struct {
	// --- identity ---
	OrganizationName string

	// --- FindDefinitions ---
	Definitions    []entities.BuildDefinition
	DefinitionsErr error
	// spy: "project/name" requested
	DefinitionCalls []string

	// --- FindBuilds ---
	Builds    []entities.BuildRecord
	BuildsErr error
	// spy: "project/ids/buildNumber" requested
	BuildCalls []string
}

var _ repositories.BuildRepository = (*SpyBuildRepository)(nil)

func (s *SpyBuildRepository) Organization() string { return s.OrganizationName }

func (s *SpyBuildRepository) FindDefinitions(
	_ context.Context, project, name string,
) ([]entities.BuildDefinition, error) {
	s.DefinitionCalls = append(s.DefinitionCalls, project+"/"+name)
	return s.Definitions, s.DefinitionsErr
}

func (s *SpyBuildRepository) FindBuilds(
	_ context.Context, project string, definitionIDs []int, buildNumber string,
) ([]entities.BuildRecord, error) {
	s.BuildCalls = append(s.BuildCalls, fmt.Sprintf("%s/%v/%s", project, definitionIDs, buildNumber))
	return s.Builds, s.BuildsErr
}
