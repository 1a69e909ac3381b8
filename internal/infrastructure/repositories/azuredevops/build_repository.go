package azuredevops

import (
	"context"
	"fmt"

	"github.com/rios0rios0/provenance/internal/domain/entities"
	"github.com/rios0rios0/provenance/internal/domain/repositories"
)

// BuildRepository queries the build definitions and builds of one organization.
type BuildRepository struct {
	client *Client
}

var _ repositories.BuildRepository = (*BuildRepository)(nil)

// NewBuildRepository creates a build client for organization.
func NewBuildRepository(organization, token string) repositories.BuildRepository {
	return &BuildRepository{client: NewClient(organization, token)}
}

// Organization returns the organization identifier.
func (it *BuildRepository) Organization() string {
	return it.client.Organization()
}

// FindDefinitions lists the pipeline definitions named name within project.
func (it *BuildRepository) FindDefinitions(
	ctx context.Context,
	project, name string,
) ([]entities.BuildDefinition, error) {
	definitions, err := it.client.GetDefinitions(ctx, project, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list definitions %q in %s/%s: %w",
			name, it.client.Organization(), project, err)
	}

	result := make([]entities.BuildDefinition, 0, len(definitions))
	for _, d := range definitions {
		result = append(result, entities.BuildDefinition{
			ID:        d.ID,
			Name:      d.Name,
			ProjectID: d.Project.ID,
		})
	}
	return result, nil
}

// FindBuilds lists the builds of definitionIDs whose build number is buildNumber.
func (it *BuildRepository) FindBuilds(
	ctx context.Context,
	project string,
	definitionIDs []int,
	buildNumber string,
) ([]entities.BuildRecord, error) {
	builds, err := it.client.GetBuilds(ctx, project, definitionIDs, buildNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list builds %q in %s/%s: %w",
			buildNumber, it.client.Organization(), project, err)
	}

	result := make([]entities.BuildRecord, 0, len(builds))
	for _, b := range builds {
		result = append(result, entities.BuildRecord{
			ID:             b.ID,
			ProjectID:      b.Project.ID,
			SourceVersion:  b.SourceVersion,
			SourceBranch:   b.SourceBranch,
			BuildNumber:    b.BuildNumber,
			DefinitionName: b.Definition.Name,
			Organization:   it.client.Organization(),
		})
	}
	return result, nil
}
