package repositories

import (
	"context"

	"github.com/rios0rios0/provenance/internal/domain/entities"
)

// BuildRepository abstracts the build system of one organization.
type BuildRepository interface {
	// Organization returns the organization this client talks to.
	Organization() string

	// FindDefinitions lists the pipeline definitions named name within project.
	FindDefinitions(ctx context.Context, project, name string) ([]entities.BuildDefinition, error)

	// FindBuilds lists the builds of the given definitions whose build number equals buildNumber.
	FindBuilds(
		ctx context.Context,
		project string,
		definitionIDs []int,
		buildNumber string,
	) ([]entities.BuildRecord, error)
}
