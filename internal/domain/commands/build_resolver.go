package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/provenance/internal/domain/entities"
	"github.com/rios0rios0/provenance/internal/domain/repositories"
)

const undeclaredVersion = "(not declared)"

// BuildCandidate is a candidate source bound to the client that queries it. BindErr is set
// when no client could be created (e.g. the credential was unavailable); such a candidate
// fails every lookup with that error.
type BuildCandidate struct {
	Source     entities.BuildCandidateSource
	Repository repositories.BuildRepository
	BindErr    error
}

// BuildResolver finds the builds carrying a build number across an ordered list of candidates.
type BuildResolver struct{}

// NewBuildResolver creates a BuildResolver.
func NewBuildResolver() *BuildResolver {
	return &BuildResolver{}
}

// Resolve tries candidates in order and returns the builds of the first one that has any.
// Failures of every candidate but the last are logged and skipped; a failure of the last
// candidate is returned as is. When every candidate answers without builds the result is
// entities.ErrBuildNotFound. Candidates are queried one at a time.
func (it *BuildResolver) Resolve(
	ctx context.Context,
	candidates []BuildCandidate,
	buildNumber string,
	packageVersion string,
) ([]entities.BuildRecord, error) {
	for i, candidate := range candidates {
		isLast := i == len(candidates)-1
		lookup := it.lookup(ctx, candidate, buildNumber)

		switch lookup.Outcome {
		case entities.LookupFound:
			logger.Debugf("Found %d build(s) %q in %s", len(lookup.Builds), buildNumber, lookup.Source)
			return lookup.Builds, nil
		case entities.LookupEmpty:
			logger.Debugf("No build %q in %s", buildNumber, lookup.Source)
		case entities.LookupFailed:
			if isLast {
				return nil, lookup.Err
			}
			logger.Debugf("Skipping %s: %v", lookup.Source, lookup.Err)
		}
	}

	if packageVersion == "" {
		packageVersion = undeclaredVersion
	}
	return nil, fmt.Errorf("%w: couldn't find build %q for package version: %s",
		entities.ErrBuildNotFound, buildNumber, packageVersion)
}

// lookup queries a single candidate: the named definition must exist exactly once, then its
// builds are filtered by build number.
func (it *BuildResolver) lookup(
	ctx context.Context,
	candidate BuildCandidate,
	buildNumber string,
) entities.BuildLookup {
	source := candidate.Source
	if candidate.BindErr != nil {
		return entities.NewBuildLookup(source, nil, candidate.BindErr)
	}

	logger.Debugf("Looking up build %q of %q in organization %s",
		buildNumber, source.Definition, candidate.Repository.Organization())
	definitions, err := candidate.Repository.FindDefinitions(ctx, source.Project, source.Definition)
	if err != nil {
		return entities.NewBuildLookup(source, nil, err)
	}

	switch len(definitions) {
	case 0:
		return entities.NewBuildLookup(source, nil, fmt.Errorf("%w: %q in %s",
			entities.ErrDefinitionNotFound, source.Definition, source))
	case 1:
	default:
		return entities.NewBuildLookup(source, nil, fmt.Errorf("%w: %d definitions named %q in %s",
			entities.ErrAmbiguousDefinition, len(definitions), source.Definition, source))
	}

	definition := definitions[0]
	project := definition.ProjectID
	if project == "" {
		project = source.Project
	}

	builds, err := candidate.Repository.FindBuilds(ctx, project, []int{definition.ID}, buildNumber)
	return entities.NewBuildLookup(source, builds, err)
}
