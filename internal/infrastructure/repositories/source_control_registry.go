package repositories

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rios0rios0/provenance/internal/domain/entities"
	domainRepos "github.com/rios0rios0/provenance/internal/domain/repositories"
)

// SourceControlFactory creates a SourceControlRepository for the configured source and token.
type SourceControlFactory func(source entities.SourceSettings, token string) domainRepos.SourceControlRepository

// SourceControlRegistry manages the registered document sources.
type SourceControlRegistry struct {
	factories map[string]SourceControlFactory
}

// NewSourceControlRegistry creates an empty source-control registry.
func NewSourceControlRegistry() *SourceControlRegistry {
	return &SourceControlRegistry{
		factories: make(map[string]SourceControlFactory),
	}
}

// Register adds a factory under the given source type (e.g. "azuredevops").
func (r *SourceControlRegistry) Register(sourceType string, factory SourceControlFactory) {
	r.factories[sourceType] = factory
}

// Get returns a configured source for the settings' type.
func (r *SourceControlRegistry) Get(
	source entities.SourceSettings,
	token string,
) (domainRepos.SourceControlRepository, error) {
	factory, ok := r.factories[source.Type]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %q (registered: %s)",
			source.Type, strings.Join(r.Names(), ", "))
	}
	return factory(source, token), nil
}

// Names returns the registered source types, sorted.
func (r *SourceControlRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
