package repositories

import (
	"fmt"
	"sort"
	"strings"

	domainRepos "github.com/rios0rios0/provenance/internal/domain/repositories"
)

// BuildFactory is a constructor function that creates a BuildRepository for an organization.
type BuildFactory func(organization, token string) domainRepos.BuildRepository

// BuildRegistry manages the registered build system implementations.
type BuildRegistry struct {
	factories map[string]BuildFactory
}

// NewBuildRegistry creates an empty build registry.
func NewBuildRegistry() *BuildRegistry {
	return &BuildRegistry{
		factories: make(map[string]BuildFactory),
	}
}

// Register adds a build factory under the given type name (e.g. "azuredevops").
func (r *BuildRegistry) Register(name string, factory BuildFactory) {
	r.factories[name] = factory
}

// Get returns a build client of the given type for organization.
func (r *BuildRegistry) Get(name, organization, token string) (domainRepos.BuildRepository, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown build system type: %q (registered: %s)",
			name, strings.Join(r.Names(), ", "))
	}
	return factory(organization, token), nil
}

// Names returns the registered build system types, sorted.
func (r *BuildRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
