//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/provenance/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// BuildRecordBuilder helps create test build records with a fluent interface.
type BuildRecordBuilder struct {
	*testkit.BaseBuilder
	id             int
	projectID      string
	sourceVersion  string
	sourceBranch   string
	buildNumber    string
	definitionName string
	organization   string
}

// NewBuildRecordBuilder creates a new build record builder with sensible defaults.
func NewBuildRecordBuilder() *BuildRecordBuilder {
	b := &BuildRecordBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.defaults()
	return b
}

func (b *BuildRecordBuilder) defaults() {
	b.id = 1
	b.projectID = "project-1"
	b.sourceVersion = "0000000000000000000000000000000000000000"
	b.sourceBranch = "refs/heads/main"
	b.buildNumber = "20210115.3"
	b.definitionName = "Roslyn-Signed"
	b.organization = "dev.azure.com/devdiv"
}

// WithID sets the build id.
func (b *BuildRecordBuilder) WithID(id int) *BuildRecordBuilder {
	b.id = id
	return b
}

// WithSourceVersion sets the commit the build ran against.
func (b *BuildRecordBuilder) WithSourceVersion(sha string) *BuildRecordBuilder {
	b.sourceVersion = sha
	return b
}

// WithSourceBranch sets the full source ref.
func (b *BuildRecordBuilder) WithSourceBranch(ref string) *BuildRecordBuilder {
	b.sourceBranch = ref
	return b
}

// WithBuildNumber sets the build number.
func (b *BuildRecordBuilder) WithBuildNumber(number string) *BuildRecordBuilder {
	b.buildNumber = number
	return b
}

// WithOrganization sets the organization the build was found in.
func (b *BuildRecordBuilder) WithOrganization(org string) *BuildRecordBuilder {
	b.organization = org
	return b
}

// Build creates the build record (satisfies testkit.Builder interface).
func (b *BuildRecordBuilder) Build() interface{} {
	return b.BuildRecord()
}

// BuildRecord creates the build record with a concrete return type.
func (b *BuildRecordBuilder) BuildRecord() entities.BuildRecord {
	return entities.BuildRecord{
		ID:             b.id,
		ProjectID:      b.projectID,
		SourceVersion:  b.sourceVersion,
		SourceBranch:   b.sourceBranch,
		BuildNumber:    b.buildNumber,
		DefinitionName: b.definitionName,
		Organization:   b.organization,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *BuildRecordBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.defaults()
	return b
}

// Clone creates a deep copy of the BuildRecordBuilder.
func (b *BuildRecordBuilder) Clone() testkit.Builder {
	clone := *b
	clone.BaseBuilder = b.BaseBuilder.Clone().(*testkit.BaseBuilder)
	return &clone
}
