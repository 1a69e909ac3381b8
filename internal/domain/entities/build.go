package entities

// BuildDefinition is a pipeline definition within a project of a build organization.
type BuildDefinition struct {
	ID        int
	Name      string
	ProjectID string
}

// BuildRecord is one build returned by a build system.
type BuildRecord struct {
	ID             int
	ProjectID      string
	SourceVersion  string // commit the build ran against
	SourceBranch   string // full ref name, e.g. refs/heads/main
	BuildNumber    string
	DefinitionName string
	Organization   string
}

// BuildCandidateSource is one place to look for a build, tried in declared order.
type BuildCandidateSource struct {
	Type         string      `yaml:"type"`
	Organization string      `yaml:"organization"`
	Project      string      `yaml:"project"`
	Definition   string      `yaml:"definition"`
	Credential   *Credential `yaml:"credential"`
}

// String identifies the candidate in logs and error messages.
func (s BuildCandidateSource) String() string {
	if s.Project == "" {
		return s.Organization + "/" + s.Definition
	}
	return s.Organization + "/" + s.Project + "/" + s.Definition
}

// LookupOutcome tags the result of querying a single candidate source.
type LookupOutcome int

const (
	// LookupFailed means the source raised an error (network, auth, definition lookup).
	LookupFailed LookupOutcome = iota
	// LookupEmpty means the source answered but had no build with the requested number.
	LookupEmpty
	// LookupFound means the source returned at least one build.
	LookupFound
)

// BuildLookup is the outcome of querying one candidate source.
type BuildLookup struct {
	Source  BuildCandidateSource
	Outcome LookupOutcome
	Builds  []BuildRecord
	Err     error
}

// NewBuildLookup classifies the raw result of a source query.
func NewBuildLookup(source BuildCandidateSource, builds []BuildRecord, err error) BuildLookup {
	switch {
	case err != nil:
		return BuildLookup{Source: source, Outcome: LookupFailed, Err: err}
	case len(builds) == 0:
		return BuildLookup{Source: source, Outcome: LookupEmpty}
	default:
		return BuildLookup{Source: source, Outcome: LookupFound, Builds: builds}
	}
}
