package entities

import "strings"

const (
	headsPrefix = "refs/heads/"
	refsPrefix  = "refs/"
)

// ReportEntry is one line group of a successful branch report.
type ReportEntry struct {
	PackageVersion string
	Commit         string
	SourceBranch   string
	BuildNumber    string
	BuildID        int
	Organization   string
	Definition     string
}

// BranchResolutionResult is either the resolved entries of a branch or the failure that stopped it.
type BranchResolutionResult struct {
	Branch         string
	PackageVersion string
	HasVersion     bool
	Entries        []ReportEntry
	Err            error
}

// Succeeded reports whether the branch produced build entries.
func (r BranchResolutionResult) Succeeded() bool {
	return r.Err == nil && len(r.Entries) > 0
}

// NewBranchSuccess builds a result with one entry per build, keeping build order.
func NewBranchSuccess(branch, packageVersion string, hasVersion bool, builds []BuildRecord) BranchResolutionResult {
	entries := make([]ReportEntry, 0, len(builds))
	for _, build := range builds {
		entries = append(entries, ReportEntry{
			PackageVersion: packageVersion,
			Commit:         build.SourceVersion,
			SourceBranch:   NormalizeBranch(build.SourceBranch),
			BuildNumber:    build.BuildNumber,
			BuildID:        build.ID,
			Organization:   build.Organization,
			Definition:     build.DefinitionName,
		})
	}
	return BranchResolutionResult{
		Branch:         branch,
		PackageVersion: packageVersion,
		HasVersion:     hasVersion,
		Entries:        entries,
	}
}

// NewBranchFailure builds a result carrying only the error.
func NewBranchFailure(branch string, err error) BranchResolutionResult {
	return BranchResolutionResult{Branch: branch, Err: err}
}

// NormalizeBranch strips the ref prefix from a source branch: refs/heads/main becomes main,
// refs/pull/1/merge becomes pull/1/merge. Bare names are returned unchanged.
func NormalizeBranch(ref string) string {
	if strings.HasPrefix(ref, headsPrefix) {
		return strings.TrimPrefix(ref, headsPrefix)
	}
	return strings.TrimPrefix(ref, refsPrefix)
}
