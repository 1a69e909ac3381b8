package repositories

import "context"

// SourceControlRepository reads files of the tracked repository at a branch revision.
type SourceControlRepository interface {
	// Name returns the source identifier (e.g. "azuredevops", "local").
	Name() string

	// GetFileContent returns the raw content of path at the tip of branch. It fails with
	// entities.ErrFileNotFound or entities.ErrRepositoryNotFound.
	GetFileContent(ctx context.Context, branch, path string) ([]byte, error)
}
