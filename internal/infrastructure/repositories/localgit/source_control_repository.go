package localgit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/provenance/internal/domain/entities"
	"github.com/rios0rios0/provenance/internal/domain/repositories"
)

const defaultRemote = "origin"

// SourceControlRepository reads files from a local clone without touching its worktree.
type SourceControlRepository struct {
	path string
}

var _ repositories.SourceControlRepository = (*SourceControlRepository)(nil)

// NewSourceControlRepository creates a reader for the clone at source.Path. The token is unused.
func NewSourceControlRepository(source entities.SourceSettings, _ string) repositories.SourceControlRepository {
	return &SourceControlRepository{path: source.Path}
}

// Name returns the source identifier.
func (it *SourceControlRepository) Name() string {
	return entities.SourceTypeLocal
}

// GetFileContent returns the content of path in the commit at the tip of branch. Local heads
// win over the origin remote-tracking ref.
func (it *SourceControlRepository) GetFileContent(_ context.Context, branch, path string) ([]byte, error) {
	repo, err := git.PlainOpen(it.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", entities.ErrRepositoryNotFound, it.path, err)
	}

	ref, err := resolveBranch(repo, branch)
	if err != nil {
		return nil, err
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s of %q: %w", ref.Hash(), branch, err)
	}

	filePath := normalizePath(path)
	logger.Debugf("Reading %s@%s (%s) from %s", filePath, branch, ref.Hash(), it.path)

	file, err := commit.File(filePath)
	if errors.Is(err, object.ErrFileNotFound) {
		return nil, fmt.Errorf("%w: %s at %s", entities.ErrFileNotFound, filePath, branch)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s at %s: %w", filePath, branch, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s at %s: %w", filePath, branch, err)
	}
	return []byte(contents), nil
}

func resolveBranch(repo *git.Repository, branch string) (*plumbing.Reference, error) {
	names := []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(branch),
		plumbing.NewRemoteReferenceName(defaultRemote, branch),
	}
	for _, name := range names {
		ref, err := repo.Reference(name, true)
		if err == nil {
			return ref, nil
		}
		if !errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, fmt.Errorf("failed to resolve %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("%w: branch %q not found locally or on %s", entities.ErrRepositoryNotFound, branch, defaultRemote)
}

// normalizePath converts a repository path to the slash-separated, unrooted form git trees use.
func normalizePath(path string) string {
	return strings.TrimLeft(strings.ReplaceAll(path, `\`, "/"), "/")
}
