package azuredevops

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/provenance/internal/domain/entities"
	"github.com/rios0rios0/provenance/internal/domain/repositories"
)

// repositoryNotFoundCode is the TFS error code for a missing or inaccessible repository.
const repositoryNotFoundCode = "TF401019"

// SourceControlRepository reads files through the Azure DevOps Git items API.
type SourceControlRepository struct {
	client     *Client
	project    string
	repository string
}

var _ repositories.SourceControlRepository = (*SourceControlRepository)(nil)

// NewSourceControlRepository creates a reader for the repository named in source.
func NewSourceControlRepository(source entities.SourceSettings, token string) repositories.SourceControlRepository {
	return &SourceControlRepository{
		client:     NewClient(source.Organization, token),
		project:    source.Project,
		repository: source.Repository,
	}
}

// Name returns the source identifier.
func (it *SourceControlRepository) Name() string {
	return entities.SourceTypeAzureDevOps
}

// GetFileContent returns the content of path at the tip of branch.
func (it *SourceControlRepository) GetFileContent(ctx context.Context, branch, path string) ([]byte, error) {
	itemPath := NormalizeItemPath(path)
	logger.Debugf("Fetching %s@%s from %s/%s/%s",
		itemPath, branch, it.client.Organization(), it.project, it.repository)

	content, err := it.client.GetItemContent(ctx, it.project, it.repository, itemPath, branch)
	if err == nil {
		return content, nil
	}

	if apiErr, ok := asAPIError(err); ok && apiErr.NotFound() {
		if strings.Contains(apiErr.Body, repositoryNotFoundCode) {
			return nil, fmt.Errorf("%w: %s/%s: %w", entities.ErrRepositoryNotFound, it.project, it.repository, err)
		}
		return nil, fmt.Errorf("%w: %s at %s: %w", entities.ErrFileNotFound, itemPath, branch, err)
	}
	return nil, fmt.Errorf("failed to fetch %s at %s: %w", itemPath, branch, err)
}

// NormalizeItemPath turns a repository-relative path into the rooted, slash-separated form the
// items API expects. Backslash separators are accepted.
func NormalizeItemPath(path string) string {
	normalized := strings.ReplaceAll(path, `\`, "/")
	return "/" + strings.TrimLeft(normalized, "/")
}
