package credentials

import (
	"context"
	"fmt"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/provenance/internal/domain/entities"
	"github.com/rios0rios0/provenance/internal/domain/repositories"
)

// SecretStore fetches a named secret from a managed secret store.
type SecretStore interface {
	GetSecret(ctx context.Context, vault, name string) (string, error)
}

// CredentialRepository resolves Key Vault secrets, token files and inline tokens.
type CredentialRepository struct {
	secrets SecretStore
}

var _ repositories.CredentialRepository = (*CredentialRepository)(nil)

// NewCredentialRepository creates a resolver backed by the given secret store.
func NewCredentialRepository(secrets SecretStore) *CredentialRepository {
	return &CredentialRepository{secrets: secrets}
}

// Resolve returns the access token described by credential. A Key Vault secret wins when both
// vault and secret name are set; otherwise the token is read from a file when it names one.
func (it *CredentialRepository) Resolve(ctx context.Context, credential entities.Credential) (string, error) {
	if credential.KeyVault != "" && credential.Secret != "" {
		logger.Debugf("Fetching secret %q from %s", credential.Secret, credential.KeyVault)
		value, err := it.secrets.GetSecret(ctx, credential.KeyVault, credential.Secret)
		if err != nil {
			return "", fmt.Errorf("%w: secret %q in %s: %w",
				entities.ErrCredentialUnavailable, credential.Secret, credential.KeyVault, err)
		}
		if value == "" {
			return "", fmt.Errorf("%w: secret %q in %s is empty",
				entities.ErrCredentialUnavailable, credential.Secret, credential.KeyVault)
		}
		return value, nil
	}

	token, err := readToken(credential.Token)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", fmt.Errorf(
			"%w: set a token (inline, ${ENV_VAR} or file path) or a key_vault and secret",
			entities.ErrCredentialUnavailable,
		)
	}
	return token, nil
}

// readToken returns raw unchanged unless it is the path of an existing file, in which case the
// trimmed file content is the token.
func readToken(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	info, statErr := os.Stat(raw)
	if statErr != nil || info.IsDir() {
		return raw, nil
	}

	data, readErr := os.ReadFile(raw)
	if readErr != nil {
		return "", fmt.Errorf("%w: failed to read token file %q: %w",
			entities.ErrCredentialUnavailable, raw, readErr)
	}
	logger.Infof("Read token from file %q", raw)
	return strings.TrimSpace(string(data)), nil
}
