package repositories

import (
	"context"

	"github.com/rios0rios0/provenance/internal/domain/entities"
)

// CredentialRepository turns a credential description into an access token.
// Failures wrap entities.ErrCredentialUnavailable.
type CredentialRepository interface {
	Resolve(ctx context.Context, credential entities.Credential) (string, error)
}
