//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/provenance/internal/domain/entities"
	"github.com/rios0rios0/provenance/internal/domain/repositories"
)

// StubCredentialRepository returns the inline token of a credential, or Err.
type StubCredentialRepository struct {
	Err       error
	TokenErrs map[string]error // inline token -> error for that credential only
	Calls     []entities.Credential
}

var _ repositories.CredentialRepository = (*StubCredentialRepository)(nil)

func (s *StubCredentialRepository) Resolve(_ context.Context, credential entities.Credential) (string, error) {
	s.Calls = append(s.Calls, credential)
	if s.Err != nil {
		return "", s.Err
	}
	if err, ok := s.TokenErrs[credential.Token]; ok {
		return "", err
	}
	return credential.Token, nil
}
