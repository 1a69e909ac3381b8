//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/provenance/internal/domain/commands"
	"github.com/rios0rios0/provenance/internal/domain/entities"
)

// StubResolveCommand is a stub implementation of commands.Resolve.
type StubResolveCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.ResolveOptions
}

var _ commands.Resolve = (*StubResolveCommand)(nil)

func (s *StubResolveCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.ResolveOptions,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteErr
}
