package repositories

import (
	"os"

	"go.uber.org/dig"

	"github.com/rios0rios0/provenance/internal/domain/entities"
	domainRepos "github.com/rios0rios0/provenance/internal/domain/repositories"
	adoRepo "github.com/rios0rios0/provenance/internal/infrastructure/repositories/azuredevops"
	consoleRepo "github.com/rios0rios0/provenance/internal/infrastructure/repositories/console"
	credRepo "github.com/rios0rios0/provenance/internal/infrastructure/repositories/credentials"
	localRepo "github.com/rios0rios0/provenance/internal/infrastructure/repositories/localgit"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func() *SourceControlRegistry {
		reg := NewSourceControlRegistry()
		reg.Register(entities.SourceTypeAzureDevOps, adoRepo.NewSourceControlRepository)
		reg.Register(entities.SourceTypeLocal, localRepo.NewSourceControlRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() *BuildRegistry {
		reg := NewBuildRegistry()
		reg.Register(entities.SourceTypeAzureDevOps, adoRepo.NewBuildRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() (domainRepos.CredentialRepository, error) {
		vault, err := credRepo.NewDefaultKeyVault()
		if err != nil {
			return nil, err
		}
		return credRepo.NewCredentialRepository(vault), nil
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.ReportRepository {
		return consoleRepo.NewReportRepository(os.Stdout)
	}); err != nil {
		return err
	}

	return nil
}
