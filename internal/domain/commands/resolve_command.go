package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/provenance/internal/domain/entities"
	"github.com/rios0rios0/provenance/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/provenance/internal/infrastructure/repositories"
)

// Resolve is the interface for the resolve command.
type Resolve interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ResolveOptions) error
}

// ResolveOptions holds runtime options for a single run.
type ResolveOptions struct {
	Verbose  bool
	Branches []string // If set, replaces the configured branch list (CLI override)
}

// ResolveCommand reports, for every configured branch, the component package version and the
// builds that produced it. A failing branch is reported and never stops the run.
type ResolveCommand struct {
	sourceRegistry *infraRepos.SourceControlRegistry
	buildRegistry  *infraRepos.BuildRegistry
	credentials    repositories.CredentialRepository
	reporter       repositories.ReportRepository
	resolver       *BuildResolver
}

// NewResolveCommand creates a new ResolveCommand.
func NewResolveCommand(
	sourceRegistry *infraRepos.SourceControlRegistry,
	buildRegistry *infraRepos.BuildRegistry,
	credentials repositories.CredentialRepository,
	reporter repositories.ReportRepository,
	resolver *BuildResolver,
) *ResolveCommand {
	return &ResolveCommand{
		sourceRegistry: sourceRegistry,
		buildRegistry:  buildRegistry,
		credentials:    credentials,
		reporter:       reporter,
		resolver:       resolver,
	}
}

// Execute resolves every branch in order. Failures, including a document source that could not
// be set up, end up in the report of each affected branch and never stop the run.
func (it *ResolveCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ResolveOptions,
) error {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	settings = settings.WithBranches(opts.Branches)

	source, sourceErr := it.bindSource(ctx, settings.Source)
	var candidates []BuildCandidate
	if sourceErr != nil {
		logger.Errorf("Document source unavailable: %v", sourceErr)
	} else {
		candidates = it.bindCandidates(ctx, settings)
	}

	resolved := 0
	failed := 0
	for _, branch := range settings.Branches {
		logger.Infof("Resolving branch %q...", branch)

		var result entities.BranchResolutionResult
		if sourceErr != nil {
			result = entities.NewBranchFailure(branch, sourceErr)
		} else {
			result = it.resolveBranch(ctx, source, candidates, settings.Documents, branch)
		}
		if result.Err != nil {
			logger.Debugf("Branch %q failed: %v", branch, result.Err)
			failed++
		} else {
			resolved++
		}
		it.reporter.Report(result)
	}

	logger.Infof(
		"Resolve complete: %d branches processed, %d resolved, %d errors",
		len(settings.Branches), resolved, failed,
	)
	return nil
}

// resolveBranch runs the whole pipeline for one branch and captures any failure in the result.
func (it *ResolveCommand) resolveBranch(
	ctx context.Context,
	source repositories.SourceControlRepository,
	candidates []BuildCandidate,
	documents entities.DocumentSettings,
	branch string,
) entities.BranchResolutionResult {
	componentsDoc, err := source.GetFileContent(ctx, branch, documents.ComponentsPath)
	if err != nil {
		return entities.NewBranchFailure(branch, err)
	}
	packageConfigDoc, err := source.GetFileContent(ctx, branch, documents.PackageConfigPath)
	if err != nil {
		return entities.NewBranchFailure(branch, err)
	}

	ref, err := entities.ExtractManifestRef(componentsDoc, documents.Component, documents.ManifestExtension)
	if err != nil {
		return entities.NewBranchFailure(branch, err)
	}

	version, found, err := entities.ExtractPackageVersion(packageConfigDoc, documents.PackageID)
	if err != nil {
		return entities.NewBranchFailure(branch, err)
	}
	if !found {
		logger.Warnf("Package %q is not declared in %s on %q", documents.PackageID, documents.PackageConfigPath, branch)
	}

	buildNumber, err := entities.DeriveBuildNumber(ref.ArtifactURL)
	if err != nil {
		return entities.NewBranchFailure(branch, err)
	}
	logger.Debugf("Branch %q: manifest %s, build number %q", branch, ref.ManifestFileName, buildNumber)

	builds, err := it.resolver.Resolve(ctx, candidates, buildNumber, version)
	if err != nil {
		return entities.NewBranchFailure(branch, err)
	}
	return entities.NewBranchSuccess(branch, version, found, builds)
}

func (it *ResolveCommand) bindSource(
	ctx context.Context,
	settings entities.SourceSettings,
) (repositories.SourceControlRepository, error) {
	token := ""
	if settings.Type != entities.SourceTypeLocal {
		var err error
		token, err = it.credentials.Resolve(ctx, settings.Credential)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire source-control credential: %w", err)
		}
	}

	source, err := it.sourceRegistry.Get(settings, token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize source %q: %w", settings.Type, err)
	}
	logger.Infof("Reading documents from the %s source", source.Name())
	return source, nil
}

// bindCandidates creates one build client per candidate up front. Tokens are resolved once per
// distinct credential.
func (it *ResolveCommand) bindCandidates(ctx context.Context, settings *entities.Settings) []BuildCandidate {
	tokens := make(map[entities.Credential]string)
	tokenErrs := make(map[entities.Credential]error)

	candidates := make([]BuildCandidate, 0, len(settings.Candidates))
	for _, source := range settings.Candidates {
		credential := settings.CandidateCredential(source)

		token, cached := tokens[credential]
		tokenErr := tokenErrs[credential]
		if !cached && tokenErr == nil {
			token, tokenErr = it.credentials.Resolve(ctx, credential)
			if tokenErr != nil {
				tokenErrs[credential] = tokenErr
			} else {
				tokens[credential] = token
			}
		}
		if tokenErr != nil {
			logger.Warnf("No credential for %s: %v", source, tokenErr)
			candidates = append(candidates, BuildCandidate{Source: source, BindErr: tokenErr})
			continue
		}

		repository, err := it.buildRegistry.Get(source.Type, source.Organization, token)
		if err != nil {
			candidates = append(candidates, BuildCandidate{Source: source, BindErr: err})
			continue
		}
		candidates = append(candidates, BuildCandidate{Source: source, Repository: repository})
	}
	return candidates
}
