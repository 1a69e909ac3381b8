//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/provenance/internal/domain/entities"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "provenance.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
source:
  organization: devdiv
  project: DevDiv
  repository: VS
  credential:
    token: inline-pat
branches:
  - main
  - rel/d16.9
candidates:
  - organization: devdiv
    definition: Roslyn-Signed
  - organization: dnceng
    project: internal
    definition: dotnet-roslyn-official
    credential:
      key_vault: roslyninfra
      secret: dn-bot-devdiv-build-rw
`

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestNewSettings(t *testing.T) {
	t.Run("should apply defaults to a minimal configuration", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, minimalConfig)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.SourceTypeAzureDevOps, settings.Source.Type)
		assert.Equal(t, ".corext/Configs/dotnetcodeanalysis-components.json", settings.Documents.ComponentsPath)
		assert.Equal(t, "Microsoft.CodeAnalysis.LanguageServices", settings.Documents.Component)
		assert.Equal(t, ".corext/Configs/default.config", settings.Documents.PackageConfigPath)
		assert.Equal(t, "VS.ExternalAPIs.Roslyn", settings.Documents.PackageID)
		assert.Equal(t, entities.DefaultManifestExtension, settings.Documents.ManifestExtension)
		assert.Equal(t, []string{"main", "rel/d16.9"}, settings.Branches)
		require.Len(t, settings.Candidates, 2)
		assert.Equal(t, "DevDiv", settings.Candidates[0].Project)
		assert.Equal(t, "internal", settings.Candidates[1].Project)
		assert.Equal(t, entities.SourceTypeAzureDevOps, settings.Candidates[1].Type)
	})

	t.Run("should let candidates inherit the source credential", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, minimalConfig)
		settings, err := entities.NewSettings(path)
		require.NoError(t, err)

		// when
		first := settings.CandidateCredential(settings.Candidates[0])
		second := settings.CandidateCredential(settings.Candidates[1])

		// then
		assert.Equal(t, entities.Credential{Token: "inline-pat"}, first)
		assert.Equal(t, entities.Credential{KeyVault: "roslyninfra", Secret: "dn-bot-devdiv-build-rw"}, second)
	})

	t.Run("should expand environment variables in credentials", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("TEST_PROVENANCE_PAT", "from-env")
		path := writeConfig(t, `
source:
  organization: devdiv
  project: DevDiv
  repository: VS
  credential:
    token: ${TEST_PROVENANCE_PAT}
branches: [main]
candidates:
  - organization: devdiv
    definition: Roslyn-Signed
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "from-env", settings.Source.Credential.Token)
	})

	t.Run("should accept a local source with a path", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, `
source:
  type: local
  path: /src/vs
branches: [main]
candidates:
  - organization: devdiv
    project: DevDiv
    definition: Roslyn-Signed
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.SourceTypeLocal, settings.Source.Type)
	})

	t.Run("should fail when the file does not exist", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.NewSettings(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("should fail on invalid YAML", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "source: [unclosed")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	valid := func() *entities.Settings {
		return &entities.Settings{
			Source: entities.SourceSettings{
				Type: entities.SourceTypeAzureDevOps, Organization: "o", Project: "p", Repository: "r",
			},
			Documents: entities.DocumentSettings{
				ComponentsPath: "c.json", Component: "C", PackageConfigPath: "d.config", PackageID: "P",
			},
			Branches:   []string{"main"},
			Candidates: []entities.BuildCandidateSource{{Organization: "o", Definition: "d"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(s *entities.Settings)
		wantErr string
	}{
		{name: "should accept a complete configuration", mutate: func(*entities.Settings) {}},
		{
			name:    "should require a branch",
			mutate:  func(s *entities.Settings) { s.Branches = nil },
			wantErr: "at least one branch",
		},
		{
			name:    "should reject a blank branch",
			mutate:  func(s *entities.Settings) { s.Branches = []string{"main", " "} },
			wantErr: "branches[1] is empty",
		},
		{
			name:    "should reject an unknown source type",
			mutate:  func(s *entities.Settings) { s.Source.Type = "svn" },
			wantErr: "unknown source type",
		},
		{
			name:    "should require the repository of an Azure DevOps source",
			mutate:  func(s *entities.Settings) { s.Source.Repository = "" },
			wantErr: "source.repository",
		},
		{
			name:    "should require the path of a local source",
			mutate:  func(s *entities.Settings) { s.Source.Type = entities.SourceTypeLocal },
			wantErr: "source.path",
		},
		{
			name:    "should require a candidate",
			mutate:  func(s *entities.Settings) { s.Candidates = nil },
			wantErr: "at least one build candidate",
		},
		{
			name:    "should require the definition of a candidate",
			mutate:  func(s *entities.Settings) { s.Candidates[0].Definition = "" },
			wantErr: "candidates[0].definition",
		},
		{
			name:    "should require the document lookup keys",
			mutate:  func(s *entities.Settings) { s.Documents.PackageID = "" },
			wantErr: "documents",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			settings := valid()
			tt.mutate(settings)

			// when
			err := settings.Validate()

			// then
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSettingsWithBranches(t *testing.T) {
	t.Parallel()

	t.Run("should replace the branches without touching the original", func(t *testing.T) {
		t.Parallel()

		// given
		settings := &entities.Settings{Branches: []string{"main"}}

		// when
		overridden := settings.WithBranches([]string{"rel/a", "rel/b"})

		// then
		assert.Equal(t, []string{"rel/a", "rel/b"}, overridden.Branches)
		assert.Equal(t, []string{"main"}, settings.Branches)
	})

	t.Run("should keep the configured branches for an empty override", func(t *testing.T) {
		t.Parallel()

		// given
		settings := &entities.Settings{Branches: []string{"main"}}

		// when
		overridden := settings.WithBranches(nil)

		// then
		assert.Same(t, settings, overridden)
	})
}

//nolint:tparallel // subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestExpandEnv(t *testing.T) {
	t.Run("should expand an embedded reference", func(t *testing.T) {
		// given
		t.Setenv("TEST_PROVENANCE_PART", "secret")

		// when
		result := entities.ExpandEnv("prefix-${TEST_PROVENANCE_PART}-suffix")

		// then
		assert.Equal(t, "prefix-secret-suffix", result)
	})

	t.Run("should expand an unset variable to empty", func(t *testing.T) {
		t.Parallel()

		// when
		result := entities.ExpandEnv("${DEFINITELY_NOT_SET_PROVENANCE_VAR}")

		// then
		assert.Empty(t, result)
	})
}
