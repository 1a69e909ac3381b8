package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// SourceTypeAzureDevOps reads documents through the Azure DevOps Git items API.
	SourceTypeAzureDevOps = "azuredevops"
	// SourceTypeLocal reads documents from a local clone.
	SourceTypeLocal = "local"

	defaultComponentsPath    = ".corext/Configs/dotnetcodeanalysis-components.json"
	defaultComponent         = "Microsoft.CodeAnalysis.LanguageServices"
	defaultPackageConfigPath = ".corext/Configs/default.config"
	defaultPackageID         = "VS.ExternalAPIs.Roslyn"
)

// Settings is the static configuration of a run.
type Settings struct {
	Source     SourceSettings         `yaml:"source"`
	Documents  DocumentSettings       `yaml:"documents"`
	Branches   []string               `yaml:"branches"`
	Candidates []BuildCandidateSource `yaml:"candidates"`
}

// SourceSettings locates the repository the two documents are read from.
type SourceSettings struct {
	Type         string     `yaml:"type"`
	Organization string     `yaml:"organization"`
	Project      string     `yaml:"project"`
	Repository   string     `yaml:"repository"`
	Path         string     `yaml:"path"`
	Credential   Credential `yaml:"credential"`
}

// DocumentSettings names the two documents and the keys looked up in them.
type DocumentSettings struct {
	ComponentsPath    string `yaml:"components_path"`
	Component         string `yaml:"component"`
	PackageConfigPath string `yaml:"package_config_path"`
	PackageID         string `yaml:"package_id"`
	ManifestExtension string `yaml:"manifest_extension"`
}

// Credential describes where an access token comes from: a Key Vault secret when both
// KeyVault and Secret are set, otherwise Token (inline value or token file path).
type Credential struct {
	Token    string `yaml:"token"`
	KeyVault string `yaml:"key_vault"`
	Secret   string `yaml:"secret"`
}

// IsZero reports whether no credential source is configured.
func (c Credential) IsZero() bool {
	return c.Token == "" && c.KeyVault == "" && c.Secret == ""
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables, applying defaults and validating the result.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.expandEnv()
	settings.applyDefaults()

	if validateErr := settings.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".provenance.yaml",
		".provenance.yml",
		"provenance.yaml",
		"provenance.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// WithBranches returns a copy of the settings processing only the given branches.
// An empty list keeps the configured branches.
func (s *Settings) WithBranches(branches []string) *Settings {
	if len(branches) == 0 {
		return s
	}
	clone := *s
	clone.Branches = append([]string(nil), branches...)
	return &clone
}

// CandidateCredential returns the credential of a candidate, inheriting the source's one.
func (s *Settings) CandidateCredential(candidate BuildCandidateSource) Credential {
	if candidate.Credential != nil && !candidate.Credential.IsZero() {
		return *candidate.Credential
	}
	return s.Source.Credential
}

// Validate checks for required configuration values.
func (s *Settings) Validate() error {
	if len(s.Branches) == 0 {
		return errors.New("at least one branch must be configured")
	}
	for i, branch := range s.Branches {
		if strings.TrimSpace(branch) == "" {
			return fmt.Errorf("branches[%d] is empty", i)
		}
	}

	switch s.Source.Type {
	case SourceTypeAzureDevOps:
		if s.Source.Organization == "" || s.Source.Project == "" || s.Source.Repository == "" {
			return errors.New("source.organization, source.project and source.repository are required")
		}
	case SourceTypeLocal:
		if s.Source.Path == "" {
			return errors.New("source.path is required for a local source")
		}
	default:
		return fmt.Errorf("unknown source type: %q", s.Source.Type)
	}

	if len(s.Candidates) == 0 {
		return errors.New("at least one build candidate must be configured")
	}
	for i, c := range s.Candidates {
		if c.Organization == "" {
			return fmt.Errorf("candidates[%d].organization is required", i)
		}
		if c.Definition == "" {
			return fmt.Errorf("candidates[%d].definition is required", i)
		}
	}

	d := s.Documents
	if d.ComponentsPath == "" || d.Component == "" || d.PackageConfigPath == "" || d.PackageID == "" {
		return errors.New("documents paths and lookup keys must not be empty")
	}
	return nil
}

func (s *Settings) applyDefaults() {
	if s.Source.Type == "" {
		s.Source.Type = SourceTypeAzureDevOps
	}

	d := &s.Documents
	d.ComponentsPath = defaultString(d.ComponentsPath, defaultComponentsPath)
	d.Component = defaultString(d.Component, defaultComponent)
	d.PackageConfigPath = defaultString(d.PackageConfigPath, defaultPackageConfigPath)
	d.PackageID = defaultString(d.PackageID, defaultPackageID)
	d.ManifestExtension = defaultString(d.ManifestExtension, DefaultManifestExtension)

	for i := range s.Candidates {
		c := &s.Candidates[i]
		c.Type = defaultString(c.Type, SourceTypeAzureDevOps)
		c.Project = defaultString(c.Project, s.Source.Project)
	}
}

func (s *Settings) expandEnv() {
	s.Source.Credential = s.Source.Credential.expandEnv()
	for i := range s.Candidates {
		if s.Candidates[i].Credential != nil {
			expanded := s.Candidates[i].Credential.expandEnv()
			s.Candidates[i].Credential = &expanded
		}
	}
}

func (c Credential) expandEnv() Credential {
	return Credential{
		Token:    ExpandEnv(c.Token),
		KeyVault: ExpandEnv(c.KeyVault),
		Secret:   ExpandEnv(c.Secret),
	}
}

// ExpandEnv replaces ${ENV_VAR} references with their values. Unset variables expand to "".
func ExpandEnv(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
