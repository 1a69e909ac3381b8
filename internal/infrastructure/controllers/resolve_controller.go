package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/provenance/internal/domain/commands"
	"github.com/rios0rios0/provenance/internal/domain/entities"
)

// ResolveController handles the "resolve" subcommand.
type ResolveController struct {
	command commands.Resolve
}

// NewResolveController creates a new ResolveController.
func NewResolveController(command commands.Resolve) *ResolveController {
	return &ResolveController{command: command}
}

// GetBind returns the Cobra command metadata for the resolve controller.
func (it *ResolveController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "resolve [branch...]",
		Short: "Report the component build shipped on each branch",
		Long: `For every configured branch, read the component manifest reference and the
package configuration, derive the build number from the artifact URL and look
it up in the configured build definitions, in order.

Prints the package version, commit and source branch of the matching builds.
A branch that cannot be resolved is reported with its error and the run continues.
Branches given as arguments or with --branch replace the configured list.`,
	}
}

// Execute loads the configuration and runs the resolution.
func (it *ResolveController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	branches, _ := cmd.Flags().GetStringSlice("branch")
	branches = append(branches, args...)

	cfgPath := configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = entities.FindConfigFile()
		if err != nil {
			logger.Errorf(
				"no config file found: %v\nSpecify one with --config or create provenance.yaml",
				err,
			)
			return
		}
	}

	logger.Infof("Using config file: %s", cfgPath)

	settings, err := entities.NewSettings(cfgPath)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	if runErr := it.command.Execute(ctx, settings, commands.ResolveOptions{
		Verbose:  verbose,
		Branches: branches,
	}); runErr != nil {
		logger.Errorf("Resolve failed: %v", runErr)
	}
}

// AddFlags adds the resolve-specific flags to the given Cobra command.
func (it *ResolveController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("branch", "b", nil, "Only resolve these branches (repeatable)")
}
