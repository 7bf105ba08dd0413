// Package config implements the config command for writing staging-deploy settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/alan/openhands-staging-deploy/cmd"
	"github.com/alan/openhands-staging-deploy/internal/commands"
	"github.com/alan/openhands-staging-deploy/internal/github"
	"github.com/spf13/cobra"
)

// configFlags holds the values given on the command line; empty means "keep"
type configFlags struct {
	sourceRepo string
	deployRepo string
	deployFile string
	stagingURL string
}

// ConfigCommand encapsulates the config command. It only needs the settings file, not a token.
type ConfigCommand struct {
	commands.BaseCommand
	flags configFlags
	out   io.Writer
}

// NewConfigCmd creates and returns the config command
func NewConfigCmd(globalConfigFile *string, loadConfig func(string) (*cmd.Config, error), saveConfig func(string, *cmd.Config) error) *cobra.Command {
	configCmd := &ConfigCommand{}

	cobraCmd := &cobra.Command{
		Use:   "config",
		Short: "Write a staging-deploy.yaml settings file",
		Long: `Config writes the settings file used by the deploy command.

Values already in the file are kept unless overridden by a flag. Any setting that is
still unset is written with its default, so the resulting file lists every option.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			configCmd.ConfigFile = globalConfigFile
			configCmd.LoadConfig = loadConfig
			configCmd.SaveConfig = saveConfig
			configCmd.out = cobraCmd.OutOrStdout()
			return configCmd.Run()
		},
	}
	addConfigFlags(cobraCmd, &configCmd.flags)

	return cobraCmd
}

// addConfigFlags adds all flags to the config command
func addConfigFlags(cobraCmd *cobra.Command, flags *configFlags) {
	cobraCmd.Flags().StringVarP(&flags.sourceRepo, "source-repo", "s", "", "Repository the source PRs live in (owner/name)")
	cobraCmd.Flags().StringVarP(&flags.deployRepo, "deploy-repo", "d", "", "Deploy configuration repository (owner/name)")
	cobraCmd.Flags().StringVar(&flags.deployFile, "deploy-file", "", "Path of the workflow file that pins the commit, relative to the deploy repository")
	cobraCmd.Flags().StringVar(&flags.stagingURL, "staging-url", "", "URL printed once a deployment has been triggered")
}

// Run merges the flags over the current settings and writes the file
func (cc *ConfigCommand) Run() error {
	configFile := *cc.ConfigFile
	isUpdate := fileExists(configFile)

	config, err := cc.LoadConfig(configFile)
	if err != nil {
		return err
	}
	cc.Config = config

	updateConfigWithProvidedValues(config, &cc.flags)
	config.ApplyDefaults()

	if err := validateConfig(config); err != nil {
		return err
	}

	if err := cc.SaveConfigWithErrorHandling(config); err != nil {
		return err
	}

	displayConfigSuccess(cc.out, configFile, config, isUpdate)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// updateConfigWithProvidedValues updates config with any non-empty provided values
func updateConfigWithProvidedValues(config *cmd.Config, flags *configFlags) {
	if flags.sourceRepo != "" {
		config.SourceRepo = flags.sourceRepo
	}
	if flags.deployRepo != "" {
		config.DeployRepo = flags.deployRepo
	}
	if flags.deployFile != "" {
		config.DeployFile = flags.deployFile
	}
	if flags.stagingURL != "" {
		config.StagingURL = flags.stagingURL
	}
}

func validateConfig(config *cmd.Config) error {
	if _, err := github.ParseRepository(config.SourceRepo); err != nil {
		return fmt.Errorf("invalid source repository: %w", err)
	}
	if _, err := github.ParseRepository(config.DeployRepo); err != nil {
		return fmt.Errorf("invalid deploy repository: %w", err)
	}
	return nil
}

// displayConfigSuccess shows the configuration success message
func displayConfigSuccess(out io.Writer, configFile string, config *cmd.Config, isUpdate bool) {
	action := "initialized"
	if isUpdate {
		action = "updated"
	}
	fmt.Fprintf(out, "Successfully %s %s with:\n", action, configFile)
	fmt.Fprintf(out, "  Source Repository: %s\n", config.SourceRepo)
	fmt.Fprintf(out, "  Deploy Repository: %s\n", config.DeployRepo)
	fmt.Fprintf(out, "  Deploy File: %s\n", config.DeployFile)
	fmt.Fprintf(out, "  Staging URL: %s\n", config.StagingURL)
}
