package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alan/openhands-staging-deploy/cmd"
	"github.com/alan/openhands-staging-deploy/internal/github"
)

// TokenEnvVar names the environment variable holding the GitHub token
const TokenEnvVar = "GITHUB_TOKEN"

// ErrMissingToken is returned when TokenEnvVar is unset or empty
var ErrMissingToken = errors.New(TokenEnvVar + " environment variable is required")

// BaseCommand provides common fields and initialization for all commands
type BaseCommand struct {
	ConfigFile   *string
	LoadConfig   func(string) (*cmd.Config, error)
	SaveConfig   func(string, *cmd.Config) error
	GitHubClient *github.Client
	Context      context.Context
	Config       *cmd.Config

	// Token is the credential used for the API and for git over HTTPS
	Token string
}

// Init loads configuration, reads the token and builds the GitHub client.
// The token is checked before anything touches the network.
func (bc *BaseCommand) Init() error {
	token, err := getGitHubToken()
	if err != nil {
		return err
	}
	bc.Token = token

	// Load configuration
	config, err := bc.LoadConfig(*bc.ConfigFile)
	if err != nil {
		return err
	}
	bc.Config = config

	if bc.Context == nil {
		bc.Context = context.Background()
	}
	client, err := github.NewClient(bc.Context, token).WithBaseURL(config.APIURL)
	if err != nil {
		return err
	}
	bc.GitHubClient = client

	return nil
}

// getGitHubToken retrieves and validates the GitHub token
func getGitHubToken() (string, error) {
	token := os.Getenv(TokenEnvVar)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// SaveConfigWithErrorHandling saves the config with standardized error handling
func (bc *BaseCommand) SaveConfigWithErrorHandling(config *cmd.Config) error {
	if err := bc.SaveConfig(*bc.ConfigFile, config); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", *bc.ConfigFile, err)
	}
	return nil
}
