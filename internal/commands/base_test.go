package commands

import (
	"errors"
	"testing"

	"github.com/alan/openhands-staging-deploy/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseCommand_Init(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		loadConfig func(string) (*cmd.Config, error)
		wantErr    error
		anyErr     bool
	}{
		{
			name:  "successful init",
			token: "test-token",
			loadConfig: func(string) (*cmd.Config, error) {
				return cmd.DefaultConfig(), nil
			},
		},
		{
			name:  "config load error",
			token: "test-token",
			loadConfig: func(string) (*cmd.Config, error) {
				return nil, errors.New("failed to load config")
			},
			anyErr: true,
		},
		{
			name:  "missing github token",
			token: "",
			loadConfig: func(string) (*cmd.Config, error) {
				t.Error("config should not be loaded without a token")
				return cmd.DefaultConfig(), nil
			},
			wantErr: ErrMissingToken,
		},
		{
			name:  "bad api url",
			token: "test-token",
			loadConfig: func(string) (*cmd.Config, error) {
				config := cmd.DefaultConfig()
				config.APIURL = "://nope"
				return config, nil
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(TokenEnvVar, tt.token)

			configFile := "test-config.yaml"
			bc := &BaseCommand{
				ConfigFile: &configFile,
				LoadConfig: tt.loadConfig,
			}

			err := bc.Init()

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				assert.NotNil(t, bc.Config)
				assert.NotNil(t, bc.GitHubClient)
				assert.NotNil(t, bc.Context)
				assert.Equal(t, tt.token, bc.Token)
			}
		})
	}
}

func TestBaseCommand_InitSetsFields(t *testing.T) {
	t.Setenv(TokenEnvVar, "test-token")

	expectedConfig := cmd.DefaultConfig()
	expectedConfig.DeployRepo = "acme/deploy"

	configFile := "test-config.yaml"
	var loadedFrom string
	bc := &BaseCommand{
		ConfigFile: &configFile,
		LoadConfig: func(path string) (*cmd.Config, error) {
			loadedFrom = path
			return expectedConfig, nil
		},
	}

	err := bc.Init()

	require.NoError(t, err)
	assert.Equal(t, expectedConfig, bc.Config)
	assert.Equal(t, configFile, loadedFrom)
}

func TestBaseCommand_SaveConfigWithErrorHandling(t *testing.T) {
	configFile := "staging-deploy.yaml"
	saveErr := errors.New("disk full")
	bc := &BaseCommand{
		ConfigFile: &configFile,
		SaveConfig: func(string, *cmd.Config) error { return saveErr },
	}

	err := bc.SaveConfigWithErrorHandling(cmd.DefaultConfig())

	require.ErrorIs(t, err, saveErr)
	assert.Contains(t, err.Error(), configFile)
}
