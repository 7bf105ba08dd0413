// Package cmd defines core data structures for staging-deploy settings.
package cmd

import (
	"strconv"

	"github.com/valyala/fasttemplate"
)

// Default settings used when no configuration file is present
const (
	DefaultSourceRepo        = "All-Hands-AI/OpenHands"
	DefaultDeployRepo        = "All-Hands-AI/deploy"
	DefaultCreateWorkflow    = "create-openhands-preview-pr.yaml"
	DefaultCreateWorkflowRef = "main"
	DefaultDeployWorkflow    = "deploy.yaml"
	DefaultDeployEnvironment = "staging"
	DefaultDeployFile        = ".github/workflows/deploy.yaml"
	DefaultEnvSection        = "env"
	DefaultSHAKey            = "OPENHANDS_SHA"
	DefaultTagKey            = "OPENHANDS_RUNTIME_IMAGE_TAG"
	DefaultImageTagSuffix    = "-nikolaik"
	DefaultPreviewTitle      = "OpenHands PR #{{number}}"
	DefaultGitHost           = "github.com"
	DefaultStagingURL        = "https://staging.all-hands.dev"

	DefaultCommitMessage = `Update to latest commit from OpenHands PR #{{number}}

{{sha_key}}: {{sha}}
{{tag_key}}: {{tag}}`
)

// Config represents the structure of staging-deploy.yaml
type Config struct {
	SourceRepo        string `yaml:"source_repo"`
	DeployRepo        string `yaml:"deploy_repo"`
	CreateWorkflow    string `yaml:"create_workflow"`
	CreateWorkflowRef string `yaml:"create_workflow_ref"`
	DeployWorkflow    string `yaml:"deploy_workflow"`
	DeployEnvironment string `yaml:"deploy_environment"`

	DeployFile     string `yaml:"deploy_file"`
	EnvSection     string `yaml:"env_section"`
	SHAKey         string `yaml:"sha_key"`
	TagKey         string `yaml:"tag_key"`
	ImageTagSuffix string `yaml:"image_tag_suffix"`

	PreviewTitle  string `yaml:"preview_title"`  // fasttemplate, {{number}}
	CommitMessage string `yaml:"commit_message"` // fasttemplate, {{number}} {{sha}} {{tag}} {{sha_key}} {{tag_key}}

	GitHost           string `yaml:"git_host"`
	APIURL            string `yaml:"api_url,omitempty"` // empty means api.github.com
	StagingURL        string `yaml:"staging_url"`
	CommitAuthorName  string `yaml:"commit_author_name,omitempty"`
	CommitAuthorEmail string `yaml:"commit_author_email,omitempty"`
}

// DefaultConfig returns a Config with every field set to its default
func DefaultConfig() *Config {
	return &Config{
		SourceRepo:        DefaultSourceRepo,
		DeployRepo:        DefaultDeployRepo,
		CreateWorkflow:    DefaultCreateWorkflow,
		CreateWorkflowRef: DefaultCreateWorkflowRef,
		DeployWorkflow:    DefaultDeployWorkflow,
		DeployEnvironment: DefaultDeployEnvironment,
		DeployFile:        DefaultDeployFile,
		EnvSection:        DefaultEnvSection,
		SHAKey:            DefaultSHAKey,
		TagKey:            DefaultTagKey,
		ImageTagSuffix:    DefaultImageTagSuffix,
		PreviewTitle:      DefaultPreviewTitle,
		CommitMessage:     DefaultCommitMessage,
		GitHost:           DefaultGitHost,
		StagingURL:        DefaultStagingURL,
	}
}

// ApplyDefaults fills any empty field with its default value
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	setDefault(&c.SourceRepo, d.SourceRepo)
	setDefault(&c.DeployRepo, d.DeployRepo)
	setDefault(&c.CreateWorkflow, d.CreateWorkflow)
	setDefault(&c.CreateWorkflowRef, d.CreateWorkflowRef)
	setDefault(&c.DeployWorkflow, d.DeployWorkflow)
	setDefault(&c.DeployEnvironment, d.DeployEnvironment)
	setDefault(&c.DeployFile, d.DeployFile)
	setDefault(&c.EnvSection, d.EnvSection)
	setDefault(&c.SHAKey, d.SHAKey)
	setDefault(&c.TagKey, d.TagKey)
	setDefault(&c.ImageTagSuffix, d.ImageTagSuffix)
	setDefault(&c.PreviewTitle, d.PreviewTitle)
	setDefault(&c.CommitMessage, d.CommitMessage)
	setDefault(&c.GitHost, d.GitHost)
	setDefault(&c.StagingURL, d.StagingURL)
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// RuntimeImageTag derives the runtime image tag for a commit SHA.
// The tag is always the SHA followed by the configured suffix.
func (c *Config) RuntimeImageTag(sha string) string {
	return sha + c.ImageTagSuffix
}

// PreviewMarker renders the title fragment that identifies the preview PR for a source PR
func (c *Config) PreviewMarker(number int) string {
	return render(c.PreviewTitle, map[string]interface{}{
		"number": strconv.Itoa(number),
	})
}

// RenderCommitMessage renders the commit message recorded on the preview branch.
// Unknown placeholders are left as-is.
func (c *Config) RenderCommitMessage(number int, sha string) string {
	return render(c.CommitMessage, map[string]interface{}{
		"number":  strconv.Itoa(number),
		"sha":     sha,
		"tag":     c.RuntimeImageTag(sha),
		"sha_key": c.SHAKey,
		"tag_key": c.TagKey,
	})
}

func render(tpl string, values map[string]interface{}) string {
	return fasttemplate.ExecuteStringStd(tpl, "{{", "}}", values)
}
