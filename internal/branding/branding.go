// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is baked into the binary with //go:embed. Forks that ship a
// different starter repository only need to edit that file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName                  string `yaml:"cli_name"`
	DisplayName              string `yaml:"display_name"`
	Description              string `yaml:"description"`
	HomeDir                  string `yaml:"home_dir"`
	EnvPrefix                string `yaml:"env_prefix"`
	SourceRepoURL            string `yaml:"source_repo_url"`
	DefaultProjectName       string `yaml:"default_project_name"`
	GitInstallURL            string `yaml:"git_install_url"`
	PackageManager           string `yaml:"package_manager"`
	PackageManagerInstallURL string `yaml:"package_manager_install_url"`
	AuxTool                  string `yaml:"aux_tool"`
	AuxToolInstallURL        string `yaml:"aux_tool_install_url"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:                  "create-sui-dapp",
			DisplayName:              "Sui dApp Starter",
			Description:              "Install Sui dApp Starter with ease",
			HomeDir:                  ".create-sui-dapp",
			EnvPrefix:                "CREATE_SUI_DAPP",
			SourceRepoURL:            "https://github.com/suiware/sui-dapp-starter",
			DefaultProjectName:       "my-sui-dapp",
			GitInstallURL:            "https://git-scm.com/downloads",
			PackageManager:           "pnpm",
			PackageManagerInstallURL: "https://pnpm.io/installation",
			AuxTool:                  "suibase",
			AuxToolInstallURL:        "https://suibase.io/how-to/install",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "create-sui-dapp").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME.
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CREATE_SUI_DAPP").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// SourceRepoURL returns the starter repository cloned into new projects.
func SourceRepoURL() string { load(); return defaults.SourceRepoURL }

// DefaultProjectName is the name suggested by the interactive prompt.
func DefaultProjectName() string { load(); return defaults.DefaultProjectName }

// GitInstallURL points users at git install instructions.
func GitInstallURL() string { load(); return defaults.GitInstallURL }

// PackageManager returns the default package manager executable.
func PackageManager() string { load(); return defaults.PackageManager }

// PackageManagerInstallURL points users at package manager install instructions.
func PackageManagerInstallURL() string { load(); return defaults.PackageManagerInstallURL }

// AuxTool returns the advisory local-network helper executable.
func AuxTool() string { load(); return defaults.AuxTool }

// AuxToolInstallURL points users at the local-network helper install instructions.
func AuxToolInstallURL() string { load(); return defaults.AuxToolInstallURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("verbose") → "CREATE_SUI_DAPP_VERBOSE".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
