package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/suiware/create-sui-dapp/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Config keys.
const (
	KeySourceRepo       = "source_repo"
	KeyDefaultTemplate  = "default_template"
	KeyPackageManager   = "package_manager"
	KeyInitialBranch    = "initial_branch"
	KeyVerbose          = "verbose"
	KeySkipInstall      = "skip_install"
	KeyCleanupOnFailure = "cleanup_on_failure"
)

// flagKeys maps config keys to the cobra flag that overrides them.
var flagKeys = map[string]string{
	KeySourceRepo:       "source-repo",
	KeyVerbose:          "verbose",
	KeySkipInstall:      "skip-install",
	KeyCleanupOnFailure: "cleanup",
}

// Config holds the resolved settings for one invocation.
type Config struct {
	SourceRepo       string
	DefaultTemplate  string
	PackageManager   string
	InitialBranch    string
	Verbose          bool
	SkipInstall      bool
	CleanupOnFailure bool
}

// Dir returns the path to the config directory (~/.create-sui-dapp/).
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load resolves the configuration. flags may be nil.
func Load(flags *pflag.FlagSet, defaultTemplate string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(FilePath())
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	v.SetDefault(KeySourceRepo, branding.SourceRepoURL())
	v.SetDefault(KeyDefaultTemplate, defaultTemplate)
	v.SetDefault(KeyPackageManager, branding.PackageManager())
	v.SetDefault(KeyInitialBranch, "")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeySkipInstall, false)
	v.SetDefault(KeyCleanupOnFailure, false)

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", FilePath(), err)
		}
	}

	return &Config{
		SourceRepo:       v.GetString(KeySourceRepo),
		DefaultTemplate:  v.GetString(KeyDefaultTemplate),
		PackageManager:   v.GetString(KeyPackageManager),
		InitialBranch:    v.GetString(KeyInitialBranch),
		Verbose:          v.GetBool(KeyVerbose),
		SkipInstall:      v.GetBool(KeySkipInstall),
		CleanupOnFailure: v.GetBool(KeyCleanupOnFailure),
	}, nil
}
