package preflight

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/suiware/create-sui-dapp/internal/command"
)

// LookPathFunc resolves an executable name on PATH.
type LookPathFunc func(name string) (string, error)

// MissingToolError reports a required executable that is not on PATH.
type MissingToolError struct {
	Tool       string
	InstallURL string
}

func (e *MissingToolError) Error() string {
	name := "Required tool"
	if e.Tool != "" {
		name = cases.Title(language.English).String(e.Tool)
	}
	if e.InstallURL == "" {
		return fmt.Sprintf("%s not found.", name)
	}
	return fmt.Sprintf("%s not found. Please install %s", name, e.InstallURL)
}

// minInitialBranchGit is the first git release that accepts git init --initial-branch.
var minInitialBranchGit = semver.MustParse("2.28.0")

var gitVersionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// Checker answers tool availability questions.
type Checker struct {
	LookPath LookPathFunc
	Runner   command.Runner
}

// Has reports whether name resolves on PATH.
func (c *Checker) Has(name string) bool {
	_, err := c.lookPath()(name)
	return err == nil
}

// EnsureTool returns a *MissingToolError when name is not on PATH.
func (c *Checker) EnsureTool(name, installURL string) error {
	if _, err := c.lookPath()(name); err != nil {
		return &MissingToolError{Tool: name, InstallURL: installURL}
	}
	return nil
}

// GitVersion runs `git --version` and parses the result.
func (c *Checker) GitVersion(ctx context.Context) (*semver.Version, error) {
	res, err := command.Check(ctx, c.Runner, command.Command{Name: "git", Args: []string{"--version"}})
	if err != nil {
		return nil, fmt.Errorf("querying git version: %w", err)
	}
	return ParseGitVersion(res.Stdout)
}

// SupportsInitialBranch reports whether git init accepts --initial-branch.
func (c *Checker) SupportsInitialBranch(ctx context.Context) bool {
	v, err := c.GitVersion(ctx)
	if err != nil {
		return false
	}
	return (&Report{GitVersion: v}).SupportsInitialBranch()
}

// ParseGitVersion extracts the release from output such as
// "git version 2.39.3 (Apple Git-145)" or "git version 2.45.1.windows.1".
func ParseGitVersion(out string) (*semver.Version, error) {
	m := gitVersionPattern.FindStringSubmatch(out)
	if m == nil {
		return nil, fmt.Errorf("unrecognized git version output %q", strings.TrimSpace(out))
	}
	patch := m[3]
	if patch == "" {
		patch = "0"
	}
	return semver.NewVersion(m[1] + "." + m[2] + "." + patch)
}

func (c *Checker) lookPath() LookPathFunc {
	if c.LookPath != nil {
		return c.LookPath
	}
	return exec.LookPath
}
