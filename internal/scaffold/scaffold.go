package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/suiware/create-sui-dapp/internal/command"
	"github.com/suiware/create-sui-dapp/internal/preflight"
	"github.com/suiware/create-sui-dapp/internal/settings"
	"github.com/suiware/create-sui-dapp/internal/templates"
	"github.com/suiware/create-sui-dapp/internal/ui"
)

// ErrTargetExists is returned when the project directory is already present.
var ErrTargetExists = errors.New("the folder already exists")

// StepError wraps the failure of a required step.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return e.Step + ": " + e.Err.Error() }

func (e *StepError) Unwrap() error { return e.Err }

// Step is one unit of the scaffolding sequence.
type Step struct {
	Description string // shown while the step runs
	Success     string
	Failure     string
	Required    bool

	// Skip, when it returns a non-empty advisory, prints it instead of
	// running the step.
	Skip func() string

	// Commands run in order inside the step; Action runs after them. The
	// string Action returns is appended to the success message.
	Commands []command.Command
	Action   func(ctx context.Context) (string, error)
}

// Options are the per-run knobs resolved from flags and config.
type Options struct {
	Dir               string // parent directory for the project; empty means cwd
	SourceRepo        string
	PackageManager    string
	PackageManagerURL string
	AuxTool           string
	AuxToolURL        string
	InitialBranch     string
	SkipInstall       bool
	CleanupOnFailure  bool
}

// Scaffolder runs the scaffolding sequence.
type Scaffolder struct {
	Runner   command.Runner
	Tools    *preflight.Checker
	Registry *templates.Registry
	Reporter *ui.Reporter
	Logger   zerolog.Logger
	Options  Options
}

// Target returns the directory a project named name is created in.
func (s *Scaffolder) Target(name string) string {
	return filepath.Join(s.Options.Dir, name)
}

// Scaffold creates the project described by ps.
func (s *Scaffolder) Scaffold(ctx context.Context, ps settings.ProjectSettings) error {
	target := s.Target(ps.ProjectName)
	if err := checkTarget(target); err != nil {
		return err
	}

	tools, err := s.Tools.Probe(ctx, s.Options.PackageManager, s.Options.AuxTool)
	if err != nil {
		return err
	}
	gitVersion := "unknown"
	if tools.GitVersion != nil {
		gitVersion = tools.GitVersion.String()
	}
	s.Logger.Debug().Str("git", gitVersion).Interface("found", tools.Found).Msg("probed toolchain")

	steps := s.Plan(ps, tools)

	for _, step := range steps {
		if err := s.runStep(ctx, step); err != nil {
			if s.Options.CleanupOnFailure {
				s.cleanup(target)
			}
			return err
		}
	}

	s.report(ps)
	return nil
}

// Plan returns the ordered steps for ps given the probed toolchain. Plan
// performs no I/O.
func (s *Scaffolder) Plan(ps settings.ProjectSettings, tools *preflight.Report) []Step {
	target := s.Target(ps.ProjectName)
	opts := s.Options
	initialBranch := opts.InitialBranch != "" && tools.SupportsInitialBranch()

	return []Step{
		{
			Description: "Cloning the source repo",
			Success:     "Cloned the source repo",
			Failure:     "Cannot clone the source repo",
			Required:    true,
			Commands: []command.Command{
				{
					Name: "git",
					Args: []string{"clone", "--depth", "1", "--", opts.SourceRepo, target},
					Env:  []string{"GIT_TERMINAL_PROMPT=0"},
				},
			},
		},
		{
			Description: "Removing old git history",
			Success:     "Removed old git history",
			Failure:     "Cannot remove old git history",
			Required:    true,
			Action: func(context.Context) (string, error) {
				return "", os.RemoveAll(filepath.Join(target, ".git"))
			},
		},
		{
			Description: "Removing unused templates",
			Success:     "Removed unused templates",
			Failure:     "Cannot remove unused templates",
			Action: func(context.Context) (string, error) {
				return "", s.prune(target, ps.Template)
			},
		},
		{
			Description: "Initializing a new git repo",
			Success:     "Initialized a new git repo",
			Failure:     "Cannot initialize a new git repo",
			Required:    true,
			Commands:    s.reinitCommands(target, initialBranch),
			Action: func(context.Context) (string, error) {
				info, err := ReadHistory(target)
				if err != nil {
					// The commit exists; only the summary is lost.
					s.Logger.Debug().Err(err).Msg("reading new repository")
					return "", nil
				}
				return info.ShortHash(), nil
			},
		},
		{
			Description: "Installing dependencies",
			Success:     "Installed dependencies",
			Failure:     "Cannot install dependencies",
			Skip: func() string {
				manual := fmt.Sprintf("cd %s && %s install", ps.ProjectName, opts.PackageManager)
				if opts.SkipInstall {
					return "Skipped dependency installation. Run `" + manual + "` when ready."
				}
				if !tools.Has(opts.PackageManager) {
					return fmt.Sprintf("%s not found. Install it (%s), then run `%s`.",
						opts.PackageManager, opts.PackageManagerURL, manual)
				}
				return ""
			},
			Commands: []command.Command{
				{Name: opts.PackageManager, Args: []string{"install"}, Dir: target},
			},
		},
		{
			Description: "Looking for " + opts.AuxTool,
			Success:     "Found " + opts.AuxTool,
			Skip: func() string {
				if !tools.Has(opts.AuxTool) {
					return fmt.Sprintf("%s not found. Install it to run a local network: %s", opts.AuxTool, opts.AuxToolURL)
				}
				return ""
			},
		},
	}
}

func (s *Scaffolder) reinitCommands(target string, initialBranch bool) []command.Command {
	branch := s.Options.InitialBranch
	cmds := make([]command.Command, 0, 4)
	switch {
	case branch != "" && initialBranch:
		cmds = append(cmds, command.Command{Name: "git", Args: []string{"init", "--initial-branch=" + branch}, Dir: target})
	case branch != "":
		cmds = append(cmds,
			command.Command{Name: "git", Args: []string{"init"}, Dir: target},
			command.Command{Name: "git", Args: []string{"symbolic-ref", "HEAD", "refs/heads/" + branch}, Dir: target},
		)
	default:
		cmds = append(cmds, command.Command{Name: "git", Args: []string{"init"}, Dir: target})
	}
	return append(cmds,
		command.Command{Name: "git", Args: []string{"add", "-A"}, Dir: target},
		command.Command{Name: "git", Args: []string{"commit", "-m", "Initial commit"}, Dir: target},
	)
}

func (s *Scaffolder) prune(target, id string) error {
	tmpl, err := s.Registry.Lookup(id)
	if err != nil {
		return err
	}
	return Prune(target, tmpl.Prune)
}

func (s *Scaffolder) runStep(ctx context.Context, step Step) error {
	if step.Skip != nil {
		if advisory := step.Skip(); advisory != "" {
			s.Reporter.Info(advisory)
			return nil
		}
	}

	progress := s.Reporter.Step(step.Description)
	detail, err := s.execute(ctx, step)
	if err != nil {
		progress.Fail(step.Failure)
		s.Logger.Debug().Err(err).Str("step", step.Description).Bool("required", step.Required).Msg("step failed")
		if step.Required {
			return &StepError{Step: step.Failure, Err: err}
		}
		s.Reporter.Warn("  " + err.Error())
		return nil
	}

	msg := step.Success
	if detail != "" {
		msg += " (" + detail + ")"
	}
	progress.Done(msg)
	return nil
}

func (s *Scaffolder) execute(ctx context.Context, step Step) (string, error) {
	for _, c := range step.Commands {
		if _, err := command.Check(ctx, s.Runner, c); err != nil {
			return "", err
		}
	}
	if step.Action == nil {
		return "", nil
	}
	return step.Action(ctx)
}

func (s *Scaffolder) cleanup(target string) {
	if err := os.RemoveAll(target); err != nil {
		s.Reporter.Warn(fmt.Sprintf("Cannot remove %s: %v", target, err))
		return
	}
	s.Reporter.Info("Removed partially created " + target)
}

func (s *Scaffolder) report(ps settings.ProjectSettings) {
	s.Reporter.Success(fmt.Sprintf("\nDone! Your project %q is ready.", ps.ProjectName))
	s.Reporter.Plain("\nNext steps:")
	lines := []string{
		"cd " + ps.ProjectName,
		s.Options.PackageManager + " localnet:start",
		s.Options.PackageManager + " localnet:deploy",
		s.Options.PackageManager + " frontend:dev",
	}
	s.Reporter.Plain("  " + strings.Join(lines, "\n  "))
	s.Reporter.Plain("\nHappy hacking!")
}

// checkTarget fails unless target is absent. Stat errors other than
// not-exist count as present.
func checkTarget(target string) error {
	_, err := os.Lstat(target)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s. Please remove it or choose another project name", ErrTargetExists, target)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("%w: %s: %v", ErrTargetExists, target, err)
	}
}
