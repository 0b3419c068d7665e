package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suiware/create-sui-dapp/internal/branding"
	"github.com/suiware/create-sui-dapp/internal/command"
	"github.com/suiware/create-sui-dapp/internal/config"
	"github.com/suiware/create-sui-dapp/internal/preflight"
	"github.com/suiware/create-sui-dapp/internal/scaffold"
	"github.com/suiware/create-sui-dapp/internal/settings"
	"github.com/suiware/create-sui-dapp/internal/templates"
	"github.com/suiware/create-sui-dapp/internal/ui"
	"github.com/suiware/create-sui-dapp/internal/version"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Deps are the process-level collaborators of the command.
type Deps struct {
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	LookPath preflight.LookPathFunc
	Runner   command.Runner // nil means real processes
	Dir      string         // parent directory for new projects; empty means cwd
}

func defaultDeps() Deps {
	return Deps{
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		LookPath: exec.LookPath,
	}
}

// Execute runs the command with build info injected via ldflags.
func Execute(v, commit, date string) error {
	buildVersion = v
	buildCommit = commit
	buildDate = date
	return Run(context.Background(), os.Args[1:], defaultDeps())
}

// Run executes the command with args and prints any error to deps.Stderr.
// A non-nil return means the process should exit with status 1.
func Run(ctx context.Context, args []string, deps Deps) error {
	cmd := NewRootCmd(deps)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		printError(ui.New(deps.Stderr), err)
	}
	return err
}

type rootOptions struct {
	template      string
	listTemplates bool
}

// NewRootCmd builds the root command.
func NewRootCmd(deps Deps) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   branding.CLIName() + " [project-name]",
		Short: branding.Description(),
		Long: branding.Description() + `.

Clones the ` + branding.DisplayName() + ` repository into a new directory, keeps the
frontend and backend of the selected template, and commits the result to a
fresh git repository. Without a project name, the name and template are
asked for interactively.`,
		Example: "  " + branding.CLIName() + "\n  " + branding.CLIName() + " demo-app --template counter-react",
		Args:    cobra.MaximumNArgs(1),
		Version: version.Resolve(buildVersion),

		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args, opts, deps)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetIn(deps.Stdin)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.template, "template", "t", "", "Template to use (see --list-templates)")
	flags.BoolVar(&opts.listTemplates, "list-templates", false, "List available templates and exit")
	flags.BoolP("verbose", "v", false, "Show output of external commands")
	flags.Bool("skip-install", false, "Do not install dependencies")
	flags.Bool("cleanup", false, "Remove the project directory if a required step fails")
	flags.String("source-repo", "", "Starter repository to clone (default "+branding.SourceRepoURL()+")")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string, opts *rootOptions, deps Deps) error {
	reg, err := templates.Builtin()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.listTemplates {
		printTemplates(out, reg)
		return nil
	}

	cfg, err := config.Load(cmd.Flags(), reg.Default)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	logger.Debug().Str("version", cmd.Version).Str("commit", buildCommit).Str("built", buildDate).
		Str("config", config.FilePath()).Msg("starting")
	runner := deps.Runner
	if runner == nil {
		var stream io.Writer
		if cfg.Verbose {
			stream = cmd.ErrOrStderr()
		}
		runner = command.NewExecRunner(logger, stream)
	}

	var reporterOpts []ui.Option
	if cfg.Verbose {
		reporterOpts = append(reporterOpts, ui.WithoutSpinner())
	}
	rep := ui.New(out, reporterOpts...)

	tools := &preflight.Checker{LookPath: deps.LookPath, Runner: runner}
	if err := tools.EnsureTool("git", branding.GitInstallURL()); err != nil {
		return err
	}

	req := settings.Request{
		Template:        opts.template,
		DefaultTemplate: cfg.DefaultTemplate,
		DefaultName:     branding.DefaultProjectName(),
	}
	if len(args) == 1 {
		req.Argument = args[0]
		req.ArgumentGiven = true
	}
	ps, err := settings.Resolve(reg, req, cmd.InOrStdin(), out)
	if err != nil {
		return err
	}

	tmpl, err := reg.Lookup(ps.Template)
	if err != nil {
		return err
	}
	rep.Info(fmt.Sprintf("\nCreating %q project with %s template...\n", ps.ProjectName, tmpl.Label))
	logger.Debug().Str("project", ps.ProjectName).Str("template", ps.Template).Str("source", cfg.SourceRepo).Msg("resolved settings")

	s := &scaffold.Scaffolder{
		Runner:   runner,
		Tools:    tools,
		Registry: reg,
		Reporter: rep,
		Logger:   logger,
		Options: scaffold.Options{
			Dir:               deps.Dir,
			SourceRepo:        cfg.SourceRepo,
			PackageManager:    cfg.PackageManager,
			PackageManagerURL: branding.PackageManagerInstallURL(),
			AuxTool:           branding.AuxTool(),
			AuxToolURL:        branding.AuxToolInstallURL(),
			InitialBranch:     cfg.InitialBranch,
			SkipInstall:       cfg.SkipInstall,
			CleanupOnFailure:  cfg.CleanupOnFailure,
		},
	}
	return s.Scaffold(cmd.Context(), *ps)
}

func printTemplates(w io.Writer, reg *templates.Registry) {
	for _, t := range reg.Templates {
		suffix := ""
		if t.ID == reg.Default {
			suffix = " (default)"
		}
		fmt.Fprintf(w, "%-16s %s%s\n", t.ID, t.Label, suffix)
	}
}

// printError is the single place errors reach the user.
func printError(rep *ui.Reporter, err error) {
	var missing *preflight.MissingToolError
	switch {
	case errors.As(err, &missing):
		rep.Error(missing.Error())
	case errors.Is(err, settings.ErrInvalidInput):
		rep.Error("\nIncorrect input. Please try again.")
		rep.Plain(strings.TrimPrefix(err.Error(), settings.ErrInvalidInput.Error()+": "))
	case errors.Is(err, scaffold.ErrTargetExists):
		msg := err.Error()
		rep.Error(strings.ToUpper(msg[:1]) + msg[1:] + ".")
	default:
		rep.Error("Error: " + err.Error())
	}
}
