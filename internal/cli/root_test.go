package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/suiware/create-sui-dapp/internal/command"
	"github.com/suiware/create-sui-dapp/internal/preflight"
	"github.com/suiware/create-sui-dapp/internal/scaffold"
	"github.com/suiware/create-sui-dapp/internal/settings"
	"github.com/suiware/create-sui-dapp/internal/version"
)

// cloneRunner materializes a starter tree on "git clone" and succeeds on
// everything else.
type cloneRunner struct {
	t     *testing.T
	calls []string
}

func (r *cloneRunner) Run(_ context.Context, c command.Command) (*command.Result, error) {
	r.calls = append(r.calls, c.String())
	if c.Name == "git" && len(c.Args) > 0 && c.Args[0] == "clone" {
		root := c.Args[len(c.Args)-1]
		for _, v := range []string{"frontend-greeting-react", "frontend-greeting-next", "frontend-counter-react", "backend-greeting", "backend-counter"} {
			dir := filepath.Join(root, "packages", v)
			if err := os.MkdirAll(dir, 0755); err != nil {
				r.t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(dir, "variant.txt"), []byte(v), 0644); err != nil {
				r.t.Fatal(err)
			}
		}
		if err := os.MkdirAll(filepath.Join(root, ".git"), 0755); err != nil {
			r.t.Fatal(err)
		}
	}
	return &command.Result{}, nil
}

func lookPath(available ...string) preflight.LookPathFunc {
	return func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

type harness struct {
	deps   Deps
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	runner *cloneRunner
}

func newHarness(t *testing.T, stdin string, tools ...string) *harness {
	t.Helper()
	t.Setenv("CREATE_SUI_DAPP_HOME", t.TempDir())
	h := &harness{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		runner: &cloneRunner{t: t},
	}
	h.deps = Deps{
		Stdin:    strings.NewReader(stdin),
		Stdout:   h.stdout,
		Stderr:   h.stderr,
		LookPath: lookPath(tools...),
		Runner:   h.runner,
		Dir:      t.TempDir(),
	}
	return h
}

func (h *harness) run(args ...string) error {
	return Run(context.Background(), args, h.deps)
}

func TestVersionFlag(t *testing.T) {
	h := newHarness(t, "")
	if err := h.run("--version"); err != nil {
		t.Fatalf("--version: %v", err)
	}
	want := version.Resolve(buildVersion) + "\n"
	if h.stdout.String() != want {
		t.Errorf("stdout = %q, want %q", h.stdout.String(), want)
	}
	if len(h.runner.calls) != 0 {
		t.Errorf("--version ran commands: %v", h.runner.calls)
	}
}

func TestListTemplates(t *testing.T) {
	h := newHarness(t, "")
	if err := h.run("--list-templates"); err != nil {
		t.Fatal(err)
	}
	out := h.stdout.String()
	for _, id := range []string{"greeting-react", "greeting-next", "counter-react"} {
		if !strings.Contains(out, id) {
			t.Errorf("output missing %s:\n%s", id, out)
		}
	}
	if !strings.Contains(out, "Greeting (React) (default)") {
		t.Errorf("default not marked:\n%s", out)
	}
}

func TestMissingGit(t *testing.T) {
	h := newHarness(t, "", "pnpm")
	err := h.run("demo-app")

	var missing *preflight.MissingToolError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingToolError", err)
	}
	if !strings.Contains(h.stderr.String(), "Git not found. Please install https://git-scm.com/downloads") {
		t.Errorf("stderr = %q", h.stderr.String())
	}
	entries, _ := os.ReadDir(h.deps.Dir)
	if len(entries) != 0 {
		t.Errorf("directory created despite missing git: %v", entries)
	}
	if len(h.runner.calls) != 0 {
		t.Errorf("commands ran: %v", h.runner.calls)
	}
}

func TestBlankArgumentIsInvalidInput(t *testing.T) {
	h := newHarness(t, "", "git")
	err := h.run("   ")
	if !errors.Is(err, settings.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if !strings.Contains(h.stderr.String(), "Incorrect input. Please try again.") {
		t.Errorf("stderr = %q", h.stderr.String())
	}
}

func TestUnknownTemplateFlag(t *testing.T) {
	h := newHarness(t, "", "git")
	err := h.run("demo-app", "--template", "nope")
	if !errors.Is(err, settings.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if _, statErr := os.Stat(filepath.Join(h.deps.Dir, "demo-app")); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("project directory should not exist")
	}
}

func TestTooManyArguments(t *testing.T) {
	h := newHarness(t, "", "git")
	if err := h.run("a", "b"); err == nil {
		t.Fatal("expected error for two positional arguments")
	}
	if !strings.Contains(h.stderr.String(), "Error:") {
		t.Errorf("stderr = %q", h.stderr.String())
	}
}

func TestTargetExists(t *testing.T) {
	h := newHarness(t, "", "git")
	existing := filepath.Join(h.deps.Dir, "demo-app")
	if err := os.Mkdir(existing, 0755); err != nil {
		t.Fatal(err)
	}

	err := h.run("demo-app")
	if !errors.Is(err, scaffold.ErrTargetExists) {
		t.Fatalf("err = %v, want ErrTargetExists", err)
	}
	if !strings.Contains(h.stderr.String(), "The folder already exists") {
		t.Errorf("stderr = %q", h.stderr.String())
	}
	for _, c := range h.runner.calls {
		if strings.HasPrefix(c, "git clone") {
			t.Errorf("clone ran against existing folder")
		}
	}
}

func TestCreateWithArgument(t *testing.T) {
	h := newHarness(t, "", "git")
	if err := h.run("demo-app", "-t", "counter-react", "--skip-install"); err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, h.stderr.String())
	}

	root := filepath.Join(h.deps.Dir, "demo-app")
	for path, want := range map[string]string{
		"packages/frontend/variant.txt": "frontend-counter-react",
		"packages/backend/variant.txt":  "backend-counter",
	} {
		got, err := os.ReadFile(filepath.Join(root, path))
		if err != nil {
			t.Fatalf("reading %s: %v", path, err)
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}

	out := h.stdout.String()
	for _, want := range []string{`Creating "demo-app" project with Counter (React) template`, "Done!", "cd demo-app"} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "Skipped dependency installation") {
		t.Errorf("skip-install advisory missing:\n%s", out)
	}
}

func TestCreateInteractive(t *testing.T) {
	// Blank name is rejected, then the default template is taken.
	h := newHarness(t, "\nok-name\n\n", "git", "pnpm")
	if err := h.run(); err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, h.stderr.String())
	}
	if _, err := os.Stat(filepath.Join(h.deps.Dir, "ok-name", "packages", "frontend")); err != nil {
		t.Errorf("frontend missing: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "Greeting (React) template") {
		t.Errorf("stdout = %q", h.stdout.String())
	}

	installed := false
	for _, c := range h.runner.calls {
		if c == "pnpm install" {
			installed = true
		}
	}
	if !installed {
		t.Errorf("pnpm install not run: %v", h.runner.calls)
	}
}

func TestConfigDefaultTemplate(t *testing.T) {
	h := newHarness(t, "", "git")
	t.Setenv("CREATE_SUI_DAPP_DEFAULT_TEMPLATE", "greeting-next")

	if err := h.run("demo-app", "--skip-install"); err != nil {
		t.Fatalf("run: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(h.deps.Dir, "demo-app", "packages", "frontend", "variant.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "frontend-greeting-next" {
		t.Errorf("frontend = %q, want frontend-greeting-next", got)
	}
}

func TestSourceRepoFlag(t *testing.T) {
	h := newHarness(t, "", "git")
	if err := h.run("demo-app", "--skip-install", "--source-repo", "file:///tmp/starter"); err != nil {
		t.Fatal(err)
	}
	for _, c := range h.runner.calls {
		if strings.HasPrefix(c, "git clone") {
			if !strings.Contains(c, "-- file:///tmp/starter ") {
				t.Errorf("clone = %q", c)
			}
			return
		}
	}
	t.Errorf("no clone in %v", h.runner.calls)
}
