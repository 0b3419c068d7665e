//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // CREATE_SUI_DAPP_HOME and HOME
	StarterDir string // local stand-in for the starter repository
	WorkDir    string // parent directory new projects are created in
}

// setupTestEnv creates isolated temp directories and sets environment
// variables so config files and git identity come from the sandbox.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	env := &testEnv{
		HomeDir:    t.TempDir(),
		StarterDir: t.TempDir(),
		WorkDir:    t.TempDir(),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("CREATE_SUI_DAPP_HOME", env.HomeDir)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	return env
}

// setupStarterRepo commits a miniature starter layout into dir and returns
// a file:// URL that git clone --depth 1 accepts.
func setupStarterRepo(t *testing.T, dir string) string {
	t.Helper()

	writeFile(t, filepath.Join(dir, "package.json"), `{"name":"sui-dapp-starter","private":true}`+"\n")
	writeFile(t, filepath.Join(dir, "README.md"), "# Sui dApp Starter\n")
	for _, pkg := range []string{
		"frontend-greeting-react",
		"frontend-greeting-next",
		"frontend-counter-react",
		"backend-greeting",
		"backend-counter",
	} {
		writeFile(t, filepath.Join(dir, "packages", pkg, "package.json"), `{"name":"`+pkg+`"}`+"\n")
	}

	git(t, dir, "init")
	git(t, dir, "add", "-A")
	git(t, dir, "commit", "-m", "starter one")
	writeFile(t, filepath.Join(dir, "CHANGELOG.md"), "- second\n")
	git(t, dir, "add", "-A")
	git(t, dir, "commit", "-m", "starter two")

	return "file://" + filepath.ToSlash(dir)
}

func git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return string(out)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file to not exist: %s", path)
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory", path)
	}
}

func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q", path, substr)
	}
}
