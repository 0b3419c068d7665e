package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/suiware/create-sui-dapp/internal/templates"
)

// Prune applies rule inside root. Every path is checked before anything is
// touched, so a rule that does not fit the tree leaves it unchanged.
func Prune(root string, rule templates.PruneRule) error {
	resolve := func(rel string) (string, error) {
		p := filepath.FromSlash(rel)
		if !filepath.IsLocal(p) {
			return "", fmt.Errorf("path %q escapes the project directory", rel)
		}
		return filepath.Join(root, p), nil
	}

	removals := make([]string, 0, len(rule.Remove))
	for _, rel := range rule.Remove {
		p, err := resolve(rel)
		if err != nil {
			return err
		}
		removals = append(removals, p)
	}

	type move struct{ from, to string }
	moves := make([]move, 0, len(rule.Rename))
	for _, rn := range rule.Rename {
		from, err := resolve(rn.From)
		if err != nil {
			return err
		}
		to, err := resolve(rn.To)
		if err != nil {
			return err
		}
		info, err := os.Stat(from)
		if err != nil {
			return fmt.Errorf("template directory %s: %w", rn.From, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("template path %s is not a directory", rn.From)
		}
		if _, err := os.Lstat(to); err == nil {
			return fmt.Errorf("rename target %s already exists", rn.To)
		}
		moves = append(moves, move{from, to})
	}

	for _, p := range removals {
		if err := os.RemoveAll(p); err != nil {
			return fmt.Errorf("removing %s: %w", p, err)
		}
	}
	for _, m := range moves {
		if err := os.Rename(m.from, m.to); err != nil {
			return fmt.Errorf("renaming %s to %s: %w", m.from, m.to, err)
		}
	}
	return nil
}
