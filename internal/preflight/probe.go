package preflight

import (
	"context"
	"sync"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"
)

// Report is a snapshot of the local toolchain taken before scaffolding.
type Report struct {
	GitVersion *semver.Version // nil when git --version could not be parsed
	Found      map[string]bool
}

// Has reports whether name was found on PATH when the report was taken.
func (r *Report) Has(name string) bool {
	return r != nil && r.Found[name]
}

// SupportsInitialBranch reports whether git init accepts --initial-branch.
func (r *Report) SupportsInitialBranch() bool {
	return r != nil && r.GitVersion != nil && !r.GitVersion.LessThan(minInitialBranchGit)
}

// Probe looks up tools on PATH and queries the git version concurrently.
// Missing tools and an unreadable git version are recorded, not returned;
// the only error is cancellation of ctx.
func (c *Checker) Probe(ctx context.Context, tools ...string) (*Report, error) {
	report := &Report{Found: make(map[string]bool, len(tools))}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := c.GitVersion(gctx)
		if err != nil {
			return gctx.Err()
		}
		report.GitVersion = v
		return nil
	})
	for _, name := range tools {
		g.Go(func() error {
			found := c.Has(name)
			mu.Lock()
			report.Found[name] = found
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, ctx.Err()
}
