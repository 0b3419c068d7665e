package scaffold

import (
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// CommitInfo summarizes the history of a freshly initialized repository.
type CommitInfo struct {
	Hash    string
	Message string
	Count   int
}

// ShortHash returns the abbreviated commit hash.
func (c CommitInfo) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// ReadHistory opens the repository at dir and walks the history from HEAD.
func ReadHistory(dir string) (CommitInfo, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return CommitInfo{}, fmt.Errorf("opening repository %s: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return CommitInfo{}, fmt.Errorf("resolving HEAD: %w", err)
	}

	commits, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return CommitInfo{}, fmt.Errorf("reading log: %w", err)
	}
	defer commits.Close()

	info := CommitInfo{Hash: head.Hash().String()}
	err = commits.ForEach(func(c *object.Commit) error {
		if info.Count == 0 {
			info.Message = c.Message
		}
		info.Count++
		return nil
	})
	if err != nil {
		return CommitInfo{}, fmt.Errorf("walking log: %w", err)
	}
	return info, nil
}
