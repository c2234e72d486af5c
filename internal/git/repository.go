package git

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNotOnBranch indicates that HEAD is detached
var ErrNotOnBranch = errors.New("HEAD is not on a branch")

// Repository wraps a go-git repository
type Repository struct {
	*git.Repository
	root string
}

// OpenRepository opens the repository containing path, searching parent directories
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	root := absPath
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}

	return &Repository{
		Repository: repo,
		root:       root,
	}, nil
}

// FindRepoRoot returns the worktree root of the repository containing path,
// or an empty string when path is not inside a repository.
func FindRepoRoot(path string) string {
	repo, err := OpenRepository(path)
	if err != nil {
		return ""
	}
	return repo.Root()
}

// Root returns the worktree root directory of the repository
func (r *Repository) Root() string {
	return r.root
}

// HeadBranch returns the short name of the branch HEAD points to
func (r *Repository) HeadBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", ErrNotOnBranch
	}

	return head.Name().Short(), nil
}

// HasBranch reports whether a local branch exists
func (r *Repository) HasBranch(name string) bool {
	_, err := r.Reference(plumbing.NewBranchReferenceName(name), true)
	return err == nil
}

// UpstreamRemote returns the remote configured for branch name, if any
func (r *Repository) UpstreamRemote(name string) (string, error) {
	cfg, err := r.Config()
	if err != nil {
		return "", fmt.Errorf("failed to read repository config: %w", err)
	}
	branch, ok := cfg.Branches[name]
	if !ok {
		return "", nil
	}
	return branch.Remote, nil
}
