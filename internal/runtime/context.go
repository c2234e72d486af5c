package runtime

import (
	"quati.dev/quati/internal/config"
	"quati.dev/quati/internal/git"
	"quati.dev/quati/internal/output"
)

// Context provides access to git, output and configuration for commands
type Context struct {
	Git      *git.Git
	Splog    *output.Splog
	Config   config.Config
	RepoRoot string
}

// NewContext creates a new context. A nil splog gets a console-only logger.
func NewContext(g *git.Git, splog *output.Splog, cfg config.Config) *Context {
	if splog == nil {
		splog = output.NewSplog()
	}
	return &Context{
		Git:    g,
		Splog:  splog,
		Config: cfg,
	}
}

// NewContextForDir creates a context backed by real git processes running in dir.
// Configuration is loaded from the repository containing dir, if any.
func NewContextForDir(dir string, splog *output.Splog) (*Context, error) {
	repoRoot := git.FindRepoRoot(dir)

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return nil, err
	}

	ctx := NewContext(git.NewWithDir(dir), splog, cfg)
	ctx.RepoRoot = repoRoot
	return ctx, nil
}
