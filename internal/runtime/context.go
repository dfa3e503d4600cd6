// Package runtime provides the execution context for vcsim commands.
//
// It encapsulates shared dependencies needed by the CLI, such as the
// commit graph, the state store, and the logger, so commands do not
// thread them individually.
package runtime

import (
	"fmt"

	"vcsim.dev/vcsim/internal/config"
	"vcsim.dev/vcsim/internal/output"
	"vcsim.dev/vcsim/internal/store"
	"vcsim.dev/vcsim/internal/tree"
)

// Context provides access to the graph, store, and output for commands
type Context struct {
	Tree     *tree.GitTree
	Store    *store.Store
	Splog    *output.Splog
	StateDir string
}

// NewContext creates a context around an existing tree without any
// persistence. Used by tests and the HTTP server.
func NewContext(t *tree.GitTree) *Context {
	return &Context{
		Tree:  t,
		Splog: output.NewSplog(),
	}
}

// GetContext loads the saved session from the state directory, or starts
// a fresh one when no saved state exists.
func GetContext() (*Context, error) {
	dir, err := config.GetStatePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve state directory: %w", err)
	}
	s := store.NewStore(dir)

	var t *tree.GitTree
	if s.Exists() {
		loaded, err := s.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		t = loaded
	} else {
		t = tree.New()
	}

	return &Context{
		Tree:     t,
		Store:    s,
		Splog:    output.NewSplog(),
		StateDir: dir,
	}, nil
}

// RecordHistory writes a previously captured state to history. Callers
// capture the state before mutating the tree and record it only after the
// mutation succeeds. A context without a store skips it.
func (ctx *Context) RecordHistory(state *tree.Snapshot, command string, args []string) error {
	if ctx.Store == nil {
		return nil
	}
	return ctx.Store.TakeSnapshot(state, command, args)
}

// Save persists the current state. A context without a store skips it.
func (ctx *Context) Save() error {
	if ctx.Store == nil {
		return nil
	}
	return ctx.Store.Save(ctx.Tree)
}

// Close flushes the logger.
func (ctx *Context) Close() {
	if ctx.Splog != nil {
		ctx.Splog.Close()
	}
}
