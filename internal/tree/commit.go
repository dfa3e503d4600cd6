package tree

import (
	"fmt"

	"vcsim.dev/vcsim/internal/errors"
)

// Link identifies a neighboring commit in the graph. Branch records the
// neighbor's branch id at link time; a commit's branch never changes after
// creation, so the recorded value stays accurate for the life of the link.
type Link struct {
	ID     int `json:"id"`
	Branch int `json:"branch"`
}

// Commit is a node in the history DAG. Each commit has a unique id, the id
// of the branch it was created on, and ordered parent/child links. Commits
// are created and linked by GitTree; the link primitives below update one
// side only, and GitTree is responsible for the reciprocal edge.
type Commit struct {
	id       int
	branch   int
	parents  []Link
	children []Link
}

func newCommit(id, branch int) *Commit {
	return &Commit{id: id, branch: branch}
}

// ID returns the commit's unique id.
func (c *Commit) ID() int {
	return c.id
}

// Branch returns the id of the branch the commit was created on.
func (c *Commit) Branch() int {
	return c.branch
}

// NumParents returns the number of parent links.
func (c *Commit) NumParents() int {
	return len(c.parents)
}

// NumChildren returns the number of child links.
func (c *Commit) NumChildren() int {
	return len(c.children)
}

// Parents returns a copy of the parent links in order.
func (c *Commit) Parents() []Link {
	out := make([]Link, len(c.parents))
	copy(out, c.parents)
	return out
}

// Children returns a copy of the child links in order.
func (c *Commit) Children() []Link {
	out := make([]Link, len(c.children))
	copy(out, c.children)
	return out
}

// IsMergeCommit reports whether the commit has two or more parents.
func (c *Commit) IsMergeCommit() bool {
	return len(c.parents) >= 2
}

// IsNewBranch reports whether the commit is the first commit on its branch:
// no parent carries the commit's own branch id. The root commit has no
// parents and is therefore a branch root.
func (c *Commit) IsNewBranch() bool {
	for _, p := range c.parents {
		if p.Branch == c.branch {
			return false
		}
	}
	return true
}

// AddParent appends p as a parent of the commit. It does not update p to
// reflect the change; the caller adds the reciprocal child link.
func (c *Commit) AddParent(p *Commit) error {
	if p.id == c.id {
		return fmt.Errorf("adding commit %d as its own parent: %w", c.id, errors.ErrSelfReference)
	}
	c.parents = append(c.parents, Link{ID: p.id, Branch: p.branch})
	return nil
}

// AddChild appends ch as a child of the commit. It does not update ch to
// reflect the change; the caller adds the reciprocal parent link.
func (c *Commit) AddChild(ch *Commit) error {
	if ch.id == c.id {
		return fmt.Errorf("adding commit %d as its own child: %w", c.id, errors.ErrSelfReference)
	}
	c.children = append(c.children, Link{ID: ch.id, Branch: ch.branch})
	return nil
}

// RemoveParent removes the first parent link with the given id.
func (c *Commit) RemoveParent(id int) error {
	for i, p := range c.parents {
		if p.ID == id {
			c.parents = append(c.parents[:i], c.parents[i+1:]...)
			return nil
		}
	}
	return errors.NewLinkNotFoundError(c.id, id, "parent")
}

// RemoveChild removes the first child link with the given id.
func (c *Commit) RemoveChild(id int) error {
	for i, ch := range c.children {
		if ch.ID == id {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return nil
		}
	}
	return errors.NewLinkNotFoundError(c.id, id, "child")
}

// Describe returns a one-line structural description of the commit. It is
// the hook a rendering collaborator builds on; the core imposes no display
// format beyond this.
func (c *Commit) Describe() string {
	parents := make([]int, len(c.parents))
	for i, p := range c.parents {
		parents[i] = p.ID
	}
	children := make([]int, len(c.children))
	for i, ch := range c.children {
		children[i] = ch.ID
	}
	return fmt.Sprintf("commit %d (branch %d) parents=%v children=%v", c.id, c.branch, parents, children)
}
