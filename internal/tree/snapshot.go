package tree

import (
	"fmt"

	"vcsim.dev/vcsim/internal/errors"
)

// Snapshot is a plain, JSON-serializable value of a tree's full state. The
// core does no I/O itself; surrounding tools (the CLI store, the HTTP
// server) persist and exchange snapshots.
type Snapshot struct {
	Head          int              `json:"head"`
	CurrentBranch int              `json:"current_branch"`
	Commits       []CommitSnapshot `json:"commits"`
	BranchHeads   map[int]int      `json:"branch_heads"`
	NextCommitID  int              `json:"next_commit_id"`
	NextBranchID  int              `json:"next_branch_id"`
}

// CommitSnapshot is the serialized form of a single commit.
type CommitSnapshot struct {
	ID       int    `json:"id"`
	Branch   int    `json:"branch"`
	Parents  []Link `json:"parents,omitempty"`
	Children []Link `json:"children,omitempty"`
}

// Snapshot captures the complete state of the tree.
func (t *GitTree) Snapshot() *Snapshot {
	s := &Snapshot{
		Head:          t.head,
		CurrentBranch: t.currentBranch,
		Commits:       make([]CommitSnapshot, len(t.commits)),
		BranchHeads:   make(map[int]int, len(t.branchHeads)),
		NextCommitID:  t.ids.nextCommit,
		NextBranchID:  t.ids.nextBranch,
	}
	for i, c := range t.commits {
		s.Commits[i] = CommitSnapshot{
			ID:       c.id,
			Branch:   c.branch,
			Parents:  c.Parents(),
			Children: c.Children(),
		}
	}
	for branch, tip := range t.branchHeads {
		s.BranchHeads[branch] = tip
	}
	return s
}

// FromSnapshot reconstructs a tree from a snapshot, checking every
// structural invariant: commit id uniqueness, link reciprocity, no
// self-references, branch heads and head resolving to live commits, and
// counters strictly ahead of every issued id.
func FromSnapshot(s *Snapshot) (*GitTree, error) {
	if len(s.Commits) == 0 {
		return nil, fmt.Errorf("snapshot has no commits")
	}

	t := &GitTree{
		head:          s.Head,
		currentBranch: s.CurrentBranch,
		byID:          make(map[int]*Commit, len(s.Commits)),
		branchHeads:   make(map[int]int, len(s.BranchHeads)),
		ids:           idAllocator{nextCommit: s.NextCommitID, nextBranch: s.NextBranchID},
	}

	for _, cs := range s.Commits {
		if _, dup := t.byID[cs.ID]; dup {
			return nil, fmt.Errorf("snapshot contains commit id %d twice", cs.ID)
		}
		if cs.ID >= s.NextCommitID {
			return nil, fmt.Errorf("commit id %d is not below the next commit id %d", cs.ID, s.NextCommitID)
		}
		c := newCommit(cs.ID, cs.Branch)
		c.parents = append(c.parents, cs.Parents...)
		c.children = append(c.children, cs.Children...)
		t.commits = append(t.commits, c)
		t.byID[c.id] = c
	}

	for _, c := range t.commits {
		if err := checkLinks(t, c); err != nil {
			return nil, err
		}
	}

	for branch, tip := range s.BranchHeads {
		if _, ok := t.byID[tip]; !ok {
			return nil, fmt.Errorf("branch %d points at unknown commit %d: %w", branch, tip, errors.ErrCommitNotFound)
		}
		if branch >= s.NextBranchID {
			return nil, fmt.Errorf("branch id %d is not below the next branch id %d", branch, s.NextBranchID)
		}
		t.branchHeads[branch] = tip
	}
	if len(t.branchHeads) == 0 {
		return nil, fmt.Errorf("snapshot has no branches")
	}

	if _, ok := t.byID[t.head]; !ok {
		return nil, fmt.Errorf("head points at unknown commit %d: %w", t.head, errors.ErrCommitNotFound)
	}

	return t, nil
}

// checkLinks validates one commit's edges: every link resolves, none point
// back at the commit itself, and the reverse edge exists on the other side.
func checkLinks(t *GitTree, c *Commit) error {
	for _, p := range c.parents {
		if p.ID == c.id {
			return fmt.Errorf("commit %d lists itself as a parent: %w", c.id, errors.ErrSelfReference)
		}
		parent, ok := t.byID[p.ID]
		if !ok {
			return fmt.Errorf("commit %d has unknown parent %d: %w", c.id, p.ID, errors.ErrCommitNotFound)
		}
		if !hasLink(parent.children, c.id) {
			return fmt.Errorf("commit %d lists parent %d, but %d does not list it as a child", c.id, p.ID, p.ID)
		}
	}
	for _, ch := range c.children {
		if ch.ID == c.id {
			return fmt.Errorf("commit %d lists itself as a child: %w", c.id, errors.ErrSelfReference)
		}
		child, ok := t.byID[ch.ID]
		if !ok {
			return fmt.Errorf("commit %d has unknown child %d: %w", c.id, ch.ID, errors.ErrCommitNotFound)
		}
		if !hasLink(child.parents, c.id) {
			return fmt.Errorf("commit %d lists child %d, but %d does not list it as a parent", c.id, ch.ID, ch.ID)
		}
	}
	return nil
}

func hasLink(links []Link, id int) bool {
	for _, l := range links {
		if l.ID == id {
			return true
		}
	}
	return false
}
