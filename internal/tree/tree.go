package tree

import (
	"fmt"
	"sort"

	"vcsim.dev/vcsim/internal/errors"
)

// GitTree owns the complete commit graph for one simulated repository. It
// holds the authoritative, insertion-ordered collection of commits, the
// checked-out head, the tip of every live branch, and the id allocator.
// Every mutation goes through GitTree so both sides of each parent/child
// edge are always updated together; a failing operation leaves the tree
// untouched.
type GitTree struct {
	head          int
	currentBranch int
	commits       []*Commit
	byID          map[int]*Commit
	branchHeads   map[int]int // branch id -> tip commit id
	ids           idAllocator
}

// New constructs a tree with a single root commit (id 0, branch 0),
// checked out, with its branch registered.
func New() *GitTree {
	t := &GitTree{
		byID:        make(map[int]*Commit),
		branchHeads: make(map[int]int),
	}
	branch := t.ids.NextBranch()
	root := newCommit(t.ids.NextCommit(), branch)
	t.commits = append(t.commits, root)
	t.byID[root.id] = root
	t.branchHeads[branch] = root.id
	t.head = root.id
	t.currentBranch = branch
	return t
}

// Head returns the checked-out commit.
func (t *GitTree) Head() *Commit {
	return t.byID[t.head]
}

// CurrentBranch returns the id of the checked-out branch.
func (t *GitTree) CurrentBranch() int {
	return t.currentBranch
}

// IsHead reports whether the given commit id is the checked-out commit.
func (t *GitTree) IsHead(commitID int) bool {
	return t.head == commitID
}

// GetCommit returns the commit with the given id.
func (t *GitTree) GetCommit(commitID int) (*Commit, error) {
	c, ok := t.byID[commitID]
	if !ok {
		return nil, errors.NewCommitNotFoundError(commitID)
	}
	return c, nil
}

// Latest returns the head commit.
func (t *GitTree) Latest() *Commit {
	return t.Head()
}

// LatestOn returns the tip commit of the given branch.
func (t *GitTree) LatestOn(branchID int) (*Commit, error) {
	tip, ok := t.branchHeads[branchID]
	if !ok {
		return nil, errors.NewBranchNotFoundError(branchID)
	}
	return t.byID[tip], nil
}

// AllBranchIDs returns the ids of all live branches in ascending order.
func (t *GitTree) AllBranchIDs() []int {
	ids := make([]int, 0, len(t.branchHeads))
	for id := range t.branchHeads {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// AllCommitIDs returns every commit id in creation order.
func (t *GitTree) AllCommitIDs() []int {
	ids := make([]int, len(t.commits))
	for i, c := range t.commits {
		ids[i] = c.id
	}
	return ids
}

// AllCommits returns every commit in creation order. The returned slice is
// the caller's to iterate; mutating the commits themselves bypasses the
// tree's invariants.
func (t *GitTree) AllCommits() []*Commit {
	out := make([]*Commit, len(t.commits))
	copy(out, t.commits)
	return out
}

// IsValidCommitID reports whether a commit with the given id exists.
func (t *GitTree) IsValidCommitID(commitID int) bool {
	_, ok := t.byID[commitID]
	return ok
}

// IsValidBranchID reports whether the given branch is registered.
func (t *GitTree) IsValidBranchID(branchID int) bool {
	_, ok := t.branchHeads[branchID]
	return ok
}

// NumCommits returns the number of commits in the tree.
func (t *GitTree) NumCommits() int {
	return len(t.commits)
}

// NumBranches returns the number of live branches.
func (t *GitTree) NumBranches() int {
	return len(t.branchHeads)
}

// AddCommit creates a new commit as a child of head on the current branch
// and checks it out. Head must not already have a child: the current line
// of development stays linear unless explicitly branched or merged.
func (t *GitTree) AddCommit() (*Commit, error) {
	parent := t.Head()
	if parent.NumChildren() > 0 {
		return nil, errors.NewNonLinearError(parent.id)
	}
	return t.appendCommit(parent, t.currentBranch), nil
}

// AddCommitTo creates a new commit as a child of the named parent, on the
// parent's own branch. Head moves to the new commit only when the parent
// was head; the parent's branch tip advances only when the parent was that
// branch's previous tip.
func (t *GitTree) AddCommitTo(parentID int) (*Commit, error) {
	parent, ok := t.byID[parentID]
	if !ok {
		return nil, errors.NewCommitNotFoundError(parentID)
	}
	if parent.NumChildren() > 0 {
		return nil, errors.NewNonLinearError(parent.id)
	}
	return t.appendCommit(parent, parent.branch), nil
}

// appendCommit links a freshly allocated commit under parent. Preconditions
// are already checked; from here the edit always fully applies.
func (t *GitTree) appendCommit(parent *Commit, branch int) *Commit {
	c := newCommit(t.ids.NextCommit(), branch)

	// Reciprocal links. Self-reference is impossible for a fresh id, so the
	// link primitives cannot fail here.
	_ = c.AddParent(parent)
	_ = parent.AddChild(c)

	t.commits = append(t.commits, c)
	t.byID[c.id] = c

	if tip, ok := t.branchHeads[branch]; ok && tip == parent.id {
		t.branchHeads[branch] = c.id
	}
	if t.head == parent.id {
		t.head = c.id
		t.currentBranch = branch
	}
	return c
}

// Branch registers a new branch whose tip is the current head commit. The
// new branch is not checked out.
func (t *GitTree) Branch() int {
	id := t.ids.NextBranch()
	t.branchHeads[id] = t.head
	return id
}

// BranchAt registers a new branch whose tip is the given commit. The branch
// id is reserved before validation and rolled back if the commit does not
// exist, so a failed call never burns an id.
func (t *GitTree) BranchAt(commitID int) (int, error) {
	id := t.ids.NextBranch()
	if _, ok := t.byID[commitID]; !ok {
		t.ids.RollbackBranch()
		return 0, errors.NewCommitNotFoundError(commitID)
	}
	t.branchHeads[id] = commitID
	return id, nil
}

// Checkout moves head to the tip of the given branch and makes it the
// current branch.
func (t *GitTree) Checkout(branchID int) error {
	tip, ok := t.branchHeads[branchID]
	if !ok {
		return errors.NewBranchNotFoundError(branchID)
	}
	t.head = tip
	t.currentBranch = branchID
	return nil
}

// CheckoutCommit moves head directly to the given commit; the current
// branch becomes the commit's own branch.
func (t *GitTree) CheckoutCommit(commitID int) error {
	c, ok := t.byID[commitID]
	if !ok {
		return errors.NewCommitNotFoundError(commitID)
	}
	t.head = c.id
	t.currentBranch = c.branch
	return nil
}

// Merge creates a merge commit on the current branch whose parents are the
// current head and the tip of the given branch. The merge commit becomes
// head, and both branches' tips move to it.
func (t *GitTree) Merge(branchID int) (*Commit, error) {
	if branchID == t.currentBranch {
		return nil, errors.ErrSameBranch
	}
	otherTip, ok := t.branchHeads[branchID]
	if !ok {
		return nil, errors.NewBranchNotFoundError(branchID)
	}
	if otherTip == t.head {
		return nil, fmt.Errorf("branch %d tip is already the current head: %w", branchID, errors.ErrSameBranch)
	}

	m := t.mergeInto(t.Head(), t.byID[otherTip], t.currentBranch)
	t.branchHeads[t.currentBranch] = m.id
	t.branchHeads[branchID] = m.id
	t.head = m.id
	return m, nil
}

// MergeCommits creates a merge commit parented on the two given commits,
// on the first parent's branch. Head and branch tips follow the same rules
// as AddCommitTo: head moves only if the first parent was head, and a
// branch tip advances only if it pointed at the corresponding parent.
func (t *GitTree) MergeCommits(parentID, otherID int) (*Commit, error) {
	if parentID == otherID {
		return nil, fmt.Errorf("merging commit %d with itself: %w", parentID, errors.ErrSelfReference)
	}
	parent, ok := t.byID[parentID]
	if !ok {
		return nil, errors.NewCommitNotFoundError(parentID)
	}
	other, ok := t.byID[otherID]
	if !ok {
		return nil, errors.NewCommitNotFoundError(otherID)
	}

	m := t.mergeInto(parent, other, parent.branch)
	if tip, ok := t.branchHeads[parent.branch]; ok && tip == parent.id {
		t.branchHeads[parent.branch] = m.id
	}
	if tip, ok := t.branchHeads[other.branch]; ok && tip == other.id {
		t.branchHeads[other.branch] = m.id
	}
	if t.head == parent.id {
		t.head = m.id
		t.currentBranch = parent.branch
	}
	return m, nil
}

// mergeInto allocates the merge commit and wires both parent edges. Callers
// have validated the parents; bookkeeping of head and tips stays with them.
func (t *GitTree) mergeInto(parent, other *Commit, branch int) *Commit {
	m := newCommit(t.ids.NextCommit(), branch)
	_ = m.AddParent(parent)
	_ = m.AddParent(other)
	_ = parent.AddChild(m)
	_ = other.AddChild(m)
	t.commits = append(t.commits, m)
	t.byID[m.id] = m
	return m
}

// Undo removes the most recently created commit and reports whether a
// commit was removed. Head and branch tips that pointed at the removed
// commit roll back to its parents. With only the root left, Undo is a
// no-op; id counters are never rolled back.
func (t *GitTree) Undo() bool {
	if len(t.commits) <= 1 {
		return false
	}
	last := t.commits[len(t.commits)-1]

	// The newest commit can have no children, so only parent edges need
	// detaching.
	for _, p := range last.parents {
		_ = t.byID[p.ID].RemoveChild(last.id)
	}

	for branch, tip := range t.branchHeads {
		if tip != last.id {
			continue
		}
		t.branchHeads[branch] = t.undoTipFor(last, branch)
	}

	if t.head == last.id {
		t.head = last.parents[0].ID
		if !t.IsValidBranchID(t.currentBranch) {
			t.currentBranch = t.byID[t.head].branch
		}
	}

	t.commits = t.commits[:len(t.commits)-1]
	delete(t.byID, last.id)
	return true
}

// undoTipFor picks the commit a branch tip rolls back to when the removed
// commit was that tip: the removed commit's parent on the same branch if
// one exists, otherwise its first parent (the commit the branch originally
// diverged from).
func (t *GitTree) undoTipFor(removed *Commit, branch int) int {
	for _, p := range removed.parents {
		if p.Branch == branch {
			return p.ID
		}
	}
	return removed.parents[0].ID
}

// Reset discards all commits and branches and reinitializes the tree to
// its freshly constructed state, counters included.
func (t *GitTree) Reset() {
	*t = *New()
}
