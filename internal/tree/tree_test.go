package tree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"vcsim.dev/vcsim/internal/errors"
)

func TestNew(t *testing.T) {
	tr := New()

	require.Equal(t, 1, tr.NumCommits())
	require.Equal(t, 1, tr.NumBranches())
	require.Equal(t, 0, tr.Head().ID())
	require.Equal(t, 0, tr.CurrentBranch())
	require.True(t, tr.IsHead(0))
	require.Equal(t, 0, tr.Head().NumParents())

	tip, err := tr.LatestOn(0)
	require.NoError(t, err)
	require.Equal(t, 0, tip.ID())
}

func TestAddCommit(t *testing.T) {
	t.Run("advances head and branch tip", func(t *testing.T) {
		tr := New()

		c, err := tr.AddCommit()
		require.NoError(t, err)
		require.Equal(t, 1, c.ID())
		require.Equal(t, 0, c.Branch())
		require.Equal(t, []Link{{ID: 0, Branch: 0}}, c.Parents())
		require.True(t, tr.IsHead(1))

		tip, err := tr.LatestOn(0)
		require.NoError(t, err)
		require.Equal(t, 1, tip.ID())
	})

	t.Run("fails when head already has a child", func(t *testing.T) {
		tr := New()

		_, err := tr.AddCommit()
		require.NoError(t, err)

		// Step back onto a commit that already has a child.
		require.NoError(t, tr.CheckoutCommit(0))
		_, err = tr.AddCommit()
		require.ErrorIs(t, err, errors.ErrNonLinearHistory)
		require.Equal(t, 2, tr.NumCommits(), "failed call must not change the tree")
	})

	t.Run("two calls in a row stay linear", func(t *testing.T) {
		tr := New()

		_, err := tr.AddCommit()
		require.NoError(t, err)
		_, err = tr.AddCommit()
		require.NoError(t, err)
		require.Equal(t, []int{0, 1, 2}, tr.AllCommitIDs())
	})
}

func TestAddCommitTo(t *testing.T) {
	t.Run("lands on the parent's branch without moving head", func(t *testing.T) {
		tr := New()
		_, err := tr.AddCommit() // commit 1
		require.NoError(t, err)

		branch := tr.Branch() // tip at commit 1
		require.NoError(t, tr.Checkout(branch))
		onBranch, err := tr.AddCommit() // commit 2 on the new branch
		require.NoError(t, err)
		require.NoError(t, tr.Checkout(0)) // head back to commit 1? no: tip of 0 is 1

		c, err := tr.AddCommitTo(onBranch.ID())
		require.NoError(t, err)
		require.Equal(t, branch, c.Branch())
		require.False(t, tr.IsHead(c.ID()), "head stays put when the parent was not head")

		tip, err := tr.LatestOn(branch)
		require.NoError(t, err)
		require.Equal(t, c.ID(), tip.ID(), "parent was the branch tip, so the tip advances")
	})

	t.Run("checks out the new commit when the parent was head", func(t *testing.T) {
		tr := New()
		_, err := tr.AddCommit()
		require.NoError(t, err)

		c, err := tr.AddCommitTo(1)
		require.NoError(t, err)
		require.True(t, tr.IsHead(c.ID()))
		require.Equal(t, c.Branch(), tr.CurrentBranch())
	})

	t.Run("fails for unknown or occupied parents", func(t *testing.T) {
		tr := New()
		_, err := tr.AddCommit()
		require.NoError(t, err)

		_, err = tr.AddCommitTo(42)
		require.ErrorIs(t, err, errors.ErrCommitNotFound)

		_, err = tr.AddCommitTo(0)
		require.ErrorIs(t, err, errors.ErrNonLinearHistory)
	})
}

func TestBranch(t *testing.T) {
	t.Run("registers a tip at head without checking out", func(t *testing.T) {
		tr := New()
		_, err := tr.AddCommit()
		require.NoError(t, err)

		branch := tr.Branch()
		require.Equal(t, 1, branch)
		require.Equal(t, 0, tr.CurrentBranch(), "branch() must not check out")
		require.True(t, tr.IsValidBranchID(branch))

		tip, err := tr.LatestOn(branch)
		require.NoError(t, err)
		require.Equal(t, 1, tip.ID())
	})

	t.Run("isolates the new branch from the originating one", func(t *testing.T) {
		tr := New()
		_, err := tr.AddCommit() // commit 1
		require.NoError(t, err)

		branch := tr.Branch()
		require.NoError(t, tr.Checkout(branch))

		c, err := tr.AddCommit() // commit 2 on branch 1
		require.NoError(t, err)
		require.Equal(t, branch, c.Branch())
		require.Equal(t, []Link{{ID: 1, Branch: 0}}, c.Parents())
		require.True(t, c.IsNewBranch())

		origTip, err := tr.LatestOn(0)
		require.NoError(t, err)
		require.Equal(t, 1, origTip.ID(), "originating branch tip is untouched")
	})

	t.Run("branch ids are never reused", func(t *testing.T) {
		tr := New()
		first := tr.Branch()
		second := tr.Branch()
		require.Equal(t, first+1, second)
	})
}

func TestBranchAt(t *testing.T) {
	t.Run("points the new branch at the given commit", func(t *testing.T) {
		tr := New()
		_, err := tr.AddCommit()
		require.NoError(t, err)
		_, err = tr.AddCommit()
		require.NoError(t, err)

		branch, err := tr.BranchAt(1)
		require.NoError(t, err)

		tip, err := tr.LatestOn(branch)
		require.NoError(t, err)
		require.Equal(t, 1, tip.ID())
	})

	t.Run("rolls back the reserved id on failure", func(t *testing.T) {
		tr := New()

		_, err := tr.BranchAt(42)
		require.ErrorIs(t, err, errors.ErrCommitNotFound)

		// The failed reservation must not leave a gap in the id space.
		branch := tr.Branch()
		require.Equal(t, 1, branch)
	})
}

func TestCheckout(t *testing.T) {
	t.Run("moves head to the branch tip", func(t *testing.T) {
		tr := New()
		_, err := tr.AddCommit()
		require.NoError(t, err)

		branch := tr.Branch()
		require.NoError(t, tr.Checkout(branch))
		require.Equal(t, branch, tr.CurrentBranch())
		require.True(t, tr.IsHead(1))
	})

	t.Run("fails for unknown branch", func(t *testing.T) {
		tr := New()
		err := tr.Checkout(9)
		require.ErrorIs(t, err, errors.ErrBranchNotFound)

		var branchErr *errors.BranchNotFoundError
		require.ErrorAs(t, err, &branchErr)
		require.Equal(t, 9, branchErr.ID)
	})
}

func TestCheckoutCommit(t *testing.T) {
	t.Run("moves head and adopts the commit's branch", func(t *testing.T) {
		tr := New()
		_, err := tr.AddCommit()
		require.NoError(t, err)
		branch := tr.Branch()
		require.NoError(t, tr.Checkout(branch))
		_, err = tr.AddCommit() // commit 2 on the new branch
		require.NoError(t, err)

		require.NoError(t, tr.CheckoutCommit(1))
		require.True(t, tr.IsHead(1))
		require.Equal(t, 0, tr.CurrentBranch())
	})

	t.Run("fails for unknown commit", func(t *testing.T) {
		tr := New()
		err := tr.CheckoutCommit(42)
		require.ErrorIs(t, err, errors.ErrCommitNotFound)
	})
}

// buildDiverged makes the canonical two-branch shape:
//
//	0 ── 1 ── (branch 1) ── 2
//
// with head back on commit 1 and branch 0 checked out.
func buildDiverged(t *testing.T) (*GitTree, int) {
	t.Helper()
	tr := New()
	_, err := tr.AddCommit() // commit 1
	require.NoError(t, err)
	branch := tr.Branch()
	require.NoError(t, tr.Checkout(branch))
	_, err = tr.AddCommit() // commit 2 on branch
	require.NoError(t, err)
	require.NoError(t, tr.Checkout(0))
	return tr, branch
}

func TestMerge(t *testing.T) {
	t.Run("creates a two-parent commit and moves both tips", func(t *testing.T) {
		tr, branch := buildDiverged(t)

		m, err := tr.Merge(branch)
		require.NoError(t, err)
		require.True(t, m.IsMergeCommit())
		require.Equal(t, []Link{{ID: 1, Branch: 0}, {ID: 2, Branch: branch}}, m.Parents())
		require.True(t, tr.IsHead(m.ID()))
		require.Equal(t, 0, m.Branch())

		// Both prior parents now list the merge commit as a child.
		for _, id := range []int{1, 2} {
			c, err := tr.GetCommit(id)
			require.NoError(t, err)
			require.Equal(t, m.ID(), c.Children()[c.NumChildren()-1].ID)
		}

		for _, b := range []int{0, branch} {
			tip, err := tr.LatestOn(b)
			require.NoError(t, err)
			require.Equal(t, m.ID(), tip.ID())
		}
	})

	t.Run("rejects merging the current branch", func(t *testing.T) {
		tr := New()
		_, err := tr.Merge(0)
		require.ErrorIs(t, err, errors.ErrSameBranch)
	})

	t.Run("rejects a branch whose tip is already head", func(t *testing.T) {
		tr := New()
		branch := tr.Branch() // tip is the root commit, which is head
		_, err := tr.Merge(branch)
		require.ErrorIs(t, err, errors.ErrSameBranch)
	})

	t.Run("fails for unknown branch", func(t *testing.T) {
		tr := New()
		_, err := tr.Merge(9)
		require.ErrorIs(t, err, errors.ErrBranchNotFound)
	})
}

func TestMergeCommits(t *testing.T) {
	t.Run("merges two named commits on the first parent's branch", func(t *testing.T) {
		tr, branch := buildDiverged(t)

		m, err := tr.MergeCommits(2, 1)
		require.NoError(t, err)
		require.Equal(t, branch, m.Branch())
		require.Equal(t, []Link{{ID: 2, Branch: branch}, {ID: 1, Branch: 0}}, m.Parents())

		// Commit 2 was branch 1's tip, commit 1 was branch 0's tip: both move.
		for _, b := range []int{0, branch} {
			tip, err := tr.LatestOn(b)
			require.NoError(t, err)
			require.Equal(t, m.ID(), tip.ID())
		}

		require.False(t, tr.IsHead(m.ID()), "head stays unless the first parent was head")
	})

	t.Run("checks out the merge when the first parent was head", func(t *testing.T) {
		tr, _ := buildDiverged(t) // head is commit 1

		m, err := tr.MergeCommits(1, 2)
		require.NoError(t, err)
		require.True(t, tr.IsHead(m.ID()))
		require.Equal(t, m.Branch(), tr.CurrentBranch())
	})

	t.Run("rejects self-merge and unknown commits", func(t *testing.T) {
		tr, _ := buildDiverged(t)

		_, err := tr.MergeCommits(1, 1)
		require.ErrorIs(t, err, errors.ErrSelfReference)

		_, err = tr.MergeCommits(42, 1)
		require.ErrorIs(t, err, errors.ErrCommitNotFound)

		_, err = tr.MergeCommits(1, 42)
		require.ErrorIs(t, err, errors.ErrCommitNotFound)
	})
}

func TestUndo(t *testing.T) {
	t.Run("removes the newest commit and rolls head back", func(t *testing.T) {
		tr := New()
		_, err := tr.AddCommit()
		require.NoError(t, err)

		require.True(t, tr.Undo())
		require.Equal(t, 1, tr.NumCommits())
		require.True(t, tr.IsHead(0))
		require.Equal(t, 0, tr.Head().NumChildren(), "parent's child link is detached")

		tip, err := tr.LatestOn(0)
		require.NoError(t, err)
		require.Equal(t, 0, tip.ID())
	})

	t.Run("is a no-op on the root", func(t *testing.T) {
		tr := New()
		require.False(t, tr.Undo())
		require.Equal(t, 1, tr.NumCommits())

		// Counters are untouched by the boundary no-op.
		c, err := tr.AddCommit()
		require.NoError(t, err)
		require.Equal(t, 1, c.ID())
		require.Equal(t, 1, tr.Branch())
	})

	t.Run("does not reuse ids after undo", func(t *testing.T) {
		tr := New()
		_, err := tr.AddCommit()
		require.NoError(t, err)
		require.True(t, tr.Undo())

		c, err := tr.AddCommit()
		require.NoError(t, err)
		require.Equal(t, 2, c.ID(), "commit ids stay unique across undo")
	})

	t.Run("rolls both tips back after undoing a merge", func(t *testing.T) {
		tr, branch := buildDiverged(t)
		m, err := tr.Merge(branch)
		require.NoError(t, err)
		require.True(t, tr.IsHead(m.ID()))

		require.True(t, tr.Undo())

		tip, err := tr.LatestOn(0)
		require.NoError(t, err)
		require.Equal(t, 1, tip.ID())

		tip, err = tr.LatestOn(branch)
		require.NoError(t, err)
		require.Equal(t, 2, tip.ID())

		require.True(t, tr.IsHead(1))
		one, err := tr.GetCommit(1)
		require.NoError(t, err)
		two, err := tr.GetCommit(2)
		require.NoError(t, err)
		require.Equal(t, 1, one.NumChildren())
		require.Equal(t, 0, two.NumChildren())
	})

	t.Run("removes a branch root and restores the fork point tip", func(t *testing.T) {
		tr, branch := buildDiverged(t)

		// Newest commit is 2, the first commit on the new branch.
		require.True(t, tr.Undo())
		require.True(t, tr.IsValidBranchID(branch))

		tip, err := tr.LatestOn(branch)
		require.NoError(t, err)
		require.Equal(t, 1, tip.ID(), "branch points back at the commit it diverged from")
	})
}

func TestReset(t *testing.T) {
	tr, branch := buildDiverged(t)
	_, err := tr.Merge(branch)
	require.NoError(t, err)

	tr.Reset()

	fresh := New()
	require.Equal(t, fresh.Snapshot(), tr.Snapshot(), "reset is structurally a fresh tree")

	// Counters start over as well.
	c, err := tr.AddCommit()
	require.NoError(t, err)
	require.Equal(t, 1, c.ID())
	require.Equal(t, 1, tr.Branch())
}

func TestInvariants(t *testing.T) {
	// Drive a representative mixed sequence and re-check the global
	// properties after every step.
	tr := New()

	step := func(name string, fn func() error) {
		t.Helper()
		require.NoError(t, fn(), name)
		requireUniqueIDs(t, tr)
		requireReciprocity(t, tr)
		requireAcyclic(t, tr)
		requireBranchHeadsValid(t, tr)
	}

	step("commit", func() error { _, err := tr.AddCommit(); return err })
	step("branch+checkout", func() error { return tr.Checkout(tr.Branch()) })
	step("commit on branch", func() error { _, err := tr.AddCommit(); return err })
	step("checkout 0", func() error { return tr.Checkout(0) })
	step("merge", func() error { _, err := tr.Merge(1); return err })
	step("undo merge", func() error { tr.Undo(); return nil })
	step("second branch", func() error {
		_, err := tr.BranchAt(0)
		return err
	})
	step("merge commits", func() error { _, err := tr.MergeCommits(2, 1); return err })
	step("undo again", func() error { tr.Undo(); return nil })
}

func requireUniqueIDs(t *testing.T, tr *GitTree) {
	t.Helper()
	seen := make(map[int]bool)
	for _, id := range tr.AllCommitIDs() {
		require.False(t, seen[id], "duplicate commit id %d", id)
		seen[id] = true
	}
}

func requireReciprocity(t *testing.T, tr *GitTree) {
	t.Helper()
	for _, c := range tr.AllCommits() {
		for _, p := range c.Parents() {
			parent, err := tr.GetCommit(p.ID)
			require.NoError(t, err)
			require.True(t, hasLink(parent.children, c.ID()),
				"commit %d lists parent %d without the reverse child link", c.ID(), p.ID)
		}
		for _, ch := range c.Children() {
			child, err := tr.GetCommit(ch.ID)
			require.NoError(t, err)
			require.True(t, hasLink(child.parents, c.ID()),
				"commit %d lists child %d without the reverse parent link", c.ID(), ch.ID)
		}
	}
}

func requireAcyclic(t *testing.T, tr *GitTree) {
	t.Helper()
	for _, c := range tr.AllCommits() {
		visited := make(map[int]bool)
		queue := []int{}
		for _, p := range c.Parents() {
			queue = append(queue, p.ID)
		}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			require.NotEqual(t, c.ID(), id, "commit %d reaches itself through parents", c.ID())
			if visited[id] {
				continue
			}
			visited[id] = true
			node, err := tr.GetCommit(id)
			require.NoError(t, err)
			for _, p := range node.Parents() {
				queue = append(queue, p.ID)
			}
		}
	}
}

func requireBranchHeadsValid(t *testing.T, tr *GitTree) {
	t.Helper()
	for _, branch := range tr.AllBranchIDs() {
		tip, err := tr.LatestOn(branch)
		require.NoError(t, err)
		require.True(t, tr.IsValidCommitID(tip.ID()))
	}
	require.True(t, tr.IsValidCommitID(tr.Head().ID()))
}
