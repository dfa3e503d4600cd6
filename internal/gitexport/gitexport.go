// Package gitexport materializes the simulated graph as a real git repository.
//
// Each simulated commit becomes a git commit with the same parent structure,
// each branch becomes a ref named branch-N at its tip, and HEAD points at the
// current branch. Exports go to an in-memory filesystem by default, or to a
// directory on disk.
package gitexport

import (
	"fmt"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/go-git/go-git/v5/storage/memory"

	"vcsim.dev/vcsim/internal/tree"
)

// signature returns the author/committer signature for exported commits.
func signature() *object.Signature {
	return &object.Signature{
		Name:  "vcsim",
		Email: "vcsim@localhost",
		When:  time.Now(),
	}
}

// ExportToMemory exports the graph into an in-memory repository.
func ExportToMemory(t *tree.GitTree) (*gogit.Repository, error) {
	fs := memfs.New()
	repo, err := gogit.Init(memory.NewStorage(), fs)
	if err != nil {
		return nil, fmt.Errorf("failed to init repository: %w", err)
	}
	if err := export(t, repo, fs); err != nil {
		return nil, err
	}
	return repo, nil
}

// ExportToPath exports the graph into a repository at path on disk.
func ExportToPath(t *tree.GitTree, path string) (*gogit.Repository, error) {
	wt := osfs.New(path)
	dot, err := wt.Chroot(gogit.GitDirName)
	if err != nil {
		return nil, fmt.Errorf("failed to create git dir: %w", err)
	}
	st := filesystem.NewStorage(dot, cache.NewObjectLRUDefault())

	repo, err := gogit.Init(st, wt)
	if err != nil {
		return nil, fmt.Errorf("failed to init repository: %w", err)
	}
	if err := export(t, repo, wt); err != nil {
		return nil, err
	}
	return repo, nil
}

func export(t *tree.GitTree, repo *gogit.Repository, fs billy.Filesystem) error {
	w, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	// Creation order guarantees parents are exported before their children.
	hashes := make(map[int]plumbing.Hash, t.NumCommits())
	for _, id := range t.AllCommitIDs() {
		c, err := t.GetCommit(id)
		if err != nil {
			return err
		}

		hash, err := exportCommit(w, fs, c, hashes)
		if err != nil {
			return fmt.Errorf("failed to export commit %d: %w", id, err)
		}
		hashes[id] = hash
	}

	if err := exportBranches(t, repo, hashes); err != nil {
		return err
	}

	// Init creates a default branch we never commit to under its name.
	defaultRef := plumbing.NewBranchReferenceName("master")
	_ = repo.Storer.RemoveReference(defaultRef)

	return nil
}

func exportCommit(w *gogit.Worktree, fs billy.Filesystem, c *tree.Commit, hashes map[int]plumbing.Hash) (plumbing.Hash, error) {
	// Every commit touches its own file so each tree is distinct.
	path := fmt.Sprintf("commits/%d.txt", c.ID())
	content := fmt.Sprintf("commit %d on branch %d\n", c.ID(), c.Branch())
	if err := util.WriteFile(fs, path, []byte(content), 0644); err != nil {
		return plumbing.ZeroHash, err
	}
	if _, err := w.Add(path); err != nil {
		return plumbing.ZeroHash, err
	}

	parents := make([]plumbing.Hash, 0, c.NumParents())
	for _, link := range c.Parents() {
		hash, ok := hashes[link.ID]
		if !ok {
			return plumbing.ZeroHash, fmt.Errorf("parent %d not exported", link.ID)
		}
		parents = append(parents, hash)
	}

	message := fmt.Sprintf("commit %d", c.ID())
	if c.IsMergeCommit() {
		message = fmt.Sprintf("merge commit %d", c.ID())
	}

	return w.Commit(message, &gogit.CommitOptions{
		Parents:   parents,
		Author:    signature(),
		Committer: signature(),
	})
}

func exportBranches(t *tree.GitTree, repo *gogit.Repository, hashes map[int]plumbing.Hash) error {
	for _, branchID := range t.AllBranchIDs() {
		tip, err := t.LatestOn(branchID)
		if err != nil {
			return err
		}
		refName := branchRefName(branchID)
		ref := plumbing.NewHashReference(refName, hashes[tip.ID()])
		if err := repo.Storer.SetReference(ref); err != nil {
			return fmt.Errorf("failed to set branch %d: %w", branchID, err)
		}
	}

	head := plumbing.NewSymbolicReference(plumbing.HEAD, branchRefName(t.CurrentBranch()))
	if err := repo.Storer.SetReference(head); err != nil {
		return fmt.Errorf("failed to set HEAD: %w", err)
	}
	return nil
}

// branchRefName returns the ref name used for a simulated branch.
func branchRefName(branchID int) plumbing.ReferenceName {
	return plumbing.NewBranchReferenceName(fmt.Sprintf("branch-%d", branchID))
}
