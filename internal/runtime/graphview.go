package runtime

import (
	"vcsim.dev/vcsim/internal/output"
	"vcsim.dev/vcsim/internal/tree"
)

// GraphViewOf adapts a tree to the renderer's read-only view.
func GraphViewOf(t *tree.GitTree) output.GraphView {
	return output.GraphView{
		HeadID:        t.Head().ID(),
		CurrentBranch: t.CurrentBranch(),
		CommitIDs:     t.AllCommitIDs(),
		BranchIDs:     t.AllBranchIDs(),
		Commit: func(id int) output.CommitInfo {
			c, err := t.GetCommit(id)
			if err != nil {
				return output.CommitInfo{ID: id}
			}
			return output.CommitInfo{
				ID:           c.ID(),
				Branch:       c.Branch(),
				Parents:      linkIDs(c.Parents()),
				Children:     linkIDs(c.Children()),
				IsMerge:      c.IsMergeCommit(),
				IsBranchRoot: c.IsNewBranch(),
			}
		},
		BranchTip: func(branchID int) int {
			tip, err := t.LatestOn(branchID)
			if err != nil {
				return -1
			}
			return tip.ID()
		},
	}
}

func linkIDs(links []tree.Link) []int {
	ids := make([]int, len(links))
	for i, l := range links {
		ids[i] = l.ID
	}
	return ids
}
