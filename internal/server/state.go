package server

import (
	"vcsim.dev/vcsim/internal/tree"
)

// GraphState represents the serialized state for the frontend
type GraphState struct {
	Commits  []CommitState `json:"commits"`
	Branches []BranchState `json:"branches"`
	HEAD     Head          `json:"HEAD"`
}

// CommitState is one node of the serialized graph
type CommitState struct {
	ID           int   `json:"id"`
	Branch       int   `json:"branch"`
	Parents      []int `json:"parents"`
	Children     []int `json:"children"`
	IsMerge      bool  `json:"isMerge"`
	IsBranchRoot bool  `json:"isBranchRoot"`
}

// BranchState is one branch of the serialized graph
type BranchState struct {
	ID      int  `json:"id"`
	Tip     int  `json:"tip"`
	Current bool `json:"current"`
}

// Head points at the checked out commit
type Head struct {
	ID     int `json:"id"`
	Branch int `json:"branch"`
}

// BuildGraphState serializes a tree for the frontend
func BuildGraphState(t *tree.GitTree) *GraphState {
	state := &GraphState{
		HEAD: Head{
			ID:     t.Head().ID(),
			Branch: t.CurrentBranch(),
		},
	}

	for _, id := range t.AllCommitIDs() {
		c, err := t.GetCommit(id)
		if err != nil {
			continue
		}
		state.Commits = append(state.Commits, CommitState{
			ID:           c.ID(),
			Branch:       c.Branch(),
			Parents:      linkIDs(c.Parents()),
			Children:     linkIDs(c.Children()),
			IsMerge:      c.IsMergeCommit(),
			IsBranchRoot: c.IsNewBranch(),
		})
	}

	for _, branchID := range t.AllBranchIDs() {
		tip, err := t.LatestOn(branchID)
		if err != nil {
			continue
		}
		state.Branches = append(state.Branches, BranchState{
			ID:      branchID,
			Tip:     tip.ID(),
			Current: branchID == t.CurrentBranch(),
		})
	}

	return state
}

func linkIDs(links []tree.Link) []int {
	ids := make([]int, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.ID)
	}
	return ids
}
