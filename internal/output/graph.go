package output

import (
	"fmt"
	"sort"
	"strings"
)

// CommitInfo is the per-commit view-model the renderer consumes. It is
// produced from the core's read accessors; the renderer never touches the
// graph itself.
type CommitInfo struct {
	ID           int
	Branch       int
	Parents      []int
	Children     []int
	IsMerge      bool
	IsBranchRoot bool
}

// GraphView exposes the read-only surface of a commit graph to the
// renderer: creation-ordered commit ids, live branch ids, and lookups.
type GraphView struct {
	HeadID        int
	CurrentBranch int
	CommitIDs     []int
	BranchIDs     []int
	Commit        func(id int) CommitInfo
	BranchTip     func(branchID int) int
}

// GraphRenderOptions configures rendering behavior
type GraphRenderOptions struct {
	Reverse      bool // Oldest commit first instead of newest
	Full         bool // Include children and connecting lines
	ShowBranches bool // Append the branch list after the graph
	NoColor      bool
}

// GraphRenderer renders commit graphs with per-branch colors
type GraphRenderer struct {
	view GraphView
	tips map[int][]int // commit id -> branch ids whose tip it is
}

// NewGraphRenderer creates a new graph renderer over the given view
func NewGraphRenderer(view GraphView) *GraphRenderer {
	tips := make(map[int][]int)
	for _, branchID := range view.BranchIDs {
		tip := view.BranchTip(branchID)
		tips[tip] = append(tips[tip], branchID)
	}
	for _, branches := range tips {
		sort.Ints(branches)
	}
	return &GraphRenderer{view: view, tips: tips}
}

// RenderGraph renders every commit, newest first unless reversed.
func (r *GraphRenderer) RenderGraph(opts GraphRenderOptions) []string {
	ids := make([]int, len(r.view.CommitIDs))
	copy(ids, r.view.CommitIDs)
	if !opts.Reverse {
		for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
			ids[i], ids[j] = ids[j], ids[i]
		}
	}

	var result []string
	for _, id := range ids {
		result = append(result, r.commitLines(r.view.Commit(id), opts)...)
	}
	if opts.Full && len(result) > 0 {
		result = result[:len(result)-1] // No trailing connector after the last commit
	}
	return result
}

// RenderBranches renders one line per live branch with its tip commit.
func (r *GraphRenderer) RenderBranches(opts GraphRenderOptions) []string {
	var result []string
	for _, branchID := range r.view.BranchIDs {
		line := fmt.Sprintf("branch %d ▸ commit %d", branchID, r.view.BranchTip(branchID))
		if !opts.NoColor {
			line = ColorBranch(line, branchID)
		}
		if branchID == r.view.CurrentBranch {
			suffix := " (current)"
			if !opts.NoColor {
				suffix = ColorHead(suffix)
			}
			line += suffix
		}
		result = append(result, line)
	}
	return result
}

func (r *GraphRenderer) commitLines(c CommitInfo, opts GraphRenderOptions) []string {
	symbol := "◯"
	isHead := c.ID == r.view.HeadID
	if isHead {
		symbol = "◉"
	}

	label := fmt.Sprintf("commit %d (branch %d)", c.ID, c.Branch)
	if !opts.NoColor {
		label = ColorBranch(label, c.Branch)
	}

	line := symbol + " " + label
	if len(c.Parents) > 0 {
		line += " " + r.dim("← "+joinIDs(c.Parents), opts)
	}
	line += r.annotations(c, isHead, opts)

	if !opts.Full {
		return []string{line}
	}

	result := []string{line}
	if len(c.Children) > 0 {
		result = append(result, "│   "+r.dim("children: "+joinIDs(c.Children), opts))
	}
	result = append(result, "│")
	return result
}

// annotations builds the trailing markers: merge, branch root, branch
// tips, and HEAD.
func (r *GraphRenderer) annotations(c CommitInfo, isHead bool, opts GraphRenderOptions) string {
	var parts []string

	if c.IsMerge {
		marker := "(merge)"
		if !opts.NoColor {
			marker = ColorYellow(marker)
		}
		parts = append(parts, marker)
	}
	if c.IsBranchRoot && c.ID != 0 {
		parts = append(parts, r.dim("(branch root)", opts))
	}
	for _, branchID := range r.tips[c.ID] {
		tip := fmt.Sprintf("[tip of branch %d]", branchID)
		if opts.NoColor {
			parts = append(parts, tip)
		} else {
			parts = append(parts, ColorBranch(tip, branchID))
		}
	}
	if isHead {
		head := "(HEAD)"
		if !opts.NoColor {
			head = ColorHead(head)
		}
		parts = append(parts, head)
	}

	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

func (r *GraphRenderer) dim(text string, opts GraphRenderOptions) string {
	if opts.NoColor {
		return text
	}
	return ColorDim(text)
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
