package cli

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"vcsim.dev/vcsim/internal/config"
	"vcsim.dev/vcsim/internal/store"
	"vcsim.dev/vcsim/internal/tree"
)

// setupSession points the session at a temp directory and disables prompts.
func setupSession(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("VCSIM_DIR", dir)
	t.Setenv("VCSIM_TEST_NO_INTERACTIVE", "1")
	return dir
}

func runCmd(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd := NewRootCmd("test")
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func loadTree(t *testing.T, dir string) *tree.GitTree {
	t.Helper()
	loaded, err := store.NewStore(dir).Load()
	require.NoError(t, err)
	return loaded
}

func TestInitCommand(t *testing.T) {
	dir := setupSession(t)

	require.NoError(t, runCmd(t, "init"))
	gt := loadTree(t, dir)
	require.Equal(t, 1, gt.NumCommits())

	// Init leaves an existing session alone.
	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "init"))
	gt = loadTree(t, dir)
	require.Equal(t, 2, gt.NumCommits())
}

func TestCommitCommand(t *testing.T) {
	dir := setupSession(t)

	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "commit"))

	gt := loadTree(t, dir)
	require.Equal(t, 3, gt.NumCommits())
	require.Equal(t, 2, gt.Head().ID())
}

func TestCommitOntoOccupiedParentFails(t *testing.T) {
	dir := setupSession(t)

	require.NoError(t, runCmd(t, "commit"))
	require.Error(t, runCmd(t, "commit", "--parent", "0"))

	// The failed command must not change persisted state.
	gt := loadTree(t, dir)
	require.Equal(t, 2, gt.NumCommits())
}

func TestCommitAutoCheckout(t *testing.T) {
	dir := setupSession(t)

	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "checkout", "--commit", "0"))

	// By default HEAD stays put when committing onto another parent.
	require.NoError(t, runCmd(t, "commit", "--parent", "1"))
	gt := loadTree(t, dir)
	require.Equal(t, 0, gt.Head().ID())

	require.NoError(t, runCmd(t, "config", "set", "auto-checkout", "true"))
	require.NoError(t, runCmd(t, "commit", "--parent", "2"))
	gt = loadTree(t, dir)
	require.Equal(t, 3, gt.Head().ID())
	require.Equal(t, 0, gt.CurrentBranch())
}

func TestFailedCommandRecordsNoSnapshot(t *testing.T) {
	dir := setupSession(t)

	require.NoError(t, runCmd(t, "commit"))
	require.Error(t, runCmd(t, "commit", "--parent", "99"))
	require.Error(t, runCmd(t, "checkout", "7"))

	history, err := store.NewStore(dir).History()
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "commit", history[0].Command)
}

func TestBranchAndCheckout(t *testing.T) {
	dir := setupSession(t)

	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "branch"))

	gt := loadTree(t, dir)
	require.Equal(t, 2, gt.NumBranches())
	// branch does not check out.
	require.Equal(t, 0, gt.CurrentBranch())

	require.NoError(t, runCmd(t, "checkout", "1"))
	gt = loadTree(t, dir)
	require.Equal(t, 1, gt.CurrentBranch())

	require.Error(t, runCmd(t, "checkout", "9"))
	require.Error(t, runCmd(t, "checkout", "abc"))
}

func TestBranchWithCheckoutFlag(t *testing.T) {
	dir := setupSession(t)

	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "branch", "--checkout"))

	gt := loadTree(t, dir)
	require.Equal(t, 1, gt.CurrentBranch())
}

func TestBranchAt(t *testing.T) {
	dir := setupSession(t)

	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "branch", "--at", "1"))

	gt := loadTree(t, dir)
	tip, err := gt.LatestOn(1)
	require.NoError(t, err)
	require.Equal(t, 1, tip.ID())

	require.Error(t, runCmd(t, "branch", "--at", "42"))
}

func TestCheckoutCommit(t *testing.T) {
	dir := setupSession(t)

	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "checkout", "--commit", "1"))

	gt := loadTree(t, dir)
	require.Equal(t, 1, gt.Head().ID())

	require.Error(t, runCmd(t, "checkout", "1", "--commit", "0"))
}

func TestMergeCommand(t *testing.T) {
	dir := setupSession(t)

	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "branch", "--checkout"))
	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "checkout", "0"))
	require.NoError(t, runCmd(t, "merge", "1"))

	gt := loadTree(t, dir)
	require.True(t, gt.Head().IsMergeCommit())
	require.Equal(t, 0, gt.CurrentBranch())

	// Merging the current branch is rejected.
	require.Error(t, runCmd(t, "merge", "0"))
}

func TestMergeCommits(t *testing.T) {
	dir := setupSession(t)

	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "branch", "--checkout"))
	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "merge", "--commits", "2,1"))

	gt := loadTree(t, dir)
	require.True(t, gt.Head().IsMergeCommit())

	require.Error(t, runCmd(t, "merge", "--commits", "1,1"))
	require.Error(t, runCmd(t, "merge", "--commits", "1"))
	require.Error(t, runCmd(t, "merge", "1", "--commits", "2,1"))
}

func TestUndoCommand(t *testing.T) {
	dir := setupSession(t)

	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "undo"))

	gt := loadTree(t, dir)
	require.Equal(t, 1, gt.NumCommits())
	require.Equal(t, 0, gt.Head().ID())

	// Undo at the root is a no-op, not an error.
	require.NoError(t, runCmd(t, "undo"))
	gt = loadTree(t, dir)
	require.Equal(t, 1, gt.NumCommits())
}

func TestResetCommand(t *testing.T) {
	dir := setupSession(t)

	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "branch"))
	require.NoError(t, runCmd(t, "reset", "--yes"))

	gt := loadTree(t, dir)
	require.Equal(t, 1, gt.NumCommits())
	require.Equal(t, 1, gt.NumBranches())

	// Without --yes the prompt is disabled under test.
	require.Error(t, runCmd(t, "reset"))
}

func TestRestoreCommand(t *testing.T) {
	dir := setupSession(t)

	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "commit"))

	history, err := store.NewStore(dir).History()
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Restore to the state before the second commit.
	require.NoError(t, runCmd(t, "restore", "--snapshot", history[0].ID))

	gt := loadTree(t, dir)
	require.Equal(t, 2, gt.NumCommits())

	require.Error(t, runCmd(t, "restore", "--snapshot", "nope"))
}

func TestLogCommand(t *testing.T) {
	setupSession(t)

	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "log"))
	require.NoError(t, runCmd(t, "log", "--full", "--reverse", "--branches", "--no-color"))
}

func TestConfigCommand(t *testing.T) {
	setupSession(t)

	require.NoError(t, runCmd(t, "config", "set", "log-style", "full"))
	style, err := config.GetLogStyle()
	require.NoError(t, err)
	require.Equal(t, "full", style)

	require.NoError(t, runCmd(t, "config", "set", "reverse", "true"))
	reverse, err := config.GetReverse()
	require.NoError(t, err)
	require.True(t, reverse)

	require.NoError(t, runCmd(t, "config", "set", "auto-checkout", "true"))
	autoCheckout, err := config.GetAutoCheckout()
	require.NoError(t, err)
	require.True(t, autoCheckout)

	require.NoError(t, runCmd(t, "config", "set", "state-path", "/tmp/vcsim-elsewhere"))
	statePath, err := config.GetStatePath()
	require.NoError(t, err)
	require.Equal(t, "/tmp/vcsim-elsewhere", statePath)

	require.NoError(t, runCmd(t, "config", "get", "color"))
	require.NoError(t, runCmd(t, "config", "get", "state-path"))
	require.NoError(t, runCmd(t, "config", "get", "auto-checkout"))
	require.Error(t, runCmd(t, "config", "set", "log-style", "fancy"))
	require.Error(t, runCmd(t, "config", "set", "auto-checkout", "sometimes"))
	require.Error(t, runCmd(t, "config", "get", "unknown"))
}

func TestStatePathRedirectsSession(t *testing.T) {
	setupSession(t)
	stateDir := t.TempDir()

	require.NoError(t, runCmd(t, "config", "set", "state-path", stateDir))
	require.NoError(t, runCmd(t, "commit"))

	gt := loadTree(t, stateDir)
	require.Equal(t, 2, gt.NumCommits())
}

func TestExportCommand(t *testing.T) {
	setupSession(t)

	require.NoError(t, runCmd(t, "commit"))
	require.NoError(t, runCmd(t, "export"))

	dir := t.TempDir()
	require.NoError(t, runCmd(t, "export", "--path", dir))
}
