// Package store persists simulator state as JSON on disk.
//
// The current state lives in state.json. Every mutating command also
// drops a timestamped snapshot into the history directory so a session
// can be rewound to the state before any recent command.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"vcsim.dev/vcsim/internal/tree"
)

const (
	// DefaultMaxHistoryDepth is the default number of history snapshots we keep
	DefaultMaxHistoryDepth = 10

	stateFile  = "state.json"
	historyDir = "history"
	jsonExt    = ".json"
)

// HistorySnapshot is a saved state plus the command that was about to run.
type HistorySnapshot struct {
	Timestamp time.Time     `json:"timestamp"`
	Command   string        `json:"command"`
	Args      []string      `json:"args"`
	State     tree.Snapshot `json:"state"`
}

// HistoryInfo provides metadata about a history snapshot for display.
type HistoryInfo struct {
	ID          string    // Filename without extension
	Command     string    // Command name
	Args        []string  // Command arguments
	Timestamp   time.Time // When the snapshot was taken
	DisplayName string    // Human-readable description
}

// Store reads and writes simulator state under a single directory.
type Store struct {
	dir             string
	maxHistoryDepth int
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir, maxHistoryDepth: DefaultMaxHistoryDepth}
}

// SetMaxHistoryDepth overrides the number of history snapshots kept.
func (s *Store) SetMaxHistoryDepth(depth int) {
	s.maxHistoryDepth = depth
}

func (s *Store) statePath() string {
	return filepath.Join(s.dir, stateFile)
}

func (s *Store) historyPath() string {
	return filepath.Join(s.dir, historyDir)
}

// Exists reports whether a saved state is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.statePath())
	return err == nil
}

// Load reads state.json and rebuilds the tree from it.
func (s *Store) Load() (*tree.GitTree, error) {
	data, err := os.ReadFile(s.statePath())
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	var snapshot tree.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}

	t, err := tree.FromSnapshot(&snapshot)
	if err != nil {
		return nil, fmt.Errorf("saved state is invalid: %w", err)
	}

	return t, nil
}

// Save writes the tree to state.json.
func (s *Store) Save(t *tree.GitTree) error {
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(t.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(s.statePath(), jsonData, 0600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}

	return nil
}

// TakeSnapshot records a captured state under the history directory.
// Callers capture the state before a mutating command runs and record it
// only once the command succeeds, so failed commands leave no restore
// points behind.
func (s *Store) TakeSnapshot(state *tree.Snapshot, command string, args []string) error {
	if err := os.MkdirAll(s.historyPath(), 0750); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	timestamp := time.Now()
	snapshot := &HistorySnapshot{
		Timestamp: timestamp,
		Command:   command,
		Args:      args,
		State:     *state,
	}

	jsonData, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	filename := snapshotFilename(timestamp, command)
	filePath := filepath.Join(s.historyPath(), filename)
	if err := os.WriteFile(filePath, jsonData, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	// Enforce max depth by removing oldest snapshots. The snapshot was
	// already saved, so a pruning failure is not fatal.
	_ = s.enforceMaxHistoryDepth()

	return nil
}

// snapshotFilename generates a filename for a history snapshot.
// The timestamp prefix keeps files chronological when sorted by name.
func snapshotFilename(timestamp time.Time, command string) string {
	return fmt.Sprintf("%s_%s.json", timestamp.Format("20060102150405.000000"), command)
}

// parseSnapshotFilename extracts timestamp and command from a filename.
func parseSnapshotFilename(filename string) (time.Time, string, error) {
	if len(filename) < len(jsonExt)+1 || filename[len(filename)-len(jsonExt):] != jsonExt {
		return time.Time{}, "", fmt.Errorf("invalid snapshot filename: %s", filename)
	}
	base := filename[:len(filename)-len(jsonExt)]

	lastUnderscore := -1
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '_' {
			lastUnderscore = i
			break
		}
	}
	if lastUnderscore == -1 {
		return time.Time{}, "", fmt.Errorf("invalid snapshot filename format: %s", filename)
	}

	timestampStr := base[:lastUnderscore]
	command := base[lastUnderscore+1:]

	timestamp, err := time.Parse("20060102150405.000000", timestampStr)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("failed to parse timestamp: %w", err)
	}

	return timestamp, command, nil
}

func (s *Store) enforceMaxHistoryDepth() error {
	entries, err := os.ReadDir(s.historyPath())
	if err != nil {
		return fmt.Errorf("failed to read history directory: %w", err)
	}

	var snapshots []os.DirEntry
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == jsonExt {
			snapshots = append(snapshots, entry)
		}
	}

	if len(snapshots) <= s.maxHistoryDepth {
		return nil
	}

	// Filenames are timestamp-prefixed, so name order is chronological.
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Name() < snapshots[j].Name()
	})

	toDelete := len(snapshots) - s.maxHistoryDepth
	for i := 0; i < toDelete; i++ {
		filePath := filepath.Join(s.historyPath(), snapshots[i].Name())
		if err := os.Remove(filePath); err != nil {
			continue
		}
	}

	return nil
}

// History returns all available snapshots, newest first.
func (s *Store) History() ([]HistoryInfo, error) {
	entries, err := os.ReadDir(s.historyPath())
	if err != nil {
		if os.IsNotExist(err) {
			return []HistoryInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read history directory: %w", err)
	}

	snapshots := make([]HistoryInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != jsonExt {
			continue
		}

		timestamp, command, err := parseSnapshotFilename(entry.Name())
		if err != nil {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.historyPath(), entry.Name()))
		if err != nil {
			continue
		}

		var snapshot HistorySnapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			continue
		}

		snapshots = append(snapshots, HistoryInfo{
			ID:          entry.Name()[:len(entry.Name())-len(jsonExt)],
			Command:     command,
			Args:        snapshot.Args,
			Timestamp:   timestamp,
			DisplayName: formatSnapshotDisplay(command, snapshot.Args),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		if !snapshots[i].Timestamp.Equal(snapshots[j].Timestamp) {
			return snapshots[i].Timestamp.After(snapshots[j].Timestamp)
		}
		return snapshots[i].ID > snapshots[j].ID
	})

	return snapshots, nil
}

func formatSnapshotDisplay(command string, args []string) string {
	cmdStr := command
	if len(args) > 0 {
		displayArgs := args
		if len(displayArgs) > 2 {
			displayArgs = displayArgs[:2]
		}
		cmdStr = fmt.Sprintf("%s %s", command, fmt.Sprint(displayArgs))
	}
	return fmt.Sprintf("Before '%s'", cmdStr)
}

// Restore loads a history snapshot by ID and makes it the current state.
func (s *Store) Restore(snapshotID string) (*tree.GitTree, error) {
	data, err := os.ReadFile(filepath.Join(s.historyPath(), snapshotID+jsonExt))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snapshot HistorySnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	t, err := tree.FromSnapshot(&snapshot.State)
	if err != nil {
		return nil, fmt.Errorf("snapshot state is invalid: %w", err)
	}

	if err := s.Save(t); err != nil {
		return nil, err
	}

	return t, nil
}

// Clear removes the saved state and all history snapshots.
func (s *Store) Clear() error {
	if err := os.Remove(s.statePath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state: %w", err)
	}
	if err := os.RemoveAll(s.historyPath()); err != nil {
		return fmt.Errorf("failed to remove history: %w", err)
	}
	return nil
}
