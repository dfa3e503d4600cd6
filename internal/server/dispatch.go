package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// CommandRequest is a single command submitted by the frontend,
// e.g. {"command": "commit --parent 2"}.
type CommandRequest struct {
	Command string `json:"command"`
}

// CommandResponse carries the human-readable result of a command.
type CommandResponse struct {
	Output string      `json:"output,omitempty"`
	Error  string      `json:"error,omitempty"`
	State  *GraphState `json:"state,omitempty"`
}

func (s *Server) handleExecCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CommandRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name, args := ParseCommand(req.Command)
	if name == "" {
		writeJSON(w, CommandResponse{})
		return
	}

	s.splog.Debug("Command received: %s %v", name, args)

	s.mu.Lock()
	output, err := s.dispatch(name, args)
	if err == nil {
		if saveErr := s.ctx.Save(); saveErr != nil {
			s.splog.Warn("Failed to persist state: %v", saveErr)
		}
	}
	state := BuildGraphState(s.ctx.Tree)
	s.mu.Unlock()

	if err != nil {
		writeJSON(w, CommandResponse{Error: err.Error(), State: state})
		return
	}
	writeJSON(w, CommandResponse{Output: output, State: state})
}

// ParseCommand splits a raw command line into its name and arguments.
func ParseCommand(raw string) (string, []string) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// dispatch runs one command against the tree. The caller holds the lock.
func (s *Server) dispatch(name string, args []string) (string, error) {
	t := s.ctx.Tree
	switch name {
	case "commit":
		if parent, ok, err := intFlag(args, "--parent"); err != nil {
			return "", err
		} else if ok {
			c, err := t.AddCommitTo(parent)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Added %s", c.Describe()), nil
		}
		c, err := t.AddCommit()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Added %s", c.Describe()), nil

	case "branch":
		if at, ok, err := intFlag(args, "--at"); err != nil {
			return "", err
		} else if ok {
			branchID, err := t.BranchAt(at)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Created branch %d at commit %d", branchID, at), nil
		}
		branchID := t.Branch()
		return fmt.Sprintf("Created branch %d at commit %d", branchID, t.Head().ID()), nil

	case "checkout":
		if commitID, ok, err := intFlag(args, "--commit"); err != nil {
			return "", err
		} else if ok {
			if err := t.CheckoutCommit(commitID); err != nil {
				return "", err
			}
			return fmt.Sprintf("HEAD is now at commit %d", commitID), nil
		}
		branchID, err := intArg(args, 0, "branch")
		if err != nil {
			return "", err
		}
		if err := t.Checkout(branchID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Switched to branch %d", branchID), nil

	case "merge":
		if len(args) == 2 {
			parentID, err := intArg(args, 0, "commit")
			if err != nil {
				return "", err
			}
			otherID, err := intArg(args, 1, "commit")
			if err != nil {
				return "", err
			}
			c, err := t.MergeCommits(parentID, otherID)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Merged commits %d and %d into %s", parentID, otherID, c.Describe()), nil
		}
		branchID, err := intArg(args, 0, "branch")
		if err != nil {
			return "", err
		}
		c, err := t.Merge(branchID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Merged branch %d into %s", branchID, c.Describe()), nil

	case "undo":
		if !t.Undo() {
			return "Nothing to undo.", nil
		}
		return fmt.Sprintf("Removed the last commit; HEAD is now at commit %d", t.Head().ID()), nil

	case "reset":
		t.Reset()
		return "Graph reset to a single root commit.", nil

	default:
		return "", fmt.Errorf("unknown command: %s", name)
	}
}

// intFlag extracts the integer value following flag, if present.
func intFlag(args []string, flag string) (int, bool, error) {
	for i, arg := range args {
		if arg != flag {
			continue
		}
		if i+1 >= len(args) {
			return 0, false, fmt.Errorf("%s requires a value", flag)
		}
		v, err := strconv.Atoi(args[i+1])
		if err != nil {
			return 0, false, fmt.Errorf("invalid value for %s: %q", flag, args[i+1])
		}
		return v, true, nil
	}
	return 0, false, nil
}

func intArg(args []string, idx int, what string) (int, error) {
	if idx >= len(args) {
		return 0, fmt.Errorf("missing %s argument", what)
	}
	v, err := strconv.Atoi(args[idx])
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q", what, args[idx])
	}
	return v, nil
}
