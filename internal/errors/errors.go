// Package errors provides sentinel errors and custom error types for the vcsim application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrSelfReference indicates that a commit referenced itself as a parent or child
	ErrSelfReference = errors.New("commit cannot reference itself")

	// ErrCommitNotFound indicates that a commit id is absent from the tree
	ErrCommitNotFound = errors.New("commit not found")

	// ErrBranchNotFound indicates that a branch id is not registered
	ErrBranchNotFound = errors.New("branch not found")

	// ErrNonLinearHistory indicates an attempt to grow history past a commit
	// that already has a child without branching or merging
	ErrNonLinearHistory = errors.New("commit already has a child")

	// ErrLinkNotFound indicates removal of a parent/child link that does not exist
	ErrLinkNotFound = errors.New("link not found")

	// ErrSameBranch indicates a merge whose two sides are the same line of development
	ErrSameBranch = errors.New("cannot merge a branch into itself")
)

// CommitNotFoundError represents an error when a commit id is not in the tree
type CommitNotFoundError struct {
	ID int
}

func (e *CommitNotFoundError) Error() string {
	return fmt.Sprintf("commit %d does not exist", e.ID)
}

// Is returns true if the target error is ErrCommitNotFound
func (e *CommitNotFoundError) Is(target error) bool {
	return target == ErrCommitNotFound
}

// NewCommitNotFoundError creates a new CommitNotFoundError
func NewCommitNotFoundError(id int) *CommitNotFoundError {
	return &CommitNotFoundError{ID: id}
}

// BranchNotFoundError represents an error when a branch id is not registered
type BranchNotFoundError struct {
	ID int
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %d does not exist", e.ID)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(id int) *BranchNotFoundError {
	return &BranchNotFoundError{ID: id}
}

// NonLinearError represents an error when a commit already has a child and
// cannot accept another one outside of a branch or merge
type NonLinearError struct {
	CommitID int
}

func (e *NonLinearError) Error() string {
	return fmt.Sprintf("commit %d already has a child; branch or merge instead", e.CommitID)
}

// Is returns true if the target error is ErrNonLinearHistory
func (e *NonLinearError) Is(target error) bool {
	return target == ErrNonLinearHistory
}

// NewNonLinearError creates a new NonLinearError
func NewNonLinearError(commitID int) *NonLinearError {
	return &NonLinearError{CommitID: commitID}
}

// LinkNotFoundError represents an error when removing a parent/child link
// that is not present on the commit
type LinkNotFoundError struct {
	CommitID int
	LinkID   int
	Kind     string // "parent" or "child"
}

func (e *LinkNotFoundError) Error() string {
	return fmt.Sprintf("commit %d has no %s with id %d", e.CommitID, e.Kind, e.LinkID)
}

// Is returns true if the target error is ErrLinkNotFound
func (e *LinkNotFoundError) Is(target error) bool {
	return target == ErrLinkNotFound
}

// NewLinkNotFoundError creates a new LinkNotFoundError
func NewLinkNotFoundError(commitID, linkID int, kind string) *LinkNotFoundError {
	return &LinkNotFoundError{CommitID: commitID, LinkID: linkID, Kind: kind}
}
