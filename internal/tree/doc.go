// Package tree models a version-control history as an in-memory DAG of
// commits organized into branches.
//
// It is the core of vcsim, responsible for:
//   - Owning every commit for the lifetime of a tree (arena ownership;
//     parent/child links are plain integer id references, never pointers)
//   - Tracking the checked-out head and the tip of every live branch
//   - Mediating every mutation so the graph never holds a half-applied edit
//
// The package tracks only the shape of the graph: no file content, diffs,
// or commit metadata. A single GitTree is not safe for concurrent use;
// callers that share one across goroutines must serialize externally.
package tree
