package tree

// idAllocator issues monotonically increasing commit and branch ids. Each
// GitTree owns its own allocator, so independent trees in one process never
// share counter state and tests stay deterministic.
type idAllocator struct {
	nextCommit int
	nextBranch int
}

// NextCommit reserves and returns the next commit id.
func (a *idAllocator) NextCommit() int {
	id := a.nextCommit
	a.nextCommit++
	return id
}

// NextBranch reserves and returns the next branch id.
func (a *idAllocator) NextBranch() int {
	id := a.nextBranch
	a.nextBranch++
	return id
}

// RollbackBranch returns the most recently reserved branch id to the pool.
// Callers pair it with NextBranch when a reservation is made before
// validation and the validation fails; unpaired rollbacks would reissue a
// live id.
func (a *idAllocator) RollbackBranch() {
	if a.nextBranch > 0 {
		a.nextBranch--
	}
}
