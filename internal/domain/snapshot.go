package domain

// Snapshot is everything the prompt shows, read from one repository handle.
type Snapshot struct {
	Branch BranchState
	Files  FileState
}
