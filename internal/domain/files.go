package domain

import (
	"fmt"
	"strings"
)

// StatusFlag is a set of per-file change flags. A single file may carry
// several flags at once, e.g. staged as new and modified in the worktree.
type StatusFlag uint16

const (
	WorktreeNew StatusFlag = 1 << iota
	WorktreeModified
	WorktreeDeleted
	WorktreeRenamed
	IndexNew
	IndexModified
	IndexDeleted
	IndexRenamed
)

// Has reports whether every flag in f is set.
func (s StatusFlag) Has(f StatusFlag) bool {
	return s&f == f
}

// FileState counts changes in the index (staged) and the working tree (unstaged).
type FileState struct {
	WorktreeAdd    int
	WorktreeEdit   int
	WorktreeRemove int
	IndexAdd       int
	IndexEdit      int
	IndexRemove    int
}

// Add folds the flags of one file into the counters. Every set flag is
// counted independently; a rename counts as one add and one remove.
func (fs *FileState) Add(flags StatusFlag) {
	if flags.Has(WorktreeNew) {
		fs.WorktreeAdd++
	}
	if flags.Has(WorktreeModified) {
		fs.WorktreeEdit++
	}
	if flags.Has(WorktreeDeleted) {
		fs.WorktreeRemove++
	}
	if flags.Has(WorktreeRenamed) {
		fs.WorktreeAdd++
		fs.WorktreeRemove++
	}
	if flags.Has(IndexNew) {
		fs.IndexAdd++
	}
	if flags.Has(IndexModified) {
		fs.IndexEdit++
	}
	if flags.Has(IndexDeleted) {
		fs.IndexRemove++
	}
	if flags.Has(IndexRenamed) {
		fs.IndexAdd++
		fs.IndexRemove++
	}
}

// IsClean returns true if no change was counted on either side.
func (fs FileState) IsClean() bool {
	return fs == FileState{}
}

// IndexString renders the staged deltas.
func (fs FileState) IndexString() string {
	return FormatDeltas(fs.IndexAdd, fs.IndexEdit, fs.IndexRemove)
}

// WorktreeString renders the unstaged deltas.
func (fs FileState) WorktreeString() string {
	return FormatDeltas(fs.WorktreeAdd, fs.WorktreeEdit, fs.WorktreeRemove)
}

// FormatDeltas renders " +add ~edit -remove", omitting zero terms.
func FormatDeltas(add, edit, remove int) string {
	var sb strings.Builder
	if add > 0 {
		fmt.Fprintf(&sb, " +%d", add)
	}
	if edit > 0 {
		fmt.Fprintf(&sb, " ~%d", edit)
	}
	if remove > 0 {
		fmt.Fprintf(&sb, " -%d", remove)
	}
	return sb.String()
}
