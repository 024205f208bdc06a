package domain

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// FallbackBranchName is used for an empty repository when neither the local
// nor the global config sets init.defaultBranch.
const FallbackBranchName = "master"

// BranchState describes the current checkout.
type BranchState struct {
	Name       string
	Ahead      int
	Behind     int
	IsDetached bool
	// SHA is the commit HEAD resolves to. It is only displayed when detached.
	SHA plumbing.Hash
}

// NewEmptyBranchState returns the state of a repository without commits.
func NewEmptyBranchState(name string) BranchState {
	return BranchState{
		Name: name,
		SHA:  plumbing.ZeroHash,
	}
}

// HasDivergence returns true if the branch is ahead of or behind its upstream.
func (b BranchState) HasDivergence() bool {
	return b.Ahead > 0 || b.Behind > 0
}

// String renders the branch segment of the prompt: name, the full commit
// hash when detached, then behind and ahead arrows.
func (b BranchState) String() string {
	var sb strings.Builder
	sb.WriteString(b.Name)
	if b.IsDetached {
		fmt.Fprintf(&sb, "(%s)", b.SHA.String())
	}
	if b.Behind > 0 {
		fmt.Fprintf(&sb, " ↓%d", b.Behind)
	}
	if b.Ahead > 0 {
		fmt.Fprintf(&sb, " ↑%d", b.Ahead)
	}
	return sb.String()
}
