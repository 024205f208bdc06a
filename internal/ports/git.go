package ports

import (
	"context"

	"github.com/xvierd/gitprompt/internal/domain"
)

// Repository is an open repository handle the prompt reads from.
// This is a driven port (implemented by adapters).
type Repository interface {
	// Root returns the working directory root (or git dir for bare repositories).
	Root() string

	// Branch resolves the current checkout and its divergence from upstream.
	Branch(ctx context.Context) (domain.BranchState, error)

	// Files counts staged and unstaged changes.
	Files(ctx context.Context) (domain.FileState, error)
}

// RepositoryLocator finds the repository enclosing a directory.
type RepositoryLocator interface {
	// Locate returns domain.ErrNotRepository when dir is not inside a repository.
	Locate(ctx context.Context, dir string) (Repository, error)
}
