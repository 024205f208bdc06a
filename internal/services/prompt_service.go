package services

import (
	"context"
	"io"

	"github.com/xvierd/gitprompt/internal/domain"
	"github.com/xvierd/gitprompt/internal/logging"
	"github.com/xvierd/gitprompt/internal/ports"
)

// PromptService reads repository state and renders the prompt segment.
type PromptService struct {
	locator  ports.RepositoryLocator
	renderer ports.Renderer
}

// NewPromptService creates a new prompt service.
func NewPromptService(locator ports.RepositoryLocator, renderer ports.Renderer) *PromptService {
	return &PromptService{
		locator:  locator,
		renderer: renderer,
	}
}

// Snapshot collects branch and file state for the repository enclosing dir.
// It returns domain.ErrNotRepository when there is none.
func (s *PromptService) Snapshot(ctx context.Context, dir string) (*domain.Snapshot, error) {
	repo, err := s.locator.Locate(ctx, dir)
	if err != nil {
		return nil, err
	}

	branch, err := repo.Branch(ctx)
	if err != nil {
		return nil, err
	}

	files, err := repo.Files(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		Branch: branch,
		Files:  files,
	}, nil
}

// Render writes the prompt segment for dir to w. Nothing is written unless
// every piece of state was read successfully.
func (s *PromptService) Render(ctx context.Context, dir string, w io.Writer) error {
	snapshot, err := s.Snapshot(ctx, dir)
	if err != nil {
		return err
	}

	logging.Logger.Debug("rendering prompt",
		"branch", snapshot.Branch.Name,
		"detached", snapshot.Branch.IsDetached,
		"ahead", snapshot.Branch.Ahead,
		"behind", snapshot.Branch.Behind,
		"diverged", snapshot.Branch.HasDivergence(),
		"clean", snapshot.Files.IsClean(),
	)

	return s.renderer.Render(w, snapshot)
}
