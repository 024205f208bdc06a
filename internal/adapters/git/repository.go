package git

import (
	"context"
	"errors"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/xvierd/gitprompt/internal/domain"
	"github.com/xvierd/gitprompt/internal/logging"
	"github.com/xvierd/gitprompt/internal/ports"
)

// Repository implements ports.Repository over a go-git repository handle.
// It only ever reads.
type Repository struct {
	repo         *git.Repository
	root         string
	globalConfig func() (*config.Config, error)
}

// Ensure Repository implements ports.Repository.
var _ ports.Repository = (*Repository)(nil)

// NewRepository wraps an already opened go-git repository.
func NewRepository(repo *git.Repository, root string, globalConfig func() (*config.Config, error)) *Repository {
	return &Repository{repo: repo, root: root, globalConfig: globalConfig}
}

// Root returns the directory the repository was located at.
func (r *Repository) Root() string {
	return r.root
}

// Files counts staged and unstaged changes using the default status scan.
func (r *Repository) Files(ctx context.Context) (domain.FileState, error) {
	wt, err := r.repo.Worktree()
	if errors.Is(err, git.ErrIsBareRepository) {
		return domain.FileState{}, nil
	}
	if err != nil {
		return domain.FileState{}, domain.Wrap("Unable to open the working tree", err)
	}

	excludes, err := excludePatterns()
	if err != nil {
		return domain.FileState{}, domain.Wrap("Unable to read ignore patterns", err)
	}
	wt.Excludes = append(wt.Excludes, excludes...)

	start := time.Now()
	status, err := wt.Status()
	if err != nil {
		return domain.FileState{}, domain.Wrap("Unable to get repository status", err)
	}

	files := foldStatus(status)
	logging.Logger.Debug("status scanned",
		"entries", len(status),
		"duration", time.Since(start),
		"files", files,
	)

	return files, nil
}

// excludePatterns loads the ignore files named by core.excludesfile in the
// system and global git config. go-git reads .gitignore files and
// info/exclude by itself.
func excludePatterns() ([]gitignore.Pattern, error) {
	root := osfs.New("/")

	system, err := gitignore.LoadSystemPatterns(root)
	if err != nil {
		return nil, err
	}
	global, err := gitignore.LoadGlobalPatterns(root)
	if err != nil {
		return nil, err
	}

	// Later patterns take precedence
	return append(system, global...), nil
}

// foldStatus aggregates every file's flags into the six counters.
func foldStatus(status git.Status) domain.FileState {
	var files domain.FileState
	for _, s := range status {
		files.Add(statusFlags(s))
	}
	return files
}

// statusFlags translates one go-git file status into change flags. Untracked
// files carry the Untracked code on both sides; only the worktree side counts.
func statusFlags(s *git.FileStatus) domain.StatusFlag {
	var flags domain.StatusFlag

	switch s.Worktree {
	case git.Untracked, git.Added:
		flags |= domain.WorktreeNew
	case git.Modified:
		flags |= domain.WorktreeModified
	case git.Deleted:
		flags |= domain.WorktreeDeleted
	case git.Renamed:
		flags |= domain.WorktreeRenamed
	}

	switch s.Staging {
	case git.Added:
		flags |= domain.IndexNew
	case git.Modified:
		flags |= domain.IndexModified
	case git.Deleted:
		flags |= domain.IndexDeleted
	case git.Renamed:
		flags |= domain.IndexRenamed
	}

	return flags
}
