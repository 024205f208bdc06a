// Package git reads prompt state from a repository using go-git.
package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/xvierd/gitprompt/internal/domain"
	"github.com/xvierd/gitprompt/internal/logging"
	"github.com/xvierd/gitprompt/internal/ports"
)

// Locator implements the ports.RepositoryLocator interface using go-git.
type Locator struct {
	// GlobalConfig loads the user's global git config. Tests replace it to
	// keep the developer's ~/.gitconfig out of the picture.
	GlobalConfig func() (*config.Config, error)
}

// NewLocator creates a new repository locator.
func NewLocator() *Locator {
	return &Locator{
		GlobalConfig: func() (*config.Config, error) {
			return config.LoadConfig(config.GlobalScope)
		},
	}
}

// Ensure Locator implements ports.RepositoryLocator.
var _ ports.RepositoryLocator = (*Locator)(nil)

// Locate finds the repository enclosing dir and opens it. An empty dir means
// the process working directory.
func (l *Locator) Locate(ctx context.Context, dir string) (ports.Repository, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, domain.Wrap("Unable to read the current directory", err)
		}
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, domain.Wrap("Unable to resolve the current directory", err)
	}
	if _, err := os.Stat(absDir); err != nil {
		return nil, domain.Wrap("Unable to read the current directory", err)
	}

	root, found := findGitRepo(absDir)
	if !found {
		logging.Logger.Debug("no repository found", "dir", absDir)
		return nil, domain.ErrNotRepository
	}

	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, domain.Wrap("Unable to open repository", err)
	}

	logging.Logger.Debug("repository located", "dir", absDir, "root", root)

	return NewRepository(repo, root, l.GlobalConfig), nil
}

// findGitRepo traverses up the directory tree looking for a .git directory,
// a .git file pointing at a linked worktree's git dir, or a bare repository.
func findGitRepo(startPath string) (string, bool) {
	currentPath := startPath

	for {
		gitPath := filepath.Join(currentPath, git.GitDirName)
		info, err := os.Stat(gitPath)
		if err == nil && info.IsDir() {
			return currentPath, true
		}

		// A linked worktree or submodule has a .git file with a gitdir reference
		if err == nil && !info.IsDir() {
			content, err := os.ReadFile(gitPath)
			if err == nil && strings.HasPrefix(string(content), "gitdir: ") {
				return currentPath, true
			}
		}

		if isGitDir(currentPath) {
			return currentPath, true
		}

		parent := filepath.Dir(currentPath)
		if parent == currentPath {
			break
		}
		currentPath = parent
	}

	return "", false
}

// isGitDir reports whether path itself is a git directory (a bare repository
// or the inside of a .git directory).
func isGitDir(path string) bool {
	head, err := os.Stat(filepath.Join(path, "HEAD"))
	if err != nil || head.IsDir() {
		return false
	}
	for _, sub := range []string{"objects", "refs"} {
		info, err := os.Stat(filepath.Join(path, sub))
		if err != nil || !info.IsDir() {
			return false
		}
	}
	return true
}
