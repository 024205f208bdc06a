package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// testRepo is a go-git repository on disk with a deterministic commit clock.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
	now  time.Time
	step time.Duration
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err, "Failed to init git repo")

	wt, err := repo.Worktree()
	require.NoError(t, err, "Failed to get worktree")

	return &testRepo{
		t:    t,
		dir:  dir,
		repo: repo,
		wt:   wt,
		now:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		step: time.Minute,
	}
}

// freezeClock gives every following commit the same timestamp, as a rebase
// or a scripted series of commits does.
func (r *testRepo) freezeClock() {
	r.step = 0
}

// handle returns the adapter under test with an empty global config.
func (r *testRepo) handle() *Repository {
	return NewRepository(r.repo, r.dir, emptyGlobalConfig)
}

func (r *testRepo) write(name, content string) {
	r.t.Helper()
	path := filepath.Join(r.dir, name)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0644), "Failed to write %s", name)
}

func (r *testRepo) add(name string) {
	r.t.Helper()
	_, err := r.wt.Add(name)
	require.NoError(r.t, err, "Failed to add %s", name)
}

// commit writes name, stages it and commits one step after the previous commit.
func (r *testRepo) commit(name, content string, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	r.write(name, content)
	r.add(name)

	r.now = r.now.Add(r.step)
	hash, err := r.wt.Commit("Update "+name, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  r.now,
		},
		Parents: parents,
	})
	require.NoError(r.t, err, "Failed to create commit")
	return hash
}

func (r *testRepo) resetHard(h plumbing.Hash) {
	r.t.Helper()
	require.NoError(r.t, r.wt.Reset(&git.ResetOptions{Commit: h, Mode: git.HardReset}))
}

func (r *testRepo) setRef(name plumbing.ReferenceName, h plumbing.Hash) {
	r.t.Helper()
	require.NoError(r.t, r.repo.Storer.SetReference(plumbing.NewHashReference(name, h)))
}

// track configures origin and makes branch track origin/<branch>.
func (r *testRepo) track(branch string) {
	r.t.Helper()
	_, err := r.repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"https://example.com/repo.git"},
	})
	require.NoError(r.t, err, "Failed to create remote")

	require.NoError(r.t, r.repo.CreateBranch(&config.Branch{
		Name:   branch,
		Remote: "origin",
		Merge:  plumbing.NewBranchReferenceName(branch),
	}), "Failed to configure upstream")
}

func (r *testRepo) setLocalDefaultBranch(name string) {
	r.t.Helper()
	cfg, err := r.repo.Config()
	require.NoError(r.t, err)
	cfg.Init.DefaultBranch = name
	require.NoError(r.t, r.repo.SetConfig(cfg))
}

func emptyGlobalConfig() (*config.Config, error) {
	return config.NewConfig(), nil
}

func globalConfigWithDefault(name string) func() (*config.Config, error) {
	return func() (*config.Config, error) {
		cfg := config.NewConfig()
		cfg.Init.DefaultBranch = name
		return cfg, nil
	}
}
