package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/xvierd/gitprompt/internal/domain"
	"github.com/xvierd/gitprompt/internal/logging"
)

// Branch resolves the current checkout: branch or detached commit, and the
// ahead/behind counts against the configured upstream when there is one.
func (r *Repository) Branch(ctx context.Context) (domain.BranchState, error) {
	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return r.unbornBranch()
	}
	if err != nil {
		return domain.BranchState{}, domain.Wrap("Unable to resolve HEAD", err)
	}

	fullName := head.Name()
	if fullName == "" {
		return domain.BranchState{}, domain.Wrap("Unable to get local branch full name", errors.New("HEAD has no name"))
	}
	shortName := fullName.Short()
	if shortName == "" {
		return domain.BranchState{}, domain.Wrap("Unable to get local branch short name", fmt.Errorf("reference %q has no short name", fullName))
	}

	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return domain.BranchState{}, domain.Wrap("Unable to get local branch id", err)
	}

	state := domain.BranchState{
		Name:       shortName,
		IsDetached: !fullName.IsBranch(),
		SHA:        commit.Hash,
	}

	upstreamName, ok, err := r.upstreamName(fullName)
	if err != nil {
		return domain.BranchState{}, err
	}
	if !ok {
		logging.Logger.Debug("no upstream configured", "branch", shortName, "detached", state.IsDetached)
		return state, nil
	}

	upstream, err := r.repo.Reference(upstreamName, true)
	if err != nil {
		return domain.BranchState{}, domain.Wrap(fmt.Sprintf("Unable to find remote branch %s", upstreamName.Short()), err)
	}
	if upstream.Hash().IsZero() {
		return domain.BranchState{}, domain.Wrap("Unable to get remote branch id", fmt.Errorf("reference %q has no target", upstreamName))
	}

	ahead, behind, err := AheadBehind(ctx, r.repo, commit.Hash, upstream.Hash())
	if err != nil {
		return domain.BranchState{}, domain.Wrap("Unable to compare local and remote branches", err)
	}
	state.Ahead = ahead
	state.Behind = behind

	logging.Logger.Debug("branch resolved",
		"branch", shortName,
		"upstream", upstreamName.String(),
		"ahead", ahead,
		"behind", behind,
	)

	return state, nil
}

// upstreamName returns the reference tracked by a local branch according to
// branch.<name>.remote and branch.<name>.merge. Detached HEADs never have one.
func (r *Repository) upstreamName(branch plumbing.ReferenceName) (plumbing.ReferenceName, bool, error) {
	if !branch.IsBranch() {
		return "", false, nil
	}

	cfg, err := r.repo.Config()
	if err != nil {
		return "", false, domain.Wrap("Unable to read repository config", err)
	}

	b, ok := cfg.Branches[branch.Short()]
	if !ok || b.Remote == "" || b.Merge == "" {
		return "", false, nil
	}

	// "." tracks another local branch
	if b.Remote == "." {
		return b.Merge, true, nil
	}

	if remote, ok := cfg.Remotes[b.Remote]; ok {
		for _, rs := range remote.Fetch {
			if rs.IsDelete() || rs.IsExactSHA1() {
				continue
			}
			if rs.Match(b.Merge) {
				return rs.Dst(b.Merge), true, nil
			}
		}
	}

	return plumbing.NewRemoteReferenceName(b.Remote, b.Merge.Short()), true, nil
}

// unbornBranch handles a HEAD that points at a branch with no commits yet.
// A repository without any references gets the configured default branch
// name; an orphan branch in an otherwise populated repository keeps its own.
func (r *Repository) unbornBranch() (domain.BranchState, error) {
	empty, err := r.isEmpty()
	if err != nil {
		return domain.BranchState{}, err
	}

	if !empty {
		head, err := r.repo.Reference(plumbing.HEAD, false)
		if err != nil {
			return domain.BranchState{}, domain.Wrap("Unable to resolve HEAD", err)
		}
		if head.Type() == plumbing.SymbolicReference {
			return domain.NewEmptyBranchState(head.Target().Short()), nil
		}
	}

	name, err := r.defaultBranchName()
	if err != nil {
		return domain.BranchState{}, err
	}
	return domain.NewEmptyBranchState(name), nil
}

// isEmpty reports whether the repository has no references besides HEAD.
func (r *Repository) isEmpty() (bool, error) {
	refs, err := r.repo.References()
	if err != nil {
		return false, domain.Wrap("Unable to list references", err)
	}
	defer refs.Close()

	empty := true
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name() == plumbing.HEAD {
			return nil
		}
		empty = false
		return storer.ErrStop
	})
	if err != nil {
		return false, domain.Wrap("Unable to list references", err)
	}
	return empty, nil
}

// defaultBranchLookup returns a branch name, or "" when its source has none.
type defaultBranchLookup func() (string, error)

// defaultBranchName tries each config scope in order and falls back to
// domain.FallbackBranchName.
func (r *Repository) defaultBranchName() (string, error) {
	lookups := []defaultBranchLookup{
		r.localDefaultBranch,
		r.globalDefaultBranch,
	}
	for _, lookup := range lookups {
		name, err := lookup()
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
	}
	return domain.FallbackBranchName, nil
}

func (r *Repository) localDefaultBranch() (string, error) {
	cfg, err := r.repo.ConfigScoped(config.LocalScope)
	if err != nil {
		return "", domain.Wrap("Unable to read local config", err)
	}
	return cfg.Init.DefaultBranch, nil
}

func (r *Repository) globalDefaultBranch() (string, error) {
	if r.globalConfig == nil {
		return "", nil
	}
	cfg, err := r.globalConfig()
	if err != nil {
		return "", domain.Wrap("Unable to read global config", err)
	}
	return cfg.Init.DefaultBranch, nil
}
