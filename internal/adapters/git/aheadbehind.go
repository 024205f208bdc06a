package git

import (
	"context"
	"fmt"

	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	sideLocal uint8 = 1 << iota
	sideUpstream

	sideBoth = sideLocal | sideUpstream
)

// AheadBehind counts the commits reachable from local but not upstream
// (ahead) and from upstream but not local (behind).
//
// Both tips are walked newest-first by committer time, painting each commit
// with the side(s) it is reachable from. The walk stops once every queued
// commit is reachable from both sides and is strictly older than every commit
// still painted with one side only, since nothing older can be an ancestor of
// those. Commits sharing a committer time keep the walk going: the queue
// orders them arbitrarily, so an older one may have been expanded first.
// Like git, this assumes committer times never increase from child to parent.
func AheadBehind(ctx context.Context, repo *git.Repository, local, upstream plumbing.Hash) (ahead, behind int, err error) {
	if local == upstream {
		return 0, 0, nil
	}

	w, err := newGraphWalk(repo)
	if err != nil {
		return 0, 0, err
	}
	if err := w.paint(local, sideLocal); err != nil {
		return 0, 0, err
	}
	if err := w.paint(upstream, sideUpstream); err != nil {
		return 0, 0, err
	}

	for !w.queue.Empty() && !w.done() {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}

		v, _ := w.queue.Dequeue()
		c := v.(*object.Commit)
		if w.shallow[c.Hash] {
			continue
		}

		side := w.marks[c.Hash]
		for _, parent := range c.ParentHashes {
			if err := w.paint(parent, side); err != nil {
				return 0, 0, err
			}
		}
	}

	for h := range w.oneSided {
		switch w.marks[h] {
		case sideLocal:
			ahead++
		case sideUpstream:
			behind++
		}
	}
	return ahead, behind, nil
}

type graphWalk struct {
	repo    *git.Repository
	marks   map[plumbing.Hash]uint8
	commits map[plumbing.Hash]*object.Commit
	shallow map[plumbing.Hash]bool
	queue   *priorityqueue.Queue

	// oneSided holds the commits currently painted with a single side.
	oneSided map[plumbing.Hash]*object.Commit
}

func newGraphWalk(repo *git.Repository) (*graphWalk, error) {
	shallow, err := repo.Storer.Shallow()
	if err != nil {
		return nil, fmt.Errorf("failed to read shallow commits: %w", err)
	}

	w := &graphWalk{
		repo:     repo,
		marks:    make(map[plumbing.Hash]uint8),
		commits:  make(map[plumbing.Hash]*object.Commit),
		shallow:  make(map[plumbing.Hash]bool, len(shallow)),
		queue:    priorityqueue.NewWith(newestFirst),
		oneSided: make(map[plumbing.Hash]*object.Commit),
	}
	for _, h := range shallow {
		w.shallow[h] = true
	}
	return w, nil
}

// paint adds side to the commit's marks and queues it whenever its marks
// change, so that newly shared history propagates to its parents.
func (w *graphWalk) paint(h plumbing.Hash, side uint8) error {
	old, seen := w.marks[h]
	if seen && old|side == old {
		return nil
	}

	c, ok := w.commits[h]
	if !ok {
		var err error
		c, err = w.repo.CommitObject(h)
		if err != nil {
			return fmt.Errorf("failed to read commit %s: %w", h, err)
		}
		w.commits[h] = c
	}

	w.marks[h] = old | side
	if old|side == sideBoth {
		delete(w.oneSided, h)
	} else {
		w.oneSided[h] = c
	}
	w.queue.Enqueue(c)
	return nil
}

// done reports whether the remaining queue can only hold shared history.
func (w *graphWalk) done() bool {
	if !w.settled() {
		return false
	}

	v, ok := w.queue.Peek()
	if !ok {
		return true
	}
	newest := v.(*object.Commit).Committer.When
	for _, c := range w.oneSided {
		if !newest.Before(c.Committer.When) {
			return false
		}
	}
	return true
}

// settled reports whether every queued commit is shared by both sides.
func (w *graphWalk) settled() bool {
	for _, v := range w.queue.Values() {
		if w.marks[v.(*object.Commit).Hash] != sideBoth {
			return false
		}
	}
	return true
}

func newestFirst(a, b interface{}) int {
	ta := a.(*object.Commit).Committer.When
	tb := b.(*object.Commit).Committer.When
	switch {
	case ta.After(tb):
		return -1
	case ta.Before(tb):
		return 1
	default:
		return 0
	}
}
