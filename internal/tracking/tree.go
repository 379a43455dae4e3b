package tracking

import (
	"time"

	"forumtrack/internal/model"
)

// forumTree indexes forums by ID and parent for explicit ancestor walks.
type forumTree struct {
	forums   map[string]*model.Forum
	children map[string][]string
}

func newForumTree(forums []*model.Forum) *forumTree {
	t := &forumTree{
		forums:   make(map[string]*model.Forum, len(forums)),
		children: make(map[string][]string),
	}
	for _, f := range forums {
		t.forums[f.ID] = f
		if f.ParentID != "" {
			t.children[f.ParentID] = append(t.children[f.ParentID], f.ID)
		}
	}
	return t
}

func (t *forumTree) parentOf(id string) string {
	if f, ok := t.forums[id]; ok {
		return f.ParentID
	}
	return ""
}

// ancestors returns the IDs above id, nearest first.
func (t *forumTree) ancestors(id string) []string {
	var out []string
	seen := map[string]bool{id: true}
	for p := t.parentOf(id); p != "" && !seen[p]; p = t.parentOf(p) {
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// subtree returns id followed by all of its descendants, depth first.
func (t *forumTree) subtree(id string) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(string)
	walk = func(n string) {
		if seen[n] {
			return
		}
		seen[n] = true
		out = append(out, n)
		for _, c := range t.children[n] {
			walk(c)
		}
	}
	walk(id)
	return out
}

type resolvedMark struct {
	at time.Time
	ok bool
}

// markResolver finds the forum-level mark time that applies to a forum:
// its own track, else the nearest ancestor's. Every forum visited while
// resolving is memoized, so sibling lookups stop at the shared ancestor.
type markResolver struct {
	tree *forumTree
	own  map[string]time.Time
	memo map[string]resolvedMark
}

func newMarkResolver(tree *forumTree, tracks []*model.ForumReadTrack) *markResolver {
	own := make(map[string]time.Time, len(tracks))
	for _, tr := range tracks {
		own[tr.ForumID] = tr.MarkTime
	}
	return &markResolver{
		tree: tree,
		own:  own,
		memo: make(map[string]resolvedMark),
	}
}

func (r *markResolver) forumMark(forumID string) (time.Time, bool) {
	if m, ok := r.memo[forumID]; ok {
		return m.at, m.ok
	}

	var (
		path  []string
		found resolvedMark
	)
	seen := make(map[string]bool)
	for id := forumID; id != "" && !seen[id]; id = r.tree.parentOf(id) {
		seen[id] = true
		if m, ok := r.memo[id]; ok {
			found = m
			break
		}
		path = append(path, id)
		if at, ok := r.own[id]; ok {
			found = resolvedMark{at: at, ok: true}
			break
		}
	}

	for _, id := range path {
		r.memo[id] = found
	}
	return found.at, found.ok
}
