// Package permission resolves forum read permissions from stored grants.
package permission

import (
	"fmt"

	"forumtrack/internal/model"
	"forumtrack/internal/tracking"
)

// CanReadForum is the codename checked by Handler.CanRead.
const CanReadForum = "can_read_forum"

// GrantStore provides the stored grants the Handler resolves against.
type GrantStore interface {
	// FindForumPermissions returns the grants with codename that apply to
	// forumID, including global grants (ForumID == "").
	FindForumPermissions(forumID, codename string) ([]*model.ForumPermission, error)
	FindGroupIDsForUser(userID string) ([]string, error)
}

// Handler answers read-permission questions for one request. It memoizes
// every answer and the acting user's group list, so a Handler must not
// outlive the request it was built for.
type Handler struct {
	store  GrantStore
	groups map[string][]string
	cache  map[cacheKey]bool
}

type cacheKey struct {
	userID  string
	forumID string
}

var _ tracking.PermissionChecker = (*Handler)(nil)

func NewHandler(store GrantStore) *Handler {
	return &Handler{
		store:  store,
		groups: make(map[string][]string),
		cache:  make(map[cacheKey]bool),
	}
}

// CanRead reports whether user may read forum. Resolution order, first match
// wins: per-forum user grant, per-forum group grant, global user grant,
// global group grant, deny. Among group grants at one level a deny wins.
// Anonymous users only match anonymous grants.
func (h *Handler) CanRead(user *model.User, forum *model.Forum) (bool, error) {
	if forum == nil {
		return false, nil
	}

	key := cacheKey{forumID: forum.ID}
	if user.IsAuthenticated() {
		key.userID = user.ID
	}
	if allowed, ok := h.cache[key]; ok {
		return allowed, nil
	}

	perms, err := h.store.FindForumPermissions(forum.ID, CanReadForum)
	if err != nil {
		return false, fmt.Errorf("finding permissions for forum %s: %w", forum.ID, err)
	}

	var local, global []*model.ForumPermission
	for _, p := range perms {
		if p.ForumID == "" {
			global = append(global, p)
		} else if p.ForumID == forum.ID {
			local = append(local, p)
		}
	}

	var allowed bool
	if key.userID == "" {
		allowed = resolveAnonymous(local, global)
	} else {
		groupIDs, err := h.groupsFor(key.userID)
		if err != nil {
			return false, err
		}
		allowed = resolveUser(key.userID, groupIDs, local, global)
	}

	h.cache[key] = allowed
	return allowed, nil
}

func (h *Handler) groupsFor(userID string) ([]string, error) {
	if ids, ok := h.groups[userID]; ok {
		return ids, nil
	}
	ids, err := h.store.FindGroupIDsForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("finding groups for user %s: %w", userID, err)
	}
	h.groups[userID] = ids
	return ids, nil
}

func resolveAnonymous(local, global []*model.ForumPermission) bool {
	for _, level := range [][]*model.ForumPermission{local, global} {
		for _, p := range level {
			if p.Anonymous {
				return p.Granted
			}
		}
	}
	return false
}

func resolveUser(userID string, groupIDs []string, local, global []*model.ForumPermission) bool {
	member := make(map[string]bool, len(groupIDs))
	for _, id := range groupIDs {
		member[id] = true
	}

	for _, level := range [][]*model.ForumPermission{local, global} {
		for _, p := range level {
			if p.UserID == userID {
				return p.Granted
			}
		}

		matched, granted := false, true
		for _, p := range level {
			if p.GroupID != "" && member[p.GroupID] {
				matched = true
				granted = granted && p.Granted
			}
		}
		if matched {
			return granted
		}
	}
	return false
}
