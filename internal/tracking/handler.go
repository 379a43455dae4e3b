package tracking

import (
	"fmt"
	"time"

	"forumtrack/internal/model"
)

// Handler computes read/unread state and records read events for one request.
// It holds no state of its own beyond its collaborators.
type Handler struct {
	store  Store
	perms  PermissionChecker
	clock  Clock
	logger Logger
}

// NewHandler creates a Handler with the provided dependencies.
func NewHandler(store Store, perms PermissionChecker, clock Clock, logger Logger) *Handler {
	if clock == nil {
		clock = RealClock{}
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Handler{
		store:  store,
		perms:  perms,
		clock:  clock,
		logger: logger,
	}
}

// readState is the user's tracks resolved against the forum tree.
type readState struct {
	tree       *forumTree
	marks      *markResolver
	topicMarks map[string]time.Time
}

func (h *Handler) loadReadState(user *model.User, topicIDs []string) (*readState, error) {
	forums, err := h.store.FindForums()
	if err != nil {
		return nil, storeError("FindForums", err)
	}
	tree := newForumTree(forums)

	forumTracks, err := h.store.FindForumTracksForUser(user.ID)
	if err != nil {
		return nil, storeError("FindForumTracksForUser", err)
	}

	topicMarks := make(map[string]time.Time)
	if len(topicIDs) > 0 {
		topicTracks, err := h.store.FindTopicTracksForUser(user.ID, topicIDs)
		if err != nil {
			return nil, storeError("FindTopicTracksForUser", err)
		}
		for _, tr := range topicTracks {
			topicMarks[tr.TopicID] = tr.MarkTime
		}
	}

	return &readState{
		tree:       tree,
		marks:      newMarkResolver(tree, forumTracks),
		topicMarks: topicMarks,
	}, nil
}

// topicUnread applies the most specific mark: topic track, then the forum
// track of the topic's forum or its nearest ancestor. No mark means unread.
func (s *readState) topicUnread(t *model.Topic) bool {
	if !t.Approved {
		return false
	}
	if at, ok := s.topicMarks[t.ID]; ok {
		return t.ModifiedAfter(at)
	}
	at, ok := s.marks.forumMark(t.ForumID)
	if !ok {
		return true
	}
	return t.ModifiedAfter(at)
}

// GetUnreadForums returns the candidate forums holding unread content for
// the user, in candidate order. Forums the user cannot read are never
// returned. An unread forum also makes its visible candidate ancestors unread.
func (h *Handler) GetUnreadForums(forums []*model.Forum, user *model.User) ([]*model.Forum, error) {
	if !user.IsAuthenticated() || len(forums) == 0 {
		return nil, nil
	}

	var visible []*model.Forum
	visibleIDs := make(map[string]bool, len(forums))
	for _, f := range forums {
		if f == nil || visibleIDs[f.ID] {
			continue
		}
		ok, err := h.perms.CanRead(user, f)
		if err != nil {
			return nil, fmt.Errorf("checking read permission on forum %s: %w", f.ID, err)
		}
		if ok {
			visible = append(visible, f)
			visibleIDs[f.ID] = true
		}
	}
	if len(visible) == 0 {
		return nil, nil
	}

	forumIDs := make([]string, len(visible))
	for i, f := range visible {
		forumIDs[i] = f.ID
	}
	topics, err := h.store.FindTopicsByForumIDs(forumIDs)
	if err != nil {
		return nil, storeError("FindTopicsByForumIDs", err)
	}

	topicIDs := make([]string, len(topics))
	for i, t := range topics {
		topicIDs[i] = t.ID
	}
	state, err := h.loadReadState(user, topicIDs)
	if err != nil {
		return nil, err
	}

	unread := make(map[string]bool)
	for _, t := range topics {
		if unread[t.ForumID] {
			continue
		}
		if state.topicUnread(t) {
			unread[t.ForumID] = true
		}
	}

	for _, f := range visible {
		if !unread[f.ID] {
			continue
		}
		for _, anc := range state.tree.ancestors(f.ID) {
			if visibleIDs[anc] {
				unread[anc] = true
			}
		}
	}

	var result []*model.Forum
	for _, f := range visible {
		if unread[f.ID] {
			result = append(result, f)
		}
	}

	h.logger.Debug("computed unread forums", "user", user.ID, "candidates", len(forums), "unread", len(result))
	return result, nil
}

// GetUnreadTopics filters topics down to those unread by the user,
// preserving input order. Repeated topics are kept; nil entries are skipped.
func (h *Handler) GetUnreadTopics(topics []*model.Topic, user *model.User) ([]*model.Topic, error) {
	if !user.IsAuthenticated() || len(topics) == 0 {
		return nil, nil
	}

	topicIDs := make([]string, 0, len(topics))
	for _, t := range topics {
		if t != nil {
			topicIDs = append(topicIDs, t.ID)
		}
	}

	state, err := h.loadReadState(user, topicIDs)
	if err != nil {
		return nil, err
	}

	var result []*model.Topic
	for _, t := range topics {
		if t == nil {
			continue
		}
		if state.topicUnread(t) {
			result = append(result, t)
		}
	}

	h.logger.Debug("computed unread topics", "user", user.ID, "candidates", len(topics), "unread", len(result))
	return result, nil
}

// MarkForumAsRead records that the user has read the whole forum now.
// Topic tracks inside the forum are superseded and deleted.
func (h *Handler) MarkForumAsRead(forum *model.Forum, user *model.User) error {
	return h.MarkForumsAsRead([]*model.Forum{forum}, user)
}

// MarkForumsAsRead marks every given forum as read in a single transaction.
func (h *Handler) MarkForumsAsRead(forums []*model.Forum, user *model.User) error {
	if !user.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	ids := make([]string, 0, len(forums))
	seen := make(map[string]bool, len(forums))
	for _, f := range forums {
		if f == nil {
			return fmt.Errorf("forum: %w", ErrNotFound)
		}
		if seen[f.ID] {
			continue
		}
		if err := h.requireForum(f.ID); err != nil {
			return err
		}
		seen[f.ID] = true
		ids = append(ids, f.ID)
	}

	return h.markForums(ids, user)
}

// MarkForumTreeAsRead marks the forum and all of its descendants as read.
func (h *Handler) MarkForumTreeAsRead(forum *model.Forum, user *model.User) error {
	if !user.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if forum == nil {
		return fmt.Errorf("forum: %w", ErrNotFound)
	}
	if err := h.requireForum(forum.ID); err != nil {
		return err
	}

	forums, err := h.store.FindForums()
	if err != nil {
		return storeError("FindForums", err)
	}
	return h.markForums(newForumTree(forums).subtree(forum.ID), user)
}

// MarkAllAsRead marks every forum the user can read as read.
func (h *Handler) MarkAllAsRead(user *model.User) error {
	if !user.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	forums, err := h.store.FindForums()
	if err != nil {
		return storeError("FindForums", err)
	}

	var ids []string
	for _, f := range forums {
		ok, err := h.perms.CanRead(user, f)
		if err != nil {
			return fmt.Errorf("checking read permission on forum %s: %w", f.ID, err)
		}
		if ok {
			ids = append(ids, f.ID)
		}
	}

	return h.markForums(ids, user)
}

func (h *Handler) markForums(ids []string, user *model.User) error {
	if len(ids) == 0 {
		return nil
	}
	now := h.clock.Now()
	if err := h.store.MarkForumsRead(user.ID, ids, now); err != nil {
		return storeError("MarkForumsRead", err)
	}
	h.logger.Info("forums marked read", "user", user.ID, "count", len(ids))
	return nil
}

// MarkTopicAsRead records that the user has read the topic now.
func (h *Handler) MarkTopicAsRead(topic *model.Topic, user *model.User) error {
	if !user.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if topic == nil {
		return fmt.Errorf("topic: %w", ErrNotFound)
	}

	existing, err := h.store.FindTopicByID(topic.ID)
	if err != nil {
		return storeError("FindTopicByID", err)
	}
	if existing == nil {
		return fmt.Errorf("topic %s: %w", topic.ID, ErrNotFound)
	}

	if err := h.store.UpsertTopicTrack(user.ID, topic.ID, h.clock.Now()); err != nil {
		return storeError("UpsertTopicTrack", err)
	}
	h.logger.Debug("topic marked read", "user", user.ID, "topic", topic.ID)
	return nil
}

// ClearTracks forgets the user's whole read history.
func (h *Handler) ClearTracks(user *model.User) error {
	if !user.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if err := h.store.DeleteTracksForUser(user.ID); err != nil {
		return storeError("DeleteTracksForUser", err)
	}
	h.logger.Info("read tracks cleared", "user", user.ID)
	return nil
}

func (h *Handler) requireForum(id string) error {
	f, err := h.store.FindForumByID(id)
	if err != nil {
		return storeError("FindForumByID", err)
	}
	if f == nil {
		return fmt.Errorf("forum %s: %w", id, ErrNotFound)
	}
	return nil
}
