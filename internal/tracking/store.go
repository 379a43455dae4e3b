package tracking

import (
	"time"

	"forumtrack/internal/model"
)

// Store provides the persistent state the tracking handler reads and writes.
// Finders return nil (not an error) when a single record does not exist.
type Store interface {
	// Forum tree operations

	// FindForums returns every forum, used to build the ancestor tree.
	FindForums() ([]*model.Forum, error)

	// FindForumByID returns a forum by ID.
	FindForumByID(id string) (*model.Forum, error)

	// FindTopicByID returns a topic by ID.
	FindTopicByID(id string) (*model.Topic, error)

	// FindTopicsByForumIDs returns all topics held by the given forums.
	FindTopicsByForumIDs(forumIDs []string) ([]*model.Topic, error)

	// Track operations

	// FindForumTracksForUser returns every forum-level track of the user.
	FindForumTracksForUser(userID string) ([]*model.ForumReadTrack, error)

	// FindTopicTracksForUser returns the user's tracks on the given topics.
	FindTopicTracksForUser(userID string, topicIDs []string) ([]*model.TopicReadTrack, error)

	// UpsertTopicTrack creates or refreshes the (user, topic) track.
	UpsertTopicTrack(userID, topicID string, markTime time.Time) error

	// MarkForumsRead upserts a forum track for every forum and deletes the
	// user's topic tracks inside those forums, in a single transaction.
	MarkForumsRead(userID string, forumIDs []string, markTime time.Time) error

	// DeleteTracksForUser removes every forum and topic track of the user.
	DeleteTracksForUser(userID string) error
}

// TrackStore is the single-record track contract: one lookup and one upsert
// per (user, forum) and (user, topic) pair. Store's bulk operations cover
// what the handler needs; TrackStore serves callers that touch one track.
type TrackStore interface {
	GetForumTrack(userID, forumID string) (*model.ForumReadTrack, error)
	GetTopicTrack(userID, topicID string) (*model.TopicReadTrack, error)
	UpsertForumTrack(userID, forumID string, markTime time.Time) error
	UpsertTopicTrack(userID, topicID string, markTime time.Time) error
}

// PermissionChecker decides forum visibility per user.
type PermissionChecker interface {
	CanRead(user *model.User, forum *model.Forum) (bool, error)
}
