package model

import "time"

// User is a forum account. The zero value is the anonymous user.
type User struct {
	ID        string // UUID, empty for anonymous
	Username  string
	CreatedAt time.Time
}

// Anonymous returns the unauthenticated user.
func Anonymous() *User { return &User{} }

// IsAuthenticated reports whether u is a concrete account.
func (u *User) IsAuthenticated() bool {
	return u != nil && u.ID != ""
}

// Group is a named set of users that permissions can be granted to.
type Group struct {
	ID   string // UUID
	Name string
}

// ForumType distinguishes the kinds of nodes in the forum tree.
type ForumType string

const (
	ForumTypeCategory ForumType = "category"
	ForumTypeForum    ForumType = "forum"
	ForumTypeLink     ForumType = "link"
)

// Valid reports whether t is a known forum type.
func (t ForumType) Valid() bool {
	switch t {
	case ForumTypeCategory, ForumTypeForum, ForumTypeLink:
		return true
	}
	return false
}

// Forum is a node in the forum tree.
type Forum struct {
	ID        string // UUID
	ParentID  string // empty for top-level forums
	Name      string
	Type      ForumType
	Position  int64
	CreatedAt time.Time
}

// Topic belongs to exactly one forum.
type Topic struct {
	ID        string // UUID
	ForumID   string
	PosterID  string
	Subject   string
	Approved  bool
	CreatedAt time.Time
	UpdatedAt time.Time // refreshed when a post is added
}

// ModifiedAfter reports whether the topic was created or updated strictly after t.
func (t *Topic) ModifiedAfter(mark time.Time) bool {
	return t.CreatedAt.After(mark) || t.UpdatedAt.After(mark)
}

// Post is a message inside a topic.
type Post struct {
	ID        string // UUID
	TopicID   string
	PosterID  string
	Content   string
	CreatedAt time.Time
}

// ForumReadTrack records when a user last marked a whole forum as read.
type ForumReadTrack struct {
	UserID   string
	ForumID  string
	MarkTime time.Time
}

// TopicReadTrack records when a user last read a single topic.
type TopicReadTrack struct {
	UserID   string
	TopicID  string
	MarkTime time.Time
}

// ForumPermission grants or denies a codename on a forum.
// Exactly one of UserID, GroupID or Anonymous identifies the grantee.
// An empty ForumID makes the grant global.
type ForumPermission struct {
	ID        string // UUID
	ForumID   string
	UserID    string
	GroupID   string
	Anonymous bool
	Codename  string
	Granted   bool
}
