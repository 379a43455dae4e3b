package testutil

import (
	"testing"
	"time"

	"forumtrack/internal/database"
	"forumtrack/internal/model"
	"forumtrack/internal/permission"
	"forumtrack/internal/tracking"
)

// CreateUser inserts a user and fails the test on error.
func CreateUser(t *testing.T, db *database.SQLiteDatabase, username string) *model.User {
	t.Helper()
	u, err := db.CreateUser(username)
	if err != nil {
		t.Fatalf("CreateUser(%q): %v", username, err)
	}
	return u
}

// CreateGroup inserts a group and adds members to it.
func CreateGroup(t *testing.T, db *database.SQLiteDatabase, name string, members ...*model.User) *model.Group {
	t.Helper()
	g, err := db.CreateGroup(name)
	if err != nil {
		t.Fatalf("CreateGroup(%q): %v", name, err)
	}
	for _, u := range members {
		if err := db.AddUserToGroup(u.ID, g.ID); err != nil {
			t.Fatalf("AddUserToGroup(%q, %q): %v", u.Username, name, err)
		}
	}
	return g
}

// CreateCategoryForum inserts a top-level category.
func CreateCategoryForum(t *testing.T, db *database.SQLiteDatabase, name string) *model.Forum {
	t.Helper()
	return createForum(t, db, nil, name, model.ForumTypeCategory)
}

// CreateForum inserts a postable forum under parent (nil for top level).
func CreateForum(t *testing.T, db *database.SQLiteDatabase, parent *model.Forum, name string) *model.Forum {
	t.Helper()
	return createForum(t, db, parent, name, model.ForumTypeForum)
}

// CreateLinkForum inserts a link forum under parent.
func CreateLinkForum(t *testing.T, db *database.SQLiteDatabase, parent *model.Forum, name string) *model.Forum {
	t.Helper()
	return createForum(t, db, parent, name, model.ForumTypeLink)
}

func createForum(t *testing.T, db *database.SQLiteDatabase, parent *model.Forum, name string, forumType model.ForumType) *model.Forum {
	t.Helper()
	var parentID string
	if parent != nil {
		parentID = parent.ID
	}
	f, err := db.CreateForum(parentID, name, forumType, 0)
	if err != nil {
		t.Fatalf("CreateForum(%q): %v", name, err)
	}
	return f
}

// CreateTopic inserts an approved topic posted by poster.
func CreateTopic(t *testing.T, db *database.SQLiteDatabase, forum *model.Forum, poster *model.User, subject string) *model.Topic {
	t.Helper()
	var posterID string
	if poster != nil {
		posterID = poster.ID
	}
	topic, err := db.CreateTopic(forum.ID, posterID, subject, true)
	if err != nil {
		t.Fatalf("CreateTopic(%q): %v", subject, err)
	}
	return topic
}

// CreatePost adds a post to topic, which moves the topic's update time.
func CreatePost(t *testing.T, db *database.SQLiteDatabase, topic *model.Topic, poster *model.User, content string) *model.Post {
	t.Helper()
	var posterID string
	if poster != nil {
		posterID = poster.ID
	}
	p, err := db.CreatePost(topic.ID, posterID, content)
	if err != nil {
		t.Fatalf("CreatePost(%q): %v", topic.Subject, err)
	}
	return p
}

// CreateForumReadTrack stores a forum mark for user at markTime and reads
// it back.
func CreateForumReadTrack(t *testing.T, store tracking.TrackStore, user *model.User, forum *model.Forum, markTime time.Time) *model.ForumReadTrack {
	t.Helper()
	if err := store.UpsertForumTrack(user.ID, forum.ID, markTime); err != nil {
		t.Fatalf("UpsertForumTrack(%q, %q): %v", user.Username, forum.Name, err)
	}
	tr, err := store.GetForumTrack(user.ID, forum.ID)
	if err != nil || tr == nil {
		t.Fatalf("GetForumTrack(%q, %q) = %v, %v", user.Username, forum.Name, tr, err)
	}
	return tr
}

// CreateTopicReadTrack stores a topic mark for user at markTime and reads
// it back.
func CreateTopicReadTrack(t *testing.T, store tracking.TrackStore, user *model.User, topic *model.Topic, markTime time.Time) *model.TopicReadTrack {
	t.Helper()
	if err := store.UpsertTopicTrack(user.ID, topic.ID, markTime); err != nil {
		t.Fatalf("UpsertTopicTrack(%q, %q): %v", user.Username, topic.Subject, err)
	}
	tr, err := store.GetTopicTrack(user.ID, topic.ID)
	if err != nil || tr == nil {
		t.Fatalf("GetTopicTrack(%q, %q) = %v, %v", user.Username, topic.Subject, tr, err)
	}
	return tr
}

// GrantGroupRead grants or denies can_read_forum on forum to group.
func GrantGroupRead(t *testing.T, db *database.SQLiteDatabase, group *model.Group, forum *model.Forum, granted bool) {
	t.Helper()
	_, err := db.GrantForumPermission(&model.ForumPermission{
		ForumID:  forum.ID,
		GroupID:  group.ID,
		Codename: permission.CanReadForum,
		Granted:  granted,
	})
	if err != nil {
		t.Fatalf("GrantForumPermission(%q, %q): %v", group.Name, forum.Name, err)
	}
}
