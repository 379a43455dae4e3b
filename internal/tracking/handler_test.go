package tracking_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"forumtrack/internal/database"
	"forumtrack/internal/model"
	"forumtrack/internal/testutil"
	"forumtrack/internal/tracking"
)

type fixture struct {
	db    *database.SQLiteDatabase
	clock *testutil.StubClock
	perms *testutil.StubPermissions
	h     *tracking.Handler
	alice *model.User
	bob   *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := testutil.FixedClock()
	db := testutil.NewTestDatabase(t, clock, nil)
	perms := testutil.NewStubPermissions()
	return &fixture{
		db:    db,
		clock: clock,
		perms: perms,
		h:     tracking.NewHandler(db, perms, clock, nil),
		alice: testutil.CreateUser(t, db, "alice"),
		bob:   testutil.CreateUser(t, db, "bob"),
	}
}

func forumIDs(forums []*model.Forum) []string {
	ids := make([]string, len(forums))
	for i, f := range forums {
		ids[i] = f.ID
	}
	return ids
}

func topicIDs(topics []*model.Topic) []string {
	ids := make([]string, len(topics))
	for i, t := range topics {
		ids[i] = t.ID
	}
	return ids
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func (f *fixture) unreadForums(t *testing.T, user *model.User, forums ...*model.Forum) []string {
	t.Helper()
	got, err := f.h.GetUnreadForums(forums, user)
	if err != nil {
		t.Fatalf("GetUnreadForums() error = %v", err)
	}
	return forumIDs(got)
}

func (f *fixture) unreadTopics(t *testing.T, user *model.User, topics ...*model.Topic) []string {
	t.Helper()
	got, err := f.h.GetUnreadTopics(topics, user)
	if err != nil {
		t.Fatalf("GetUnreadTopics() error = %v", err)
	}
	return topicIDs(got)
}

func TestHandler_AnonymousSeesNothingUnread(t *testing.T) {
	f := newFixture(t)
	forum := testutil.CreateForum(t, f.db, nil, "General")
	topic := testutil.CreateTopic(t, f.db, forum, f.alice, "hello")

	for _, user := range []*model.User{nil, model.Anonymous()} {
		if got := f.unreadForums(t, user, forum); len(got) != 0 {
			t.Errorf("GetUnreadForums(anonymous) = %v, want empty", got)
		}
		if got := f.unreadTopics(t, user, topic); len(got) != 0 {
			t.Errorf("GetUnreadTopics(anonymous) = %v, want empty", got)
		}
	}
}

func TestHandler_NeverReadIsUnread(t *testing.T) {
	f := newFixture(t)
	forum := testutil.CreateForum(t, f.db, nil, "General")
	topic := testutil.CreateTopic(t, f.db, forum, f.alice, "hello")

	if got, want := f.unreadTopics(t, f.bob, topic), []string{topic.ID}; !equalIDs(got, want) {
		t.Errorf("GetUnreadTopics() = %v, want %v", got, want)
	}
	if got, want := f.unreadForums(t, f.bob, forum), []string{forum.ID}; !equalIDs(got, want) {
		t.Errorf("GetUnreadForums() = %v, want %v", got, want)
	}
}

func TestHandler_EmptyForumIsRead(t *testing.T) {
	f := newFixture(t)
	forum := testutil.CreateForum(t, f.db, nil, "Empty")

	if got := f.unreadForums(t, f.bob, forum); len(got) != 0 {
		t.Errorf("GetUnreadForums() = %v, want empty", got)
	}
}

func TestHandler_DeniedForumNeverUnread(t *testing.T) {
	f := newFixture(t)
	open := testutil.CreateForum(t, f.db, nil, "Open")
	hidden := testutil.CreateForum(t, f.db, nil, "Hidden")
	testutil.CreateTopic(t, f.db, open, f.alice, "visible")
	testutil.CreateTopic(t, f.db, hidden, f.alice, "secret")
	f.perms.Deny(f.bob, hidden)

	if got, want := f.unreadForums(t, f.bob, open, hidden), []string{open.ID}; !equalIDs(got, want) {
		t.Errorf("GetUnreadForums() = %v, want %v", got, want)
	}
	if got, want := f.unreadForums(t, f.alice, open, hidden), []string{open.ID, hidden.ID}; !equalIDs(got, want) {
		t.Errorf("GetUnreadForums(alice) = %v, want %v", got, want)
	}
}

func TestHandler_NewTopicAfterMark(t *testing.T) {
	f := newFixture(t)
	forum := testutil.CreateForum(t, f.db, nil, "General")
	t1 := testutil.CreateTopic(t, f.db, forum, f.alice, "first")

	if err := f.h.MarkForumAsRead(forum, f.bob); err != nil {
		t.Fatalf("MarkForumAsRead() error = %v", err)
	}
	if got := f.unreadForums(t, f.bob, forum); len(got) != 0 {
		t.Errorf("GetUnreadForums() after mark = %v, want empty", got)
	}

	f.clock.Advance(time.Minute)
	t2 := testutil.CreateTopic(t, f.db, forum, f.alice, "second")

	if got, want := f.unreadTopics(t, f.bob, t1, t2), []string{t2.ID}; !equalIDs(got, want) {
		t.Errorf("GetUnreadTopics() = %v, want %v", got, want)
	}
	if got, want := f.unreadForums(t, f.bob, forum), []string{forum.ID}; !equalIDs(got, want) {
		t.Errorf("GetUnreadForums() = %v, want %v", got, want)
	}
}

func TestHandler_PostAfterMarkMakesTopicUnread(t *testing.T) {
	f := newFixture(t)
	forum := testutil.CreateForum(t, f.db, nil, "General")
	topic := testutil.CreateTopic(t, f.db, forum, f.alice, "hello")

	if err := f.h.MarkForumAsRead(forum, f.bob); err != nil {
		t.Fatalf("MarkForumAsRead() error = %v", err)
	}

	f.clock.Advance(time.Hour)
	testutil.CreatePost(t, f.db, topic, f.alice, "reply")

	updated, err := f.db.FindTopicByID(topic.ID)
	if err != nil {
		t.Fatalf("FindTopicByID() error = %v", err)
	}
	if got, want := f.unreadTopics(t, f.bob, updated), []string{topic.ID}; !equalIDs(got, want) {
		t.Errorf("GetUnreadTopics() = %v, want %v", got, want)
	}
}

func TestHandler_MarkForumTwiceKeepsOneTrack(t *testing.T) {
	f := newFixture(t)
	forum := testutil.CreateForum(t, f.db, nil, "General")

	if err := f.h.MarkForumAsRead(forum, f.bob); err != nil {
		t.Fatalf("first MarkForumAsRead() error = %v", err)
	}
	second := f.clock.Tick()
	if err := f.h.MarkForumAsRead(forum, f.bob); err != nil {
		t.Fatalf("second MarkForumAsRead() error = %v", err)
	}

	n, err := f.db.CountForumTracks(f.bob.ID, forum.ID)
	if err != nil {
		t.Fatalf("CountForumTracks() error = %v", err)
	}
	if n != 1 {
		t.Errorf("CountForumTracks() = %d, want 1", n)
	}

	track, err := f.db.GetForumTrack(f.bob.ID, forum.ID)
	if err != nil {
		t.Fatalf("GetForumTrack() error = %v", err)
	}
	if track == nil || !track.MarkTime.Equal(second) {
		t.Errorf("GetForumTrack() = %+v, want mark time %v", track, second)
	}
}

func TestHandler_TopicTrack(t *testing.T) {
	f := newFixture(t)
	forum := testutil.CreateForum(t, f.db, nil, "General")
	t1 := testutil.CreateTopic(t, f.db, forum, f.alice, "one")
	t2 := testutil.CreateTopic(t, f.db, forum, f.alice, "two")

	f.clock.Advance(time.Minute)
	if err := f.h.MarkTopicAsRead(t1, f.bob); err != nil {
		t.Fatalf("MarkTopicAsRead() error = %v", err)
	}

	if got, want := f.unreadTopics(t, f.bob, t1, t2), []string{t2.ID}; !equalIDs(got, want) {
		t.Errorf("GetUnreadTopics() = %v, want %v", got, want)
	}

	t.Run("topic track wins over an older forum track", func(t *testing.T) {
		f := newFixture(t)
		forum := testutil.CreateForum(t, f.db, nil, "General")
		testutil.CreateForumReadTrack(t, f.db, f.bob, forum, f.clock.Now().Add(-time.Hour))
		topic := testutil.CreateTopic(t, f.db, forum, f.alice, "hello")

		if got := f.unreadTopics(t, f.bob, topic); len(got) != 1 {
			t.Fatalf("GetUnreadTopics() before topic mark = %v, want 1 topic", got)
		}
		if err := f.h.MarkTopicAsRead(topic, f.bob); err != nil {
			t.Fatalf("MarkTopicAsRead() error = %v", err)
		}
		if got := f.unreadTopics(t, f.bob, topic); len(got) != 0 {
			t.Errorf("GetUnreadTopics() after topic mark = %v, want empty", got)
		}
		if got := f.unreadForums(t, f.bob, forum); len(got) != 0 {
			t.Errorf("GetUnreadForums() after topic mark = %v, want empty", got)
		}
	})
	t.Run("older topic track still decides over a newer forum track", func(t *testing.T) {
		f := newFixture(t)
		forum := testutil.CreateForum(t, f.db, nil, "General")
		topic := testutil.CreateTopic(t, f.db, forum, f.alice, "hello")
		testutil.CreateTopicReadTrack(t, f.db, f.bob, topic, f.clock.Now().Add(-time.Hour))
		testutil.CreateForumReadTrack(t, f.db, f.bob, forum, f.clock.Now().Add(time.Hour))

		if got, want := f.unreadTopics(t, f.bob, topic), []string{topic.ID}; !equalIDs(got, want) {
			t.Errorf("GetUnreadTopics() = %v, want %v", got, want)
		}
	})
}

func TestHandler_UnreadTopicsPreservesOrder(t *testing.T) {
	f := newFixture(t)
	forum := testutil.CreateForum(t, f.db, nil, "General")
	a := testutil.CreateTopic(t, f.db, forum, f.alice, "a")
	b := testutil.CreateTopic(t, f.db, forum, f.alice, "b")
	c := testutil.CreateTopic(t, f.db, forum, f.alice, "c")

	got := f.unreadTopics(t, f.bob, c, nil, a, c, b)
	if want := []string{c.ID, a.ID, c.ID, b.ID}; !equalIDs(got, want) {
		t.Errorf("GetUnreadTopics() = %v, want %v", got, want)
	}

	if err := f.h.MarkTopicAsRead(c, f.bob); err != nil {
		t.Fatalf("MarkTopicAsRead() error = %v", err)
	}
	got = f.unreadTopics(t, f.bob, c, a, c, b, a)
	if want := []string{a.ID, b.ID, a.ID}; !equalIDs(got, want) {
		t.Errorf("GetUnreadTopics() after marking c = %v, want %v", got, want)
	}
}

func TestHandler_UnapprovedTopicNeverUnread(t *testing.T) {
	f := newFixture(t)
	forum := testutil.CreateForum(t, f.db, nil, "Moderated")
	pending, err := f.db.CreateTopic(forum.ID, f.alice.ID, "pending", false)
	if err != nil {
		t.Fatalf("CreateTopic() error = %v", err)
	}

	if got := f.unreadTopics(t, f.bob, pending); len(got) != 0 {
		t.Errorf("GetUnreadTopics() = %v, want empty", got)
	}
	if got := f.unreadForums(t, f.bob, forum); len(got) != 0 {
		t.Errorf("GetUnreadForums() = %v, want empty", got)
	}
}

func TestHandler_AncestorInheritance(t *testing.T) {
	f := newFixture(t)
	cat := testutil.CreateCategoryForum(t, f.db, "Category")
	parent := testutil.CreateForum(t, f.db, cat, "Parent")
	child := testutil.CreateForum(t, f.db, parent, "Child")
	topic := testutil.CreateTopic(t, f.db, child, f.alice, "deep")

	f.clock.Advance(time.Minute)
	testutil.CreateForumReadTrack(t, f.db, f.bob, cat, f.clock.Now())

	if got := f.unreadTopics(t, f.bob, topic); len(got) != 0 {
		t.Errorf("GetUnreadTopics() = %v, want empty (inherited from category)", got)
	}

	f.clock.Advance(time.Minute)
	newer := testutil.CreateTopic(t, f.db, child, f.alice, "newer")
	if got, want := f.unreadTopics(t, f.bob, topic, newer), []string{newer.ID}; !equalIDs(got, want) {
		t.Errorf("GetUnreadTopics() = %v, want %v", got, want)
	}

	t.Run("own track wins over ancestor", func(t *testing.T) {
		f := newFixture(t)
		cat := testutil.CreateCategoryForum(t, f.db, "Category")
		child := testutil.CreateForum(t, f.db, cat, "Child")
		testutil.CreateForumReadTrack(t, f.db, f.bob, child, f.clock.Now().Add(-time.Hour))
		topic := testutil.CreateTopic(t, f.db, child, f.alice, "hello")
		testutil.CreateForumReadTrack(t, f.db, f.bob, cat, f.clock.Now().Add(time.Hour))

		if got := f.unreadTopics(t, f.bob, topic); len(got) != 1 {
			t.Errorf("GetUnreadTopics() = %v, want the topic (child track is older)", got)
		}
	})
}

func TestHandler_UnreadPropagatesToAncestors(t *testing.T) {
	f := newFixture(t)
	cat := testutil.CreateCategoryForum(t, f.db, "Category")
	parent := testutil.CreateForum(t, f.db, cat, "Parent")
	child := testutil.CreateForum(t, f.db, parent, "Child")
	sibling := testutil.CreateForum(t, f.db, cat, "Sibling")
	testutil.CreateTopic(t, f.db, child, f.alice, "deep")

	got := f.unreadForums(t, f.bob, cat, parent, child, sibling)
	if want := []string{cat.ID, parent.ID, child.ID}; !equalIDs(got, want) {
		t.Errorf("GetUnreadForums() = %v, want %v", got, want)
	}

	t.Run("hidden ancestor stays hidden", func(t *testing.T) {
		f.perms.Deny(f.bob, parent)
		got := f.unreadForums(t, f.bob, cat, parent, child, sibling)
		if want := []string{cat.ID, child.ID}; !equalIDs(got, want) {
			t.Errorf("GetUnreadForums() = %v, want %v", got, want)
		}
	})

	t.Run("non candidate ancestor is not added", func(t *testing.T) {
		got := f.unreadForums(t, f.bob, child, child)
		if want := []string{child.ID}; !equalIDs(got, want) {
			t.Errorf("GetUnreadForums() = %v, want %v", got, want)
		}
	})
}

func TestHandler_ConcurrentMarkForumKeepsOneTrack(t *testing.T) {
	clock := testutil.FixedClock()
	db := testutil.NewFileTestDatabase(t, clock, nil)
	h := tracking.NewHandler(db, testutil.NewStubPermissions(), clock, nil)
	bob := testutil.CreateUser(t, db, "bob")
	forum := testutil.CreateForum(t, db, nil, "General")

	// Two browser tabs marking the same forum at once.
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- h.MarkForumAsRead(forum, bob)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("MarkForumAsRead() error = %v", err)
		}
	}
	n, err := db.CountForumTracks(bob.ID, forum.ID)
	if err != nil {
		t.Fatalf("CountForumTracks() error = %v", err)
	}
	if n != 1 {
		t.Errorf("CountForumTracks() = %d, want 1", n)
	}
}

func TestHandler_MarkForumDeletesTopicTracks(t *testing.T) {
	f := newFixture(t)
	forum := testutil.CreateForum(t, f.db, nil, "General")
	other := testutil.CreateForum(t, f.db, nil, "Other")
	inForum := testutil.CreateTopic(t, f.db, forum, f.alice, "in forum")
	inOther := testutil.CreateTopic(t, f.db, other, f.alice, "in other")

	for _, topic := range []*model.Topic{inForum, inOther} {
		if err := f.h.MarkTopicAsRead(topic, f.bob); err != nil {
			t.Fatalf("MarkTopicAsRead() error = %v", err)
		}
	}

	if err := f.h.MarkForumAsRead(forum, f.bob); err != nil {
		t.Fatalf("MarkForumAsRead() error = %v", err)
	}

	if tr, err := f.db.GetTopicTrack(f.bob.ID, inForum.ID); err != nil || tr != nil {
		t.Errorf("GetTopicTrack(in forum) = %+v, %v; want deleted", tr, err)
	}
	if tr, err := f.db.GetTopicTrack(f.bob.ID, inOther.ID); err != nil || tr == nil {
		t.Errorf("GetTopicTrack(in other) = %+v, %v; want kept", tr, err)
	}
}

func TestHandler_MarkForumsAsRead(t *testing.T) {
	f := newFixture(t)
	one := testutil.CreateForum(t, f.db, nil, "One")
	two := testutil.CreateForum(t, f.db, nil, "Two")
	testutil.CreateTopic(t, f.db, one, f.alice, "a")
	testutil.CreateTopic(t, f.db, two, f.alice, "b")

	if err := f.h.MarkForumsAsRead([]*model.Forum{one, two, one}, f.bob); err != nil {
		t.Fatalf("MarkForumsAsRead() error = %v", err)
	}
	if got := f.unreadForums(t, f.bob, one, two); len(got) != 0 {
		t.Errorf("GetUnreadForums() = %v, want empty", got)
	}

	t.Run("one unknown forum marks nothing", func(t *testing.T) {
		f := newFixture(t)
		one := testutil.CreateForum(t, f.db, nil, "One")
		err := f.h.MarkForumsAsRead([]*model.Forum{one, {ID: "missing"}}, f.bob)
		if !errors.Is(err, tracking.ErrNotFound) {
			t.Fatalf("MarkForumsAsRead() error = %v, want ErrNotFound", err)
		}
		if tr, _ := f.db.GetForumTrack(f.bob.ID, one.ID); tr != nil {
			t.Error("forum was marked despite the error")
		}
	})
}

func TestHandler_MarkForumTreeAsRead(t *testing.T) {
	f := newFixture(t)
	cat := testutil.CreateCategoryForum(t, f.db, "Category")
	parent := testutil.CreateForum(t, f.db, cat, "Parent")
	child := testutil.CreateForum(t, f.db, parent, "Child")
	link := testutil.CreateLinkForum(t, f.db, parent, "Link")
	sibling := testutil.CreateForum(t, f.db, cat, "Sibling")
	deep := testutil.CreateTopic(t, f.db, child, f.alice, "deep")

	if err := f.h.MarkTopicAsRead(deep, f.bob); err != nil {
		t.Fatalf("MarkTopicAsRead() error = %v", err)
	}
	f.clock.Advance(time.Minute)

	if err := f.h.MarkForumTreeAsRead(parent, f.bob); err != nil {
		t.Fatalf("MarkForumTreeAsRead() error = %v", err)
	}

	for _, forum := range []*model.Forum{parent, child, link} {
		if tr, err := f.db.GetForumTrack(f.bob.ID, forum.ID); err != nil || tr == nil {
			t.Errorf("GetForumTrack(%s) = %+v, %v; want a track", forum.Name, tr, err)
		}
	}
	for _, forum := range []*model.Forum{cat, sibling} {
		if tr, err := f.db.GetForumTrack(f.bob.ID, forum.ID); err != nil || tr != nil {
			t.Errorf("GetForumTrack(%s) = %+v, %v; want none", forum.Name, tr, err)
		}
	}
	if tr, _ := f.db.GetTopicTrack(f.bob.ID, deep.ID); tr != nil {
		t.Error("topic track in subtree was not deleted")
	}
}

func TestHandler_MarkAllAsRead(t *testing.T) {
	f := newFixture(t)
	open := testutil.CreateForum(t, f.db, nil, "Open")
	hidden := testutil.CreateForum(t, f.db, nil, "Hidden")
	testutil.CreateTopic(t, f.db, open, f.alice, "a")
	f.perms.Deny(f.bob, hidden)

	if err := f.h.MarkAllAsRead(f.bob); err != nil {
		t.Fatalf("MarkAllAsRead() error = %v", err)
	}

	if tr, _ := f.db.GetForumTrack(f.bob.ID, open.ID); tr == nil {
		t.Error("visible forum was not marked")
	}
	if tr, _ := f.db.GetForumTrack(f.bob.ID, hidden.ID); tr != nil {
		t.Error("hidden forum was marked")
	}
	if got := f.unreadForums(t, f.bob, open); len(got) != 0 {
		t.Errorf("GetUnreadForums() = %v, want empty", got)
	}
}

func TestHandler_ClearTracks(t *testing.T) {
	f := newFixture(t)
	forum := testutil.CreateForum(t, f.db, nil, "General")
	topic := testutil.CreateTopic(t, f.db, forum, f.alice, "hello")

	if err := f.h.MarkForumAsRead(forum, f.bob); err != nil {
		t.Fatalf("MarkForumAsRead() error = %v", err)
	}
	if err := f.h.MarkForumAsRead(forum, f.alice); err != nil {
		t.Fatalf("MarkForumAsRead() error = %v", err)
	}

	if err := f.h.ClearTracks(f.bob); err != nil {
		t.Fatalf("ClearTracks() error = %v", err)
	}

	if got := f.unreadTopics(t, f.bob, topic); len(got) != 1 {
		t.Errorf("GetUnreadTopics(bob) = %v, want the topic again", got)
	}
	if got := f.unreadTopics(t, f.alice, topic); len(got) != 0 {
		t.Errorf("GetUnreadTopics(alice) = %v, want empty", got)
	}
}

func TestHandler_Errors(t *testing.T) {
	f := newFixture(t)
	forum := testutil.CreateForum(t, f.db, nil, "General")
	topic := testutil.CreateTopic(t, f.db, forum, f.alice, "hello")
	anon := model.Anonymous()

	t.Run("anonymous cannot mark", func(t *testing.T) {
		tests := []struct {
		name   string
		op     func() error
		wantOp string
	}{
		{"GetUnreadTopics", func() error {
			_, err := h.GetUnreadTopics([]*model.Topic{topic}, f.bob)
			return err
		}, "FindForums"},
		{"GetUnreadForums", func() error {
			_, err := h.GetUnreadForums([]*model.Forum{forum}, f.bob)
			return err
		}, "FindForums"},
		{"MarkForumAsRead", func() error { return h.MarkForumAsRead(forum, f.bob) }, "MarkForumsRead"},
		{"MarkAllAsRead", func() error { return h.MarkAllAsRead(f.bob) }, "FindForums"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			var se *tracking.StoreError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, want *StoreError", err)
			}
			if se.Op != tt.wantOp {
				t.Errorf("Op = %q, want %q", se.Op, tt.wantOp)
			}
			if !errors.Is(err, boom) {
				t.Errorf("error = %v, want it to wrap %v", err, boom)
			}
			want := "store: " + tt.wantOp + ": disk full"
			if err.Error() != want {
				t.Errorf("Error() = %q, want %q", err.Error(), want)
			}
		})
	}
}

// failingStore fails every call it overrides and delegates the rest.
type failingStore struct {
	tracking.Store
	err error
}

func (s *failingStore) FindForums() ([]*model.Forum, error) { return nil, s.err }

func (s *failingStore) MarkForumsRead(string, []string, time.Time) error { return s.err }

func TestHandler_StoreErrors(t *testing.T) {
	f := newFixture(t)
	forum := testutil.CreateForum(t, f.db, nil, "General")
	topic := testutil.CreateTopic(t, f.db, forum, f.alice, "hello")

	boom := errors.New("disk full")
	h := tracking.NewHandler(&failingStore{Store: f.db, err: boom}, f.perms, f.clock, nil)

	ops := map[string]func() error{
		"GetUnreadTopics": func() error {
			_, err := h.GetUnreadTopics([]*model.Topic{topic}, f.bob)
			return err
		},
		"GetUnreadForums": func() error {
			_, err := h.GetUnreadForums([]*model.Forum{forum}, f.bob)
			return err
		},
		"MarkForumAsRead": func() error { return h.MarkForumAsRead(forum, f.bob) },
		"MarkAllAsRead":   func() error { return h.MarkAllAsRead(f.bob) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := op()
			var se *tracking.StoreError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, want *StoreError", err)
			}
			if !errors.Is(err, boom) {
				t.Errorf("error = %v, want it to wrap %v", err, boom)
			}
		})
	}
}
