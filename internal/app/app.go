package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"forumtrack/internal/config"
	"forumtrack/internal/database"
	"forumtrack/internal/model"
	"forumtrack/internal/permission"
	"forumtrack/internal/tracking"
)

// App is the application layer between the CLI and the tracking handler.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw CLI values, and manages the DB lifecycle on Close.
type App struct {
	cfg     *config.Config
	db      *database.SQLiteDatabase
	clock   tracking.Clock
	logger  *slog.Logger
	perms   *permission.Handler
	tracker *tracking.Handler
	req     *Request
	logFile *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "MarkForum", "UnreadTopics").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database, cfg.SiteID)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	// An in-memory database starts empty on every run.
	if cfg.Database.Type == "memory" {
		err = db.Migrate()
	} else {
		err = db.CheckMigrations()
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("database schema out of date: %w", err)
	}

	clock := tracking.RealClock{}
	req := NewRequest(operation, tracking.UUIDGenerator{}, clock)

	logger, logFile, err := newLogger(cfg.LogDir, req.ID, level)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	a := newApp(cfg, db, clock, logger, req)
	a.logFile = logFile
	return a, nil
}

// newApp wires the per-request handlers around an open database.
func newApp(cfg *config.Config, db *database.SQLiteDatabase, clock tracking.Clock, logger *slog.Logger, req *Request) *App {
	perms := permission.NewHandler(db)
	logger.Debug("request started", "operation", req.Operation)
	return &App{
		cfg:     cfg,
		db:      db,
		clock:   clock,
		logger:  logger,
		perms:   perms,
		tracker: tracking.NewHandler(db, perms, clock, &slogAdapter{l: logger}),
		req:     req,
	}
}

// MigrateDatabase applies pending schema migrations to the configured database.
func MigrateDatabase(cfg *config.Config) error {
	db, err := database.NewDatabaseFromConfig(cfg.Database, cfg.SiteID)
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	return nil
}

// RequestID returns the ID attached to this invocation's log lines.
func (a *App) RequestID() string {
	return a.req.ID
}

// actor resolves a username to the acting user. An empty or unknown
// username is the anonymous user.
func (a *App) actor(username string) (*model.User, error) {
	if username == "" {
		return model.Anonymous(), nil
	}
	u, err := a.db.FindUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("resolving user: %w", err)
	}
	if u == nil {
		a.logger.Warn("unknown user, acting as anonymous", "username", username)
		return model.Anonymous(), nil
	}
	return u, nil
}

// mustUser resolves a username that has to exist.
func (a *App) mustUser(username string) (*model.User, error) {
	u, err := a.db.FindUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("resolving user: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("user %q: %w", username, tracking.ErrNotFound)
	}
	return u, nil
}

func (a *App) forum(id string) (*model.Forum, error) {
	f, err := a.db.FindForumByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("forum %s: %w", id, tracking.ErrNotFound)
	}
	return f, nil
}

// AddUser creates a forum account.
func (a *App) AddUser(username string) (*model.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("username must not be empty")
	}
	existing, err := a.db.FindUserByUsername(username)
	if err != nil {
		return nil, a.req.Fail(err)
	}
	if existing != nil {
		return nil, a.req.Fail(fmt.Errorf("user %q already exists", username))
	}

	u, err := a.db.CreateUser(username)
	if err != nil {
		return nil, a.req.Fail(err)
	}
	a.logger.Info("user added", "user", u.ID, "username", username)
	return u, nil
}

// AddGroup creates a permission group.
func (a *App) AddGroup(name string) (*model.Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("group name must not be empty")
	}
	g, err := a.db.CreateGroup(name)
	if err != nil {
		return nil, a.req.Fail(err)
	}
	a.logger.Info("group added", "group", g.ID, "name", name)
	return g, nil
}

// JoinGroup adds the named user to the named group.
func (a *App) JoinGroup(username, groupName string) error {
	u, err := a.mustUser(username)
	if err != nil {
		return a.req.Fail(err)
	}
	g, err := a.db.FindGroupByName(groupName)
	if err != nil {
		return a.req.Fail(err)
	}
	if g == nil {
		return a.req.Fail(fmt.Errorf("group %q: %w", groupName, tracking.ErrNotFound))
	}
	if err := a.db.AddUserToGroup(u.ID, g.ID); err != nil {
		return a.req.Fail(err)
	}
	a.logger.Info("user joined group", "user", u.ID, "group", g.ID)
	return nil
}

// AddForum creates a forum node. parentID is empty for a top-level forum.
// Link forums cannot have children and categories must be top level.
func (a *App) AddForum(parentID, name, forumType string, position int64) (*model.Forum, error) {
	ft := model.ForumType(forumType)
	if !ft.Valid() {
		return nil, a.req.Fail(fmt.Errorf("unknown forum type %q (want category, forum or link)", forumType))
	}
	if parentID != "" {
		parent, err := a.forum(parentID)
		if err != nil {
			return nil, a.req.Fail(err)
		}
		if parent.Type == model.ForumTypeLink {
			return nil, a.req.Fail(fmt.Errorf("link forum %s cannot have children", parentID))
		}
		if ft == model.ForumTypeCategory {
			return nil, a.req.Fail(fmt.Errorf("a category must be a top-level forum"))
		}
	}

	f, err := a.db.CreateForum(parentID, name, ft, position)
	if err != nil {
		return nil, a.req.Fail(err)
	}
	a.logger.Info("forum added", "forum", f.ID, "type", forumType)
	return f, nil
}

// ListForums returns every forum in display order.
func (a *App) ListForums() ([]*model.Forum, error) {
	forums, err := a.db.FindForums()
	return forums, a.req.Fail(err)
}

// AddTopic opens a topic in a forum on behalf of username.
// Categories and link forums cannot hold topics.
func (a *App) AddTopic(username, forumID, subject string, approved bool) (*model.Topic, error) {
	u, err := a.mustUser(username)
	if err != nil {
		return nil, a.req.Fail(err)
	}
	f, err := a.forum(forumID)
	if err != nil {
		return nil, a.req.Fail(err)
	}
	if f.Type != model.ForumTypeForum {
		return nil, a.req.Fail(fmt.Errorf("%s %s cannot hold topics", f.Type, forumID))
	}

	t, err := a.db.CreateTopic(f.ID, u.ID, subject, approved)
	if err != nil {
		return nil, a.req.Fail(err)
	}
	a.logger.Info("topic added", "topic", t.ID, "forum", f.ID, "approved", approved)
	return t, nil
}

// AddPost replies to a topic on behalf of username.
func (a *App) AddPost(username, topicID, content string) (*model.Post, error) {
	u, err := a.mustUser(username)
	if err != nil {
		return nil, a.req.Fail(err)
	}
	p, err := a.db.CreatePost(topicID, u.ID, content)
	if err != nil {
		return nil, a.req.Fail(err)
	}
	a.logger.Info("post added", "post", p.ID, "topic", topicID)
	return p, nil
}

// Grant stores a can_read_forum grant. forumID is empty for a global grant.
// grantee is "anonymous", "user:<username>" or "group:<name>".
func (a *App) Grant(forumID, grantee string, granted bool) (*model.ForumPermission, error) {
	p := &model.ForumPermission{
		ForumID:  forumID,
		Codename: permission.CanReadForum,
		Granted:  granted,
	}

	if forumID != "" {
		if _, err := a.forum(forumID); err != nil {
			return nil, a.req.Fail(err)
		}
	}

	kind, name, _ := strings.Cut(grantee, ":")
	switch kind {
	case "anonymous":
		p.Anonymous = true
	case "user":
		u, err := a.mustUser(name)
		if err != nil {
			return nil, a.req.Fail(err)
		}
		p.UserID = u.ID
	case "group":
		g, err := a.db.FindGroupByName(name)
		if err != nil {
			return nil, a.req.Fail(err)
		}
		if g == nil {
			return nil, a.req.Fail(fmt.Errorf("group %q: %w", name, tracking.ErrNotFound))
		}
		p.GroupID = g.ID
	default:
		return nil, a.req.Fail(fmt.Errorf("invalid grantee %q (want anonymous, user:<name> or group:<name>)", grantee))
	}

	stored, err := a.db.GrantForumPermission(p)
	if err != nil {
		return nil, a.req.Fail(err)
	}
	a.logger.Info("permission granted", "forum", forumID, "grantee", grantee, "granted", granted)
	return stored, nil
}

// UnreadForums returns the forums with unread content for username. With no
// forumIDs every forum is a candidate.
func (a *App) UnreadForums(username string, forumIDs []string) ([]*model.Forum, error) {
	user, err := a.actor(username)
	if err != nil {
		return nil, a.req.Fail(err)
	}

	var candidates []*model.Forum
	if len(forumIDs) == 0 {
		candidates, err = a.db.FindForums()
		if err != nil {
			return nil, a.req.Fail(err)
		}
	} else {
		for _, id := range forumIDs {
			f, err := a.forum(id)
			if err != nil {
				return nil, a.req.Fail(err)
			}
			candidates = append(candidates, f)
		}
	}

	forums, err := a.tracker.GetUnreadForums(candidates, user)
	return forums, a.req.Fail(err)
}

// UnreadTopics returns the unread topics of a forum for username. A forum the
// user cannot read has no unread topics.
func (a *App) UnreadTopics(username, forumID string) ([]*model.Topic, error) {
	user, err := a.actor(username)
	if err != nil {
		return nil, a.req.Fail(err)
	}
	f, err := a.forum(forumID)
	if err != nil {
		return nil, a.req.Fail(err)
	}

	ok, err := a.perms.CanRead(user, f)
	if err != nil {
		return nil, a.req.Fail(err)
	}
	if !ok {
		return nil, nil
	}

	topics, err := a.db.FindTopicsByForumIDs([]string{f.ID})
	if err != nil {
		return nil, a.req.Fail(err)
	}
	unread, err := a.tracker.GetUnreadTopics(topics, user)
	return unread, a.req.Fail(err)
}

// MarkForum marks a forum and everything below it as read for username.
func (a *App) MarkForum(username, forumID string) error {
	user, err := a.actor(username)
	if err != nil {
		return a.req.Fail(err)
	}
	f, err := a.db.FindForumByID(forumID)
	if err != nil {
		return a.req.Fail(err)
	}
	if f == nil {
		f = &model.Forum{ID: forumID}
	}
	return a.req.Fail(a.tracker.MarkForumTreeAsRead(f, user))
}

// MarkTopic marks a single topic as read for username.
func (a *App) MarkTopic(username, topicID string) error {
	user, err := a.actor(username)
	if err != nil {
		return a.req.Fail(err)
	}
	return a.req.Fail(a.tracker.MarkTopicAsRead(&model.Topic{ID: topicID}, user))
}

// MarkAll marks every readable forum as read for username.
func (a *App) MarkAll(username string) error {
	user, err := a.actor(username)
	if err != nil {
		return a.req.Fail(err)
	}
	return a.req.Fail(a.tracker.MarkAllAsRead(user))
}

// ClearTracks forgets username's read history.
func (a *App) ClearTracks(username string) error {
	user, err := a.actor(username)
	if err != nil {
		return a.req.Fail(err)
	}
	return a.req.Fail(a.tracker.ClearTracks(user))
}

// Close logs the request outcome and closes all resources.
func (a *App) Close() error {
	a.logger.Debug("request finished",
		"operation", a.req.Operation,
		"status", a.req.Status,
		"elapsed", a.req.Elapsed(a.clock.Now()))

	var errs []error
	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing database: %w", err))
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing log file: %w", err))
		}
	}
	return errors.Join(errs...)
}
