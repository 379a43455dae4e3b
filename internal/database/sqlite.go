package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"forumtrack/internal/database/migrations"
	"forumtrack/internal/database/sqlc"
	"forumtrack/internal/model"
	"forumtrack/internal/permission"
	"forumtrack/internal/tracking"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// maxQueryIDs caps the IDs bound into one IN list. SQLite rejects statements
// with more than 32766 variables.
var maxQueryIDs = 5000

// SQLiteDatabase implements tracking.Store and permission.GrantStore on SQLite,
// plus the administrative writes used to populate a forum.
type SQLiteDatabase struct {
	db      *sql.DB
	queries *sqlc.Queries
	path    string
	clock   tracking.Clock
	idgen   tracking.IDGenerator
}

// NewSQLiteDatabase opens a SQLite database at path (a file path or ":memory:").
// A nil clock or idgen falls back to the real clock and random UUIDs.
func NewSQLiteDatabase(path string, clock tracking.Clock, idgen tracking.IDGenerator) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	s := NewSQLiteDatabaseFromDB(db, clock, idgen)
	s.path = path
	return s, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB, clock tracking.Clock, idgen tracking.IDGenerator) *SQLiteDatabase {
	if clock == nil {
		clock = tracking.RealClock{}
	}
	if idgen == nil {
		idgen = tracking.UUIDGenerator{}
	}
	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
		clock:   clock,
		idgen:   idgen,
	}
}

// OpenConnection opens and configures a SQLite database connection.
// Foreign keys and a busy timeout are set on every pooled connection through
// the DSN. An in-memory database is limited to one connection, since each
// new connection to ":memory:" would see an empty database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// User and group operations

func (s *SQLiteDatabase) CreateUser(username string) (*model.User, error) {
	u, err := s.queries.InsertUser(context.Background(), sqlc.InsertUserParams{
		ID:        s.idgen.New(),
		Username:  username,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating user %s: %w", username, err)
	}
	return toUser(u), nil
}

func (s *SQLiteDatabase) FindUserByUsername(username string) (*model.User, error) {
	u, err := s.queries.GetUserByUsername(context.Background(), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding user by username: %w", err)
	}
	return toUser(u), nil
}

func (s *SQLiteDatabase) CreateGroup(name string) (*model.Group, error) {
	g, err := s.queries.InsertGroup(context.Background(), sqlc.InsertGroupParams{
		ID:   s.idgen.New(),
		Name: name,
	})
	if err != nil {
		return nil, fmt.Errorf("creating group %s: %w", name, err)
	}
	return &model.Group{ID: g.ID, Name: g.Name}, nil
}

func (s *SQLiteDatabase) FindGroupByName(name string) (*model.Group, error) {
	g, err := s.queries.GetGroupByName(context.Background(), name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding group by name: %w", err)
	}
	return &model.Group{ID: g.ID, Name: g.Name}, nil
}

// AddUserToGroup is a no-op when the user already belongs to the group.
func (s *SQLiteDatabase) AddUserToGroup(userID, groupID string) error {
	err := s.queries.InsertGroupMember(context.Background(), sqlc.InsertGroupMemberParams{
		UserID:  userID,
		GroupID: groupID,
	})
	if err != nil {
		return fmt.Errorf("adding user to group: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) FindGroupIDsForUser(userID string) ([]string, error) {
	ids, err := s.queries.GetGroupIDsByUserID(context.Background(), userID)
	if err != nil {
		return nil, fmt.Errorf("finding groups for user: %w", err)
	}
	return ids, nil
}

// Forum, topic and post operations

func (s *SQLiteDatabase) CreateForum(parentID, name string, forumType model.ForumType, position int64) (*model.Forum, error) {
	if !forumType.Valid() {
		return nil, fmt.Errorf("unknown forum type: %q", forumType)
	}

	f, err := s.queries.InsertForum(context.Background(), sqlc.InsertForumParams{
		ID:        s.idgen.New(),
		ParentID:  nullString(parentID),
		Name:      name,
		Type:      string(forumType),
		Position:  position,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating forum %s: %w", name, err)
	}
	return toForum(f), nil
}

func (s *SQLiteDatabase) FindForums() ([]*model.Forum, error) {
	forums, err := s.queries.GetForums(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing forums: %w", err)
	}

	result := make([]*model.Forum, len(forums))
	for i := range forums {
		result[i] = toForum(forums[i])
	}
	return result, nil
}

func (s *SQLiteDatabase) FindForumByID(id string) (*model.Forum, error) {
	f, err := s.queries.GetForumByID(context.Background(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding forum by id: %w", err)
	}
	return toForum(f), nil
}

// CreateTopic opens a topic in a forum. Link forums cannot hold topics.
func (s *SQLiteDatabase) CreateTopic(forumID, posterID, subject string, approved bool) (*model.Topic, error) {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	forum, err := qtx.GetForumByID(ctx, forumID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("forum %s does not exist", forumID)
		}
		return nil, fmt.Errorf("finding forum: %w", err)
	}
	if model.ForumType(forum.Type) == model.ForumTypeLink {
		return nil, fmt.Errorf("link forum %s cannot hold topics", forumID)
	}

	now := s.clock.Now()
	t, err := qtx.InsertTopic(ctx, sqlc.InsertTopicParams{
		ID:        s.idgen.New(),
		ForumID:   forumID,
		PosterID:  nullString(posterID),
		Subject:   subject,
		Approved:  approved,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("inserting topic: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return toTopic(t), nil
}

func (s *SQLiteDatabase) FindTopicByID(id string) (*model.Topic, error) {
	t, err := s.queries.GetTopicByID(context.Background(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding topic by id: %w", err)
	}
	return toTopic(t), nil
}

func (s *SQLiteDatabase) FindTopicsByForumIDs(forumIDs []string) ([]*model.Topic, error) {
	if len(forumIDs) == 0 {
		return nil, nil
	}

	var result []*model.Topic
	for chunk := range slices.Chunk(forumIDs, maxQueryIDs) {
		topics, err := s.queries.GetTopicsByForumIDs(context.Background(), chunk)
		if err != nil {
			return nil, fmt.Errorf("finding topics by forum: %w", err)
		}
		for i := range topics {
			result = append(result, toTopic(topics[i]))
		}
	}

	// Chunks are each ordered; restore the query's order across them.
	slices.SortStableFunc(result, func(a, b *model.Topic) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}

// CreatePost adds a post to a topic and moves the topic's update time to the
// post's creation time, atomically.
func (s *SQLiteDatabase) CreatePost(topicID, posterID, content string) (*model.Post, error) {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	if _, err := qtx.GetTopicByID(ctx, topicID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("topic %s does not exist", topicID)
		}
		return nil, fmt.Errorf("finding topic: %w", err)
	}

	now := s.clock.Now()
	p, err := qtx.InsertPost(ctx, sqlc.InsertPostParams{
		ID:        s.idgen.New(),
		TopicID:   topicID,
		PosterID:  nullString(posterID),
		Content:   content,
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("inserting post: %w", err)
	}

	err = qtx.UpdateTopicUpdatedAt(ctx, sqlc.UpdateTopicUpdatedAtParams{
		UpdatedAt: now,
		ID:        topicID,
	})
	if err != nil {
		return nil, fmt.Errorf("updating topic: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return &model.Post{
		ID:        p.ID,
		TopicID:   p.TopicID,
		PosterID:  p.PosterID.String,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}, nil
}

// Read track operations

func (s *SQLiteDatabase) GetForumTrack(userID, forumID string) (*model.ForumReadTrack, error) {
	tr, err := s.queries.GetForumReadTrack(context.Background(), sqlc.GetForumReadTrackParams{
		UserID:  userID,
		ForumID: forumID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("getting forum track: %w", err)
	}
	return &model.ForumReadTrack{UserID: tr.UserID, ForumID: tr.ForumID, MarkTime: tr.MarkTime}, nil
}

func (s *SQLiteDatabase) GetTopicTrack(userID, topicID string) (*model.TopicReadTrack, error) {
	tr, err := s.queries.GetTopicReadTrack(context.Background(), sqlc.GetTopicReadTrackParams{
		UserID:  userID,
		TopicID: topicID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("getting topic track: %w", err)
	}
	return &model.TopicReadTrack{UserID: tr.UserID, TopicID: tr.TopicID, MarkTime: tr.MarkTime}, nil
}

func (s *SQLiteDatabase) FindForumTracksForUser(userID string) ([]*model.ForumReadTrack, error) {
	tracks, err := s.queries.GetForumReadTracksByUserID(context.Background(), userID)
	if err != nil {
		return nil, fmt.Errorf("finding forum tracks: %w", err)
	}

	result := make([]*model.ForumReadTrack, len(tracks))
	for i, tr := range tracks {
		result[i] = &model.ForumReadTrack{UserID: tr.UserID, ForumID: tr.ForumID, MarkTime: tr.MarkTime}
	}
	return result, nil
}

func (s *SQLiteDatabase) FindTopicTracksForUser(userID string, topicIDs []string) ([]*model.TopicReadTrack, error) {
	if len(topicIDs) == 0 {
		return nil, nil
	}

	var result []*model.TopicReadTrack
	for chunk := range slices.Chunk(topicIDs, maxQueryIDs) {
		tracks, err := s.queries.GetTopicReadTracksByUserAndTopicIDs(context.Background(), sqlc.GetTopicReadTracksByUserAndTopicIDsParams{
			UserID:   userID,
			TopicIds: chunk,
		})
		if err != nil {
			return nil, fmt.Errorf("querying topic tracks: %w", err)
		}
		for _, tr := range tracks {
			result = append(result, &model.TopicReadTrack{UserID: tr.UserID, TopicID: tr.TopicID, MarkTime: tr.MarkTime})
		}
	}
	return result, nil
}

func (s *SQLiteDatabase) UpsertForumTrack(userID, forumID string, markTime time.Time) error {
	err := s.queries.UpsertForumReadTrack(context.Background(), sqlc.UpsertForumReadTrackParams{
		UserID:   userID,
		ForumID:  forumID,
		MarkTime: markTime,
	})
	if err != nil {
		return fmt.Errorf("upserting forum track: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) UpsertTopicTrack(userID, topicID string, markTime time.Time) error {
	err := s.queries.UpsertTopicReadTrack(context.Background(), sqlc.UpsertTopicReadTrackParams{
		UserID:   userID,
		TopicID:  topicID,
		MarkTime: markTime,
	})
	if err != nil {
		return fmt.Errorf("upserting topic track: %w", err)
	}
	return nil
}

// MarkForumsRead upserts the forum tracks and drops the topic tracks they
// supersede in a single transaction.
func (s *SQLiteDatabase) MarkForumsRead(userID string, forumIDs []string, markTime time.Time) error {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	for _, forumID := range forumIDs {
		err := qtx.UpsertForumReadTrack(ctx, sqlc.UpsertForumReadTrackParams{
			UserID:   userID,
			ForumID:  forumID,
			MarkTime: markTime,
		})
		if err != nil {
			return fmt.Errorf("upserting forum track %s: %w", forumID, err)
		}

		err = qtx.DeleteTopicReadTracksByUserAndForumID(ctx, sqlc.DeleteTopicReadTracksByUserAndForumIDParams{
			UserID:  userID,
			ForumID: forumID,
		})
		if err != nil {
			return fmt.Errorf("deleting topic tracks in forum %s: %w", forumID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) DeleteTracksForUser(userID string) error {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	if err := qtx.DeleteTopicReadTracksByUserID(ctx, userID); err != nil {
		return fmt.Errorf("deleting topic tracks: %w", err)
	}
	if err := qtx.DeleteForumReadTracksByUserID(ctx, userID); err != nil {
		return fmt.Errorf("deleting forum tracks: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// CountForumTracks returns how many tracks exist for the (user, forum) pair.
// The UNIQUE constraint keeps this at most one.
func (s *SQLiteDatabase) CountForumTracks(userID, forumID string) (int64, error) {
	n, err := s.queries.CountForumReadTracks(context.Background(), sqlc.CountForumReadTracksParams{
		UserID:  userID,
		ForumID: forumID,
	})
	if err != nil {
		return 0, fmt.Errorf("counting forum tracks: %w", err)
	}
	return n, nil
}

// Permission operations

// GrantForumPermission replaces any existing grant for the same forum,
// grantee and codename.
func (s *SQLiteDatabase) GrantForumPermission(p *model.ForumPermission) (*model.ForumPermission, error) {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	err = qtx.DeleteForumPermission(ctx, sqlc.DeleteForumPermissionParams{
		ForumID:   nullString(p.ForumID),
		UserID:    nullString(p.UserID),
		GroupID:   nullString(p.GroupID),
		Anonymous: p.Anonymous,
		Codename:  p.Codename,
	})
	if err != nil {
		return nil, fmt.Errorf("replacing forum permission: %w", err)
	}

	row, err := qtx.InsertForumPermission(ctx, sqlc.InsertForumPermissionParams{
		ID:        s.idgen.New(),
		ForumID:   nullString(p.ForumID),
		UserID:    nullString(p.UserID),
		GroupID:   nullString(p.GroupID),
		Anonymous: p.Anonymous,
		Codename:  p.Codename,
		Granted:   p.Granted,
	})
	if err != nil {
		return nil, fmt.Errorf("inserting forum permission: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return toPermission(row), nil
}

func (s *SQLiteDatabase) FindForumPermissions(forumID, codename string) ([]*model.ForumPermission, error) {
	rows, err := s.queries.GetForumPermissionsByCodename(context.Background(), sqlc.GetForumPermissionsByCodenameParams{
		Codename: codename,
		ForumID:  nullString(forumID),
	})
	if err != nil {
		return nil, fmt.Errorf("finding forum permissions: %w", err)
	}

	result := make([]*model.ForumPermission, len(rows))
	for i := range rows {
		result[i] = toPermission(rows[i])
	}
	return result, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Migrate applies any pending schema migrations.
func (s *SQLiteDatabase) Migrate() error {
	return migrations.MigrateUp(s.db)
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toUser(u sqlc.User) *model.User {
	return &model.User{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}

func toForum(f sqlc.Forum) *model.Forum {
	return &model.Forum{
		ID:        f.ID,
		ParentID:  f.ParentID.String,
		Name:      f.Name,
		Type:      model.ForumType(f.Type),
		Position:  f.Position,
		CreatedAt: f.CreatedAt,
	}
}

func toTopic(t sqlc.Topic) *model.Topic {
	return &model.Topic{
		ID:        t.ID,
		ForumID:   t.ForumID,
		PosterID:  t.PosterID.String,
		Subject:   t.Subject,
		Approved:  t.Approved,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toPermission(p sqlc.ForumPermission) *model.ForumPermission {
	return &model.ForumPermission{
		ID:        p.ID,
		ForumID:   p.ForumID.String,
		UserID:    p.UserID.String,
		GroupID:   p.GroupID.String,
		Anonymous: p.Anonymous,
		Codename:  p.Codename,
		Granted:   p.Granted,
	}
}

// Compile-time checks that SQLiteDatabase satisfies the consumer interfaces.
var (
	_ tracking.Store        = (*SQLiteDatabase)(nil)
	_ tracking.TrackStore   = (*SQLiteDatabase)(nil)
	_ permission.GrantStore = (*SQLiteDatabase)(nil)
)
