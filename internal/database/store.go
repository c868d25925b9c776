package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	collUsers         = "users"
	collManagers      = "managers"
	collAnnouncements = "announcements"
	collServerConfig  = "server_config"
	collPosts         = "posts"
	collPendingPosts  = "pending_posts"
)

// Store defines the interface for database operations. Methods accept
// context.Context for cancellation and timeouts. Lookups for records that do
// not exist return nil, nil rather than an error.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveUser inserts or updates a user record. JoinedAt is set only on
	// first insert.
	SaveUser(ctx context.Context, user *User) error

	// GetUser retrieves a user by Telegram ID.
	GetUser(ctx context.Context, userID int64) (*User, error)

	// GetActiveUsers retrieves all active users.
	GetActiveUsers(ctx context.Context) ([]User, error)

	// CountActiveUsers returns the number of active users.
	CountActiveUsers(ctx context.Context) (int64, error)

	// SaveManager inserts or updates a manager record.
	SaveManager(ctx context.Context, manager *Manager) error

	// GetManager retrieves a manager by Telegram ID.
	GetManager(ctx context.Context, userID int64) (*Manager, error)

	// GetAllManagers retrieves all managers, most recently added first.
	GetAllManagers(ctx context.Context) ([]Manager, error)

	// RemoveManager deletes a manager record.
	RemoveManager(ctx context.Context, userID int64) error

	// AuthenticateManager checks the password and marks the manager
	// authenticated on success.
	AuthenticateManager(ctx context.Context, userID int64, password string) (bool, error)

	// IsManagerAuthenticated reports whether the manager has an active login.
	IsManagerAuthenticated(ctx context.Context, userID int64) (bool, error)

	// LogoutManager clears the manager's authenticated flag.
	LogoutManager(ctx context.Context, userID int64) error

	// UpdateManagerPassword replaces the manager's password.
	UpdateManagerPassword(ctx context.Context, userID int64, password string) error

	// SaveAnnouncement records a broadcast announcement.
	SaveAnnouncement(ctx context.Context, announcement *Announcement) error

	// GetRecentAnnouncements retrieves the most recent announcements.
	GetRecentAnnouncements(ctx context.Context, limit int64) ([]Announcement, error)

	// GetServerConfig retrieves the configuration for a server, creating and
	// persisting a default document on first access.
	GetServerConfig(ctx context.Context, serverID int) (*ServerConfig, error)

	// GetAllServerConfigs retrieves configurations for servers 1..count.
	GetAllServerConfigs(ctx context.Context, count int) ([]*ServerConfig, error)

	// UpdateServerFooter sets the server's footer text.
	UpdateServerFooter(ctx context.Context, serverID int, footer string) error

	// UpdateServerButton sets one of the server's two buttons.
	UpdateServerButton(ctx context.Context, serverID, buttonNum int, text, url string) error

	// UpdateServerTimeGap sets the server's minimum post gap in minutes.
	UpdateServerTimeGap(ctx context.Context, serverID, minutes int) error

	// SetServerPostingEnabled toggles the server's posting permission.
	SetServerPostingEnabled(ctx context.Context, serverID int, enabled bool) error

	// IsServerPostingEnabled reports the server's posting permission.
	IsServerPostingEnabled(ctx context.Context, serverID int) (bool, error)

	// SavePost records a published post.
	SavePost(ctx context.Context, post *Post) error

	// GetLastPost retrieves the most recent published post for a server.
	GetLastPost(ctx context.Context, serverID int) (*Post, error)

	// CanPostNow reports whether the server's minimum gap has elapsed since
	// its last post, and the whole minutes remaining when it has not.
	CanPostNow(ctx context.Context, serverID int, now time.Time) (bool, int, error)

	// CountPosts counts published posts. Zero-valued filters match all.
	CountPosts(ctx context.Context, serverID int, userID int64) (int64, error)

	// SavePendingPost stores a post scheduled for later publication.
	SavePendingPost(ctx context.Context, post *PendingPost) (primitive.ObjectID, error)

	// CheckTimeConflict checks a proposed schedule time against the server's
	// pending posts and last published post under the minimum-gap rule. On
	// conflict it returns false and the next available time.
	CheckTimeConflict(ctx context.Context, serverID int, proposed time.Time) (bool, time.Time, error)

	// GetPendingPostsReady retrieves pending posts due at or before now,
	// oldest scheduled first.
	GetPendingPostsReady(ctx context.Context, now time.Time) ([]*PendingPost, error)

	// GetPendingPostsByServer retrieves a server's pending posts ordered by
	// scheduled time.
	GetPendingPostsByServer(ctx context.Context, serverID int) ([]*PendingPost, error)

	// GetPendingPost retrieves a pending post by ID.
	GetPendingPost(ctx context.Context, id primitive.ObjectID) (*PendingPost, error)

	// CountPendingPosts counts pending posts. Zero-valued filters match all.
	CountPendingPosts(ctx context.Context, serverID int, userID int64) (int64, error)

	// MarkPendingPostSent marks a pending post as published.
	MarkPendingPostSent(ctx context.Context, id primitive.ObjectID) error

	// DeletePendingPost removes a pending post.
	DeletePendingPost(ctx context.Context, id primitive.ObjectID) error
}

// mongoStore provides an implementation of the Store interface backed by the
// official MongoDB driver.
type mongoStore struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by MongoDB.
// It requires a connected client's database handle and a logger.
func NewStore(db *mongo.Database, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &mongoStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

// --- Users ---

func (s *mongoStore) SaveUser(ctx context.Context, user *User) error {
	if user == nil {
		return fmt.Errorf("cannot save nil user")
	}
	if user.UserID == 0 {
		return fmt.Errorf("user must have a non-zero user_id")
	}

	update := bson.M{
		"$set": bson.M{
			"user_id":    user.UserID,
			"username":   user.Username,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"is_active":  true,
		},
		"$setOnInsert": bson.M{"joined_at": time.Now().UTC()},
	}

	_, err := s.db.Collection(collUsers).UpdateOne(ctx,
		bson.M{"user_id": user.UserID}, update, options.Update().SetUpsert(true))
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving user", "user_id", user.UserID, "error", err)
		return fmt.Errorf("failed to save user %d: %w", user.UserID, err)
	}

	s.logger.DebugContext(ctx, "User saved successfully", "user_id", user.UserID)
	return nil
}

func (s *mongoStore) GetUser(ctx context.Context, userID int64) (*User, error) {
	var user User
	err := s.db.Collection(collUsers).FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return &user, nil
}

func (s *mongoStore) GetActiveUsers(ctx context.Context) ([]User, error) {
	cursor, err := s.db.Collection(collUsers).Find(ctx, bson.M{"is_active": true})
	if err != nil {
		s.logger.ErrorContext(ctx, "Error getting active users", "error", err)
		return nil, fmt.Errorf("failed to get active users: %w", err)
	}

	var users []User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode active users: %w", err)
	}

	s.logger.DebugContext(ctx, "Fetched active users", "count", len(users))
	return users, nil
}

func (s *mongoStore) CountActiveUsers(ctx context.Context) (int64, error) {
	count, err := s.db.Collection(collUsers).CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}
	return count, nil
}

// --- Managers ---

func (s *mongoStore) SaveManager(ctx context.Context, manager *Manager) error {
	if manager == nil {
		return fmt.Errorf("cannot save nil manager")
	}
	if manager.UserID == 0 {
		return fmt.Errorf("manager must have a non-zero user_id")
	}

	update := bson.M{
		"$set": bson.M{
			"user_id":          manager.UserID,
			"username":         manager.Username,
			"password":         manager.Password,
			"is_authenticated": false,
			"added_at":         time.Now().UTC(),
		},
	}

	_, err := s.db.Collection(collManagers).UpdateOne(ctx,
		bson.M{"user_id": manager.UserID}, update, options.Update().SetUpsert(true))
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving manager", "user_id", manager.UserID, "error", err)
		return fmt.Errorf("failed to save manager %d: %w", manager.UserID, err)
	}

	s.logger.DebugContext(ctx, "Manager saved successfully", "user_id", manager.UserID)
	return nil
}

func (s *mongoStore) GetManager(ctx context.Context, userID int64) (*Manager, error) {
	var manager Manager
	err := s.db.Collection(collManagers).FindOne(ctx, bson.M{"user_id": userID}).Decode(&manager)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting manager", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get manager %d: %w", userID, err)
	}
	return &manager, nil
}

func (s *mongoStore) GetAllManagers(ctx context.Context) ([]Manager, error) {
	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: -1}})
	cursor, err := s.db.Collection(collManagers).Find(ctx, bson.M{}, opts)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error getting managers", "error", err)
		return nil, fmt.Errorf("failed to get managers: %w", err)
	}

	var managers []Manager
	if err := cursor.All(ctx, &managers); err != nil {
		return nil, fmt.Errorf("failed to decode managers: %w", err)
	}
	return managers, nil
}

func (s *mongoStore) RemoveManager(ctx context.Context, userID int64) error {
	_, err := s.db.Collection(collManagers).DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		s.logger.ErrorContext(ctx, "Error removing manager", "user_id", userID, "error", err)
		return fmt.Errorf("failed to remove manager %d: %w", userID, err)
	}
	s.logger.InfoContext(ctx, "Manager removed", "user_id", userID)
	return nil
}

func (s *mongoStore) AuthenticateManager(ctx context.Context, userID int64, password string) (bool, error) {
	manager, err := s.GetManager(ctx, userID)
	if err != nil {
		return false, err
	}
	if manager == nil || manager.Password != password {
		s.logger.DebugContext(ctx, "Manager authentication failed", "user_id", userID)
		return false, nil
	}

	_, err = s.db.Collection(collManagers).UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"is_authenticated": true}})
	if err != nil {
		return false, fmt.Errorf("failed to mark manager %d authenticated: %w", userID, err)
	}

	s.logger.InfoContext(ctx, "Manager authenticated", "user_id", userID)
	return true, nil
}

func (s *mongoStore) IsManagerAuthenticated(ctx context.Context, userID int64) (bool, error) {
	manager, err := s.GetManager(ctx, userID)
	if err != nil {
		return false, err
	}
	return manager != nil && manager.IsAuthenticated, nil
}

func (s *mongoStore) LogoutManager(ctx context.Context, userID int64) error {
	_, err := s.db.Collection(collManagers).UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"is_authenticated": false}})
	if err != nil {
		return fmt.Errorf("failed to log out manager %d: %w", userID, err)
	}
	s.logger.InfoContext(ctx, "Manager logged out", "user_id", userID)
	return nil
}

func (s *mongoStore) UpdateManagerPassword(ctx context.Context, userID int64, password string) error {
	_, err := s.db.Collection(collManagers).UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"password": password}})
	if err != nil {
		return fmt.Errorf("failed to update password for manager %d: %w", userID, err)
	}
	s.logger.InfoContext(ctx, "Manager password updated", "user_id", userID)
	return nil
}

// --- Announcements ---

func (s *mongoStore) SaveAnnouncement(ctx context.Context, announcement *Announcement) error {
	if announcement == nil {
		return fmt.Errorf("cannot save nil announcement")
	}
	announcement.CreatedAt = time.Now().UTC()

	result, err := s.db.Collection(collAnnouncements).InsertOne(ctx, announcement)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving announcement", "created_by", announcement.CreatedBy, "error", err)
		return fmt.Errorf("failed to save announcement: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		announcement.ID = id
	}
	return nil
}

func (s *mongoStore) GetRecentAnnouncements(ctx context.Context, limit int64) ([]Announcement, error) {
	if limit <= 0 {
		limit = 10
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := s.db.Collection(collAnnouncements).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get announcements: %w", err)
	}

	var announcements []Announcement
	if err := cursor.All(ctx, &announcements); err != nil {
		return nil, fmt.Errorf("failed to decode announcements: %w", err)
	}
	return announcements, nil
}

// --- Server configuration ---

func (s *mongoStore) GetServerConfig(ctx context.Context, serverID int) (*ServerConfig, error) {
	if serverID <= 0 {
		return nil, fmt.Errorf("server_id must be positive")
	}

	var cfg ServerConfig
	err := s.db.Collection(collServerConfig).FindOne(ctx, bson.M{"server_id": serverID}).Decode(&cfg)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		cfg = ServerConfig{
			ServerID:       serverID,
			ServerName:     fmt.Sprintf("Server %d", serverID),
			MinTimeGap:     defaultMinTimeGap,
			Enabled:        true,
			PostingEnabled: true,
		}
		result, insErr := s.db.Collection(collServerConfig).InsertOne(ctx, &cfg)
		if insErr != nil {
			return nil, fmt.Errorf("failed to create default config for server %d: %w", serverID, insErr)
		}
		if id, ok := result.InsertedID.(primitive.ObjectID); ok {
			cfg.ID = id
		}
		s.logger.InfoContext(ctx, "Created default server config", "server_id", serverID)
		return &cfg, nil

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting server config", "server_id", serverID, "error", err)
		return nil, fmt.Errorf("failed to get config for server %d: %w", serverID, err)
	}

	return &cfg, nil
}

func (s *mongoStore) GetAllServerConfigs(ctx context.Context, count int) ([]*ServerConfig, error) {
	configs := make([]*ServerConfig, 0, count)
	for serverID := 1; serverID <= count; serverID++ {
		cfg, err := s.GetServerConfig(ctx, serverID)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func (s *mongoStore) updateServerConfig(ctx context.Context, serverID int, fields bson.M) error {
	_, err := s.db.Collection(collServerConfig).UpdateOne(ctx,
		bson.M{"server_id": serverID},
		bson.M{"$set": fields},
		options.Update().SetUpsert(true))
	if err != nil {
		s.logger.ErrorContext(ctx, "Error updating server config", "server_id", serverID, "error", err)
		return fmt.Errorf("failed to update config for server %d: %w", serverID, err)
	}
	return nil
}

func (s *mongoStore) UpdateServerFooter(ctx context.Context, serverID int, footer string) error {
	return s.updateServerConfig(ctx, serverID, bson.M{"footer_text": footer})
}

func (s *mongoStore) UpdateServerButton(ctx context.Context, serverID, buttonNum int, text, url string) error {
	if buttonNum != 1 && buttonNum != 2 {
		return fmt.Errorf("button number must be 1 or 2, got %d", buttonNum)
	}
	return s.updateServerConfig(ctx, serverID, bson.M{
		fmt.Sprintf("button%d_text", buttonNum): text,
		fmt.Sprintf("button%d_url", buttonNum):  url,
	})
}

func (s *mongoStore) UpdateServerTimeGap(ctx context.Context, serverID, minutes int) error {
	if minutes < 0 {
		return fmt.Errorf("time gap must not be negative")
	}
	return s.updateServerConfig(ctx, serverID, bson.M{"min_time_gap": minutes})
}

func (s *mongoStore) SetServerPostingEnabled(ctx context.Context, serverID int, enabled bool) error {
	return s.updateServerConfig(ctx, serverID, bson.M{"posting_enabled": enabled})
}

func (s *mongoStore) IsServerPostingEnabled(ctx context.Context, serverID int) (bool, error) {
	cfg, err := s.GetServerConfig(ctx, serverID)
	if err != nil {
		return false, err
	}
	return cfg.PostingEnabled, nil
}

// --- Posts ---

func (s *mongoStore) SavePost(ctx context.Context, post *Post) error {
	if post == nil {
		return fmt.Errorf("cannot save nil post")
	}
	if post.ServerID <= 0 {
		return fmt.Errorf("post must have a positive server_id")
	}
	if post.PostedAt.IsZero() {
		post.PostedAt = time.Now().UTC()
	}

	result, err := s.db.Collection(collPosts).InsertOne(ctx, post)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving post",
			"server_id", post.ServerID, "user_id", post.UserID, "error", err)
		return fmt.Errorf("failed to save post for server %d: %w", post.ServerID, err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		post.ID = id
	}

	s.logger.DebugContext(ctx, "Post saved successfully",
		"server_id", post.ServerID, "user_id", post.UserID, "channel_message_id", post.ChannelMessageID)
	return nil
}

func (s *mongoStore) GetLastPost(ctx context.Context, serverID int) (*Post, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "posted_at", Value: -1}})

	var post Post
	err := s.db.Collection(collPosts).FindOne(ctx, bson.M{"server_id": serverID}, opts).Decode(&post)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting last post", "server_id", serverID, "error", err)
		return nil, fmt.Errorf("failed to get last post for server %d: %w", serverID, err)
	}
	return &post, nil
}

func (s *mongoStore) CanPostNow(ctx context.Context, serverID int, now time.Time) (bool, int, error) {
	cfg, err := s.GetServerConfig(ctx, serverID)
	if err != nil {
		return false, 0, err
	}

	last, err := s.GetLastPost(ctx, serverID)
	if err != nil {
		return false, 0, err
	}
	if last == nil {
		return true, 0, nil
	}

	ok, remaining := RemainingWait(last.PostedAt, cfg.MinTimeGap, now)
	return ok, remaining, nil
}

func (s *mongoStore) CountPosts(ctx context.Context, serverID int, userID int64) (int64, error) {
	filter := bson.M{}
	if serverID > 0 {
		filter["server_id"] = serverID
	}
	if userID != 0 {
		filter["user_id"] = userID
	}
	count, err := s.db.Collection(collPosts).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// --- Pending posts ---

func (s *mongoStore) SavePendingPost(ctx context.Context, post *PendingPost) (primitive.ObjectID, error) {
	if post == nil {
		return primitive.NilObjectID, fmt.Errorf("cannot save nil pending post")
	}
	if post.ServerID <= 0 {
		return primitive.NilObjectID, fmt.Errorf("pending post must have a positive server_id")
	}
	if post.ScheduledTime.IsZero() {
		return primitive.NilObjectID, fmt.Errorf("pending post must have a scheduled time")
	}

	post.CreatedAt = time.Now().UTC()
	post.Status = PendingStatusPending

	result, err := s.db.Collection(collPendingPosts).InsertOne(ctx, post)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving pending post",
			"server_id", post.ServerID, "user_id", post.UserID, "error", err)
		return primitive.NilObjectID, fmt.Errorf("failed to save pending post for server %d: %w", post.ServerID, err)
	}

	id, _ := result.InsertedID.(primitive.ObjectID)
	post.ID = id

	s.logger.InfoContext(ctx, "Pending post scheduled",
		"pending_id", id.Hex(), "server_id", post.ServerID,
		"user_id", post.UserID, "scheduled_time", post.ScheduledTime)
	return id, nil
}

func (s *mongoStore) CheckTimeConflict(ctx context.Context, serverID int, proposed time.Time) (bool, time.Time, error) {
	cfg, err := s.GetServerConfig(ctx, serverID)
	if err != nil {
		return false, time.Time{}, err
	}

	pending, err := s.GetPendingPostsByServer(ctx, serverID)
	if err != nil {
		return false, time.Time{}, err
	}

	existing := make([]time.Time, 0, len(pending)+1)
	for _, p := range pending {
		existing = append(existing, p.ScheduledTime)
	}
	if next, conflict := FindConflict(proposed, cfg.MinTimeGap, existing); conflict {
		return false, next, nil
	}

	last, err := s.GetLastPost(ctx, serverID)
	if err != nil {
		return false, time.Time{}, err
	}
	if last != nil {
		if next, conflict := FindConflict(proposed, cfg.MinTimeGap, []time.Time{last.PostedAt}); conflict {
			return false, next, nil
		}
	}

	return true, time.Time{}, nil
}

func (s *mongoStore) GetPendingPostsReady(ctx context.Context, now time.Time) ([]*PendingPost, error) {
	filter := bson.M{
		"status":         PendingStatusPending,
		"scheduled_time": bson.M{"$lte": now},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_time", Value: 1}})

	cursor, err := s.db.Collection(collPendingPosts).Find(ctx, filter, opts)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error getting ready pending posts", "error", err)
		return nil, fmt.Errorf("failed to get ready pending posts: %w", err)
	}

	var posts []*PendingPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode pending posts: %w", err)
	}
	return posts, nil
}

func (s *mongoStore) GetPendingPostsByServer(ctx context.Context, serverID int) ([]*PendingPost, error) {
	filter := bson.M{
		"server_id": serverID,
		"status":    PendingStatusPending,
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_time", Value: 1}})

	cursor, err := s.db.Collection(collPendingPosts).Find(ctx, filter, opts)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error getting pending posts", "server_id", serverID, "error", err)
		return nil, fmt.Errorf("failed to get pending posts for server %d: %w", serverID, err)
	}

	var posts []*PendingPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode pending posts: %w", err)
	}
	return posts, nil
}

func (s *mongoStore) GetPendingPost(ctx context.Context, id primitive.ObjectID) (*PendingPost, error) {
	var post PendingPost
	err := s.db.Collection(collPendingPosts).FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("failed to get pending post %s: %w", id.Hex(), err)
	}
	return &post, nil
}

func (s *mongoStore) CountPendingPosts(ctx context.Context, serverID int, userID int64) (int64, error) {
	filter := bson.M{"status": PendingStatusPending}
	if serverID > 0 {
		filter["server_id"] = serverID
	}
	if userID != 0 {
		filter["user_id"] = userID
	}
	count, err := s.db.Collection(collPendingPosts).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending posts: %w", err)
	}
	return count, nil
}

func (s *mongoStore) MarkPendingPostSent(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.db.Collection(collPendingPosts).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":  PendingStatusSent,
			"sent_at": time.Now().UTC(),
		}})
	if err != nil {
		s.logger.ErrorContext(ctx, "Error marking pending post sent", "pending_id", id.Hex(), "error", err)
		return fmt.Errorf("failed to mark pending post %s sent: %w", id.Hex(), err)
	}
	return nil
}

func (s *mongoStore) DeletePendingPost(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.db.Collection(collPendingPosts).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting pending post", "pending_id", id.Hex(), "error", err)
		return fmt.Errorf("failed to delete pending post %s: %w", id.Hex(), err)
	}
	s.logger.InfoContext(ctx, "Pending post deleted", "pending_id", id.Hex())
	return nil
}

// defaultMinTimeGap matches config.DefaultMinTimeGap; kept local so the
// package has no config dependency.
const defaultMinTimeGap = 30
