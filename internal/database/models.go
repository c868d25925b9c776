package database

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pending post statuses.
const (
	PendingStatusPending = "pending"
	PendingStatusSent    = "sent"
)

// User represents a Telegram user who has interacted with the bot.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    int64              `bson:"user_id"`
	Username  string             `bson:"username,omitempty"`
	FirstName string             `bson:"first_name,omitempty"`
	LastName  string             `bson:"last_name,omitempty"`
	IsActive  bool               `bson:"is_active"`
	JoinedAt  time.Time          `bson:"joined_at,omitempty"`
}

// Manager represents a posting manager and their authentication state.
// Passwords are stored as provided; authentication state survives restarts.
type Manager struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          int64              `bson:"user_id"`
	Username        string             `bson:"username,omitempty"`
	Password        string             `bson:"password"`
	IsAuthenticated bool               `bson:"is_authenticated"`
	AddedAt         time.Time          `bson:"added_at"`
}

// Announcement is a broadcast message sent to all active users.
type Announcement struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	CreatedBy int64              `bson:"created_by"`
	CreatedAt time.Time          `bson:"created_at"`
}

// ServerConfig holds the per-server posting configuration: footer text
// appended to every post, up to two URL buttons, and the minimum gap
// enforced between posts.
type ServerConfig struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ServerID       int                `bson:"server_id"`
	ServerName     string             `bson:"server_name"`
	FooterText     string             `bson:"footer_text"`
	Button1Text    string             `bson:"button1_text"`
	Button1URL     string             `bson:"button1_url"`
	Button2Text    string             `bson:"button2_text"`
	Button2URL     string             `bson:"button2_url"`
	MinTimeGap     int                `bson:"min_time_gap"` // minutes
	Enabled        bool               `bson:"enabled"`
	PostingEnabled bool               `bson:"posting_enabled"`
}

// Post records a message published to a server's channel.
type Post struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	ServerID         int                `bson:"server_id"`
	UserID           int64              `bson:"user_id"`
	MessageText      string             `bson:"message_text"`
	PhotoID          string             `bson:"photo_id,omitempty"`
	ChannelMessageID int                `bson:"channel_message_id,omitempty"`
	PostedAt         time.Time          `bson:"posted_at"`
}

// PendingPost is a post scheduled for future publication.
type PendingPost struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ServerID      int                `bson:"server_id"`
	UserID        int64              `bson:"user_id"`
	MessageText   string             `bson:"message_text"`
	PhotoID       string             `bson:"photo_id,omitempty"`
	Caption       string             `bson:"caption,omitempty"`
	ScheduledTime time.Time          `bson:"scheduled_time"`
	CreatedAt     time.Time          `bson:"created_at"`
	Status        string             `bson:"status"`
	SentAt        *time.Time         `bson:"sent_at,omitempty"`
}

// HasPhoto reports whether the pending post carries a photo.
func (p *PendingPost) HasPhoto() bool {
	return p.PhotoID != ""
}
