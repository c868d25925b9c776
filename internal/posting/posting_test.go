package posting

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redteam-region722/TG-bot/internal/database"
)

func TestResolveChannel(t *testing.T) {
	t.Parallel()

	channels := []string{"-1001234567890", "mychannel", "@named", "", "  "}

	testCases := []struct {
		name     string
		serverID int
		expected any
		ok       bool
	}{
		{"numeric ID becomes int64", 1, int64(-1001234567890), true},
		{"bare username gains @ prefix", 2, "@mychannel", true},
		{"prefixed username passes through", 3, "@named", true},
		{"empty entry", 4, nil, false},
		{"blank entry", 5, nil, false},
		{"server beyond list", 6, nil, false},
		{"zero server ID", 0, nil, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ResolveChannel(channels, tc.serverID)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestComposeContent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", ComposeContent("hello", ""))
	assert.Equal(t, "hello", ComposeContent("hello", "   "))
	assert.Equal(t, "hello\n\nJoin us!", ComposeContent("hello", "Join us!"))
}

func TestBuildButtons(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, BuildButtons(nil))
	})

	t.Run("no buttons configured", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, BuildButtons(&database.ServerConfig{}))
	})

	t.Run("button without URL is skipped", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, BuildButtons(&database.ServerConfig{Button1Text: "Join"}))
	})

	t.Run("one button per row", func(t *testing.T) {
		t.Parallel()

		markup := BuildButtons(&database.ServerConfig{
			Button1Text: "Join", Button1URL: "https://example.com/join",
			Button2Text: "Rules", Button2URL: "https://example.com/rules",
		})
		require.NotNil(t, markup)
		require.Len(t, markup.InlineKeyboard, 2)
		assert.Equal(t, "Join", markup.InlineKeyboard[0][0].Text)
		assert.Equal(t, "https://example.com/rules", markup.InlineKeyboard[1][0].URL)
	})

	t.Run("second button alone still renders", func(t *testing.T) {
		t.Parallel()

		markup := BuildButtons(&database.ServerConfig{
			Button2Text: "Rules", Button2URL: "https://example.com/rules",
		})
		require.NotNil(t, markup)
		require.Len(t, markup.InlineKeyboard, 1)
		assert.Equal(t, "Rules", markup.InlineKeyboard[0][0].Text)
	})
}

func TestPreview(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", Preview("short", 10))
	assert.Equal(t, "exactly10!", Preview("exactly10!", 10))
	assert.Equal(t, "truncated ...", Preview("truncated here", 10))

	// Counts characters, not bytes: multi-byte text must stay valid UTF-8.
	rockets := strings.Repeat("🚀", 10)
	got := Preview(rockets, 7)
	assert.Equal(t, strings.Repeat("🚀", 7)+"...", got)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, rockets, Preview(rockets, 10))

	got = Preview("привет мир", 6)
	assert.Equal(t, "привет...", got)
	assert.True(t, utf8.ValidString(got))
}

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	assert.False(t, IsInvalidURLErr(nil))
	assert.False(t, IsChatNotFoundErr(nil))

	assert.True(t, IsInvalidURLErr(errors.New("Bad Request: inline keyboard button URL 'x' is invalid URL")))
	assert.True(t, IsInvalidURLErr(errors.New("Bad Request: wrong HTTP URL")))
	assert.False(t, IsInvalidURLErr(errors.New("Bad Request: chat not found")))

	assert.True(t, IsChatNotFoundErr(errors.New("Bad Request: chat not found")))
	assert.False(t, IsChatNotFoundErr(errors.New("Bad Request: message is too long")))
}

// fakeSender records send calls and returns scripted results.
type fakeSender struct {
	messageParams []*bot.SendMessageParams
	photoParams   []*bot.SendPhotoParams
	errs          []error
	calls         int
}

func (f *fakeSender) next() (*models.Message, error) {
	call := f.calls
	f.calls++
	if call < len(f.errs) && f.errs[call] != nil {
		return nil, f.errs[call]
	}
	return &models.Message{ID: 100 + call}, nil
}

func (f *fakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.messageParams = append(f.messageParams, params)
	return f.next()
}

func (f *fakeSender) SendPhoto(_ context.Context, params *bot.SendPhotoParams) (*models.Message, error) {
	f.photoParams = append(f.photoParams, params)
	return f.next()
}

// fakeStore overrides the store methods the publisher touches; the embedded
// interface panics on anything else.
type fakeStore struct {
	database.Store
	cfg   *database.ServerConfig
	saved []*database.Post
}

func (f *fakeStore) GetServerConfig(_ context.Context, serverID int) (*database.ServerConfig, error) {
	if f.cfg != nil {
		return f.cfg, nil
	}
	return &database.ServerConfig{ServerID: serverID, MinTimeGap: 30, Enabled: true, PostingEnabled: true}, nil
}

func (f *fakeStore) SavePost(_ context.Context, post *database.Post) error {
	f.saved = append(f.saved, post)
	return nil
}

func newTestPublisher(sender *fakeSender, store *fakeStore) *Publisher {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPublisher(sender, store, []string{"-1001234567890", "second"}, log)
}

func TestPublisherPublish(t *testing.T) {
	t.Parallel()

	t.Run("text post with footer is sent and recorded", func(t *testing.T) {
		t.Parallel()

		sender := &fakeSender{}
		store := &fakeStore{cfg: &database.ServerConfig{ServerID: 1, FooterText: "Join us!"}}
		pub := newTestPublisher(sender, store)

		msg, err := pub.Publish(context.Background(), 1, 2001, "hello", "")
		require.NoError(t, err)
		require.NotNil(t, msg)

		require.Len(t, sender.messageParams, 1)
		assert.Equal(t, int64(-1001234567890), sender.messageParams[0].ChatID)
		assert.Equal(t, "hello\n\nJoin us!", sender.messageParams[0].Text)

		require.Len(t, store.saved, 1)
		assert.Equal(t, 1, store.saved[0].ServerID)
		assert.Equal(t, int64(2001), store.saved[0].UserID)
		assert.Equal(t, "hello", store.saved[0].MessageText)
		assert.Equal(t, msg.ID, store.saved[0].ChannelMessageID)
	})

	t.Run("photo post carries text as caption", func(t *testing.T) {
		t.Parallel()

		sender := &fakeSender{}
		store := &fakeStore{}
		pub := newTestPublisher(sender, store)

		_, err := pub.Publish(context.Background(), 1, 2001, "caption", "photo-file-id")
		require.NoError(t, err)

		require.Len(t, sender.photoParams, 1)
		assert.Empty(t, sender.messageParams)
		assert.Equal(t, "caption", sender.photoParams[0].Caption)

		require.Len(t, store.saved, 1)
		assert.Equal(t, "photo-file-id", store.saved[0].PhotoID)
	})

	t.Run("invalid button URL retries without buttons", func(t *testing.T) {
		t.Parallel()

		sender := &fakeSender{errs: []error{errors.New("Bad Request: wrong HTTP URL")}}
		store := &fakeStore{cfg: &database.ServerConfig{
			ServerID: 1, Button1Text: "Join", Button1URL: "https://bad.example",
		}}
		pub := newTestPublisher(sender, store)

		_, err := pub.Publish(context.Background(), 1, 2001, "hello", "")
		require.NoError(t, err)

		require.Len(t, sender.messageParams, 2)
		assert.NotNil(t, sender.messageParams[0].ReplyMarkup)
		assert.Nil(t, sender.messageParams[1].ReplyMarkup)
		require.Len(t, store.saved, 1)
	})

	t.Run("chat not found maps to sentinel error", func(t *testing.T) {
		t.Parallel()

		sender := &fakeSender{errs: []error{errors.New("Bad Request: chat not found")}}
		pub := newTestPublisher(sender, &fakeStore{})

		_, err := pub.Publish(context.Background(), 1, 2001, "hello", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrChannelNotFound))
	})

	t.Run("unconfigured server fails fast", func(t *testing.T) {
		t.Parallel()

		sender := &fakeSender{}
		pub := newTestPublisher(sender, &fakeStore{})

		_, err := pub.Publish(context.Background(), 9, 2001, "hello", "")
		require.Error(t, err)
		assert.Zero(t, sender.calls)
	})
}
