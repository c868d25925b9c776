package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redteam-region722/TG-bot/internal/bot/session"
	"github.com/redteam-region722/TG-bot/internal/config"
	"github.com/redteam-region722/TG-bot/internal/database"
	"github.com/redteam-region722/TG-bot/internal/posting"
)

// apiStub answers every Bot API request with an empty success payload so
// handlers can exercise a real bot client without network access.
type apiStub struct{}

func (apiStub) Do(req *http.Request) (*http.Response, error) {
	body := `{"ok":true,"result":{}}`
	if strings.Contains(req.URL.Path, "answerCallbackQuery") ||
		strings.Contains(req.URL.Path, "deleteMessage") {
		body = `{"ok":true,"result":true}`
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}, nil
}

func newTestBot(t *testing.T) *tgbot.Bot {
	t.Helper()

	b, err := tgbot.New("12345:offline-token",
		tgbot.WithSkipGetMe(),
		tgbot.WithHTTPClient(time.Minute, apiStub{}))
	require.NoError(t, err)
	return b
}

// channelStub stands in for the Telegram client behind the Publisher.
type channelStub struct {
	err   error
	calls int
}

func (s *channelStub) SendMessage(_ context.Context, _ *tgbot.SendMessageParams) (*models.Message, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &models.Message{ID: 100 + s.calls}, nil
}

func (s *channelStub) SendPhoto(_ context.Context, _ *tgbot.SendPhotoParams) (*models.Message, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &models.Message{ID: 100 + s.calls}, nil
}

// confirmStore serves the store calls the confirmation flow makes.
type confirmStore struct {
	database.Store
	saved []*database.Post
}

func (s *confirmStore) IsServerPostingEnabled(_ context.Context, _ int) (bool, error) {
	return true, nil
}

func (s *confirmStore) GetServerConfig(_ context.Context, serverID int) (*database.ServerConfig, error) {
	return &database.ServerConfig{ServerID: serverID, PostingEnabled: true}, nil
}

func (s *confirmStore) SavePost(_ context.Context, post *database.Post) error {
	s.saved = append(s.saved, post)
	return nil
}

func TestConfirmPostCallback(t *testing.T) {
	t.Parallel()

	const managerID int64 = 777

	newDeps := func(sender *channelStub) (HandlerDeps, *confirmStore) {
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		store := &confirmStore{}
		cfg := &config.Config{
			AdminID:     1,
			ManagerIDs:  []int64{managerID},
			ServerNames: []string{"Alpha", "Beta"},
			ChannelIDs:  []string{"-1001234567890", "-1009876543210"},
		}
		return HandlerDeps{
			Logger:    log,
			Config:    cfg,
			Store:     store,
			Publisher: posting.NewPublisher(sender, store, cfg.ChannelIDs, log),
			Sessions:  session.NewManager(),
		}, store
	}

	confirmUpdate := &models.Update{
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb-1",
			From: models.User{ID: managerID},
			Data: "confirm_post_1",
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{ID: 5, Chat: models.Chat{ID: managerID}},
			},
		},
	}

	t.Run("failed publish keeps the session", func(t *testing.T) {
		t.Parallel()

		sender := &channelStub{err: errors.New("Bad Request: chat not found")}
		deps, store := newDeps(sender)
		deps.Sessions.Set(managerID, session.State{
			Step:         session.StepConfirmingPost,
			PostServerID: 1,
			Immediate:    true,
			TextContent:  "maintenance tonight",
		})

		NewCallbackHandler(deps)(context.Background(), newTestBot(t), confirmUpdate)

		// A failed publish must leave the flow resumable and record nothing.
		assert.Equal(t, session.StepConfirmingPost, deps.Sessions.Get(managerID).Step)
		assert.Empty(t, store.saved)
	})

	t.Run("successful publish clears the session", func(t *testing.T) {
		t.Parallel()

		sender := &channelStub{}
		deps, store := newDeps(sender)
		deps.Sessions.Set(managerID, session.State{
			Step:         session.StepConfirmingPost,
			PostServerID: 1,
			Immediate:    true,
			TextContent:  "maintenance tonight",
		})

		NewCallbackHandler(deps)(context.Background(), newTestBot(t), confirmUpdate)

		assert.Equal(t, session.State{}, deps.Sessions.Get(managerID))
		require.Len(t, store.saved, 1)
		assert.Equal(t, 1, store.saved[0].ServerID)
		assert.Equal(t, managerID, store.saved[0].UserID)
		assert.Equal(t, 1, sender.calls)
	})
}
