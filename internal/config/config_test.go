package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123456:test-token")
	t.Setenv("ADMIN_ID", "1000")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
}

func TestLoad(t *testing.T) {
	t.Run("loads required config from env with defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load("nonexistent.yaml")
		require.NoError(t, err)
		require.Equal(t, "123456:test-token", cfg.BotToken)
		require.Equal(t, int64(1000), cfg.AdminID)
		require.Equal(t, DefaultDatabaseName, cfg.DatabaseName)
		require.Equal(t, DefaultTimezone, cfg.Timezone)
		require.Equal(t, DefaultServerNames, cfg.ServerNames)
		require.Equal(t, DefaultLogLevel, cfg.Logger.Level)
		require.NotNil(t, cfg.Location)
	})

	t.Run("parses manager IDs and passwords", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("MANAGER_IDS", "2001, 2002 ,2003")
		t.Setenv("MANAGER_PASSWORDS", "pass1, pass2 ,pass3")

		cfg, err := Load("nonexistent.yaml")
		require.NoError(t, err)
		require.Equal(t, []int64{2001, 2002, 2003}, cfg.ManagerIDs)
		require.Equal(t, []string{"pass1", "pass2", "pass3"}, cfg.ManagerPasswords)
	})

	t.Run("parses channel IDs keeping usernames verbatim", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CHANNEL_IDS", "-1001234567890, mychannel,")

		cfg, err := Load("nonexistent.yaml")
		require.NoError(t, err)
		require.Equal(t, []string{"-1001234567890", "mychannel"}, cfg.ChannelIDs)
	})

	t.Run("rejects non-numeric manager IDs", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("MANAGER_IDS", "2001,invalid")

		_, err := Load("nonexistent.yaml")
		require.Error(t, err)
		require.Contains(t, err.Error(), "MANAGER_IDS")
	})

	t.Run("rejects unknown timezone", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("TIMEZONE", "Mars/Olympus_Mons")

		_, err := Load("nonexistent.yaml")
		require.Error(t, err)
		require.Contains(t, err.Error(), "timezone")
	})

	t.Run("fails validation without bot token", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "")
		t.Setenv("ADMIN_ID", "1000")
		t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

		_, err := Load("nonexistent.yaml")
		require.Error(t, err)
	})

	t.Run("reads overrides from config file", func(t *testing.T) {
		setRequiredEnv(t)

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "server_names:\n  - Alpha\n  - Beta\nlogger:\n  level: debug\n  json: false\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, []string{"Alpha", "Beta"}, cfg.ServerNames)
		require.Equal(t, "debug", cfg.Logger.Level)
		require.False(t, cfg.Logger.JSON)
	})

	t.Run("scheduler defaults enable the pending post task", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load("nonexistent.yaml")
		require.NoError(t, err)
		task, ok := cfg.Scheduler.Tasks[TaskPendingPosts]
		require.True(t, ok)
		require.True(t, task.Enabled)
		require.Equal(t, time.Minute, task.Interval)
	})
}

func TestConfigHelpers(t *testing.T) {
	cfg := &Config{
		AdminID:          1000,
		ManagerIDs:       []int64{2001, 2002},
		ManagerPasswords: []string{"first"},
		ServerNames:      []string{"Alpha", "Beta"},
	}

	t.Run("server name lookup", func(t *testing.T) {
		require.Equal(t, 2, cfg.ServerCount())
		require.Equal(t, "Alpha", cfg.ServerName(1))
		require.Equal(t, "Beta", cfg.ServerName(2))
		require.Equal(t, "Server 3", cfg.ServerName(3))
		require.Equal(t, "Server 0", cfg.ServerName(0))
	})

	t.Run("authorization covers admin and managers", func(t *testing.T) {
		require.True(t, cfg.IsAuthorized(1000))
		require.True(t, cfg.IsAuthorized(2001))
		require.False(t, cfg.IsAuthorized(3000))
		require.True(t, cfg.IsManager(2002))
		require.False(t, cfg.IsManager(1000))
	})

	t.Run("manager passwords fall back to default", func(t *testing.T) {
		require.Equal(t, "first", cfg.ManagerPassword(0))
		require.Equal(t, defaultManagerPassword, cfg.ManagerPassword(1))
		require.Equal(t, defaultManagerPassword, cfg.ManagerPassword(-1))
	})
}
