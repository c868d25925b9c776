package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for optional configuration parameters.
const (
	DefaultDatabaseName = "management"
	DefaultTimezone     = "Asia/Kolkata"
	DefaultSecretKey    = "secret"

	DefaultLogLevel = "info"

	// DefaultPendingPostInterval is how often the pending post publisher
	// scans for due posts.
	DefaultPendingPostInterval = time.Minute

	// DefaultMinTimeGap is the minimum gap between posts on a server, in
	// minutes, used when a server has no stored configuration yet.
	DefaultMinTimeGap = 30

	defaultManagerPassword = "password"
)

// TaskPendingPosts is the registry key for the pending post publisher task.
const TaskPendingPosts = "pending_posts"

// DefaultServerNames lists the servers managed by a fresh deployment.
var DefaultServerNames = []string{"Server 1", "Server 2", "Server 3"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database_name", DefaultDatabaseName)
	v.SetDefault("secret_key", DefaultSecretKey)
	v.SetDefault("timezone", DefaultTimezone)
	v.SetDefault("server_names", DefaultServerNames)

	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", true)

	v.SetDefault("scheduler.tasks."+TaskPendingPosts+".enabled", true)
	v.SetDefault("scheduler.tasks."+TaskPendingPosts+".interval", DefaultPendingPostInterval)
}
