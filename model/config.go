package model

import "time"

// GameConfig holds the xp policy and presentation tunables loaded from
// data/game_config.yaml.
type GameConfig struct {
	Cooldown        time.Duration
	Reengagement    time.Duration
	BaseAward       int64
	BonusAward      int64
	LeaderboardSize int
	StorageTimeout  time.Duration

	// LevelUpMessageTTL is how long a level-up announcement stays before the
	// bot deletes it. Zero keeps it forever.
	LevelUpMessageTTL time.Duration

	// Channels where level-up announcements are suppressed. Messages there
	// still earn xp.
	IgnoreCategoryIDs  []string
	IgnoreChannelIDs   []string
	IgnoreChannelNames []string
}

// Config stores the application configuration.
type Config struct {
	BotToken     string
	GuildID      string
	DatabasePath string
	ExcludePath  string

	Game GameConfig
}
