package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"levelbot/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads the configuration from environment variables and the optional
// game settings file.
func Load() (*model.Config, error) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable not set")
	}

	guildID := os.Getenv("GUILD_ID")
	if guildID == "" {
		return nil, fmt.Errorf("GUILD_ID environment variable not set")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/persist.db"
	}

	excludePath := os.Getenv("EXCLUDE_PATH")
	if excludePath == "" {
		excludePath = "data/excluded_users.txt"
	}

	game, err := loadGameConfig()
	if err != nil {
		return nil, err
	}

	return &model.Config{
		BotToken:     token,
		GuildID:      guildID,
		DatabasePath: dbPath,
		ExcludePath:  excludePath,
		Game:         game,
	}, nil
}

// loadGameConfig reads data/game_config.yaml. Every setting has a default,
// so a missing file just means the stock policy.
func loadGameConfig() (model.GameConfig, error) {
	v := viper.New()
	v.SetConfigName("game_config")
	v.SetConfigType("yaml")
	v.AddConfigPath("data")

	v.SetDefault("cooldown", "5m")
	v.SetDefault("reengagement_window", "6h")
	v.SetDefault("base_award", 1)
	v.SetDefault("bonus_award", 4)
	v.SetDefault("leaderboard_size", 10)
	v.SetDefault("storage_timeout", "5s")
	v.SetDefault("levelup_message_ttl", "100s")
	v.SetDefault("ignore_category_ids", []string{})
	v.SetDefault("ignore_channel_ids", []string{})
	v.SetDefault("ignore_channel_names", []string{})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Info: data/game_config.yaml not found, using default game settings")
		} else {
			return model.GameConfig{}, fmt.Errorf("failed to read game config: %w", err)
		}
	}

	cfg := model.GameConfig{
		Cooldown:           v.GetDuration("cooldown"),
		Reengagement:       v.GetDuration("reengagement_window"),
		BaseAward:          v.GetInt64("base_award"),
		BonusAward:         v.GetInt64("bonus_award"),
		LeaderboardSize:    v.GetInt("leaderboard_size"),
		StorageTimeout:     v.GetDuration("storage_timeout"),
		LevelUpMessageTTL:  v.GetDuration("levelup_message_ttl"),
		IgnoreCategoryIDs:  v.GetStringSlice("ignore_category_ids"),
		IgnoreChannelIDs:   v.GetStringSlice("ignore_channel_ids"),
		IgnoreChannelNames: v.GetStringSlice("ignore_channel_names"),
	}

	if cfg.Cooldown <= 0 || cfg.Reengagement <= cfg.Cooldown {
		return model.GameConfig{}, fmt.Errorf("invalid game config: reengagement_window (%s) must exceed cooldown (%s)",
			cfg.Reengagement, cfg.Cooldown)
	}
	if cfg.BaseAward < 1 || cfg.BonusAward < cfg.BaseAward {
		return model.GameConfig{}, fmt.Errorf("invalid game config: awards must satisfy 1 <= base_award <= bonus_award")
	}
	if cfg.LeaderboardSize < 1 {
		return model.GameConfig{}, fmt.Errorf("invalid game config: leaderboard_size must be at least 1")
	}

	return cfg, nil
}
