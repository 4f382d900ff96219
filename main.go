package main

import (
	"log"
	"os"
	"path/filepath"

	"levelbot/bot"
	"levelbot/config"
	"levelbot/game"
	"levelbot/handlers"
	"levelbot/utils/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	for _, path := range []string{cfg.DatabasePath, cfg.ExcludePath} {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				log.Fatalf("Failed to create data directory %s: %v", dir, err)
			}
		}
	}

	store, err := database.NewXPStore(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Error initializing xp database: %v", err)
	}
	defer store.Close()

	exclude := game.LoadExclude(cfg.ExcludePath)
	engine := game.NewEngine(store, exclude, game.Settings{
		Cooldown:        cfg.Game.Cooldown,
		Reengagement:    cfg.Game.Reengagement,
		BaseAward:       cfg.Game.BaseAward,
		BonusAward:      cfg.Game.BonusAward,
		LeaderboardSize: cfg.Game.LeaderboardSize,
		StorageTimeout:  cfg.Game.StorageTimeout,
	})

	b, err := bot.New(cfg, engine)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}
	defer b.Close()

	handlers.Register(b)

	b.Run()
}
