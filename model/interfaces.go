package model

import (
	"time"

	"levelbot/game"

	"github.com/bwmarrin/discordgo"
)

// Bot provides an interface for bot functionality to avoid circular dependencies.
type Bot interface {
	GetConfig() *Config
	GetSession() *discordgo.Session
	GetEngine() *game.Engine
	StartedAt() time.Time
}
