package bot

import (
	"log"
	"sync/atomic"
	"time"

	"levelbot/game"
	"levelbot/model"

	"github.com/bwmarrin/discordgo"
)

type Bot struct {
	Session            *discordgo.Session
	RegisteredCommands []*discordgo.ApplicationCommand
	Engine             *game.Engine
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	CooldownTicker     *time.Ticker
	config             atomic.Value // *model.Config
	startedAt          time.Time
	done               chan struct{}
}

func (b *Bot) GetConfig() *model.Config {
	return b.config.Load().(*model.Config)
}

func (b *Bot) GetSession() *discordgo.Session {
	return b.Session
}

func (b *Bot) GetEngine() *game.Engine {
	return b.Engine
}

func (b *Bot) StartedAt() time.Time {
	return b.startedAt
}

func New(cfg *model.Config, engine *game.Engine) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	b := &Bot{
		Session:   dg,
		Engine:    engine,
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}
	b.config.Store(cfg)
	return b, nil
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	close(b.done) // Signal all goroutines to stop

	if b.CooldownTicker != nil {
		b.CooldownTicker.Stop()
	}
	b.Session.Close()
}

// StartCooldownCleanup prunes stale cooldown-table entries in the background
// until Close is called.
func (b *Bot) StartCooldownCleanup(interval time.Duration) {
	b.CooldownTicker = time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-b.done:
				return
			case now := <-b.CooldownTicker.C:
				b.Engine.CleanupCooldowns(now)
			}
		}
	}()
}
