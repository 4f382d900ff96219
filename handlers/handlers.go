package handlers

import (
	"log"

	"levelbot/bot"

	"github.com/bwmarrin/discordgo"
)

func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"xp": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleXP(s, i, b)
		},
		"leaderboard": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleLeaderboard(s, i, b)
		},
		"exclude": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleExclude(s, i, b)
		},
		"clearxp": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleClearXP(s, i, b)
		},
		"botstats": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleBotStats(s, i, b)
		},
	}
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		HandleMessage(s, m, b)
	})
}
