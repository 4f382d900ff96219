package commands

import "github.com/bwmarrin/discordgo"

// Generate returns the slash commands the bot registers on the tracked guild.
func Generate() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "xp",
			Description: "Shows user level and xp.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to view xp for.",
					Required:    false,
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Shows the leaderboard.",
		},
		{
			Name:        "exclude",
			Description: "Exclude yourself from the game, or opt back in.",
		},
		{
			Name:        "clearxp",
			Description: "Clears all your xp data.",
		},
		{
			Name:        "botstats",
			Description: "Shows bot and host diagnostics.",
		},
	}
}
