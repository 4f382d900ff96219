package handlers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"levelbot/model"
	"levelbot/utils"

	"github.com/bwmarrin/discordgo"
)

const genericErrorMessage = "An error occurred while retrieving the xp."

var medals = []string{"🥇", "🥈", "🥉"}

// HandleXP shows a user's level and xp. Without an option it reports on the
// caller.
func HandleXP(s *discordgo.Session, i *discordgo.InteractionCreate, b model.Bot) {
	target := i.Member.User
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}
	if target == nil {
		utils.SendErrorResponse(s, i, genericErrorMessage)
		return
	}
	if target.Bot {
		utils.SendSimpleResponse(s, i, "That's a bot.")
		return
	}

	userID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		log.Printf("Unparseable user id %q: %v", target.ID, err)
		utils.SendErrorResponse(s, i, genericErrorMessage)
		return
	}

	// An excluded user can still look up their own xp; only third-party
	// queries get the opt-out notice.
	engine := b.GetEngine()
	if engine.IsExcluded(userID) && target.ID != i.Member.User.ID {
		utils.SendPublicResponse(s, i, fmt.Sprintf("%s opted out of the game.", userDisplayName(target)))
		return
	}

	status, err := engine.Status(context.Background(), userID)
	if err != nil {
		log.Printf("Error reading xp status for user %d: %v", userID, err)
		utils.SendErrorResponse(s, i, genericErrorMessage)
		return
	}

	utils.SendPublicResponse(s, i, fmt.Sprintf("<@%d> is level %d (%d xp). Get %d more xp to get level %d.",
		userID, status.Level, status.XP, status.ToNext, status.Level+1))
}

// HandleLeaderboard renders the visible leaderboard, medals for the top
// three and numbered ranks below.
func HandleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate, b model.Bot) {
	entries, err := b.GetEngine().Leaderboard(context.Background(), b.GetConfig().Game.LeaderboardSize)
	if err != nil {
		log.Printf("Error building leaderboard: %v", err)
		utils.SendErrorResponse(s, i, genericErrorMessage)
		return
	}
	if len(entries) == 0 {
		utils.SendPublicResponse(s, i, "No users found!")
		return
	}

	var sb strings.Builder
	for _, e := range entries {
		if e.Rank <= len(medals) {
			fmt.Fprintf(&sb, "%s <@%d>: %d\n", medals[e.Rank-1], e.UserID, e.Level)
		} else {
			fmt.Fprintf(&sb, "**#%d** <@%d>: %d\n", e.Rank, e.UserID, e.Level)
		}
	}
	utils.SendPublicResponse(s, i, strings.TrimRight(sb.String(), "\n"))
}

// HandleExclude toggles the caller's opt-out state. The confirmation is only
// sent after the new state has been persisted.
func HandleExclude(s *discordgo.Session, i *discordgo.InteractionCreate, b model.Bot) {
	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Printf("Unparseable user id %q: %v", i.Member.User.ID, err)
		utils.SendErrorResponse(s, i, genericErrorMessage)
		return
	}

	excluded, err := b.GetEngine().ExcludeToggle(userID)
	if err != nil {
		log.Printf("Error persisting exclusion toggle for user %d: %v", userID, err)
		utils.SendErrorResponse(s, i, "Could not save your exclusion preference. Nothing was changed.")
		return
	}

	if excluded {
		utils.SendSimpleResponse(s, i, "You are now excluded.")
	} else {
		utils.SendSimpleResponse(s, i, "You are no longer excluded.")
	}
}

// HandleClearXP deletes the caller's xp record and reports how much was
// cleared.
func HandleClearXP(s *discordgo.Session, i *discordgo.InteractionCreate, b model.Bot) {
	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Printf("Unparseable user id %q: %v", i.Member.User.ID, err)
		utils.SendErrorResponse(s, i, genericErrorMessage)
		return
	}

	cleared, existed, err := b.GetEngine().Clear(context.Background(), userID)
	if err != nil {
		log.Printf("Error clearing xp for user %d: %v", userID, err)
		utils.SendErrorResponse(s, i, genericErrorMessage)
		return
	}
	if !existed {
		utils.SendSimpleResponse(s, i, "You had no xp.")
		return
	}
	utils.SendSimpleResponse(s, i, fmt.Sprintf("Cleared %d xp.", cleared))
}

func userDisplayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}
