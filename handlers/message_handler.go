package handlers

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"levelbot/model"

	"github.com/bwmarrin/discordgo"
)

var celebrationEmojis = []string{"🎉", "🎊", "🚀", "✨"}

// HandleMessage awards xp for ordinary guild messages and announces
// level-ups. Everything user-facing here is presentation; eligibility and
// amounts are decided by the engine.
func HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate, b model.Bot) {
	cfg := b.GetConfig()

	// Ignore bots, DMs and messages from other guilds.
	if m.Author == nil || m.Author.Bot || m.GuildID == "" || m.GuildID != cfg.GuildID {
		return
	}

	// Only plain text channels count for xp; threads don't.
	ch := resolveChannel(s, m.ChannelID)
	if ch != nil && isThread(ch.Type) {
		return
	}

	// Skip meaningless messages. Mentions are matched by the name the reader
	// sees, not the raw <@id> form.
	if !hasSubstance(m.ContentWithMentionsReplaced()) {
		return
	}

	userID, err := strconv.ParseInt(m.Author.ID, 10, 64)
	if err != nil {
		log.Printf("Unparseable author id %q: %v", m.Author.ID, err)
		return
	}

	levelUp, err := b.GetEngine().OnMessage(context.Background(), userID, time.Now())
	if err != nil {
		log.Printf("Error processing message from user %d: %v", userID, err)
		return
	}
	if levelUp == nil {
		return
	}

	if silenced(ch, m.ChannelID, cfg) {
		log.Printf("Silencing level-up message in channel %s", m.ChannelID)
		return
	}

	emoji := celebrationEmojis[rand.Intn(len(celebrationEmojis))]
	content := fmt.Sprintf("## %s leveled up! %s\nYou are now level %d! Get %d more xp to get level %d.",
		authorDisplayName(m), emoji, levelUp.Level, levelUp.ToNext, levelUp.Level+1)
	reply, err := s.ChannelMessageSendReply(m.ChannelID, content, m.Reference())
	if err != nil {
		log.Printf("Error sending level-up message: %v", err)
		return
	}

	if ttl := cfg.Game.LevelUpMessageTTL; ttl > 0 {
		time.AfterFunc(ttl, func() {
			if err := s.ChannelMessageDelete(reply.ChannelID, reply.ID); err != nil {
				log.Printf("Error deleting level-up message: %v", err)
			}
		})
	}
}

// hasSubstance requires at least two distinct letters, so one-character
// reactions and pure emoji or number spam never earn xp.
func hasSubstance(content string) bool {
	var seen [26]bool
	distinct := 0
	for _, r := range strings.ToLower(content) {
		if r >= 'a' && r <= 'z' && !seen[r-'a'] {
			seen[r-'a'] = true
			distinct++
			if distinct > 1 {
				return true
			}
		}
	}
	return false
}

func resolveChannel(s *discordgo.Session, channelID string) *discordgo.Channel {
	ch, err := s.State.Channel(channelID)
	if err != nil {
		ch, err = s.Channel(channelID)
		if err != nil {
			log.Printf("Could not resolve channel %s: %v", channelID, err)
			return nil
		}
	}
	return ch
}

func isThread(t discordgo.ChannelType) bool {
	switch t {
	case discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread,
		discordgo.ChannelTypeGuildNewsThread:
		return true
	}
	return false
}

// silenced reports whether level-up announcements are suppressed for the
// channel. The xp itself has already been awarded.
func silenced(ch *discordgo.Channel, channelID string, cfg *model.Config) bool {
	for _, id := range cfg.Game.IgnoreChannelIDs {
		if id == channelID {
			return true
		}
	}
	if ch == nil {
		return false
	}

	for _, id := range cfg.Game.IgnoreCategoryIDs {
		if id == ch.ParentID {
			return true
		}
	}
	name := strings.ToLower(ch.Name)
	for _, frag := range cfg.Game.IgnoreChannelNames {
		if strings.Contains(name, frag) {
			return true
		}
	}
	return false
}

func authorDisplayName(m *discordgo.MessageCreate) string {
	if m.Member != nil && m.Member.Nick != "" {
		return m.Member.Nick
	}
	if m.Author.GlobalName != "" {
		return m.Author.GlobalName
	}
	return m.Author.Username
}
