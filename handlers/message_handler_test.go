package handlers

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestHasSubstance(t *testing.T) {
	assert.True(t, hasSubstance("hello"))
	assert.True(t, hasSubstance("OK then"))
	assert.True(t, hasSubstance("@alice"))

	// One distinct letter or none is noise, not a message.
	assert.False(t, hasSubstance(""))
	assert.False(t, hasSubstance("k"))
	assert.False(t, hasSubstance("aaaa"))
	assert.False(t, hasSubstance("!!!"))
	assert.False(t, hasSubstance("12345"))
	assert.False(t, hasSubstance("🎉🎉🎉"))
}

func TestIsThread(t *testing.T) {
	assert.True(t, isThread(discordgo.ChannelTypeGuildPublicThread))
	assert.True(t, isThread(discordgo.ChannelTypeGuildPrivateThread))
	assert.True(t, isThread(discordgo.ChannelTypeGuildNewsThread))

	assert.False(t, isThread(discordgo.ChannelTypeGuildText))
	assert.False(t, isThread(discordgo.ChannelTypeGuildNews))
	assert.False(t, isThread(discordgo.ChannelTypeDM))
}
