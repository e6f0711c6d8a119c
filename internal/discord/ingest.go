// Package discord is the platform boundary: it converts gateway payloads into
// domain records and relays routed results back to the channel. Platform types
// do not leak past this package.
package discord

import (
	"regexp"

	"github.com/bwmarrin/discordgo"
	"github.com/norchard/slashtalk-go/internal/domain"
)

var channelMentionRule = regexp.MustCompile(`<#(\d+)>`)

// OptionTypeFromDiscord converts the wire option-type code. The domain enum
// mirrors the Discord codes one-to-one, so the conversion is a cast guarded
// against out-of-range values.
func OptionTypeFromDiscord(t discordgo.ApplicationCommandOptionType) domain.OptionType {
	if t < discordgo.ApplicationCommandOptionSubCommand || t > discordgo.ApplicationCommandOptionAttachment {
		return domain.OptionString
	}
	return domain.OptionType(t)
}

// DefinitionFromApplicationCommand converts one registered slash command into
// the platform-agnostic definition the generator consumes.
func DefinitionFromApplicationCommand(cmd *discordgo.ApplicationCommand) domain.CommandDefinition {
	def := domain.CommandDefinition{
		Name:        cmd.Name,
		Description: cmd.Description,
		Options:     make([]domain.CommandOption, 0, len(cmd.Options)),
	}
	for _, opt := range cmd.Options {
		if opt == nil {
			continue
		}
		def.Options = append(def.Options, domain.CommandOption{
			Name:     opt.Name,
			Type:     OptionTypeFromDiscord(opt.Type),
			Required: opt.Required,
		})
	}
	return def
}

// MessageFromCreate converts a gateway message-create event. botID is the
// session's own user ID; it is recorded so extraction can skip mentions of the
// bot itself.
func MessageFromCreate(m *discordgo.MessageCreate, botID string) *domain.InboundMessage {
	msg := &domain.InboundMessage{
		ID:        m.ID,
		Text:      m.Content,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		BotID:     botID,
		Timestamp: m.Timestamp,
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
	}

	for _, user := range m.Mentions {
		if user != nil {
			msg.MentionedUserIDs = append(msg.MentionedUserIDs, user.ID)
		}
	}
	for _, match := range channelMentionRule.FindAllStringSubmatch(m.Content, -1) {
		msg.MentionedChannelIDs = append(msg.MentionedChannelIDs, match[1])
	}
	msg.MentionedRoleIDs = append(msg.MentionedRoleIDs, m.MentionRoles...)

	if ref := m.ReferencedMessage; ref != nil && ref.Author != nil {
		msg.IsReplyToBot = ref.Author.ID == botID
	}

	return msg
}
