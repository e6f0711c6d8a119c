package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/norchard/slashtalk-go/internal/domain"
	pkgerrors "github.com/norchard/slashtalk-go/pkg/errors"
	"go.uber.org/zap"
)

// MessageHandler routes one inbound message; the matcher engine satisfies it.
type MessageHandler interface {
	Handle(ctx context.Context, msg *domain.InboundMessage) *domain.MatchResult
}

// Bot wires a gateway session to the message handler. It reacts only to
// messages that address the bot: a mention, a reply to one of its messages, or
// a direct message.
type Bot struct {
	session *discordgo.Session
	handler MessageHandler
	logger  *zap.Logger
}

func NewBot(token string, handler MessageHandler, logger *zap.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, pkgerrors.NewServiceError("failed to create gateway session", "discord", "new_session", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	bot := &Bot{
		session: session,
		handler: handler,
		logger:  logger,
	}
	session.AddHandler(bot.onMessageCreate)
	return bot, nil
}

// Session exposes the underlying gateway session for the discovery service.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return pkgerrors.NewServiceError("failed to open gateway connection", "discord", "open", err)
	}
	b.logger.Info("Gateway connection established",
		zap.String("bot_id", b.botID()),
	)
	return nil
}

func (b *Bot) Shutdown() error {
	b.logger.Info("Closing gateway connection")
	return b.session.Close()
}

func (b *Bot) botID() string {
	if b.session.State != nil && b.session.State.User != nil {
		return b.session.State.User.ID
	}
	return ""
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	botID := b.botID()
	if m.Author == nil || m.Author.ID == botID || m.Author.Bot {
		return
	}

	msg := MessageFromCreate(m, botID)
	if !b.addressesBot(m, msg) {
		return
	}

	result := b.handler.Handle(context.Background(), msg)
	b.respond(msg, result)
}

// addressesBot keeps the bot quiet in ordinary channel chatter.
func (b *Bot) addressesBot(m *discordgo.MessageCreate, msg *domain.InboundMessage) bool {
	if m.GuildID == "" {
		return true
	}
	if msg.IsReplyToBot {
		return true
	}
	botID := msg.BotID
	return botID != "" && (strings.Contains(m.Content, "<@"+botID+">") ||
		strings.Contains(m.Content, "<@!"+botID+">"))
}

func (b *Bot) respond(msg *domain.InboundMessage, result *domain.MatchResult) {
	if result == nil {
		return
	}

	var reply string
	switch result.Route {
	case domain.RouteExecute:
		reply = fmt.Sprintf("Running: `%s`", result.RenderedCommand)
	case domain.RouteClarify:
		reply = result.Question
	case domain.RouteConversational:
		reply = result.Response
	case domain.RouteRejected:
		return
	}
	if reply == "" {
		return
	}

	if _, err := b.session.ChannelMessageSend(msg.ChannelID, reply); err != nil {
		b.logger.Error("Failed to send reply",
			zap.String("channel_id", msg.ChannelID),
			zap.String("route", string(result.Route)),
			zap.Error(err),
		)
	}
}
