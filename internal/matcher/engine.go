package matcher

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/norchard/slashtalk-go/internal/catalog"
	"github.com/norchard/slashtalk-go/internal/domain"
	"github.com/norchard/slashtalk-go/internal/lexicon"
	"github.com/norchard/slashtalk-go/internal/state"
	"github.com/norchard/slashtalk-go/internal/util"
	"go.uber.org/zap"
)

// AIAnalyzer is the optional generative collaborator. ok=false covers every
// failure mode (disabled, timeout, open breaker, unparseable output) and sends
// the engine down the heuristic path.
type AIAnalyzer interface {
	Analyze(ctx context.Context, msg *domain.InboundMessage, entries []*domain.CatalogEntry) (analysis *domain.AIAnalysis, ok bool)
}

const (
	defaultConversationalReply = "I'm here to help run commands. Try telling me what you'd like to do, like \"warn @someone for spamming\"."
	emptyCatalogReply          = "I don't know any commands for this server yet. Give me a moment to sync and try again."
	cancelledReply             = "Okay, cancelled."
)

// clarifyQuestions phrase the follow-up for one missing slot.
var clarifyQuestions = map[domain.Slot]string{
	domain.SlotUser:     "Who should I target for /%s? Mention the user.",
	domain.SlotReason:   "What's the reason for /%s?",
	domain.SlotMessage:  "What should the message for /%s say?",
	domain.SlotAmount:   "How many for /%s?",
	domain.SlotDuration: "For how long should /%s apply? (e.g. 10m)",
	domain.SlotChannel:  "Which channel should /%s use? Mention it with #.",
	domain.SlotRole:     "Which role for /%s?",
	domain.SlotName:     "What name should I use for /%s?",
}

var botMentionRule = regexp.MustCompile(`^\s*<@!?(\d+)>\s*`)

// Engine turns one inbound message into a routed MatchResult. It owns the
// ordering of the stages: conversation-state resume, the conversational
// filters, the optional AI analysis and the heuristic scoring fallback.
type Engine struct {
	catalog  *catalog.Catalog
	states   *state.Store
	analyzer AIAnalyzer
	logger   *zap.Logger
}

func NewEngine(cat *catalog.Catalog, states *state.Store, analyzer AIAnalyzer, logger *zap.Logger) *Engine {
	return &Engine{
		catalog:  cat,
		states:   states,
		analyzer: analyzer,
		logger:   logger,
	}
}

// Handle routes one message. It never returns nil; inputs that fit nowhere
// come back as a conversational result.
func (e *Engine) Handle(ctx context.Context, msg *domain.InboundMessage) *domain.MatchResult {
	text := stripBotMention(msg.Text, msg.BotID)

	e.states.AppendContext(msg.AuthorID, msg.ChannelID, domain.ContextEntry{
		MessageID: msg.ID,
		Content:   text,
		AuthorID:  msg.AuthorID,
		Timestamp: msg.Timestamp,
	})

	if strings.TrimSpace(text) == "" {
		return e.converse(msg, defaultConversationalReply)
	}

	if st := e.states.Get(msg.AuthorID, msg.ChannelID); st != nil && st.Pending != nil {
		if result := e.resumePending(msg, st, text); result != nil {
			return result
		}
		// No usable follow-up; the pending command was dropped and the
		// message is handled fresh below.
	}

	entries := e.entriesFor(msg)
	if len(entries) == 0 {
		return e.converse(msg, emptyCatalogReply)
	}
	names := commandNames(entries)

	if IsInvalidCompound(text, names) {
		e.logger.Debug("Rejected compound-verb input", zap.String("text", util.TruncateString(text, 80)))
		return domain.RejectedResult()
	}
	if IsSmallTalk(text, names) {
		return e.converse(msg, defaultConversationalReply)
	}

	if e.analyzer != nil {
		if analysis, ok := e.analyzer.Analyze(ctx, msg, entries); ok {
			if result := e.routeAnalysis(msg, text, entries, analysis); result != nil {
				return result
			}
		}
	}

	return e.routeHeuristic(msg, text, entries)
}

// resumePending applies a follow-up message to a stored pending command. A nil
// return means the follow-up did not advance the command; the pending state has
// been dropped and the caller should handle the message as a fresh input.
func (e *Engine) resumePending(msg *domain.InboundMessage, st *domain.ConversationState, text string) *domain.MatchResult {
	if isCancel(text) {
		e.states.Resolve(msg.AuthorID, msg.ChannelID)
		return e.converse(msg, cancelledReply)
	}

	pending := st.Pending
	filled := 0
	for _, slot := range pending.MissingSlots {
		if pending.Params[slot] != "" {
			continue
		}
		if value := Extract(slot, msg, text); value != "" {
			pending.Params[slot] = value
			filled++
		}
	}

	var stillMissing []domain.Slot
	for _, slot := range pending.Entry.RequiredSlots {
		if pending.Params[slot] == "" {
			stillMissing = append(stillMissing, slot)
		}
	}

	if len(stillMissing) == 0 {
		e.states.Resolve(msg.AuthorID, msg.ChannelID)
		rendered := Render(pending.Entry, pending.Params)
		e.logger.Info("Clarification completed",
			zap.String("command", pending.CommandName),
			zap.String("user_id", msg.AuthorID),
		)
		return domain.ExecuteResult(pending.CommandName, rendered, pending.Params, 1)
	}

	if filled > 0 {
		question := clarifyQuestion(pending.Entry.CommandName, stillMissing)
		pending.MissingSlots = stillMissing
		st.ClarificationQuestion = question
		e.states.Put(msg.AuthorID, msg.ChannelID, st)
		e.recordBotReply(msg, question)
		return domain.ClarifyResult(pending.CommandName, question, pending.Params, 1)
	}

	// The follow-up carried none of the missing values, so it is almost
	// certainly a new request. Drop the pending command rather than trap the
	// user in a loop of repeated questions.
	e.states.Resolve(msg.AuthorID, msg.ChannelID)
	return nil
}

// routeAnalysis maps an AI verdict onto a result. A nil return defers to the
// heuristic path.
func (e *Engine) routeAnalysis(msg *domain.InboundMessage, text string, entries []*domain.CatalogEntry, analysis *domain.AIAnalysis) *domain.MatchResult {
	if analysis == nil {
		return nil
	}
	if !analysis.IsCommand {
		reply := analysis.ConversationalResponse
		if reply == "" {
			reply = defaultConversationalReply
		}
		return e.converse(msg, reply)
	}

	best := analysis.BestMatch
	if best == nil {
		return nil
	}
	entry := entryByName(entries, best.CommandName)
	if entry == nil {
		e.logger.Debug("Analyzer named an unknown command", zap.String("command", best.CommandName))
		return nil
	}
	if best.Confidence < ActiveThreshold(text) {
		return nil
	}

	// Heuristic extraction first, then the analyzer's values on top. The
	// analyzer sees conversational context the regex rules cannot.
	params := ExtractAll(entry, msg, text)
	for name, value := range best.Params {
		slot := domain.Slot(util.Normalize(name))
		if value != "" && slotUsed(entry, slot) {
			params[slot] = value
		}
	}

	candidate := &domain.MatchCandidate{
		Entry:          entry,
		Input:          text,
		AggregateScore: best.Confidence,
		Params:         params,
	}
	return e.finish(msg, candidate)
}

// routeHeuristic scores the input against every entry and routes the winner.
func (e *Engine) routeHeuristic(msg *domain.InboundMessage, text string, entries []*domain.CatalogEntry) *domain.MatchResult {
	candidates := make([]*domain.MatchCandidate, 0, len(entries))
	for _, entry := range entries {
		candidates = append(candidates, Score(text, entry))
	}

	best := SelectBest(candidates)
	threshold := ActiveThreshold(text)
	if best == nil || best.AggregateScore < threshold {
		return e.converse(msg, defaultConversationalReply)
	}

	best.Params = ExtractAll(best.Entry, msg, text)
	return e.finish(msg, best)
}

// finish turns an accepted candidate into Execute or Clarify.
func (e *Engine) finish(msg *domain.InboundMessage, candidate *domain.MatchCandidate) *domain.MatchResult {
	missing := candidate.MissingRequiredSlots()
	if len(missing) > 0 {
		question := clarifyQuestion(candidate.Entry.CommandName, missing)
		st := e.states.Get(msg.AuthorID, msg.ChannelID)
		if st == nil {
			st = &domain.ConversationState{}
		}
		st.Pending = &domain.PendingCommand{
			CommandName:  candidate.Entry.CommandName,
			Entry:        candidate.Entry,
			Params:       candidate.Params,
			MissingSlots: missing,
		}
		st.ClarificationQuestion = question
		st.OriginalMessage = candidate.Input
		e.states.Put(msg.AuthorID, msg.ChannelID, st)
		e.recordBotReply(msg, question)

		e.logger.Info("Asking for clarification",
			zap.String("command", candidate.Entry.CommandName),
			zap.Float64("score", candidate.AggregateScore),
			zap.Int("missing_slots", len(missing)),
		)
		return domain.ClarifyResult(candidate.Entry.CommandName, question, candidate.Params, candidate.AggregateScore)
	}

	e.states.Resolve(msg.AuthorID, msg.ChannelID)
	rendered := Render(candidate.Entry, candidate.Params)
	e.logger.Info("Matched command",
		zap.String("command", candidate.Entry.CommandName),
		zap.Float64("score", candidate.AggregateScore),
	)
	return domain.ExecuteResult(candidate.Entry.CommandName, rendered, candidate.Params, candidate.AggregateScore)
}

// entriesFor prefers the guild-scoped catalog and falls back to the bot-wide
// one for direct messages.
func (e *Engine) entriesFor(msg *domain.InboundMessage) []*domain.CatalogEntry {
	if msg.GuildID != "" {
		if entries := e.catalog.Entries(msg.GuildID); len(entries) > 0 {
			return entries
		}
	}
	return e.catalog.Entries(msg.BotID)
}

func (e *Engine) converse(msg *domain.InboundMessage, reply string) *domain.MatchResult {
	e.recordBotReply(msg, reply)
	return domain.ConversationalResult(reply)
}

func (e *Engine) recordBotReply(msg *domain.InboundMessage, reply string) {
	e.states.AppendContext(msg.AuthorID, msg.ChannelID, domain.ContextEntry{
		Content:   reply,
		AuthorID:  msg.BotID,
		IsBot:     true,
		Timestamp: msg.Timestamp,
	})
}

func clarifyQuestion(commandName string, missing []domain.Slot) string {
	if question, found := clarifyQuestions[missing[0]]; found {
		return fmt.Sprintf(question, commandName)
	}
	return fmt.Sprintf("I need a %s to run /%s. What should it be?", missing[0], commandName)
}

func isCancel(text string) bool {
	joined := " " + strings.Join(util.Tokenize(text), " ") + " "
	for _, word := range lexicon.CancelWords() {
		if strings.Contains(joined, " "+word+" ") {
			return true
		}
	}
	return false
}

func commandNames(entries []*domain.CatalogEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.CommandName)
	}
	return names
}

func entryByName(entries []*domain.CatalogEntry, name string) *domain.CatalogEntry {
	normalized := util.Normalize(name)
	for _, entry := range entries {
		if entry.CommandName == normalized {
			return entry
		}
	}
	return nil
}

func slotUsed(entry *domain.CatalogEntry, slot domain.Slot) bool {
	for _, s := range entry.AllSlotsUsed() {
		if s == slot {
			return true
		}
	}
	return false
}

// stripBotMention removes the leading mention of the bot itself so a message
// like "<@123> warn @user" scores on its real content.
func stripBotMention(text, botID string) string {
	m := botMentionRule.FindStringSubmatch(text)
	if m == nil {
		return strings.TrimSpace(text)
	}
	if botID != "" && m[1] != botID {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[len(m[0]):])
}
