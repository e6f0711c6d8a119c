package domain

import "time"

// InboundMessage is the platform-agnostic intake record for one chat message
// addressed to the bot.
type InboundMessage struct {
	ID                  string
	Text                string
	AuthorID            string
	ChannelID           string
	GuildID             string
	BotID               string
	MentionedUserIDs    []string
	MentionedChannelIDs []string
	MentionedRoleIDs    []string
	IsReplyToBot        bool
	Timestamp           time.Time
}

// Route tags the outcome of handling one inbound message.
type Route string

const (
	RouteExecute        Route = "execute"
	RouteClarify        Route = "clarify"
	RouteConversational Route = "conversational"
	RouteRejected       Route = "rejected"
)

// MatchResult is the tagged result handed to the executor/responder
// collaborator. Exactly the fields for the tagged route are populated.
type MatchResult struct {
	Route           Route
	RenderedCommand string
	CommandName     string
	Params          map[Slot]string
	Confidence      float64
	Question        string
	Response        string
}

func ExecuteResult(commandName, rendered string, params map[Slot]string, confidence float64) *MatchResult {
	return &MatchResult{
		Route:           RouteExecute,
		RenderedCommand: rendered,
		CommandName:     commandName,
		Params:          params,
		Confidence:      confidence,
	}
}

func ClarifyResult(commandName, question string, params map[Slot]string, confidence float64) *MatchResult {
	return &MatchResult{
		Route:       RouteClarify,
		CommandName: commandName,
		Params:      params,
		Confidence:  confidence,
		Question:    question,
	}
}

func ConversationalResult(response string) *MatchResult {
	return &MatchResult{
		Route:    RouteConversational,
		Response: response,
	}
}

func RejectedResult() *MatchResult {
	return &MatchResult{Route: RouteRejected}
}

// AIBestMatch is the analyzer's pick when it judges the message a command.
type AIBestMatch struct {
	CommandName string            `json:"commandName"`
	Confidence  float64           `json:"confidence"`
	Params      map[string]string `json:"params"`
}

// AIAnalysis is the structured verdict of the optional generative-AI
// collaborator. Absence or failure of the collaborator is not represented
// here; callers receive ok=false instead.
type AIAnalysis struct {
	IsCommand              bool         `json:"isCommand"`
	BestMatch              *AIBestMatch `json:"bestMatch,omitempty"`
	ConversationalResponse string       `json:"conversationalResponse,omitempty"`
}
