package prompt

import "fmt"

// FallbackAnalysisPrompt mirrors the embedded template for the case where the
// template cannot be loaded or rendered.
func FallbackAnalysisPrompt(data AnalysisPromptData) string {
	return fmt.Sprintf(`You are an intent analyzer for a moderation chatbot.
Decide whether the user's message asks the bot to run one of its commands or is plain conversation.

## Available Commands (Total: %d):
%s

## User Message:
"%s"

## Response Format (JSON ONLY):
{
  "isCommand": true or false,
  "bestMatch": {
    "commandName": "exact command name from the list above",
    "confidence": 0.0-1.0,
    "params": {"user": "...", "reason": "...", "message": "...", "amount": "...", "duration": "...", "channel": "...", "role": "...", "name": "..."}
  },
  "conversationalResponse": "short friendly reply when isCommand is false"
}

Rules: use exact command names, omit params you cannot find, never guess values.`,
		data.CommandCount, data.CatalogListing, data.UserMessage)
}
