package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/norchard/slashtalk-go/internal/constants"
	"github.com/norchard/slashtalk-go/internal/domain"
	"github.com/norchard/slashtalk-go/internal/prompt"
	"github.com/norchard/slashtalk-go/internal/util"
	"go.uber.org/zap"
)

// MessageAnalyzer asks a generative model whether a message is a command
// request and, if so, which catalog entry it means. Any failure yields
// ok=false so the caller falls back to heuristic scoring; the analyzer never
// returns an error.
type MessageAnalyzer struct {
	modelManager  *ModelManager
	promptBuilder *prompt.PromptBuilder
	logger        *zap.Logger
}

func NewMessageAnalyzer(modelManager *ModelManager, logger *zap.Logger) *MessageAnalyzer {
	return &MessageAnalyzer{
		modelManager:  modelManager,
		promptBuilder: prompt.NewPromptBuilder(),
		logger:        logger,
	}
}

func (ma *MessageAnalyzer) Analyze(ctx context.Context, msg *domain.InboundMessage, entries []*domain.CatalogEntry) (*domain.AIAnalysis, bool) {
	if ma.modelManager == nil || len(entries) == 0 {
		return nil, false
	}

	sanitized := sanitizeInput(msg.Text)
	if sanitized == "" {
		return nil, false
	}

	data := prompt.AnalysisPromptData{
		CommandCount:   len(entries),
		CatalogListing: buildCatalogListing(entries),
		UserMessage:    sanitized,
	}

	promptText, err := ma.promptBuilder.Render(prompt.TemplateAnalysisPrompt, data)
	if err != nil {
		ma.logger.Warn("Falling back to inline analysis prompt", zap.Error(err))
		promptText = prompt.FallbackAnalysisPrompt(data)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.AITimeouts.Analysis)
	defer cancel()

	var analysis domain.AIAnalysis
	metadata, err := ma.modelManager.GenerateJSON(ctx, promptText, PresetPrecise, &analysis, nil)
	if err != nil {
		ma.logger.Debug("Message analysis failed, using heuristic path", zap.Error(err))
		return nil, false
	}

	ma.logger.Debug("Message analysis complete",
		zap.String("provider", metadata.Provider),
		zap.String("model", metadata.Model),
		zap.Bool("used_fallback", metadata.UsedFallback),
		zap.Bool("is_command", analysis.IsCommand),
	)
	return &analysis, true
}

// buildCatalogListing renders one line per entry in the format the prompt
// template documents.
func buildCatalogListing(entries []*domain.CatalogEntry) string {
	var sb strings.Builder
	for i, entry := range entries {
		fmt.Fprintf(&sb, "%d. %s | %s | required: %s | optional: %s | %s\n",
			i+1,
			entry.CommandName,
			entry.PrimaryPattern,
			joinSlots(entry.RequiredSlots),
			joinSlots(entry.OptionalSlots),
			util.TruncateString(entry.Description, 120),
		)
	}
	return sb.String()
}

func joinSlots(slots []domain.Slot) string {
	if len(slots) == 0 {
		return "none"
	}
	names := make([]string, len(slots))
	for i, slot := range slots {
		names[i] = slot.String()
	}
	return strings.Join(names, ", ")
}

// sanitizeInput strips control characters and bounds the prompt payload.
func sanitizeInput(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, text)
	cleaned = strings.TrimSpace(cleaned)
	return util.TruncateString(cleaned, constants.AIInputLimits.MaxMessageLength)
}
