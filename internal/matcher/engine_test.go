package matcher

import (
	"context"
	"testing"
	"time"

	"github.com/norchard/slashtalk-go/internal/catalog"
	"github.com/norchard/slashtalk-go/internal/constants"
	"github.com/norchard/slashtalk-go/internal/domain"
	"github.com/norchard/slashtalk-go/internal/state"
	"go.uber.org/zap"
)

type fakeAnalyzer struct {
	analysis *domain.AIAnalysis
	ok       bool
	calls    int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ *domain.InboundMessage, _ []*domain.CatalogEntry) (*domain.AIAnalysis, bool) {
	f.calls++
	return f.analysis, f.ok
}

func moderationDefinitions() []domain.CommandDefinition {
	return []domain.CommandDefinition{
		{Name: "ban", Description: "Ban a user from the server", Options: []domain.CommandOption{
			{Name: "user", Type: domain.OptionUser, Required: true},
			{Name: "reason", Type: domain.OptionString},
		}},
		{Name: "warn", Description: "Warn a user for misbehavior", Options: []domain.CommandOption{
			{Name: "user", Type: domain.OptionUser, Required: true},
			{Name: "reason", Type: domain.OptionString},
		}},
		{Name: "purge", Description: "Delete recent messages in bulk", Options: []domain.CommandOption{
			{Name: "amount", Type: domain.OptionInteger, Required: true},
		}},
	}
}

func newTestEngine(t *testing.T, analyzer AIAnalyzer) *Engine {
	t.Helper()
	logger := zap.NewNop()

	cat := catalog.New(catalog.NewGenerator(logger), nil, logger)
	cat.Rebuild(context.Background(), "900", moderationDefinitions())

	states := state.NewStore(
		constants.StateLimits.TTL,
		constants.StateLimits.MaxEntries,
		constants.StateLimits.ContextDepth,
		logger,
	)
	return NewEngine(cat, states, analyzer, logger)
}

func inbound(text string, mentions ...string) *domain.InboundMessage {
	return &domain.InboundMessage{
		ID:               "m1",
		Text:             text,
		AuthorID:         "author",
		ChannelID:        "chan",
		BotID:            "900",
		MentionedUserIDs: mentions,
		Timestamp:        time.Now(),
	}
}

func TestHandleDirectCommand(t *testing.T) {
	e := newTestEngine(t, nil)

	result := e.Handle(context.Background(), inbound("warn <@111> for spamming", "111"))
	if result.Route != domain.RouteExecute {
		t.Fatalf("Route = %v, want execute", result.Route)
	}
	if result.RenderedCommand != "/warn user:111 reason:spamming" {
		t.Errorf("RenderedCommand = %q", result.RenderedCommand)
	}
	if result.CommandName != "warn" {
		t.Errorf("CommandName = %q, want warn", result.CommandName)
	}
}

func TestHandleParaphrase(t *testing.T) {
	e := newTestEngine(t, nil)

	result := e.Handle(context.Background(), inbound("please remove <@111> they are being toxic", "111"))
	if result.Route != domain.RouteExecute {
		t.Fatalf("Route = %v, want execute", result.Route)
	}
	if result.CommandName != "ban" {
		t.Errorf("CommandName = %q, want ban", result.CommandName)
	}
	if result.Params[domain.SlotReason] != "being toxic" {
		t.Errorf("reason = %q, want %q", result.Params[domain.SlotReason], "being toxic")
	}
}

func TestHandleAmountCommand(t *testing.T) {
	e := newTestEngine(t, nil)

	result := e.Handle(context.Background(), inbound("purge 10 messages"))
	if result.Route != domain.RouteExecute {
		t.Fatalf("Route = %v, want execute", result.Route)
	}
	if result.RenderedCommand != "/purge amount:10" {
		t.Errorf("RenderedCommand = %q", result.RenderedCommand)
	}
}

func TestHandleSmallTalk(t *testing.T) {
	e := newTestEngine(t, nil)

	result := e.Handle(context.Background(), inbound("hello how are you today?"))
	if result.Route != domain.RouteConversational {
		t.Fatalf("Route = %v, want conversational", result.Route)
	}
	if result.Response == "" {
		t.Error("conversational result must carry a response")
	}
}

func TestHandleCompoundRejected(t *testing.T) {
	e := newTestEngine(t, nil)

	result := e.Handle(context.Background(), inbound("warnban user123"))
	if result.Route != domain.RouteRejected {
		t.Fatalf("Route = %v, want rejected", result.Route)
	}
}

func TestHandleUnrelatedInput(t *testing.T) {
	e := newTestEngine(t, nil)

	result := e.Handle(context.Background(), inbound("what is the weather like"))
	if result.Route != domain.RouteConversational {
		t.Fatalf("Route = %v, want conversational", result.Route)
	}
}

func TestHandleEmptyAfterMention(t *testing.T) {
	e := newTestEngine(t, nil)

	result := e.Handle(context.Background(), inbound("<@900>"))
	if result.Route != domain.RouteConversational {
		t.Fatalf("Route = %v, want conversational", result.Route)
	}
}

func TestHandleEmptyCatalog(t *testing.T) {
	logger := zap.NewNop()
	cat := catalog.New(catalog.NewGenerator(logger), nil, logger)
	states := state.NewStore(time.Hour, 100, 10, logger)
	e := NewEngine(cat, states, nil, logger)

	result := e.Handle(context.Background(), inbound("ban <@111>", "111"))
	if result.Route != domain.RouteConversational {
		t.Fatalf("Route = %v, want conversational for an unsynced catalog", result.Route)
	}
}

func TestClarifyThenComplete(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx := context.Background()

	first := e.Handle(ctx, inbound("ban him please"))
	if first.Route != domain.RouteClarify {
		t.Fatalf("first Route = %v, want clarify", first.Route)
	}
	if first.Question == "" {
		t.Fatal("clarify result must carry a question")
	}

	second := e.Handle(ctx, inbound("<@111>", "111"))
	if second.Route != domain.RouteExecute {
		t.Fatalf("second Route = %v, want execute", second.Route)
	}
	if second.RenderedCommand != "/ban user:111 reason:No reason provided" {
		t.Errorf("RenderedCommand = %q", second.RenderedCommand)
	}
}

func TestClarifyThenCancel(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx := context.Background()

	first := e.Handle(ctx, inbound("ban him please"))
	if first.Route != domain.RouteClarify {
		t.Fatalf("first Route = %v, want clarify", first.Route)
	}

	second := e.Handle(ctx, inbound("nevermind"))
	if second.Route != domain.RouteConversational {
		t.Fatalf("second Route = %v, want conversational after cancel", second.Route)
	}

	// the pending command is gone; a later mention does not execute it
	third := e.Handle(ctx, inbound("<@111>", "111"))
	if third.Route == domain.RouteExecute {
		t.Error("cancelled pending command must not execute on a later mention")
	}
}

func TestAnalyzerConversationalVerdict(t *testing.T) {
	analyzer := &fakeAnalyzer{
		analysis: &domain.AIAnalysis{
			IsCommand:              false,
			ConversationalResponse: "Happy to help when you need a command.",
		},
		ok: true,
	}
	e := newTestEngine(t, analyzer)

	result := e.Handle(context.Background(), inbound("could you maybe do something about that"))
	if result.Route != domain.RouteConversational {
		t.Fatalf("Route = %v, want conversational", result.Route)
	}
	if result.Response != "Happy to help when you need a command." {
		t.Errorf("Response = %q, want the analyzer's reply", result.Response)
	}
	if analyzer.calls != 1 {
		t.Errorf("analyzer calls = %d, want 1", analyzer.calls)
	}
}

func TestAnalyzerCommandVerdict(t *testing.T) {
	analyzer := &fakeAnalyzer{
		analysis: &domain.AIAnalysis{
			IsCommand: true,
			BestMatch: &domain.AIBestMatch{
				CommandName: "ban",
				Confidence:  0.9,
				Params:      map[string]string{"user": "111", "reason": "harassment"},
			},
		},
		ok: true,
	}
	e := newTestEngine(t, analyzer)

	result := e.Handle(context.Background(), inbound("deal with that troublemaker"))
	if result.Route != domain.RouteExecute {
		t.Fatalf("Route = %v, want execute", result.Route)
	}
	if result.RenderedCommand != "/ban user:111 reason:harassment" {
		t.Errorf("RenderedCommand = %q", result.RenderedCommand)
	}
	if result.Confidence != 0.9 {
		t.Errorf("Confidence = %f, want the analyzer's confidence", result.Confidence)
	}
}

func TestAnalyzerFailureFallsBackToHeuristics(t *testing.T) {
	analyzer := &fakeAnalyzer{ok: false}
	e := newTestEngine(t, analyzer)

	result := e.Handle(context.Background(), inbound("warn <@111> for spamming", "111"))
	if result.Route != domain.RouteExecute {
		t.Fatalf("Route = %v, want execute via heuristic fallback", result.Route)
	}
	if analyzer.calls != 1 {
		t.Errorf("analyzer calls = %d, want 1", analyzer.calls)
	}
}

func TestAnalyzerUnknownCommandFallsBack(t *testing.T) {
	analyzer := &fakeAnalyzer{
		analysis: &domain.AIAnalysis{
			IsCommand: true,
			BestMatch: &domain.AIBestMatch{CommandName: "selfdestruct", Confidence: 0.99},
		},
		ok: true,
	}
	e := newTestEngine(t, analyzer)

	result := e.Handle(context.Background(), inbound("purge 10 messages"))
	if result.Route != domain.RouteExecute {
		t.Fatalf("Route = %v, want heuristic execute", result.Route)
	}
	if result.CommandName != "purge" {
		t.Errorf("CommandName = %q, want purge", result.CommandName)
	}
}
