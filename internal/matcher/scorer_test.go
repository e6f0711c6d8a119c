package matcher

import (
	"testing"

	"github.com/norchard/slashtalk-go/internal/constants"
	"github.com/norchard/slashtalk-go/internal/domain"
)

func banEntry() *domain.CatalogEntry {
	return &domain.CatalogEntry{
		CommandName:    "ban",
		PrimaryPattern: "ban {user} {reason}",
		OutputTemplate: "/ban user:{user} reason:{reason}",
		RequiredSlots:  []domain.Slot{domain.SlotUser},
		OptionalSlots:  []domain.Slot{domain.SlotReason},
		ConfidenceBias: 1.0,
		Description:    "Ban a user from the server",
	}
}

func warnEntry() *domain.CatalogEntry {
	return &domain.CatalogEntry{
		CommandName:    "warn",
		PrimaryPattern: "warn {user} {reason}",
		OutputTemplate: "/warn user:{user} reason:{reason}",
		RequiredSlots:  []domain.Slot{domain.SlotUser},
		OptionalSlots:  []domain.Slot{domain.SlotReason},
		ConfidenceBias: 1.0,
		Description:    "Warn a user",
	}
}

func purgeEntry() *domain.CatalogEntry {
	return &domain.CatalogEntry{
		CommandName:    "purge",
		PrimaryPattern: "purge {amount}",
		OutputTemplate: "/purge amount:{amount}",
		RequiredSlots:  []domain.Slot{domain.SlotAmount},
		ConfidenceBias: 1.0,
		Description:    "Delete recent messages",
	}
}

func TestScoreDirectNameMatch(t *testing.T) {
	candidate := Score("warn user123 for spamming", warnEntry())

	if candidate.Scores.DirectNameMatch != 1 {
		t.Errorf("DirectNameMatch = %f, want 1", candidate.Scores.DirectNameMatch)
	}
	if candidate.AggregateScore < constants.MatchThresholds.Plain {
		t.Errorf("aggregate = %f, want at least the plain threshold %f",
			candidate.AggregateScore, constants.MatchThresholds.Plain)
	}
}

func TestScoreParaphrase(t *testing.T) {
	input := "please remove spammer they are being toxic"

	ban := Score(input, banEntry())
	purge := Score(input, purgeEntry())

	if ban.Scores.DirectNameMatch != 0 {
		t.Errorf("DirectNameMatch = %f, want 0 for a paraphrase", ban.Scores.DirectNameMatch)
	}
	if ban.Scores.PhrasePatternScore != 1 {
		t.Errorf("PhrasePatternScore = %f, want 1 for a full phrase hit", ban.Scores.PhrasePatternScore)
	}
	if ban.AggregateScore < constants.MatchThresholds.NaturalLanguage {
		t.Errorf("aggregate = %f, want at least the natural-language threshold", ban.AggregateScore)
	}
	if ban.AggregateScore <= purge.AggregateScore {
		t.Errorf("ban (%f) should outscore purge (%f) for a removal paraphrase",
			ban.AggregateScore, purge.AggregateScore)
	}
}

func TestScoreUnrelatedInput(t *testing.T) {
	candidate := Score("what is the weather like", banEntry())

	if candidate.AggregateScore >= constants.MatchThresholds.NaturalLanguage {
		t.Errorf("aggregate = %f for unrelated input, want below every threshold", candidate.AggregateScore)
	}
}

func TestScoreClampedToUnit(t *testing.T) {
	// direct name + pattern overlap + phrase hits push the weighted sum past 1
	candidate := Score("warn user123 for spamming, give a warning", warnEntry())

	if candidate.AggregateScore > 1 {
		t.Errorf("aggregate = %f, want clamped to 1", candidate.AggregateScore)
	}
	if candidate.AggregateScore < 0 {
		t.Errorf("aggregate = %f, want non-negative", candidate.AggregateScore)
	}
}

func TestScoreConfidenceBiasScales(t *testing.T) {
	input := "please remove spammer they are being toxic"

	strong := Score(input, banEntry())

	weak := banEntry()
	weak.ConfidenceBias = 0.5
	scaled := Score(input, weak)

	if scaled.AggregateScore >= strong.AggregateScore {
		t.Errorf("low-bias aggregate %f should be below high-bias aggregate %f",
			scaled.AggregateScore, strong.AggregateScore)
	}
}

func TestSelectBestFirstSeenWinsTies(t *testing.T) {
	a := &domain.MatchCandidate{Entry: banEntry(), AggregateScore: 0.5}
	b := &domain.MatchCandidate{Entry: warnEntry(), AggregateScore: 0.5}
	c := &domain.MatchCandidate{Entry: purgeEntry(), AggregateScore: 0.3}

	best := SelectBest([]*domain.MatchCandidate{a, b, c})
	if best != a {
		t.Errorf("SelectBest picked %s, want the first-seen tied candidate", best.Entry.CommandName)
	}

	if got := SelectBest(nil); got != nil {
		t.Errorf("SelectBest(nil) = %v, want nil", got)
	}
}

func TestActiveThreshold(t *testing.T) {
	if got := ActiveThreshold("please remove that user"); got != constants.MatchThresholds.NaturalLanguage {
		t.Errorf("threshold for natural phrasing = %f, want %f", got, constants.MatchThresholds.NaturalLanguage)
	}
	if got := ActiveThreshold("warn user123"); got != constants.MatchThresholds.Plain {
		t.Errorf("threshold for plain phrasing = %f, want %f", got, constants.MatchThresholds.Plain)
	}
}
