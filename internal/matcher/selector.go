package matcher

import (
	"strings"

	"github.com/norchard/slashtalk-go/internal/constants"
	"github.com/norchard/slashtalk-go/internal/domain"
	"github.com/norchard/slashtalk-go/internal/lexicon"
	"github.com/norchard/slashtalk-go/internal/util"
)

// SelectBest picks the candidate with the highest aggregate score. Ties go to
// the first-seen candidate so catalog order makes selection deterministic.
func SelectBest(candidates []*domain.MatchCandidate) *domain.MatchCandidate {
	var best *domain.MatchCandidate
	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}
		if best == nil || candidate.AggregateScore > best.AggregateScore {
			best = candidate
		}
	}
	return best
}

// ActiveThreshold returns the acceptance bar for this input. Conversational
// phrasing scores lower on the direct-name signal, so the presence of
// natural-language indicator phrases lowers the bar.
func ActiveThreshold(text string) float64 {
	if HasNaturalIndicators(text) {
		return constants.MatchThresholds.NaturalLanguage
	}
	return constants.MatchThresholds.Plain
}

// HasNaturalIndicators reports whether the input carries any of the
// natural-language indicator phrases.
func HasNaturalIndicators(text string) bool {
	joined := " " + strings.Join(util.Tokenize(text), " ") + " "
	for _, indicator := range lexicon.NaturalIndicators() {
		if strings.Contains(joined, " "+indicator+" ") {
			return true
		}
	}
	return false
}
