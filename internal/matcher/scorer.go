package matcher

import (
	"regexp"
	"strings"

	"github.com/norchard/slashtalk-go/internal/constants"
	"github.com/norchard/slashtalk-go/internal/domain"
	"github.com/norchard/slashtalk-go/internal/lexicon"
	"github.com/norchard/slashtalk-go/internal/util"
)

var placeholderPattern = regexp.MustCompile(`\{[a-z_]+\}`)

// Score computes the multi-signal confidence between one input and one
// catalog entry. The five weighted signals are summed, scaled by the entry's
// confidence bias and clamped to [0, 1]. A single exact-name check would miss
// every paraphrase; a lone fuzzy-word check false-positives on short command
// names, so the signals are combined.
func Score(input string, entry *domain.CatalogEntry) *domain.MatchCandidate {
	tokens := util.Tokenize(input)

	scores := domain.ComponentScores{
		DirectNameMatch:      directNameScore(tokens, entry.CommandName),
		PhrasePatternScore:   phraseScore(tokens, lexicon.PhrasesFor(entry.CommandName)),
		PatternOverlapScore:  overlapScore(tokens, patternWords(entry.PrimaryPattern)),
		SemanticKeywordScore: keywordScore(tokens, lexicon.KeywordsFor(entry.CommandName)),
		DescriptionScore:     overlapScore(tokens, descriptionWords(entry.Description)),
	}

	w := constants.ScoreWeights
	weighted := w.DirectName*scores.DirectNameMatch +
		w.PhrasePattern*scores.PhrasePatternScore +
		w.PatternOverlap*scores.PatternOverlapScore +
		w.SemanticKeyword*scores.SemanticKeywordScore +
		w.Description*scores.DescriptionScore

	return &domain.MatchCandidate{
		Entry:          entry,
		Input:          input,
		Scores:         scores,
		AggregateScore: clamp01(weighted * entry.ConfidenceBias),
	}
}

func directNameScore(tokens []string, commandName string) float64 {
	if util.Contains(tokens, util.Normalize(commandName)) {
		return 1
	}
	return 0
}

// phraseScore takes the best partial match across the command's paraphrase
// dictionary: matchedWords / totalPhraseWords per phrase.
func phraseScore(tokens []string, phrases []string) float64 {
	best := 0.0
	for _, phrase := range phrases {
		words := util.Tokenize(phrase)
		if len(words) == 0 {
			continue
		}
		matched := 0
		for _, word := range words {
			if fuzzyWordIn(tokens, word) {
				matched++
			}
		}
		if score := float64(matched) / float64(len(words)); score > best {
			best = score
		}
	}
	return best
}

// overlapScore is the fraction of reference words found in the input with the
// fuzzy comparator.
func overlapScore(tokens []string, words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	found := 0
	for _, word := range words {
		if fuzzyWordIn(tokens, word) {
			found++
		}
	}
	return float64(found) / float64(len(words))
}

func keywordScore(tokens []string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	joined := " " + strings.Join(tokens, " ") + " "
	found := 0
	for _, keyword := range keywords {
		if strings.ContainsRune(keyword, ' ') {
			if strings.Contains(joined, " "+keyword+" ") {
				found++
			}
		} else if fuzzyWordIn(tokens, keyword) {
			found++
		}
	}
	return float64(found) / float64(len(keywords))
}

// patternWords strips the placeholders out of a phrasing pattern and keeps
// the remaining words long enough to be meaningful.
func patternWords(pattern string) []string {
	cleaned := placeholderPattern.ReplaceAllString(pattern, " ")
	var words []string
	for _, word := range util.Tokenize(cleaned) {
		if len(word) > constants.FuzzyMatch.MinPatternLength {
			words = append(words, word)
		}
	}
	return words
}

func descriptionWords(description string) []string {
	var words []string
	for _, word := range util.Tokenize(description) {
		if len(word) > constants.FuzzyMatch.MinPatternLength {
			words = append(words, word)
		}
	}
	return words
}

func fuzzyWordIn(tokens []string, word string) bool {
	for _, token := range tokens {
		if util.WordSimilarity(token, word) >= constants.FuzzyMatch.WordThreshold {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
