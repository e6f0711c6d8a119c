package matcher

import (
	"strings"

	"github.com/norchard/slashtalk-go/internal/lexicon"
	"github.com/norchard/slashtalk-go/internal/util"
)

// intentVerbs are slot-indicating verbs that rescue an otherwise
// greeting-shaped input from the small-talk filter.
var intentVerbs = []string{
	"say", "tell", "announce", "give", "remove", "delete",
	"clear", "add", "assign", "set",
}

// IsSmallTalk reports whether the input is a greeting, farewell or
// acknowledgement carrying no command intent. Pure and order-independent:
// calling it twice on the same string yields the same verdict.
func IsSmallTalk(text string, commandNames []string) bool {
	tokens := util.Tokenize(text)
	if len(tokens) == 0 {
		return true
	}

	joined := " " + strings.Join(tokens, " ") + " "
	hasGreeting := false
	for _, greeting := range lexicon.Greetings() {
		if strings.Contains(joined, " "+greeting+" ") {
			hasGreeting = true
			break
		}
	}
	if !hasGreeting {
		return false
	}

	return !hasCommandIntent(tokens, commandNames)
}

// IsInvalidCompound fires on utterances gluing two distinct command verbs
// together with no separator, e.g. "warnban". Such inputs carry no resolvable
// intent and are rejected before any scoring.
func IsInvalidCompound(text string, commandNames []string) bool {
	verbs := compoundVerbSet(commandNames)
	for _, token := range util.Tokenize(text) {
		for _, first := range verbs {
			for _, second := range verbs {
				if first == second {
					continue
				}
				if token == first+second {
					return true
				}
			}
		}
	}
	return false
}

func hasCommandIntent(tokens []string, commandNames []string) bool {
	for _, token := range tokens {
		if util.Contains(commandNames, token) {
			return true
		}
		if lexicon.IsModerationVerb(token) {
			return true
		}
		if util.Contains(intentVerbs, token) {
			return true
		}
	}
	return false
}

func compoundVerbSet(commandNames []string) []string {
	verbs := make([]string, 0, len(commandNames)+12)
	for _, name := range commandNames {
		if name != "" {
			verbs = append(verbs, util.Normalize(name))
		}
	}
	for _, verb := range lexicon.ModerationVerbs() {
		if !util.Contains(verbs, verb) {
			verbs = append(verbs, verb)
		}
	}
	return verbs
}
