// Package lexicon holds the static dictionaries the matcher and the pattern
// generator draw from: action synonyms, natural-language paraphrases,
// semantic keywords, greeting patterns and indicator phrases. Everything here
// is plain data keyed by canonical command-name guesses so the matching
// functions stay pure and the tables can be swapped per test.
package lexicon

import "github.com/norchard/slashtalk-go/internal/util"

// actionSynonyms feed the generator's alternative patterns. Commands absent
// from the table simply get no synonym alternatives.
var actionSynonyms = map[string][]string{
	"ban":      {"remove", "kick out"},
	"kick":     {"boot", "throw out"},
	"mute":     {"silence", "shut up"},
	"unmute":   {"unsilence"},
	"warn":     {"caution", "call out"},
	"purge":    {"clear", "clean up"},
	"timeout":  {"time out", "cool down"},
	"unban":    {"readmit", "let back in"},
	"softban":  {"soft remove"},
	"announce": {"broadcast", "tell everyone"},
	"say":      {"announce"},
	"slowmode": {"slow down"},
}

// phraseDictionary lists multi-word natural paraphrases per command. Matched
// word-by-word with the fuzzy comparator; partial matches score as
// matched/total words.
var phraseDictionary = map[string][]string{
	"ban":      {"please remove", "get rid of", "kick out", "remove them", "ban them"},
	"kick":     {"kick out", "throw out", "boot them", "get them out"},
	"mute":     {"shut up", "silence them", "mute them", "make them quiet"},
	"unmute":   {"let them talk", "unmute them"},
	"warn":     {"give a warning", "warn them", "tell them off"},
	"purge":    {"delete messages", "clear messages", "clean up the chat", "remove messages"},
	"timeout":  {"time them out", "put in timeout", "cool them down"},
	"unban":    {"let them back", "lift the ban", "unban them"},
	"announce": {"tell everyone", "make an announcement", "let everyone know"},
	"say":      {"make the bot say"},
	"slowmode": {"slow the chat", "enable slowmode"},
	"role":     {"give a role", "assign a role"},
}

// semanticKeywords are single words or short fragments distinct from the
// phrase dictionary, scored as the fraction found in the input.
var semanticKeywords = map[string][]string{
	"ban":      {"remove", "banish", "expel", "block", "rid"},
	"kick":     {"eject", "boot", "out"},
	"mute":     {"silence", "quiet", "sshh"},
	"unmute":   {"speak", "talk"},
	"warn":     {"warning", "caution", "notice", "behave"},
	"purge":    {"delete", "clear", "prune", "clean", "messages"},
	"timeout":  {"timeout", "cooldown", "break"},
	"unban":    {"pardon", "forgive", "back"},
	"announce": {"announcement", "broadcast", "everyone"},
	"slowmode": {"slow", "cooldown"},
	"role":     {"role", "assign", "grant"},
}

// moderationVerbs is the small common-moderation-verb set used for the
// confidence-bias bonus and the compound-utterance filter.
var moderationVerbs = []string{
	"ban", "kick", "mute", "unmute", "warn", "purge",
	"timeout", "unban", "softban", "slowmode", "lock", "unlock",
}

// naturalIndicators lower the acceptance threshold when present: phrasing
// like this scores low on the direct-name signal.
var naturalIndicators = []string{
	"please", "can you", "could you", "would you", "how",
	"they are", "they're", "being", "keeps", "won't stop",
}

// greetings covers small talk the conversational filter rejects outright.
var greetings = []string{
	"hi", "hello", "hey", "yo", "sup", "howdy",
	"thanks", "thank you", "thx",
	"what's up", "whats up", "how are you", "how's it going",
	"good morning", "good afternoon", "good evening", "good night",
	"bye", "goodbye", "see you", "later",
	"ok", "okay", "lol", "lmao", "nice", "cool",
}

// commonRoles is the fallback word list for role extraction when no explicit
// "give X role" phrasing is present.
var commonRoles = []string{
	"admin", "administrator", "moderator", "mod", "member",
	"vip", "muted", "verified", "subscriber", "booster",
}

// cancelWords resolve a pending clarification as a denial.
var cancelWords = []string{
	"no", "nope", "cancel", "stop", "nevermind", "never mind", "forget it",
}

func SynonymsFor(command string) []string {
	return actionSynonyms[util.Normalize(command)]
}

func PhrasesFor(command string) []string {
	return phraseDictionary[util.Normalize(command)]
}

func KeywordsFor(command string) []string {
	return semanticKeywords[util.Normalize(command)]
}

func ModerationVerbs() []string {
	return moderationVerbs
}

func IsModerationVerb(word string) bool {
	return util.Contains(moderationVerbs, util.Normalize(word))
}

func NaturalIndicators() []string {
	return naturalIndicators
}

func Greetings() []string {
	return greetings
}

func CommonRoles() []string {
	return commonRoles
}

func CancelWords() []string {
	return cancelWords
}
