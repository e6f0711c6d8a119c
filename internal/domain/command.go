package domain

// OptionType mirrors the Discord application-command option type codes. The
// ingestion boundary converts platform records into this closed enum once;
// nothing downstream branches on raw platform codes again.
type OptionType int

const (
	OptionSubCommand OptionType = iota + 1
	OptionSubCommandGroup
	OptionString
	OptionInteger
	OptionBoolean
	OptionUser
	OptionChannel
	OptionRole
	OptionMentionable
	OptionNumber
	OptionAttachment
)

func (t OptionType) String() string {
	switch t {
	case OptionSubCommand:
		return "subcommand"
	case OptionSubCommandGroup:
		return "subcommand_group"
	case OptionString:
		return "string"
	case OptionInteger:
		return "integer"
	case OptionBoolean:
		return "boolean"
	case OptionUser:
		return "user"
	case OptionChannel:
		return "channel"
	case OptionRole:
		return "role"
	case OptionMentionable:
		return "mentionable"
	case OptionNumber:
		return "number"
	case OptionAttachment:
		return "attachment"
	default:
		return "unknown"
	}
}

// IsSubCommand reports whether the option is a subcommand or subcommand group.
// These are skipped entirely during pattern generation.
func (t OptionType) IsSubCommand() bool {
	return t == OptionSubCommand || t == OptionSubCommandGroup
}

// CommandOption is one typed parameter of a discovered command.
type CommandOption struct {
	Name     string     `json:"name"`
	Type     OptionType `json:"type"`
	Required bool       `json:"required"`
}

// CommandDefinition is a discovered command as supplied by the discovery
// collaborator. Names and option vocabularies are arbitrary per bot.
type CommandDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Options     []CommandOption `json:"options"`
}

// CatalogEntry is the matchable derivation of one CommandDefinition.
type CatalogEntry struct {
	CommandName         string   `json:"command_name"`
	PrimaryPattern      string   `json:"primary_pattern"`
	AlternativePatterns []string `json:"alternative_patterns"`
	OutputTemplate      string   `json:"output_template"`
	RequiredSlots       []Slot   `json:"required_slots"`
	OptionalSlots       []Slot   `json:"optional_slots"`
	ConfidenceBias      float64  `json:"confidence_bias"`
	Description         string   `json:"description"`
}

// AllSlotsUsed returns required ∪ optional in stable order, required first.
func (e *CatalogEntry) AllSlotsUsed() []Slot {
	slots := make([]Slot, 0, len(e.RequiredSlots)+len(e.OptionalSlots))
	slots = append(slots, e.RequiredSlots...)
	for _, s := range e.OptionalSlots {
		if !e.RequiresSlot(s) && !slotIn(slots, s) {
			slots = append(slots, s)
		}
	}
	return slots
}

func (e *CatalogEntry) RequiresSlot(s Slot) bool {
	return slotIn(e.RequiredSlots, s)
}

func slotIn(slots []Slot, s Slot) bool {
	for _, candidate := range slots {
		if candidate == s {
			return true
		}
	}
	return false
}

// ComponentScores records the individual similarity signals before weighting.
type ComponentScores struct {
	DirectNameMatch      float64 `json:"direct_name_match"`
	PhrasePatternScore   float64 `json:"phrase_pattern_score"`
	PatternOverlapScore  float64 `json:"pattern_overlap_score"`
	SemanticKeywordScore float64 `json:"semantic_keyword_score"`
	DescriptionScore     float64 `json:"description_score"`
}

// MatchCandidate is the ephemeral per-message scoring record for one entry.
type MatchCandidate struct {
	Entry          *CatalogEntry
	Input          string
	Scores         ComponentScores
	AggregateScore float64
	Params         map[Slot]string
}

// IsExecutable reports whether the candidate may be executed: score at or
// above the active threshold and every required slot resolved to a non-empty
// value.
func (c *MatchCandidate) IsExecutable(threshold float64) bool {
	if c == nil || c.Entry == nil || c.AggregateScore < threshold {
		return false
	}
	for _, slot := range c.Entry.RequiredSlots {
		if c.Params[slot] == "" {
			return false
		}
	}
	return true
}

// MissingRequiredSlots lists required slots without an extracted value.
func (c *MatchCandidate) MissingRequiredSlots() []Slot {
	var missing []Slot
	for _, slot := range c.Entry.RequiredSlots {
		if c.Params[slot] == "" {
			missing = append(missing, slot)
		}
	}
	return missing
}
