package catalog

import (
	"fmt"
	"strings"

	"github.com/norchard/slashtalk-go/internal/domain"
	"github.com/norchard/slashtalk-go/internal/lexicon"
	"github.com/norchard/slashtalk-go/internal/util"
	pkgerrors "github.com/norchard/slashtalk-go/pkg/errors"
	"go.uber.org/zap"
)

const (
	maxAlternativePatterns = 3
	baseConfidenceBias     = 0.7
	minConfidenceBias      = 0.1
	maxConfidenceBias      = 1.0
)

// Generator turns one discovered command definition into a catalog entry:
// a canonical phrasing pattern, up to three alternatives, a normalized output
// template over canonical slots, and a confidence bias.
type Generator struct {
	logger *zap.Logger
}

func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{logger: logger}
}

// Generate builds the catalog entry for one definition. Subcommand and
// subcommand-group options are skipped entirely. The only failure mode is a
// malformed definition with no name.
func (g *Generator) Generate(def domain.CommandDefinition) (*domain.CatalogEntry, error) {
	name := util.Normalize(def.Name)
	if name == "" {
		g.logger.Warn("Skipping command definition without a name")
		return nil, pkgerrors.NewCatalogError("command definition has no name", def.Name, nil)
	}

	var (
		required      []domain.Slot
		optional      []domain.Slot
		requiredOpts  []domain.CommandOption
		flatOptions   []domain.CommandOption
		optionSlots   []domain.Slot
		hasReasonLike bool
	)

	for _, opt := range def.Options {
		if opt.Type.IsSubCommand() {
			continue
		}
		slot := domain.MapOptionToSlot(opt.Name, opt.Type)
		flatOptions = append(flatOptions, opt)
		optionSlots = append(optionSlots, slot)
		if slot == domain.SlotReason {
			hasReasonLike = true
		}
		if opt.Required {
			requiredOpts = append(requiredOpts, opt)
			required = appendSlot(required, slot)
		} else {
			optional = appendSlot(optional, slot)
		}
	}

	entry := &domain.CatalogEntry{
		CommandName:         name,
		PrimaryPattern:      g.buildPrimaryPattern(name, flatOptions, optionSlots),
		AlternativePatterns: g.buildAlternativePatterns(name, requiredOpts, hasReasonLike),
		OutputTemplate:      buildOutputTemplate(name, flatOptions, optionSlots),
		RequiredSlots:       required,
		OptionalSlots:       optional,
		ConfidenceBias:      computeConfidenceBias(name, def.Description, flatOptions, optionSlots),
		Description:         def.Description,
	}

	return entry, nil
}

// buildPrimaryPattern is the command name followed by every required option's
// slot placeholder, then optional options whose slot reads naturally inline
// (reason, message, duration).
func (g *Generator) buildPrimaryPattern(name string, options []domain.CommandOption, slots []domain.Slot) string {
	var sb strings.Builder
	sb.WriteString(name)
	for i, opt := range options {
		if opt.Required {
			sb.WriteString(" {")
			sb.WriteString(slots[i].String())
			sb.WriteString("}")
		}
	}
	for i, opt := range options {
		if opt.Required {
			continue
		}
		switch slots[i] {
		case domain.SlotReason, domain.SlotMessage, domain.SlotDuration:
			sb.WriteString(" {")
			sb.WriteString(slots[i].String())
			sb.WriteString("}")
		}
	}
	return sb.String()
}

// buildAlternativePatterns combines action synonyms with the required slot
// placeholders, then adds preposition variants for reason-like options, up to
// three alternatives total.
func (g *Generator) buildAlternativePatterns(name string, requiredOpts []domain.CommandOption, hasReasonLike bool) []string {
	requiredSuffix := requiredPlaceholderSuffix(requiredOpts)

	var alternatives []string
	for _, synonym := range lexicon.SynonymsFor(name) {
		if len(alternatives) >= maxAlternativePatterns {
			break
		}
		alternatives = append(alternatives, synonym+requiredSuffix)
	}

	if hasReasonLike {
		nonReasonSuffix := nonReasonPlaceholderSuffix(requiredOpts)
		for _, prep := range []string{"for", "because", "with"} {
			if len(alternatives) >= maxAlternativePatterns {
				break
			}
			alternatives = append(alternatives, fmt.Sprintf("%s%s %s {reason}", name, nonReasonSuffix, prep))
		}
	}

	return alternatives
}

func requiredPlaceholderSuffix(requiredOpts []domain.CommandOption) string {
	var sb strings.Builder
	for _, opt := range requiredOpts {
		slot := domain.MapOptionToSlot(opt.Name, opt.Type)
		sb.WriteString(" {")
		sb.WriteString(slot.String())
		sb.WriteString("}")
	}
	return sb.String()
}

func nonReasonPlaceholderSuffix(requiredOpts []domain.CommandOption) string {
	var sb strings.Builder
	for _, opt := range requiredOpts {
		slot := domain.MapOptionToSlot(opt.Name, opt.Type)
		if slot == domain.SlotReason {
			continue
		}
		sb.WriteString(" {")
		sb.WriteString(slot.String())
		sb.WriteString("}")
	}
	return sb.String()
}

// buildOutputTemplate produces "/name optName:{slot}" for every non-subcommand
// option, keyed by the canonical slot so rendering stays bot-agnostic.
func buildOutputTemplate(name string, options []domain.CommandOption, slots []domain.Slot) string {
	var sb strings.Builder
	sb.WriteString("/")
	sb.WriteString(name)
	for i, opt := range options {
		sb.WriteString(" ")
		sb.WriteString(util.Normalize(opt.Name))
		sb.WriteString(":{")
		sb.WriteString(slots[i].String())
		sb.WriteString("}")
	}
	return sb.String()
}

func computeConfidenceBias(name, description string, options []domain.CommandOption, slots []domain.Slot) float64 {
	bias := baseConfidenceBias

	if len(description) > 10 {
		bias += 0.1
	}

	for _, slot := range slots {
		if domain.IsCleanSlot(slot) {
			bias += 0.1
			break
		}
	}

	if len(options) > 5 {
		bias -= 0.1
	}

	if lexicon.IsModerationVerb(name) {
		bias += 0.1
	}

	if bias < minConfidenceBias {
		bias = minConfidenceBias
	}
	if bias > maxConfidenceBias {
		bias = maxConfidenceBias
	}
	return bias
}

func appendSlot(slots []domain.Slot, s domain.Slot) []domain.Slot {
	for _, existing := range slots {
		if existing == s {
			return slots
		}
	}
	return append(slots, s)
}
