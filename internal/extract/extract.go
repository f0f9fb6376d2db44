package extract

import (
	"strings"

	"github.com/google/uuid"

	"rfxintake/internal/model"
)

// ContentType classifies what the user is asking the assistant about.
type ContentType string

const (
	ContentDeliverables ContentType = "deliverables"
	ContentMandatory    ContentType = "mandatory"
	ContentRated        ContentType = "rated"
	ContentGeneral      ContentType = "general"
)

// Scale labels for rated criteria, depending on where the item came from.
const (
	ScaleChat   = "0-100 points"
	ScaleWizard = "0-4"
)

const maxItems = 8

// strategyConfidence is the heuristic confidence assigned per
// extraction strategy. Kept as a table so the values are tunable
// without touching the strategies themselves.
var strategyConfidence = map[string]float64{
	"numbered_bold": 0.85,
	"numbered":      0.75,
	"quoted":        0.7,
	"bulleted":      0.6,
	"sentence":      0.5,
}

// Result is one extraction pass: the surviving candidate items and the
// highest confidence among the strategies that produced them.
type Result struct {
	Items      []model.CandidateItem
	Confidence float64
}

// DetectContentType classifies a chat message by keyword containment,
// checked in precedence order: deliverables, mandatory, rated, general.
func DetectContentType(message string) ContentType {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "deliverable") ||
		strings.Contains(lower, "what should be delivered") ||
		strings.Contains(lower, "suggest deliverables"):
		return ContentDeliverables
	case strings.Contains(lower, "mandatory") ||
		strings.Contains(lower, "required criteria") ||
		strings.Contains(lower, "must have"):
		return ContentMandatory
	case strings.Contains(lower, "rated") ||
		strings.Contains(lower, "scored") ||
		strings.Contains(lower, "evaluation criteria") ||
		strings.Contains(lower, "rating criteria"):
		return ContentRated
	default:
		return ContentGeneral
	}
}

// KindForContentType maps a detected content type to the candidate
// item kind it produces. General yields no extraction.
func KindForContentType(ct ContentType) (model.ItemKind, bool) {
	switch ct {
	case ContentDeliverables:
		return model.KindDeliverable, true
	case ContentMandatory:
		return model.KindMandatory, true
	case ContentRated:
		return model.KindRated, true
	default:
		return "", false
	}
}

// Parse turns a block of text into candidate items of the given kind.
// It never fails: malformed input yields an empty slice.
func Parse(text string, kind model.ItemKind) []model.CandidateItem {
	return ParseWithConfidence(text, kind).Items
}

// ParseWithConfidence runs the strategy chain and reports the
// confidence of the best-matching strategy alongside the items.
func ParseWithConfidence(text string, kind model.ItemKind) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}

	switch kind {
	case model.KindTimeline:
		return extractTimeline(text)
	case model.KindBudget:
		return extractBudget(text)
	}

	var items []model.CandidateItem
	confidence := 0.0

	for _, s := range listStrategies {
		found := s.extract(text, kind)
		if len(found) == 0 {
			continue
		}
		items = append(items, found...)
		if c := strategyConfidence[s.name]; c > confidence {
			confidence = c
		}
	}

	// Sentence fallback only when no structured list matched.
	if len(items) == 0 {
		items = extractSentences(text, kind)
		if len(items) > 0 {
			confidence = strategyConfidence["sentence"]
		}
	}

	items = dedupe(items)
	if len(items) > maxItems {
		items = items[:maxItems]
	}

	for i := range items {
		postprocess(&items[i])
	}

	return Result{Items: items, Confidence: confidence}
}

// dedupe drops items whose name already appeared, case-insensitively.
// The first occurrence wins, preserving discovery order.
func dedupe(items []model.CandidateItem) []model.CandidateItem {
	seen := make(map[string]bool, len(items))
	out := items[:0:0]
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item.Name))
		if key == "" {
			key = strings.ToLower(strings.TrimSpace(item.Description))
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

func newItem(kind model.ItemKind, name, description string) model.CandidateItem {
	return model.CandidateItem{
		ID:          uuid.NewString(),
		Kind:        kind,
		Name:        truncateTitle(name),
		Description: strings.TrimSpace(description),
	}
}
