package extract

import (
	"regexp"
	"strconv"
	"strings"

	"rfxintake/internal/model"
)

const defaultRatedWeight = 10

var (
	pointsWeightRe  = regexp.MustCompile(`(?i)(\d+)\s*points?`)
	percentWeightRe = regexp.MustCompile(`(?i)weight.*?(\d+)\s*%`)
	durationRe      = regexp.MustCompile(`(?i)(\d+)\s*(days?|weeks?|months?)`)
	amountRe        = regexp.MustCompile(`\$?\d[\d,]*(?:\.\d{2})?`)
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

	timelineSectionRe = regexp.MustCompile(`(?is)(?:timeline|duration|schedule)[:\-\s]+(.+?)(?:\n\n|$)`)
	budgetSectionRe   = regexp.MustCompile(`(?is)(?:budget|cost|price)[:\-\s]+(.+?)(?:\n\n|$)`)
)

// postprocess fills in kind-specific fields after the list strategies
// have produced the item.
func postprocess(item *model.CandidateItem) {
	switch item.Kind {
	case model.KindRated:
		if item.Weight == 0 {
			item.Weight = extractWeight(item.Name + " " + item.Description)
		}
		if item.Scale == "" {
			item.Scale = ScaleChat
		}
	case model.KindTimeline:
		if item.SuggestedDuration == "" {
			item.SuggestedDuration = extractDuration(item.Description)
		}
	case model.KindBudget:
		if item.SuggestedRange == nil {
			item.SuggestedRange = extractRange(item.Description)
		}
	}
}

func extractWeight(text string) int {
	if m := pointsWeightRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if m := percentWeightRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return defaultRatedWeight
}

func extractDuration(text string) string {
	return durationRe.FindString(text)
}

// extractRange pulls dollar amounts out of text. A single amount is
// treated as a ceiling; two or more give a min/max span.
func extractRange(text string) *model.BudgetRange {
	matches := amountRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	amounts := make([]float64, 0, len(matches))
	for _, m := range matches {
		m = strings.NewReplacer("$", "", ",", "").Replace(m)
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			amounts = append(amounts, v)
		}
	}
	if len(amounts) == 0 {
		return nil
	}
	if len(amounts) == 1 {
		return &model.BudgetRange{Max: amounts[0]}
	}

	min, max := amounts[0], amounts[0]
	for _, v := range amounts[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return &model.BudgetRange{Min: min, Max: max}
}

// extractTimeline builds timeline-hint items from labeled sections and
// bare duration mentions.
func extractTimeline(text string) Result {
	var items []model.CandidateItem

	for _, m := range timelineSectionRe.FindAllStringSubmatch(text, -1) {
		section := strings.TrimSpace(m[1])
		if len(section) <= 5 {
			continue
		}
		item := newItem(model.KindTimeline, section, section)
		item.SuggestedDuration = extractDuration(section)
		items = append(items, item)
	}

	if len(items) == 0 {
		if d := extractDuration(text); d != "" {
			item := newItem(model.KindTimeline, d, strings.TrimSpace(text))
			item.SuggestedDuration = d
			items = append(items, item)
		}
	}

	items = dedupe(items)
	if len(items) > maxItems {
		items = items[:maxItems]
	}
	if len(items) == 0 {
		return Result{}
	}
	return Result{Items: items, Confidence: strategyConfidence["bulleted"]}
}

// extractBudget builds budget-hint items from labeled sections and
// bare dollar amounts.
func extractBudget(text string) Result {
	var items []model.CandidateItem

	for _, m := range budgetSectionRe.FindAllStringSubmatch(text, -1) {
		section := strings.TrimSpace(m[1])
		if len(section) <= 3 {
			continue
		}
		r := extractRange(section)
		if r == nil {
			continue
		}
		item := newItem(model.KindBudget, section, section)
		item.SuggestedRange = r
		items = append(items, item)
	}

	if len(items) == 0 {
		if r := extractRange(text); r != nil {
			item := newItem(model.KindBudget, strings.TrimSpace(text), strings.TrimSpace(text))
			item.SuggestedRange = r
			items = append(items, item)
		}
	}

	items = dedupe(items)
	if len(items) > maxItems {
		items = items[:maxItems]
	}
	if len(items) == 0 {
		return Result{}
	}
	return Result{Items: items, Confidence: strategyConfidence["sentence"]}
}

// truncateTitle caps a name at 50 characters, appending an ellipsis
// when it had to cut.
func truncateTitle(name string) string {
	name = strings.TrimSpace(name)
	if len(name) > 50 {
		return name[:47] + "..."
	}
	return name
}
