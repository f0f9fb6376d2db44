package extract

import (
	"regexp"
	"strings"

	"rfxintake/internal/model"
)

// listStrategy is one pattern-based extraction pass. Strategies are
// independent; the parser merges their output and dedupes by name.
type listStrategy struct {
	name    string
	extract func(text string, kind model.ItemKind) []model.CandidateItem
}

// Applied in precedence order. The sentence fallback is separate
// because it only runs when every list strategy came up empty.
var listStrategies = []listStrategy{
	{name: "numbered_bold", extract: extractNumberedBold},
	{name: "numbered", extract: extractNumbered},
	{name: "bulleted", extract: extractBulleted},
	{name: "quoted", extract: extractQuoted},
}

var (
	numberedBoldStartRe = regexp.MustCompile(`(?m)^[ \t]*\d+\.\s*\*\*`)
	numberedStartRe     = regexp.MustCompile(`(?m)^[ \t]*\d+\.\s+`)
	numberPrefixRe      = regexp.MustCompile(`^[ \t]*\d+\.\s*`)
	boldTitleRe         = regexp.MustCompile(`^\*\*(.+?)\*\*`)
	boldLabelRe         = regexp.MustCompile(`\*\*([^*]+?)\*\*:\s*`)
	bulletLineRe        = regexp.MustCompile(`(?m)^[ \t]*[-•*]\s+(.+)$`)
	bulletPrefixRe      = regexp.MustCompile(`^[-•*]\s*`)
	doubleQuotedRe      = regexp.MustCompile(`"([^"\n]{4,})"`)
	singleQuotedRe      = regexp.MustCompile(`'([^'\n]{4,})'`)
)

var deliverableKeywords = []string{
	"report", "document", "analysis", "plan", "strategy", "design",
	"system", "application", "website", "platform", "solution",
	"implementation", "training", "support", "maintenance",
}

// sentenceKeywords drive the fallback scan when no structured list is
// present.
var sentenceKeywords = map[model.ItemKind][]string{
	model.KindDeliverable: {"report", "document", "presentation", "analysis", "deliverable"},
	model.KindMandatory:   {"must", "required", "certification", "experience", "qualification"},
	model.KindRated:       {"approach", "quality", "experience", "performance", "methodology"},
}

// extractNumberedBold handles the structured-output convention the
// assistant is prompted to follow: "N. **Title**" followed by the
// description on the same and subsequent lines until the next item.
func extractNumberedBold(text string, kind model.ItemKind) []model.CandidateItem {
	blocks := splitBlocks(text, numberedBoldStartRe)
	var items []model.CandidateItem

	for _, block := range blocks {
		block = numberPrefixRe.ReplaceAllString(block, "")
		lines := nonEmptyLines(block)
		if len(lines) == 0 {
			continue
		}

		m := boldTitleRe.FindStringSubmatch(lines[0])
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])

		rest := strings.TrimSpace(boldTitleRe.ReplaceAllString(lines[0], ""))
		parts := make([]string, 0, len(lines))
		if rest != "" {
			parts = append(parts, rest)
		}
		parts = append(parts, lines[1:]...)
		description := normalizeDescription(strings.Join(parts, " "))

		items = append(items, newItem(kind, name, description))
	}
	return items
}

// extractNumbered handles plain numbered lists without bold titles.
func extractNumbered(text string, kind model.ItemKind) []model.CandidateItem {
	blocks := splitBlocks(text, numberedStartRe)
	var items []model.CandidateItem

	for _, block := range blocks {
		block = strings.TrimSpace(numberPrefixRe.ReplaceAllString(block, ""))
		if block == "" || strings.HasPrefix(block, "**") {
			// Bold-titled items belong to the higher-precedence strategy.
			continue
		}
		body := strings.Join(nonEmptyLines(block), " ")
		name, description := splitTitle(body)
		items = append(items, newItem(kind, name, description))
	}
	return items
}

// extractBulleted handles "-", "•" and "*" lists. Without an explicit
// "deliverable" trigger word in the surrounding text, deliverable
// bullets must carry a domain keyword to survive; this keeps generic
// prose bullets out of the results.
func extractBulleted(text string, kind model.ItemKind) []model.CandidateItem {
	hasTrigger := strings.Contains(strings.ToLower(text), "deliverable")
	var items []model.CandidateItem

	for _, m := range bulletLineRe.FindAllStringSubmatch(text, -1) {
		line := strings.TrimSpace(m[1])
		if len(line) <= 3 {
			continue
		}
		if kind == model.KindDeliverable && !hasTrigger && !containsAny(line, deliverableKeywords) {
			continue
		}
		name, description := splitTitle(line)
		items = append(items, newItem(kind, name, description))
	}
	return items
}

// extractQuoted picks up items the user names verbatim, e.g.
// "Final report", "Training sessions".
func extractQuoted(text string, kind model.ItemKind) []model.CandidateItem {
	var items []model.CandidateItem
	for _, re := range []*regexp.Regexp{doubleQuotedRe, singleQuotedRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			phrase := strings.TrimSpace(m[1])
			if len(phrase) < 4 {
				continue
			}
			items = append(items, newItem(kind, phrase, ""))
		}
	}
	return items
}

// extractSentences is the last-resort scan: sentences carrying a
// domain keyword become items, at most five.
func extractSentences(text string, kind model.ItemKind) []model.CandidateItem {
	keywords := sentenceKeywords[kind]
	if len(keywords) == 0 {
		return nil
	}

	var items []model.CandidateItem
	for _, sentence := range splitSentences(text) {
		if len(items) >= 5 {
			break
		}
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 20 || !containsAny(sentence, keywords) {
			continue
		}
		name := sentence
		if len(name) > 50 {
			name = name[:50] + "..."
		}
		item := newItem(kind, "", sentence)
		item.Name = name
		items = append(items, item)
	}
	return items
}

// splitBlocks slices text into chunks starting at each match of the
// item-start pattern and running until the next match or end of text.
func splitBlocks(text string, startRe *regexp.Regexp) []string {
	starts := startRe.FindAllStringIndex(text, -1)
	blocks := make([]string, 0, len(starts))
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		blocks = append(blocks, strings.TrimSpace(text[loc[0]:end]))
	}
	return blocks
}

func nonEmptyLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// normalizeDescription strips leading bullet markers and rewrites
// "**Label**:" sequences as "Label: ".
func normalizeDescription(s string) string {
	s = bulletPrefixRe.ReplaceAllString(s, "")
	s = boldLabelRe.ReplaceAllString(s, "$1: ")
	return strings.TrimSpace(s)
}

// splitTitle takes the first sentence (or first 50 characters,
// whichever is shorter) as the title and leaves the rest as the
// description.
func splitTitle(text string) (name, description string) {
	sentences := splitSentences(text)
	first := text
	if len(sentences) > 0 {
		first = strings.TrimSpace(sentences[0])
	}
	if len(first) > 50 {
		return text[:47] + "...", text
	}
	rest := strings.TrimSpace(strings.TrimPrefix(text, sentences[0]))
	rest = strings.TrimLeft(rest, ".!? ")
	return first, rest
}

func splitSentences(text string) []string {
	return sentenceSplitRe.Split(text, -1)
}

func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
