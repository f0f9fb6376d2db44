package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfxintake/internal/model"
)

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		message string
		want    ContentType
	}{
		{"Can you suggest deliverables for this project?", ContentDeliverables},
		{"What mandatory criteria should we include?", ContentMandatory},
		{"Vendors must have a valid license", ContentMandatory},
		{"Help me with the evaluation criteria", ContentRated},
		{"How should proposals be scored?", ContentRated},
		{"Tell me about trade agreements", ContentGeneral},
		// Deliverables win when several keywords appear.
		{"Suggest deliverables and rated criteria", ContentDeliverables},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectContentType(tt.message), "message: %s", tt.message)
	}
}

func TestParseNumberedBold(t *testing.T) {
	text := `Here are the suggested deliverables:

1. **Monthly Status Reports** - Progress summaries covering milestones and risks.
2. **Training Materials** - Guides and videos prepared for end users.`

	result := ParseWithConfidence(text, model.KindDeliverable)

	require.Len(t, result.Items, 2)
	assert.Equal(t, 0.85, result.Confidence)

	assert.Equal(t, "Monthly Status Reports", result.Items[0].Name)
	assert.Equal(t, "Progress summaries covering milestones and risks.", result.Items[0].Description)
	assert.Equal(t, model.KindDeliverable, result.Items[0].Kind)
	assert.NotEmpty(t, result.Items[0].ID)

	assert.Equal(t, "Training Materials", result.Items[1].Name)
}

func TestParseNumberedBoldMultilineDescription(t *testing.T) {
	text := `1. **Implementation Roadmap**
A phased rollout plan for the new system.
Includes milestones for each regional office.`

	items := Parse(text, model.KindDeliverable)

	require.Len(t, items, 1)
	assert.Equal(t, "Implementation Roadmap", items[0].Name)
	assert.Equal(t, "A phased rollout plan for the new system. Includes milestones for each regional office.", items[0].Description)
}

func TestParsePlainNumbered(t *testing.T) {
	text := `1. Security audit of the existing platform
2. Migration support during cutover`

	result := ParseWithConfidence(text, model.KindDeliverable)

	require.Len(t, result.Items, 2)
	assert.Equal(t, 0.75, result.Confidence)
	assert.Equal(t, "Security audit of the existing platform", result.Items[0].Name)
	assert.Equal(t, "Migration support during cutover", result.Items[1].Name)
}

func TestParseQuoted(t *testing.T) {
	text := `We need "Final report" and "Training sessions" delivered before closeout.`

	result := ParseWithConfidence(text, model.KindDeliverable)

	require.Len(t, result.Items, 2)
	assert.Equal(t, 0.7, result.Confidence)
	assert.Equal(t, "Final report", result.Items[0].Name)
	assert.Equal(t, "Training sessions", result.Items[1].Name)
}

func TestParseBulletedKeywordFilter(t *testing.T) {
	text := `- Implementation plan for the rollout
- Nice weather expected all week`

	items := Parse(text, model.KindDeliverable)

	// The second bullet carries no domain keyword and the text never
	// mentions deliverables, so it is dropped.
	require.Len(t, items, 1)
	assert.Equal(t, "Implementation plan for the rollout", items[0].Name)
}

func TestParseBulletedNoFilterForCriteria(t *testing.T) {
	text := `- Valid security clearance held by all staff
- Office located within the region`

	items := Parse(text, model.KindMandatory)
	assert.Len(t, items, 2)
}

func TestParseDedupeCaseInsensitive(t *testing.T) {
	text := `1. **Final Report** - Summary document.
2. **final report** - Duplicate entry with different casing.`

	items := Parse(text, model.KindDeliverable)

	require.Len(t, items, 1)
	assert.Equal(t, "Final Report", items[0].Name)
	assert.Equal(t, "Summary document.", items[0].Description)
}

func TestParseCapsItemCount(t *testing.T) {
	text := ""
	for i := 0; i < 12; i++ {
		text += "1. **Deliverable " + string(rune('A'+i)) + "** - Item description.\n"
	}

	items := Parse(text, model.KindDeliverable)
	assert.Len(t, items, 8)
}

func TestParseSentenceFallback(t *testing.T) {
	text := "We will need a detailed analysis of the current infrastructure before anything else. Thanks."

	result := ParseWithConfidence(text, model.KindDeliverable)

	require.Len(t, result.Items, 1)
	assert.Equal(t, 0.5, result.Confidence)
	assert.Contains(t, result.Items[0].Description, "detailed analysis")
	assert.LessOrEqual(t, len(result.Items[0].Name), 53)
}

func TestParseEmptyInput(t *testing.T) {
	result := ParseWithConfidence("   \n\t ", model.KindDeliverable)
	assert.Empty(t, result.Items)
	assert.Zero(t, result.Confidence)
}

func TestRatedWeightExtraction(t *testing.T) {
	text := `1. **Technical Approach** - Methodology quality, worth 25 points.
2. **Team Experience** - Relevant background of proposed staff.`

	items := Parse(text, model.KindRated)

	require.Len(t, items, 2)
	assert.Equal(t, 25, items[0].Weight)
	assert.Equal(t, ScaleChat, items[0].Scale)
	// No explicit points mentioned: default weight applies.
	assert.Equal(t, 10, items[1].Weight)
	assert.Equal(t, ScaleChat, items[1].Scale)
}

func TestRatedWeightFromPercent(t *testing.T) {
	assert.Equal(t, 30, extractWeight("Proposed approach with a weight of 30%"))
}

func TestTimelineExtraction(t *testing.T) {
	result := ParseWithConfidence("Timeline: 12 weeks from kickoff to final delivery", model.KindTimeline)

	require.Len(t, result.Items, 1)
	assert.Equal(t, 0.6, result.Confidence)
	assert.Equal(t, model.KindTimeline, result.Items[0].Kind)
	assert.Equal(t, "12 weeks", result.Items[0].SuggestedDuration)
}

func TestTimelineBareDurationFallback(t *testing.T) {
	result := ParseWithConfidence("We expect everything wrapped up within 6 months", model.KindTimeline)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "6 months", result.Items[0].SuggestedDuration)
}

func TestBudgetRangeExtraction(t *testing.T) {
	result := ParseWithConfidence("Budget: $50,000 to $75,000 depending on scope", model.KindBudget)

	require.Len(t, result.Items, 1)
	assert.Equal(t, 0.5, result.Confidence)
	require.NotNil(t, result.Items[0].SuggestedRange)
	assert.Equal(t, 50000.0, result.Items[0].SuggestedRange.Min)
	assert.Equal(t, 75000.0, result.Items[0].SuggestedRange.Max)
}

func TestBudgetSingleAmountIsCeiling(t *testing.T) {
	result := ParseWithConfidence("We have roughly $20,000 available", model.KindBudget)

	require.Len(t, result.Items, 1)
	require.NotNil(t, result.Items[0].SuggestedRange)
	assert.Zero(t, result.Items[0].SuggestedRange.Min)
	assert.Equal(t, 20000.0, result.Items[0].SuggestedRange.Max)
}

func TestTruncateTitle(t *testing.T) {
	long := "This deliverable name is far too long to display in the summary list view"
	got := truncateTitle(long)
	assert.Len(t, got, 50)
	assert.Equal(t, "...", got[47:])

	assert.Equal(t, "Short name", truncateTitle("  Short name  "))
}
