package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfxintake/internal/model"
)

func baseForm() *model.IntakeForm {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 2, 0)
	return &model.IntakeForm{
		Title:          "Network Upgrade Services",
		Background:     "Upgrade of the regional office network infrastructure.",
		CommodityType:  "IT Services",
		StartDate:      &start,
		EndDate:        &end,
		EstimatedValue: 15000,
		Requirements: model.Requirements{
			Mandatory: []model.Requirement{
				{Name: "Insurance coverage", Type: "mandatory"},
			},
			Rated: []model.Requirement{
				{Name: "Approach", Type: "rated", Weight: 30},
				{Name: "Experience", Type: "rated", Weight: 30},
			},
			PriceWeight: 40,
		},
	}
}

func TestEvaluateCleanForm(t *testing.T) {
	result := Evaluate(baseForm())

	assert.Equal(t, 4, result.TotalChecks)
	assert.Equal(t, 4, result.PassedChecks)
	assert.Equal(t, 100.0, result.OverallScore)
	assert.Zero(t, result.CriticalFlags)
	assert.Zero(t, result.WarningFlags)

	for _, c := range result.Checks {
		assert.Equal(t, model.CheckInfo, c.Type, "check %s", c.ID)
	}
}

func TestEvaluateShortTimelineFailsCritical(t *testing.T) {
	form := baseForm()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 10)
	form.StartDate = &start
	form.EndDate = &end

	result := Evaluate(form)

	require.Equal(t, 4, result.TotalChecks)
	assert.Equal(t, 1, result.CriticalFlags)

	timeline := result.Checks[0]
	assert.Equal(t, "timeline_minimum", timeline.ID)
	assert.False(t, timeline.Passed)
	assert.Equal(t, model.CheckCritical, timeline.Type)
	assert.Contains(t, timeline.Details, "10 days")
	assert.Equal(t, 75.0, result.OverallScore)
}

func TestEvaluateSkipsTimelineWithoutDates(t *testing.T) {
	form := baseForm()
	form.EndDate = nil

	result := Evaluate(form)

	assert.Equal(t, 3, result.TotalChecks)
	for _, c := range result.Checks {
		assert.NotEqual(t, "timeline_minimum", c.ID)
	}
}

func TestEvaluateTradeThresholdWarningAboveCutoff(t *testing.T) {
	form := baseForm()
	form.EstimatedValue = 95000

	result := Evaluate(form)

	var trade *model.ComplianceCheck
	for i := range result.Checks {
		if result.Checks[i].ID == "trade_agreement_threshold" {
			trade = &result.Checks[i]
		}
	}
	require.NotNil(t, trade)
	// Above the cutoff the check still passes but is tagged as a
	// warning so reviewers notice the obligations.
	assert.True(t, trade.Passed)
	assert.Equal(t, model.CheckWarning, trade.Type)
	assert.Contains(t, trade.Details, "CFTA/CETA")
}

func TestEvaluateSkipsTradeCheckWithoutValue(t *testing.T) {
	form := baseForm()
	form.EstimatedValue = 0

	result := Evaluate(form)
	assert.Equal(t, 3, result.TotalChecks)
}

func TestEvaluateCriteriaBalance(t *testing.T) {
	form := baseForm()
	form.Requirements.Mandatory = []model.Requirement{
		{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}, {Name: "E"},
	}

	result := Evaluate(form)

	var balance *model.ComplianceCheck
	for i := range result.Checks {
		if result.Checks[i].ID == "evaluation_criteria_balance" {
			balance = &result.Checks[i]
		}
	}
	require.NotNil(t, balance)
	assert.False(t, balance.Passed)
	assert.Equal(t, model.CheckWarning, balance.Type)
	assert.Contains(t, balance.Details, "5 mandatory, 2 rated")
}

func TestEvaluateRestrictiveLanguagePerMatch(t *testing.T) {
	form := baseForm()
	form.Background = "Bidders must have 15 years in business and offer a proprietary solution. Only firms certified by VendorCorp qualify."

	result := Evaluate(form)

	var restrictive []model.ComplianceCheck
	for _, c := range result.Checks {
		if c.Name == "Restrictive Language Check" {
			restrictive = append(restrictive, c)
		}
	}

	require.Len(t, restrictive, 3)
	for _, c := range restrictive {
		assert.False(t, c.Passed)
		assert.Equal(t, model.CheckCritical, c.Type)
	}
	assert.Equal(t, "Experience requirements may be restrictive", restrictive[0].Details)
	assert.Equal(t, "Certification requirements may favor specific vendors", restrictive[1].Details)
	assert.Equal(t, "Possible brand name specification detected", restrictive[2].Details)
	assert.Equal(t, 3, result.CriticalFlags)
}

func TestEvaluateEmptyFormScoresHundred(t *testing.T) {
	result := Evaluate(&model.IntakeForm{CommodityType: "Goods"})

	// Only the always-on checks run on a minimal form.
	assert.Equal(t, 2, result.TotalChecks)
	assert.Equal(t, 100.0, result.OverallScore)
}

func TestEvaluateDeterministicOrder(t *testing.T) {
	form := baseForm()
	form.Background = "Only pre-qualified bidders with a proprietary platform."

	first := Evaluate(form)
	second := Evaluate(form)

	require.Equal(t, len(first.Checks), len(second.Checks))
	for i := range first.Checks {
		assert.Equal(t, first.Checks[i].ID, second.Checks[i].ID)
	}
}

func TestStatusOf(t *testing.T) {
	status, msg := StatusOf(model.ComplianceResult{CriticalFlags: 2, OverallScore: 95})
	assert.Equal(t, model.ComplianceCritical, status)
	assert.Contains(t, msg, "2 critical issues")

	status, _ = StatusOf(model.ComplianceResult{OverallScore: 92})
	assert.Equal(t, model.ComplianceExcellent, status)

	status, _ = StatusOf(model.ComplianceResult{OverallScore: 80})
	assert.Equal(t, model.ComplianceGood, status)

	status, msg = StatusOf(model.ComplianceResult{OverallScore: 60})
	assert.Equal(t, model.ComplianceNeedsReview, status)
	assert.Equal(t, "Requires review before proceeding", msg)
}
