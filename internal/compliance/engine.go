// Package compliance evaluates procurement-fairness rules against an
// intake form snapshot. Evaluation is pure and idempotent: the same
// snapshot always yields the same checks in the same order.
package compliance

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"rfxintake/internal/model"
)

const (
	minPostingDays = 15
	// Example CFTA threshold used by the engine's informational check.
	// The full tiering lives in thresholds.go.
	thresholdCAD = 25000
)

var restrictivePatterns = []struct {
	pattern *regexp.Regexp
	flag    string
}{
	{regexp.MustCompile(`must have \d+ years`), "Experience requirements may be restrictive"},
	{regexp.MustCompile(`only.*certified by`), "Certification requirements may favor specific vendors"},
	{regexp.MustCompile(`proprietary|brand name`), "Possible brand name specification detected"},
	{regexp.MustCompile(`pre-qualified|preferred vendor`), "Vendor preference language detected"},
}

// Evaluate runs the full check battery over the form and aggregates
// the findings. It never fails; a minimal form simply produces fewer
// checks and a score of 100 when nothing ran.
func Evaluate(form *model.IntakeForm) model.ComplianceResult {
	var checks []model.ComplianceCheck

	if form.StartDate != nil && form.EndDate != nil {
		days := int(math.Ceil(form.EndDate.Sub(*form.StartDate).Hours() / 24))
		checks = append(checks, model.ComplianceCheck{
			ID:          "timeline_minimum",
			Name:        "Minimum Timeline Requirements",
			Description: "Project timeline meets minimum procurement posting requirements",
			Type:        severity(days >= minPostingDays, model.CheckCritical),
			Passed:      days >= minPostingDays,
			Details:     fmt.Sprintf("Project duration: %d days. Minimum %d days required for most procurements.", days, minPostingDays),
		})
	}

	if form.EstimatedValue > 0 {
		details := fmt.Sprintf("Value: $%.0f CAD - Below major trade agreement thresholds", form.EstimatedValue)
		if form.EstimatedValue > thresholdCAD {
			details = fmt.Sprintf("Value: $%.0f CAD - Subject to CFTA/CETA obligations", form.EstimatedValue)
		}
		checks = append(checks, model.ComplianceCheck{
			ID:          "trade_agreement_threshold",
			Name:        "Trade Agreement Threshold",
			Description: "Project value and trade agreement obligations",
			Type:        severity(form.EstimatedValue <= thresholdCAD, model.CheckWarning),
			Passed:      true,
			Details:     details,
		})
	}

	mandatoryCount := len(form.Requirements.Mandatory)
	ratedCount := len(form.Requirements.Rated)
	checks = append(checks, model.ComplianceCheck{
		ID:          "evaluation_criteria_balance",
		Name:        "Evaluation Criteria Balance",
		Description: "Appropriate balance between mandatory and rated criteria",
		Type:        severity(mandatoryCount <= ratedCount*2, model.CheckWarning),
		Passed:      mandatoryCount <= ratedCount*2,
		Details:     fmt.Sprintf("%d mandatory, %d rated criteria. Avoid excessive mandatory requirements.", mandatoryCount, ratedCount),
	})

	commodityDetails := "Commodity type not specified - may affect procurement method selection"
	if form.CommodityType != "" {
		commodityDetails = "Classified as: " + form.CommodityType
	}
	checks = append(checks, model.ComplianceCheck{
		ID:          "commodity_classification",
		Name:        "Commodity Classification",
		Description: "Service/goods classification is specified",
		Type:        severity(form.CommodityType != "", model.CheckWarning),
		Passed:      form.CommodityType != "",
		Details:     commodityDetails,
	})

	// Each restrictive pattern that matches produces its own
	// always-failing critical finding.
	combined := combinedContent(form)
	for i, rp := range restrictivePatterns {
		if !rp.pattern.MatchString(combined) {
			continue
		}
		checks = append(checks, model.ComplianceCheck{
			ID:          fmt.Sprintf("restrictive_language_%d", i),
			Name:        "Restrictive Language Check",
			Description: "Content review for potentially restrictive requirements",
			Type:        model.CheckCritical,
			Passed:      false,
			Details:     rp.flag,
		})
	}

	return aggregate(checks)
}

// StatusOf classifies an evaluation for the review workflow.
func StatusOf(result model.ComplianceResult) (model.ComplianceStatus, string) {
	switch {
	case result.CriticalFlags > 0:
		return model.ComplianceCritical, fmt.Sprintf("%d critical issues require immediate attention", result.CriticalFlags)
	case result.OverallScore >= 90:
		return model.ComplianceExcellent, "Excellent compliance - ready for procurement"
	case result.OverallScore >= 75:
		return model.ComplianceGood, "Good compliance with minor recommendations"
	default:
		return model.ComplianceNeedsReview, "Requires review before proceeding"
	}
}

// severity picks info for a passing check and the given failing tier
// otherwise.
func severity(passed bool, failing model.CheckType) model.CheckType {
	if passed {
		return model.CheckInfo
	}
	return failing
}

func combinedContent(form *model.IntakeForm) string {
	deliverables, _ := json.Marshal(form.Deliverables)
	requirements, _ := json.Marshal(form.Requirements)
	parts := []string{form.Background, form.Title, string(deliverables), string(requirements)}
	return strings.ToLower(strings.Join(parts, " "))
}

func aggregate(checks []model.ComplianceCheck) model.ComplianceResult {
	passed, critical, warning := 0, 0, 0
	for _, c := range checks {
		if c.Passed {
			passed++
			continue
		}
		switch c.Type {
		case model.CheckCritical:
			critical++
		case model.CheckWarning:
			warning++
		}
	}

	score := 100.0
	if len(checks) > 0 {
		score = float64(passed) / float64(len(checks)) * 100
	}

	return model.ComplianceResult{
		OverallScore:  math.Round(score*100) / 100,
		TotalChecks:   len(checks),
		PassedChecks:  passed,
		CriticalFlags: critical,
		WarningFlags:  warning,
		Checks:        checks,
	}
}
