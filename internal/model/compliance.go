package model

import "time"

type CheckType string

const (
	CheckCritical CheckType = "critical"
	CheckWarning  CheckType = "warning"
	CheckInfo     CheckType = "info"
)

// ComplianceCheck is one rule evaluated against the form.
type ComplianceCheck struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        CheckType `json:"type"`
	Passed      bool      `json:"passed"`
	Details     string    `json:"details,omitempty"`
}

// ComplianceResult aggregates one evaluation run. Checks keep the
// engine's fixed evaluation order so repeated runs over an unchanged
// form diff cleanly.
type ComplianceResult struct {
	OverallScore  float64           `json:"overallScore"`
	TotalChecks   int               `json:"totalChecks"`
	PassedChecks  int               `json:"passedChecks"`
	CriticalFlags int               `json:"criticalFlags"`
	WarningFlags  int               `json:"warningFlags"`
	Checks        []ComplianceCheck `json:"checks"`
}

type ComplianceStatus string

const (
	ComplianceCritical    ComplianceStatus = "critical"
	ComplianceExcellent   ComplianceStatus = "excellent"
	ComplianceGood        ComplianceStatus = "good"
	ComplianceNeedsReview ComplianceStatus = "needs_review"
)

// ComplianceSnapshot is the cached form of a compliance report.
type ComplianceSnapshot struct {
	FormID      string           `json:"formId"`
	Result      ComplianceResult `json:"result"`
	Status      ComplianceStatus `json:"status"`
	Message     string           `json:"message"`
	EvaluatedAt time.Time        `json:"evaluatedAt"`
}
