package model

import "time"

type FormStatus string

const (
	FormDraft      FormStatus = "draft"
	FormInProgress FormStatus = "in_progress"
	FormSubmitted  FormStatus = "submitted"
	FormInReview   FormStatus = "in_review"
	FormApproved   FormStatus = "approved"
	FormRejected   FormStatus = "rejected"
)

type BudgetTolerance string

const (
	BudgetSensitive BudgetTolerance = "sensitive"
	BudgetModerate  BudgetTolerance = "moderate"
	BudgetFlexible  BudgetTolerance = "flexible"
)

// Deliverable is a confirmed output item on the form. AI-suggested
// deliverables start unselected until the user confirms them.
type Deliverable struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
	Selected    bool   `json:"selected" bson:"selected"`
}

// Requirement is a confirmed evaluation criterion. Weight and Scale
// apply to rated criteria only.
type Requirement struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
	Type        string `json:"type" bson:"type"` // "mandatory" or "rated"
	Weight      int    `json:"weight,omitempty" bson:"weight,omitempty"`
	Scale       string `json:"scale,omitempty" bson:"scale,omitempty"`
}

// Requirements groups the form's evaluation criteria. The target state
// is sum(rated weights) + PriceWeight == 100, though transient drift
// is tolerated while the user edits.
type Requirements struct {
	Mandatory   []Requirement `json:"mandatory" bson:"mandatory"`
	Rated       []Requirement `json:"rated" bson:"rated"`
	PriceWeight int           `json:"priceWeight" bson:"priceWeight"`
}

// IntakeForm is the RFx intake form snapshot the core operates on.
type IntakeForm struct {
	ID              string          `json:"id" bson:"_id,omitempty"`
	UserID          string          `json:"userId" bson:"userId"`
	Title           string          `json:"title" bson:"title"`
	Background      string          `json:"background" bson:"background"`
	CommodityType   string          `json:"commodityType" bson:"commodityType"`
	StartDate       *time.Time      `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate         *time.Time      `json:"endDate,omitempty" bson:"endDate,omitempty"`
	BudgetTolerance BudgetTolerance `json:"budgetTolerance,omitempty" bson:"budgetTolerance,omitempty"`
	EstimatedValue  float64         `json:"estimatedValue,omitempty" bson:"estimatedValue,omitempty"`
	Status          FormStatus      `json:"status" bson:"status"`
	Deliverables    []Deliverable   `json:"deliverables" bson:"deliverables"`
	Requirements    Requirements    `json:"requirements" bson:"requirements"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// ValidationResult collects form validation findings; field problems
// are reported as messages rather than errors so live-typing UIs can
// validate on every change.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}
