package model

import (
	"encoding/json"
	"time"
)

// ItemKind tags a candidate item with the form section it belongs to.
type ItemKind string

const (
	KindDeliverable ItemKind = "deliverable"
	KindMandatory   ItemKind = "mandatory"
	KindRated       ItemKind = "rated"
	KindTimeline    ItemKind = "timeline"
	KindBudget      ItemKind = "budget"
)

// BudgetRange is an extracted budget hint. A single amount in the
// source text populates Max only.
type BudgetRange struct {
	Min float64 `json:"min,omitempty" bson:"min,omitempty"`
	Max float64 `json:"max,omitempty" bson:"max,omitempty"`
}

// CandidateItem is an unconfirmed extraction result. Kind-specific
// fields are only populated when the tag matches: Weight and Scale for
// rated criteria, SuggestedDuration for timeline hints, SuggestedRange
// for budget hints.
type CandidateItem struct {
	ID                string       `json:"id" bson:"id"`
	Kind              ItemKind     `json:"kind" bson:"kind"`
	Name              string       `json:"name" bson:"name"`
	Description       string       `json:"description,omitempty" bson:"description,omitempty"`
	Weight            int          `json:"weight,omitempty" bson:"weight,omitempty"`
	Scale             string       `json:"scale,omitempty" bson:"scale,omitempty"`
	SuggestedDuration string       `json:"suggestedDuration,omitempty" bson:"suggestedDuration,omitempty"`
	SuggestedRange    *BudgetRange `json:"suggestedRange,omitempty" bson:"suggestedRange,omitempty"`
}

// SectionType identifies the form section a suggestion targets.
type SectionType string

const (
	SectionDeliverables      SectionType = "deliverables"
	SectionMandatoryCriteria SectionType = "mandatory_criteria"
	SectionRatedCriteria     SectionType = "rated_criteria"
	SectionTimeline          SectionType = "timeline"
	SectionBudget            SectionType = "budget"
)

// SectionForKind maps a candidate item kind to its form section.
func SectionForKind(kind ItemKind) SectionType {
	switch kind {
	case KindMandatory:
		return SectionMandatoryCriteria
	case KindRated:
		return SectionRatedCriteria
	case KindTimeline:
		return SectionTimeline
	case KindBudget:
		return SectionBudget
	default:
		return SectionDeliverables
	}
}

type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionAccepted SuggestionStatus = "accepted"
	SuggestionRejected SuggestionStatus = "rejected"
	SuggestionModified SuggestionStatus = "modified"
)

// Suggestion is a persisted, reviewable wrapper around extracted
// candidate items. A non-pending suggestion is immutable; there is no
// transition back to pending.
type Suggestion struct {
	ID              string           `json:"id" bson:"_id,omitempty"`
	FormID          string           `json:"formId" bson:"formId"`
	UserID          string           `json:"userId" bson:"userId"`
	SectionType     SectionType      `json:"sectionType" bson:"sectionType"`
	Content         json.RawMessage  `json:"content" bson:"content"`
	ConfidenceScore float64          `json:"confidenceScore,omitempty" bson:"confidenceScore,omitempty"`
	SourceMessageID string           `json:"sourceMessageId,omitempty" bson:"sourceMessageId,omitempty"`
	Status          SuggestionStatus `json:"status" bson:"status"`
	ModifiedContent json.RawMessage  `json:"modifiedContent,omitempty" bson:"modifiedContent,omitempty"`
	CreatedAt       time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt" bson:"updatedAt"`
	AcceptedAt      *time.Time       `json:"acceptedAt,omitempty" bson:"acceptedAt,omitempty"`
}

// EvaluationCriterion is the audit-trail record written when a
// criterion lands on a form, tracking whether it came from the user or
// an accepted AI suggestion.
type EvaluationCriterion struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	FormID       string    `json:"formId" bson:"formId"`
	UserID       string    `json:"userId" bson:"userId"`
	Type         string    `json:"type" bson:"type"` // "mandatory" or "rated"
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	Weight       int       `json:"weight,omitempty" bson:"weight,omitempty"`
	Source       string    `json:"source" bson:"source"` // "user", "ai_suggested", "ai_accepted"
	SuggestionID string    `json:"suggestionId,omitempty" bson:"suggestionId,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}
