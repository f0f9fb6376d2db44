package model

import "time"

// ChatMessage is one turn of the scope-development conversation.
type ChatMessage struct {
	ID        string    `json:"id" bson:"id"`
	Role      string    `json:"role" bson:"role"` // "user", "assistant", "system"
	Content   string    `json:"content" bson:"content"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// AssistantReply is what the chat pipeline hands back to the UI:
// the reply text, quick-reply chips, inline compliance flags, and any
// structured items extracted from the exchange.
type AssistantReply struct {
	Response        string          `json:"response"`
	Suggestions     []string        `json:"suggestions,omitempty"`
	ComplianceFlags []string        `json:"complianceFlags,omitempty"`
	ExtractedItems  []CandidateItem `json:"extractedItems,omitempty"`
	Fallback        bool            `json:"fallback,omitempty"`
}
