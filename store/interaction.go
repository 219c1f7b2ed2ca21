package store

import "time"

// CompletedInteraction is the durable record of one finished consultation.
// SessionID ties the record to the working session it closed; the log keeps
// at most one record per session.
type CompletedInteraction struct {
	ID             string             `json:"id"`
	SessionID      string             `json:"sessionId"`
	Timestamp      time.Time          `json:"timestamp"`
	ChildID        string             `json:"childId"`
	Context        SessionContext     `json:"context"`
	Description    string             `json:"description"`
	Clarifications []Clarification    `json:"clarifications"`
	Responses      []ConversationTurn `json:"responses"`
	Resolved       bool               `json:"resolved"`
}

// FindInteraction specifies the conditions for listing interactions.
type FindInteraction struct {
	// Day selects interactions whose timestamp falls on the same calendar day
	// as Day in Location. Zero means any day.
	Day      time.Time
	Location *time.Location
	ChildID  string
}
