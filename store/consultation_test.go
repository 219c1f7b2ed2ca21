package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func completeContext() SessionContext {
	return SessionContext{
		Location:       LocationHome,
		Presence:       PresenceAlone,
		Physicality:    PhysicalityPrivate,
		EmotionalState: EmotionalFrustrated,
	}
}

func TestSessionContext_IsComplete(t *testing.T) {
	assert.True(t, completeContext().IsComplete())

	tests := []struct {
		name   string
		mutate func(*SessionContext)
	}{
		{"missing location", func(c *SessionContext) { c.Location = "" }},
		{"missing presence", func(c *SessionContext) { c.Presence = "" }},
		{"missing physicality", func(c *SessionContext) { c.Physicality = "" }},
		{"missing emotional state", func(c *SessionContext) { c.EmotionalState = "" }},
		{"unknown location", func(c *SessionContext) { c.Location = "moon" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := completeContext()
			tt.mutate(&c)
			assert.False(t, c.IsComplete())
		})
	}
}

func TestAIResponse_Validate(t *testing.T) {
	assert.NoError(t, AIResponse{DoNow: "a", DontDo: "b", SayThis: "c"}.Validate())
	assert.Error(t, AIResponse{DontDo: "b", SayThis: "c"}.Validate())
	assert.Error(t, AIResponse{DoNow: "a", DontDo: "  ", SayThis: "c"}.Validate())
	assert.Error(t, AIResponse{DoNow: "a", DontDo: "b"}.Validate())
}

func TestSession_IsReadyForResponse(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.IsReadyForResponse())

	ctx := completeContext()
	s := &Session{ID: "s", ChildID: "c", Context: &ctx, Description: "refuses to eat dinner"}
	assert.True(t, s.IsReadyForResponse())

	s.Description = "   "
	assert.False(t, s.IsReadyForResponse())
}

func TestUpdateChild_Apply(t *testing.T) {
	c := Child{ID: "1", Name: "Noa", Age: 5, Characteristics: "energetic"}
	name := "Noa B"
	method := ParentingMontessori
	UpdateChild{Name: &name, ParentingMethod: &method}.Apply(&c)

	assert.Equal(t, Child{ID: "1", Name: "Noa B", Age: 5, Characteristics: "energetic", ParentingMethod: ParentingMontessori}, c)
}
