package advice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hrygo/parentcopilot/store"
)

func testChild() *store.Child {
	return &store.Child{
		ID:              "child-1",
		Name:            "Noa",
		Age:             5,
		Gender:          store.GenderFemale,
		Characteristics: "sensitive to noise",
		ParentingMethod: store.ParentingRespectful,
	}
}

func testSession(description string) *store.Session {
	return &store.Session{
		ID:      "sess-1",
		ChildID: "child-1",
		Context: &store.SessionContext{
			Location:       store.LocationHome,
			Presence:       store.PresenceAlone,
			Physicality:    store.PhysicalityPrivate,
			EmotionalState: store.EmotionalFrustrated,
		},
		Description: description,
	}
}

func TestBuildPrompt(t *testing.T) {
	session := testSession("She refuses to get dressed")
	session.Clarifications = []store.Clarification{{Question: "Does this happen often?", Answer: "Sometimes"}}

	prompt := BuildPrompt("en", testChild(), session)
	for _, want := range []string{
		"- Name: Noa",
		"- Age: 5",
		"- Gender: Girl",
		"- Characteristics: sensitive to noise",
		"- Parenting method: Respectful parenting",
		"- Location: Home",
		"- Presence: Alone",
		"- Privacy: Private",
		"- Parent's emotional state: Frustrated",
		"She refuses to get dressed",
		"Additional clarifications:",
		"- Does this happen often?: Sometimes",
		`"doNow"`,
	} {
		assert.Contains(t, prompt, want)
	}
	assert.NotContains(t, prompt, "Notes")
}

func TestBuildPromptHebrew(t *testing.T) {
	prompt := BuildPrompt("he", testChild(), testSession("היא מסרבת להתלבש"))
	assert.Contains(t, prompt, "- שם: Noa")
	assert.Contains(t, prompt, "- מין: בת")
	assert.Contains(t, prompt, "- מיקום: בית")
	assert.Contains(t, prompt, "- מצב רוח ההורה: מתוסכל")
	assert.NotContains(t, prompt, "הבהרות נוספות")
}

func TestBuildFollowUpPrompt(t *testing.T) {
	history := []store.ConversationTurn{
		{
			Response:  store.AIResponse{DoNow: "Offer two choices", DontDo: "Threaten", SayThis: "Red or blue?"},
			Feedback:  store.FeedbackNotHelped,
			FollowUp:  "She threw both shirts",
			Timestamp: time.Now(),
		},
	}

	prompt := BuildFollowUpPrompt("en", testChild(), testSession("She refuses to get dressed"), history, "Now she is hiding under the bed")
	for _, want := range []string{
		"The parent received advice but it didn't help",
		"Original situation description:",
		"Advice 1:",
		"- What to do: Offer two choices",
		"- What not to do: Threaten",
		"- What to say: Red or blue?",
		"- Parent feedback: She threw both shirts",
		"New feedback from the parent:\nNow she is hiding under the bed",
		"Try a different approach!",
	} {
		assert.Contains(t, prompt, want)
	}
}
