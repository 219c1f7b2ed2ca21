package store

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Location string

const (
	LocationHome       Location = "home"
	LocationStreet     Location = "street"
	LocationCar        Location = "car"
	LocationMall       Location = "mall"
	LocationRestaurant Location = "restaurant"
)

var Locations = []Location{LocationHome, LocationStreet, LocationCar, LocationMall, LocationRestaurant}

type Presence string

const (
	PresenceAlone       Presence = "alone"
	PresenceSpouse      Presence = "spouse"
	PresenceOtherAdults Presence = "other_adults"
	PresenceStrangers   Presence = "strangers"
)

var Presences = []Presence{PresenceAlone, PresenceSpouse, PresenceOtherAdults, PresenceStrangers}

type Physicality string

const (
	PhysicalityPrivate Physicality = "private"
	PhysicalityPublic  Physicality = "public"
)

var Physicalities = []Physicality{PhysicalityPrivate, PhysicalityPublic}

type EmotionalState string

const (
	EmotionalCalm       EmotionalState = "calm"
	EmotionalFrustrated EmotionalState = "frustrated"
	EmotionalAngry      EmotionalState = "angry"
	EmotionalAnxious    EmotionalState = "anxious"
)

var EmotionalStates = []EmotionalState{EmotionalCalm, EmotionalFrustrated, EmotionalAngry, EmotionalAnxious}

func oneOf[T comparable](v T, set []T) bool {
	for _, candidate := range set {
		if v == candidate {
			return true
		}
	}
	return false
}

func (l Location) IsValid() bool       { return oneOf(l, Locations) }
func (p Presence) IsValid() bool       { return oneOf(p, Presences) }
func (p Physicality) IsValid() bool    { return oneOf(p, Physicalities) }
func (e EmotionalState) IsValid() bool { return oneOf(e, EmotionalStates) }

// SessionContext is the four-field situational snapshot.
// An empty field means the user has not selected it yet.
type SessionContext struct {
	Location       Location       `json:"location,omitempty"`
	Presence       Presence       `json:"presence,omitempty"`
	Physicality    Physicality    `json:"physicality,omitempty"`
	EmotionalState EmotionalState `json:"emotionalState,omitempty"`
}

// IsComplete reports whether all four fields hold a known value.
func (c SessionContext) IsComplete() bool {
	return c.Location.IsValid() && c.Presence.IsValid() && c.Physicality.IsValid() && c.EmotionalState.IsValid()
}

// Clarification is an answered follow-up question.
type Clarification struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AIResponse is the three-part advice unit.
type AIResponse struct {
	DoNow   string `json:"doNow"`
	DontDo  string `json:"dontDo"`
	SayThis string `json:"sayThis"`
}

// Validate rejects responses with any missing or blank field.
func (r AIResponse) Validate() error {
	switch {
	case strings.TrimSpace(r.DoNow) == "":
		return errors.New("doNow is empty")
	case strings.TrimSpace(r.DontDo) == "":
		return errors.New("dontDo is empty")
	case strings.TrimSpace(r.SayThis) == "":
		return errors.New("sayThis is empty")
	}
	return nil
}

// Feedback is the user's verdict on one piece of advice.
type Feedback string

const (
	FeedbackHelped    Feedback = "helped"
	FeedbackNotHelped Feedback = "not_helped"
)

// ConversationTurn is one round of advice plus the user's reaction.
type ConversationTurn struct {
	Response  AIResponse `json:"response"`
	Feedback  Feedback   `json:"feedback,omitempty"`
	FollowUp  string     `json:"followUp,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// Session is the in-progress wizard working document.
// ConversationHistory lives only in memory; the persisted record of a
// consultation is its CompletedInteraction.
type Session struct {
	ID                  string             `json:"id"`
	ChildID             string             `json:"childId,omitempty"`
	Context             *SessionContext    `json:"context,omitempty"`
	Description         string             `json:"description,omitempty"`
	Clarifications      []Clarification    `json:"clarifications,omitempty"`
	ConversationHistory []ConversationTurn `json:"-"`
	StartedAt           time.Time          `json:"startedAt"`
}

// IsReadyForResponse reports whether every precondition of the response step holds.
func (s *Session) IsReadyForResponse() bool {
	return s != nil && s.ChildID != "" && s.Context != nil && s.Context.IsComplete() && strings.TrimSpace(s.Description) != ""
}
