// Package clarify selects the follow-up questions asked before advice is generated.
package clarify

import (
	"strings"
	"unicode/utf8"

	"github.com/hrygo/parentcopilot/store"
)

// Kind identifies a clarification question independent of its wording.
type Kind string

const (
	KindTellMore         Kind = "tell_more"
	KindExternalPressure Kind = "external_pressure"
	KindFrequency        Kind = "frequency"
)

const (
	// MaxQuestions caps the number of questions asked per session.
	MaxQuestions = 3
	// ShortDescriptionLength is the trimmed length below which more detail is requested.
	ShortDescriptionLength = 30
)

// Question is one clarification prompt in the requested language.
type Question struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

var questionText = map[string]map[Kind]string{
	"he": {
		KindTellMore:         "תוכל/י לספר עוד על מה שקרה?",
		KindExternalPressure: "האם יש לחץ חיצוני מהסביבה?",
		KindFrequency:        "זה קורה הרבה או שזו הפעם הראשונה?",
	},
	"en": {
		KindTellMore:         "Can you tell me more about what happened?",
		KindExternalPressure: "Is there external pressure from the environment?",
		KindFrequency:        "Does this happen often or is it the first time?",
	},
}

// QuickAnswers are the one-tap replies offered for every question.
var QuickAnswers = map[string][]string{
	"he": {"כן", "לא", "לפעמים", "לא בטוח"},
	"en": {"Yes", "No", "Sometimes", "Not sure"},
}

// frequencyMarkers flag a description as possibly describing a first occurrence.
var frequencyMarkers = []string{
	"first time",
	"new",
	"פעם ראשונה",
	"לראשונה",
	"חדש",
}

// Select returns up to MaxQuestions questions for the description and context,
// in the fixed order tell-more, external-pressure, frequency.
func Select(description string, location store.Location, presence store.Presence, lang string) []Question {
	texts, ok := questionText[lang]
	if !ok {
		texts = questionText["he"]
	}

	var kinds []Kind
	trimmed := strings.TrimSpace(description)
	if utf8.RuneCountInString(trimmed) < ShortDescriptionLength {
		kinds = append(kinds, KindTellMore)
	}
	if IsExternalPressure(presence) {
		kinds = append(kinds, KindExternalPressure)
	}
	if hasFrequencyMarker(trimmed) {
		kinds = append(kinds, KindFrequency)
	}
	if len(kinds) > MaxQuestions {
		kinds = kinds[:MaxQuestions]
	}

	questions := make([]Question, 0, len(kinds))
	for _, k := range kinds {
		questions = append(questions, Question{Kind: k, Text: texts[k]})
	}
	return questions
}

// IsExternalPressure reports whether people outside the family are present.
func IsExternalPressure(presence store.Presence) bool {
	return presence == store.PresenceStrangers || presence == store.PresenceOtherAdults
}

func hasFrequencyMarker(description string) bool {
	lower := strings.ToLower(description)
	for _, marker := range frequencyMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
