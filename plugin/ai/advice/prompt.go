package advice

import (
	"fmt"
	"strings"

	"github.com/hrygo/parentcopilot/store"
)

// BuildPrompt renders the advice prompt for a ready session.
func BuildPrompt(lang string, child *store.Child, session *store.Session) string {
	l := localeFor(lang)

	var b strings.Builder
	b.WriteString(l.systemPrompt)
	b.WriteString("\n\n")
	writeChild(&b, l, child)
	b.WriteString("\n")
	writeContext(&b, l, session.Context)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n%s\n", l.situationDescription, strings.TrimSpace(session.Description))

	if len(session.Clarifications) > 0 {
		fmt.Fprintf(&b, "\n%s\n", l.additionalClarifications)
		for _, c := range session.Clarifications {
			fmt.Fprintf(&b, "- %s: %s\n", c.Question, c.Answer)
		}
	}

	fmt.Fprintf(&b, "\n%s\n\n%s\n%s", l.responseInstructions, l.important, l.jsonOnly)
	return b.String()
}

// BuildFollowUpPrompt renders the prompt used after the parent reported that
// every previous piece of advice in history did not help.
func BuildFollowUpPrompt(lang string, child *store.Child, session *store.Session, history []store.ConversationTurn, feedback string) string {
	l := localeFor(lang)

	var b strings.Builder
	b.WriteString(l.followUpSystemPrompt)
	b.WriteString("\n\n")
	writeChild(&b, l, child)
	b.WriteString("\n")
	writeContext(&b, l, session.Context)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n%s\n\n", l.originalDescription, strings.TrimSpace(session.Description))

	b.WriteString(l.adviceHistory)
	b.WriteString("\n")
	for i, turn := range history {
		fmt.Fprintf(&b, "%s %d:\n", l.previousAdvice, i+1)
		fmt.Fprintf(&b, "- %s: %s\n", l.whatToDo, turn.Response.DoNow)
		fmt.Fprintf(&b, "- %s: %s\n", l.whatNotToDo, turn.Response.DontDo)
		fmt.Fprintf(&b, "- %s: %s\n", l.whatToSay, turn.Response.SayThis)
		if turn.FollowUp != "" {
			fmt.Fprintf(&b, "- %s: %s\n", l.parentFeedback, turn.FollowUp)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s\n%s\n\n", l.newFeedback, strings.TrimSpace(feedback))
	fmt.Fprintf(&b, "%s\n\n%s\n%s", l.tryDifferentApproach, l.followUpResponseFormat, l.jsonOnly)
	return b.String()
}

func writeChild(b *strings.Builder, l *locale, child *store.Child) {
	b.WriteString(l.childInfo)
	b.WriteString("\n")
	fmt.Fprintf(b, "- %s: %s\n", l.name, child.Name)
	fmt.Fprintf(b, "- %s: %d\n", l.age, child.Age)
	switch child.Gender {
	case store.GenderMale:
		fmt.Fprintf(b, "- %s: %s\n", l.gender, l.boy)
	case store.GenderFemale:
		fmt.Fprintf(b, "- %s: %s\n", l.gender, l.girl)
	}
	if child.Characteristics != "" {
		fmt.Fprintf(b, "- %s: %s\n", l.characteristics, child.Characteristics)
	}
	if child.Notes != "" {
		fmt.Fprintf(b, "- %s: %s\n", l.notes, child.Notes)
	}
	if label, ok := l.methods[child.ParentingMethod]; ok {
		fmt.Fprintf(b, "- %s: %s\n", l.parentingMethod, label)
	}
}

func writeContext(b *strings.Builder, l *locale, ctx *store.SessionContext) {
	if ctx == nil {
		return
	}
	b.WriteString(l.situationContext)
	b.WriteString("\n")
	fmt.Fprintf(b, "- %s: %s\n", l.location, l.locations[ctx.Location])
	fmt.Fprintf(b, "- %s: %s\n", l.presence, l.presences[ctx.Presence])
	fmt.Fprintf(b, "- %s: %s\n", l.privacy, l.physicalities[ctx.Physicality])
	fmt.Fprintf(b, "- %s: %s\n", l.parentMood, l.emotionalStates[ctx.EmotionalState])
}
