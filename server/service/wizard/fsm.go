package wizard

import (
	"fmt"

	apperrors "github.com/hrygo/parentcopilot/server/internal/errors"
)

// Step is a page of the consultation wizard.
type Step string

const (
	StepHome          Step = "home"
	StepSelectChild   Step = "select_child"
	StepNewChild      Step = "new_child"
	StepContext       Step = "context"
	StepDescribe      Step = "describe"
	StepClarification Step = "clarification"
	StepResponse      Step = "response"
)

// Event is a user action that may move the wizard to another step.
type Event string

const (
	EventStart               Event = "start"
	EventNewChild            Event = "new_child"
	EventAddChild            Event = "add_child"
	EventSelectChild         Event = "select_child"
	EventSubmitContext       Event = "submit_context"
	EventSubmitDescription   Event = "submit_description"
	EventFinishClarification Event = "finish_clarification"
	EventNewSituation        Event = "new_situation"
	EventHome                Event = "home"
	EventBack                Event = "back"
)

// MinDescriptionLength is the trimmed length a description needs to proceed.
const MinDescriptionLength = 10

// Guards are the facts about the current session that transitions depend on.
type Guards struct {
	HasChildren      bool
	ChildSelected    bool
	ContextComplete  bool
	DescriptionValid bool
	HasQuestions     bool
	InFeedbackDialog bool
}

// Next is the single authority on wizard transitions. It returns the step
// that follows from on ev, or an error when the transition is not allowed.
func Next(from Step, ev Event, g Guards) (Step, error) {
	switch ev {
	case EventHome:
		return StepHome, nil
	case EventBack:
		return back(from, g)
	}

	switch {
	case from == StepHome && ev == EventStart,
		from == StepResponse && ev == EventNewSituation:
		if g.HasChildren {
			return StepSelectChild, nil
		}
		return StepNewChild, nil

	case from == StepSelectChild && ev == EventNewChild:
		return StepNewChild, nil

	case from == StepNewChild && ev == EventAddChild,
		from == StepSelectChild && ev == EventSelectChild:
		if !g.ChildSelected {
			return from, apperrors.InvalidField("childId", "a child must be selected")
		}
		return StepContext, nil

	case from == StepContext && ev == EventSubmitContext:
		if !g.ContextComplete {
			return from, apperrors.InvalidField("context", "all four context fields are required")
		}
		return StepDescribe, nil

	case from == StepDescribe && ev == EventSubmitDescription:
		if !g.DescriptionValid {
			return from, apperrors.InvalidField("description", fmt.Sprintf("description must be at least %d characters", MinDescriptionLength))
		}
		if g.HasQuestions {
			return StepClarification, nil
		}
		return StepResponse, nil

	case from == StepClarification && ev == EventFinishClarification:
		return StepResponse, nil
	}

	return from, notAllowed(from, ev)
}

func back(from Step, g Guards) (Step, error) {
	switch from {
	case StepSelectChild:
		return StepHome, nil
	case StepNewChild:
		if g.HasChildren {
			return StepSelectChild, nil
		}
		return StepHome, nil
	case StepContext:
		if g.HasChildren {
			return StepSelectChild, nil
		}
		return StepNewChild, nil
	case StepDescribe:
		return StepContext, nil
	case StepClarification:
		return StepDescribe, nil
	case StepResponse:
		if g.InFeedbackDialog {
			return from, apperrors.FailedPrecondition("cannot go back while giving feedback")
		}
		if g.HasQuestions {
			return StepClarification, nil
		}
		return StepDescribe, nil
	}
	return from, notAllowed(from, EventBack)
}

func notAllowed(from Step, ev Event) error {
	return apperrors.FailedPrecondition(fmt.Sprintf("%s is not allowed at step %s", ev, from)).
		WithContext("step", string(from))
}
