package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/hrygo/parentcopilot/server/internal/errors"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		from    Step
		ev      Event
		guards  Guards
		want    Step
		errCode apperrors.ErrorCode
	}{
		{"start with children", StepHome, EventStart, Guards{HasChildren: true}, StepSelectChild, ""},
		{"start without children", StepHome, EventStart, Guards{}, StepNewChild, ""},
		{"add child", StepNewChild, EventAddChild, Guards{ChildSelected: true}, StepContext, ""},
		{"select child", StepSelectChild, EventSelectChild, Guards{ChildSelected: true}, StepContext, ""},
		{"select without child", StepSelectChild, EventSelectChild, Guards{}, StepSelectChild, apperrors.ErrCodeInvalidArgument},
		{"complete context", StepContext, EventSubmitContext, Guards{ContextComplete: true}, StepDescribe, ""},
		{"incomplete context", StepContext, EventSubmitContext, Guards{}, StepContext, apperrors.ErrCodeInvalidArgument},
		{"description with questions", StepDescribe, EventSubmitDescription, Guards{DescriptionValid: true, HasQuestions: true}, StepClarification, ""},
		{"description bypasses clarification", StepDescribe, EventSubmitDescription, Guards{DescriptionValid: true}, StepResponse, ""},
		{"short description", StepDescribe, EventSubmitDescription, Guards{}, StepDescribe, apperrors.ErrCodeInvalidArgument},
		{"finish clarification", StepClarification, EventFinishClarification, Guards{}, StepResponse, ""},
		{"new situation", StepResponse, EventNewSituation, Guards{HasChildren: true}, StepSelectChild, ""},
		{"home from anywhere", StepClarification, EventHome, Guards{}, StepHome, ""},
		{"skip ahead", StepContext, EventSubmitDescription, Guards{DescriptionValid: true}, StepContext, apperrors.ErrCodeFailedPrecondition},
		{"back from describe", StepDescribe, EventBack, Guards{}, StepContext, ""},
		{"back from context", StepContext, EventBack, Guards{HasChildren: true}, StepSelectChild, ""},
		{"back from response", StepResponse, EventBack, Guards{HasQuestions: true}, StepClarification, ""},
		{"back from response without questions", StepResponse, EventBack, Guards{}, StepDescribe, ""},
		{"back inside feedback dialog", StepResponse, EventBack, Guards{InFeedbackDialog: true}, StepResponse, apperrors.ErrCodeFailedPrecondition},
		{"back from home", StepHome, EventBack, Guards{}, StepHome, apperrors.ErrCodeFailedPrecondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.from, tt.ev, tt.guards)
			assert.Equal(t, tt.want, got)
			if tt.errCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.IsCode(err, tt.errCode), "got %v", err)
		})
	}
}
