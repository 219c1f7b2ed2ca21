package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/parentcopilot/plugin/ai"
	apperrors "github.com/hrygo/parentcopilot/server/internal/errors"
)

// TranscribeRequest carries a recorded clip as base64 or a data URL.
type TranscribeRequest struct {
	Audio    string `json:"audio"`
	MimeType string `json:"mimeType,omitempty"`
}

// TranscribeResponse is the recognized text.
type TranscribeResponse struct {
	Text string `json:"text"`
}

// Transcribe converts a voice description to text. It answers 503 when no
// speech-to-text provider is configured so the client falls back to typing.
// POST /api/v1/transcribe
func (s *APIV1Service) Transcribe(c echo.Context) error {
	req := &TranscribeRequest{}
	if err := bind(c, req); err != nil {
		return err
	}
	if req.Audio == "" {
		return apperrors.InvalidField("audio", "audio is required")
	}
	audio, mimeType, err := ai.DecodeAudio(req.Audio, req.MimeType)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInvalidArgument, "audio must be base64 encoded").WithContext("field", "audio")
	}

	text, err := s.Transcriber.Transcribe(c.Request().Context(), audio, mimeType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TranscribeResponse{Text: text})
}
