package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// ErrTranscriptionUnavailable is returned when no speech-to-text provider is configured.
var ErrTranscriptionUnavailable = errors.New("speech-to-text is not configured")

// Transcriber converts a recorded audio clip to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// NewTranscriber returns a Whisper-backed transcriber, or a stub that always
// reports ErrTranscriptionUnavailable when no credential is configured.
func NewTranscriber(cfg *TranscriptionConfig) Transcriber {
	if !cfg.IsConfigured() {
		return unavailableTranscriber{}
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.Whisper1
	}
	return &whisperTranscriber{
		client:   openai.NewClientWithConfig(clientConfig),
		model:    model,
		language: cfg.Language,
	}
}

// IsTranscriptionAvailable reports whether t can reach a provider.
func IsTranscriptionAvailable(t Transcriber) bool {
	if t == nil {
		return false
	}
	_, stub := t.(unavailableTranscriber)
	return !stub
}

type unavailableTranscriber struct{}

func (unavailableTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	return "", ErrTranscriptionUnavailable
}

type whisperTranscriber struct {
	client   *openai.Client
	model    string
	language string
}

func (t *whisperTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", errors.New("audio is empty")
	}

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: "recording." + AudioExtension(mimeType),
		Reader:   bytes.NewReader(audio),
		Language: t.language,
	})
	if err != nil {
		return "", errors.Wrap(err, "whisper transcription")
	}
	return strings.TrimSpace(resp.Text), nil
}

// AudioExtension maps a recorder MIME type to the file extension Whisper expects.
func AudioExtension(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "mp4"):
		return "m4a"
	case strings.Contains(mimeType, "webm"):
		return "webm"
	case strings.Contains(mimeType, "wav"):
		return "wav"
	default:
		return "mp3"
	}
}

// DecodeAudio accepts raw base64 or a data URL ("data:audio/webm;base64,...")
// and returns the audio bytes together with the MIME type it carried.
func DecodeAudio(encoded, mimeType string) ([]byte, string, error) {
	if rest, ok := strings.CutPrefix(encoded, "data:"); ok {
		header, payload, found := strings.Cut(rest, ",")
		if !found {
			return nil, "", errors.New("malformed data URL")
		}
		if mt, _, _ := strings.Cut(header, ";"); mt != "" && mimeType == "" {
			mimeType = mt
		}
		encoded = payload
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, "", errors.Wrap(err, "invalid base64 audio")
	}
	return data, mimeType, nil
}
