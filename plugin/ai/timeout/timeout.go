// Package timeout defines centralized timeout constants for AI operations.
package timeout

import "time"

// AI operation timeout constants.
const (
	// ProviderTimeout bounds a single call to a remote language model.
	ProviderTimeout = 25 * time.Second

	// TranscriptionTimeout bounds a single speech-to-text request.
	TranscriptionTimeout = 60 * time.Second

	// OfflineDelayMin is the fixed part of the delay applied when no provider is configured.
	OfflineDelayMin = 1500 * time.Millisecond

	// OfflineDelayJitter is the upper bound of the random part added to OfflineDelayMin.
	OfflineDelayJitter = 1000 * time.Millisecond

	// FallbackDelay is applied before serving offline advice after every provider failed.
	FallbackDelay = 1 * time.Second

	// MaxTokens caps the completion size requested from providers.
	MaxTokens = 1024

	// MaxTruncateLength is the maximum length for truncating strings in logs.
	MaxTruncateLength = 200
)
