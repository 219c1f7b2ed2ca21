// Package settings persists the user's language preference and whether the
// landing page has been seen.
package settings

import (
	"context"
	"log/slog"

	"github.com/hrygo/parentcopilot/internal/profile"
	apperrors "github.com/hrygo/parentcopilot/server/internal/errors"
	"github.com/hrygo/parentcopilot/store"
)

// Settings is the persisted preference snapshot.
type Settings struct {
	Language string `json:"language"`
	Visited  bool   `json:"visited"`
}

// Service reads and writes user settings.
type Service struct {
	store           *store.Store
	defaultLanguage string
}

// NewService creates a settings service falling back to defaultLanguage.
func NewService(st *store.Store, defaultLanguage string) *Service {
	if !IsSupportedLanguage(defaultLanguage) {
		defaultLanguage = profile.LanguageHebrew
	}
	return &Service{store: st, defaultLanguage: defaultLanguage}
}

// IsSupportedLanguage reports whether lang has prompts and canned advice.
func IsSupportedLanguage(lang string) bool {
	return lang == profile.LanguageHebrew || lang == profile.LanguageEnglish
}

// Language returns the saved language or the default.
func (s *Service) Language(ctx context.Context) string {
	lang := store.Load(ctx, s.store, store.KeyLanguage, s.defaultLanguage)
	if !IsSupportedLanguage(lang) {
		return s.defaultLanguage
	}
	return lang
}

// SetLanguage saves the language preference.
func (s *Service) SetLanguage(ctx context.Context, lang string) error {
	if !IsSupportedLanguage(lang) {
		return apperrors.InvalidField("language", "language must be he or en")
	}
	if err := store.Save(ctx, s.store, store.KeyLanguage, lang); err != nil {
		slog.Warn("failed to persist language", "language", lang, "error", err)
	}
	return nil
}

// Visited reports whether the landing page has been seen.
func (s *Service) Visited(ctx context.Context) bool {
	return store.Load(ctx, s.store, store.KeyVisited, false)
}

// MarkVisited records that the landing page has been seen.
func (s *Service) MarkVisited(ctx context.Context) {
	if err := store.Save(ctx, s.store, store.KeyVisited, true); err != nil {
		slog.Warn("failed to persist visited flag", "error", err)
	}
}

// Get returns both settings.
func (s *Service) Get(ctx context.Context) Settings {
	return Settings{Language: s.Language(ctx), Visited: s.Visited(ctx)}
}
