// Package interaction provides the interaction log: the durable history of
// finished consultations used for daily reports.
package interaction

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/hrygo/parentcopilot/server/timezone"
	"github.com/hrygo/parentcopilot/store"
)

// Log is an append-only list of completed interactions with at most one
// record per session.
type Log struct {
	store    *store.Store
	location *time.Location

	mu      sync.RWMutex
	records []store.CompletedInteraction
}

// NewLog loads the saved interactions. Calendar-day queries use loc, or
// time.Local when loc is nil.
func NewLog(ctx context.Context, st *store.Store, loc *time.Location) *Log {
	if loc == nil {
		loc = time.Local
	}
	return &Log{
		store:    st,
		location: loc,
		records:  store.Load(ctx, st, store.KeyInteractions, []store.CompletedInteraction{}),
	}
}

// Record assigns a new id to rec and appends it.
func (l *Log) Record(ctx context.Context, rec store.CompletedInteraction) store.CompletedInteraction {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec.ID = shortuuid.New()
	l.records = append(l.records, rec)
	l.persist(ctx)
	return rec
}

// Close records the terminal state of a session. Closing the same session
// again replaces the earlier record in place, keeping its id and position,
// so every session yields exactly one record and the last state wins.
func (l *Log) Close(ctx context.Context, rec store.CompletedInteraction) store.CompletedInteraction {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec.SessionID != "" {
		for i := range l.records {
			if l.records[i].SessionID == rec.SessionID {
				rec.ID = l.records[i].ID
				l.records[i] = rec
				l.persist(ctx)
				slog.Debug("replaced interaction for closed session", "session_id", rec.SessionID, "resolved", rec.Resolved)
				return rec
			}
		}
	}

	rec.ID = shortuuid.New()
	l.records = append(l.records, rec)
	l.persist(ctx)
	return rec
}

// Find returns the interactions matching find, in log order.
func (l *Log) Find(find store.FindInteraction) []store.CompletedInteraction {
	if find.Location == nil {
		find.Location = l.location
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	list := []store.CompletedInteraction{}
	for _, rec := range l.records {
		if matches(find, rec) {
			list = append(list, rec)
		}
	}
	return list
}

// QueryByDateAndChild returns the interactions on day's local calendar day,
// optionally restricted to one child.
func (l *Log) QueryByDateAndChild(day time.Time, childID string) []store.CompletedInteraction {
	return l.Find(store.FindInteraction{Day: day, ChildID: childID})
}

// matches reports whether rec satisfies find. find.Location must be set.
func matches(find store.FindInteraction, rec store.CompletedInteraction) bool {
	if find.ChildID != "" && rec.ChildID != find.ChildID {
		return false
	}
	return find.Day.IsZero() || timezone.SameDay(find.Day, rec.Timestamp, find.Location)
}

// List returns every interaction in log order.
func (l *Log) List() []store.CompletedInteraction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return slices.Clone(l.records)
}

// Location is the time zone used for calendar-day queries.
func (l *Log) Location() *time.Location {
	return l.location
}

// persist must be called with mu held.
func (l *Log) persist(ctx context.Context) {
	if err := store.Save(ctx, l.store, store.KeyInteractions, l.records); err != nil {
		slog.Warn("failed to persist interactions, keeping in-memory state", "count", len(l.records), "error", err)
	}
}
