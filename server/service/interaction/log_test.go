package interaction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/parentcopilot/store"
	"github.com/hrygo/parentcopilot/store/db/memory"
)

var jerusalem = time.FixedZone("IDT", 3*60*60)

func newTestLog(t *testing.T) (*Log, *store.Store) {
	t.Helper()
	st := store.New(memory.NewDB(), nil)
	return NewLog(context.Background(), st, jerusalem), st
}

func TestRecordAssignsIDs(t *testing.T) {
	ctx := context.Background()
	log, _ := newTestLog(t)

	a := log.Record(ctx, store.CompletedInteraction{ChildID: "c1", Description: "a"})
	b := log.Record(ctx, store.CompletedInteraction{ChildID: "c1", Description: "b"})
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)

	list := log.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Description)
	assert.Equal(t, "b", list[1].Description)
}

func TestCloseIsIdempotentPerSession(t *testing.T) {
	ctx := context.Background()
	log, _ := newTestLog(t)
	log.Record(ctx, store.CompletedInteraction{SessionID: "other", Description: "earlier"})

	first := log.Close(ctx, store.CompletedInteraction{SessionID: "s1", Description: "tantrum", Resolved: false})
	second := log.Close(ctx, store.CompletedInteraction{SessionID: "s1", Description: "tantrum", Resolved: true})

	assert.Equal(t, first.ID, second.ID)
	list := log.List()
	require.Len(t, list, 2)
	assert.Equal(t, "earlier", list[0].Description)
	assert.Equal(t, "s1", list[1].SessionID)
	assert.True(t, list[1].Resolved)
}

func TestQueryByDateAndChild(t *testing.T) {
	ctx := context.Background()
	log, _ := newTestLog(t)

	// 23:30 local on March 1st is 20:30 UTC; 00:30 local on March 2nd is 21:30 UTC on March 1st.
	lateMarch1 := time.Date(2026, 3, 1, 20, 30, 0, 0, time.UTC)
	earlyMarch2 := time.Date(2026, 3, 1, 21, 30, 0, 0, time.UTC)

	log.Record(ctx, store.CompletedInteraction{ChildID: "c1", Timestamp: lateMarch1, Description: "late"})
	log.Record(ctx, store.CompletedInteraction{ChildID: "c2", Timestamp: lateMarch1, Description: "other child"})
	log.Record(ctx, store.CompletedInteraction{ChildID: "c1", Timestamp: earlyMarch2, Description: "next day"})

	day := time.Date(2026, 3, 1, 12, 0, 0, 0, jerusalem)

	all := log.QueryByDateAndChild(day, "")
	require.Len(t, all, 2)
	assert.Equal(t, "late", all[0].Description)
	assert.Equal(t, "other child", all[1].Description)

	c1 := log.QueryByDateAndChild(day, "c1")
	require.Len(t, c1, 1)
	assert.Equal(t, "late", c1[0].Description)

	next := log.QueryByDateAndChild(day.AddDate(0, 0, 1), "c1")
	require.Len(t, next, 1)
	assert.Equal(t, "next day", next[0].Description)

	assert.Empty(t, log.QueryByDateAndChild(day, "c3"))
}

func TestMatches(t *testing.T) {
	loc := time.FixedZone("IDT", 3*60*60)
	day := time.Date(2026, 5, 10, 12, 0, 0, 0, loc)
	find := store.FindInteraction{Day: day, Location: loc, ChildID: "c1"}

	// 22:30 UTC on the 9th is 01:30 on the 10th in IDT.
	assert.True(t, matches(find, store.CompletedInteraction{ChildID: "c1", Timestamp: time.Date(2026, 5, 9, 22, 30, 0, 0, time.UTC)}))
	// 20:00 UTC on the 10th is 23:00 in IDT, still the 10th.
	assert.True(t, matches(find, store.CompletedInteraction{ChildID: "c1", Timestamp: time.Date(2026, 5, 10, 20, 0, 0, 0, time.UTC)}))
	// 21:30 UTC on the 10th is already the 11th in IDT.
	assert.False(t, matches(find, store.CompletedInteraction{ChildID: "c1", Timestamp: time.Date(2026, 5, 10, 21, 30, 0, 0, time.UTC)}))

	otherChild := store.CompletedInteraction{ChildID: "c2", Timestamp: day}
	assert.False(t, matches(find, otherChild))
	assert.True(t, matches(store.FindInteraction{Day: day, Location: loc}, otherChild))
	assert.True(t, matches(store.FindInteraction{Location: loc}, otherChild))
}

func TestInteractionsSurviveRestart(t *testing.T) {
	ctx := context.Background()
	log, st := newTestLog(t)
	rec := log.Close(ctx, store.CompletedInteraction{SessionID: "s1", ChildID: "c1", Resolved: true})

	reloaded := NewLog(ctx, st, jerusalem)
	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, rec.ID, list[0].ID)

	reloaded.Close(ctx, store.CompletedInteraction{SessionID: "s1", ChildID: "c1", Resolved: false})
	assert.Len(t, reloaded.List(), 1)
}
