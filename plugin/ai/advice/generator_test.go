package advice

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/parentcopilot/store"
)

const validReply = `{"doNow":"Kneel down","dontDo":"Do not shout","sayThis":"I am with you"}`

type mockLLM struct {
	mock.Mock
	name string
}

func (m *mockLLM) Name() string { return m.name }

func (m *mockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type fakeSleeper struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (s *fakeSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waits = append(s.waits, d)
	return nil
}

type countingRecorder struct {
	mu       sync.Mutex
	attempts map[string]int
	success  map[string]int
	failure  map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{attempts: map[string]int{}, success: map[string]int{}, failure: map[string]int{}}
}

func (r *countingRecorder) RecordAttempt(tier string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts[tier]++
}

func (r *countingRecorder) RecordSuccess(tier string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success[tier]++
}

func (r *countingRecorder) RecordFailure(tier string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure[tier]++
}

func TestGenerateWithoutProviders(t *testing.T) {
	sleeper := &fakeSleeper{}
	rec := newCountingRecorder()
	g := NewGenerator(nil, nil,
		WithSleeper(sleeper.Sleep),
		WithJitter(func() float64 { return 0.5 }),
		WithMetrics(rec),
		WithOffline(NewOfflineWithRand(func(int) int { return 0 })),
	)

	result, err := g.Generate(context.Background(), "en", testChild(), testSession("He hit his brother"))
	require.NoError(t, err)
	assert.Equal(t, TierOffline, result.Tier)
	assert.Equal(t, CategoryViolence, result.Category)
	assert.Equal(t, cannedResponses["en"][CategoryViolence][0], result.Response)

	require.Len(t, sleeper.waits, 1)
	assert.Equal(t, 2*time.Second, sleeper.waits[0])
	assert.Equal(t, 1, rec.success[string(TierOffline)])
}

func TestGenerateOfflineDelayBounds(t *testing.T) {
	for _, jitter := range []float64{0, 0.999} {
		sleeper := &fakeSleeper{}
		g := NewGenerator(nil, nil, WithSleeper(sleeper.Sleep), WithJitter(func() float64 { return jitter }))

		_, err := g.Generate(context.Background(), "he", testChild(), testSession("הוא מכה"))
		require.NoError(t, err)
		require.Len(t, sleeper.waits, 1)
		assert.GreaterOrEqual(t, sleeper.waits[0], 1500*time.Millisecond)
		assert.Less(t, sleeper.waits[0], 2500*time.Millisecond)
	}
}

func TestGeneratePrimarySucceeds(t *testing.T) {
	primary := &mockLLM{name: "openai"}
	secondary := &mockLLM{name: "gemini"}
	primary.On("Complete", mock.Anything, mock.Anything).Return(validReply, nil).Once()
	sleeper := &fakeSleeper{}

	g := NewGenerator(primary, secondary, WithSleeper(sleeper.Sleep))
	result, err := g.Generate(context.Background(), "en", testChild(), testSession("She refuses to get dressed"))
	require.NoError(t, err)

	assert.Equal(t, TierPrimary, result.Tier)
	assert.Equal(t, "openai", result.Provider)
	assert.Equal(t, "I am with you", result.Response.SayThis)
	assert.Empty(t, sleeper.waits)
	primary.AssertExpectations(t)
	secondary.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestGenerateFallsBackToSecondary(t *testing.T) {
	tests := []struct {
		name       string
		primaryRaw string
		primaryErr error
	}{
		{"network error", "", errors.New("connection reset")},
		{"malformed reply", "I think you should breathe.", nil},
		{"missing field", `{"doNow":"a","dontDo":"b"}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &mockLLM{name: "openai"}
			secondary := &mockLLM{name: "gemini"}
			primary.On("Complete", mock.Anything, mock.Anything).Return(tt.primaryRaw, tt.primaryErr).Once()
			secondary.On("Complete", mock.Anything, mock.Anything).Return("Sure!\n"+validReply, nil).Once()
			rec := newCountingRecorder()

			g := NewGenerator(primary, secondary, WithMetrics(rec), WithSleeper((&fakeSleeper{}).Sleep))
			result, err := g.Generate(context.Background(), "en", testChild(), testSession("She refuses to get dressed"))
			require.NoError(t, err)

			assert.Equal(t, TierSecondary, result.Tier)
			assert.Equal(t, "gemini", result.Provider)
			assert.Equal(t, 1, rec.failure[string(TierPrimary)])
			assert.Equal(t, 1, rec.success[string(TierSecondary)])
			primary.AssertExpectations(t)
			secondary.AssertExpectations(t)
		})
	}
}

func TestGenerateOnlySecondaryConfigured(t *testing.T) {
	secondary := &mockLLM{name: "gemini"}
	secondary.On("Complete", mock.Anything, mock.Anything).Return(validReply, nil).Once()

	g := NewGenerator(nil, secondary)
	result, err := g.Generate(context.Background(), "en", testChild(), testSession("She refuses to get dressed"))
	require.NoError(t, err)
	assert.Equal(t, TierSecondary, result.Tier)
}

func TestGenerateAllProvidersFail(t *testing.T) {
	primary := &mockLLM{name: "openai"}
	secondary := &mockLLM{name: "gemini"}
	primary.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("500")).Once()
	secondary.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("quota")).Once()
	sleeper := &fakeSleeper{}

	g := NewGenerator(primary, secondary, WithSleeper(sleeper.Sleep))
	result, err := g.Generate(context.Background(), "en", testChild(), testSession("Bedtime takes two hours"))
	require.NoError(t, err)

	assert.Equal(t, TierOffline, result.Tier)
	assert.Equal(t, CategorySleep, result.Category)
	assert.Equal(t, []time.Duration{time.Second}, sleeper.waits)
	primary.AssertNumberOfCalls(t, "Complete", 1)
	secondary.AssertNumberOfCalls(t, "Complete", 1)
}

func TestGenerateTimesOutSlowProvider(t *testing.T) {
	primary := &mockLLM{name: "openai"}
	primary.On("Complete", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return("", context.DeadlineExceeded).Once()

	g := NewGenerator(primary, nil, WithTimeout(10*time.Millisecond), WithoutOfflineDelay())
	result, err := g.Generate(context.Background(), "en", testChild(), testSession("He is scared of the dark"))
	require.NoError(t, err)
	assert.Equal(t, TierOffline, result.Tier)
	assert.Equal(t, CategoryFear, result.Category)
}

func TestFollowUpUsesHistory(t *testing.T) {
	primary := &mockLLM{name: "openai"}
	primary.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Advice 1:") &&
			strings.Contains(prompt, "Offer two choices") &&
			strings.Contains(prompt, "She hid under the table")
	})).Return(validReply, nil).Once()

	history := []store.ConversationTurn{{
		Response: store.AIResponse{DoNow: "Offer two choices", DontDo: "Threaten", SayThis: "Red or blue?"},
		Feedback: store.FeedbackNotHelped,
	}}

	g := NewGenerator(primary, nil)
	result, err := g.FollowUp(context.Background(), "en", testChild(), testSession("She refuses to get dressed"), history, "She hid under the table")
	require.NoError(t, err)
	assert.Equal(t, TierPrimary, result.Tier)
	primary.AssertExpectations(t)
}

func TestFollowUpOfflineMatchesFeedback(t *testing.T) {
	g := NewGenerator(nil, nil, WithoutOfflineDelay())
	result, err := g.FollowUp(context.Background(), "en", testChild(), testSession("Something happened at lunch"), nil, "now he hit me")
	require.NoError(t, err)
	assert.Equal(t, CategoryViolence, result.Category)
}

func TestGenerateRequiresInputs(t *testing.T) {
	g := NewGenerator(nil, nil, WithoutOfflineDelay())
	_, err := g.Generate(context.Background(), "en", nil, testSession("x"))
	assert.Error(t, err)
}
