package clarify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/parentcopilot/store"
)

func kinds(qs []Question) []Kind {
	out := make([]Kind, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.Kind)
	}
	return out
}

func TestSelect(t *testing.T) {
	long := "She screams every evening when we turn off the TV"
	require.GreaterOrEqual(t, len(long), ShortDescriptionLength)

	tests := []struct {
		name        string
		description string
		presence    store.Presence
		want        []Kind
	}{
		{"short and alone", "cries", store.PresenceAlone, []Kind{KindTellMore}},
		{"short with strangers", "cries", store.PresenceStrangers, []Kind{KindTellMore, KindExternalPressure}},
		{"long with first-time marker", "This is the first time he threw his plate on the floor", store.PresenceAlone, []Kind{KindFrequency}},
		{"long without markers", long, store.PresenceAlone, []Kind{}},
		{"other adults count as pressure", long, store.PresenceOtherAdults, []Kind{KindExternalPressure}},
		{"spouse is not pressure", long, store.PresenceSpouse, []Kind{}},
		{"all three", "new baby, he hits", store.PresenceStrangers, []Kind{KindTellMore, KindExternalPressure, KindFrequency}},
		{"hebrew marker", "זו הפעם הראשונה שהיא מסרבת ללכת לגן בבוקר לראשונה", store.PresenceAlone, []Kind{KindFrequency}},
		{"whitespace is trimmed", "   cries   " + strings.Repeat(" ", 40), store.PresenceAlone, []Kind{KindTellMore}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.description, store.LocationHome, tt.presence, "en")
			assert.Equal(t, tt.want, kinds(got))
			assert.LessOrEqual(t, len(got), MaxQuestions)
		})
	}
}

func TestSelectLanguage(t *testing.T) {
	en := Select("cries", store.LocationHome, store.PresenceAlone, "en")
	require.Len(t, en, 1)
	assert.Equal(t, "Can you tell me more about what happened?", en[0].Text)

	he := Select("cries", store.LocationHome, store.PresenceAlone, "he")
	require.Len(t, he, 1)
	assert.NotEqual(t, en[0].Text, he[0].Text)

	unknown := Select("cries", store.LocationHome, store.PresenceAlone, "fr")
	assert.Equal(t, he, unknown)
}

func TestSelectIsDeterministic(t *testing.T) {
	a := Select("new", store.LocationMall, store.PresenceStrangers, "he")
	b := Select("new", store.LocationMall, store.PresenceStrangers, "he")
	assert.Equal(t, a, b)
}
