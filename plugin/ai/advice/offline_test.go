package advice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		description string
		want        Category
	}{
		{"He hit his sister at the playground", CategoryViolence},
		{"הוא מכה את אחותו", CategoryViolence},
		{"She bites when she is tired", CategoryViolence},
		{"He refuses to get dressed and is screaming", CategoryTantrums},
		{"היא צורחת בסופר", CategoryTantrums},
		{"He won't put his shoes on", CategoryRefusal},
		{"Refuses to eat vegetables", CategoryRefusal},
		{"He is scared of the dark", CategoryFear},
		{"She never finishes her homework", CategoryHomework},
		{"He only eats pasta", CategoryFood},
		{"Bedtime takes two hours", CategorySleep},
		{"The twins fight over the tablet", CategorySiblings},
		{"She wore a white shirt to the great party", CategoryDefault},
		{"", CategoryDefault},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.description))
		})
	}
}

func TestOfflineRespond(t *testing.T) {
	var gotN int
	o := NewOfflineWithRand(func(n int) int {
		gotN = n
		return n - 1
	})

	resp, category := o.Respond("en", "He is having a tantrum")
	assert.Equal(t, CategoryTantrums, category)
	assert.Equal(t, 2, gotN)
	assert.Equal(t, cannedResponses["en"][CategoryTantrums][1], resp)

	resp, category = o.Respond("en", "nothing matches here")
	assert.Equal(t, CategoryDefault, category)
	assert.Contains(t, cannedResponses["en"][CategoryDefault], resp)
}

func TestCannedResponsesAreComplete(t *testing.T) {
	for lang, table := range cannedResponses {
		for _, category := range []Category{
			CategoryViolence, CategoryTantrums, CategoryRefusal, CategoryFear, CategoryHomework,
			CategoryFood, CategorySleep, CategorySiblings, CategoryDefault,
		} {
			responses := table[category]
			assert.NotEmpty(t, responses, "%s/%s", lang, category)
			for _, r := range responses {
				assert.NoError(t, r.Validate(), "%s/%s", lang, category)
			}
		}
	}
	assert.Equal(t, len(cannedResponses["en"][CategoryTantrums]), len(cannedResponses["he"][CategoryTantrums]))
	assert.Equal(t, cannedResponses["he"][CategoryDefault], CannedResponses("fr", CategoryDefault))
}
