package advice

import (
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/hrygo/parentcopilot/store"
)

// Category is a group of canned responses selected by keyword.
type Category string

const (
	CategoryViolence Category = "violence"
	CategoryTantrums Category = "tantrums"
	CategoryRefusal  Category = "refusal"
	CategoryFear     Category = "fear"
	CategoryHomework Category = "homework"
	CategoryFood     Category = "food"
	CategorySleep    Category = "sleep"
	CategorySiblings Category = "siblings"
	CategoryDefault  Category = "default"
)

// template maps keywords to a category. English keywords carry a leading
// space so they only match at the start of a word ("hit" but not "white").
type template struct {
	category Category
	keywords []string
}

// templates are scanned in order; the first category with a match wins.
var templates = []template{
	{CategoryViolence, []string{
		" hit", " bite", " biting", " kick", " punch", " push", " scratch", " hurt", " violen",
		"מכה", "מרביץ", "מרביצה", "הרביץ", "נושך", "נושכת", "נשך", "בועט", "בועטת", "דוחף", "דוחפת", "אלימות", "אלים",
	}},
	{CategoryTantrums, []string{
		" tantrum", " scream", " shout", " yell", " crying", " cries", " meltdown", " throws himself", " throws herself",
		"התקף זעם", "צורח", "צורחת", "צרחות", "צועק", "צועקת", "צעקות", "בוכה", "בכתה", "התפרצות",
	}},
	{CategoryRefusal, []string{
		" refuse", " won't", " doesn't want", " does not want", " stubborn", " says no",
		"מסרב", "מסרבת", "לא רוצה", "לא מוכן", "לא מוכנה", "מתנגד", "מתנגדת",
	}},
	{CategoryFear, []string{
		" afraid", " scared", " fear", " anxious", " anxiety", " nightmare", " frightened",
		"מפחד", "מפחדת", "פחד", "חושש", "חוששת", "חרדה", "סיוט",
	}},
	{CategoryHomework, []string{
		" homework", " study", " studying", " assignment", " school work",
		"שיעורי בית", "שיעורים", "ללמוד", "מבחן",
	}},
	{CategoryFood, []string{
		" eat", " food", " meal", " dinner", " lunch", " breakfast", " vegetable", " picky",
		"אוכל", "לאכול", "ארוחה", "ירקות",
	}},
	{CategorySleep, []string{
		" sleep", " bed", " nap", " night",
		"לישון", "שינה", "מיטה", "נרדם", "נרדמת", "לילה",
	}},
	{CategorySiblings, []string{
		" sibling", " brother", " sister", " twins",
		"אחים", "אחיו", "אחיה", "אחותו", "אחותה", "אחות", "אחי",
	}},
}

// Offline produces canned advice without any network access. It never fails.
type Offline struct {
	intN func(n int) int
}

// NewOffline returns an Offline that picks candidates with math/rand.
func NewOffline() *Offline {
	return &Offline{intN: rand.IntN}
}

// NewOfflineWithRand returns an Offline using intN to choose among candidates.
func NewOfflineWithRand(intN func(n int) int) *Offline {
	return &Offline{intN: intN}
}

// Classify returns the first category whose keywords occur in description.
func Classify(description string) Category {
	text := normalize(description)
	for _, t := range templates {
		for _, kw := range t.keywords {
			if strings.Contains(text, kw) {
				return t.category
			}
		}
	}
	return CategoryDefault
}

// Respond returns one canned response for the description's category.
func (o *Offline) Respond(lang, description string) (store.AIResponse, Category) {
	category := Classify(description)
	candidates := CannedResponses(lang, category)
	return candidates[o.intN(len(candidates))], category
}

// CannedResponses lists the fixed responses of a category in the given language.
func CannedResponses(lang string, category Category) []store.AIResponse {
	table, ok := cannedResponses[lang]
	if !ok {
		table = cannedResponses["he"]
	}
	if responses := table[category]; len(responses) > 0 {
		return responses
	}
	return table[CategoryDefault]
}

// normalize lowercases text, turns punctuation into spaces and pads it so
// that word-start keywords also match the first word.
func normalize(text string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '’' {
			if r == '’' {
				return '\''
			}
			return unicode.ToLower(r)
		}
		return ' '
	}, text)
	return " " + mapped + " "
}
