package advice

import (
	"github.com/hrygo/parentcopilot/store"
)

// locale holds the wording used to build prompts for one language.
type locale struct {
	systemPrompt         string
	followUpSystemPrompt string

	childInfo       string
	name            string
	age             string
	gender          string
	boy             string
	girl            string
	characteristics string
	notes           string
	parentingMethod string

	situationContext string
	location         string
	presence         string
	privacy          string
	parentMood       string

	situationDescription     string
	additionalClarifications string
	responseInstructions     string
	important                string
	jsonOnly                 string

	previousAdvice         string
	whatToDo               string
	whatNotToDo            string
	whatToSay              string
	parentFeedback         string
	originalDescription    string
	adviceHistory          string
	newFeedback            string
	tryDifferentApproach   string
	followUpResponseFormat string

	locations       map[store.Location]string
	presences       map[store.Presence]string
	physicalities   map[store.Physicality]string
	emotionalStates map[store.EmotionalState]string
	methods         map[store.ParentingMethod]string
}

var locales = map[string]*locale{
	"he": {
		systemPrompt:         "אתה יועץ הורות מקצועי ומנוסה. תפקידך לעזור להורים להתמודד עם סיטואציות מאתגרות עם ילדיהם.",
		followUpSystemPrompt: "אתה יועץ הורות מקצועי ומנוסה. ההורה קיבל עצה אבל היא לא עזרה, והוא מבקש עזרה נוספת.",

		childInfo:       "מידע על הילד:",
		name:            "שם",
		age:             "גיל",
		gender:          "מין",
		boy:             "בן",
		girl:            "בת",
		characteristics: "מאפיינים",
		notes:           "הערות",
		parentingMethod: "שיטת הורות",

		situationContext: "הקשר הסיטואציה:",
		location:         "מיקום",
		presence:         "נוכחות",
		privacy:          "פרטיות",
		parentMood:       "מצב רוח ההורה",

		situationDescription:     "תיאור הסיטואציה:",
		additionalClarifications: "הבהרות נוספות:",
		responseInstructions: `אנא ספק תשובה מעשית ופרקטית בפורמט JSON הבא:
{
  "doNow": "מה לעשות עכשיו - הנחיות קצרות וברורות (2-3 משפטים)",
  "dontDo": "מה לא לעשות - התנהגויות שכדאי להימנע מהן (2-3 משפטים)",
  "sayThis": "משפט ספציפי אחד לומר לילד - מנוסח בעברית טבעית וחמה"
}`,
		important: `חשוב:
- התשובה צריכה להיות מותאמת לגיל הילד
- היה קצר ופרקטי
- התמקד בפעולות מיידיות
- התחשב בהקשר והמצב הרגשי של ההורה
- השתמש בשפה חמה ותומכת`,
		jsonOnly: "- החזר רק את ה-JSON, ללא טקסט נוסף",

		previousAdvice:       "עצה",
		whatToDo:             "מה לעשות",
		whatNotToDo:          "מה לא לעשות",
		whatToSay:            "מה לומר",
		parentFeedback:       "משוב ההורה",
		originalDescription:  "תיאור הסיטואציה המקורי:",
		adviceHistory:        "היסטוריית העצות הקודמות:",
		newFeedback:          "משוב חדש מההורה:",
		tryDifferentApproach: "אנא ספק עצה חדשה ושונה, בהתחשב בכך שהעצות הקודמות לא עבדו.\nנסה גישה אחרת!",
		followUpResponseFormat: `פורמט JSON:
{
  "doNow": "מה לעשות עכשיו - גישה חדשה ושונה (2-3 משפטים)",
  "dontDo": "מה לא לעשות (2-3 משפטים)",
  "sayThis": "משפט ספציפי אחד לומר לילד - שונה מהקודם"
}`,

		locations: map[store.Location]string{
			store.LocationHome:       "בית",
			store.LocationStreet:     "רחוב",
			store.LocationCar:        "רכב",
			store.LocationMall:       "קניון",
			store.LocationRestaurant: "מסעדה",
		},
		presences: map[store.Presence]string{
			store.PresenceAlone:       "לבד",
			store.PresenceSpouse:      "בן/בת זוג",
			store.PresenceOtherAdults: "מבוגרים אחרים",
			store.PresenceStrangers:   "זרים",
		},
		physicalities: map[store.Physicality]string{
			store.PhysicalityPrivate: "פרטי",
			store.PhysicalityPublic:  "ציבורי",
		},
		emotionalStates: map[store.EmotionalState]string{
			store.EmotionalCalm:       "רגוע",
			store.EmotionalFrustrated: "מתוסכל",
			store.EmotionalAngry:      "כועס",
			store.EmotionalAnxious:    "חרד",
		},
		methods: map[store.ParentingMethod]string{
			store.ParentingPositive:      "הורות חיובית",
			store.ParentingAuthoritative: "הורות סמכותית",
			store.ParentingAttachment:    "הורות מקשרת",
			store.ParentingMontessori:    "מונטסורי",
			store.ParentingRespectful:    "הורות מכבדת",
		},
	},
	"en": {
		systemPrompt:         "You are a professional and experienced parenting consultant. Your role is to help parents deal with challenging situations with their children.",
		followUpSystemPrompt: "You are a professional and experienced parenting consultant. The parent received advice but it didn't help, and they're asking for additional help.",

		childInfo:       "Information about the child:",
		name:            "Name",
		age:             "Age",
		gender:          "Gender",
		boy:             "Boy",
		girl:            "Girl",
		characteristics: "Characteristics",
		notes:           "Notes",
		parentingMethod: "Parenting method",

		situationContext: "Situation context:",
		location:         "Location",
		presence:         "Presence",
		privacy:          "Privacy",
		parentMood:       "Parent's emotional state",

		situationDescription:     "Description of the situation:",
		additionalClarifications: "Additional clarifications:",
		responseInstructions: `Please provide a practical and actionable response in the following JSON format:
{
  "doNow": "What to do now - short and clear instructions (2-3 sentences)",
  "dontDo": "What not to do - behaviors to avoid (2-3 sentences)",
  "sayThis": "One specific phrase to say to the child - warm and natural"
}`,
		important: `Important:
- The response should be age-appropriate
- Be brief and practical
- Focus on immediate actions
- Consider the context and parent's emotional state
- Use warm and supportive language`,
		jsonOnly: "- Return only the JSON, with no additional text",

		previousAdvice:       "Advice",
		whatToDo:             "What to do",
		whatNotToDo:          "What not to do",
		whatToSay:            "What to say",
		parentFeedback:       "Parent feedback",
		originalDescription:  "Original situation description:",
		adviceHistory:        "History of previous advice:",
		newFeedback:          "New feedback from the parent:",
		tryDifferentApproach: "Please provide new and different advice, considering that the previous advice didn't work.\nTry a different approach!",
		followUpResponseFormat: `JSON format:
{
  "doNow": "What to do now - new and different approach (2-3 sentences)",
  "dontDo": "What not to do (2-3 sentences)",
  "sayThis": "One specific phrase to say to the child - different from before"
}`,

		locations: map[store.Location]string{
			store.LocationHome:       "Home",
			store.LocationStreet:     "Street",
			store.LocationCar:        "Car",
			store.LocationMall:       "Mall",
			store.LocationRestaurant: "Restaurant",
		},
		presences: map[store.Presence]string{
			store.PresenceAlone:       "Alone",
			store.PresenceSpouse:      "Spouse/partner",
			store.PresenceOtherAdults: "Other adults",
			store.PresenceStrangers:   "Strangers",
		},
		physicalities: map[store.Physicality]string{
			store.PhysicalityPrivate: "Private",
			store.PhysicalityPublic:  "Public",
		},
		emotionalStates: map[store.EmotionalState]string{
			store.EmotionalCalm:       "Calm",
			store.EmotionalFrustrated: "Frustrated",
			store.EmotionalAngry:      "Angry",
			store.EmotionalAnxious:    "Anxious",
		},
		methods: map[store.ParentingMethod]string{
			store.ParentingPositive:      "Positive parenting",
			store.ParentingAuthoritative: "Authoritative parenting",
			store.ParentingAttachment:    "Attachment parenting",
			store.ParentingMontessori:    "Montessori",
			store.ParentingRespectful:    "Respectful parenting",
		},
	},
}

// localeFor returns the wording for lang, defaulting to Hebrew.
func localeFor(lang string) *locale {
	if l, ok := locales[lang]; ok {
		return l
	}
	return locales["he"]
}
