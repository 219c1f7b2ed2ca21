package advice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/parentcopilot/store"
)

// ErrEmptyDescription is returned when a daily report has nothing to describe.
var ErrEmptyDescription = errors.New("day description is empty")

// DailyReport summarizes one child's day.
type DailyReport struct {
	Summary           string   `json:"summary"`
	Patterns          []string `json:"patterns"`
	SuccessHighlights string   `json:"successHighlights"`
	AreasToWatch      string   `json:"areasToWatch"`
	TomorrowTips      []string `json:"tomorrowTips"`
}

// Validate rejects reports without a summary or tips.
func (r DailyReport) Validate() error {
	if strings.TrimSpace(r.Summary) == "" {
		return errors.New("summary is empty")
	}
	if len(r.TomorrowTips) == 0 {
		return errors.New("tomorrowTips is empty")
	}
	return nil
}

// ReportResult is a generated daily report with the tier that produced it.
type ReportResult struct {
	Report   DailyReport `json:"report"`
	Tier     Tier        `json:"tier"`
	Provider string      `json:"provider,omitempty"`
}

// QuickSelections are the one-tap answers of the daily report form.
// Empty fields are omitted from the description.
type QuickSelections struct {
	DayQuality         string   `json:"dayQuality,omitempty"`         // great, okay, challenging
	Communication      string   `json:"communication,omitempty"`      // good, average, difficult
	ChildMood          []string `json:"childMood,omitempty"`          // happy, calm, cranky, emotional
	SleepQuality       string   `json:"sleepQuality,omitempty"`       // good, poor
	BehaviorHighlights []string `json:"behaviorHighlights,omitempty"` // cooperation, tantrums, calm, hyperactive
}

type reportLocale struct {
	dayQuality    map[string]string
	communication map[string]string
	sleep         map[string]string
	mood          map[string]string
	behavior      map[string]string
	moodLabel     string
	behaviorLabel string

	systemPrompt        string
	dayDescription      string
	recordedSituations  string
	resolved            string
	unresolved          string
	reportFormat        string
	categoryNames       map[Category]string
	offlineSummary      string
	offlineNoSituations string
	offlinePattern      string
	offlineSuccess      string
	offlineNoSuccess    string
	offlineWatch        string
	offlineNothingWatch string
	offlineGenericTip   string
}

var reportLocales = map[string]*reportLocale{
	"he": {
		dayQuality:    map[string]string{"great": "יום מצוין", "okay": "יום בסדר", "challenging": "יום מאתגר"},
		communication: map[string]string{"good": "תקשורת טובה", "average": "תקשורת בינונית", "difficult": "תקשורת קשה"},
		sleep:         map[string]string{"good": "ישן טוב", "poor": "ישן רע"},
		mood:          map[string]string{"happy": "שמח", "calm": "רגוע", "cranky": "עצבני", "emotional": "רגשי"},
		behavior:      map[string]string{"cooperation": "שיתוף פעולה", "tantrums": "התקפי זעם", "calm": "רגוע", "hyperactive": "היפראקטיבי"},
		moodLabel:     "מצב רוח",
		behaviorLabel: "התנהגות",

		systemPrompt:       "אתה יועץ הורות מקצועי ומנוסה. על סמך תיאור היום של ההורה, כתוב דוח יומי קצר ותומך על הילד.",
		dayDescription:     "תיאור היום:",
		recordedSituations: "סיטואציות שתועדו היום:",
		resolved:           "נפתר",
		unresolved:         "לא נפתר",
		reportFormat: `אנא החזר JSON בפורמט הבא:
{
  "summary": "סיכום קצר של היום (2-3 משפטים)",
  "patterns": ["דפוס שזוהה"],
  "successHighlights": "מה הלך טוב היום",
  "areasToWatch": "למה כדאי לשים לב",
  "tomorrowTips": ["טיפ מעשי למחר"]
}
- החזר רק את ה-JSON, ללא טקסט נוסף`,
		categoryNames: map[Category]string{
			CategoryViolence: "אלימות",
			CategoryTantrums: "התקפי זעם",
			CategoryRefusal:  "סירוב",
			CategoryFear:     "פחדים",
			CategoryHomework: "שיעורי בית",
			CategoryFood:     "אוכל",
			CategorySleep:    "שינה",
			CategorySiblings: "יחסי אחים",
			CategoryDefault:  "כללי",
		},
		offlineSummary:      "סיכום היום של %s: %s. תועדו היום %d סיטואציות.",
		offlineNoSituations: "סיכום היום של %s: %s.",
		offlinePattern:      "%s (%d)",
		offlineSuccess:      "%d מתוך %d סיטואציות נפתרו בהצלחה.",
		offlineNoSuccess:    "עצם השיקוף על היום הוא צעד חשוב.",
		offlineWatch:        "כדאי לשים לב במיוחד ל%s.",
		offlineNothingWatch: "לא זוהו נושאים חוזרים היום.",
		offlineGenericTip:   "הקדישו מחר כמה דקות של זמן איכות אחד על אחד.",
	},
	"en": {
		dayQuality:    map[string]string{"great": "Great day", "okay": "Okay day", "challenging": "Challenging day"},
		communication: map[string]string{"good": "Good communication", "average": "Average communication", "difficult": "Difficult communication"},
		sleep:         map[string]string{"good": "Slept well", "poor": "Slept poorly"},
		mood:          map[string]string{"happy": "Happy", "calm": "Calm", "cranky": "Cranky", "emotional": "Emotional"},
		behavior:      map[string]string{"cooperation": "Cooperative", "tantrums": "Tantrums", "calm": "Calm", "hyperactive": "Hyperactive"},
		moodLabel:     "Mood",
		behaviorLabel: "Behavior",

		systemPrompt:       "You are a professional and experienced parenting consultant. Based on the parent's description of the day, write a short, supportive daily report about the child.",
		dayDescription:     "Description of the day:",
		recordedSituations: "Situations recorded today:",
		resolved:           "resolved",
		unresolved:         "unresolved",
		reportFormat: `Please return JSON in the following format:
{
  "summary": "A short summary of the day (2-3 sentences)",
  "patterns": ["An observed pattern"],
  "successHighlights": "What went well today",
  "areasToWatch": "What to pay attention to",
  "tomorrowTips": ["A practical tip for tomorrow"]
}
- Return only the JSON, with no additional text`,
		categoryNames: map[Category]string{
			CategoryViolence: "violence",
			CategoryTantrums: "tantrums",
			CategoryRefusal:  "refusal",
			CategoryFear:     "fears",
			CategoryHomework: "homework",
			CategoryFood:     "food",
			CategorySleep:    "sleep",
			CategorySiblings: "siblings",
			CategoryDefault:  "general",
		},
		offlineSummary:      "Daily summary for %s: %s. %d situations were recorded today.",
		offlineNoSituations: "Daily summary for %s: %s.",
		offlinePattern:      "%s (%d)",
		offlineSuccess:      "%d of %d situations were resolved.",
		offlineNoSuccess:    "Reflecting on the day is an important step.",
		offlineWatch:        "Pay special attention to %s.",
		offlineNothingWatch: "No recurring themes were found today.",
		offlineGenericTip:   "Set aside a few minutes of one-on-one time tomorrow.",
	},
}

func reportLocaleFor(lang string) *reportLocale {
	if l, ok := reportLocales[lang]; ok {
		return l
	}
	return reportLocales["he"]
}

// Validate rejects unknown quick selection values.
func (q QuickSelections) Validate() error {
	l := reportLocales["en"]
	check := func(field, value string, allowed map[string]string) error {
		if value == "" {
			return nil
		}
		if _, ok := allowed[value]; !ok {
			return errors.Errorf("invalid %s %q", field, value)
		}
		return nil
	}
	if err := check("dayQuality", q.DayQuality, l.dayQuality); err != nil {
		return err
	}
	if err := check("communication", q.Communication, l.communication); err != nil {
		return err
	}
	if err := check("sleepQuality", q.SleepQuality, l.sleep); err != nil {
		return err
	}
	for _, m := range q.ChildMood {
		if err := check("childMood", m, l.mood); err != nil {
			return err
		}
	}
	for _, b := range q.BehaviorHighlights {
		if err := check("behaviorHighlights", b, l.behavior); err != nil {
			return err
		}
	}
	return nil
}

// BuildDayDescription joins the quick selections and free text with ". ".
func BuildDayDescription(lang string, q QuickSelections, freeText string) string {
	l := reportLocaleFor(lang)

	var parts []string
	if label, ok := l.dayQuality[q.DayQuality]; ok {
		parts = append(parts, label)
	}
	if label, ok := l.communication[q.Communication]; ok {
		parts = append(parts, label)
	}
	if label, ok := l.sleep[q.SleepQuality]; ok {
		parts = append(parts, label)
	}
	if moods := labels(l.mood, q.ChildMood); len(moods) > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", l.moodLabel, strings.Join(moods, ", ")))
	}
	if behaviors := labels(l.behavior, q.BehaviorHighlights); len(behaviors) > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", l.behaviorLabel, strings.Join(behaviors, ", ")))
	}
	if text := strings.TrimSpace(freeText); text != "" {
		parts = append(parts, text)
	}
	return strings.Join(parts, ". ")
}

func labels(table map[string]string, keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if label, ok := table[k]; ok {
			out = append(out, label)
		}
	}
	return out
}

// BuildReportPrompt renders the daily report prompt.
func BuildReportPrompt(lang string, child *store.Child, description string, interactions []store.CompletedInteraction) string {
	l := localeFor(lang)
	rl := reportLocaleFor(lang)

	var b strings.Builder
	b.WriteString(rl.systemPrompt)
	b.WriteString("\n\n")
	writeChild(&b, l, child)
	fmt.Fprintf(&b, "\n%s\n%s\n", rl.dayDescription, description)

	if len(interactions) > 0 {
		fmt.Fprintf(&b, "\n%s\n", rl.recordedSituations)
		for _, i := range interactions {
			status := rl.unresolved
			if i.Resolved {
				status = rl.resolved
			}
			fmt.Fprintf(&b, "- %s %s (%s)\n", i.Timestamp.Format("15:04"), i.Description, status)
		}
	}

	fmt.Fprintf(&b, "\n%s", rl.reportFormat)
	return b.String()
}

// DailyReport generates a report for child from the day description and the
// interactions recorded that day, using the same fallback chain as advice.
func (g *Generator) DailyReport(ctx context.Context, lang string, child *store.Child, description string, interactions []store.CompletedInteraction) (*ReportResult, error) {
	if child == nil {
		return nil, errors.New("child is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	var report DailyReport
	prompt := BuildReportPrompt(lang, child, description, interactions)
	tier, provider := g.run(ctx, "daily_report", prompt, func(raw string) error {
		r, err := decodeFirstObject[DailyReport](raw)
		if err != nil {
			return err
		}
		if err := r.Validate(); err != nil {
			return errors.Wrap(err, "invalid report shape")
		}
		report = r
		return nil
	})
	if tier != TierOffline {
		return &ReportResult{Report: report, Tier: tier, Provider: provider}, nil
	}

	start := time.Now()
	g.metrics.RecordAttempt(string(TierOffline))
	report = BuildOfflineReport(lang, child, description, interactions)
	g.metrics.RecordSuccess(string(TierOffline), time.Since(start))
	return &ReportResult{Report: report, Tier: TierOffline}, nil
}

// BuildOfflineReport derives a deterministic report from the day's interactions.
func BuildOfflineReport(lang string, child *store.Child, description string, interactions []store.CompletedInteraction) DailyReport {
	rl := reportLocaleFor(lang)
	description = strings.TrimRight(strings.TrimSpace(description), ".")

	report := DailyReport{Patterns: []string{}}
	if len(interactions) == 0 {
		report.Summary = fmt.Sprintf(rl.offlineNoSituations, child.Name, description)
	} else {
		report.Summary = fmt.Sprintf(rl.offlineSummary, child.Name, description, len(interactions))
	}

	// Categories in first-seen order with their counts.
	var order []Category
	counts := map[Category]int{}
	resolved := 0
	for _, i := range interactions {
		c := Classify(i.Description)
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
		if i.Resolved {
			resolved++
		}
	}
	for _, c := range order {
		report.Patterns = append(report.Patterns, fmt.Sprintf(rl.offlinePattern, rl.categoryNames[c], counts[c]))
	}

	if resolved > 0 {
		report.SuccessHighlights = fmt.Sprintf(rl.offlineSuccess, resolved, len(interactions))
	} else {
		report.SuccessHighlights = rl.offlineNoSuccess
	}

	top := CategoryDefault
	for _, c := range order {
		if c != CategoryDefault && (top == CategoryDefault || counts[c] > counts[top]) {
			top = c
		}
	}
	if top != CategoryDefault {
		report.AreasToWatch = fmt.Sprintf(rl.offlineWatch, rl.categoryNames[top])
	} else {
		report.AreasToWatch = rl.offlineNothingWatch
	}

	report.TomorrowTips = []string{CannedResponses(lang, top)[0].DoNow, rl.offlineGenericTip}
	return report
}
