package advice

import "github.com/hrygo/parentcopilot/store"

var cannedResponses = map[string]map[Category][]store.AIResponse{
	"en": {
		CategoryTantrums: {
			{
				DoNow:   "Get down to your child's eye level, take a deep breath, and stay calm. Your quiet presence is more calming than any words.",
				DontDo:  "Don't yell back and don't try to explain right now. The child is in an emotional state and can't process explanations.",
				SayThis: "I can see you are very angry right now. I am here with you.",
			},
			{
				DoNow:   "Make sure the child is in a safe place, and stay close without directly intervening. Let the tantrum pass.",
				DontDo:  "Don't try to stop the crying by force or distract them immediately. This prevents emotional processing.",
				SayThis: "When you're ready, I'm here for a hug.",
			},
		},
		CategoryRefusal: {
			{
				DoNow:   "Offer two acceptable choices. A sense of choice reduces resistance.",
				DontDo:  "Don't enter a power struggle or make threats. This only increases resistance.",
				SayThis: "Would you prefer to do X or Y first?",
			},
			{
				DoNow:   "Acknowledge their desire even if you can't fulfill it. Listening reduces struggles.",
				DontDo:  "Don't ignore or dismiss their desire. Even if the answer is no, they need to feel heard.",
				SayThis: "I understand you want... Now we need to... Let's find a solution together.",
			},
		},
		CategoryViolence: {
			{
				DoNow:   "Stop the physical action gently but firmly. The boundary must be clear and immediate.",
				DontDo:  "Don't hit back and don't yell. A violent response teaches that violence is a solution.",
				SayThis: "I won't let you hit. Hitting hurts. I'm here to help you calm down.",
			},
		},
		CategoryFear: {
			{
				DoNow:   "Accept the fear without trying to convince them there's nothing to fear. Provide a calming presence.",
				DontDo:  "Don't say \"there's nothing to be afraid of\" - this dismisses their feelings and doesn't help.",
				SayThis: "I understand this scares you. I'm here with you and I'll keep you safe.",
			},
		},
		CategoryHomework: {
			{
				DoNow:   "Sit beside them and let them lead. Ask where they are stuck instead of explaining immediately.",
				DontDo:  "Don't do the homework for them and don't pressure too much. This hurts motivation.",
				SayThis: "Let's look at this together. What's the hardest part here?",
			},
		},
		CategoryFood: {
			{
				DoNow:   "Offer the food without pressure and continue with your meal. Children sense pressure and refuse more.",
				DontDo:  "Don't force eating and don't use dessert as a reward. This creates a problematic relationship with food.",
				SayThis: "The food is here when you're ready. Your body knows when it's hungry.",
			},
		},
		CategorySleep: {
			{
				DoNow:   "Create a consistent calming routine: bath, book, song. Clear expectations ease the transition.",
				DontDo:  "Don't allow screens an hour before bedtime. Blue light interferes with falling asleep.",
				SayThis: "Your body is tired and needs rest. Let's get ready for sleep together.",
			},
		},
		CategorySiblings: {
			{
				DoNow:   "Separate the children if needed, but don't look for blame. Let each one tell their side.",
				DontDo:  "Don't compare them and don't say \"why can't you be like...\" - this increases competition.",
				SayThis: "I can see you're both frustrated. Let's find a solution that works for everyone.",
			},
		},
		CategoryDefault: {
			{
				DoNow:   "Stop, breathe, and observe what's happening. Sometimes a moment of quiet helps more than any action.",
				DontDo:  "Don't react out of anger or frustration. An emotional response sends an unwanted message.",
				SayThis: "I can see something is hard for you right now. Tell me about it.",
			},
			{
				DoNow:   "Connect with your child emotionally before trying to solve the problem.",
				DontDo:  "Don't jump to solutions before the child feels heard.",
				SayThis: "I understand this feels hard. I'm here with you.",
			},
		},
	},
	"he": {
		CategoryTantrums: {
			{
				DoNow:   "רדו לגובה העיניים של הילד, קחו נשימה עמוקה והישארו רגועים. הנוכחות השקטה שלכם מרגיעה יותר מכל מילה.",
				DontDo:  "אל תצעקו בחזרה ואל תנסו להסביר עכשיו. הילד נמצא בסערה רגשית ולא יכול לעבד הסברים.",
				SayThis: "אני רואה שאתה מאוד כועס עכשיו. אני כאן איתך.",
			},
			{
				DoNow:   "ודאו שהילד במקום בטוח, והישארו קרובים בלי להתערב ישירות. תנו להתקף לעבור.",
				DontDo:  "אל תנסו לעצור את הבכי בכוח או להסיח את דעתו מיד. זה מונע עיבוד רגשי.",
				SayThis: "כשתהיה מוכן, אני כאן בשביל חיבוק.",
			},
		},
		CategoryRefusal: {
			{
				DoNow:   "הציעו שתי אפשרויות מקובלות עליכם. תחושת בחירה מפחיתה התנגדות.",
				DontDo:  "אל תיכנסו למאבק כוח ואל תאיימו. זה רק מגביר את ההתנגדות.",
				SayThis: "מה אתה מעדיף לעשות קודם, את זה או את זה?",
			},
			{
				DoNow:   "הכירו ברצון שלו גם אם אי אפשר למלא אותו. הקשבה מפחיתה מאבקים.",
				DontDo:  "אל תתעלמו מהרצון שלו ואל תבטלו אותו. גם אם התשובה היא לא, הוא צריך להרגיש שמקשיבים לו.",
				SayThis: "אני מבין שאתה רוצה... עכשיו אנחנו צריכים... בוא נמצא פתרון ביחד.",
			},
		},
		CategoryViolence: {
			{
				DoNow:   "עצרו את הפעולה הפיזית בעדינות אבל בתקיפות. הגבול צריך להיות ברור ומיידי.",
				DontDo:  "אל תכו בחזרה ואל תצעקו. תגובה אלימה מלמדת שאלימות היא פתרון.",
				SayThis: "אני לא אתן לך להרביץ. מכות כואבות. אני כאן כדי לעזור לך להירגע.",
			},
		},
		CategoryFear: {
			{
				DoNow:   "קבלו את הפחד בלי לנסות לשכנע שאין ממה לפחד. היו נוכחות מרגיעה.",
				DontDo:  "אל תגידו \"אין ממה לפחד\". זה מבטל את הרגשות שלו ולא עוזר.",
				SayThis: "אני מבין שזה מפחיד אותך. אני כאן איתך ואשמור עליך.",
			},
		},
		CategoryHomework: {
			{
				DoNow:   "שבו לידו ותנו לו להוביל. שאלו איפה הוא נתקע במקום להסביר מיד.",
				DontDo:  "אל תכינו את השיעורים במקומו ואל תלחצו יותר מדי. זה פוגע במוטיבציה.",
				SayThis: "בוא נסתכל על זה ביחד. מה הכי קשה כאן?",
			},
		},
		CategoryFood: {
			{
				DoNow:   "הגישו את האוכל בלי לחץ והמשיכו בארוחה שלכם. ילדים מרגישים לחץ ומסרבים יותר.",
				DontDo:  "אל תכריחו לאכול ואל תשתמשו בקינוח כפרס. זה יוצר קשר בעייתי עם אוכל.",
				SayThis: "האוכל כאן כשתהיה מוכן. הגוף שלך יודע מתי הוא רעב.",
			},
		},
		CategorySleep: {
			{
				DoNow:   "צרו שגרה מרגיעה וקבועה: אמבטיה, ספר, שיר. ציפיות ברורות מקלות על המעבר.",
				DontDo:  "אל תאפשרו מסכים שעה לפני השינה. האור הכחול מפריע להירדמות.",
				SayThis: "הגוף שלך עייף וצריך מנוחה. בוא נתכונן לשינה ביחד.",
			},
		},
		CategorySiblings: {
			{
				DoNow:   "הפרידו בין הילדים אם צריך, אבל אל תחפשו אשמים. תנו לכל אחד לספר את הצד שלו.",
				DontDo:  "אל תשוו ביניהם ואל תגידו \"למה אתה לא יכול להיות כמו...\". זה מגביר תחרות.",
				SayThis: "אני רואה ששניכם מתוסכלים. בואו נמצא פתרון שמתאים לכולם.",
			},
		},
		CategoryDefault: {
			{
				DoNow:   "עצרו, נשמו והתבוננו במה שקורה. לפעמים רגע של שקט עוזר יותר מכל פעולה.",
				DontDo:  "אל תגיבו מתוך כעס או תסכול. תגובה רגשית מעבירה מסר לא רצוי.",
				SayThis: "אני רואה שמשהו קשה לך עכשיו. ספר לי על זה.",
			},
			{
				DoNow:   "התחברו לילד רגשית לפני שאתם מנסים לפתור את הבעיה.",
				DontDo:  "אל תקפצו לפתרונות לפני שהילד מרגיש שמקשיבים לו.",
				SayThis: "אני מבין שזה מרגיש קשה. אני כאן איתך.",
			},
		},
	},
}
