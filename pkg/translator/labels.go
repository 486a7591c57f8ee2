package translator

// Role and language label tables. Loaded once at process start; lookups
// fall back to the raw code so an unknown code degrades to a less pretty
// label instead of an error.

// Sentinels used by selection widgets that cannot represent an empty value.
// They are normalized away at the HTTP boundary; BuildPrompt never sees them.
const (
	LanguageNone = "__none__"
	LanguageAuto = "__auto__"
)

const (
	DefaultFromRole = "developer"
	DefaultToRole   = "project-manager"
)

var roleLabels = map[string]string{
	"developer":       "Developer",
	"project-manager": "Project Manager",
	"qa":              "QA",
	"designer":        "Designer",
	"agent":           "Agent",
	"bot":             "Bot",
	"customer":        "Customer",
	"stakeholder":     "Stakeholder",
	"finance-team":    "Finance Team",
	"legal":           "Legal",
	"support":         "Support",
	"marketing":       "Marketing",
	"executive":       "Executive",
}

var languageLabels = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"pt": "Portuguese",
	"it": "Italian",
	"ja": "Japanese",
	"zh": "Chinese (Mandarin)",
	"uk": "Ukrainian",
	"be": "Belarusian",
	"hi": "Hindi",
	"ru": "Russian",
	"ar": "Arabic",
	"ko": "Korean",
	"tr": "Turkish",
	"pl": "Polish",
	"nl": "Dutch",
	"vi": "Vietnamese",
	"th": "Thai",
	"id": "Indonesian",
}

// RoleLabel returns the display label for a role code, or the code itself
// when unknown.
func RoleLabel(code string) string {
	if l, ok := roleLabels[code]; ok {
		return l
	}
	return code
}

// LanguageLabel returns the display label for a language code, or the code
// itself when unknown.
func LanguageLabel(code string) string {
	if l, ok := languageLabels[code]; ok {
		return l
	}
	return code
}

// NormalizeLanguage maps widget sentinels to their data-layer meaning.
// LanguageNone means "no translation requested" and LanguageAuto means
// "detect the source language", and both leave the corresponding prompt
// line out entirely. Real codes pass through unchanged.
func NormalizeLanguage(code string) string {
	if code == LanguageNone || code == LanguageAuto {
		return ""
	}
	return code
}
