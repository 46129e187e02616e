// Package detect maps raw symptom text to one of the fixed symptom
// categories via ordered keyword/regex tests.
package detect

import (
	"regexp"
	"strings"

	"github.com/carebridge/symptom-triage/triage/episode"
)

// categoryTest pairs a category with the pattern that selects it.
type categoryTest struct {
	category episode.Category
	pattern  *regexp.Regexp
}

// categoryTests run in priority order; the first match wins. Headache is
// checked before the generic pain bucket so headaches are not absorbed by
// the broader pain flow.
var categoryTests = []categoryTest{
	{episode.CategoryHeadache, regexp.MustCompile(`\b(headache|migraine|head hurts|head pain|head is pounding)\b`)},
	{episode.CategoryGI, regexp.MustCompile(`\b(stomach|nausea|nauseous|vomit(ing)?|diarrhea|constipat(ed|ion)|abdominal|belly|indigestion|heartburn)\b`)},
	{episode.CategoryFever, regexp.MustCompile(`\b(fever|feverish|temperature|chills|hot and cold|burning up)\b`)},
	{episode.CategoryRespiratory, regexp.MustCompile(`\b(cough(ing)?|congestion|congested|runny nose|sore throat|sneez(e|ing)|wheez(e|ing)|short(ness)? of breath|stuffy)\b`)},
	{episode.CategorySkin, regexp.MustCompile(`\b(rash|itch(y|ing)?|hives|skin|eczema|bump(s)?|blister(s)?|acne)\b`)},
	{episode.CategoryMusculoskeletal, regexp.MustCompile(`\b(back pain|joint|muscle|sprain(ed)?|strain(ed)?|knee|shoulder|ankle|wrist|neck (pain|ache)|stiff)\b`)},
	{episode.CategoryNeurological, regexp.MustCompile(`\b(dizzy|dizziness|numb(ness)?|tingling|vertigo|lightheaded|faint(ed|ing)?|balance)\b`)},
	{episode.CategoryPain, regexp.MustCompile(`\b(pain|ache|aching|hurts?|hurting|sore|cramp(s|ing)?)\b`)},
}

// Detect returns the first matching category for the given text, or the
// general fallback when nothing matches. It always returns exactly one
// category and has no side effects.
func Detect(text string) episode.Category {
	lowered := strings.ToLower(text)
	for _, test := range categoryTests {
		if test.pattern.MatchString(lowered) {
			return test.category
		}
	}
	return episode.CategoryGeneral
}
