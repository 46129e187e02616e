package flow

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/carebridge/symptom-triage/triage/episode"
)

// Fallback defaults for unparseable answers. Parsing never fails: a value
// the keyword matchers cannot place gets the documented default.
const (
	DefaultDuration  = episode.DurationOneTwoDays
	DefaultSeverity  = 5
	DefaultFrequency = episode.FrequencyIntermittent
	DefaultAgeGroup  = episode.AgeAdult
)

// durationKeywords are checked in order; the first match wins.
var durationKeywords = []struct {
	keywords []string
	value    episode.Duration
}{
	{[]string{"just now", "right now", "moments ago", "just started"}, episode.DurationJustNow},
	{[]string{"few hours", "couple of hours", "this morning", "this afternoon", "hours ago"}, episode.DurationFewHours},
	{[]string{"today", "since today", "earlier today"}, episode.DurationToday},
	{[]string{"more than 2 weeks", "over two weeks", "weeks now", "a month", "months"}, episode.DurationOverTwoWeeks},
	{[]string{"1-2 weeks", "a week", "week ago", "two weeks"}, episode.DurationOneTwoWeeks},
	{[]string{"3-7 days", "several days", "few days", "4 days", "5 days", "6 days"}, episode.DurationThreeSevenDays},
	{[]string{"1-2 days", "yesterday", "a day", "two days", "day or two"}, episode.DurationOneTwoDays},
	{[]string{"chronic", "always", "years", "as long as i can remember"}, episode.DurationChronic},
}

// ParseDuration maps free text or a quick-option value to a duration bucket.
// Unparseable input defaults to 1-2 days.
func ParseDuration(text string) episode.Duration {
	lowered := strings.ToLower(text)
	// Exact enum values from quick options pass through.
	for _, d := range []episode.Duration{
		episode.DurationJustNow, episode.DurationFewHours, episode.DurationToday,
		episode.DurationOneTwoDays, episode.DurationThreeSevenDays,
		episode.DurationOneTwoWeeks, episode.DurationOverTwoWeeks, episode.DurationChronic,
	} {
		if lowered == string(d) {
			return d
		}
	}
	for _, entry := range durationKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lowered, kw) {
				return entry.value
			}
		}
	}
	return DefaultDuration
}

var severityDigits = regexp.MustCompile(`\b(10|[0-9])\b`)

// ParseSeverity extracts a 0-10 rating from free text. Word forms map to
// representative values (mild 3, moderate 5, severe 8); anything else
// defaults to 5.
func ParseSeverity(text string) int {
	lowered := strings.ToLower(text)

	if m := severityDigits.FindString(lowered); m != "" {
		n, err := strconv.Atoi(m)
		if err == nil && n >= 0 && n <= 10 {
			return n
		}
	}

	switch {
	case strings.Contains(lowered, "worst"), strings.Contains(lowered, "unbearable"):
		return 10
	case strings.Contains(lowered, "severe"), strings.Contains(lowered, "really bad"), strings.Contains(lowered, "very bad"):
		return 8
	case strings.Contains(lowered, "moderate"):
		return 5
	case strings.Contains(lowered, "mild"), strings.Contains(lowered, "slight"):
		return 3
	}
	return DefaultSeverity
}

// ParseFrequency maps free text to a frequency bucket, defaulting to
// intermittent.
func ParseFrequency(text string) episode.Frequency {
	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "constant"), strings.Contains(lowered, "all the time"), strings.Contains(lowered, "nonstop"):
		return episode.FrequencyConstant
	case strings.Contains(lowered, "first time"), strings.Contains(lowered, "never had"):
		return episode.FrequencyFirstTime
	case strings.Contains(lowered, "occasional"), strings.Contains(lowered, "sometimes"), strings.Contains(lowered, "once in a while"):
		return episode.FrequencyOccasional
	case strings.Contains(lowered, "comes and goes"), strings.Contains(lowered, "intermittent"), strings.Contains(lowered, "on and off"):
		return episode.FrequencyIntermittent
	}
	return DefaultFrequency
}

var agePattern = regexp.MustCompile(`\b(\d{1,3})\s*(years? old|yo|y/o|months? old)?\b`)

// ParseAgeGroup maps free text to an age bucket, defaulting to adult.
func ParseAgeGroup(text string) episode.AgeGroup {
	lowered := strings.ToLower(text)

	switch {
	case strings.Contains(lowered, "infant"), strings.Contains(lowered, "baby"), strings.Contains(lowered, "newborn"):
		return episode.AgeInfant
	case strings.Contains(lowered, "toddler"), strings.Contains(lowered, "child"), strings.Contains(lowered, "kid"):
		return episode.AgeChild
	case strings.Contains(lowered, "teen"):
		return episode.AgeTeen
	case strings.Contains(lowered, "senior"), strings.Contains(lowered, "elderly"), strings.Contains(lowered, "grandma"), strings.Contains(lowered, "grandpa"):
		return episode.AgeSenior
	}

	if m := agePattern.FindStringSubmatch(lowered); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			if strings.HasPrefix(m[2], "month") {
				return episode.AgeInfant
			}
			switch {
			case n < 2:
				return episode.AgeInfant
			case n < 13:
				return episode.AgeChild
			case n < 18:
				return episode.AgeTeen
			case n >= 65:
				return episode.AgeSenior
			default:
				return episode.AgeAdult
			}
		}
	}
	return DefaultAgeGroup
}

var negativeAnswers = map[string]bool{
	"no": true, "none": true, "nothing": true, "nope": true, "no others": true, "not really": true,
}

// SplitList breaks a free-text enumeration into individual items. Negative
// answers produce no items.
func SplitList(text string) []string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if negativeAnswers[lowered] {
		return nil
	}

	splitter := regexp.MustCompile(`\s*(?:,|;| and | plus |\n)\s*`)
	parts := splitter.Split(text, -1)

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || negativeAnswers[strings.ToLower(p)] {
			continue
		}
		out = append(out, p)
	}
	return out
}
