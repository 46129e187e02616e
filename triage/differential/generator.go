package differential

import (
	"sort"
	"strings"

	"github.com/carebridge/symptom-triage/triage/episode"
)

const maxPossibilities = 3

// Generate evaluates every pattern against the accumulated context text and
// returns at most three unique-by-name possibilities, ranked by likelihood.
// A generic further-evaluation placeholder is returned when nothing matches;
// callers never receive an empty list.
func Generate(ctx episode.HealthContext, assessment episode.SafetyAssessment) []episode.DifferentialPossibility {
	text := ctx.JoinedText()

	var collected []episode.DifferentialPossibility
	for _, p := range patterns {
		collected = append(collected, evaluate(p, text, ctx.AgeGroup)...)
	}

	if len(collected) == 0 {
		return []episode.DifferentialPossibility{genericPlaceholder()}
	}

	// Stable sort keeps pattern order for equal likelihoods.
	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].Likelihood.Rank() < collected[j].Likelihood.Rank()
	})

	return dedupeByName(collected, maxPossibilities)
}

// evaluate applies one pattern's gates and upgrades against the joined text.
func evaluate(p pattern, text string, age episode.AgeGroup) []episode.DifferentialPossibility {
	matchedRequired := matchAny(text, p.RequiredSymptoms)
	if len(matchedRequired) == 0 {
		return nil
	}
	// Hard exclusion, even when required symptoms match.
	if len(matchAny(text, p.ExcludingSymptoms)) > 0 {
		return nil
	}

	matchedOptional := matchAny(text, p.OptionalSymptoms)
	upgrade := len(matchedOptional) >= 2

	supporting := append(matchedRequired, matchedOptional...)

	var out []episode.DifferentialPossibility
	for _, cand := range p.Possibilities {
		out = append(out, build(cand, supporting, upgrade))
	}
	if age.IsPediatric() {
		for _, cand := range p.PediatricExtra {
			out = append(out, build(cand, supporting, upgrade))
		}
	}
	if age == episode.AgeSenior {
		for _, cand := range p.SeniorExtra {
			out = append(out, build(cand, supporting, upgrade))
		}
	}
	return out
}

func build(cand possibility, supporting []string, upgrade bool) episode.DifferentialPossibility {
	likelihood := cand.Likelihood
	if upgrade {
		likelihood = likelihood.Upgrade()
	}
	factors := make([]string, len(supporting))
	copy(factors, supporting)
	return episode.DifferentialPossibility{
		Name:                cand.Name,
		Description:         cand.Description,
		Likelihood:          likelihood,
		SupportingFactors:   factors,
		TypicalPresentation: cand.TypicalPresentation,
	}
}

func matchAny(text string, keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func dedupeByName(list []episode.DifferentialPossibility, limit int) []episode.DifferentialPossibility {
	seen := make(map[string]bool, limit)
	out := make([]episode.DifferentialPossibility, 0, limit)
	for _, p := range list {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}

func genericPlaceholder() episode.DifferentialPossibility {
	return episode.DifferentialPossibility{
		Name:                "Further evaluation needed",
		Description:         "The described symptoms do not clearly match a common pattern",
		Likelihood:          episode.LikelihoodLow,
		TypicalPresentation: "A clinician can help narrow down what is going on",
	}
}
