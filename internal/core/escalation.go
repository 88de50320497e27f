package core

import (
	"strings"
)

// Escalation bands. External opinions are spent only on ambiguous middle-band
// or evidence-poor cases; confident verdicts in either direction skip the
// call entirely.
const (
	escalateFloor    = 0.2
	escalateCeiling  = 0.8
	grayBandLow      = 0.4
	grayBandHigh     = 0.6
	fewFactorsCutoff = 3
)

// ShouldEscalate decides whether to ask the external model for a second
// opinion. The rules are evaluated in order, first match wins. The two middle
// rules overlap; they are kept as written because collapsing them would shift
// behavior at band boundaries.
func ShouldEscalate(confidence float64, riskFactors []string) bool {
	if confidence < escalateFloor {
		return false
	}
	if confidence > escalateCeiling {
		return false
	}
	if confidence >= escalateFloor && confidence <= escalateCeiling && len(riskFactors) < fewFactorsCutoff {
		return true
	}
	if confidence >= grayBandLow && confidence <= grayBandHigh {
		return true
	}
	return false
}

// NoFindingsPhrase is the escape phrase the model is instructed to use when
// it has nothing to add. Its presence anywhere in the response means an empty
// finding list, not an error.
const NoFindingsPhrase = "No additional suspicious elements found"

// ModelFactorPrefix marks risk factors that originate from the external model
// rather than the heuristics.
const ModelFactorPrefix = "GPT detected: "

// ParseOpinion extracts findings from the model's free-text response. Only
// numbered ("1. ...") or bulleted ("- ...") lines count; everything else is
// ignored. Parsing is deliberately isolated here so malformed output can be
// exercised without any network code.
func ParseOpinion(text string) []string {
	if strings.Contains(text, NoFindingsPhrase) {
		return nil
	}

	var factors []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		var finding string
		switch {
		case trimmed[0] >= '0' && trimmed[0] <= '9' && strings.Contains(trimmed, ". "):
			_, rest, _ := strings.Cut(trimmed, ".")
			finding = strings.TrimSpace(rest)
		case strings.HasPrefix(trimmed, "- "):
			finding = strings.TrimSpace(trimmed[2:])
		default:
			continue
		}

		if finding != "" {
			factors = append(factors, ModelFactorPrefix+finding)
		}
	}
	return factors
}
