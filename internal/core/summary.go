package core

import (
	"fmt"
	"strings"
)

// BenignSummary is the fixed verdict for emails below the phishing threshold.
const BenignSummary = "Looks good! We didn't find anything fishy about this email. 👍"

const phishingSummaryFormat = "⚠️ Watch out! This looks like a scam email because it %s. Stay safe and don't click any links!"

// GenerateSummary renders a one-sentence plain-language verdict from the
// final factors and URL findings. It is independent of the scoring math.
func GenerateSummary(isPhishing bool, riskFactors []string, urls []URLFinding) string {
	if !isPhishing {
		return BenignSummary
	}

	var points []string
	if anyFactorContains(riskFactors, "keyword") {
		points = append(points, "uses language tricks to pressure or scare you")
	}
	if anySuspicious(urls) {
		points = append(points, "contains fake or dangerous links")
	}
	// Prefix match so the clause fires for the scorer's "Suspicious sender
	// email format" wording.
	if anyFactorHasPrefix(riskFactors, "Suspicious sender") {
		points = append(points, "comes from a sketchy email address")
	}

	return fmt.Sprintf(phishingSummaryFormat, strings.Join(points, ", "))
}

func anyFactorContains(factors []string, substr string) bool {
	for _, f := range factors {
		if strings.Contains(strings.ToLower(f), substr) {
			return true
		}
	}
	return false
}

func anyFactorHasPrefix(factors []string, prefix string) bool {
	for _, f := range factors {
		if strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}
