package core

import (
	"fmt"
)

// Risk factor texts emitted by the scorer. The summary generator matches on
// this wording, so it must stay in sync.
const (
	FactorSuspiciousSender  = "Suspicious sender email format"
	FactorPoorFormatting    = "Poor email formatting"
	FactorSensitiveRequests = "Requests for sensitive information"

	keywordFactorFormat = "Contains %s-related suspicious keywords"
)

// Weights holds the additive contribution of each feature. The weights are
// hand-set and can sum past 1.0; the final score is clamped.
type Weights struct {
	UrgencyKeywords   float64
	ThreatKeywords    float64
	ActionKeywords    float64
	RewardKeywords    float64
	SuspiciousURLs    float64
	SuspiciousSender  float64
	PoorFormatting    float64
	SensitiveRequests float64
}

// DefaultWeights returns the stock weight table.
func DefaultWeights() Weights {
	return Weights{
		UrgencyKeywords:   0.25,
		ThreatKeywords:    0.25,
		ActionKeywords:    0.20,
		RewardKeywords:    0.15,
		SuspiciousURLs:    0.40,
		SuspiciousSender:  0.30,
		PoorFormatting:    0.15,
		SensitiveRequests: 0.35,
	}
}

// Validate rejects weight tables that would break the score's monotonicity.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"urgency_keywords":   w.UrgencyKeywords,
		"threat_keywords":    w.ThreatKeywords,
		"action_keywords":    w.ActionKeywords,
		"reward_keywords":    w.RewardKeywords,
		"suspicious_urls":    w.SuspiciousURLs,
		"suspicious_sender":  w.SuspiciousSender,
		"poor_formatting":    w.PoorFormatting,
		"sensitive_requests": w.SensitiveRequests,
	} {
		if v < 0 {
			return fmt.Errorf("negative weight for %s: %v", name, v)
		}
	}
	return nil
}

// RiskScorer maps a FeatureSet to a confidence score in [0,1] and an ordered
// list of human-readable risk factors.
type RiskScorer struct {
	weights Weights
}

// NewRiskScorer creates a scorer with the given weight table.
func NewRiskScorer(weights Weights) (*RiskScorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &RiskScorer{weights: weights}, nil
}

// Score accumulates weights for every triggered feature, in fixed order:
// keyword categories, URLs, sender, formatting, sensitive requests. The URL
// weight is added at most once no matter how many URLs are suspicious, but
// every suspicious URL contributes its reasons to the factor list.
func (s *RiskScorer) Score(features *FeatureSet) (float64, []string) {
	score := 0.0
	var riskFactors []string

	keywordFlags := []struct {
		category string
		hit      bool
		weight   float64
	}{
		{"urgency", features.UrgencyKeywords, s.weights.UrgencyKeywords},
		{"threat", features.ThreatKeywords, s.weights.ThreatKeywords},
		{"action", features.ActionKeywords, s.weights.ActionKeywords},
		{"reward", features.RewardKeywords, s.weights.RewardKeywords},
	}
	for _, kw := range keywordFlags {
		if kw.hit {
			score += kw.weight
			riskFactors = append(riskFactors, fmt.Sprintf(keywordFactorFormat, kw.category))
		}
	}

	if anySuspicious(features.SuspiciousURLs) {
		score += s.weights.SuspiciousURLs
		for _, finding := range features.SuspiciousURLs {
			if finding.IsSuspicious {
				riskFactors = append(riskFactors, finding.Reasons...)
			}
		}
	}

	if features.SuspiciousSender {
		score += s.weights.SuspiciousSender
		riskFactors = append(riskFactors, FactorSuspiciousSender)
	}
	if features.PoorFormatting {
		score += s.weights.PoorFormatting
		riskFactors = append(riskFactors, FactorPoorFormatting)
	}
	if features.SensitiveRequests {
		score += s.weights.SensitiveRequests
		riskFactors = append(riskFactors, FactorSensitiveRequests)
	}

	return clampScore(score), riskFactors
}

func anySuspicious(findings []URLFinding) bool {
	for _, f := range findings {
		if f.IsSuspicious {
			return true
		}
	}
	return false
}

// clampScore caps the additive score at 1.0. The clamp is the only
// normalization applied.
func clampScore(score float64) float64 {
	if score > 1.0 {
		return 1.0
	}
	return score
}
