package core

import (
	"math"
	"reflect"
	"testing"
)

func mustScorer(t *testing.T) *RiskScorer {
	t.Helper()
	s, err := NewRiskScorer(DefaultWeights())
	if err != nil {
		t.Fatalf("NewRiskScorer: %v", err)
	}
	return s
}

func TestScoreEmptyFeatures(t *testing.T) {
	s := mustScorer(t)

	score, factors := s.Score(&FeatureSet{})
	if score != 0.0 {
		t.Errorf("score = %v, want 0.0", score)
	}
	if len(factors) != 0 {
		t.Errorf("factors = %v, want none", factors)
	}
}

func TestScoreSingleFeatures(t *testing.T) {
	tests := []struct {
		name       string
		features   FeatureSet
		wantScore  float64
		wantFactor string
	}{
		{
			name:       "urgency",
			features:   FeatureSet{UrgencyKeywords: true},
			wantScore:  0.25,
			wantFactor: "Contains urgency-related suspicious keywords",
		},
		{
			name:       "threat",
			features:   FeatureSet{ThreatKeywords: true},
			wantScore:  0.25,
			wantFactor: "Contains threat-related suspicious keywords",
		},
		{
			name:       "action",
			features:   FeatureSet{ActionKeywords: true},
			wantScore:  0.20,
			wantFactor: "Contains action-related suspicious keywords",
		},
		{
			name:       "reward",
			features:   FeatureSet{RewardKeywords: true},
			wantScore:  0.15,
			wantFactor: "Contains reward-related suspicious keywords",
		},
		{
			name:       "sender",
			features:   FeatureSet{SuspiciousSender: true},
			wantScore:  0.30,
			wantFactor: FactorSuspiciousSender,
		},
		{
			name:       "formatting",
			features:   FeatureSet{PoorFormatting: true},
			wantScore:  0.15,
			wantFactor: FactorPoorFormatting,
		},
		{
			name:       "sensitive",
			features:   FeatureSet{SensitiveRequests: true},
			wantScore:  0.35,
			wantFactor: FactorSensitiveRequests,
		},
	}

	s := mustScorer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, factors := s.Score(&tt.features)
			if math.Abs(score-tt.wantScore) > 1e-9 {
				t.Errorf("score = %v, want %v", score, tt.wantScore)
			}
			if len(factors) != 1 || factors[0] != tt.wantFactor {
				t.Errorf("factors = %v, want [%q]", factors, tt.wantFactor)
			}
		})
	}
}

func TestScoreURLWeightAddedOnce(t *testing.T) {
	s := mustScorer(t)

	features := &FeatureSet{
		SuspiciousURLs: []URLFinding{
			{URL: "http://a.com", IsSuspicious: true, Reasons: []string{ReasonInsecureScheme}},
			{URL: "http://1.2.3.4", IsSuspicious: true, Reasons: []string{ReasonInsecureScheme, ReasonIPHost}},
			{URL: "https://ok.com", IsSuspicious: false},
		},
	}

	score, factors := s.Score(features)
	if math.Abs(score-0.40) > 1e-9 {
		t.Errorf("score = %v, want 0.40 (URL weight applied once)", score)
	}

	want := []string{ReasonInsecureScheme, ReasonInsecureScheme, ReasonIPHost}
	if !reflect.DeepEqual(factors, want) {
		t.Errorf("factors = %v, want %v", factors, want)
	}
}

func TestScoreBenignURLsAddNothing(t *testing.T) {
	s := mustScorer(t)

	score, factors := s.Score(&FeatureSet{
		SuspiciousURLs: []URLFinding{{URL: "https://example.com", IsSuspicious: false}},
	})
	if score != 0.0 || len(factors) != 0 {
		t.Errorf("benign URLs scored: score=%v factors=%v", score, factors)
	}
}

func TestScoreClampedAtOne(t *testing.T) {
	s := mustScorer(t)

	features := &FeatureSet{
		UrgencyKeywords:   true,
		ThreatKeywords:    true,
		ActionKeywords:    true,
		RewardKeywords:    true,
		SuspiciousSender:  true,
		PoorFormatting:    true,
		SensitiveRequests: true,
		SuspiciousURLs: []URLFinding{
			{URL: "http://a.com", IsSuspicious: true, Reasons: []string{ReasonInsecureScheme}},
		},
	}

	score, factors := s.Score(features)
	if score != 1.0 {
		t.Errorf("score = %v, want exactly 1.0", score)
	}
	if len(factors) != 8 {
		t.Errorf("expected 8 factors, got %d: %v", len(factors), factors)
	}
}

func TestScoreFactorOrder(t *testing.T) {
	s := mustScorer(t)

	_, factors := s.Score(&FeatureSet{
		RewardKeywords:    true,
		UrgencyKeywords:   true,
		SuspiciousSender:  true,
		SensitiveRequests: true,
	})

	want := []string{
		"Contains urgency-related suspicious keywords",
		"Contains reward-related suspicious keywords",
		FactorSuspiciousSender,
		FactorSensitiveRequests,
	}
	if !reflect.DeepEqual(factors, want) {
		t.Errorf("factor order = %v, want %v", factors, want)
	}
}

func TestNewRiskScorerRejectsNegativeWeight(t *testing.T) {
	w := DefaultWeights()
	w.SuspiciousURLs = -0.1

	if _, err := NewRiskScorer(w); err == nil {
		t.Error("expected error for negative weight")
	}
}
