package core

import (
	"strings"
	"testing"
)

func TestGenerateSummaryBenign(t *testing.T) {
	got := GenerateSummary(false, []string{"Contains urgency-related suspicious keywords"}, nil)
	if got != BenignSummary {
		t.Errorf("benign summary = %q, want %q", got, BenignSummary)
	}
}

func TestGenerateSummaryPhishing(t *testing.T) {
	suspicious := []URLFinding{{URL: "http://paypa1.com", IsSuspicious: true, Reasons: []string{ReasonInsecureScheme}}}
	benignURLs := []URLFinding{{URL: "https://example.com", IsSuspicious: false}}

	tests := []struct {
		name        string
		factors     []string
		urls        []URLFinding
		wantClauses []string
		skipClauses []string
	}{
		{
			name:        "keywords only",
			factors:     []string{"Contains urgency-related suspicious keywords"},
			wantClauses: []string{"uses language tricks to pressure or scare you"},
			skipClauses: []string{"contains fake or dangerous links", "comes from a sketchy email address"},
		},
		{
			name:        "links only",
			urls:        suspicious,
			wantClauses: []string{"contains fake or dangerous links"},
			skipClauses: []string{"uses language tricks"},
		},
		{
			name:        "sender only",
			factors:     []string{FactorSuspiciousSender},
			wantClauses: []string{"comes from a sketchy email address"},
			skipClauses: []string{"uses language tricks", "contains fake or dangerous links"},
		},
		{
			name: "all three clauses",
			factors: []string{
				"Contains threat-related suspicious keywords",
				FactorSuspiciousSender,
			},
			urls: suspicious,
			wantClauses: []string{
				"uses language tricks to pressure or scare you, contains fake or dangerous links, comes from a sketchy email address",
			},
		},
		{
			name:        "benign urls do not trigger link clause",
			factors:     []string{"Contains reward-related suspicious keywords"},
			urls:        benignURLs,
			wantClauses: []string{"uses language tricks"},
			skipClauses: []string{"contains fake or dangerous links"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSummary(true, tt.factors, tt.urls)

			if !strings.HasPrefix(got, "⚠️ Watch out!") {
				t.Errorf("summary missing warning prefix: %q", got)
			}
			if !strings.HasSuffix(got, "Stay safe and don't click any links!") {
				t.Errorf("summary missing closing advice: %q", got)
			}
			for _, clause := range tt.wantClauses {
				if !strings.Contains(got, clause) {
					t.Errorf("summary %q missing clause %q", got, clause)
				}
			}
			for _, clause := range tt.skipClauses {
				if strings.Contains(got, clause) {
					t.Errorf("summary %q has unexpected clause %q", got, clause)
				}
			}
		})
	}
}
