package core

import (
	"testing"

	"go.uber.org/zap"
)

func newTestExtractor() *FeatureExtractor {
	return NewFeatureExtractor(NewURLAnalyzer(nil, zap.NewNop()), zap.NewNop())
}

func TestValidSenderFormat(t *testing.T) {
	tests := []struct {
		sender string
		want   bool
	}{
		{"alice@example.com", true},
		{"bob.smith+tag@sub.example.org", true},
		{"security@paypa1-secure.com", true},
		{"noreply", false},
		{"bad@@example.com", false},
		{"user@domain", false},
		{"user@domain.c", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidSenderFormat(tt.sender); got != tt.want {
			t.Errorf("ValidSenderFormat(%q) = %v, want %v", tt.sender, got, tt.want)
		}
	}
}

func TestExtractKeywordCategories(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		body    string
		check   func(*FeatureSet) bool
	}{
		{
			name:    "urgency in subject",
			subject: "URGENT: respond today",
			body:    "hello",
			check:   func(f *FeatureSet) bool { return f.UrgencyKeywords },
		},
		{
			name:    "threat in body",
			subject: "notice",
			body:    "We noticed suspicious activity on your account.",
			check:   func(f *FeatureSet) bool { return f.ThreatKeywords },
		},
		{
			name:    "action phrase",
			subject: "notice",
			body:    "Please verify your account immediately.",
			check:   func(f *FeatureSet) bool { return f.ActionKeywords },
		},
		{
			name:    "reward phrase",
			subject: "Congratulations!",
			body:    "You are our lucky visitor.",
			check:   func(f *FeatureSet) bool { return f.RewardKeywords },
		},
		{
			name:    "sensitive request",
			subject: "notice",
			body:    "Reply with your credit card number.",
			check:   func(f *FeatureSet) bool { return f.SensitiveRequests },
		},
	}

	e := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := e.Extract(EmailContent{
				Subject: tt.subject,
				Body:    tt.body,
				Sender:  "alice@example.com",
			})
			if !tt.check(features) {
				t.Errorf("expected feature flag for %q / %q", tt.subject, tt.body)
			}
		})
	}
}

func TestExtractCleanEmail(t *testing.T) {
	e := newTestExtractor()
	features := e.Extract(EmailContent{
		Subject: "Team lunch on Friday",
		Body:    "Shall we do pizza at noon? Let me know.",
		Sender:  "alice@example.com",
	})

	if features.UrgencyKeywords || features.ThreatKeywords || features.ActionKeywords || features.RewardKeywords {
		t.Error("clean email triggered keyword flags")
	}
	if features.SuspiciousSender {
		t.Error("valid sender flagged")
	}
	if features.PoorFormatting {
		t.Error("clean body flagged as poorly formatted")
	}
	if features.SensitiveRequests {
		t.Error("clean body flagged for sensitive requests")
	}
	if len(features.SuspiciousURLs) != 0 {
		t.Errorf("unexpected URL findings: %v", features.SuspiciousURLs)
	}
}

func TestExtractPoorFormatting(t *testing.T) {
	e := newTestExtractor()

	shouty := e.Extract(EmailContent{
		Subject: "hi",
		Body:    "FREE OFFER CLICK HERE",
		Sender:  "alice@example.com",
	})
	if !shouty.PoorFormatting {
		t.Error("four all-caps runs should count as poor formatting")
	}

	// Two runs is still within tolerance.
	calm := e.Extract(EmailContent{
		Subject: "hi",
		Body:    "Our ASAP NASA briefing is tomorrow.",
		Sender:  "alice@example.com",
	})
	if calm.PoorFormatting {
		t.Error("two all-caps runs flagged as poor formatting")
	}
}

func TestExtractSuspiciousSender(t *testing.T) {
	e := newTestExtractor()
	features := e.Extract(EmailContent{
		Subject: "hi",
		Body:    "hello",
		Sender:  "not-an-address",
	})
	if !features.SuspiciousSender {
		t.Error("malformed sender not flagged")
	}
}

func TestExtractURLsFromBodyOnly(t *testing.T) {
	e := newTestExtractor()
	features := e.Extract(EmailContent{
		Subject: "see http://192.168.1.1/a",
		Body:    "no links here",
		Sender:  "alice@example.com",
	})
	if len(features.SuspiciousURLs) != 0 {
		t.Errorf("subject URLs should not be analyzed, got %v", features.SuspiciousURLs)
	}
}
