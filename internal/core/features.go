package core

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Keyword categories checked against the normalized subject+body text. A
// single substring hit satisfies the whole category; no word boundaries are
// required. Evaluation order is fixed and mirrored by the scorer.
var phishingKeywords = []struct {
	Category string
	Keywords []string
}{
	{"urgency", []string{
		"urgent", "immediate", "action required", "account suspended",
		"limited time", "expires soon", "act now", "deadline",
	}},
	{"threat", []string{
		"suspicious activity", "security alert", "unauthorized access",
		"unusual sign-in", "security breach", "account compromised",
	}},
	{"action", []string{
		"verify your account", "confirm your identity", "validate your account",
		"click here", "login now", "update your information",
	}},
	{"reward", []string{
		"you won", "congratulations", "prize", "reward",
		"gift card", "free offer", "exclusive deal",
	}},
}

// sensitiveTerms are requests for information no legitimate email asks for.
var sensitiveTerms = []string{
	"password", "credit card", "social security", "bank account",
}

var (
	senderPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	capsRunPattern = regexp.MustCompile(`[A-Z]{4,}`)
)

// maxCapsRuns is how many ALL-CAPS runs a body may contain before it counts
// as poorly formatted.
const maxCapsRuns = 2

// ValidSenderFormat reports whether the address matches a standard
// local@domain.tld shape.
func ValidSenderFormat(sender string) bool {
	return senderPattern.MatchString(sender)
}

// FeatureExtractor turns an email into the FeatureSet consumed by the scorer.
type FeatureExtractor struct {
	urls   *URLAnalyzer
	logger *zap.Logger
}

// NewFeatureExtractor creates a feature extractor backed by the given URL
// analyzer.
func NewFeatureExtractor(urls *URLAnalyzer, logger *zap.Logger) *FeatureExtractor {
	return &FeatureExtractor{
		urls:   urls,
		logger: logger,
	}
}

// Extract scans the email for the signals the scorer knows how to weigh.
func (e *FeatureExtractor) Extract(email EmailContent) *FeatureSet {
	combined := strings.ToLower(email.Subject) + " " + strings.ToLower(email.Body)

	features := &FeatureSet{
		SuspiciousURLs:    e.urls.Analyze(email.Body),
		SuspiciousSender:  !ValidSenderFormat(email.Sender),
		PoorFormatting:    len(capsRunPattern.FindAllString(email.Body, -1)) > maxCapsRuns,
		SensitiveRequests: containsAny(combined, sensitiveTerms),
	}

	for _, cat := range phishingKeywords {
		hit := containsAny(combined, cat.Keywords)
		switch cat.Category {
		case "urgency":
			features.UrgencyKeywords = hit
		case "threat":
			features.ThreatKeywords = hit
		case "action":
			features.ActionKeywords = hit
		case "reward":
			features.RewardKeywords = hit
		}
	}

	if e.logger != nil {
		e.logger.Debug("Extracted features",
			zap.Bool("urgency", features.UrgencyKeywords),
			zap.Bool("threat", features.ThreatKeywords),
			zap.Bool("action", features.ActionKeywords),
			zap.Bool("reward", features.RewardKeywords),
			zap.Int("urls", len(features.SuspiciousURLs)),
			zap.Bool("suspicious_sender", features.SuspiciousSender),
			zap.Bool("poor_formatting", features.PoorFormatting),
			zap.Bool("sensitive_requests", features.SensitiveRequests))
	}

	return features
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
