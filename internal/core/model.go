package core

import (
	"time"
)

// EmailContent is the raw input to one analysis. Empty fields are legal and
// simply contribute nothing to the score.
type EmailContent struct {
	Subject string
	Body    string
	Sender  string
}

// URLFinding records the verdict for a single URL extracted from an email body.
type URLFinding struct {
	URL          string   `json:"url"`
	Domain       string   `json:"domain"`
	IsSuspicious bool     `json:"is_suspicious"`
	Reasons      []string `json:"reasons"`
}

// FeatureSet holds the signals extracted from one email. It lives only for the
// duration of a single scoring call.
type FeatureSet struct {
	UrgencyKeywords   bool
	ThreatKeywords    bool
	ActionKeywords    bool
	RewardKeywords    bool
	SuspiciousURLs    []URLFinding
	SuspiciousSender  bool
	PoorFormatting    bool
	SensitiveRequests bool
}

// PhishingAnalysis is the final result of one scan. It is never mutated after
// construction.
type PhishingAnalysis struct {
	IsPhishing        bool         `json:"is_phishing"`
	Confidence        float64      `json:"confidence"`
	RiskFactors       []string     `json:"risk_factors"`
	SuspiciousURLs    []URLFinding `json:"suspicious_urls"`
	AnalysisTimestamp time.Time    `json:"analysis_timestamp"`
	Summary           string       `json:"summary"`
}

// ScanRecord is the persisted trace of one completed scan.
type ScanRecord struct {
	CallerID   string
	Subject    string
	IsPhishing bool
	Confidence float64
	ScannedAt  time.Time
}
