package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrScanLimitReached rejects a request before the pipeline runs when the
// caller is out of quota.
var ErrScanLimitReached = errors.New("scan limit reached")

// phishingThreshold is the strict cutoff for the final verdict: a confidence
// of exactly 0.5 is not phishing.
const phishingThreshold = 0.5

// AnalyzerService runs the full scoring pipeline for one email: extract,
// score, optionally escalate to the external model, summarize, record.
// It holds no cross-request state; concurrent calls need no coordination.
type AnalyzerService struct {
	extractor      *FeatureExtractor
	scorer         *RiskScorer
	opinion        *SecondOpinion
	quota          QuotaChecker
	store          ScanStore
	logger         *zap.Logger
	trustedDomains []string
}

// NewAnalyzerService creates the analyzer. Quota and store may be nil, in
// which case the corresponding steps are skipped (the CLI runs this way).
func NewAnalyzerService(
	extractor *FeatureExtractor,
	scorer *RiskScorer,
	opinion *SecondOpinion,
	quota QuotaChecker,
	store ScanStore,
	logger *zap.Logger,
	trustedDomains []string,
) *AnalyzerService {
	return &AnalyzerService{
		extractor:      extractor,
		scorer:         scorer,
		opinion:        opinion,
		quota:          quota,
		store:          store,
		logger:         logger,
		trustedDomains: trustedDomains,
	}
}

// isTrustedSender checks if the sender's domain is on the trusted list.
func (s *AnalyzerService) isTrustedSender(sender string) bool {
	parts := strings.Split(sender, "@")
	if len(parts) != 2 {
		return false
	}
	domain := strings.ToLower(parts[1])

	for _, trusted := range s.trustedDomains {
		if strings.EqualFold(domain, trusted) {
			return true
		}
	}
	return false
}

// Analyze scores one email. The caller always gets either a complete
// analysis or an explicit rejection; external-model trouble never surfaces.
func (s *AnalyzerService) Analyze(ctx context.Context, callerID string, email EmailContent) (*PhishingAnalysis, error) {
	if s.quota != nil {
		allowed, err := s.quota.MayScan(ctx, callerID)
		if err != nil {
			return nil, fmt.Errorf("quota check failed: %w", err)
		}
		if !allowed {
			s.logger.Info("Scan rejected, quota exhausted",
				zap.String("caller", callerID))
			return nil, ErrScanLimitReached
		}
	}

	if s.isTrustedSender(email.Sender) {
		s.logger.Info("Skipping analysis for trusted sender domain",
			zap.String("sender", email.Sender),
			zap.String("action", "trust_bypass"))
		analysis := &PhishingAnalysis{
			Confidence:        0.0,
			RiskFactors:       []string{},
			AnalysisTimestamp: time.Now().UTC(),
			Summary:           BenignSummary,
		}
		s.record(ctx, callerID, email.Subject, analysis)
		return analysis, nil
	}

	features := s.extractor.Extract(email)
	confidence, riskFactors := s.scorer.Score(features)

	if s.opinion != nil && ShouldEscalate(confidence, riskFactors) {
		s.logger.Debug("Escalating to external model",
			zap.Float64("confidence", confidence),
			zap.Int("risk_factors", len(riskFactors)))

		result := s.opinion.Analyze(ctx, email, riskFactors)
		if result.Success {
			riskFactors = append(riskFactors, result.AdditionalRiskFactors...)
			confidence = clampScore(confidence + FactorBoost*float64(len(result.AdditionalRiskFactors)))
		}
		// On failure the adapter has already logged; the heuristic
		// result stands untouched.
	}

	isPhishing := confidence > phishingThreshold
	analysis := &PhishingAnalysis{
		IsPhishing:        isPhishing,
		Confidence:        confidence,
		RiskFactors:       riskFactors,
		SuspiciousURLs:    features.SuspiciousURLs,
		AnalysisTimestamp: time.Now().UTC(),
		Summary:           GenerateSummary(isPhishing, riskFactors, features.SuspiciousURLs),
	}

	s.logger.Info("Email analyzed",
		zap.String("caller", callerID),
		zap.Bool("is_phishing", analysis.IsPhishing),
		zap.Float64("confidence", analysis.Confidence),
		zap.Int("risk_factors", len(analysis.RiskFactors)))

	s.record(ctx, callerID, email.Subject, analysis)
	return analysis, nil
}

// record persists the scan outcome best-effort. A store failure never
// invalidates an already-computed analysis.
func (s *AnalyzerService) record(ctx context.Context, callerID, subject string, analysis *PhishingAnalysis) {
	if s.store == nil {
		return
	}
	rec := &ScanRecord{
		CallerID:   callerID,
		Subject:    subject,
		IsPhishing: analysis.IsPhishing,
		Confidence: analysis.Confidence,
		ScannedAt:  analysis.AnalysisTimestamp,
	}
	if err := s.store.RecordScan(ctx, rec); err != nil {
		s.logger.Error("Failed to record scan", zap.Error(err),
			zap.String("caller", callerID))
	}
}
