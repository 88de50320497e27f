package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/utils"
)

// ErrNoModelConfigured is reported (softly) when no external model is wired
// in; analysis then proceeds on heuristics alone.
var ErrNoModelConfigured = errors.New("external model not configured")

// FactorBoost is the confidence added for each new factor the external model
// contributes during fold-back.
const FactorBoost = 0.05

const opinionSystemRole = "You are a cybersecurity expert specializing in phishing detection."

const opinionPromptFormat = `Analyze this email for phishing indicators. Identify any suspicious elements not in the existing risk factors.

Subject: %s
From: %s
Body: %s

Existing risk factors: %s

Provide ONLY new suspicious elements in this format:
1. [Specific suspicious element with brief explanation]
2. [Another suspicious element with brief explanation]

If you find nothing new, respond with "No additional suspicious elements found."`

// OpinionResult is the outcome of one second-opinion request. A failed
// request carries an error and no factors; it never aborts the pipeline.
type OpinionResult struct {
	Success               bool
	AdditionalRiskFactors []string
	Err                   error
}

// SecondOpinion asks the external model for suspicious elements the
// heuristics missed. Every failure mode (missing model, transport error,
// timeout, garbage response) degrades to an unsuccessful result.
type SecondOpinion struct {
	llm         LLMClient
	textProc    *utils.TextProcessor
	logger      *zap.Logger
	timeout     time.Duration
	maxTokens   int
	temperature float32
	maxBodySize int
}

// NewSecondOpinion creates the opinion adapter. A nil client is allowed and
// makes every request fail soft.
func NewSecondOpinion(
	llm LLMClient,
	textProc *utils.TextProcessor,
	logger *zap.Logger,
	timeout time.Duration,
	maxTokens int,
	temperature float32,
	maxBodySize int,
) *SecondOpinion {
	return &SecondOpinion{
		llm:         llm,
		textProc:    textProc,
		logger:      logger,
		timeout:     timeout,
		maxTokens:   maxTokens,
		temperature: temperature,
		maxBodySize: maxBodySize,
	}
}

// Analyze prompts the model with the email and the factors already found and
// parses its response into additional factors.
func (s *SecondOpinion) Analyze(ctx context.Context, email EmailContent, existingFactors []string) OpinionResult {
	if s.llm == nil {
		s.logger.Warn("External model not configured, skipping second opinion")
		return OpinionResult{Err: ErrNoModelConfigured}
	}

	body := email.Body
	if s.textProc != nil {
		body = s.textProc.ProcessText(body, s.maxBodySize)
	}
	prompt := fmt.Sprintf(opinionPromptFormat,
		email.Subject, email.Sender, body, strings.Join(existingFactors, ", "))

	// Bound the only blocking call in the pipeline. A timeout is treated
	// like any other model failure.
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.llm.Complete(ctx, opinionSystemRole, prompt, s.maxTokens, s.temperature)
	if err != nil {
		s.logger.Warn("Second opinion request failed",
			zap.Error(err),
			zap.String("sender", email.Sender))
		return OpinionResult{Err: err}
	}

	factors := ParseOpinion(response)
	s.logger.Debug("Second opinion parsed",
		zap.Int("additional_factors", len(factors)))

	return OpinionResult{
		Success:               true,
		AdditionalRiskFactors: factors,
	}
}
