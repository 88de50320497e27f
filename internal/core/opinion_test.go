package core

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/utils"
)

// fakeLLM scripts one Complete response and records the prompt it was given.
type fakeLLM struct {
	response string
	err      error

	calls      int
	lastSystem string
	lastPrompt string
}

func (f *fakeLLM) Complete(ctx context.Context, system, prompt string, maxTokens int, temperature float32) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastPrompt = prompt
	return f.response, f.err
}

func newTestOpinion(llm LLMClient) *SecondOpinion {
	return NewSecondOpinion(llm, utils.NewTextProcessor(zap.NewNop()), zap.NewNop(),
		time.Second, 500, 0.3, 4096)
}

func TestSecondOpinionNilClient(t *testing.T) {
	op := newTestOpinion(nil)

	result := op.Analyze(context.Background(), EmailContent{}, nil)
	if result.Success {
		t.Error("expected soft failure with nil client")
	}
	if !errors.Is(result.Err, ErrNoModelConfigured) {
		t.Errorf("err = %v, want ErrNoModelConfigured", result.Err)
	}
	if len(result.AdditionalRiskFactors) != 0 {
		t.Errorf("unexpected factors: %v", result.AdditionalRiskFactors)
	}
}

func TestSecondOpinionTransportFailure(t *testing.T) {
	llm := &fakeLLM{err: errors.New("connection refused")}
	op := newTestOpinion(llm)

	result := op.Analyze(context.Background(), EmailContent{Sender: "a@b.com"}, nil)
	if result.Success {
		t.Error("expected failure result")
	}
	if result.Err == nil {
		t.Error("expected error to be carried in result")
	}
}

func TestSecondOpinionParsesFindings(t *testing.T) {
	llm := &fakeLLM{response: "1. Mismatched reply-to\n2. Generic greeting"}
	op := newTestOpinion(llm)

	result := op.Analyze(context.Background(), EmailContent{
		Subject: "Invoice overdue",
		Body:    "Pay immediately.",
		Sender:  "billing@vendor.example",
	}, []string{"Contains urgency-related suspicious keywords"})

	if !result.Success {
		t.Fatalf("expected success, got err %v", result.Err)
	}
	want := []string{
		"GPT detected: Mismatched reply-to",
		"GPT detected: Generic greeting",
	}
	if !reflect.DeepEqual(result.AdditionalRiskFactors, want) {
		t.Errorf("factors = %v, want %v", result.AdditionalRiskFactors, want)
	}
}

func TestSecondOpinionNoFindings(t *testing.T) {
	llm := &fakeLLM{response: "No additional suspicious elements found."}
	op := newTestOpinion(llm)

	result := op.Analyze(context.Background(), EmailContent{}, nil)
	if !result.Success {
		t.Fatalf("expected success, got err %v", result.Err)
	}
	if len(result.AdditionalRiskFactors) != 0 {
		t.Errorf("expected no factors, got %v", result.AdditionalRiskFactors)
	}
}

func TestSecondOpinionPromptContents(t *testing.T) {
	llm := &fakeLLM{response: "No additional suspicious elements found."}
	op := newTestOpinion(llm)

	email := EmailContent{
		Subject: "Account alert",
		Body:    "Click the link below.",
		Sender:  "alerts@example.com",
	}
	existing := []string{"Contains urgency-related suspicious keywords", "Poor email formatting"}
	op.Analyze(context.Background(), email, existing)

	if llm.calls != 1 {
		t.Fatalf("expected 1 call, got %d", llm.calls)
	}
	if llm.lastSystem != "You are a cybersecurity expert specializing in phishing detection." {
		t.Errorf("unexpected system role: %q", llm.lastSystem)
	}
	for _, part := range []string{
		"Subject: Account alert",
		"From: alerts@example.com",
		"Click the link below.",
		strings.Join(existing, ", "),
		"No additional suspicious elements found.",
	} {
		if !strings.Contains(llm.lastPrompt, part) {
			t.Errorf("prompt missing %q:\n%s", part, llm.lastPrompt)
		}
	}
}

func TestSecondOpinionTruncatesBody(t *testing.T) {
	llm := &fakeLLM{response: "No additional suspicious elements found."}
	op := NewSecondOpinion(llm, utils.NewTextProcessor(zap.NewNop()), zap.NewNop(),
		time.Second, 500, 0.3, 32)

	op.Analyze(context.Background(), EmailContent{
		Body: strings.Repeat("a", 100),
	}, nil)

	if !strings.Contains(llm.lastPrompt, "Content truncated due to size limits") {
		t.Error("oversized body was not truncated before prompting")
	}
	if strings.Contains(llm.lastPrompt, strings.Repeat("a", 100)) {
		t.Error("full body leaked into prompt")
	}
}
