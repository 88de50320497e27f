package gateway

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/core"
)

func newTestSession() *smtpSession {
	g := NewSMTPGateway(nil, zap.NewNop(), "127.0.0.1:0", false,
		"X-Phishing-Flag", "X-Phishing-Confidence", "X-Phishing-Summary",
		"127.0.0.1", 10026, false)
	return &smtpSession{gateway: g}
}

func TestStampHeadersWithVerdict(t *testing.T) {
	s := newTestSession()
	raw := "From: a@b.com\r\nSubject: hi\r\n\r\nOriginal body text.\r\n"
	msg := parseMessage(t, raw)

	stamped := string(s.stampHeaders(msg, []byte(raw), &core.PhishingAnalysis{
		IsPhishing: true,
		Confidence: 0.8765,
		Summary:    "bad email",
	}))

	for _, want := range []string{
		"X-Phishing-Flag: true\r\n",
		"X-Phishing-Confidence: 0.8765\r\n",
		"X-Phishing-Summary: bad email\r\n",
		"Subject: hi\r\n",
		"Original body text.",
	} {
		if !strings.Contains(stamped, want) {
			t.Errorf("stamped message missing %q:\n%s", want, stamped)
		}
	}

	headers, _, ok := strings.Cut(stamped, "\r\n\r\n")
	if !ok {
		t.Fatal("no header/body separator in stamped message")
	}
	if strings.Contains(headers, "Original body text.") {
		t.Error("body leaked into header block")
	}
}

func TestStampHeadersWithoutAnalysis(t *testing.T) {
	s := newTestSession()
	raw := "From: a@b.com\r\nSubject: hi\r\n\r\nbody\r\n"
	msg := parseMessage(t, raw)

	stamped := string(s.stampHeaders(msg, []byte(raw), nil))

	if !strings.Contains(stamped, "X-Phishing-Analysis-Error: analysis unavailable\r\n") {
		t.Errorf("missing error header:\n%s", stamped)
	}
	if strings.Contains(stamped, "X-Phishing-Flag") {
		t.Error("verdict headers stamped without an analysis")
	}
	if !strings.Contains(stamped, "body") {
		t.Error("original body lost")
	}
}

func TestStampHeadersPreservesBareLFBody(t *testing.T) {
	s := newTestSession()
	raw := "From: a@b.com\nSubject: hi\n\nbare newline body\n"
	msg := parseMessage(t, raw)

	stamped := string(s.stampHeaders(msg, []byte(raw), &core.PhishingAnalysis{Summary: "ok"}))
	if !strings.Contains(stamped, "bare newline body") {
		t.Errorf("LF-separated body lost:\n%s", stamped)
	}
}

func TestSanitizeHeaderValue(t *testing.T) {
	got := sanitizeHeaderValue("line one\r\nX-Injected: gotcha\nmore")
	if strings.ContainsAny(got, "\r\n") {
		t.Errorf("header value still contains line breaks: %q", got)
	}
}

func TestSessionReset(t *testing.T) {
	s := newTestSession()
	s.sender = "a@b.com"
	s.recipients = []string{"x@y.com"}

	s.Reset()
	if s.sender != "" || len(s.recipients) != 0 {
		t.Errorf("session not cleared: sender=%q recipients=%v", s.sender, s.recipients)
	}
}
