package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/core"
)

// SMTPGateway receives mail over SMTP, runs each message through the
// analyzer, stamps the verdict into headers and relays the message upstream.
type SMTPGateway struct {
	service          *core.AnalyzerService
	logger           *zap.Logger
	listenAddr       string
	server           *smtp.Server
	blockPhishing    bool
	flagHeader       string
	confidenceHeader string
	summaryHeader    string
	relayAddr        string
	relayPort        int
	relayEnabled     bool
}

// NewSMTPGateway creates a new SMTP gateway in front of the analyzer.
func NewSMTPGateway(
	service *core.AnalyzerService,
	logger *zap.Logger,
	listenAddr string,
	blockPhishing bool,
	flagHeader string,
	confidenceHeader string,
	summaryHeader string,
	relayAddr string,
	relayPort int,
	relayEnabled bool,
) *SMTPGateway {
	return &SMTPGateway{
		service:          service,
		logger:           logger,
		listenAddr:       listenAddr,
		blockPhishing:    blockPhishing,
		flagHeader:       flagHeader,
		confidenceHeader: confidenceHeader,
		summaryHeader:    summaryHeader,
		relayAddr:        relayAddr,
		relayPort:        relayPort,
		relayEnabled:     relayEnabled,
	}
}

// Start starts the SMTP server.
func (g *SMTPGateway) Start() error {
	g.server = smtp.NewServer(&smtpBackend{gateway: g})

	g.server.Addr = g.listenAddr
	g.server.Domain = "localhost"
	g.server.ReadTimeout = 30 * time.Second
	g.server.WriteTimeout = 30 * time.Second
	g.server.MaxMessageBytes = 30 * 1024 * 1024
	g.server.MaxRecipients = 50
	g.server.AllowInsecureAuth = true

	g.logger.Info("SMTP gateway starting", zap.String("address", g.listenAddr))

	go func() {
		if err := g.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				g.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP server.
func (g *SMTPGateway) Stop() error {
	if g.server != nil {
		return g.server.Close()
	}
	return nil
}

// ProcessEmail analyzes a single email on behalf of a caller.
func (g *SMTPGateway) ProcessEmail(ctx context.Context, callerID string, email core.EmailContent) (*core.PhishingAnalysis, error) {
	return g.service.Analyze(ctx, callerID, email)
}

// relayUpstream hands the stamped message to the next hop.
func (g *SMTPGateway) relayUpstream(sender string, recipients []string, data []byte) error {
	addr := fmt.Sprintf("%s:%d", g.relayAddr, g.relayPort)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to upstream: %w", err)
	}
	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}
	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	accepted := false
	for _, rcpt := range recipients {
		if err := c.Rcpt(rcpt, nil); err != nil {
			g.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", rcpt),
				zap.Error(err))
			continue
		}
		accepted = true
	}
	if !accepted {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send message data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		g.logger.Warn("QUIT command failed", zap.Error(err))
	}
	return nil
}

// smtpBackend implements the go-smtp Backend interface.
type smtpBackend struct {
	gateway *SMTPGateway
}

// NewSession creates a new SMTP session.
func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		gateway:    b.gateway,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface.
type smtpSession struct {
	gateway    *SMTPGateway
	sender     string
	recipients []string
}

// Reset resets the session state.
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// AuthPlain handles PLAIN authentication (not needed for the gateway).
func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address.
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient.
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data receives the message, analyzes it and relays the stamped result.
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.gateway.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		s.gateway.logger.Error("Failed to parse email message", zap.Error(err))
		return err
	}

	body, err := ExtractText(msg)
	if err != nil {
		s.gateway.logger.Error("Failed to extract text content", zap.Error(err))
		return err
	}

	email := core.EmailContent{
		Subject: DecodeHeader(msg.Header.Get("Subject")),
		Body:    body,
		Sender:  s.sender,
	}

	// The protected mailbox is the caller whose quota the scan consumes.
	callerID := s.sender
	if len(s.recipients) > 0 {
		callerID = s.recipients[0]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	analysis, err := s.gateway.ProcessEmail(ctx, callerID, email)
	if err != nil {
		if errors.Is(err, core.ErrScanLimitReached) {
			s.gateway.logger.Info("Rejecting message, caller out of quota",
				zap.String("caller", callerID))
			return fmt.Errorf("452 Scan limit reached for %s", callerID)
		}
		// Analysis trouble must not eat mail: pass the message through
		// unstamped.
		s.gateway.logger.Error("Failed to analyze email",
			zap.Error(err),
			zap.String("sender", s.sender))
		analysis = nil
	}

	if analysis != nil && analysis.IsPhishing && s.gateway.blockPhishing {
		s.gateway.logger.Info("Rejecting phishing email",
			zap.String("from", s.sender),
			zap.Float64("confidence", analysis.Confidence),
			zap.Strings("risk_factors", analysis.RiskFactors))
		return fmt.Errorf("550 Rejected as phishing (confidence: %.2f)", analysis.Confidence)
	}

	stamped := s.stampHeaders(msg, rawData, analysis)

	if s.gateway.relayEnabled {
		if err := s.gateway.relayUpstream(s.sender, s.recipients, stamped); err != nil {
			s.gateway.logger.Error("Failed to relay message upstream",
				zap.Error(err),
				zap.String("sender", s.sender))
			return err
		}
	} else {
		s.gateway.logger.Warn("Upstream relay disabled, message dropped after analysis")
	}

	if analysis != nil {
		s.gateway.logger.Info("Processed email",
			zap.String("from", s.sender),
			zap.Bool("is_phishing", analysis.IsPhishing),
			zap.Float64("confidence", analysis.Confidence))
	}
	return nil
}

// stampHeaders rewrites the message with the verdict headers prepended,
// preserving the original headers and body bytes.
func (s *smtpSession) stampHeaders(msg *mail.Message, rawData []byte, analysis *core.PhishingAnalysis) []byte {
	var out bytes.Buffer

	if analysis != nil {
		fmt.Fprintf(&out, "%s: %t\r\n", s.gateway.flagHeader, analysis.IsPhishing)
		fmt.Fprintf(&out, "%s: %.4f\r\n", s.gateway.confidenceHeader, analysis.Confidence)
		fmt.Fprintf(&out, "%s: %s\r\n", s.gateway.summaryHeader, sanitizeHeaderValue(analysis.Summary))
	} else {
		fmt.Fprintf(&out, "X-Phishing-Analysis-Error: analysis unavailable\r\n")
	}

	for key, values := range msg.Header {
		for _, value := range values {
			fmt.Fprintf(&out, "%s: %s\r\n", key, value)
		}
	}
	fmt.Fprintf(&out, "\r\n")

	// Reattach the original body bytes so MIME parts and attachments
	// survive untouched.
	if idx := bytes.Index(rawData, []byte("\r\n\r\n")); idx != -1 {
		out.Write(rawData[idx+4:])
	} else if idx := bytes.Index(rawData, []byte("\n\n")); idx != -1 {
		out.Write(rawData[idx+2:])
	}

	return out.Bytes()
}

// Logout handles SMTP logout (not needed for the gateway).
func (s *smtpSession) Logout() error {
	return nil
}

func sanitizeHeaderValue(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
