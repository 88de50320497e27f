package core

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Reasons attached to URL findings. The scorer copies these verbatim into the
// risk factor list, so the wording is part of the result contract.
const (
	ReasonInvalidURL     = "Invalid URL format"
	ReasonInsecureScheme = "Non-secure protocol (HTTP)"
	ReasonIPHost         = "IP address in URL"
)

// similarDomainThreshold is the similarity ratio above which a domain is
// considered a likely typosquat of a well-known one.
const similarDomainThreshold = 0.8

var (
	// urlPattern matches URL literals by shape rather than full grammar.
	// Trailing punctuation may be swallowed; that is an accepted limitation.
	urlPattern = regexp.MustCompile(`https?://(?:[a-zA-Z0-9$-_@.&+!*(),]|%[0-9a-fA-F]{2})+`)

	dottedQuadPattern = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)
)

// DefaultLegitimateDomains are the well-known domains checked for
// typosquatting. Order matters: the first sufficiently similar entry wins.
var DefaultLegitimateDomains = []string{
	"paypal.com", "google.com", "microsoft.com", "apple.com",
	"amazon.com", "facebook.com", "twitter.com", "linkedin.com",
}

// URLAnalyzer extracts URLs from free text and flags suspicious ones.
type URLAnalyzer struct {
	legitimateDomains []string
	logger            *zap.Logger
}

// NewURLAnalyzer creates a URL analyzer. An empty domain list falls back to
// the default allow-list.
func NewURLAnalyzer(legitimateDomains []string, logger *zap.Logger) *URLAnalyzer {
	if len(legitimateDomains) == 0 {
		legitimateDomains = DefaultLegitimateDomains
	}
	return &URLAnalyzer{
		legitimateDomains: legitimateDomains,
		logger:            logger,
	}
}

// ExtractURLs returns all URL literals found in the text, in order.
func ExtractURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

// Analyze extracts every URL from the text and produces one finding per URL.
// A finding is suspicious exactly when it has at least one reason.
func (a *URLAnalyzer) Analyze(text string) []URLFinding {
	var findings []URLFinding

	for _, raw := range ExtractURLs(text) {
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Host == "" {
			// Unparseable URLs are findings, not failures.
			findings = append(findings, URLFinding{
				URL:          raw,
				IsSuspicious: true,
				Reasons:      []string{ReasonInvalidURL},
			})
			continue
		}

		domain := strings.ToLower(parsed.Host)
		finding := URLFinding{
			URL:    raw,
			Domain: domain,
		}

		if similar, legit := a.similarLegitimateDomain(domain); similar {
			finding.Reasons = append(finding.Reasons, fmt.Sprintf("Similar to legitimate domain: %s", legit))
		}
		if !strings.HasPrefix(parsed.Scheme, "https") {
			finding.Reasons = append(finding.Reasons, ReasonInsecureScheme)
		}
		if dottedQuadPattern.MatchString(domain) {
			finding.Reasons = append(finding.Reasons, ReasonIPHost)
		}

		finding.IsSuspicious = len(finding.Reasons) > 0
		if finding.IsSuspicious && a.logger != nil {
			a.logger.Debug("Suspicious URL detected",
				zap.String("url", raw),
				zap.String("domain", domain),
				zap.Strings("reasons", finding.Reasons))
		}

		findings = append(findings, finding)
	}

	return findings
}

// similarLegitimateDomain reports whether the domain is a near-miss of a
// well-known domain. An exact match is never flagged.
func (a *URLAnalyzer) similarLegitimateDomain(domain string) (bool, string) {
	for _, legit := range a.legitimateDomains {
		if domain == legit {
			continue
		}
		if similarity(domain, legit) > similarDomainThreshold {
			return true, legit
		}
	}
	return false, ""
}

// similarity computes the Ratcliff/Obershelp ratio between two strings: twice
// the number of matching characters over the total length, with matches found
// by recursing around the longest common substring.
func similarity(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingChars(a, b)) / float64(total)
}

func matchingChars(a, b string) int {
	i, j, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return size + matchingChars(a[:i], b[:j]) + matchingChars(a[i+size:], b[j+size:])
}

// longestCommonBlock finds the longest common substring of a and b, returning
// its start offsets and length. On ties the leftmost block in a wins.
func longestCommonBlock(a, b string) (ai, bi, size int) {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			if a[i] != b[j] {
				cur[j+1] = 0
				continue
			}
			cur[j+1] = prev[j] + 1
			if cur[j+1] > size {
				size = cur[j+1]
				ai = i - size + 1
				bi = j - size + 1
			}
		}
		prev, cur = cur, prev
	}
	return ai, bi, size
}
