package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

var (
	htmlTagPattern     = regexp.MustCompile(`<[^>]+>`)
	specialCharPattern = regexp.MustCompile("[\\\\\"'{}\\[\\];`]")
)

// TextProcessor provides utilities for preparing email text before it is
// analyzed or sent to an external model.
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor.
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// TruncateText safely truncates text to the specified maximum size and
// ensures the result is valid UTF-8.
func (tp *TextProcessor) TruncateText(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}

	if tp.logger != nil {
		tp.logger.Debug("Text truncated",
			zap.Int("original_size", len(text)),
			zap.Int("truncated_size", len(truncated)),
			zap.Int("max_size", maxSize))
	}

	return truncated + "\n[... Content truncated due to size limits ...]"
}

// SanitizeUTF8 drops invalid UTF-8 sequences and normalizes the rest to NFC
// so lookalike composed/decomposed forms compare equal downstream.
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return norm.NFC.String(text)
	}

	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
				continue
			}
		}
		result = append(result, r)
	}

	return norm.NFC.String(string(result))
}

// StripMarkup removes HTML tags and shell/injection special characters from
// user-supplied text.
func (tp *TextProcessor) StripMarkup(text string) string {
	text = htmlTagPattern.ReplaceAllString(text, "")
	text = specialCharPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// ProcessText truncates and sanitizes text in one operation.
func (tp *TextProcessor) ProcessText(text string, maxSize int) string {
	return tp.SanitizeUTF8(tp.TruncateText(text, maxSize))
}
