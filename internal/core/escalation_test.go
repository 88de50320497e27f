package core

import (
	"reflect"
	"testing"
)

func TestShouldEscalate(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		factors    int
		want       bool
	}{
		{"low confidence skipped", 0.1, 1, false},
		{"high confidence skipped", 0.9, 2, false},
		{"just above ceiling skipped", 0.81, 1, false},
		{"mid band few factors", 0.5, 2, true},
		{"mid band many factors still gray", 0.5, 5, true},
		{"gray band boundary", 0.45, 3, true},
		{"upper band many factors", 0.7, 4, false},
		{"floor with no factors", 0.2, 0, true},
		{"ceiling with many factors", 0.8, 5, false},
		{"lower band many factors", 0.3, 3, false},
		{"exactly at gray low", 0.4, 4, true},
		{"exactly at gray high", 0.6, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factors := make([]string, tt.factors)
			if got := ShouldEscalate(tt.confidence, factors); got != tt.want {
				t.Errorf("ShouldEscalate(%v, %d factors) = %v, want %v",
					tt.confidence, tt.factors, got, tt.want)
			}
		})
	}
}

func TestParseOpinion(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "escape phrase means no findings",
			text: "No additional suspicious elements found.",
			want: nil,
		},
		{
			name: "escape phrase buried in prose",
			text: "After review: No additional suspicious elements found in this email.",
			want: nil,
		},
		{
			name: "numbered list",
			text: "1. Mismatched reply-to address\n2. Generic greeting with no name",
			want: []string{
				"GPT detected: Mismatched reply-to address",
				"GPT detected: Generic greeting with no name",
			},
		},
		{
			name: "bulleted list",
			text: "- Spoofed display name\n- Tracking pixel in body",
			want: []string{
				"GPT detected: Spoofed display name",
				"GPT detected: Tracking pixel in body",
			},
		},
		{
			name: "mixed with prose ignored",
			text: "Here is what I found:\n1. Lookalike unicode characters\nHope this helps!",
			want: []string{"GPT detected: Lookalike unicode characters"},
		},
		{
			name: "double digit numbering",
			text: "10. Odd sending time",
			want: []string{"GPT detected: Odd sending time"},
		},
		{
			name: "blank lines skipped",
			text: "\n\n1. Finding one\n\n- Finding two\n",
			want: []string{"GPT detected: Finding one", "GPT detected: Finding two"},
		},
		{
			name: "number without separator ignored",
			text: "3.Something glued together",
			want: nil,
		},
		{
			name: "empty numbered item ignored",
			text: "1. ",
			want: nil,
		},
		{
			name: "empty response",
			text: "",
			want: nil,
		},
		{
			name: "pure prose",
			text: "The email seems fine overall, nothing notable.",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOpinion(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseOpinion(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
