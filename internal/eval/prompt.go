package eval

import (
	"strings"
)

// Placeholder tokens recognized in the externally supplied prompt templates.
// Substitution is plain text replacement and order-independent.
const (
	tokenDescription = "__description__"
	tokenBaseline    = "__baseline__"
	tokenCandidate   = "__input__"
)

func renderGenerationPrompt(tpl, description string) string {
	return strings.ReplaceAll(tpl, tokenDescription, description)
}

func renderComparisonPrompt(tpl, description, baseline, payload string) string {
	out := strings.ReplaceAll(tpl, tokenDescription, description)
	out = strings.ReplaceAll(out, tokenBaseline, baseline)
	return strings.ReplaceAll(out, tokenCandidate, payload)
}
