package eval

import (
	"regexp"
)

var (
	inputRe  = regexp.MustCompile(`(?s)<input>(.*?)</input>`)
	outputRe = regexp.MustCompile(`(?s)<output>(.*?)</output>`)

	// First lazily-matched object or array in a generation reply. This is a
	// heuristic scan, not a parser: on nested structures it stops at the
	// nearest closing brace, so `{"a":{"b":1}}` yields `{"a":{"b":1}`.
	payloadRe = regexp.MustCompile(`(\{(.|\n)*?\}|\[(.|\n)*?\])`)
)

// extractFields pulls the problem description and the baseline resolution
// out of a test document. Markers are literal and case-sensitive; the first
// closing tag after the first opening tag bounds each capture.
func extractFields(doc string) (input, expected string, ok bool) {
	im := inputRe.FindStringSubmatch(doc)
	if im == nil {
		return "", "", false
	}
	om := outputRe.FindStringSubmatch(doc)
	if om == nil {
		return "", "", false
	}
	return im[1], om[1], true
}

// extractPayload returns the first structured-looking substring of a
// generation reply. The match is not guaranteed to be valid JSON; deciding
// that is the validator's job.
func extractPayload(reply string) (string, bool) {
	m := payloadRe.FindString(reply)
	if m == "" {
		return "", false
	}
	return m, true
}
