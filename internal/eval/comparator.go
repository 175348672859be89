package eval

import (
	"context"
	"strings"

	"llmgauge/internal/llm"
)

// Comparator asks the oracle whether a candidate payload is an acceptable
// resolution relative to the baseline.
type Comparator struct {
	client   llm.Client
	template string
}

func NewComparator(client llm.Client, template string) *Comparator {
	return &Comparator{client: client, template: template}
}

// Compare builds the comparison prompt and interprets the reply. The verdict
// is true only when the case-folded reply equals the literal token "true" —
// no trimming, no partial match. Anything else is a negative verdict, not an
// error; only transport failures surface as errors.
func (c *Comparator) Compare(ctx context.Context, description, baseline, payload string) (bool, error) {
	prompt := renderComparisonPrompt(c.template, description, baseline, payload)
	reply, err := c.client.Generate(ctx, prompt)
	if err != nil {
		return false, err
	}
	return strings.ToLower(reply) == "true", nil
}
