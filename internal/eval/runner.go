package eval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"llmgauge/internal/llm"
)

// Runner drives the evaluation pipeline: field extraction, candidate
// generation, payload extraction, structural validation, semantic
// comparison. No stage is retried; the first failing stage classifies
// the outcome.
type Runner struct {
	client      llm.Client
	validator   Validator
	genPrompt   string
	cmpPrompt   string
	concurrency int
}

// NewRunner creates an evaluation runner. By default it validates with the
// fixed schema and runs test cases strictly sequentially.
func NewRunner(client llm.Client, opts ...RunnerOption) *Runner {
	r := &Runner{
		client:      client,
		validator:   SchemaValidator{},
		genPrompt:   tokenDescription,
		concurrency: 1,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RunnerOption configures the runner
type RunnerOption func(*Runner)

// WithValidator selects the structural validation strategy
func WithValidator(v Validator) RunnerOption {
	return func(r *Runner) {
		r.validator = v
	}
}

// WithPrompts sets the generation and comparison prompt templates
func WithPrompts(gen, cmp string) RunnerOption {
	return func(r *Runner) {
		r.genPrompt = gen
		r.cmpPrompt = cmp
	}
}

// WithConcurrency bounds the number of test cases evaluated in parallel.
// Values below 2 keep the sequential behavior.
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		if n > 1 {
			r.concurrency = n
		}
	}
}

// Run evaluates a single test case. It returns nil only when the evaluation
// was abandoned because the context was cancelled; every other path yields a
// record. Oracle transport failures abort this case only and are recorded as
// a failure at the stage they prevented, with the error text as diagnostic.
func (r *Runner) Run(ctx context.Context, tc *TestCase) *Result {
	res := &Result{
		Name:       tc.Name,
		Input:      tc.Raw,
		ExecutedAt: time.Now(),
	}

	input, expected, ok := extractFields(tc.Raw)
	if !ok {
		return fail(res, LocationMatchInput, tc.Raw, "")
	}
	res.Expected = expected

	reply, err := r.client.Generate(ctx, renderGenerationPrompt(r.genPrompt, input))
	if err != nil {
		if abandoned(ctx, err) {
			return nil
		}
		return fail(res, LocationMatchPayload, "", err.Error())
	}

	payload, ok := extractPayload(reply)
	if !ok {
		return fail(res, LocationMatchPayload, reply, "")
	}
	res.Payload = payload

	if v := r.validator.Validate(payload); !v.OK {
		return fail(res, LocationParse, reply, v.Diagnostic)
	}

	cmp := NewComparator(r.client, r.cmpPrompt)
	same, err := cmp.Compare(ctx, input, expected, payload)
	if err != nil {
		if abandoned(ctx, err) {
			return nil
		}
		return fail(res, LocationTest, reply, err.Error())
	}
	if !same {
		return fail(res, LocationTest, reply, "")
	}

	res.Status = StatusPassed
	res.Content = reply
	return res
}

// RunAll evaluates every test case and returns one record per completed
// case, in corpus order. On cancellation, in-flight cases are abandoned but
// records already produced are returned.
func (r *Runner) RunAll(ctx context.Context, testCases []*TestCase) []*Result {
	results := make([]*Result, len(testCases))

	if r.concurrency <= 1 {
		for i, tc := range testCases {
			if ctx.Err() != nil {
				break
			}
			fmt.Printf("Running test: %s\n", tc.Name)
			results[i] = r.Run(ctx, tc)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.concurrency)
		for i, tc := range testCases {
			i, tc := i, tc
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				results[i] = r.Run(gctx, tc)
				return nil
			})
		}
		g.Wait()
	}

	completed := make([]*Result, 0, len(results))
	for _, res := range results {
		if res != nil {
			completed = append(completed, res)
		}
	}
	return completed
}

func fail(res *Result, loc ErrorLocation, content, detail string) *Result {
	res.Status = StatusFailed
	res.Location = loc
	res.Content = content
	res.Detail = detail
	return res
}

func abandoned(ctx context.Context, err error) bool {
	return ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}
