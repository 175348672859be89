package eval

import (
	"time"
)

// Status is the final outcome of a single test case
type Status string

const (
	StatusPassed Status = "Passed"
	StatusFailed Status = "Failed"
)

// ErrorLocation identifies the pipeline stage at which a test case failed.
// A result carries a location only when its status is Failed.
type ErrorLocation int

const (
	LocationNone ErrorLocation = iota
	// LocationMatchInput: the document is missing its <input> or <output> markers
	LocationMatchInput
	// LocationMatchPayload: the generation reply contains no {...} or [...] substring
	LocationMatchPayload
	// LocationParse: the extracted payload failed structural validation
	LocationParse
	// LocationTest: the semantic comparison came back negative
	LocationTest
)

func (l ErrorLocation) String() string {
	switch l {
	case LocationMatchInput:
		return "matchinput"
	case LocationMatchPayload:
		return "matchpayload"
	case LocationParse:
		return "parse"
	case LocationTest:
		return "test"
	default:
		return ""
	}
}

// TestCase represents a single evaluation document loaded from the corpus
type TestCase struct {
	Name string
	Raw  string
}

// Result is the evaluation record for one test case. Input always holds the
// raw document; Content holds the full generation reply on a pass, or
// whatever text was produced up to the failing stage on a failure.
type Result struct {
	Name       string        `json:"name"`
	Status     Status        `json:"status"`
	Input      string        `json:"input"`
	Content    string        `json:"result"`
	Location   ErrorLocation `json:"-"`
	Detail     string        `json:"error,omitempty"`
	ExecutedAt time.Time     `json:"executed_at"`

	// Kept for verbose reporting, not part of the persisted record.
	Expected string `json:"-"`
	Payload  string `json:"-"`
}

// Verdict is the outcome of one structural validation. A failed verdict may
// carry a diagnostic (decode error, script error) or be a plain rejection.
type Verdict struct {
	OK         bool
	Diagnostic string
}
