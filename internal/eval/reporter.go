package eval

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// csvHeader is the fixed report schema; downstream tooling depends on the
// exact column order.
var csvHeader = []string{"Name", "Status", "Input", "Result", "Error Location", "Error"}

// Reporter handles console and on-disk result reporting
type Reporter struct {
	verbose bool
}

// NewReporter creates a new reporter
func NewReporter(verbose bool) *Reporter {
	return &Reporter{verbose: verbose}
}

// Report prints per-case outcomes and a summary table
func (r *Reporter) Report(results []*Result) {
	if len(results) == 0 {
		fmt.Println("No test results to report")
		return
	}

	pass := color.New(color.FgGreen)
	failc := color.New(color.FgRed)

	for _, res := range results {
		if res.Status == StatusPassed {
			pass.Printf("Test %s passed\n", res.Name)
			continue
		}
		failc.Printf("Test %s failed.\n", res.Name)
		failc.Printf("Process: %s\n", res.Location)
		if res.Detail != "" {
			failc.Println(res.Detail)
		}
		if r.verbose && res.Payload != "" {
			printDiff(res.Expected, res.Payload)
		}
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Name\tStatus\tLocation")
	fmt.Fprintln(w, "----\t------\t--------")

	passed := 0
	for _, res := range results {
		if res.Status == StatusPassed {
			passed++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", res.Name, res.Status, res.Location)
	}
	w.Flush()

	fmt.Printf("\nOverall: %d/%d passed\n", passed, len(results))
}

// WriteCSV writes one row per record to a timestamped file in dir and
// returns the file path. Already-completed records are always flushed, even
// for a run that was cancelled partway through.
func (r *Reporter) WriteCSV(results []*Result, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("results%s.csv", time.Now().Format("2006-01-02 1504")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write report header: %w", err)
	}
	for _, res := range results {
		row := []string{
			res.Name,
			string(res.Status),
			res.Input,
			res.Content,
			res.Location.String(),
			res.Detail,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write report row for %s: %w", res.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush report: %w", err)
	}

	return path, nil
}

// Summary is the machine-readable run summary saved by SaveJSON
type Summary struct {
	RunID      string    `json:"run_id"`
	ExecutedAt time.Time `json:"executed_at"`
	Total      int       `json:"total"`
	Passed     int       `json:"passed"`
	Failed     int       `json:"failed"`
	Results    []*Result `json:"results"`
}

// SaveJSON saves the run summary as JSON
func (r *Reporter) SaveJSON(results []*Result, runID, outputPath string) error {
	summary := Summary{
		RunID:      runID,
		ExecutedAt: time.Now(),
		Total:      len(results),
		Results:    results,
	}
	for _, res := range results {
		if res.Status == StatusPassed {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON results: %w", err)
	}

	return nil
}

func printDiff(expected, payload string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(expected, payload, false)
	fmt.Println("Baseline vs candidate:")
	fmt.Println(dmp.DiffPrettyText(diffs))
}
