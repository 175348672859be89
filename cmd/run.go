package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"llmgauge/internal/eval"
	"llmgauge/internal/llm"
)

var (
	runResultsDir    string
	runModel         string
	runValidatorMode string
	runGenPrompt     string
	runComparePrompt string
	runScript        string
	runSaveJSON      string
	runConcurrency   int
	runVerbose       bool
)

var runCmd = &cobra.Command{
	Use:   "run [tests-dir]",
	Short: "Evaluate every test case in a directory",
	Long: `Evaluate every test case file in a directory and write a CSV report.

Example:
  llmgauge run tests/
  llmgauge run tests/ --validator=script --script=checks/shape.lua -c 4`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEvaluation,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runResultsDir, "results-dir", "", "Directory for the CSV report (config: results_dir)")
	runCmd.Flags().StringVarP(&runModel, "model", "m", "", "Model identifier for both oracle calls (config: model)")
	runCmd.Flags().StringVar(&runValidatorMode, "validator", "", "Structural validation strategy: schema or script (config: validator)")
	runCmd.Flags().StringVar(&runGenPrompt, "gen-prompt", "", "Path to the generation prompt template (config: gen_prompt)")
	runCmd.Flags().StringVar(&runComparePrompt, "compare-prompt", "", "Path to the comparison prompt template (config: compare_prompt)")
	runCmd.Flags().StringVar(&runScript, "script", "", "Path to the Lua structure predicate (config: structure_test)")
	runCmd.Flags().StringVar(&runSaveJSON, "save-json", "", "Save a JSON run summary to the specified file")
	runCmd.Flags().IntVarP(&runConcurrency, "concurrency", "c", 1, "Number of test cases evaluated in parallel")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Verbose output (shows baseline/candidate diffs)")
}

func runEvaluation(cmd *cobra.Command, args []string) error {
	testsDir := viper.GetString("tests_dir")
	if len(args) == 1 {
		testsDir = args[0]
	}
	if testsDir == "" {
		return fmt.Errorf("no tests directory given (pass it as an argument or set tests_dir)")
	}

	resultsDir := setting(runResultsDir, "results_dir")
	if resultsDir == "" {
		return fmt.Errorf("no results directory given (use --results-dir or set results_dir)")
	}

	genPrompt, err := readTemplate(setting(runGenPrompt, "gen_prompt"), "generation prompt")
	if err != nil {
		return err
	}
	cmpPrompt, err := readTemplate(setting(runComparePrompt, "compare_prompt"), "comparison prompt")
	if err != nil {
		return err
	}

	validator, err := buildValidator()
	if err != nil {
		return err
	}

	client, err := llm.NewClient(llm.Config{
		APIKey:  viper.GetString("openai.api_key"),
		BaseURL: viper.GetString("openai.base_url"),
		Model:   setting(runModel, "model"),
	})
	if err != nil {
		return err
	}

	testCases, err := eval.LoadTestCases(testsDir)
	if err != nil {
		return fmt.Errorf("failed to load test cases: %w", err)
	}
	if len(testCases) == 0 {
		return fmt.Errorf("no test cases found in %s", testsDir)
	}

	runID := ulid.Make().String()
	fmt.Printf("Run %s: %d test cases, model %s\n", runID, len(testCases), client.Model())

	runner := eval.NewRunner(client,
		eval.WithValidator(validator),
		eval.WithPrompts(genPrompt, cmpPrompt),
		eval.WithConcurrency(runConcurrency),
	)

	// On SIGINT/SIGTERM, in-flight cases are abandoned; records already
	// produced are still reported below.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := runner.RunAll(ctx, testCases)

	reporter := eval.NewReporter(runVerbose)
	reporter.Report(results)

	reportPath, err := reporter.WriteCSV(results, resultsDir)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("\nReport written to: %s\n", reportPath)

	if runSaveJSON != "" {
		if err := reporter.SaveJSON(results, runID, runSaveJSON); err != nil {
			return fmt.Errorf("failed to save JSON results: %w", err)
		}
		fmt.Printf("Results saved to: %s\n", runSaveJSON)
	}

	failed := 0
	for _, res := range results {
		if res.Status == eval.StatusFailed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d/%d tests failed", failed, len(results))
	}

	return nil
}

// setting prefers an explicit flag value over the config file
func setting(flagValue, key string) string {
	if flagValue != "" {
		return flagValue
	}
	return viper.GetString(key)
}

func readTemplate(path, what string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no %s template configured", what)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s template: %w", what, err)
	}
	return string(data), nil
}

func buildValidator() (eval.Validator, error) {
	mode := setting(runValidatorMode, "validator")
	switch mode {
	case "", "schema":
		return eval.SchemaValidator{}, nil
	case "script":
		scriptPath := setting(runScript, "structure_test")
		if scriptPath == "" {
			return nil, fmt.Errorf("validator=script requires a script path (use --script or set structure_test)")
		}
		src, err := os.ReadFile(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read structure script: %w", err)
		}
		return eval.NewScriptValidator(string(src)), nil
	default:
		return nil, fmt.Errorf("unknown validator %q (use schema or script)", mode)
	}
}
