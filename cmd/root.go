package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "llmgauge",
	Short: "Score a generative model against a baseline test corpus",
	Long: `llmgauge evaluates a text-generation model against a directory of
test cases. Each test case file carries a problem description inside
<input>...</input> markers and a baseline resolution inside
<output>...</output> markers. Per case, llmgauge asks the model for a
structured answer, validates the answer's shape, asks the model to judge it
against the baseline, and records the outcome in a timestamped CSV report.

Usage:
  llmgauge run tests/           # Evaluate every file in tests/
  llmgauge run tests/ -c 4      # Same, four test cases at a time`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.llmgauge.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".llmgauge")
	}

	// Maps nested keys to env vars, e.g. openai.api_key -> OPENAI_API_KEY.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
