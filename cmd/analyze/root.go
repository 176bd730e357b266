package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bizmatters/agent-builder/code-analyzer/internal/analysis"
	"github.com/bizmatters/agent-builder/code-analyzer/internal/config"
	"github.com/bizmatters/agent-builder/code-analyzer/internal/logging"
	"github.com/bizmatters/agent-builder/code-analyzer/internal/segment"
)

var errBlankSnippet = errors.New("code snippet is blank")

func newRootCmd(factory analysis.GeneratorFactory) *cobra.Command {
	var (
		logLevel string
		model    string
		envFile  string
		segments bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Summarize a code snippet and suggest improvements",
		Long: `Analyze sends a code snippet to the configured generative model and prints
its analysis. The snippet is read from the given file, or from stdin when no
file is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(logLevel)
			return config.LoadEnvFile(envFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			snippet, err := readSnippet(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if strings.TrimSpace(snippet) == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), errBlankSnippet)
				return errBlankSnippet
			}

			cfg := config.FromEnv().Analysis()
			if model != "" {
				cfg.ModelName = model
			}

			result, err := analysis.NewAnalyzer(cfg, factory, nil).Analyze(cmd.Context(), snippet)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}

			if !segments {
				fmt.Fprint(cmd.OutOrStdout(), result)
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(segment.Parse(result))
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "warn",
		"Set the logging level (debug, info, warn, error, dpanic, panic, fatal)")
	cmd.Flags().StringVar(&model, "model", "", "Model to use instead of GEMINI_MODEL")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Optional env file to load")
	cmd.Flags().BoolVar(&segments, "segments", false, "Print the response as JSON text/code segments")

	return cmd
}

func readSnippet(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}
