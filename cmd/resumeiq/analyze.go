package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/amishk599/resumeiq/internal/intake"
	"github.com/amishk599/resumeiq/internal/model"
	"github.com/amishk599/resumeiq/internal/render"
	"github.com/amishk599/resumeiq/internal/session"
)

var (
	resumeArg string
	jobArg    string
	jsonOut   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a single analysis and print the report",
	Long:  "Reads the resume and job description from files (or '-' for stdin), runs one analysis and prints the result.",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&resumeArg, "resume", "", "resume file (.txt/.md) or - for stdin")
	analyzeCmd.Flags().StringVar(&jobArg, "job", "", "job description file (.txt/.md) or - for stdin")
	analyzeCmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	resume, job, err := readInputs(resumeArg, jobArg, cmd.InOrStdin())
	if err != nil {
		return err
	}

	logger := setupLogger(debug)
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	analyzer, err := setupAnalyzer(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	return analyzeOnce(context.Background(), cmd.OutOrStdout(), analyzer, resume, job, jsonOut)
}

// readInputs resolves --resume and --job. An empty flag leaves its text empty
// so the session reports the missing input.
func readInputs(resumePath, jobPath string, stdin io.Reader) (resume, job string, err error) {
	if resumePath == "-" && jobPath == "-" {
		return "", "", errors.New("only one of --resume and --job can read stdin")
	}
	if resumePath != "" {
		if resume, err = intake.ReadArg(resumePath, stdin); err != nil {
			return "", "", fmt.Errorf("reading resume: %w", err)
		}
	}
	if jobPath != "" {
		if job, err = intake.ReadArg(jobPath, stdin); err != nil {
			return "", "", fmt.Errorf("reading job description: %w", err)
		}
	}
	return resume, job, nil
}

// analyzeOnce runs a single analysis through a fresh session and writes the report.
func analyzeOnce(ctx context.Context, out io.Writer, analyzer model.Analyzer, resume, job string, asJSON bool) error {
	ctrl := session.NewController(analyzer)
	if _, err := ctrl.SetInputs(&resume, &job); err != nil {
		return err
	}
	st, err := ctrl.Analyze(ctx)
	if err != nil {
		// The cause is already logged by the analyzer.
		return errors.New(model.UserMessage(err))
	}

	if asJSON {
		return render.JSON(out, st.Result)
	}
	return render.Write(out, st.Result, 80)
}
