package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	compliancedomain "github.com/smallbiznis/myinvois/internal/compliance/domain"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [file.json]",
	Short: "Evaluate an invoice document against the compliance rules",
	Long: `Read an invoice document and print the compliance report.

The document has the same shape as the body of POST /api/compliance/invoices/evaluate:
{"invoice": {...}, "lines": [...], "organization": {...}, "buyer": {...}}.
Use "-" to read from stdin. The command exits with status 2 when the invoice has
error findings.`,
	Example: `  myinvois evaluate invoice.json
  cat invoice.json | myinvois evaluate -`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	minScore, _ := cmd.Flags().GetInt("min-score")

	req, err := readEvaluateRequest(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	svc, log, err := newLocalService(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	report, err := svc.Evaluate(cmd.Context(), req)
	if err != nil {
		return err
	}
	if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if !report.Compliant() || report.Score < minScore {
		return fmt.Errorf("%w: score %d, %d error(s)", errNonCompliant, report.Score, report.Errors)
	}
	return nil
}

func readEvaluateRequest(stdin io.Reader, path string) (compliancedomain.EvaluateRequest, error) {
	var req compliancedomain.EvaluateRequest

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return req, err
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, fmt.Errorf("decode %s: %w", path, err)
	}
	return req, nil
}

func init() {
	evaluateCmd.Flags().BoolP("verbose", "v", false, "Log debug output to stderr")
	evaluateCmd.Flags().Int("min-score", 0, "Fail when the score is below this value")
	rootCmd.AddCommand(evaluateCmd)
}
