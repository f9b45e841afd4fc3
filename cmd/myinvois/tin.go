package main

import (
	"github.com/smallbiznis/myinvois/internal/tin"
	"github.com/spf13/cobra"
)

var tinCmd = &cobra.Command{
	Use:   "tin [value]",
	Short: "Validate a Malaysian Tax Identification Number",
	Example: `  myinvois tin C2581473690
  myinvois tin "8801 0114 5678"`,
	Args: cobra.ExactArgs(1),
	RunE: runTIN,
}

func runTIN(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	svc, log, err := newLocalService(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	result := svc.ValidateTIN(cmd.Context(), args[0])
	out := struct {
		tin.Result
		Display     string   `json:"display,omitempty"`
		Description string   `json:"description,omitempty"`
		Suggestions []string `json:"suggestions,omitempty"`
	}{Result: result}
	if result.IsValid {
		out.Display = tin.FormatForDisplay(args[0])
		out.Description = tin.DescribeType(result.Type)
	} else {
		out.Suggestions = tin.SuggestFormats(args[0])
	}

	if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
		return err
	}
	if !result.IsValid {
		return errNonCompliant
	}
	return nil
}

func init() {
	tinCmd.Flags().BoolP("verbose", "v", false, "Log debug output to stderr")
	rootCmd.AddCommand(tinCmd)
}
