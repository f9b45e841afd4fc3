package main

import (
	"errors"
	"fmt"

	compliancedomain "github.com/smallbiznis/myinvois/internal/compliance/domain"
	"github.com/spf13/cobra"
)

var industryCmd = &cobra.Command{
	Use:   "industry [code]",
	Short: "Look up an MSIC industry code or search the industry table",
	Example: `  myinvois industry 56101
  myinvois industry --search restaurant
  myinvois industry 47190 --lines 120 --amount 48000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndustry,
}

func runIndustry(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	query, _ := cmd.Flags().GetString("search")
	lines, _ := cmd.Flags().GetInt("lines")
	amount, _ := cmd.Flags().GetString("amount")

	if len(args) == 0 && query == "" {
		return errors.New("either an industry code or --search is required")
	}

	svc, log, err := newLocalService(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if len(args) == 0 {
		return writeJSON(cmd.OutOrStdout(), svc.SearchIndustries(ctx, query))
	}

	code := args[0]
	entry, err := svc.LookupIndustry(ctx, code)
	if err != nil && !errors.Is(err, compliancedomain.ErrIndustryNotFound) {
		return err
	}

	consol, err := svc.CheckConsolidation(ctx, compliancedomain.ConsolidationRequest{
		IndustryCode: code,
		LineCount:    lines,
		Amount:       compliancedomain.Amount(amount),
	})
	if err != nil {
		return err
	}

	if err := writeJSON(cmd.OutOrStdout(), map[string]any{
		"industry":      entry,
		"consolidation": consol,
	}); err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("industry code %s: %w", code, compliancedomain.ErrIndustryNotFound)
	}
	return nil
}

func init() {
	industryCmd.Flags().BoolP("verbose", "v", false, "Log debug output to stderr")
	industryCmd.Flags().StringP("search", "s", "", "Search codes, descriptions and categories")
	industryCmd.Flags().Int("lines", 0, "Transactions in the planned consolidated invoice")
	industryCmd.Flags().String("amount", "", "Total amount of the planned consolidated invoice")
	rootCmd.AddCommand(industryCmd)
}
