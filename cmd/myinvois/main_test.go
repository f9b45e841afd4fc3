package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const compliantInvoice = `{
  "invoice": {
    "invoice_number": "INV-2026-0001",
    "einvoice_type": "01",
    "issue_date": "2026-03-15",
    "due_date": "2026-04-14",
    "currency": "MYR",
    "exchange_rate": "1.000000",
    "subtotal": "2250.00",
    "total_discount": "0.00",
    "sst_amount": "180.00",
    "grand_total": "2430.00"
  },
  "lines": [
    {"line_number": 1, "item_description": "Software subscription", "quantity": "1", "unit_price": "1200.00", "discount_amount": "0", "line_total": "1200.00", "sst_rate": "8", "sst_amount": "96.00"},
    {"line_number": 2, "item_description": "Onsite support", "quantity": "6", "unit_price": "180.00", "discount_amount": "30.00", "line_total": "1050.00", "sst_rate": "8", "sst_amount": "84.00"}
  ],
  "organization": {"tin": "C2581473690", "industry_code": "62010", "is_sst_registered": true},
  "buyer": {"tin": "C9081726354", "name": "Kedai Runcit Sdn Bhd", "address": "12 Jalan Ampang, Kuala Lumpur", "country_code": "MY"}
}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("INDUSTRY_OVERRIDES_FILE", "")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEvaluateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.json")
	require.NoError(t, os.WriteFile(path, []byte(compliantInvoice), 0o600))

	out, err := execute(t, "evaluate", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"score": 100`)
	assert.Contains(t, out, `"registry_version": "2026.10"`)
}

func TestEvaluateCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "evaluate", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestTINCommand(t *testing.T) {
	out, err := execute(t, "tin", "C2581473690")
	require.NoError(t, err)
	assert.Contains(t, out, `"is_valid": true`)
	assert.Contains(t, out, `"type": "corporate"`)

	_, err = execute(t, "tin", "X123")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestIndustryCommand(t *testing.T) {
	out, err := execute(t, "industry", "56101", "--lines", "250")
	require.NoError(t, err)
	assert.Contains(t, out, `"cap_exceeded": true`)

	_, err = execute(t, "industry")
	assert.Error(t, err)
}
