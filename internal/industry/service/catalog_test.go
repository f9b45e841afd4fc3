package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	industrydomain "github.com/smallbiznis/myinvois/internal/industry/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepository struct {
	items []industrydomain.IndustryCode
	err   error
}

func (f *fakeRepository) List(ctx context.Context) ([]industrydomain.IndustryCode, error) {
	_ = ctx
	return f.items, f.err
}

func (f *fakeRepository) Upsert(ctx context.Context, codes []industrydomain.IndustryCode) error {
	_ = ctx
	f.items = append(f.items, codes...)
	return nil
}

func writeOverrides(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestCatalog_BuiltinOnly(t *testing.T) {
	c, err := New(zap.NewNop(), nil, "")
	require.NoError(t, err)

	assert.Equal(t, industrydomain.DefaultTable().Len(), c.Current().Len())
	assert.False(t, c.LoadedAt().IsZero())
}

func TestCatalog_LayerPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "industries.yaml")
	writeOverrides(t, path, `
industries:
  - code: "47190"
    description: Other retail sale (file)
    category: Retail Trade
    section: G
    allows_b2c_consolidation: false
    notes: Temporarily suspended
`)

	repo := &fakeRepository{items: []industrydomain.IndustryCode{
		{Code: "47190", Description: "Other retail sale (db)", Category: "Retail Trade", Section: "G", AllowsB2CConsolidation: true},
		{Code: "96099", Description: "Other personal service activities", Category: "Other Services", Section: "S", AllowsB2CConsolidation: true},
	}}

	c, err := New(zap.NewNop(), repo, path)
	require.NoError(t, err)

	table := c.Current()
	entry, ok := table.Lookup("47190")
	require.True(t, ok)
	assert.Equal(t, "Other retail sale (file)", entry.Description)

	_, ok = table.Lookup("96099")
	assert.True(t, ok, "database rows extend the shipped dataset")

	res := table.IsConsolidationAllowed("47190")
	assert.False(t, res.Allowed)
	assert.Equal(t, "Temporarily suspended", res.Reason)
}

func TestCatalog_ReloadSwapsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "industries.yaml")
	writeOverrides(t, path, "industries: []\n")

	c, err := New(zap.NewNop(), nil, path)
	require.NoError(t, err)
	before := c.Current()

	writeOverrides(t, path, `
industries:
  - code: "56999"
    description: Pop-up food kiosks
    category: Food & Beverage
    section: I
    allows_b2c_consolidation: true
`)
	require.NoError(t, c.Reload(context.Background()))

	after := c.Current()
	assert.NotSame(t, before, after)
	_, ok := after.Lookup("56999")
	assert.True(t, ok)
	_, ok = before.Lookup("56999")
	assert.False(t, ok, "previous snapshot is never mutated")
}

func TestCatalog_InvalidReloadKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "industries.yaml")
	writeOverrides(t, path, "industries: []\n")

	c, err := New(zap.NewNop(), nil, path)
	require.NoError(t, err)
	before := c.Current()

	writeOverrides(t, path, `
industries:
  - code: "10711"
    section: Z
`)
	err = c.Reload(context.Background())
	assert.ErrorIs(t, err, industrydomain.ErrInvalidSection)
	assert.Same(t, before, c.Current())
}

func TestCatalog_MissingFileUsesBuiltin(t *testing.T) {
	c, err := New(zap.NewNop(), nil, filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, industrydomain.DefaultTable().Len(), c.Current().Len())
}

func TestCatalog_RepositoryError(t *testing.T) {
	_, err := New(zap.NewNop(), &fakeRepository{err: errors.New("db down")}, "")
	assert.Error(t, err)
}
