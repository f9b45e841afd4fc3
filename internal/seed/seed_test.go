package seed

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	industrydomain "github.com/smallbiznis/myinvois/internal/industry/domain"
	"github.com/smallbiznis/myinvois/internal/industry/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) industrydomain.Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	return repository.NewRepository(db)
}

func TestEnsureIndustryCodes_SeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	n, err := EnsureIndustryCodes(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, len(industrydomain.BuiltinCodes()), n)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, n)
}

func TestEnsureIndustryCodes_LeavesExistingRows(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	require.NoError(t, repo.Upsert(ctx, []industrydomain.IndustryCode{
		{Code: "56101", Description: "Restaurants", Category: industrydomain.CategoryFoodAndBeverage, Section: "I"},
	}))

	n, err := EnsureIndustryCodes(ctx, repo)
	require.NoError(t, err)
	assert.Zero(t, n)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].AllowsB2CConsolidation)
}

func TestEnsureIndustryCodes_NilRepository(t *testing.T) {
	_, err := EnsureIndustryCodes(context.Background(), nil)
	assert.Error(t, err)
}
