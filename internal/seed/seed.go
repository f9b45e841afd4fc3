package seed

import (
	"context"
	"errors"

	industrydomain "github.com/smallbiznis/myinvois/internal/industry/domain"
)

// EnsureIndustryCodes loads the built-in MSIC dataset into an empty store. A store that
// already holds rows is left untouched so operator edits survive restarts.
func EnsureIndustryCodes(ctx context.Context, repo industrydomain.Repository) (int, error) {
	if repo == nil {
		return 0, errors.New("seed repository is required")
	}

	existing, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	codes := industrydomain.BuiltinCodes()
	if err := repo.Upsert(ctx, codes); err != nil {
		return 0, err
	}
	return len(codes), nil
}
