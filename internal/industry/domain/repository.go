package domain

import "context"

// Repository persists MSIC reference rows. The engine never reads it directly; rows are
// merged into an immutable Table at load time.
type Repository interface {
	List(ctx context.Context) ([]IndustryCode, error)
	Upsert(ctx context.Context, codes []IndustryCode) error
}
