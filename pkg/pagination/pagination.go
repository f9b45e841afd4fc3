package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"sort"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 250
)

var ErrInvalidPageToken = errors.New("invalid_page_token")

type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

// Limit clamps PageSize to 1..MaxPageSize, defaulting to DefaultPageSize.
func (p Pagination) Limit() int {
	switch {
	case p.PageSize <= 0:
		return DefaultPageSize
	case p.PageSize > MaxPageSize:
		return MaxPageSize
	}
	return p.PageSize
}

// Cursor points at the last key returned on the previous page.
type Cursor struct {
	Key string `json:"k"`
}

type PageInfo struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	HasMore       bool   `json:"has_more"`
}

func EncodeCursor(c Cursor) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func DecodeCursor(token string) (*Cursor, error) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidPageToken
	}
	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, ErrInvalidPageToken
	}
	return &c, nil
}

// Page returns the slice of items after the cursor in p. items must be sorted ascending
// by key.
func Page[T any](items []T, p Pagination, key func(T) string) ([]T, PageInfo, error) {
	start := 0
	if p.PageToken != "" {
		cursor, err := DecodeCursor(p.PageToken)
		if err != nil {
			return nil, PageInfo{}, err
		}
		start = sort.Search(len(items), func(i int) bool { return key(items[i]) > cursor.Key })
	}

	limit := p.Limit()
	end := min(start+limit, len(items))
	page := items[start:end]

	info := PageInfo{HasMore: end < len(items)}
	if info.HasMore && len(page) > 0 {
		token, err := EncodeCursor(Cursor{Key: key(page[len(page)-1])})
		if err != nil {
			return nil, PageInfo{}, err
		}
		info.NextPageToken = token
	}
	return page, info, nil
}
