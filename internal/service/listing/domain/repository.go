package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrListingNotFound 表示目标商品条目不存在。
var ErrListingNotFound = errors.New("listing: not found")

// ListingRepository 是商品条目的仓储端口。
// Find 找不到时返回 ErrListingNotFound；Update 要求条目已存在；
// Delete 对不存在的条目是无操作。
type ListingRepository interface {
	Save(ctx context.Context, listing *Listing) error
	Find(ctx context.Context, id uuid.UUID) (*Listing, error)
	Update(ctx context.Context, id uuid.UUID, listing *Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
}
