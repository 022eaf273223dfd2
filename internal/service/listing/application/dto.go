package application

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"bazaar/internal/pkg/money"
)

// CreateListingRequest 描述一次发布请求。
// CategoryCode 决定走哪个品类工厂，Attributes 是品类相关的原始属性。
type CreateListingRequest struct {
	Title        string         `json:"title"`
	Price        string         `json:"price"`
	Currency     string         `json:"currency"`
	CategoryCode string         `json:"category_code"`
	SellerID     string         `json:"seller_id"`
	Attributes   map[string]any `json:"attributes"`
}

// UpdateListingRequest 只携带要合并进 Payload 的属性。
type UpdateListingRequest struct {
	Attributes map[string]any `json:"attributes"`
}

// ListingView 是对外暴露的条目视图。
type ListingView struct {
	ID          string         `json:"id"`
	ProductKind string         `json:"product_kind"`
	Payload     map[string]any `json:"payload"`
	SellerID    string         `json:"seller_id"`
	CreatedAt   string         `json:"created_at"`
}

func (r *CreateListingRequest) price() (money.Money, error) {
	currency := r.Currency
	if currency == "" {
		currency = "USD"
	}
	m, err := money.New(r.Price, currency)
	if err != nil {
		return money.Money{}, errors.Wrap(err, "invalid listing price")
	}
	return m, nil
}

func (r *CreateListingRequest) sellerID() (uuid.UUID, error) {
	id, err := uuid.Parse(r.SellerID)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid seller id %q", r.SellerID)
	}
	return id, nil
}
