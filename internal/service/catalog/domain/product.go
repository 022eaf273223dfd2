package domain

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"bazaar/internal/pkg/money"
)

// ErrInvalidAttributes 表示商品属性没有通过品类校验。
var ErrInvalidAttributes = errors.New("catalog: invalid product attributes")

// Kind 是商品品类的标识。
type Kind string

const (
	KindElectronics Kind = "electronics"
	KindClothing    Kind = "clothing"
	KindBook        Kind = "book"
)

// Product 是目录中所有商品的公共视图。
// 具体品类（电子、服装、图书）各自携带自己的结构化字段，
// Attributes 保留创建时的原始属性，供索引和回显使用。
type Product interface {
	ID() uuid.UUID
	Kind() Kind
	Title() string
	Price() money.Money
	Attributes() map[string]any
}

// baseProduct 承载所有品类共有的字段。
type baseProduct struct {
	id    uuid.UUID
	kind  Kind
	title string
	price money.Money
	attrs map[string]any
}

func (p *baseProduct) ID() uuid.UUID    { return p.id }
func (p *baseProduct) Kind() Kind       { return p.kind }
func (p *baseProduct) Title() string    { return p.title }
func (p *baseProduct) Price() money.Money { return p.price }

func (p *baseProduct) Attributes() map[string]any {
	out := make(map[string]any, len(p.attrs))
	for k, v := range p.attrs {
		out[k] = v
	}
	return out
}

// ElectronicProduct 电子产品。
type ElectronicProduct struct {
	baseProduct
	Brand          string
	Model          string
	WarrantyMonths int
}

// ClothingProduct 服装。
type ClothingProduct struct {
	baseProduct
	Size     string
	Material string
	Gender   string
}

// BookProduct 图书。
type BookProduct struct {
	baseProduct
	Author          string
	Genre           string
	PublicationYear int
}

func newBase(kind Kind, attrs map[string]any) (baseProduct, error) {
	price, err := priceFromAttrs(attrs)
	if err != nil {
		return baseProduct{}, err
	}
	title := "Unnamed"
	if t, ok := attrs["title"].(string); ok && t != "" {
		title = t
	}
	copied := make(map[string]any, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	return baseProduct{
		id:    uuid.New(),
		kind:  kind,
		title: title,
		price: price,
		attrs: copied,
	}, nil
}

func priceFromAttrs(attrs map[string]any) (money.Money, error) {
	raw, ok := attrs["price"].(string)
	if !ok || raw == "" {
		raw = "0.0"
	}
	currency, ok := attrs["currency"].(string)
	if !ok || currency == "" {
		currency = "USD"
	}
	m, err := money.New(raw, currency)
	if err != nil {
		return money.Money{}, errors.Wrap(ErrInvalidAttributes, err.Error())
	}
	return m, nil
}

func stringAttr(attrs map[string]any, key string) string {
	s, _ := attrs[key].(string)
	return s
}

func intAttr(attrs map[string]any, key string) int {
	switch v := attrs[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
