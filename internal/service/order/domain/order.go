// internal/service/order/domain/order.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"bazaar/internal/pkg/money"
)

// ErrInvalidItem 表示订单行不满足构造约束（数量必须为正）。
var ErrInvalidItem = errors.New("order: invalid item")

// Item 是订单中的一个行项目，构造后不可变。
type Item struct {
	ListingID uuid.UUID
	Quantity  int
	UnitPrice money.Money
}

// Status 是订单在生命周期中的状态。
// 订单构造时处于 created，之后只能通过状态机推进，
// delivered 和 cancelled 是终态。
type Status string

const (
	StatusCreated   Status = "created"
	StatusPaid      Status = "paid"
	StatusReserved  Status = "reserved"
	StatusShipped   Status = "shipped"
	StatusCancelled Status = "cancelled"
	StatusDelivered Status = "delivered"
)

// Order 是订单聚合的根实体。
// 身份（ID）不可变；行项目集合在构造时固定；
// 总价在构造时计算一次，之后不再重算。
type Order struct {
	id        uuid.UUID
	buyerID   uuid.UUID
	items     []Item
	status    Status
	total     money.Money
	createdAt time.Time
	updatedAt time.Time
}

// NewOrder 创建一个新订单并计算总价。
// 所有行项目必须使用同一币种，否则返回 money.ErrCurrencyMismatch；
// 行项目数量必须为正。空订单允许构造（由校验链在下单前拒绝）。
func NewOrder(buyerID uuid.UUID, items []Item) (*Order, error) {
	total := money.Zero("USD")
	if len(items) > 0 {
		total = money.Zero(items[0].UnitPrice.Currency)
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, errors.Wrapf(ErrInvalidItem, "listing %s: quantity %d", it.ListingID, it.Quantity)
		}
		sum, err := total.Add(it.UnitPrice.Mul(it.Quantity))
		if err != nil {
			return nil, err
		}
		total = sum
	}

	now := time.Now()
	return &Order{
		id:        uuid.New(),
		buyerID:   buyerID,
		items:     append([]Item(nil), items...),
		status:    StatusCreated,
		total:     total,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func (o *Order) ID() uuid.UUID      { return o.id }
func (o *Order) BuyerID() uuid.UUID { return o.buyerID }
func (o *Order) Status() Status     { return o.status }
func (o *Order) Total() money.Money { return o.total }

// Items 返回行项目的副本，调用方无法借此修改订单。
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// setStatus 仅供同包的状态机调用，Status 字段与当前状态必须一起推进。
func (o *Order) setStatus(s Status) {
	o.status = s
	o.updatedAt = time.Now()
}
