// internal/service/order/domain/event.go
package domain

import (
	"time"

	"github.com/google/uuid"

	"bazaar/internal/pkg/money"
)

const (
	// EventOrderPlaced 是下单成功事件的总线路由名。
	EventOrderPlaced = "order.placed"
	// EventPaymentCaptured 是支付扣款成功事件的总线路由名。
	EventPaymentCaptured = "payment.captured"
)

// OrderPlacedEvent 在订单通过校验并成功下单后发布。
type OrderPlacedEvent struct {
	OrderID  uuid.UUID   `json:"orderId"`
	BuyerID  uuid.UUID   `json:"buyerId"`
	Amount   money.Money `json:"amount"`
	PlacedAt time.Time   `json:"placedAt"`
}

func (OrderPlacedEvent) EventName() string { return EventOrderPlaced }

// PaymentCapturedEvent 在支付网关扣款成功后发布。
type PaymentCapturedEvent struct {
	OrderID       uuid.UUID   `json:"orderId"`
	TransactionID string      `json:"transactionId"`
	Amount        money.Money `json:"amount"`
	CapturedAt    time.Time   `json:"capturedAt"`
}

func (PaymentCapturedEvent) EventName() string { return EventPaymentCaptured }
