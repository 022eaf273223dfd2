// internal/service/payment/adapter/stripe.go
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bazaar/internal/pkg/money"
	"bazaar/internal/service/payment"
)

// StripeAdapter 是 Stripe 渠道的模拟适配器。
// 网络调用是模拟的——真实接入时只需替换这三个方法的内部实现，
// 重试代理和上层策略无需任何改动。
type StripeAdapter struct {
	APIKey string
}

func NewStripeAdapter(apiKey string) *StripeAdapter {
	return &StripeAdapter{APIKey: apiKey}
}

func (a *StripeAdapter) Authorize(_ context.Context, amount money.Money, _ map[string]string) payment.Response {
	txID := uuid.New().String()
	log.Debug().Str("provider", "stripe").Str("tx_id", txID).Stringer("amount", amount).Msg("authorize")
	return payment.Response{Success: true, TransactionID: txID, Message: "stripe authorized"}
}

func (a *StripeAdapter) Capture(_ context.Context, txID string) payment.Response {
	return payment.Response{Success: true, TransactionID: txID, Message: "stripe captured"}
}

func (a *StripeAdapter) Refund(_ context.Context, txID string) payment.Response {
	return payment.Response{Success: true, TransactionID: txID, Message: "stripe refunded"}
}
