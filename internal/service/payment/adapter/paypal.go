// internal/service/payment/adapter/paypal.go
package adapter

import (
	"context"

	"github.com/google/uuid"

	"bazaar/internal/pkg/money"
	"bazaar/internal/service/payment"
)

// PayPalAdapter 是 PayPal 渠道的模拟适配器。
type PayPalAdapter struct {
	ClientID     string
	ClientSecret string
}

func NewPayPalAdapter(clientID, clientSecret string) *PayPalAdapter {
	return &PayPalAdapter{ClientID: clientID, ClientSecret: clientSecret}
}

func (a *PayPalAdapter) Authorize(_ context.Context, _ money.Money, _ map[string]string) payment.Response {
	return payment.Response{Success: true, TransactionID: uuid.New().String(), Message: "paypal authorized"}
}

func (a *PayPalAdapter) Capture(_ context.Context, txID string) payment.Response {
	return payment.Response{Success: true, TransactionID: txID, Message: "paypal captured"}
}

func (a *PayPalAdapter) Refund(_ context.Context, txID string) payment.Response {
	return payment.Response{Success: true, TransactionID: txID, Message: "paypal refunded"}
}
