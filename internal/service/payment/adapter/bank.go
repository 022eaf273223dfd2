// internal/service/payment/adapter/bank.go
package adapter

import (
	"context"

	"github.com/google/uuid"

	"bazaar/internal/pkg/money"
	"bazaar/internal/service/payment"
)

// BankAdapter 是银行直连渠道的模拟适配器。
type BankAdapter struct {
	Endpoint string
}

func NewBankAdapter(endpoint string) *BankAdapter {
	return &BankAdapter{Endpoint: endpoint}
}

func (a *BankAdapter) Authorize(_ context.Context, _ money.Money, _ map[string]string) payment.Response {
	return payment.Response{Success: true, TransactionID: uuid.New().String(), Message: "bank authorized"}
}

func (a *BankAdapter) Capture(_ context.Context, txID string) payment.Response {
	return payment.Response{Success: true, TransactionID: txID, Message: "bank captured"}
}

func (a *BankAdapter) Refund(_ context.Context, txID string) payment.Response {
	return payment.Response{Success: true, TransactionID: txID, Message: "bank refunded"}
}
