// internal/service/payment/gateway.go
package payment

import (
	"context"

	"bazaar/internal/pkg/money"
)

// Response 是支付网关一次调用的结果值。
// TransactionID 当且仅当 Success 为 true 时有值，两者不会互相矛盾。
type Response struct {
	Success       bool
	TransactionID string
	Message       string
}

// Gateway 是支付网关能力的统一抽象：授权、扣款、退款。
// 任何具体的支付渠道适配器都实现这个接口；
// RetryProxy 自身也实现它，因此可以在需要网关的任何位置透明替换。
type Gateway interface {
	Authorize(ctx context.Context, amount money.Money, data map[string]string) Response
	Capture(ctx context.Context, txID string) Response
	Refund(ctx context.Context, txID string) Response
}
