// internal/service/payment/strategy.go
package payment

import (
	"context"

	"bazaar/internal/service/order/domain"
)

// Result 是一次支付执行的业务结果。
type Result struct {
	Success       bool
	TransactionID string
	Message       string
}

// Strategy 是支付执行的出站端口：对订单总额发起一次授权。
type Strategy interface {
	ExecutePayment(ctx context.Context, order *domain.Order, data map[string]string) Result
}

// GatewayStrategy 用任意 Gateway（通常是套了重试代理的网关）执行支付。
type GatewayStrategy struct {
	gateway Gateway
}

func NewGatewayStrategy(gateway Gateway) *GatewayStrategy {
	return &GatewayStrategy{gateway: gateway}
}

func (s *GatewayStrategy) ExecutePayment(ctx context.Context, order *domain.Order, data map[string]string) Result {
	resp := s.gateway.Authorize(ctx, order.Total(), data)
	return Result{
		Success:       resp.Success,
		TransactionID: resp.TransactionID,
		Message:       resp.Message,
	}
}
