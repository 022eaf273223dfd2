// internal/service/payment/proxy.go
package payment

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"bazaar/internal/pkg/money"
)

var retryAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bazaar_payment_attempts_total",
	Help: "Payment gateway invocations through the retry proxy, by operation and outcome.",
}, []string{"operation", "outcome"})

// RetryPolicy 限定每次网关调用的最大尝试次数。
type RetryPolicy struct {
	Attempts int
}

// DefaultRetryPolicy 默认尝试 3 次。
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3}
}

// RetryProxy 包装任意 Gateway，对每个操作施加有界重试。
// 所有失败都视为可重试——不区分瞬时错误和永久错误；
// 重试之间没有退避，也没有墙钟上限，预算耗尽即返回最后一次失败响应。
type RetryProxy struct {
	inner  Gateway
	policy RetryPolicy
}

func NewRetryProxy(inner Gateway, policy RetryPolicy) *RetryProxy {
	return &RetryProxy{inner: inner, policy: policy}
}

func (p *RetryProxy) Authorize(ctx context.Context, amount money.Money, data map[string]string) Response {
	return p.retry("authorize", func() Response { return p.inner.Authorize(ctx, amount, data) })
}

func (p *RetryProxy) Capture(ctx context.Context, txID string) Response {
	return p.retry("capture", func() Response { return p.inner.Capture(ctx, txID) })
}

func (p *RetryProxy) Refund(ctx context.Context, txID string) Response {
	return p.retry("refund", func() Response { return p.inner.Refund(ctx, txID) })
}

func (p *RetryProxy) retry(operation string, call func() Response) Response {
	if p.policy.Attempts < 1 {
		// 预算为零时合成一个失败响应，绝不向上传播未定义的值
		return Response{Success: false, Message: "retry policy permits no attempts"}
	}

	var last Response
	for attempt := 1; attempt <= p.policy.Attempts; attempt++ {
		last = call()
		if last.Success {
			retryAttempts.WithLabelValues(operation, "success").Inc()
			return last
		}
		retryAttempts.WithLabelValues(operation, "failure").Inc()
		log.Debug().
			Str("operation", operation).
			Int("attempt", attempt).
			Int("budget", p.policy.Attempts).
			Str("message", last.Message).
			Msg("payment attempt failed")
	}
	return last
}
