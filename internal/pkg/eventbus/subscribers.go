// internal/pkg/eventbus/subscribers.go
package eventbus

import (
	"github.com/rs/zerolog/log"
)

// EmailNotifier 模拟向买家发送邮件通知的订阅者。
type EmailNotifier struct{}

func (EmailNotifier) Handle(e Event) {
	log.Info().Str("subscriber", "email").Str("event", e.EventName()).
		Interface("payload", e).Msg("email notification dispatched")
}

// SellerNotifier 模拟向卖家推送成交通知的订阅者。
type SellerNotifier struct{}

func (SellerNotifier) Handle(e Event) {
	log.Info().Str("subscriber", "seller").Str("event", e.EventName()).
		Interface("payload", e).Msg("seller notification dispatched")
}

// AnalyticsSubscriber 把事件累计进内存计数，供埋点/对账使用。
type AnalyticsSubscriber struct {
	counts map[string]int
}

func NewAnalyticsSubscriber() *AnalyticsSubscriber {
	return &AnalyticsSubscriber{counts: make(map[string]int)}
}

func (s *AnalyticsSubscriber) Handle(e Event) {
	s.counts[e.EventName()]++
	log.Debug().Str("subscriber", "analytics").Str("event", e.EventName()).
		Int("seen", s.counts[e.EventName()]).Msg("event recorded")
}

// Count 返回指定事件名的累计投递次数。
func (s *AnalyticsSubscriber) Count(eventName string) int {
	return s.counts[eventName]
}
