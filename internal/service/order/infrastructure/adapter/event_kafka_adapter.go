// internal/service/order/infrastructure/adapter/event_kafka_adapter.go
package adapter

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"bazaar/internal/pkg/eventbus"
)

// EventKafkaRelay 把进程内事件总线上的领域事件转发到 Kafka。
// 它本身只是一个普通的订阅者，挂在需要外发的事件名下即可。
// 总线是同步分发的，这里的写失败只记日志不回传——
// 事件外发失败不应让主流程失败，丢失的事件依赖对账补偿。
type EventKafkaRelay struct {
	writer *kafka.Writer
}

func NewEventKafkaRelay(writer *kafka.Writer) *EventKafkaRelay {
	return &EventKafkaRelay{writer: writer}
}

func (r *EventKafkaRelay) Handle(e eventbus.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		log.Error().Err(err).Str("event", e.EventName()).Msg("failed to marshal event for kafka")
		return
	}

	msg := kafka.Message{
		Key:   []byte(e.EventName()),
		Value: payload,
	}
	if err := r.writer.WriteMessages(context.Background(), msg); err != nil {
		log.Error().Err(err).Str("event", e.EventName()).Msg("failed to relay event to kafka")
	}
}

// Close 关闭底层的 Kafka writer。
func (r *EventKafkaRelay) Close() error {
	return r.writer.Close()
}

// NewKafkaWriter 按 broker 列表和 topic 构造一个 writer。
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}
