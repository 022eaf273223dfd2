// internal/pkg/eventbus/bus.go
package eventbus

import (
	"reflect"
)

// Event 是所有领域事件的统一接口，按事件名精确路由。
type Event interface {
	EventName() string
}

// Handler 是事件订阅方的入站端口。
// 注意：Publish 是同步分发的，Handler 内部的 panic 不会被总线吞掉，
// 会沿调用栈传播到发布方。
type Handler interface {
	Handle(e Event)
}

// Bus 是一个进程内的同步发布/订阅总线。
// 按事件名维护订阅者列表，分发顺序与注册顺序一致。
// 总线本身不加锁：订阅/退订在装配期完成，Publish 由宿主（订单应用服务的
// 互斥锁）串行化。
type Bus struct {
	subscribers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]Handler)}
}

// Subscribe 将 handler 注册到指定事件名下，重复注册会收到多次投递。
func (b *Bus) Subscribe(eventName string, h Handler) {
	b.subscribers[eventName] = append(b.subscribers[eventName], h)
}

// Unsubscribe 按注册身份移除第一个匹配的 handler，未注册则为空操作。
// 身份匹配要求 handler 的动态类型可比较；携带 map/slice 字段的值类型
// 无法匹配（也不会 panic），这类订阅者应当以指针注册。
func (b *Bus) Unsubscribe(eventName string, h Handler) {
	handlers := b.subscribers[eventName]
	for i, existing := range handlers {
		if handlerEqual(existing, h) {
			b.subscribers[eventName] = append(handlers[:i:i], handlers[i+1:]...)
			return
		}
	}
}

func handlerEqual(a, b Handler) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta != nil && !ta.Comparable() {
		return false
	}
	return a == b
}

// Publish 将事件同步投递给该事件名下的全部订阅者。
// 只做精确匹配，不做类型层级的泛化投递。
func (b *Bus) Publish(e Event) {
	for _, h := range b.subscribers[e.EventName()] {
		h.Handle(e)
	}
}
