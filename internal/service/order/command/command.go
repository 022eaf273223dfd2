// internal/service/order/command/command.go
package command

import (
	"time"

	"bazaar/internal/pkg/eventbus"
	"bazaar/internal/service/order/domain"
)

// Result 是命令执行的结果值，命令只通过它上报成败，从不 panic。
type Result struct {
	Success bool
	Message string
}

// Command 封装一次可撤销的状态变更操作。
// Undo 必须是幂等的：未执行过或已撤销时调用是空操作。
type Command interface {
	Execute() Result
	Undo()
}

// PlaceOrderCommand 提交一笔订单。
// 下单成功与支付成功是两件独立的事：本命令只负责下单这一步，
// 支付由 CapturePaymentCommand 单独承载。
type PlaceOrderCommand struct {
	order  *domain.Order
	events *eventbus.Bus
	done   bool
	now    func() time.Time
}

// NewPlaceOrderCommand 创建下单命令。events 可以为 nil，表示不发布事件。
func NewPlaceOrderCommand(order *domain.Order, events *eventbus.Bus) *PlaceOrderCommand {
	return &PlaceOrderCommand{order: order, events: events, now: time.Now}
}

func (c *PlaceOrderCommand) Execute() Result {
	c.done = true
	if c.events != nil {
		c.events.Publish(domain.OrderPlacedEvent{
			OrderID:  c.order.ID(),
			BuyerID:  c.order.BuyerID(),
			Amount:   c.order.Total(),
			PlacedAt: c.now(),
		})
	}
	return Result{Success: true, Message: "Order placed"}
}

// Undo 只回退"已提交"标记，不发布补偿事件。
func (c *PlaceOrderCommand) Undo() {
	if c.done {
		c.done = false
	}
}

// Applied 返回命令是否处于已生效状态。
func (c *PlaceOrderCommand) Applied() bool { return c.done }

// CapturePaymentCommand 记录一次支付扣款。
// 真正的网关调用由重试代理包装的支付策略完成，不内联在命令里，
// 这样命令可以脱离网关行为独立测试。
type CapturePaymentCommand struct {
	order    *domain.Order
	captured bool
}

func NewCapturePaymentCommand(order *domain.Order) *CapturePaymentCommand {
	return &CapturePaymentCommand{order: order}
}

func (c *CapturePaymentCommand) Execute() Result {
	c.captured = true
	return Result{Success: true, Message: "Payment captured"}
}

func (c *CapturePaymentCommand) Undo() {
	if c.captured {
		c.captured = false
	}
}

// Captured 返回扣款标记是否生效。
func (c *CapturePaymentCommand) Captured() bool { return c.captured }
