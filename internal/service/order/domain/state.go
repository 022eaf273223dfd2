// internal/service/order/domain/state.go
package domain

import (
	"github.com/pkg/errors"
)

// ErrIllegalTransition 表示在当前状态下调用了非法的生命周期操作。
// 这是调用方的前置条件违规，必须显式上报，绝不静默忽略或自动纠正。
var ErrIllegalTransition = errors.New("order: illegal state transition")

// Transition 是状态机支持的四种生命周期操作。
type Transition string

const (
	TransitionPay     Transition = "pay"
	TransitionCancel  Transition = "cancel"
	TransitionShip    Transition = "ship"
	TransitionDeliver Transition = "deliver"
)

// outcome 描述 (状态, 操作) 对应的结果：要么迁移到 next，要么原地空转。
type outcome struct {
	next Status
	noop bool
}

// transitions 是完整的状态迁移表。
// 表中缺失的 (状态, 操作) 组合即为非法操作。
// delivered 作为显式终态引入：任何操作都非法。
var transitions = map[Status]map[Transition]outcome{
	StatusCreated: {
		TransitionPay:    {next: StatusPaid},
		TransitionCancel: {next: StatusCancelled},
	},
	StatusPaid: {
		TransitionPay:    {noop: true},
		TransitionCancel: {next: StatusCancelled},
		TransitionShip:   {next: StatusShipped},
	},
	StatusReserved: {
		TransitionPay:    {next: StatusPaid},
		TransitionCancel: {next: StatusCancelled},
		TransitionShip:   {next: StatusShipped},
	},
	StatusShipped: {
		TransitionPay:     {noop: true},
		TransitionShip:    {noop: true},
		TransitionDeliver: {next: StatusDelivered},
	},
	StatusCancelled: {
		TransitionCancel: {noop: true},
	},
	StatusDelivered: {},
}

// OrderContext 持有且仅持有一个订单和它的当前状态。
// 四个迁移方法是修改订单状态的唯一入口；
// 订单的 Status 字段和上下文的当前状态在一次调用内同时更新，
// 调用返回后外界不可能观察到两者不一致。
type OrderContext struct {
	order *Order
	state Status
}

// NewOrderContext 与订单一同创建，初始状态取自订单当前状态。
func NewOrderContext(order *Order) *OrderContext {
	return &OrderContext{order: order, state: order.Status()}
}

func (c *OrderContext) Order() *Order { return c.order }

// State 返回上下文的当前状态变体。
func (c *OrderContext) State() Status { return c.state }

// Can 判断某个操作在当前状态下是否合法（合法的空转也算合法）。
func (c *OrderContext) Can(op Transition) bool {
	_, ok := transitions[c.state][op]
	return ok
}

// Pay 支付订单。
func (c *OrderContext) Pay() error { return c.apply(TransitionPay) }

// Cancel 取消订单。
func (c *OrderContext) Cancel() error { return c.apply(TransitionCancel) }

// Ship 发货。
func (c *OrderContext) Ship() error { return c.apply(TransitionShip) }

// Deliver 妥投。
func (c *OrderContext) Deliver() error { return c.apply(TransitionDeliver) }

func (c *OrderContext) apply(op Transition) error {
	t, ok := transitions[c.state][op]
	if !ok {
		return errors.Wrapf(ErrIllegalTransition, "cannot %s order %s in state %s", op, c.order.ID(), c.state)
	}
	if t.noop {
		return nil
	}
	c.order.setStatus(t.next)
	c.state = t.next
	return nil
}
