// internal/service/order/application/service.go
package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"bazaar/internal/pkg/eventbus"
	"bazaar/internal/pkg/logger"
	"bazaar/internal/service/order/command"
	"bazaar/internal/service/order/domain"
	"bazaar/internal/service/order/domain/port"
	"bazaar/internal/service/order/validation"
	"bazaar/internal/service/payment"
)

// OrderApplicationService 负责订单生命周期的业务流程编排：
// 下单请求 -> 构造实体 -> 校验链 -> 命令总线 -> 状态机迁移 ->
// 重试包装的支付调用 -> 事件发布。
// 所有外部依赖都以出站端口注入，service 本身不做任何网络 I/O。
// HTTP 宿主在独立 goroutine 上并发调用，写路径由 mu 串行执行：
// 入队和出队必须配对、状态机迁移和落库必须成组，粒度更细的锁保不住这些序列。
type OrderApplicationService struct {
	orders    domain.OrderRepository
	commands  *command.CommandBus
	events    *eventbus.Bus
	payment   payment.Strategy
	inventory port.InventoryChecker
	rules     port.RuleEngine
	fraudRule string
	tracer    trace.Tracer

	mu sync.Mutex
	// contexts 持有在途订单的状态机上下文，订单到达终态后删除。
	contexts map[uuid.UUID]*domain.OrderContext
}

func NewOrderApplicationService(
	orders domain.OrderRepository,
	commands *command.CommandBus,
	events *eventbus.Bus,
	strategy payment.Strategy,
	inventory port.InventoryChecker,
	rules port.RuleEngine,
	fraudRule string,
	tracer trace.Tracer,
) *OrderApplicationService {
	return &OrderApplicationService{
		orders: orders, commands: commands, events: events,
		payment: strategy, inventory: inventory,
		rules: rules, fraudRule: fraudRule, tracer: tracer,
		contexts: make(map[uuid.UUID]*domain.OrderContext),
	}
}

// buildChain 为一次下单请求组装校验链。
// 环节顺序是配置而不是类型层级：购物车 -> 库存 -> 支付数据 -> 欺诈。
func (s *OrderApplicationService) buildChain(paymentData map[string]string) *validation.Chain {
	return validation.NewChain(
		validation.CartStage{},
		validation.NewStockStage(s.inventory),
		validation.NewPaymentDataStage(paymentData, "method"),
		validation.NewFraudStage(s.rules, s.fraudRule),
	)
}

// PlaceOrder 处理下单请求。
// 校验不通过是业务结果（Accepted=false），不是 error；
// error 只用于无效输入和契约违规。
func (s *OrderApplicationService) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*PlaceOrderResponse, error) {
	ctx, span := s.tracer.Start(ctx, "app.PlaceOrder")
	defer span.End()

	buyerID, err := uuid.Parse(req.BuyerID)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid buyer id %q", req.BuyerID)
	}
	items, err := req.toDomainItems()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	orderEntity, err := domain.NewOrder(buyerID, items)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create order entity")
		return nil, err
	}
	span.SetAttributes(
		attribute.String("order.id", orderEntity.ID().String()),
		attribute.Float64("order.total", orderEntity.Total().Float64()),
	)

	orderCtx := domain.NewOrderContext(orderEntity)

	ok, err := s.buildChain(req.PaymentData).Handle(orderCtx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !ok {
		span.AddEvent("order rejected by validation chain")
		return &PlaceOrderResponse{
			OrderID:  orderEntity.ID().String(),
			Status:   orderEntity.Status(),
			Total:    orderEntity.Total().String(),
			Accepted: false,
			Message:  "order rejected by validation",
		}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.orders.Save(ctx, orderEntity); err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.contexts[orderEntity.ID()] = orderCtx

	s.commands.Enqueue(command.NewPlaceOrderCommand(orderEntity, s.events))
	res := s.commands.ExecuteNext()
	if !res.Success {
		span.SetStatus(codes.Error, "place order command failed")
		return &PlaceOrderResponse{
			OrderID:  orderEntity.ID().String(),
			Status:   orderEntity.Status(),
			Total:    orderEntity.Total().String(),
			Accepted: false,
			Message:  res.Message,
		}, nil
	}

	logger.Ctx(ctx).Info().
		Str("order_id", orderEntity.ID().String()).
		Str("buyer_id", buyerID.String()).
		Str("total", orderEntity.Total().String()).
		Msg("order placed")

	return &PlaceOrderResponse{
		OrderID:  orderEntity.ID().String(),
		Status:   orderEntity.Status(),
		Total:    orderEntity.Total().String(),
		Accepted: true,
		Message:  res.Message,
	}, nil
}

// Pay 对在途订单发起支付。
// 非法状态下的支付是调用方的前置条件违规，立即以 error 上报；
// 支付网关最终失败是业务结果（Success=false），订单状态保持不变，
// 由调用方决定重试还是放弃。
func (s *OrderApplicationService) Pay(ctx context.Context, orderID uuid.UUID, data map[string]string) (*PaymentOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "app.Pay")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", orderID.String()))

	s.mu.Lock()
	defer s.mu.Unlock()

	orderCtx, err := s.context(orderID)
	if err != nil {
		return nil, err
	}
	if !orderCtx.Can(domain.TransitionPay) {
		err := errors.Wrapf(domain.ErrIllegalTransition, "cannot pay order %s in state %s", orderID, orderCtx.State())
		span.RecordError(err)
		span.SetStatus(codes.Error, "illegal transition")
		return nil, err
	}

	result := s.payment.ExecutePayment(ctx, orderCtx.Order(), data)
	if !result.Success {
		span.AddEvent("payment failed after retries")
		logger.Ctx(ctx).Warn().
			Str("order_id", orderID.String()).
			Str("message", result.Message).
			Msg("payment failed")
		return &PaymentOutcome{
			OrderID: orderID.String(),
			Status:  orderCtx.Order().Status(),
			Success: false,
			Message: result.Message,
		}, nil
	}

	if err := orderCtx.Pay(); err != nil {
		// Can 已经检查过合法性，到这里只可能是编程错误
		span.RecordError(err)
		return nil, err
	}

	s.commands.Enqueue(command.NewCapturePaymentCommand(orderCtx.Order()))
	if res := s.commands.ExecuteNext(); !res.Success {
		return nil, errors.Errorf("capture payment command failed: %s", res.Message)
	}

	s.events.Publish(domain.PaymentCapturedEvent{
		OrderID:       orderID,
		TransactionID: result.TransactionID,
		Amount:        orderCtx.Order().Total(),
		CapturedAt:    time.Now(),
	})

	if err := s.orders.Save(ctx, orderCtx.Order()); err != nil {
		span.RecordError(err)
		return nil, err
	}

	logger.Ctx(ctx).Info().
		Str("order_id", orderID.String()).
		Str("tx_id", result.TransactionID).
		Msg("payment captured")

	return &PaymentOutcome{
		OrderID:       orderID.String(),
		Status:        orderCtx.Order().Status(),
		Success:       true,
		TransactionID: result.TransactionID,
		Message:       result.Message,
	}, nil
}

// Cancel 取消订单。非法迁移直接以 error 上报。
func (s *OrderApplicationService) Cancel(ctx context.Context, orderID uuid.UUID) (domain.Status, error) {
	return s.transition(ctx, orderID, "app.Cancel", (*domain.OrderContext).Cancel)
}

// Ship 发货。
func (s *OrderApplicationService) Ship(ctx context.Context, orderID uuid.UUID) (domain.Status, error) {
	return s.transition(ctx, orderID, "app.Ship", (*domain.OrderContext).Ship)
}

// Deliver 妥投。
func (s *OrderApplicationService) Deliver(ctx context.Context, orderID uuid.UUID) (domain.Status, error) {
	return s.transition(ctx, orderID, "app.Deliver", (*domain.OrderContext).Deliver)
}

func (s *OrderApplicationService) transition(ctx context.Context, orderID uuid.UUID, spanName string, op func(*domain.OrderContext) error) (domain.Status, error) {
	ctx, span := s.tracer.Start(ctx, spanName)
	defer span.End()
	span.SetAttributes(attribute.String("order.id", orderID.String()))

	s.mu.Lock()
	defer s.mu.Unlock()

	orderCtx, err := s.context(orderID)
	if err != nil {
		return "", err
	}

	if err := op(orderCtx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "illegal transition")
		return "", err
	}

	if err := s.orders.Save(ctx, orderCtx.Order()); err != nil {
		span.RecordError(err)
		return "", err
	}

	status := orderCtx.Order().Status()
	// 终态订单的状态机上下文不再被任何迁移需要，立即释放
	if status == domain.StatusCancelled || status == domain.StatusDelivered {
		delete(s.contexts, orderID)
	}
	return status, nil
}

// GetOrder 查询订单。
func (s *OrderApplicationService) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

// UndoLast 撤销最近一次成功执行的命令，暴露给运维接口使用。
func (s *OrderApplicationService) UndoLast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands.UndoLast()
}

func (s *OrderApplicationService) context(orderID uuid.UUID) (*domain.OrderContext, error) {
	orderCtx, ok := s.contexts[orderID]
	if !ok {
		return nil, errors.Wrapf(domain.ErrOrderNotFound, "no active workflow for order %s", orderID)
	}
	return orderCtx, nil
}
