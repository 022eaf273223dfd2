// internal/service/order/validation/stages.go
package validation

import (
	"context"

	"github.com/rs/zerolog/log"

	"bazaar/internal/service/order/domain"
	"bazaar/internal/service/order/domain/port"
)

// CartStage 拒绝没有任何行项目的订单。
type CartStage struct{}

func (CartStage) Name() string { return "cart" }

func (CartStage) Check(oc *domain.OrderContext) bool {
	return len(oc.Order().Items()) > 0
}

// StockStage 逐行确认库存可用。
type StockStage struct {
	Inventory port.InventoryChecker
}

func NewStockStage(inventory port.InventoryChecker) *StockStage {
	return &StockStage{Inventory: inventory}
}

func (*StockStage) Name() string { return "stock" }

func (s *StockStage) Check(oc *domain.OrderContext) bool {
	if s.Inventory == nil {
		// 未接入库存服务时视为可售
		return true
	}
	for _, item := range oc.Order().Items() {
		if !s.Inventory.InStock(context.Background(), item.ListingID, item.Quantity) {
			return false
		}
	}
	return true
}

// PaymentDataStage 检查支付数据的完整性。
// 支付数据由调用方在组链时提供，required 中列出的键必须都有非空值。
type PaymentDataStage struct {
	data     map[string]string
	required []string
}

func NewPaymentDataStage(data map[string]string, required ...string) *PaymentDataStage {
	if len(required) == 0 {
		required = []string{"method"}
	}
	return &PaymentDataStage{data: data, required: required}
}

func (*PaymentDataStage) Name() string { return "payment_data" }

func (s *PaymentDataStage) Check(*domain.OrderContext) bool {
	for _, key := range s.required {
		if s.data[key] == "" {
			return false
		}
	}
	return true
}

// FraudStage 用规则引擎对订单事实求值，规则返回 true 表示放行。
// 引擎故障或规则求值出错按拒绝处理：无法证明不是欺诈就不放行。
type FraudStage struct {
	engine port.RuleEngine
	rule   string
}

func NewFraudStage(engine port.RuleEngine, rule string) *FraudStage {
	return &FraudStage{engine: engine, rule: rule}
}

func (*FraudStage) Name() string { return "fraud" }

func (s *FraudStage) Check(oc *domain.OrderContext) bool {
	if s.engine == nil || s.rule == "" {
		return true
	}

	order := oc.Order()
	quantity := 0
	for _, item := range order.Items() {
		quantity += item.Quantity
	}
	fact := map[string]any{
		"total":    order.Total().Float64(),
		"currency": order.Total().Currency,
		"quantity": quantity,
		"buyer_id": order.BuyerID().String(),
	}

	ok, err := s.engine.Evaluate(s.rule, fact)
	if err != nil {
		log.Error().Err(err).
			Str("order_id", order.ID().String()).
			Msg("fraud rule evaluation failed, rejecting order")
		return false
	}
	return ok
}
