package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"bazaar/internal/pkg/logger"
	"bazaar/internal/service/order/application"
	"bazaar/internal/service/order/domain"
)

const serviceName = "order-service"

// OrderHandler 封装了订单服务的 HTTP 处理器
type OrderHandler struct {
	service *application.OrderApplicationService
}

// NewOrderHandler 创建一个新的 HTTP 处理器实例
func NewOrderHandler(service *application.OrderApplicationService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *OrderHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/create_order", h.createOrderHandler)
	mux.HandleFunc("/orders/pay", h.payHandler)
	mux.HandleFunc("/orders/cancel", h.transitionHandler("api.CancelOrder", h.service.Cancel))
	mux.HandleFunc("/orders/ship", h.transitionHandler("api.ShipOrder", h.service.Ship))
	mux.HandleFunc("/orders/deliver", h.transitionHandler("api.DeliverOrder", h.service.Deliver))
	mux.HandleFunc("/orders/get", h.getOrderHandler)
}

func (h *OrderHandler) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := otel.Tracer(serviceName).Start(ctx, "api.CreateOrder")
	defer span.End()

	var req application.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("order.item_count", len(req.Items)))

	resp, err := h.service.PlaceOrder(ctx, &req)
	if err != nil {
		span.RecordError(err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !resp.Accepted {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	writeJSON(w, resp)
}

func (h *OrderHandler) payHandler(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := otel.Tracer(serviceName).Start(ctx, "api.PayOrder")
	defer span.End()

	orderID, err := uuid.Parse(r.URL.Query().Get("order_id"))
	if err != nil {
		http.Error(w, "invalid order_id", http.StatusBadRequest)
		return
	}

	var data map[string]string
	if r.Body != nil {
		// 支付数据可选，body 为空时按 nil 处理
		_ = json.NewDecoder(r.Body).Decode(&data)
	}

	outcome, err := h.service.Pay(ctx, orderID, data)
	if err != nil {
		span.RecordError(err)
		writeDomainError(w, err)
		return
	}
	if !outcome.Success {
		w.WriteHeader(http.StatusPaymentRequired)
	}
	writeJSON(w, outcome)
}

type transitionResponse struct {
	OrderID string        `json:"order_id"`
	Status  domain.Status `json:"status"`
}

func (h *OrderHandler) transitionHandler(spanName string, op func(ctx context.Context, id uuid.UUID) (domain.Status, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := otel.Tracer(serviceName).Start(ctx, spanName)
		defer span.End()

		orderID, err := uuid.Parse(r.URL.Query().Get("order_id"))
		if err != nil {
			http.Error(w, "invalid order_id", http.StatusBadRequest)
			return
		}

		status, err := op(ctx, orderID)
		if err != nil {
			span.RecordError(err)
			logger.Ctx(ctx).Warn().Err(err).Str("order_id", orderID.String()).Msg("order transition rejected")
			writeDomainError(w, err)
			return
		}
		writeJSON(w, transitionResponse{OrderID: orderID.String(), Status: status})
	}
}

func (h *OrderHandler) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := uuid.Parse(r.URL.Query().Get("order_id"))
	if err != nil {
		http.Error(w, "invalid order_id", http.StatusBadRequest)
		return
	}

	order, err := h.service.GetOrder(ctx, orderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"order_id": order.ID().String(),
		"buyer_id": order.BuyerID().String(),
		"status":   order.Status(),
		"total":    order.Total().String(),
	})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrIllegalTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
