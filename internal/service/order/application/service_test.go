package application

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace/noop"

	"bazaar/internal/pkg/eventbus"
	"bazaar/internal/pkg/money"
	"bazaar/internal/service/order/command"
	"bazaar/internal/service/order/domain"
	"bazaar/internal/service/order/infrastructure"
	"bazaar/internal/service/order/infrastructure/rule"
	"bazaar/internal/service/payment"
)

// flakyGateway 先失败 failures 次，之后开始成功。
type flakyGateway struct {
	failures int
	calls    int
}

func (g *flakyGateway) respond() payment.Response {
	g.calls++
	if g.calls <= g.failures {
		return payment.Response{Success: false, Message: "provider unavailable"}
	}
	return payment.Response{Success: true, TransactionID: "tx-1", Message: "authorized"}
}

func (g *flakyGateway) Authorize(context.Context, money.Money, map[string]string) payment.Response {
	return g.respond()
}
func (g *flakyGateway) Capture(context.Context, string) payment.Response { return g.respond() }
func (g *flakyGateway) Refund(context.Context, string) payment.Response  { return g.respond() }

type fixture struct {
	service   *OrderApplicationService
	analytics *eventbus.AnalyticsSubscriber
	gateway   *flakyGateway
}

func newFixture(t *testing.T, gatewayFailures, attempts int) *fixture {
	t.Helper()

	events := eventbus.NewBus()
	analytics := eventbus.NewAnalyticsSubscriber()
	events.Subscribe(domain.EventOrderPlaced, analytics)
	events.Subscribe(domain.EventPaymentCaptured, analytics)

	gateway := &flakyGateway{failures: gatewayFailures}
	strategy := payment.NewGatewayStrategy(payment.NewRetryProxy(gateway, payment.RetryPolicy{Attempts: attempts}))

	service := NewOrderApplicationService(
		infrastructure.NewMemoryOrderRepository(),
		command.NewCommandBus(),
		events,
		strategy,
		infrastructure.NewMemoryInventory(),
		rule.NewCELEngineAdapter(),
		`total < 100000.0 && quantity <= 1000`,
		noop.NewTracerProvider().Tracer("test"),
	)
	return &fixture{service: service, analytics: analytics, gateway: gateway}
}

func placeRequest() *PlaceOrderRequest {
	return &PlaceOrderRequest{
		BuyerID: uuid.New().String(),
		Items: []ItemInput{
			{ListingID: uuid.New().String(), Quantity: 2, UnitPrice: "50.00", Currency: "USD"},
		},
		PaymentData: map[string]string{"method": "card", "token": "tok_1"},
	}
}

func TestPlaceAndPayEndToEnd(t *testing.T) {
	fx := newFixture(t, 1, 2) // 网关失败一次，重试预算 2 次
	ctx := context.Background()

	resp, err := fx.service.PlaceOrder(ctx, placeRequest())
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if !resp.Accepted {
		t.Fatalf("order rejected: %s", resp.Message)
	}
	if resp.Total != "100.00 USD" {
		t.Errorf("total = %q, want %q", resp.Total, "100.00 USD")
	}
	if fx.analytics.Count(domain.EventOrderPlaced) != 1 {
		t.Errorf("order.placed deliveries = %d, want 1", fx.analytics.Count(domain.EventOrderPlaced))
	}

	orderID := uuid.MustParse(resp.OrderID)
	outcome, err := fx.service.Pay(ctx, orderID, map[string]string{"method": "card"})
	if err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if !outcome.Success {
		t.Fatalf("payment failed: %s", outcome.Message)
	}
	if outcome.Status != domain.StatusPaid {
		t.Errorf("status = %s, want paid", outcome.Status)
	}
	if fx.gateway.calls != 2 {
		t.Errorf("gateway calls = %d, want 2 (one failure + one success)", fx.gateway.calls)
	}
	if fx.analytics.Count(domain.EventPaymentCaptured) != 1 {
		t.Errorf("payment.captured deliveries = %d, want 1", fx.analytics.Count(domain.EventPaymentCaptured))
	}

	stored, err := fx.service.GetOrder(ctx, orderID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if stored.Status() != domain.StatusPaid {
		t.Errorf("stored status = %s, want paid", stored.Status())
	}
}

func TestCancelShippedOrderFails(t *testing.T) {
	fx := newFixture(t, 0, 1)
	ctx := context.Background()

	resp, err := fx.service.PlaceOrder(ctx, placeRequest())
	if err != nil || !resp.Accepted {
		t.Fatalf("PlaceOrder: %v (%+v)", err, resp)
	}
	orderID := uuid.MustParse(resp.OrderID)

	if _, err := fx.service.Pay(ctx, orderID, map[string]string{"method": "card"}); err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if status, err := fx.service.Ship(ctx, orderID); err != nil || status != domain.StatusShipped {
		t.Fatalf("Ship: %v (status %s)", err, status)
	}

	if _, err := fx.service.Cancel(ctx, orderID); !errors.Is(err, domain.ErrIllegalTransition) {
		t.Fatalf("Cancel = %v, want ErrIllegalTransition", err)
	}

	stored, err := fx.service.GetOrder(ctx, orderID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if stored.Status() != domain.StatusShipped {
		t.Errorf("status = %s, want shipped after failed cancel", stored.Status())
	}

	if status, err := fx.service.Deliver(ctx, orderID); err != nil || status != domain.StatusDelivered {
		t.Fatalf("Deliver: %v (status %s)", err, status)
	}
}

func TestPlaceOrderRejectedByValidation(t *testing.T) {
	fx := newFixture(t, 0, 1)

	resp, err := fx.service.PlaceOrder(context.Background(), &PlaceOrderRequest{
		BuyerID:     uuid.New().String(),
		Items:       nil, // 空购物车
		PaymentData: map[string]string{"method": "card"},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if resp.Accepted {
		t.Error("empty order was accepted")
	}
	if fx.analytics.Count(domain.EventOrderPlaced) != 0 {
		t.Error("rejected order still published an event")
	}
}

func TestPlaceOrderMissingPaymentData(t *testing.T) {
	fx := newFixture(t, 0, 1)
	req := placeRequest()
	req.PaymentData = nil

	resp, err := fx.service.PlaceOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if resp.Accepted {
		t.Error("order without payment data was accepted")
	}
}

func TestPayFailureLeavesOrderUntouched(t *testing.T) {
	fx := newFixture(t, 100, 3) // 网关永远失败
	ctx := context.Background()

	resp, err := fx.service.PlaceOrder(ctx, placeRequest())
	if err != nil || !resp.Accepted {
		t.Fatalf("PlaceOrder: %v (%+v)", err, resp)
	}
	orderID := uuid.MustParse(resp.OrderID)

	outcome, err := fx.service.Pay(ctx, orderID, map[string]string{"method": "card"})
	if err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if outcome.Success {
		t.Fatal("payment against a dead gateway succeeded")
	}
	if fx.gateway.calls != 3 {
		t.Errorf("gateway calls = %d, want exactly the retry budget of 3", fx.gateway.calls)
	}
	if outcome.Status != domain.StatusCreated {
		t.Errorf("status = %s, want created (proxy must not transition the order)", outcome.Status)
	}
	if fx.analytics.Count(domain.EventPaymentCaptured) != 0 {
		t.Error("failed payment published a captured event")
	}
}

func TestPayUnknownOrder(t *testing.T) {
	fx := newFixture(t, 0, 1)

	if _, err := fx.service.Pay(context.Background(), uuid.New(), nil); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("Pay = %v, want ErrOrderNotFound", err)
	}
}

func TestPlaceOrderMixedCurrencies(t *testing.T) {
	fx := newFixture(t, 0, 1)
	req := placeRequest()
	req.Items = append(req.Items, ItemInput{
		ListingID: uuid.New().String(), Quantity: 1, UnitPrice: "5.00", Currency: "EUR",
	})

	if _, err := fx.service.PlaceOrder(context.Background(), req); !errors.Is(err, money.ErrCurrencyMismatch) {
		t.Fatalf("PlaceOrder = %v, want ErrCurrencyMismatch", err)
	}
}

func TestConcurrentPlaceOrders(t *testing.T) {
	fx := newFixture(t, 0, 1)
	ctx := context.Background()

	const workers = 64
	var wg sync.WaitGroup
	responses := make([]*PlaceOrderResponse, workers)
	errs := make([]error, workers)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			responses[i], errs[i] = fx.service.PlaceOrder(ctx, placeRequest())
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("PlaceOrder #%d: %v", i, errs[i])
		}
		if !responses[i].Accepted {
			t.Fatalf("PlaceOrder #%d rejected: %s", i, responses[i].Message)
		}
	}
	if got := fx.analytics.Count(domain.EventOrderPlaced); got != workers {
		t.Errorf("order.placed deliveries = %d, want %d", got, workers)
	}
	for i := 0; i < workers; i++ {
		if _, err := fx.service.GetOrder(ctx, uuid.MustParse(responses[i].OrderID)); err != nil {
			t.Errorf("GetOrder #%d: %v", i, err)
		}
	}
}

func TestConcurrentTransitionsOnSameOrder(t *testing.T) {
	fx := newFixture(t, 0, 1)
	ctx := context.Background()

	resp, err := fx.service.PlaceOrder(ctx, placeRequest())
	if err != nil || !resp.Accepted {
		t.Fatalf("PlaceOrder: %v (%+v)", err, resp)
	}
	orderID := uuid.MustParse(resp.OrderID)

	// pay 和 cancel 并发竞争同一张 created 订单。
	// 两种串行化顺序都合法（cancel 先到则 pay 落空；pay 先到则已付订单仍可取消），
	// 要求的是结果自洽：失败只能是预期的哨兵错误，终态必须是两条路径之一。
	var wg sync.WaitGroup
	results := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, results[0] = fx.service.Pay(ctx, orderID, map[string]string{"method": "card"})
	}()
	go func() {
		defer wg.Done()
		_, results[1] = fx.service.Cancel(ctx, orderID)
	}()
	wg.Wait()

	for i, err := range results {
		if err != nil && !errors.Is(err, domain.ErrIllegalTransition) && !errors.Is(err, domain.ErrOrderNotFound) {
			t.Errorf("operation %d got unexpected error: %v", i, err)
		}
	}

	stored, err := fx.service.GetOrder(ctx, orderID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if s := stored.Status(); s != domain.StatusPaid && s != domain.StatusCancelled {
		t.Errorf("status = %s, want paid or cancelled", s)
	}
}

func TestTerminalOrderReleasesWorkflow(t *testing.T) {
	fx := newFixture(t, 0, 1)
	ctx := context.Background()

	resp, err := fx.service.PlaceOrder(ctx, placeRequest())
	if err != nil || !resp.Accepted {
		t.Fatalf("PlaceOrder: %v (%+v)", err, resp)
	}
	orderID := uuid.MustParse(resp.OrderID)

	if _, err := fx.service.Cancel(ctx, orderID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	// 终态之后状态机上下文已释放，再发起迁移只会拿到未找到
	if _, err := fx.service.Pay(ctx, orderID, map[string]string{"method": "card"}); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("Pay after cancel = %v, want ErrOrderNotFound", err)
	}

	// 订单本身仍然可查，历史不丢
	stored, err := fx.service.GetOrder(ctx, orderID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if stored.Status() != domain.StatusCancelled {
		t.Errorf("status = %s, want cancelled", stored.Status())
	}
}
