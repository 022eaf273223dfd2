package validation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"bazaar/internal/pkg/money"
	"bazaar/internal/service/order/domain"
)

type stubStage struct {
	name    string
	pass    bool
	checked bool
}

func (s *stubStage) Name() string { return s.name }

func (s *stubStage) Check(*domain.OrderContext) bool {
	s.checked = true
	return s.pass
}

func newOrderContext(t *testing.T, items ...domain.Item) *domain.OrderContext {
	t.Helper()
	order, err := domain.NewOrder(uuid.New(), items)
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	return domain.NewOrderContext(order)
}

func someItem() domain.Item {
	return domain.Item{ListingID: uuid.New(), Quantity: 1, UnitPrice: money.MustNew("10.00", "USD")}
}

func TestChainShortCircuits(t *testing.T) {
	a := &stubStage{name: "a", pass: true}
	b := &stubStage{name: "b", pass: false}
	c := &stubStage{name: "c", pass: true}
	chain := NewChain(a, b, c)

	ok, err := chain.Handle(newOrderContext(t, someItem()))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if ok {
		t.Error("chain passed despite failing stage")
	}
	if !a.checked || !b.checked {
		t.Error("stages before the failure were not evaluated")
	}
	if c.checked {
		t.Error("stage after the failure was evaluated")
	}
}

func TestChainAllPass(t *testing.T) {
	chain := NewChain(&stubStage{name: "a", pass: true}, &stubStage{name: "b", pass: true})

	ok, err := chain.Handle(newOrderContext(t, someItem()))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !ok {
		t.Error("chain rejected a valid order")
	}
}

func TestChainNilContext(t *testing.T) {
	chain := NewChain(&stubStage{name: "a", pass: true})

	if _, err := chain.Handle(nil); !errors.Is(err, ErrNilContext) {
		t.Fatalf("Handle(nil) = %v, want ErrNilContext", err)
	}
}

func TestEmptyChainPasses(t *testing.T) {
	ok, err := NewChain().Handle(newOrderContext(t, someItem()))
	if err != nil || !ok {
		t.Errorf("empty chain: ok=%v err=%v", ok, err)
	}
}

func TestCartStage(t *testing.T) {
	if (CartStage{}).Check(newOrderContext(t)) {
		t.Error("cart stage passed an empty order")
	}
	if !(CartStage{}).Check(newOrderContext(t, someItem())) {
		t.Error("cart stage rejected a non-empty order")
	}
}

type stubInventory struct {
	stock map[uuid.UUID]int
}

func (s *stubInventory) InStock(_ context.Context, listingID uuid.UUID, quantity int) bool {
	return s.stock[listingID] >= quantity
}

func TestStockStage(t *testing.T) {
	item := someItem()
	item.Quantity = 3
	oc := newOrderContext(t, item)

	out := NewStockStage(&stubInventory{stock: map[uuid.UUID]int{item.ListingID: 2}})
	if out.Check(oc) {
		t.Error("stock stage passed with insufficient inventory")
	}

	in := NewStockStage(&stubInventory{stock: map[uuid.UUID]int{item.ListingID: 3}})
	if !in.Check(oc) {
		t.Error("stock stage rejected with sufficient inventory")
	}

	if !NewStockStage(nil).Check(oc) {
		t.Error("stock stage without inventory port should pass")
	}
}

func TestPaymentDataStage(t *testing.T) {
	oc := newOrderContext(t, someItem())

	complete := NewPaymentDataStage(map[string]string{"method": "card", "token": "tok_1"}, "method", "token")
	if !complete.Check(oc) {
		t.Error("complete payment data rejected")
	}

	missing := NewPaymentDataStage(map[string]string{"method": "card"}, "method", "token")
	if missing.Check(oc) {
		t.Error("incomplete payment data accepted")
	}
}

type stubEngine struct {
	allow bool
	err   error
}

func (s *stubEngine) Evaluate(string, map[string]any) (bool, error) { return s.allow, s.err }

func TestFraudStage(t *testing.T) {
	oc := newOrderContext(t, someItem())

	if !NewFraudStage(&stubEngine{allow: true}, "total < 100.0").Check(oc) {
		t.Error("fraud stage rejected an allowed order")
	}
	if NewFraudStage(&stubEngine{allow: false}, "total < 100.0").Check(oc) {
		t.Error("fraud stage passed a flagged order")
	}
	if NewFraudStage(&stubEngine{err: errors.New("boom")}, "total < 100.0").Check(oc) {
		t.Error("fraud stage passed despite engine failure")
	}
	if !NewFraudStage(nil, "").Check(oc) {
		t.Error("fraud stage without engine should pass")
	}
}
