package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bazaar/internal/service/listing/domain"
)

func pricedListing(price, currency string) *domain.Listing {
	return &domain.Listing{
		ID:          uuid.New(),
		ProductKind: "book",
		Payload:     map[string]any{"price": price, "currency": currency},
		CreatedAt:   time.Now().UTC(),
		SellerID:    uuid.New(),
	}
}

func TestBaseCalculator(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    string
	}{
		{"priced", map[string]any{"price": "100.00", "currency": "EUR"}, "100.00 EUR"},
		{"no price", map[string]any{"currency": "EUR"}, "0.00 EUR"},
		{"empty payload", map[string]any{}, "0.00 USD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := pricedListing("", "")
			l.Payload = tt.payload
			got, err := (BaseCalculator{}).Calculate(l, Context{})
			if err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("price = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestBaseCalculatorRejectsGarbagePrice(t *testing.T) {
	l := pricedListing("not-a-number", "USD")
	if _, err := (BaseCalculator{}).Calculate(l, Context{}); err == nil {
		t.Fatal("expected an error for an unparseable price")
	}
}

func TestPromotionCalculator(t *testing.T) {
	calc := PromotionCalculator{Next: BaseCalculator{}}
	l := pricedListing("100.00", "USD")

	got, err := calc.Calculate(l, Context{PromotionDiscount: decimal.RequireFromString("15.50")})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if got.String() != "84.50 USD" {
		t.Errorf("price = %q, want %q", got.String(), "84.50 USD")
	}

	// 零减免不改变价格
	got, err = calc.Calculate(l, Context{})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if got.String() != "100.00 USD" {
		t.Errorf("price = %q, want unchanged", got.String())
	}
}

func TestTaxCalculator(t *testing.T) {
	calc := TaxCalculator{Next: BaseCalculator{}, Rate: decimal.RequireFromString("0.2")}
	got, err := calc.Calculate(pricedListing("100.00", "USD"), Context{})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if got.String() != "120.00 USD" {
		t.Errorf("price = %q, want %q", got.String(), "120.00 USD")
	}
}

func TestLoyaltyCalculator(t *testing.T) {
	calc := LoyaltyCalculator{Next: BaseCalculator{}}
	l := pricedListing("100.00", "USD")

	got, _ := calc.Calculate(l, Context{LoyaltyLevel: "GOLD"})
	if got.String() != "90.00 USD" {
		t.Errorf("gold price = %q, want %q", got.String(), "90.00 USD")
	}

	got, _ = calc.Calculate(l, Context{LoyaltyLevel: "SILVER"})
	if got.String() != "100.00 USD" {
		t.Errorf("silver price = %q, want full price", got.String())
	}
}

func TestStackedCalculators(t *testing.T) {
	// 基价 -> 促销减免 -> 加税 -> 会员折扣
	calc := LoyaltyCalculator{
		Next: TaxCalculator{
			Next: PromotionCalculator{Next: BaseCalculator{}},
			Rate: decimal.RequireFromString("0.1"),
		},
	}
	got, err := calc.Calculate(pricedListing("100.00", "USD"), Context{
		PromotionDiscount: decimal.RequireFromString("10.00"),
		LoyaltyLevel:      "GOLD",
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	// (100 - 10) * 1.1 * 0.9 = 89.10
	if got.String() != "89.10 USD" {
		t.Errorf("price = %q, want %q", got.String(), "89.10 USD")
	}
}
