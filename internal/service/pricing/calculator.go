package pricing

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"bazaar/internal/pkg/money"
	"bazaar/internal/service/listing/domain"
)

// Context 携带一次计价所需的外部参数。
type Context struct {
	// PromotionDiscount 是本次计价可用的绝对减免额。
	PromotionDiscount decimal.Decimal
	// LoyaltyLevel 是买家的会员等级，如 "GOLD"。
	LoyaltyLevel string
}

// Calculator 对一条商品条目计算最终价格。
// 实现之间可以层层包裹：每个装饰器在内层结果上做一次调整。
type Calculator interface {
	Calculate(listing *domain.Listing, ctx Context) (money.Money, error)
}

// BaseCalculator 从条目 Payload 里取原始标价。
// Payload 里没有价格时按零价处理，不视为错误。
type BaseCalculator struct{}

func (BaseCalculator) Calculate(listing *domain.Listing, _ Context) (money.Money, error) {
	currency, _ := listing.Payload["currency"].(string)
	if currency == "" {
		currency = "USD"
	}
	raw, ok := listing.Payload["price"].(string)
	if !ok || raw == "" {
		return money.Zero(currency), nil
	}
	m, err := money.New(raw, currency)
	if err != nil {
		return money.Money{}, errors.Wrapf(err, "listing %s carries an unparseable price", listing.ID)
	}
	return m, nil
}

// PromotionCalculator 在内层价格上减去促销减免额。
type PromotionCalculator struct {
	Next Calculator
}

func (c PromotionCalculator) Calculate(listing *domain.Listing, ctx Context) (money.Money, error) {
	base, err := c.Next.Calculate(listing, ctx)
	if err != nil {
		return money.Money{}, err
	}
	if ctx.PromotionDiscount.IsZero() {
		return base, nil
	}
	return base.Sub(money.Money{Amount: ctx.PromotionDiscount, Currency: base.Currency})
}

// TaxCalculator 在内层价格上叠加税率。
type TaxCalculator struct {
	Next Calculator
	Rate decimal.Decimal
}

func (c TaxCalculator) Calculate(listing *domain.Listing, ctx Context) (money.Money, error) {
	base, err := c.Next.Calculate(listing, ctx)
	if err != nil {
		return money.Money{}, err
	}
	return base.MulRate(decimal.NewFromInt(1).Add(c.Rate)), nil
}

// LoyaltyCalculator 对金卡买家打九折，其他等级原价。
type LoyaltyCalculator struct {
	Next Calculator
}

var goldRate = decimal.RequireFromString("0.9")

func (c LoyaltyCalculator) Calculate(listing *domain.Listing, ctx Context) (money.Money, error) {
	base, err := c.Next.Calculate(listing, ctx)
	if err != nil {
		return money.Money{}, err
	}
	if ctx.LoyaltyLevel != "GOLD" {
		return base, nil
	}
	return base.MulRate(goldRate), nil
}
