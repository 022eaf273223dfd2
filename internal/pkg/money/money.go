// internal/pkg/money/money.go
package money

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrCurrencyMismatch 表示两个不同币种的金额参与了运算。
// 这是调用方的编程错误，绝不做隐式汇率换算。
var ErrCurrencyMismatch = errors.New("money: currency mismatch")

// Money 是一个不可变的金额值对象：精确小数 + 币种代码。
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// New 从字符串金额创建 Money，如 New("399.99", "USD")。
func New(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errors.Wrapf(err, "money: invalid amount %q", amount)
	}
	return Money{Amount: d, Currency: currency}, nil
}

// MustNew 是 New 的 panic 版本，仅用于测试和静态初始化。
func MustNew(amount, currency string) Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero 返回指定币种的零值金额。
func Zero(currency string) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// Add 返回两个金额之和。币种不一致时返回 ErrCurrencyMismatch。
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, errors.Wrapf(ErrCurrencyMismatch, "%s + %s", m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Sub 返回两个金额之差。币种不一致时返回 ErrCurrencyMismatch。
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, errors.Wrapf(ErrCurrencyMismatch, "%s - %s", m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// Mul 返回金额乘以整数数量的结果。
func (m Money) Mul(qty int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(qty))), Currency: m.Currency}
}

// MulRate 按比例缩放金额（用于税率、折扣等场景）。
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(rate), Currency: m.Currency}
}

// Equal 判断金额与币种是否都相等。
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

// IsZero 判断金额是否为零。
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// Float64 返回金额的浮点近似值，仅用于规则引擎和指标上报。
func (m Money) Float64() float64 {
	f, _ := m.Amount.Float64()
	return f
}

func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.Currency
}
