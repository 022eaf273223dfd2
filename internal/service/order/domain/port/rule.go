// internal/service/order/domain/port/rule.go
package port

// RuleEngine 是规则求值的出站端口。
// 将第三方规则引擎的 API 适配到领域接口，具体实现见 infrastructure/rule。
type RuleEngine interface {
	// Evaluate 对事实求值，返回规则是否放行。
	// 规则本身语法错误或求值失败时返回 error。
	Evaluate(rule string, fact map[string]any) (bool, error)
}
