// internal/service/order/infrastructure/rule/cel_engine.go
package rule

import (
	"github.com/google/cel-go/cel"
	"github.com/pkg/errors"
)

// CELEngineAdapter 是 port.RuleEngine 的具体实现。
// 它把 CEL（Common Expression Language）的 API 适配到我们自己的领域接口：
// 典型的适配器模式应用，上层只依赖抽象的规则求值端口。
type CELEngineAdapter struct{}

func NewCELEngineAdapter() *CELEngineAdapter {
	return &CELEngineAdapter{}
}

// Evaluate 编译并求值一条 CEL 规则。
// 事实以固定的变量集暴露给表达式：total、currency、quantity、buyer_id。
func (a *CELEngineAdapter) Evaluate(rule string, fact map[string]any) (bool, error) {
	env, err := cel.NewEnv(
		cel.Variable("total", cel.DoubleType),
		cel.Variable("currency", cel.StringType),
		cel.Variable("quantity", cel.IntType),
		cel.Variable("buyer_id", cel.StringType),
	)
	if err != nil {
		return false, errors.Wrap(err, "rule: build cel environment")
	}

	ast, issues := env.Compile(rule)
	if issues != nil && issues.Err() != nil {
		return false, errors.Wrapf(issues.Err(), "rule: compile %q", rule)
	}

	prg, err := env.Program(ast)
	if err != nil {
		return false, errors.Wrap(err, "rule: build program")
	}

	out, _, err := prg.Eval(normalize(fact))
	if err != nil {
		return false, errors.Wrap(err, "rule: evaluate")
	}

	allowed, ok := out.Value().(bool)
	if !ok {
		return false, errors.Errorf("rule: expression %q did not evaluate to a boolean", rule)
	}
	return allowed, nil
}

// normalize 把 Go 的整数类型统一成 CEL 期望的 int64。
func normalize(fact map[string]any) map[string]any {
	out := make(map[string]any, len(fact))
	for k, v := range fact {
		if i, isInt := v.(int); isInt {
			out[k] = int64(i)
			continue
		}
		out[k] = v
	}
	return out
}
