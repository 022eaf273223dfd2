// internal/service/order/validation/chain.go
package validation

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"bazaar/internal/service/order/domain"
)

// ErrNilContext 表示用 nil 上下文调用了校验链，属于调用方的编程错误。
var ErrNilContext = errors.New("validation: nil order context")

// Stage 是校验链中的一个独立环节。
// Check 只检查自己关心的那一个维度，返回 false 即拒绝订单。
// 普通的校验不通过用布尔值表达，不是 error。
type Stage interface {
	Name() string
	Check(oc *domain.OrderContext) bool
}

// Chain 是一条按显式顺序组装的校验链。
// 环节的顺序和成员由调用方在构造时决定，链本身只负责依次执行并短路。
type Chain struct {
	stages []Stage
}

func NewChain(stages ...Stage) *Chain {
	return &Chain{stages: stages}
}

// Handle 依次执行所有环节，遇到第一个失败立即短路返回 false，
// 后续环节不再求值。全部通过返回 true。
// error 只用于契约违规（nil 上下文），不用于业务校验失败。
func (c *Chain) Handle(oc *domain.OrderContext) (bool, error) {
	if oc == nil {
		return false, ErrNilContext
	}
	for _, stage := range c.stages {
		if !stage.Check(oc) {
			log.Warn().
				Str("order_id", oc.Order().ID().String()).
				Str("stage", stage.Name()).
				Msg("order rejected by validation stage")
			return false, nil
		}
	}
	return true, nil
}
