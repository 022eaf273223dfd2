// internal/service/order/domain/repository.go
package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrOrderNotFound 表示仓储中不存在对应的订单。
var ErrOrderNotFound = errors.New("order: not found")

// OrderRepository 是订单仓储的出站端口。
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
}
