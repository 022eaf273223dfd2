// internal/service/order/domain/port/inventory.go
package port

import (
	"context"

	"github.com/google/uuid"
)

// InventoryChecker 是库存可用性检查的出站端口。
type InventoryChecker interface {
	// InStock 判断指定 listing 是否有足够库存。
	InStock(ctx context.Context, listingID uuid.UUID, quantity int) bool
}
