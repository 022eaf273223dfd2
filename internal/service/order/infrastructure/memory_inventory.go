// internal/service/order/infrastructure/memory_inventory.go
package infrastructure

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryInventory 是 port.InventoryChecker 的进程内实现，
// 用一张 listing -> 可售数量 的表回答库存询问。
type MemoryInventory struct {
	mu    sync.RWMutex
	stock map[uuid.UUID]int
}

func NewMemoryInventory() *MemoryInventory {
	return &MemoryInventory{stock: make(map[uuid.UUID]int)}
}

// SetStock 设置某个 listing 的可售数量。
func (m *MemoryInventory) SetStock(listingID uuid.UUID, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stock[listingID] = quantity
}

func (m *MemoryInventory) InStock(_ context.Context, listingID uuid.UUID, quantity int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	available, ok := m.stock[listingID]
	if !ok {
		// 未登记的 listing 视为可售，库存口径由上游目录服务兜底
		return true
	}
	return available >= quantity
}
