package domain

import (
	"time"

	"github.com/google/uuid"
)

// Listing 是卖家发布的一条在售条目。
// Payload 保存品类工厂产出的商品属性快照，结构因品类而异，
// 因此用 map 而不是固定结构体承载。
type Listing struct {
	ID          uuid.UUID
	ProductKind string
	Payload     map[string]any
	CreatedAt   time.Time
	SellerID    uuid.UUID
}

// Clone 返回深拷贝（Payload 一层拷贝），缓存层用它隔离共享状态。
func (l *Listing) Clone() *Listing {
	if l == nil {
		return nil
	}
	payload := make(map[string]any, len(l.Payload))
	for k, v := range l.Payload {
		payload[k] = v
	}
	return &Listing{
		ID:          l.ID,
		ProductKind: l.ProductKind,
		Payload:     payload,
		CreatedAt:   l.CreatedAt,
		SellerID:    l.SellerID,
	}
}
