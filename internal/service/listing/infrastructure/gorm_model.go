package infrastructure

import (
	"time"

	"gorm.io/gorm"
)

// ListingModel 对应数据库中的 listing 表。
// Payload 以 JSON 文本落库，品类差异化的属性不展开成列。
type ListingModel struct {
	gorm.Model
	ListingID   string `gorm:"uniqueIndex;size:36"`
	ProductKind string `gorm:"size:32"`
	Payload     string `gorm:"type:text"`
	SellerID    string `gorm:"index;size:36"`
	PlacedAt    time.Time
}

// TableName 指定 GORM 应该使用的表名
func (ListingModel) TableName() string {
	return "listing"
}
