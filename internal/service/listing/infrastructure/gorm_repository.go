package infrastructure

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"bazaar/internal/service/listing/domain"
)

// GormListingRepository 是 ListingRepository 的 GORM 实现
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository 创建一个新的 GORM 仓储实例
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// OpenMySQL 按 DSN 建连并迁移 listing 表。
func OpenMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}
	if err := db.AutoMigrate(&ListingModel{}); err != nil {
		return nil, errors.Wrap(err, "migrate listing table")
	}
	return db, nil
}

func (r *GormListingRepository) Save(ctx context.Context, listing *domain.Listing) error {
	model, err := fromDomainListing(listing)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *GormListingRepository) Find(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	var model ListingModel
	err := r.db.WithContext(ctx).Where("listing_id = ?", id.String()).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return toDomainListing(&model)
}

func (r *GormListingRepository) Update(ctx context.Context, id uuid.UUID, listing *domain.Listing) error {
	model, err := fromDomainListing(listing)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&ListingModel{}).
		Where("listing_id = ?", id.String()).
		Updates(map[string]interface{}{
			"product_kind": model.ProductKind,
			"payload":      model.Payload,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *GormListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("listing_id = ?", id.String()).Delete(&ListingModel{}).Error
}
