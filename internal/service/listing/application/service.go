package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bazaar/internal/pkg/logger"
	catalog "bazaar/internal/service/catalog/domain"
	"bazaar/internal/service/listing/domain"
)

// ListingService 负责条目的发布与维护。
// 商品属性的品类校验全部委托给目录工厂，本服务只做编排。
type ListingService struct {
	registry *catalog.Registry
	repo     domain.ListingRepository
}

func NewListingService(registry *catalog.Registry, repo domain.ListingRepository) *ListingService {
	return &ListingService{registry: registry, repo: repo}
}

// Create 按品类工厂构造商品并落库为一条新条目。
func (s *ListingService) Create(ctx context.Context, req *CreateListingRequest) (*domain.Listing, error) {
	factory, err := s.registry.Factory(req.CategoryCode)
	if err != nil {
		return nil, err
	}
	price, err := req.price()
	if err != nil {
		return nil, err
	}
	sellerID, err := req.sellerID()
	if err != nil {
		return nil, err
	}

	attrs := make(map[string]any, len(req.Attributes)+3)
	for k, v := range req.Attributes {
		attrs[k] = v
	}
	attrs["price"] = price.Amount.String()
	attrs["currency"] = price.Currency
	attrs["title"] = req.Title

	product, err := factory.CreateProduct(attrs)
	if err != nil {
		return nil, err
	}

	listing := &domain.Listing{
		ID:          uuid.New(),
		ProductKind: string(product.Kind()),
		Payload:     product.Attributes(),
		CreatedAt:   time.Now().UTC(),
		SellerID:    sellerID,
	}
	if err := s.repo.Save(ctx, listing); err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().
		Str("listing_id", listing.ID.String()).
		Str("product_kind", listing.ProductKind).
		Str("seller_id", sellerID.String()).
		Msg("listing created")
	return listing, nil
}

// Get 按 ID 查条目。
func (s *ListingService) Get(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	return s.repo.Find(ctx, id)
}

// Update 把请求里的属性合并进已有条目的 Payload。
func (s *ListingService) Update(ctx context.Context, id uuid.UUID, req *UpdateListingRequest) (*domain.Listing, error) {
	found, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	for k, v := range req.Attributes {
		found.Payload[k] = v
	}
	if err := s.repo.Update(ctx, id, found); err != nil {
		return nil, err
	}
	return found, nil
}

// Delete 删除条目，对不存在的条目是无操作。
func (s *ListingService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// View 把领域对象转成对外视图。
func View(l *domain.Listing) *ListingView {
	if l == nil {
		return nil
	}
	return &ListingView{
		ID:          l.ID.String(),
		ProductKind: l.ProductKind,
		Payload:     l.Payload,
		SellerID:    l.SellerID.String(),
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
}
