package infrastructure

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"bazaar/internal/service/listing/domain"
)

// toDomainListing 将数据库模型转换为领域模型
func toDomainListing(model *ListingModel) (*domain.Listing, error) {
	if model == nil {
		return nil, nil
	}
	id, err := uuid.Parse(model.ListingID)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt listing id %q", model.ListingID)
	}
	sellerID, err := uuid.Parse(model.SellerID)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt seller id %q", model.SellerID)
	}
	payload := map[string]any{}
	if model.Payload != "" {
		if err := json.Unmarshal([]byte(model.Payload), &payload); err != nil {
			return nil, errors.Wrapf(err, "corrupt payload for listing %s", model.ListingID)
		}
	}
	return &domain.Listing{
		ID:          id,
		ProductKind: model.ProductKind,
		Payload:     payload,
		CreatedAt:   model.PlacedAt,
		SellerID:    sellerID,
	}, nil
}

// fromDomainListing 将领域模型转换为数据库模型
func fromDomainListing(l *domain.Listing) (*ListingModel, error) {
	if l == nil {
		return nil, nil
	}
	payload, err := json.Marshal(l.Payload)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal payload for listing %s", l.ID)
	}
	return &ListingModel{
		ListingID:   l.ID.String(),
		ProductKind: l.ProductKind,
		Payload:     string(payload),
		SellerID:    l.SellerID.String(),
		PlacedAt:    l.CreatedAt,
	}, nil
}
