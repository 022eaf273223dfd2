package domain

import (
	"github.com/pkg/errors"
)

// Validator 校验某一品类的商品属性。
type Validator interface {
	Validate(attrs map[string]any) error
}

// IndexMapper 把商品映射为搜索索引文档。
type IndexMapper interface {
	Map(p Product) map[string]any
}

// FamilyFactory 是一个品类的工厂族：
// 同一个工厂产出的商品、校验器和索引映射器保证互相配套。
type FamilyFactory interface {
	CreateProduct(attrs map[string]any) (Product, error)
	CreateValidator() Validator
	CreateIndexMapper() IndexMapper
}

// SimpleIndexMapper 只索引 id 和标题，所有品类共用。
type SimpleIndexMapper struct{}

func (SimpleIndexMapper) Map(p Product) map[string]any {
	return map[string]any{"id": p.ID().String(), "title": p.Title()}
}

type requiredAttrValidator struct {
	key    string
	reason string
}

func (v requiredAttrValidator) Validate(attrs map[string]any) error {
	if _, ok := attrs[v.key]; !ok {
		return errors.Wrap(ErrInvalidAttributes, v.reason)
	}
	return nil
}

// ElectronicsFamilyFactory 电子品类工厂。
type ElectronicsFamilyFactory struct{}

func (f ElectronicsFamilyFactory) CreateValidator() Validator {
	return requiredAttrValidator{key: "brand", reason: "electronics must have a brand"}
}

func (f ElectronicsFamilyFactory) CreateIndexMapper() IndexMapper { return SimpleIndexMapper{} }

func (f ElectronicsFamilyFactory) CreateProduct(attrs map[string]any) (Product, error) {
	if err := f.CreateValidator().Validate(attrs); err != nil {
		return nil, err
	}
	base, err := newBase(KindElectronics, attrs)
	if err != nil {
		return nil, err
	}
	return &ElectronicProduct{
		baseProduct:    base,
		Brand:          stringAttr(attrs, "brand"),
		Model:          stringAttr(attrs, "model"),
		WarrantyMonths: intAttr(attrs, "warranty_months"),
	}, nil
}

// ClothingFamilyFactory 服装品类工厂。
type ClothingFamilyFactory struct{}

func (f ClothingFamilyFactory) CreateValidator() Validator {
	return requiredAttrValidator{key: "size", reason: "clothing must have size"}
}

func (f ClothingFamilyFactory) CreateIndexMapper() IndexMapper { return SimpleIndexMapper{} }

func (f ClothingFamilyFactory) CreateProduct(attrs map[string]any) (Product, error) {
	if err := f.CreateValidator().Validate(attrs); err != nil {
		return nil, err
	}
	base, err := newBase(KindClothing, attrs)
	if err != nil {
		return nil, err
	}
	return &ClothingProduct{
		baseProduct: base,
		Size:        stringAttr(attrs, "size"),
		Material:    stringAttr(attrs, "material"),
		Gender:      stringAttr(attrs, "gender"),
	}, nil
}

// BookFamilyFactory 图书品类工厂。
type BookFamilyFactory struct{}

func (f BookFamilyFactory) CreateValidator() Validator {
	return requiredAttrValidator{key: "author", reason: "book must have author"}
}

func (f BookFamilyFactory) CreateIndexMapper() IndexMapper { return SimpleIndexMapper{} }

func (f BookFamilyFactory) CreateProduct(attrs map[string]any) (Product, error) {
	if err := f.CreateValidator().Validate(attrs); err != nil {
		return nil, err
	}
	base, err := newBase(KindBook, attrs)
	if err != nil {
		return nil, err
	}
	return &BookProduct{
		baseProduct:     base,
		Author:          stringAttr(attrs, "author"),
		Genre:           stringAttr(attrs, "genre"),
		PublicationYear: intAttr(attrs, "publication_year"),
	}, nil
}
