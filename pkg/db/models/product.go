package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/cartforge/quote-service/pkg/enums"
)

// Product is the catalog entry consumed (read-only) by the mutation pipeline.
// Configurable parents carry ConfigurableAttributes and their child variants
// via ParentID; bundle products carry BundleOptions.
type Product struct {
	ID                     uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU                    string                  `gorm:"column:sku;not null;uniqueIndex"`
	Name                   string                  `gorm:"column:name;not null"`
	Type                   enums.ProductType       `gorm:"column:type;not null;default:'simple'"`
	PriceCents             int                     `gorm:"column:price_cents;not null;default:0"`
	IsActive               bool                    `gorm:"column:is_active;not null;default:true"`
	Tags                   pq.StringArray          `gorm:"column:tags;type:text[]"`
	ParentID               *uuid.UUID              `gorm:"column:parent_id;type:uuid"`
	Children               []Product               `gorm:"foreignKey:ParentID"`
	ConfigurableAttributes []ConfigurableAttribute `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	AttributeValues        []ProductAttributeValue `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	BundleOptions          []BundleOption          `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt              time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// AttributeValue returns the custom attribute value stored under code, or "".
func (p *Product) AttributeValue(code string) string {
	if p == nil {
		return ""
	}
	for _, av := range p.AttributeValues {
		if av.Code == code {
			return av.Value
		}
	}
	return ""
}

// ChildBySKU returns the preloaded child variant with the given SKU, or nil.
func (p *Product) ChildBySKU(sku string) *Product {
	if p == nil {
		return nil
	}
	for i := range p.Children {
		if p.Children[i].SKU == sku {
			return &p.Children[i]
		}
	}
	return nil
}

// ConfigurableAttribute declares one super-attribute distinguishing the child
// variants of a configurable parent.
type ConfigurableAttribute struct {
	ID            int       `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID     uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	AttributeID   int       `gorm:"column:attribute_id;not null"`
	AttributeCode string    `gorm:"column:attribute_code;not null"`
}

// ProductAttributeValue is one code→value pair on a concrete catalog product.
type ProductAttributeValue struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Code      string    `gorm:"column:code;not null"`
	Value     string    `gorm:"column:value;not null"`
}

// BundleOption is one selectable slot of a bundle product.
type BundleOption struct {
	ID         int               `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID  uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	OptionID   int               `gorm:"column:option_id;not null"`
	Title      string            `gorm:"column:title;not null"`
	Position   int               `gorm:"column:position;not null;default:0"`
	Selections []BundleSelection `gorm:"foreignKey:BundleOptionID;constraint:OnDelete:CASCADE"`
}

// BundleSelection is one product offered inside a bundle option.
type BundleSelection struct {
	ID             int    `gorm:"column:id;primaryKey;autoIncrement"`
	BundleOptionID int    `gorm:"column:bundle_option_id;not null"`
	SelectionID    int    `gorm:"column:selection_id;not null"`
	ProductSKU     string `gorm:"column:product_sku;not null"`
	IsDefault      bool   `gorm:"column:is_default;not null;default:false"`
	Position       int    `gorm:"column:position;not null;default:0"`
}
