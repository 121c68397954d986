package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cartforge/quote-service/pkg/db/models"
)

// Repository exposes read-only catalog lookups for the mutation pipeline.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindBySKU returns the catalog row matching the SKU exactly, with its
// purchase metadata preloaded.
func (r *Repository) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	err := r.preloaded(ctx).
		Where("sku = ?", sku).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByID returns the catalog row with purchase metadata preloaded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.preloaded(ctx).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ResolveForPurchase resolves the product used for type dispatch when adding
// the SKU to a cart. When the SKU names a child variant of a configurable
// parent, the parent is returned: it carries the super-attribute declarations
// while the requested SKU keeps pinning the concrete child.
func (r *Repository) ResolveForPurchase(ctx context.Context, sku string) (*models.Product, error) {
	product, err := r.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if product.ParentID == nil {
		return product, nil
	}
	return r.FindByID(ctx, *product.ParentID)
}

func (r *Repository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("ConfigurableAttributes").
		Preload("AttributeValues").
		Preload("Children.AttributeValues").
		Preload("Children").
		Preload("BundleOptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("BundleOptions.Selections", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
}
