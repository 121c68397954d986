package quote

import (
	"github.com/cartforge/quote-service/pkg/db/models"
	"github.com/cartforge/quote-service/pkg/enums"
	pkgerrors "github.com/cartforge/quote-service/pkg/errors"
	"github.com/cartforge/quote-service/pkg/types"
)

// OptionBuilder derives the purchase-option payload for one product type.
// Builders are pure: they only project data already loaded on the product.
type OptionBuilder interface {
	Build(product *models.Product, requestedSKU string) (*types.ProductOption, error)
}

// BuilderRegistry dispatches option building over the closed set of product
// types. Unknown types fall back to the simple builder (no payload).
type BuilderRegistry struct {
	builders map[enums.ProductType]OptionBuilder
	fallback OptionBuilder
}

// NewBuilderRegistry wires one builder per supported product type.
func NewBuilderRegistry() *BuilderRegistry {
	simple := simpleBuilder{}
	return &BuilderRegistry{
		builders: map[enums.ProductType]OptionBuilder{
			enums.ProductTypeSimple:       simple,
			enums.ProductTypeConfigurable: configurableBuilder{},
			enums.ProductTypeBundle:       bundleBuilder{},
		},
		fallback: simple,
	}
}

// Build derives the payload for the product's type tag.
func (r *BuilderRegistry) Build(product *models.Product, requestedSKU string) (*types.ProductOption, error) {
	builder, ok := r.builders[product.Type]
	if !ok {
		builder = r.fallback
	}
	return builder.Build(product, requestedSKU)
}

type simpleBuilder struct{}

func (simpleBuilder) Build(*models.Product, string) (*types.ProductOption, error) {
	return nil, nil
}

// configurableBuilder pins the concrete child variant being purchased: every
// super-attribute declared on the parent is valued from the child resolved by
// the requested SKU, never from the parent itself.
type configurableBuilder struct{}

func (configurableBuilder) Build(parent *models.Product, requestedSKU string) (*types.ProductOption, error) {
	child := parent.ChildBySKU(requestedSKU)
	if child == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	// A configurable parent with no declared super-attributes yields an
	// empty selection, not an error.
	opts := make([]types.ConfigurableItemOption, 0, len(parent.ConfigurableAttributes))
	for _, attr := range parent.ConfigurableAttributes {
		opts = append(opts, types.ConfigurableItemOption{
			AttributeID: attr.AttributeID,
			Value:       child.AttributeValue(attr.AttributeCode),
		})
	}
	return &types.ProductOption{ConfigurableItemOptions: opts}, nil
}

type bundleBuilder struct{}

func (bundleBuilder) Build(product *models.Product, _ string) (*types.ProductOption, error) {
	opts := make([]types.BundleItemOption, 0, len(product.BundleOptions))
	for _, option := range product.BundleOptions {
		if len(option.Selections) == 0 {
			continue
		}
		// When an option offers several selections the first by position
		// wins; the common case is exactly one selection per option.
		opts = append(opts, types.BundleItemOption{
			OptionID:     option.OptionID,
			SelectionIDs: []int{option.Selections[0].SelectionID},
		})
	}
	return &types.ProductOption{BundleItemOptions: opts}, nil
}
