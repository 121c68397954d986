package quote

import (
	"testing"

	"github.com/google/uuid"

	"github.com/cartforge/quote-service/pkg/db/models"
	"github.com/cartforge/quote-service/pkg/enums"
	pkgerrors "github.com/cartforge/quote-service/pkg/errors"
)

func TestBuildSimpleProductHasNoOption(t *testing.T) {
	t.Parallel()

	product := &models.Product{SKU: "PLAIN-1", Type: enums.ProductTypeSimple}

	option, err := NewBuilderRegistry().Build(product, "PLAIN-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if option != nil {
		t.Fatalf("expected nil option for simple product, got %+v", option)
	}
}

func TestBuildUnknownTypeFallsBackToSimple(t *testing.T) {
	t.Parallel()

	product := &models.Product{SKU: "ODD-1", Type: enums.ProductType("grouped")}

	option, err := NewBuilderRegistry().Build(product, "ODD-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if option != nil {
		t.Fatalf("expected nil option for unregistered type, got %+v", option)
	}
}

func TestBuildConfigurableOptionFromChild(t *testing.T) {
	t.Parallel()

	parent := &models.Product{
		ID:   uuid.New(),
		SKU:  "SHIRT",
		Type: enums.ProductTypeConfigurable,
		ConfigurableAttributes: []models.ConfigurableAttribute{
			{AttributeID: 93, AttributeCode: "color"},
			{AttributeID: 145, AttributeCode: "size"},
		},
		Children: []models.Product{
			{
				SKU: "SHIRT-RED-M",
				AttributeValues: []models.ProductAttributeValue{
					{Code: "color", Value: "Red"},
					{Code: "size", Value: "M"},
				},
			},
		},
	}

	option, err := NewBuilderRegistry().Build(parent, "SHIRT-RED-M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if option == nil || len(option.ConfigurableItemOptions) != 2 {
		t.Fatalf("expected two configurable item options, got %+v", option)
	}
	if got := option.ConfigurableItemOptions[0]; got.AttributeID != 93 || got.Value != "Red" {
		t.Fatalf("unexpected first option: %+v", got)
	}
	if got := option.ConfigurableItemOptions[1]; got.AttributeID != 145 || got.Value != "M" {
		t.Fatalf("unexpected second option: %+v", got)
	}
}

func TestBuildConfigurableOptionUnknownVariant(t *testing.T) {
	t.Parallel()

	parent := &models.Product{
		SKU:  "SHIRT",
		Type: enums.ProductTypeConfigurable,
		Children: []models.Product{
			{SKU: "SHIRT-RED-M"},
		},
	}

	_, err := NewBuilderRegistry().Build(parent, "SHIRT-BLUE-L")
	if err == nil {
		t.Fatal("expected error for unknown variant")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestBuildConfigurableOptionWithoutAttributes(t *testing.T) {
	t.Parallel()

	parent := &models.Product{
		SKU:  "SHIRT",
		Type: enums.ProductTypeConfigurable,
		Children: []models.Product{
			{SKU: "SHIRT-RED-M"},
		},
	}

	option, err := NewBuilderRegistry().Build(parent, "SHIRT-RED-M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if option == nil || len(option.ConfigurableItemOptions) != 0 {
		t.Fatalf("expected empty selection, got %+v", option)
	}
}

func TestBuildBundleOptionPicksFirstSelection(t *testing.T) {
	t.Parallel()

	product := &models.Product{
		SKU:  "KIT",
		Type: enums.ProductTypeBundle,
		BundleOptions: []models.BundleOption{
			{
				OptionID: 7,
				Title:    "Base",
				Selections: []models.BundleSelection{
					{SelectionID: 41, Position: 0},
					{SelectionID: 42, Position: 1},
				},
			},
			{OptionID: 8, Title: "Extras"},
		},
	}

	option, err := NewBuilderRegistry().Build(product, "KIT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if option == nil || len(option.BundleItemOptions) != 1 {
		t.Fatalf("expected one populated bundle option, got %+v", option)
	}
	got := option.BundleItemOptions[0]
	if got.OptionID != 7 {
		t.Fatalf("unexpected option id: %d", got.OptionID)
	}
	if len(got.SelectionIDs) != 1 || got.SelectionIDs[0] != 41 {
		t.Fatalf("expected first selection by position, got %v", got.SelectionIDs)
	}
}
