package enums

// ProductType mirrors the catalog's type tag used to dispatch purchase-option
// building.
type ProductType string

const (
	ProductTypeSimple       ProductType = "simple"
	ProductTypeConfigurable ProductType = "configurable"
	ProductTypeBundle       ProductType = "bundle"
	ProductTypeOther        ProductType = "other"
)

func (p ProductType) IsValid() bool {
	switch p {
	case ProductTypeSimple, ProductTypeConfigurable, ProductTypeBundle, ProductTypeOther:
		return true
	}
	return false
}
