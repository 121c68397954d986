package types

// ConfigurableItemOption pins one super-attribute of a configurable parent to
// the value carried by the chosen child variant.
type ConfigurableItemOption struct {
	AttributeID int    `json:"attribute_id"`
	Value       string `json:"value"`
}

// BundleItemOption records the selections chosen for one bundle option.
type BundleItemOption struct {
	OptionID     int   `json:"option_id"`
	SelectionIDs []int `json:"selection_ids"`
}

// ProductOption is the purchase-option payload attached to a quote item. Its
// populated branch must match the item's product type: configurable items
// carry ConfigurableItemOptions, bundle items carry BundleItemOptions, and
// simple items carry no payload at all.
type ProductOption struct {
	ConfigurableItemOptions []ConfigurableItemOption `json:"configurable_item_options,omitempty"`
	BundleItemOptions       []BundleItemOption       `json:"bundle_item_options,omitempty"`
}

// IsEmpty reports whether no selection data is present.
func (o *ProductOption) IsEmpty() bool {
	return o == nil || (len(o.ConfigurableItemOptions) == 0 && len(o.BundleItemOptions) == 0)
}
