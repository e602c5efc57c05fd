package domain

// StoreInfo carries the seller-level rules the backend used for a breakdown.
type StoreInfo struct {
	Name                  string  `json:"name"`
	TaxRate               float64 `json:"tax_rate"`
	ShippingFlatRate      float64 `json:"shipping_flat_rate"`
	FreeShippingThreshold float64 `json:"free_shipping_threshold"`
}

// StoreTotals is the per-seller slice of a multi-store cart.
type StoreTotals struct {
	Subtotal       float64    `json:"subtotal"`
	TaxAmount      float64    `json:"tax_amount"`
	ShippingAmount float64    `json:"shipping_amount"`
	StoreInfo      *StoreInfo `json:"store_info,omitempty"`
}

// CartTotals is the aggregate price breakdown for the whole cart. A cart can
// span several independent stores, each with its own tax and shipping rules,
// so the aggregate optionally carries the per-store split.
//
// Estimated marks a locally computed fallback produced when the authoritative
// totals call failed. It never comes over the wire.
type CartTotals struct {
	Subtotal         float64                `json:"subtotal"`
	TaxAmount        float64                `json:"tax_amount"`
	ShippingAmount   float64                `json:"shipping_amount"`
	TotalAmount      float64                `json:"total_amount"`
	RequiresShipping bool                   `json:"requires_shipping"`
	StoreTotals      map[string]StoreTotals `json:"store_totals,omitempty"`

	Estimated bool `json:"-"`
}
