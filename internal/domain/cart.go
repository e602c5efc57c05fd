package domain

// DefaultVariant is the sentinel variant for products sold without variants.
const DefaultVariant = "default"

// CartLine is one line of the cart mirror, keyed by product and variant.
type CartLine struct {
	ProductUUID       string   `json:"product_uuid"`
	VariantUUID       string   `json:"variant_uuid,omitempty"`
	Name              string   `json:"name"`
	VariantTitle      string   `json:"variant_title,omitempty"`
	Price             float64  `json:"price"`
	Quantity          int      `json:"quantity"`
	Images            []string `json:"images,omitempty"`
	InventoryQuantity int      `json:"inventory_quantity,omitempty"`
}

// Key returns the mirror key for this line.
func (l CartLine) Key() string {
	v := l.VariantUUID
	if v == "" {
		v = DefaultVariant
	}
	return l.ProductUUID + ":" + v
}

// CartMirror is the client-held copy of the authoritative server cart. It is
// rebuilt wholesale from a gateway response, never patched line by line.
type CartMirror struct {
	Lines     map[string]CartLine
	Total     float64
	ItemCount int
}

// EmptyMirror returns a mirror with no lines.
func EmptyMirror() CartMirror {
	return CartMirror{Lines: map[string]CartLine{}}
}

// Clone returns a copy that shares no state with the receiver.
func (m CartMirror) Clone() CartMirror {
	out := CartMirror{
		Lines:     make(map[string]CartLine, len(m.Lines)),
		Total:     m.Total,
		ItemCount: m.ItemCount,
	}
	for k, l := range m.Lines {
		out.Lines[k] = l
	}
	return out
}
