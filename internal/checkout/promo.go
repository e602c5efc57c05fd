package checkout

import (
	"math"
	"strings"

	"github.com/bwalia/kisaan.com-sub001/internal/domain"
)

// Promo is an applied promotional code. It lives client-side only: the
// discount is subtracted from the displayed total and is never sent to the
// gateway at checkout time.
type Promo struct {
	Code     string
	Discount float64
	Applied  bool
}

// ApplyPromo computes the discount for a code against the current totals.
// SAVE10 takes 10% of the subtotal, WELCOME20 takes 20% capped at 50, and
// FREESHIP waives the shipping charge. A code whose discount computes to zero
// is rejected the same as an unknown code.
func ApplyPromo(code string, t domain.CartTotals) (Promo, error) {
	var discount float64
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "SAVE10":
		discount = t.Subtotal * 0.10
	case "WELCOME20":
		discount = math.Min(t.Subtotal*0.20, 50)
	case "FREESHIP":
		discount = t.ShippingAmount
	default:
		return Promo{}, ErrInvalidPromo
	}

	if discount <= 0 {
		return Promo{}, ErrInvalidPromo
	}
	return Promo{Code: strings.ToUpper(strings.TrimSpace(code)), Discount: discount, Applied: true}, nil
}

// DisplayTotal is the total shown to the user: the authoritative total minus
// the client-only discount, floored at zero.
func DisplayTotal(t domain.CartTotals, p Promo) float64 {
	return math.Max(0, t.TotalAmount-p.Discount)
}
