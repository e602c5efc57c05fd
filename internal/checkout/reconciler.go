package checkout

import (
	"context"
	"fmt"
	"log"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/bwalia/kisaan.com-sub001/internal/domain"
	"github.com/bwalia/kisaan.com-sub001/internal/gateway"
)

// Gateway is the slice of the remote gateway the reconciler needs.
type Gateway interface {
	GetCart(ctx context.Context) (*gateway.CartResponse, error)
	GetCartTotals(ctx context.Context) (*domain.CartTotals, error)
	CreateCheckoutSession(ctx context.Context, req domain.CheckoutSessionRequest) (*domain.CheckoutSessionResponse, error)
	ConfirmPayment(ctx context.Context, sessionID string) (*domain.OrderConfirmation, error)
}

// Reconciler produces the authoritative, multi-seller price breakdown for the
// current cart, degrading to a local estimate when the backend cannot answer.
type Reconciler struct {
	gw Gateway
}

func NewReconciler(gw Gateway) *Reconciler {
	return &Reconciler{gw: gw}
}

// Snapshot pairs the raw cart with its totals for the checkout page.
type Snapshot struct {
	Cart   map[string]domain.CartLine
	Total  float64
	Totals domain.CartTotals
}

// Load fetches the cart snapshot and its totals concurrently. A totals
// failure degrades to an estimate; an empty cart is ErrEmptyCart, and a cart
// fetch failure propagates, because checkout cannot proceed without lines.
func (r *Reconciler) Load(ctx context.Context) (*Snapshot, error) {
	var (
		cart   *gateway.CartResponse
		totals *domain.CartTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cart, err = r.gw.GetCart(gctx)
		return err
	})
	g.Go(func() error {
		t, err := r.gw.GetCartTotals(gctx)
		if err != nil {
			log.Printf("failed to load cart totals: %v", err)
			return nil
		}
		totals = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load cart failed: %w", err)
	}

	if len(cart.Cart) == 0 {
		return nil, ErrEmptyCart
	}
	if totals == nil {
		e := estimate(cart.Total)
		totals = &e
	}
	return &Snapshot{Cart: cart.Cart, Total: cart.Total, Totals: *totals}, nil
}

// Totals fetches the authoritative totals for the order summary. It never
// fails outward: when the backend cannot answer it returns a conservative
// estimate built from the mirror subtotal, with no tax or shipping invented.
func (r *Reconciler) Totals(ctx context.Context, mirrorTotal float64) domain.CartTotals {
	totals, err := r.gw.GetCartTotals(ctx)
	if err != nil {
		log.Printf("failed to load cart totals: %v", err)
		return estimate(mirrorTotal)
	}
	return *totals
}

func estimate(subtotal float64) domain.CartTotals {
	return domain.CartTotals{
		Subtotal:    subtotal,
		TotalAmount: subtotal,
		Estimated:   true,
	}
}

// Submit validates the form, assembles the session request and asks the
// gateway for a payment page. The returned URL is where the client redirects.
// Any applied promo discount is display-only and is not part of the request.
func (r *Reconciler) Submit(ctx context.Context, form domain.CheckoutForm, origin string) (string, error) {
	if errs := ValidateForm(form); len(errs) > 0 {
		return "", &ValidationError{Fields: errs}
	}

	resp, err := r.gw.CreateCheckoutSession(ctx, domain.CheckoutSessionRequest{
		CheckoutForm: form,
		SuccessURL:   origin + "/payment/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:    origin + "/checkout",
	})
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return resp.URL, nil
}

// ConfirmPayment reports a completed payment session back to the gateway and
// returns the order confirmation for the success page.
func (r *Reconciler) ConfirmPayment(ctx context.Context, sessionID string) (*domain.OrderConfirmation, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("missing session id")
	}
	conf, err := r.gw.ConfirmPayment(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("payment confirmation failed: %w", err)
	}
	return conf, nil
}

// ShippingProgress describes how far one store's subtotal is from its free
// shipping threshold.
type ShippingProgress struct {
	Remaining float64
	Threshold float64
	StoreName string
}

// FreeShippingProgress returns the first store, in store ID order, that is
// below its free shipping threshold but has something in the cart, or nil
// when no store qualifies. Shown only while that store still charges
// shipping.
func FreeShippingProgress(t domain.CartTotals) *ShippingProgress {
	ids := make([]string, 0, len(t.StoreTotals))
	for id := range t.StoreTotals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		st := t.StoreTotals[id]
		if st.StoreInfo == nil {
			continue
		}
		threshold := st.StoreInfo.FreeShippingThreshold
		if threshold > 0 && st.Subtotal > 0 && st.Subtotal < threshold {
			name := st.StoreInfo.Name
			if name == "" {
				name = "this store"
			}
			return &ShippingProgress{
				Remaining: threshold - st.Subtotal,
				Threshold: threshold,
				StoreName: name,
			}
		}
	}
	return nil
}
