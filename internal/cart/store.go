package cart

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/bwalia/kisaan.com-sub001/internal/domain"
	"github.com/bwalia/kisaan.com-sub001/internal/gateway"
)

// Gateway is the slice of the remote gateway the store needs.
type Gateway interface {
	GetCart(ctx context.Context) (*gateway.CartResponse, error)
	AddItem(ctx context.Context, req gateway.AddItemRequest) error
	RemoveItem(ctx context.Context, productUUID string) error
	ClearCart(ctx context.Context) error
}

// Notifier receives the transient user-facing messages mutations emit.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type noopNotifier struct{}

func (noopNotifier) Success(string) {}
func (noopNotifier) Error(string)   {}

// Store is the single source of truth for the cart mirror. All mutation goes
// through it; readers get copies and never write back.
//
// Mutations are not serialized against each other. Two concurrent mutations
// both reach the gateway, and the last refresh to complete determines the
// visible mirror.
type Store struct {
	gw     Gateway
	notify Notifier

	sfg singleflight.Group // collapses concurrent refreshes

	mu      sync.Mutex
	mirror  domain.CartMirror
	actor   string
	loading bool
}

func NewStore(gw Gateway, notify Notifier) *Store {
	if notify == nil {
		notify = noopNotifier{}
	}
	return &Store{
		gw:     gw,
		notify: notify,
		mirror: domain.EmptyMirror(),
	}
}

// SetActor rebinds the store to the authenticated actor. Login triggers a
// refresh, logout resets the mirror to empty.
func (s *Store) SetActor(ctx context.Context, actorID string) {
	s.mu.Lock()
	changed := s.actor != actorID
	s.actor = actorID
	s.mu.Unlock()
	if !changed {
		return
	}
	if actorID == "" {
		s.replaceMirror(domain.EmptyMirror())
		return
	}
	_ = s.Refresh(ctx)
}

// Mirror returns a copy of the current cart mirror.
func (s *Store) Mirror() domain.CartMirror {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mirror.Clone()
}

func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mirror.Total
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mirror.ItemCount
}

// Loading reports whether a mutation is in flight. It is advisory: it gates
// UI controls but does not block a programmatic second call.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Refresh fetches the authoritative cart and atomically replaces the mirror.
// It never fails outward: on gateway failure the mirror resets to empty,
// because a stale visible cart is worse than an empty one.
//
// Concurrent background refreshes collapse into one fetch. Mutations do not
// go through here: their refresh must see post-mutation state, so it may not
// join a fetch that was already in flight when the mutation settled.
func (s *Store) Refresh(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	_, err, _ := s.sfg.Do("refresh", func() (any, error) {
		s.fetch(ctx)
		return nil, nil
	})
	return err
}

func (s *Store) fetch(ctx context.Context) {
	if !s.authenticated() {
		s.replaceMirror(domain.EmptyMirror())
		return
	}

	resp, err := s.gw.GetCart(ctx)
	if err != nil {
		log.Printf("failed to load cart: %v", err)
		s.replaceMirror(domain.EmptyMirror())
		return
	}

	s.replaceMirror(rebuildMirror(resp))
}

// AddToCart adds quantity units of a product (variant optional) and then
// refreshes the mirror so it reflects server truth. No optimistic update is
// applied before the gateway answers; the server may reject the quantity.
func (s *Store) AddToCart(ctx context.Context, productUUID string, quantity int, variantUUID string) error {
	if !s.authenticated() {
		s.notify.Error("Please login to add items to cart")
		return ErrNotAuthenticated
	}
	if productUUID == "" || quantity <= 0 {
		s.notify.Error("Invalid product or quantity")
		return ErrInvalidArgument
	}

	s.setLoading(true)
	defer s.setLoading(false)

	err := s.gw.AddItem(ctx, gateway.AddItemRequest{
		ProductUUID: productUUID,
		Quantity:    quantity,
		VariantUUID: variantUUID,
	})
	if err != nil {
		log.Printf("failed to add to cart: %v", err)
		s.notify.Error(err.Error())
		return fmt.Errorf("add to cart failed: %w", err)
	}

	s.fetch(ctx)
	s.notify.Success("Item added to cart!")
	return nil
}

// RemoveFromCart deletes a product's line and refreshes the mirror.
func (s *Store) RemoveFromCart(ctx context.Context, productUUID string) error {
	if !s.authenticated() {
		s.notify.Error("Please login to modify cart")
		return ErrNotAuthenticated
	}
	if productUUID == "" {
		s.notify.Error("Invalid product UUID")
		return ErrInvalidArgument
	}

	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.gw.RemoveItem(ctx, productUUID); err != nil {
		log.Printf("failed to remove from cart: %v", err)
		s.notify.Error(err.Error())
		return fmt.Errorf("remove from cart failed: %w", err)
	}

	s.fetch(ctx)
	s.notify.Success("Item removed from cart")
	return nil
}

// ClearCart empties the cart. On success the mirror is set to empty directly,
// without a round-trip refresh: "empty" is unambiguous.
func (s *Store) ClearCart(ctx context.Context) error {
	if !s.authenticated() {
		s.notify.Error("Please login to clear cart")
		return ErrNotAuthenticated
	}

	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.gw.ClearCart(ctx); err != nil {
		log.Printf("failed to clear cart: %v", err)
		s.notify.Error(err.Error())
		return fmt.Errorf("clear cart failed: %w", err)
	}

	s.replaceMirror(domain.EmptyMirror())
	s.notify.Success("Cart cleared")
	return nil
}

func (s *Store) authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actor != ""
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) replaceMirror(m domain.CartMirror) {
	s.mu.Lock()
	s.mirror = m
	s.mu.Unlock()
}

func rebuildMirror(resp *gateway.CartResponse) domain.CartMirror {
	m := domain.CartMirror{
		Lines: make(map[string]domain.CartLine, len(resp.Cart)),
		Total: resp.Total,
	}
	for key, line := range resp.Cart {
		if line.Quantity < 1 {
			continue
		}
		m.Lines[key] = line
		m.ItemCount += line.Quantity
	}
	return m
}
