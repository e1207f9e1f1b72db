package cart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cart-sessions/internal/domain"
	"cart-sessions/internal/pricing"
)

const (
	defaultTTL         = 30 * time.Minute
	defaultMinQuantity = 1
	defaultMaxQuantity = 99
)

type sessionRepo interface {
	Put(cart domain.Cart)
	Get(cartID string) (domain.Cart, error)
	Update(cart domain.Cart) (domain.Cart, error)
	Delete(cartID string)
}

// Config carries the business-rule knobs. Zero values fall back to the
// defaults: 30 minute TTL, quantity bounds [1, 99].
type Config struct {
	TTL         time.Duration
	MinQuantity int
	MaxQuantity int
}

// Service enforces cart-level business rules and orchestrates the session
// store and the pricing function. Every operation reads a fresh copy from
// the store, mutates it, reprices it and writes it back; no cart instance is
// shared across calls.
type Service struct {
	repo   sessionRepo
	price  pricing.Func
	ttl    time.Duration
	minQty int
	maxQty int
	now    func() time.Time
}

func New(repo sessionRepo, price pricing.Func, cfg Config) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.MinQuantity <= 0 {
		cfg.MinQuantity = defaultMinQuantity
	}
	if cfg.MaxQuantity <= 0 {
		cfg.MaxQuantity = defaultMaxQuantity
	}
	return &Service{
		repo:   repo,
		price:  price,
		ttl:    cfg.TTL,
		minQty: cfg.MinQuantity,
		maxQty: cfg.MaxQuantity,
		now:    time.Now,
	}
}

// CreateCart stores a fresh empty cart. The expiration clock starts here and
// is never extended afterwards.
func (s *Service) CreateCart(_ context.Context, metadata map[string]string) (*domain.Cart, error) {
	now := s.now().UTC()
	cart := domain.Cart{
		ID:        uuid.NewString(),
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if len(metadata) > 0 {
		cart.Metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			cart.Metadata[k] = v
		}
	}
	s.price(&cart)
	s.repo.Put(cart)
	return &cart, nil
}

func (s *Service) GetCart(_ context.Context, cartID string) (*domain.Cart, error) {
	if err := validateCartID(cartID); err != nil {
		return nil, err
	}
	cart, err := s.repo.Get(cartID)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem appends a line for the product, or merges into the existing line
// when the cart already references the same product id. The merged quantity
// is validated against the maximum before anything is mutated: a rejected
// merge leaves the stored cart exactly as it was.
func (s *Service) AddItem(_ context.Context, cartID string, product domain.Product, quantity int) (*domain.Cart, error) {
	if err := validateCartID(cartID); err != nil {
		return nil, err
	}
	if err := s.validateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	cart, err := s.repo.Get(cartID)
	if err != nil {
		return nil, err
	}

	if idx := cart.ItemIndexByProduct(product.ID); idx >= 0 {
		merged := cart.Items[idx].Quantity + quantity
		if merged > s.maxQty {
			return nil, fmt.Errorf("%w: adding %d more of product %s would exceed the maximum quantity of %d",
				domain.ErrValidation, quantity, product.ID, s.maxQty)
		}
		item := &cart.Items[idx]
		item.Quantity = merged
		item.TotalPrice = pricing.LineTotal(item.UnitPrice, merged)
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			ID:          uuid.NewString(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Category:    product.Category,
			Quantity:    quantity,
			UnitPrice:   product.Price,
			TotalPrice:  pricing.LineTotal(product.Price, quantity),
			AddedAt:     s.now().UTC(),
		})
	}

	return s.save(cart)
}

func (s *Service) RemoveItem(_ context.Context, cartID, itemID string) (*domain.Cart, error) {
	if err := validateCartID(cartID); err != nil {
		return nil, err
	}
	cart, err := s.repo.Get(cartID)
	if err != nil {
		return nil, err
	}
	idx := cart.ItemIndex(itemID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, itemID)
	}
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	return s.save(cart)
}

func (s *Service) UpdateItemQuantity(_ context.Context, cartID, itemID string, quantity int) (*domain.Cart, error) {
	if err := validateCartID(cartID); err != nil {
		return nil, err
	}
	if err := s.validateQuantity(quantity); err != nil {
		return nil, err
	}
	cart, err := s.repo.Get(cartID)
	if err != nil {
		return nil, err
	}
	idx := cart.ItemIndex(itemID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, itemID)
	}
	item := &cart.Items[idx]
	item.Quantity = quantity
	item.TotalPrice = pricing.LineTotal(item.UnitPrice, quantity)
	return s.save(cart)
}

// ClearCart empties the item set but keeps the cart's identity and its
// expiration clock. Clearing is not deleting.
func (s *Service) ClearCart(_ context.Context, cartID string) (*domain.Cart, error) {
	if err := validateCartID(cartID); err != nil {
		return nil, err
	}
	cart, err := s.repo.Get(cartID)
	if err != nil {
		return nil, err
	}
	cart.Items = []domain.CartItem{}
	return s.save(cart)
}

// DeleteCart removes the cart unconditionally. Deleting an absent or
// already-expired cart succeeds, matching the store's idempotent delete.
func (s *Service) DeleteCart(_ context.Context, cartID string) error {
	if err := validateCartID(cartID); err != nil {
		return err
	}
	s.repo.Delete(cartID)
	return nil
}

func (s *Service) save(cart domain.Cart) (*domain.Cart, error) {
	s.price(&cart)
	stored, err := s.repo.Update(cart)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *Service) validateQuantity(quantity int) error {
	if quantity < s.minQty || quantity > s.maxQty {
		return fmt.Errorf("%w: quantity must be between %d and %d", domain.ErrValidation, s.minQty, s.maxQty)
	}
	return nil
}

func validateCartID(cartID string) error {
	id, err := uuid.Parse(cartID)
	if err != nil || id.Version() != 4 {
		return fmt.Errorf("%w: cart id must be a version-4 UUID", domain.ErrValidation)
	}
	return nil
}

func validateProduct(p domain.Product) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: product id required", domain.ErrValidation)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name required", domain.ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: product price must not be negative", domain.ErrValidation)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: unknown product category %q", domain.ErrValidation, string(p.Category))
	}
	return nil
}
