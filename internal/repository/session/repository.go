// Package session stores cart aggregates keyed by cart id with absolute
// TTL expiration.
package session

import "cart-sessions/internal/domain"

// Repository is the session store contract. Get and Update evict expired
// entries lazily and return domain.ErrExpired; absent keys return
// domain.ErrNotFound. Both hand out deep copies, never the stored value.
type Repository interface {
	Put(cart domain.Cart)
	Get(cartID string) (domain.Cart, error)
	Update(cart domain.Cart) (domain.Cart, error)
	Delete(cartID string)
	Count() int
	Clear()
}
