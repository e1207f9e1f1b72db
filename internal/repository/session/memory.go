package session

import (
	"log"
	"sync"
	"time"

	"cart-sessions/internal/domain"
)

// Memory is an in-memory Repository with absolute expiration: an entry
// expires ttl after the cart's own CreatedAt, never later. A single mutex
// guards the map; live session cardinality is expected to stay small.
type Memory struct {
	mu      sync.Mutex
	entries map[string]domain.Cart

	ttl    time.Duration
	logger *log.Logger
	now    func() time.Time

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

var _ Repository = (*Memory)(nil)

// NewMemory builds a store with the given TTL and starts the background
// sweeper unless sweepInterval is zero or negative. Call Close to stop it.
func NewMemory(ttl, sweepInterval time.Duration, logger *log.Logger) *Memory {
	m := &Memory{
		entries: make(map[string]domain.Cart),
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if sweepInterval > 0 {
		m.wg.Add(1)
		go m.sweepLoop(sweepInterval)
	}
	return m
}

// Put inserts or overwrites the entry for cart.ID. The cart's CreatedAt is
// the expiration anchor, so re-putting an unchanged cart does not reset its
// clock.
func (m *Memory) Put(cart domain.Cart) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[cart.ID] = cart.Clone()
}

// Get returns a snapshot copy. An entry past its TTL is evicted here, under
// the lock, and the call fails with domain.ErrExpired; the next call for the
// same id observes domain.ErrNotFound.
func (m *Memory) Get(cartID string) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.entries[cartID]
	if !ok {
		return domain.Cart{}, domain.ErrNotFound
	}
	if m.expired(cart, m.now()) {
		delete(m.entries, cartID)
		return domain.Cart{}, domain.ErrExpired
	}
	return cart.Clone(), nil
}

// Update overwrites an existing entry with the same expiration check as Get.
func (m *Memory) Update(cart domain.Cart) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.entries[cart.ID]
	if !ok {
		return domain.Cart{}, domain.ErrNotFound
	}
	if m.expired(stored, m.now()) {
		delete(m.entries, cart.ID)
		return domain.Cart{}, domain.ErrExpired
	}
	m.entries[cart.ID] = cart.Clone()
	return cart.Clone(), nil
}

// Delete removes the entry if present. Deleting an absent key is not an error.
func (m *Memory) Delete(cartID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, cartID)
}

// Count returns the number of stored entries, including expired ones that
// have not yet been accessed or swept.
func (m *Memory) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Clear removes all entries.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]domain.Cart)
}

// Close stops the background sweeper and waits for it to exit. Idempotent.
func (m *Memory) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
	})
	m.wg.Wait()
}

func (m *Memory) expired(cart domain.Cart, now time.Time) bool {
	return now.After(cart.CreatedAt.Add(m.ttl))
}

func (m *Memory) sweepLoop(interval time.Duration) {
	defer m.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.evictExpired()
		}
	}
}

func (m *Memory) evictExpired() {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, cart := range m.entries {
		if m.expired(cart, now) {
			delete(m.entries, id)
			removed++
		}
	}
	if removed > 0 && m.logger != nil {
		m.logger.Printf("session sweep evicted %d expired carts", removed)
	}
}
