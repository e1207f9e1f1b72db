package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"cart-sessions/internal/domain"
)

func testCart(id string, createdAt time.Time) domain.Cart {
	return domain.Cart{
		ID:        id,
		Items:     []domain.CartItem{{ID: "item-1", ProductID: "p1", Quantity: 1, UnitPrice: 9.99, TotalPrice: 9.99}},
		Metadata:  map[string]string{"channel": "web"},
		CreatedAt: createdAt,
	}
}

func TestMemoryPutGetRoundtrip(t *testing.T) {
	m := NewMemory(time.Minute, 0, nil)
	defer m.Close()

	cart := testCart("c1", time.Now().UTC())
	m.Put(cart)

	got, err := m.Get("c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "c1" || len(got.Items) != 1 || got.Items[0].TotalPrice != 9.99 {
		t.Fatalf("unexpected cart: %+v", got)
	}
}

func TestMemoryGetReturnsSnapshot(t *testing.T) {
	m := NewMemory(time.Minute, 0, nil)
	defer m.Close()

	m.Put(testCart("c1", time.Now().UTC()))

	got, err := m.Get("c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got.Items[0].Quantity = 42
	got.Metadata["channel"] = "mutated"

	again, err := m.Get("c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Items[0].Quantity != 1 {
		t.Fatalf("stored cart mutated through returned copy: %+v", again.Items[0])
	}
	if again.Metadata["channel"] != "web" {
		t.Fatalf("stored metadata mutated through returned copy: %+v", again.Metadata)
	}
}

func TestMemoryGetMissing(t *testing.T) {
	m := NewMemory(time.Minute, 0, nil)
	defer m.Close()

	if _, err := m.Get("absent"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryLazyExpiration(t *testing.T) {
	m := NewMemory(time.Minute, 0, nil)
	defer m.Close()

	base := time.Now().UTC()
	m.Put(testCart("c1", base))
	m.now = func() time.Time { return base.Add(time.Minute + time.Millisecond) }

	if _, err := m.Get("c1"); !errors.Is(err, domain.ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	// Eviction happened with the first failing read.
	if _, err := m.Get("c1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after eviction, got %v", err)
	}
	if m.Count() != 0 {
		t.Fatalf("expected empty store, got %d entries", m.Count())
	}
}

func TestMemoryGetBeforeExpiry(t *testing.T) {
	m := NewMemory(time.Minute, 0, nil)
	defer m.Close()

	base := time.Now().UTC()
	m.Put(testCart("c1", base))
	m.now = func() time.Time { return base.Add(time.Minute) }

	if _, err := m.Get("c1"); err != nil {
		t.Fatalf("cart within TTL must be readable, got %v", err)
	}
}

func TestMemoryUpdate(t *testing.T) {
	m := NewMemory(time.Minute, 0, nil)
	defer m.Close()

	base := time.Now().UTC()
	cart := testCart("c1", base)
	m.Put(cart)

	cart.Items[0].Quantity = 3
	stored, err := m.Update(cart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", stored.Items[0].Quantity)
	}

	if _, err := m.Update(testCart("absent", base)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryUpdateExpired(t *testing.T) {
	m := NewMemory(time.Minute, 0, nil)
	defer m.Close()

	base := time.Now().UTC()
	cart := testCart("c1", base)
	m.Put(cart)
	m.now = func() time.Time { return base.Add(2 * time.Minute) }

	if _, err := m.Update(cart); !errors.Is(err, domain.ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	if _, err := m.Update(cart); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after eviction, got %v", err)
	}
}

func TestMemoryRePutKeepsExpirationClock(t *testing.T) {
	m := NewMemory(time.Minute, 0, nil)
	defer m.Close()

	base := time.Now().UTC()
	cart := testCart("c1", base)
	m.Put(cart)
	// Re-putting later must not extend the cart's life: the anchor is the
	// cart's own CreatedAt.
	m.Put(cart)
	m.now = func() time.Time { return base.Add(time.Minute + time.Second) }

	if _, err := m.Get("c1"); !errors.Is(err, domain.ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestMemoryDeleteIdempotent(t *testing.T) {
	m := NewMemory(time.Minute, 0, nil)
	defer m.Close()

	m.Put(testCart("c1", time.Now().UTC()))
	m.Delete("c1")
	m.Delete("c1")
	m.Delete("never-existed")

	if m.Count() != 0 {
		t.Fatalf("expected empty store, got %d entries", m.Count())
	}
}

func TestMemoryCountAndClear(t *testing.T) {
	m := NewMemory(time.Minute, 0, nil)
	defer m.Close()

	now := time.Now().UTC()
	m.Put(testCart("c1", now))
	m.Put(testCart("c2", now))
	if m.Count() != 2 {
		t.Fatalf("expected 2 entries, got %d", m.Count())
	}
	m.Clear()
	if m.Count() != 0 {
		t.Fatalf("expected 0 entries after clear, got %d", m.Count())
	}
}

func TestMemorySweepEvictsUnreadEntries(t *testing.T) {
	m := NewMemory(10*time.Millisecond, 5*time.Millisecond, nil)
	defer m.Close()

	m.Put(testCart("c1", time.Now().UTC()))

	deadline := time.Now().Add(2 * time.Second)
	for m.Count() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("sweep did not evict expired cart, %d entries left", m.Count())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestMemoryCloseIdempotent(t *testing.T) {
	m := NewMemory(time.Minute, time.Millisecond, nil)
	m.Close()
	m.Close()
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory(time.Minute, time.Millisecond, nil)
	defer m.Close()

	now := time.Now().UTC()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("c%d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Put(testCart(id, now))
			if _, err := m.Get(id); err != nil {
				t.Errorf("get %s: %v", id, err)
			}
			m.Delete(id)
		}()
	}
	wg.Wait()

	if m.Count() != 0 {
		t.Fatalf("expected empty store, got %d entries", m.Count())
	}
}
