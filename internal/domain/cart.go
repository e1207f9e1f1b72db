package domain

import "time"

// Cart is the aggregate root for one shopping session. ExpiresAt is fixed at
// creation and never extended by access.
type Cart struct {
	ID        string            `json:"id"`
	Items     []CartItem        `json:"items"`
	Subtotal  float64           `json:"subtotal"`
	Tax       float64           `json:"tax"`
	Total     float64           `json:"total"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// CartItem is one line in a cart. UnitPrice is the product price captured at
// add time; TotalPrice is always re-derived as UnitPrice times Quantity.
type CartItem struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Category    Category  `json:"category"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	TotalPrice  float64   `json:"totalPrice"`
	AddedAt     time.Time `json:"addedAt"`
}

// Clone returns a deep copy so stored carts are never shared with callers.
func (c Cart) Clone() Cart {
	out := c
	if c.Items != nil {
		out.Items = make([]CartItem, len(c.Items))
		copy(out.Items, c.Items)
	}
	if c.Metadata != nil {
		out.Metadata = make(map[string]string, len(c.Metadata))
		for k, v := range c.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// ItemIndexByProduct returns the index of the line referencing productID, or -1.
func (c Cart) ItemIndexByProduct(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// ItemIndex returns the index of the line with the given item id, or -1.
func (c Cart) ItemIndex(itemID string) int {
	for i, item := range c.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}
