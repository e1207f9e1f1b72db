package domain

// Product is a catalog reference supplied by the caller when adding an item.
// It is never re-read after the add; line items keep their own price snapshot.
type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Category Category `json:"category"`
}
