package domain

// Product is a sellable item. Price is in the smallest currency unit.
// IsAvailable is derived from stock and recomputed on every stock write;
// it is never set directly.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
	IsAvailable bool   `json:"is_available"`
	Owner       string `json:"owner"`
}

// Exists reports whether the record refers to a stored product.
func (p Product) Exists() bool {
	return p.ID != 0
}

// AvailableFor reports the availability flag implied by a stock level.
func AvailableFor(stock int64) bool {
	return stock > 0
}
