package models

// Item is a single inventory record.
//
// Name, Quantity and Price hold whatever the caller sent once decoded from
// JSON (string, number, null...). The page posts form values as strings, so
// the store keeps them untouched instead of coercing.
type Item struct {
	ID       string `json:"id"`
	Name     any    `json:"name"`
	Quantity any    `json:"quantity"`
	Price    any    `json:"price"`
}

// ItemInput is the caller-supplied part of an item.
type ItemInput struct {
	Name     any `json:"name"`
	Quantity any `json:"quantity"`
	Price    any `json:"price"`
}

// NewItem builds an item from input with the given id.
func NewItem(id string, input ItemInput) Item {
	return Item{
		ID:       id,
		Name:     input.Name,
		Quantity: input.Quantity,
		Price:    input.Price,
	}
}

// SeedItems returns the fixed catalogue loaded at process start.
func SeedItems() []Item {
	return []Item{
		{ID: "1", Name: "Laptop", Quantity: float64(10), Price: 999.99},
		{ID: "2", Name: "Mouse", Quantity: float64(50), Price: 19.99},
		{ID: "3", Name: "Monitor", Quantity: float64(20), Price: 199.99},
	}
}
