package cart

import (
	"errors"

	"salonbook/internal/models"
)

// ErrDuplicateItem signals an add for a service already in the cart. Callers
// treat it as an informational notice, not a failure.
var ErrDuplicateItem = errors.New("service already in cart")

// Cart is the customer's in-progress selection of services for one booking
// session. Items are unique by service id; insertion order is preserved for
// display. The cart is owned by a single session and mutated only through
// these methods, so it carries no lock of its own.
type Cart struct {
	Items []models.CartItem `json:"items"`
}

func New() *Cart {
	return &Cart{}
}

// Add appends a snapshot of the service. Returns ErrDuplicateItem and leaves
// the cart unchanged when the id is already present.
func (c *Cart) Add(service models.Service) error {
	for _, item := range c.Items {
		if item.ID == service.ID {
			return ErrDuplicateItem
		}
	}

	c.Items = append(c.Items, models.CartItem{
		ID:       service.ID,
		Name:     service.Name,
		Duration: service.DurationMinutes,
		Price:    service.Price,
	})
	return nil
}

// Remove deletes the item with the given id; unknown ids are a no-op.
func (c *Cart) Remove(id string) {
	for i, item := range c.Items {
		if item.ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Total is the sum of item prices.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price
	}
	return total
}

// TotalDuration is the sum of item durations in minutes.
func (c *Cart) TotalDuration() int {
	var total int
	for _, item := range c.Items {
		total += item.Duration
	}
	return total
}

func (c *Cart) Size() int {
	return len(c.Items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clear empties the cart, called after a successful submission.
func (c *Cart) Clear() {
	c.Items = nil
}
