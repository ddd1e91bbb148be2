// Package cart accumulates the pizzas and store chosen for one checkout
// attempt. A cart is ephemeral: it is cleared on successful submission or
// cancel and never persisted.
package cart

import (
	"fmt"

	"pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/models"
)

// Cart is the current selection. It is not safe for concurrent use; the
// storefront drives it from a single event loop.
type Cart struct {
	storeID     models.ID
	franchiseID models.ID
	items       []models.MenuItem
}

func New() *Cart {
	return &Cart{}
}

// SelectStore sets the active store and its franchise. Items already in the
// cart are kept.
func (c *Cart) SelectStore(franchiseID, storeID models.ID) {
	c.franchiseID = franchiseID
	c.storeID = storeID
}

// AddItem appends a menu item. Duplicates are allowed; ordering the same
// pizza twice is valid and priced twice.
func (c *Cart) AddItem(item models.MenuItem) {
	c.items = append(c.items, item)
}

// RemoveItem drops the item at index. Out-of-range indexes are rejected.
func (c *Cart) RemoveItem(index int) error {
	if index < 0 || index >= len(c.items) {
		return errors.NewValidationFailedError(fmt.Sprintf("no cart item at index %d", index))
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return nil
}

// Clear resets the whole selection including the chosen store.
func (c *Cart) Clear() {
	c.storeID = ""
	c.franchiseID = ""
	c.items = nil
}

// Items returns a copy of the current selection.
func (c *Cart) Items() []models.MenuItem {
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// Count returns the number of selected pizzas.
func (c *Cart) Count() int {
	return len(c.items)
}

// StoreID returns the active store id, empty when none is selected.
func (c *Cart) StoreID() models.ID {
	return c.storeID
}

// FranchiseID returns the franchise owning the active store.
func (c *Cart) FranchiseID() models.ID {
	return c.franchiseID
}

// TotalPrice sums the item prices in the menu's decimal unit. No conversion,
// no rounding beyond native float precision.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Price
	}
	return total
}

// CanCheckout reports whether checkout may be submitted: a store must be
// selected and at least one pizza chosen. Consumers disable the checkout
// action otherwise.
func (c *Cart) CanCheckout() bool {
	return c.storeID != "" && len(c.items) > 0
}

// Order builds the order payload for submission from the current selection.
func (c *Cart) Order() (*models.Order, error) {
	if !c.CanCheckout() {
		return nil, errors.NewCartNotReadyError(
			fmt.Sprintf("storeId=%q items=%d", c.storeID, len(c.items)))
	}

	items := make([]models.OrderItem, len(c.items))
	for i, item := range c.items {
		items[i] = models.OrderItem{
			MenuID:      item.ID,
			Description: item.Title,
			Price:       item.Price,
		}
	}

	return &models.Order{
		FranchiseID: c.franchiseID,
		StoreID:     c.storeID,
		Items:       items,
	}, nil
}
