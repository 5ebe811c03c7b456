package cart

import (
	"sync"

	"github.com/fanzone/fanzone-backend/pkg/logger"
)

// Cart is the shopper's cart, loaded from and persisted to a Storage on
// every mutation. Safe for concurrent use.
type Cart struct {
	mu      sync.Mutex
	storage Storage
	items   []LineItem
}

// New loads the persisted cart. Unreadable or corrupt storage degrades to
// an empty cart so the shopper can keep browsing; the cause is logged.
func New(storage Storage) *Cart {
	items, err := storage.Load()
	if err != nil {
		logger.Warn("Could not restore cart, starting empty", map[string]interface{}{
			"error": err.Error(),
		})
		items = nil
	}
	return &Cart{
		storage: storage,
		items:   items,
	}
}

// Add puts a resolved line into the cart. When an equal line already
// exists only its quantity grows; the stored product snapshot is not
// refreshed.
func (c *Cart) Add(item LineItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].SameLine(item) {
			c.items[i].Quantity += item.Quantity
			c.persist()
			return
		}
	}

	c.items = append(c.items, item)
	c.persist()
}

// Remove drops the line matching (id, attribute). No match is a silent
// no-op.
func (c *Cart) Remove(productID, attribute string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == productID && c.items[i].Attribute == attribute {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persist()
			return
		}
	}
}

// UpdateQuantity sets the quantity of the line matching (id, attribute).
// A quantity of zero or less removes the line. No match is a silent no-op.
func (c *Cart) UpdateQuantity(productID, attribute string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID, attribute)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == productID && c.items[i].Attribute == attribute {
			c.items[i].Quantity = quantity
			c.persist()
			return
		}
	}
}

// Clear empties the cart and removes the persisted entry entirely.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	if err := c.storage.Clear(); err != nil {
		logger.Error("Failed to clear persisted cart", err, nil)
	}
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Total is the sum over all lines of quantity times the unit price the
// line was added with. Shipping is not included here.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0.0
	for _, item := range c.items {
		total += item.LineTotal()
	}
	return total
}

// Size is the number of distinct lines.
func (c *Cart) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// persist writes the current lines out. The in-memory cart stays
// authoritative when the write fails. Callers must hold c.mu.
func (c *Cart) persist() {
	if err := c.storage.Save(c.items); err != nil {
		logger.Error("Failed to persist cart", err, map[string]interface{}{
			"items": len(c.items),
		})
	}
}
