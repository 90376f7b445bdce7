package domain

// CartItem owns a by-value snapshot of the product it was added from, so
// later catalog edits never change lines already in a cart.
type CartItem struct {
	Product     Product `json:"product"`
	Quantity    int     `json:"quantity"`
	VariantID   string  `json:"variantId,omitempty"`
	VariantName string  `json:"variantName,omitempty"`
}

// UnitPrice resolves base price plus the chosen variant's delta.
func (i CartItem) UnitPrice() int64 {
	if i.VariantID != "" {
		if v, ok := i.Product.Variant(i.VariantID); ok {
			return i.Product.Price + v.PriceDiff
		}
	}
	return i.Product.Price
}

func (i CartItem) matches(productID, variantID string) bool {
	return i.Product.ID == productID && i.VariantID == variantID
}

// Cart is a plain value; ownership and persistence are the cart service's
// concern. Insertion order is display order.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add merges on (productID, variantID): a repeated addition bumps the
// existing line's quantity instead of appending a duplicate row.
func (c *Cart) Add(p Product, variantID, variantName string) {
	for idx := range c.Items {
		if c.Items[idx].matches(p.ID, variantID) {
			c.Items[idx].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		Product:     p,
		Quantity:    1,
		VariantID:   variantID,
		VariantName: variantName,
	})
}

// SetQuantity clamps at zero: a non-positive quantity removes the line.
func (c *Cart) SetQuantity(productID, variantID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID, variantID)
		return
	}
	for idx := range c.Items {
		if c.Items[idx].matches(productID, variantID) {
			c.Items[idx].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Remove(productID, variantID string) {
	kept := c.Items[:0]
	for _, it := range c.Items {
		if !it.matches(productID, variantID) {
			kept = append(kept, it)
		}
	}
	c.Items = kept
}

func (c *Cart) Clear() { c.Items = nil }

func (c *Cart) Empty() bool { return len(c.Items) == 0 }

func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) TotalAmount() int64 {
	var sum int64
	for _, it := range c.Items {
		sum += it.UnitPrice() * int64(it.Quantity)
	}
	return sum
}

// ConflictsOn returns the lines whose product is not baked on the given
// weekday. Empty means the whole cart can be picked up that day.
func (c *Cart) ConflictsOn(day Weekday) []CartItem {
	var out []CartItem
	for _, it := range c.Items {
		if !it.Product.AvailableOn(day) {
			out = append(out, it)
		}
	}
	return out
}
