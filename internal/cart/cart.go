// Package cart implements the line-item bookkeeping the storefront performs
// before checkout. The cart is a pure value: totals and item counts are
// derived by full reduction on read, so no mutation path can drift them.
package cart

// Line is one (product, size, color) entry with a quantity.
type Line struct {
	ProductID string
	Name      string
	Price     float64
	Size      string
	Color     string
	Quantity  int
}

// Cart is an ordered sequence of lines keyed by (ProductID, Size, Color).
// The zero value is an empty cart ready for use.
type Cart struct {
	lines []Line
}

func sameLine(l Line, productID, size, color string) bool {
	return l.ProductID == productID && l.Size == size && l.Color == color
}

// Add merges qty into an existing line with the same (product, size, color)
// triple, or appends a new line. qty below 1 is treated as 1.
func (c *Cart) Add(l Line, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.lines {
		if sameLine(c.lines[i], l.ProductID, l.Size, l.Color) {
			c.lines[i].Quantity += qty
			return
		}
	}
	l.Quantity = qty
	c.lines = append(c.lines, l)
}

// UpdateQuantity replaces the matching line's quantity. A quantity below 1
// removes the line. Unknown lines are a no-op.
func (c *Cart) UpdateQuantity(productID, size, color string, qty int) {
	if qty < 1 {
		c.Remove(productID, size, color)
		return
	}
	for i := range c.lines {
		if sameLine(c.lines[i], productID, size, color) {
			c.lines[i].Quantity = qty
			return
		}
	}
}

// Remove filters out the matching line.
func (c *Cart) Remove(productID, size, color string) {
	out := c.lines[:0]
	for _, l := range c.lines {
		if !sameLine(l, productID, size, color) {
			out = append(out, l)
		}
	}
	c.lines = out
}

// Clear resets the cart to empty.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// ItemCount is the sum of all line quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total is the sum of price x quantity over all lines.
func (c *Cart) Total() float64 {
	var t float64
	for _, l := range c.lines {
		t += l.Price * float64(l.Quantity)
	}
	return t
}
