package domain

import "github.com/shopspring/decimal"

// Line is one cart position. UnitPrice is the price snapshot taken
// when the product was first added; merging more quantity onto an
// existing line keeps the original snapshot.
type Line struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds the session-local line items in insertion order. At most
// one line exists per product id. The cart never talks to the server;
// checkout submits the whole line list in one payload and the caller
// clears the cart only after the server acknowledged it.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add merges quantity onto an existing line for the product or appends
// a new line with the given price snapshot.
func (c *Cart) Add(productID string, unitPrice decimal.Decimal, quantity int) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity += quantity
			return
		}
	}

	c.lines = append(c.lines, Line{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
}

// Remove drops the product's line; absent products are a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity pins a line to an exact quantity. A quantity of zero or
// less removes the line.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Line(productID string) (Line, bool) {
	for _, l := range c.lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return Line{}, false
}

// Total sums quantity times price snapshot over all lines. Recomputed
// on every call, never cached.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

// Count is the badge count: the sum of all quantities.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}
