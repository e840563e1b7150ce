package domain

// CartLine is one product's quantity entry within a cart. A cart never
// holds two lines for the same product, and a line's quantity is never
// below 1 (a decrement to zero removes the line).
type CartLine struct {
	ProductID int     `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Cart is an ordered collection of lines, insertion order = first-added
// order. All operations are pure: they return a new cart and leave the
// receiver untouched, so any prior value stays valid.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Upsert adds one unit of p. An existing line is incremented in place,
// everything else copied unchanged; otherwise a quantity-1 line is
// appended at the end.
func (c Cart) Upsert(p Product) Cart {
	lines := make([]CartLine, len(c.Lines), len(c.Lines)+1)
	copy(lines, c.Lines)

	for i := range lines {
		if lines[i].ProductID == p.ID {
			lines[i].Quantity++
			return Cart{Lines: lines}
		}
	}

	lines = append(lines, CartLine{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
	})
	return Cart{Lines: lines}
}

// Decrement removes one unit of the given product. A line at quantity 1
// is removed entirely; an unknown product id is a no-op.
func (c Cart) Decrement(productID int) Cart {
	lines := make([]CartLine, 0, len(c.Lines))
	for _, line := range c.Lines {
		if line.ProductID == productID {
			line.Quantity--
			if line.Quantity < 1 {
				continue
			}
		}
		lines = append(lines, line)
	}
	return Cart{Lines: lines}
}

// Clear returns the empty cart unconditionally.
func (c Cart) Clear() Cart {
	return Cart{}
}

// TotalAmount is Σ(price × quantity) over all lines. No rounding happens
// here; display formatting is the render layer's job.
func (c Cart) TotalAmount() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// TotalCount is Σ(quantity) over all lines.
func (c Cart) TotalCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}
