package models

// CartLine is one pending product entry. Quantity is always positive while
// the line exists; dropping to zero removes the line.
type CartLine struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Cart is an ordered collection of lines keyed by product name. It is owned
// by a single session and mutated synchronously; concurrent sessions sharing
// a cart key can overwrite each other, which is accepted.
type Cart struct {
	Lines []CartLine `json:"lines"`

	nextID int64
}

// Add merges quantity into an existing line with the same product name, or
// appends a new line at the end.
func (c *Cart) Add(line CartLine) {
	for i := range c.Lines {
		if c.Lines[i].Name == line.Name {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.nextID++
	line.ID = c.nextID
	c.Lines = append(c.Lines, line)
}

// Remove deletes the line with the given id. Unknown ids are ignored.
func (c *Cart) Remove(id int64) {
	kept := c.Lines[:0]
	for _, l := range c.Lines {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	c.Lines = kept
}

// SetQuantity updates a line's quantity, removing the line when the new
// quantity is zero or negative.
func (c *Cart) SetQuantity(id int64, quantity float64) {
	if quantity <= 0 {
		c.Remove(id)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Total sums price times quantity over all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.Price * l.Quantity
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Normalize reassigns line ids after deserialization so SetQuantity and
// Remove keep working on carts restored from storage.
func (c *Cart) Normalize() {
	var max int64
	for _, l := range c.Lines {
		if l.ID > max {
			max = l.ID
		}
	}
	c.nextID = max
}
