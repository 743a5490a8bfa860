package domain

import "errors"

var (
	ErrProductNotInCatalog = errors.New("product is not in the sale catalog")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrEmptyCart           = errors.New("cart is empty")
)

type CartLine struct {
	ProductID      uint   `json:"product_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

func (l CartLine) SubtotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

// Cart composes a sale against a stock snapshot captured at construction.
// A line's quantity can never exceed the snapshot recorded for its product;
// the backend re-validates against authoritative stock on submission.
type Cart struct {
	snapshot map[uint]Product
	order    []uint
	lines    map[uint]*CartLine
}

// NewCart snapshots the sellable products of the given catalog.
func NewCart(catalog []Product) *Cart {
	snapshot := make(map[uint]Product, len(catalog))
	for _, p := range catalog {
		if p.Sellable {
			snapshot[p.ID] = p
		}
	}

	return &Cart{
		snapshot: snapshot,
		lines:    make(map[uint]*CartLine),
	}
}

// AddLine inserts a line for the product or increments an existing one.
// Incrementing past the stock snapshot fails and leaves the cart unchanged.
func (c *Cart) AddLine(productID uint) error {
	p, ok := c.snapshot[productID]
	if !ok {
		return ErrProductNotInCatalog
	}

	line, ok := c.lines[productID]
	if !ok {
		if p.Stock < 1 {
			return ErrInsufficientStock
		}
		c.lines[productID] = &CartLine{
			ProductID:      p.ID,
			Name:           p.Name,
			UnitPriceCents: p.PriceCents,
			Quantity:       1,
		}
		c.order = append(c.order, productID)
		return nil
	}

	if line.Quantity+1 > p.Stock {
		return ErrInsufficientStock
	}
	line.Quantity++

	return nil
}

// ChangeQuantity applies a delta to an existing line. A resulting quantity
// of zero or less removes the line; exceeding the snapshot keeps the prior
// quantity and fails.
func (c *Cart) ChangeQuantity(productID uint, delta int) error {
	line, ok := c.lines[productID]
	if !ok {
		return ErrProductNotInCatalog
	}

	next := line.Quantity + delta
	if next <= 0 {
		c.removeLine(productID)
		return nil
	}

	if next > c.snapshot[productID].Stock {
		return ErrInsufficientStock
	}
	line.Quantity = next

	return nil
}

func (c *Cart) removeLine(productID uint) {
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Lines returns the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

func (c *Cart) Quantity(productID uint) int {
	if line, ok := c.lines[productID]; ok {
		return line.Quantity
	}
	return 0
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) TotalCents() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.SubtotalCents()
	}
	return total
}

// Items converts the cart into the order intent submitted to the sales endpoint.
func (c *Cart) Items() ([]SaleItemInput, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	items := make([]SaleItemInput, 0, len(c.order))
	for _, line := range c.Lines() {
		items = append(items, SaleItemInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	return items, nil
}
