package domain

import "time"

type ProductType string

const (
	ProductBracelet ProductType = "bracelet"
	ProductClothing ProductType = "clothing"
	ProductSouvenir ProductType = "souvenir"
	ProductOther    ProductType = "other"
)

func (t ProductType) IsValid() bool {
	switch t {
	case ProductBracelet, ProductClothing, ProductSouvenir, ProductOther:
		return true
	}
	return false
}

type Product struct {
	ID         uint        `json:"id"`
	Name       string      `json:"name"`
	Type       ProductType `json:"type"`
	PriceCents int64       `json:"price_cents"`
	Stock      int         `json:"stock"`
	Sellable   bool        `json:"sellable"`
	PhotoPath  string      `json:"photo_path,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
