package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/homies-gc/homies-api/internal/domain"
)

type ProductRequest struct {
	Name  string `form:"name"`
	Type  string `form:"type"`
	Price string `form:"price"`
	Stock int    `form:"stock"`
}

func (req *ProductRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Type, validation.Required, validation.In(
			string(domain.ProductBracelet),
			string(domain.ProductClothing),
			string(domain.ProductSouvenir),
			string(domain.ProductOther),
		)),
		validation.Field(&req.Price, validation.Required),
		validation.Field(&req.Stock, validation.Min(0)),
	)
	if err != nil {
		return err
	}

	price, err := domain.ParseCents(req.Price)
	if err != nil {
		return err
	}
	if price <= 0 {
		return domain.ErrInvalidAmount
	}

	return nil
}

// PriceCents assumes Validate has already accepted the price.
func (req *ProductRequest) PriceCents() int64 {
	cents, _ := domain.ParseCents(req.Price)

	return cents
}
