package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/homies-gc/homies-api/internal/domain"
)

type SaleItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateSaleRequest struct {
	BuyerID uint              `json:"buyer_id"`
	Items   []SaleItemRequest `json:"items"`
}

func (req *CreateSaleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.BuyerID, validation.Required),
		validation.Field(&req.Items, validation.Required, validation.Length(1, 0)),
	)
}

func (req *CreateSaleRequest) DomainItems() []domain.SaleItemInput {
	items := make([]domain.SaleItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return items
}
