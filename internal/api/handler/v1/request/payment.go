package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/homies-gc/homies-api/internal/domain"
)

// RegisterPaymentRequest binds the multipart form. The mandatory receipt
// file travels separately in the form.
type RegisterPaymentRequest struct {
	SaleID uint   `form:"sale_id"`
	Amount string `form:"amount"`
	Method string `form:"method"`
}

func (req *RegisterPaymentRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.SaleID, validation.Required),
		validation.Field(&req.Amount, validation.Required),
		validation.Field(&req.Method, validation.Required, validation.In(
			string(domain.PaymentCash),
			string(domain.PaymentTransfer),
			string(domain.PaymentQR),
		)),
	)
	if err != nil {
		return err
	}

	amount, err := domain.ParseCents(req.Amount)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	return nil
}

// AmountCents assumes Validate has already accepted the amount.
func (req *RegisterPaymentRequest) AmountCents() int64 {
	cents, _ := domain.ParseCents(req.Amount)

	return cents
}
