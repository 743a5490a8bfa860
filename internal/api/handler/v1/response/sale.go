package response

import (
	"github.com/homies-gc/homies-api/internal/domain"
)

// SaleResponse pairs a sale with its reconciliation, money rendered as
// 2-decimal strings next to the raw cents.
type SaleResponse struct {
	Sale domain.Sale `json:"sale"`

	TotalCents     int64 `json:"total_cents"`
	PaidCents      int64 `json:"paid_cents"`
	InReviewCents  int64 `json:"in_review_cents"`
	RemainingCents int64 `json:"remaining_cents"`

	Total     string `json:"total"`
	Paid      string `json:"paid"`
	InReview  string `json:"in_review"`
	Remaining string `json:"remaining"`
}

func NewSaleResponse(sale domain.Sale, rec domain.Reconciliation) SaleResponse {
	return SaleResponse{
		Sale:           sale,
		TotalCents:     rec.TotalCents,
		PaidCents:      rec.PaidCents,
		InReviewCents:  rec.InReviewCents,
		RemainingCents: rec.RemainingCents(),
		Total:          domain.FormatCents(rec.TotalCents),
		Paid:           domain.FormatCents(rec.PaidCents),
		InReview:       domain.FormatCents(rec.InReviewCents),
		Remaining:      domain.FormatCents(rec.RemainingCents()),
	}
}
