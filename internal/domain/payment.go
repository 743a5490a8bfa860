package domain

import "time"

type PaymentStatus string

const (
	PaymentInReview PaymentStatus = "IN_REVIEW"
	PaymentApproved PaymentStatus = "APPROVED"
	PaymentRejected PaymentStatus = "REJECTED"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentQR       PaymentMethod = "qr"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentQR:
		return true
	}
	return false
}

type Payment struct {
	ID          uint          `json:"id"`
	SaleID      uint          `json:"sale_id"`
	AmountCents int64         `json:"amount_cents"`
	Method      PaymentMethod `json:"method"`
	Status      PaymentStatus `json:"status"`
	ReceiptPath string        `json:"receipt_path"`
	ReviewedBy  *uint         `json:"reviewed_by,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Reconciliation is the derived payment state of a sale. It is recomputed
// from the sale and its payment list on every use, never stored.
type Reconciliation struct {
	TotalCents    int64 `json:"total_cents"`
	PaidCents     int64 `json:"paid_cents"`
	InReviewCents int64 `json:"in_review_cents"`
}

// Reconcile sums the in-review payments against the approved total.
// Rejected payments never count toward the covered amount.
func Reconcile(totalCents, paidCents int64, payments []Payment) Reconciliation {
	var inReview int64
	for _, p := range payments {
		if p.Status == PaymentInReview {
			inReview += p.AmountCents
		}
	}

	return Reconciliation{
		TotalCents:    totalCents,
		PaidCents:     paidCents,
		InReviewCents: inReview,
	}
}

func (r Reconciliation) CoveredCents() int64 {
	return r.PaidCents + r.InReviewCents
}

// RemainingCents is the amount a new payment may still cover. Approving or
// rejecting in-review payments can only keep it equal or lower.
func (r Reconciliation) RemainingCents() int64 {
	return r.TotalCents - r.CoveredCents()
}
