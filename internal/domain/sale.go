package domain

import "time"

type SaleStatus string

const (
	SalePendingPayment SaleStatus = "PENDING_PAYMENT"
	SaleIncomplete     SaleStatus = "INCOMPLETE"
	SalePaid           SaleStatus = "PAID"
	SaleDelivered      SaleStatus = "DELIVERED"
	SaleVoid           SaleStatus = "VOID"
)

type Sale struct {
	ID         uint       `json:"id"`
	BuyerID    uint       `json:"buyer_id"`
	BuyerName  string     `json:"buyer_name,omitempty"`
	SellerID   uint       `json:"seller_id"`
	SellerName string     `json:"seller_name,omitempty"`
	TotalCents int64      `json:"total_cents"`
	PaidCents  int64      `json:"paid_cents"`
	Status     SaleStatus `json:"status"`
	Items      []SaleItem `json:"items,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// SaleItem keeps the unit price in force when the sale was composed, so later
// catalog price changes never alter a recorded sale.
type SaleItem struct {
	ID             uint   `json:"id"`
	SaleID         uint   `json:"sale_id"`
	ProductID      uint   `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	SubtotalCents  int64  `json:"subtotal_cents"`
}

// SaleItemInput is one line of an order intent.
type SaleItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func (s Sale) CanDeliver() bool {
	return s.Status == SalePaid
}

// CanCancel reports whether the sale may still be voided. A sale with any
// approved payment must be settled through its normal flow.
func (s Sale) CanCancel(hasApprovedPayments bool) bool {
	if s.Status == SaleDelivered || s.Status == SaleVoid {
		return false
	}
	return !hasApprovedPayments
}
