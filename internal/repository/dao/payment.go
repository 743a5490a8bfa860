package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPaymentNotInReview = errors.New("payment is not in review")
)

type Payment struct {
	ID uint `gorm:"primaryKey"`

	SaleID      uint   `gorm:"not null;index"`
	AmountCents int64  `gorm:"not null"`
	Method      string `gorm:"not null"` // "cash", "transfer" or "qr"
	Status      string `gorm:"not null"` // "IN_REVIEW", "APPROVED" or "REJECTED"
	ReceiptPath string `gorm:"not null"`
	ReviewedBy  *uint

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PaymentDAO struct {
	db *gorm.DB
}

func NewPaymentDAO(db *gorm.DB) *PaymentDAO {
	return &PaymentDAO{
		db: db,
	}
}

func (d *PaymentDAO) Insert(ctx context.Context, payment Payment) (Payment, error) {
	result := d.db.WithContext(ctx).Create(&payment)
	if result.Error != nil {
		return Payment{}, result.Error
	}

	return payment, nil
}

func (d *PaymentDAO) FindByID(ctx context.Context, id uint) (Payment, error) {
	var payment Payment

	result := d.db.WithContext(ctx).First(&payment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Payment{}, ErrPaymentNotFound
		}

		return Payment{}, result.Error
	}

	return payment, nil
}

func (d *PaymentDAO) FindBySaleID(ctx context.Context, saleID uint) ([]Payment, error) {
	var payments []Payment

	result := d.db.WithContext(ctx).Where("sale_id = ?", saleID).Order("created_at").Find(&payments)
	if result.Error != nil {
		return nil, result.Error
	}

	return payments, nil
}

func (d *PaymentDAO) FindAll(ctx context.Context) ([]Payment, error) {
	var payments []Payment

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&payments)
	if result.Error != nil {
		return nil, result.Error
	}

	return payments, nil
}

// Reject flips an in-review payment to rejected. The status guard makes
// the database the arbiter when a review races another review or a cancel;
// losing surfaces as ErrPaymentNotInReview.
func (d *PaymentDAO) Reject(ctx context.Context, id uint, reviewedBy uint) error {
	result := d.db.WithContext(ctx).Model(&Payment{}).
		Where("id = ? AND status = ?", id, "IN_REVIEW").
		Updates(map[string]any{"status": "REJECTED", "reviewed_by": reviewedBy})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return d.reviewMiss(ctx, id)
	}

	return nil
}

// Approve flips an in-review payment to approved and settles its amount
// into the sale in one transaction. The payment UPDATE carries the same
// status guard as Reject, and the sale's paid amount is incremented in
// place rather than rewritten, so concurrent approvals can never
// double-count one payment or lose another's amount.
func (d *PaymentDAO) Approve(ctx context.Context, id uint, reviewedBy uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment Payment
		if err := tx.First(&payment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		result := tx.Model(&Payment{}).
			Where("id = ? AND status = ?", id, "IN_REVIEW").
			Updates(map[string]any{"status": "APPROVED", "reviewed_by": reviewedBy})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPaymentNotInReview
		}

		err := tx.Model(&Sale{}).Where("id = ?", payment.SaleID).
			Update("paid_cents", gorm.Expr("paid_cents + ?", payment.AmountCents)).Error
		if err != nil {
			return err
		}

		var sale Sale
		if err := tx.First(&sale, payment.SaleID).Error; err != nil {
			return err
		}

		status := "INCOMPLETE"
		if sale.PaidCents >= sale.TotalCents {
			status = "PAID"
		}

		return tx.Model(&Sale{}).Where("id = ?", sale.ID).Update("status", status).Error
	})
}

func (d *PaymentDAO) reviewMiss(ctx context.Context, id uint) error {
	var payment Payment
	if err := d.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}

	return ErrPaymentNotInReview
}
