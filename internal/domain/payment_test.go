package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/homies-gc/homies-api/internal/domain"
)

func TestReconcile(t *testing.T) {
	t.Run("in-review payments count toward the covered amount", func(t *testing.T) {
		payments := []domain.Payment{
			{AmountCents: 3000, Status: domain.PaymentInReview},
			{AmountCents: 2000, Status: domain.PaymentInReview},
			{AmountCents: 4000, Status: domain.PaymentApproved},
			{AmountCents: 9900, Status: domain.PaymentRejected},
		}

		rec := domain.Reconcile(10000, 4000, payments)

		assert.Equal(t, int64(5000), rec.InReviewCents)
		assert.Equal(t, int64(9000), rec.CoveredCents())
		assert.Equal(t, int64(1000), rec.RemainingCents())
	})

	t.Run("rejected payments never count", func(t *testing.T) {
		payments := []domain.Payment{
			{AmountCents: 9900, Status: domain.PaymentRejected},
		}

		rec := domain.Reconcile(10000, 0, payments)
		assert.Equal(t, int64(10000), rec.RemainingCents())
	})

	t.Run("no payments", func(t *testing.T) {
		rec := domain.Reconcile(5000, 0, nil)
		assert.Equal(t, int64(5000), rec.RemainingCents())
	})
}

// Approving an in-review payment moves its amount from inReview to paid,
// leaving the remaining amount untouched; rejecting returns the amount to
// the outstanding balance.
func TestReconciliation_RemainingAfterReview(t *testing.T) {
	inReview := []domain.Payment{{AmountCents: 5000, Status: domain.PaymentInReview}}

	before := domain.Reconcile(10000, 4000, inReview)
	afterApprove := domain.Reconcile(10000, 9000, nil)
	afterReject := domain.Reconcile(10000, 4000, nil)

	assert.Equal(t, int64(1000), before.RemainingCents())
	assert.Equal(t, int64(1000), afterApprove.RemainingCents())
	assert.Equal(t, int64(6000), afterReject.RemainingCents())
}

func TestPaymentMethod_IsValid(t *testing.T) {
	assert.True(t, domain.PaymentCash.IsValid())
	assert.True(t, domain.PaymentTransfer.IsValid())
	assert.True(t, domain.PaymentQR.IsValid())
	assert.False(t, domain.PaymentMethod("bitcoin").IsValid())
}

func TestSale_CanCancel(t *testing.T) {
	assert.True(t, domain.Sale{Status: domain.SalePendingPayment}.CanCancel(false))
	assert.False(t, domain.Sale{Status: domain.SalePendingPayment}.CanCancel(true))
	assert.False(t, domain.Sale{Status: domain.SaleDelivered}.CanCancel(false))
	assert.False(t, domain.Sale{Status: domain.SaleVoid}.CanCancel(false))
}
