package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/service"
)

type fakePaymentRepo struct {
	payments map[uint]domain.Payment
	nextID   uint

	approved  []uint
	rejected  []uint
	saleItems map[uint][]domain.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		payments:  make(map[uint]domain.Payment),
		saleItems: make(map[uint][]domain.Payment),
		nextID:    1,
	}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment domain.Payment) (domain.Payment, error) {
	payment.ID = r.nextID
	r.nextID++
	r.payments[payment.ID] = payment
	r.saleItems[payment.SaleID] = append(r.saleItems[payment.SaleID], payment)
	return payment, nil
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id uint) (domain.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return domain.Payment{}, service.ErrPaymentNotFound
	}
	return p, nil
}

func (r *fakePaymentRepo) FindBySaleID(_ context.Context, saleID uint) ([]domain.Payment, error) {
	return r.saleItems[saleID], nil
}

func (r *fakePaymentRepo) FindAll(_ context.Context) ([]domain.Payment, error) {
	out := make([]domain.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, p)
	}
	return out, nil
}

// Reject and Approve model the storage-level status guard: only an
// in-review payment can be reviewed, and each review counts once.
func (r *fakePaymentRepo) Reject(_ context.Context, id uint, _ uint) error {
	p, ok := r.payments[id]
	if !ok {
		return service.ErrPaymentNotFound
	}
	if p.Status != domain.PaymentInReview {
		return service.ErrPaymentNotInReview
	}
	p.Status = domain.PaymentRejected
	r.payments[id] = p
	r.rejected = append(r.rejected, id)
	return nil
}

func (r *fakePaymentRepo) Approve(_ context.Context, id uint, _ uint) error {
	p, ok := r.payments[id]
	if !ok {
		return service.ErrPaymentNotFound
	}
	if p.Status != domain.PaymentInReview {
		return service.ErrPaymentNotInReview
	}
	p.Status = domain.PaymentApproved
	r.payments[id] = p
	r.approved = append(r.approved, id)
	return nil
}

type fakeSaleFinder struct {
	sales map[uint]domain.Sale
}

func (r *fakeSaleFinder) FindByID(_ context.Context, id uint) (domain.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return domain.Sale{}, service.ErrSaleNotFound
	}
	return s, nil
}

func TestPaymentService_RegisterPayment(t *testing.T) {
	ctx := context.Background()

	newService := func() (*service.PaymentService, *fakePaymentRepo) {
		repo := newFakePaymentRepo()
		sales := &fakeSaleFinder{sales: map[uint]domain.Sale{
			1: {ID: 1, TotalCents: 10000, PaidCents: 4000, Status: domain.SaleIncomplete},
		}}
		// 50.00 already sits in review against sale 1.
		repo.saleItems[1] = []domain.Payment{{SaleID: 1, AmountCents: 5000, Status: domain.PaymentInReview}}
		return service.NewPaymentService(repo, sales), repo
	}

	t.Run("amount above the outstanding balance is rejected with the exact remaining", func(t *testing.T) {
		svc, repo := newService()

		_, err := svc.RegisterPayment(ctx, 1, 1500, domain.PaymentCash, "receipts/a.jpg")

		var exceeds service.ErrAmountExceedsRemaining
		require.ErrorAs(t, err, &exceeds)
		assert.Equal(t, int64(1000), exceeds.RemainingCents)
		assert.Contains(t, err.Error(), "10.00")
		assert.Len(t, repo.saleItems[1], 1)
	})

	t.Run("amount within the outstanding balance is accepted in review", func(t *testing.T) {
		svc, _ := newService()

		payment, err := svc.RegisterPayment(ctx, 1, 1000, domain.PaymentTransfer, "receipts/a.jpg")

		require.NoError(t, err)
		assert.Equal(t, domain.PaymentInReview, payment.Status)
		assert.Equal(t, int64(1000), payment.AmountCents)
	})

	t.Run("receipt is mandatory", func(t *testing.T) {
		svc, repo := newService()

		_, err := svc.RegisterPayment(ctx, 1, 1000, domain.PaymentCash, "")

		assert.ErrorIs(t, err, service.ErrReceiptRequired)
		assert.Len(t, repo.saleItems[1], 1)
	})

	t.Run("non-positive amounts are rejected before persistence", func(t *testing.T) {
		svc, repo := newService()

		_, err := svc.RegisterPayment(ctx, 1, 0, domain.PaymentCash, "receipts/a.jpg")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)

		_, err = svc.RegisterPayment(ctx, 1, -100, domain.PaymentCash, "receipts/a.jpg")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)

		assert.Len(t, repo.saleItems[1], 1)
	})

	t.Run("invalid method is rejected", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.RegisterPayment(ctx, 1, 1000, domain.PaymentMethod("check"), "receipts/a.jpg")
		assert.ErrorIs(t, err, service.ErrInvalidPaymentMethod)
	})

	t.Run("settled sales accept no further payments", func(t *testing.T) {
		repo := newFakePaymentRepo()
		sales := &fakeSaleFinder{sales: map[uint]domain.Sale{
			1: {ID: 1, TotalCents: 10000, PaidCents: 10000, Status: domain.SalePaid},
		}}
		svc := service.NewPaymentService(repo, sales)

		_, err := svc.RegisterPayment(ctx, 1, 100, domain.PaymentCash, "receipts/a.jpg")
		assert.ErrorIs(t, err, service.ErrSaleSettled)
	})

	t.Run("void and delivered sales are not payable", func(t *testing.T) {
		repo := newFakePaymentRepo()
		sales := &fakeSaleFinder{sales: map[uint]domain.Sale{
			1: {ID: 1, TotalCents: 10000, Status: domain.SaleVoid},
			2: {ID: 2, TotalCents: 10000, Status: domain.SaleDelivered},
		}}
		svc := service.NewPaymentService(repo, sales)

		_, err := svc.RegisterPayment(ctx, 1, 100, domain.PaymentCash, "receipts/a.jpg")
		assert.ErrorIs(t, err, service.ErrSaleNotPayable)

		_, err = svc.RegisterPayment(ctx, 2, 100, domain.PaymentCash, "receipts/a.jpg")
		assert.ErrorIs(t, err, service.ErrSaleNotPayable)
	})

	t.Run("unknown sale", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.RegisterPayment(ctx, 99, 100, domain.PaymentCash, "receipts/a.jpg")
		assert.ErrorIs(t, err, service.ErrSaleNotFound)
	})
}

func TestPaymentService_Review(t *testing.T) {
	ctx := context.Background()

	setup := func() (*service.PaymentService, *fakePaymentRepo) {
		repo := newFakePaymentRepo()
		sales := &fakeSaleFinder{sales: map[uint]domain.Sale{
			1: {ID: 1, TotalCents: 10000, PaidCents: 4000, Status: domain.SaleIncomplete},
		}}
		svc := service.NewPaymentService(repo, sales)

		_, err := svc.RegisterPayment(ctx, 1, 3000, domain.PaymentQR, "receipts/a.jpg")
		require.NoError(t, err)

		return svc, repo
	}

	t.Run("approve moves an in-review payment", func(t *testing.T) {
		svc, repo := setup()

		require.NoError(t, svc.ApprovePayment(ctx, 1, 7))
		assert.Equal(t, []uint{1}, repo.approved)
	})

	t.Run("reject moves an in-review payment", func(t *testing.T) {
		svc, repo := setup()

		require.NoError(t, svc.RejectPayment(ctx, 1, 7))
		assert.Equal(t, []uint{1}, repo.rejected)
	})

	t.Run("already reviewed payments cannot be reviewed again", func(t *testing.T) {
		svc, repo := setup()
		require.NoError(t, svc.ApprovePayment(ctx, 1, 7))

		// A second approval loses against the status guard and must not
		// count the amount a second time.
		assert.ErrorIs(t, svc.ApprovePayment(ctx, 1, 7), service.ErrPaymentNotInReview)
		assert.ErrorIs(t, svc.RejectPayment(ctx, 1, 7), service.ErrPaymentNotInReview)
		assert.Equal(t, []uint{1}, repo.approved)
		assert.Empty(t, repo.rejected)
	})

	t.Run("unknown payment", func(t *testing.T) {
		svc, _ := setup()

		assert.ErrorIs(t, svc.ApprovePayment(ctx, 99, 7), service.ErrPaymentNotFound)
		assert.ErrorIs(t, svc.RejectPayment(ctx, 99, 7), service.ErrPaymentNotFound)
	})
}
