package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/repository"
	"github.com/homies-gc/homies-api/internal/service"
)

type fakeSaleRepo struct {
	sales     map[uint]domain.Sale
	nextID    uint
	cancelled []uint
	statuses  map[uint]domain.SaleStatus

	// forceStatusChanged simulates another writer winning the status guard;
	// forceHasPayments simulates a payment approved after the caller's read.
	forceStatusChanged bool
	forceHasPayments   bool
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{
		sales:    make(map[uint]domain.Sale),
		statuses: make(map[uint]domain.SaleStatus),
		nextID:   1,
	}
}

func (r *fakeSaleRepo) Create(_ context.Context, sale domain.Sale) (domain.Sale, error) {
	sale.ID = r.nextID
	r.nextID++
	r.sales[sale.ID] = sale
	return sale, nil
}

func (r *fakeSaleRepo) FindByID(_ context.Context, id uint) (domain.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return domain.Sale{}, service.ErrSaleNotFound
	}
	return s, nil
}

func (r *fakeSaleRepo) FindAll(_ context.Context) ([]domain.Sale, error) {
	out := make([]domain.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSaleRepo) UpdateStatus(_ context.Context, id uint, from, to domain.SaleStatus) error {
	s, ok := r.sales[id]
	if !ok {
		return service.ErrSaleNotFound
	}
	if r.forceStatusChanged || s.Status != from {
		return repository.ErrSaleStatusChanged
	}
	s.Status = to
	r.sales[id] = s
	r.statuses[id] = to
	return nil
}

func (r *fakeSaleRepo) Cancel(_ context.Context, sale domain.Sale) error {
	if r.forceHasPayments {
		return repository.ErrSaleHasPayments
	}
	s := r.sales[sale.ID]
	if r.forceStatusChanged || s.Status == domain.SaleDelivered || s.Status == domain.SaleVoid {
		return repository.ErrSaleStatusChanged
	}
	s.Status = domain.SaleVoid
	r.sales[sale.ID] = s
	r.cancelled = append(r.cancelled, sale.ID)
	return nil
}

type fakeMemberFinder struct {
	members map[uint]domain.Member
}

func (r *fakeMemberFinder) FindByID(_ context.Context, id uint) (domain.Member, error) {
	m, ok := r.members[id]
	if !ok {
		return domain.Member{}, service.ErrMemberNotFound
	}
	return m, nil
}

type fakeProductFinder struct {
	products map[uint]domain.Product
}

func (r *fakeProductFinder) FindByID(_ context.Context, id uint) (domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, service.ErrProductNotFound
	}
	return p, nil
}

type fakeSalePayments struct {
	bySale map[uint][]domain.Payment
}

func (r *fakeSalePayments) FindBySaleID(_ context.Context, saleID uint) ([]domain.Payment, error) {
	return r.bySale[saleID], nil
}

func newSaleService() (*service.SaleService, *fakeSaleRepo, *fakeSalePayments) {
	saleRepo := newFakeSaleRepo()
	members := &fakeMemberFinder{members: map[uint]domain.Member{
		10: {ID: 10, FirstName: "Juan", LastName: "Pérez", Active: true},
	}}
	products := &fakeProductFinder{products: map[uint]domain.Product{
		1: {ID: 1, Name: "Pulsera", PriceCents: 1500, Stock: 3, Sellable: true},
		2: {ID: 2, Name: "Polera", PriceCents: 8000, Stock: 10, Sellable: true},
		3: {ID: 3, Name: "Llavero", PriceCents: 2000, Stock: 5, Sellable: false},
	}}
	payments := &fakeSalePayments{bySale: make(map[uint][]domain.Payment)}

	return service.NewSaleService(saleRepo, members, products, payments), saleRepo, payments
}

func TestSaleService_CreateSale(t *testing.T) {
	ctx := context.Background()

	t.Run("captures historical prices and computes the total", func(t *testing.T) {
		svc, _, _ := newSaleService()

		sale, err := svc.CreateSale(ctx, 10, 7, []domain.SaleItemInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		})

		require.NoError(t, err)
		assert.Equal(t, domain.SalePendingPayment, sale.Status)
		assert.Equal(t, int64(2*1500+8000), sale.TotalCents)
		require.Len(t, sale.Items, 2)
		assert.Equal(t, int64(1500), sale.Items[0].UnitPriceCents)
		assert.Equal(t, int64(3000), sale.Items[0].SubtotalCents)
	})

	t.Run("requires a buyer", func(t *testing.T) {
		svc, _, _ := newSaleService()

		_, err := svc.CreateSale(ctx, 0, 7, []domain.SaleItemInput{{ProductID: 1, Quantity: 1}})
		assert.ErrorIs(t, err, service.ErrNoBuyer)
	})

	t.Run("requires a non-empty cart", func(t *testing.T) {
		svc, _, _ := newSaleService()

		_, err := svc.CreateSale(ctx, 10, 7, nil)
		assert.ErrorIs(t, err, service.ErrEmptyCart)
	})

	t.Run("unknown buyer", func(t *testing.T) {
		svc, _, _ := newSaleService()

		_, err := svc.CreateSale(ctx, 99, 7, []domain.SaleItemInput{{ProductID: 1, Quantity: 1}})
		assert.ErrorIs(t, err, service.ErrMemberNotFound)
	})

	t.Run("quantity above stock names the product and its stock", func(t *testing.T) {
		svc, repo, _ := newSaleService()

		_, err := svc.CreateSale(ctx, 10, 7, []domain.SaleItemInput{{ProductID: 1, Quantity: 4}})

		require.ErrorIs(t, err, service.ErrInsufficientStock)
		assert.Contains(t, err.Error(), "Pulsera")
		assert.Contains(t, err.Error(), "3")
		assert.Empty(t, repo.sales)
	})

	t.Run("non-sellable products are rejected", func(t *testing.T) {
		svc, _, _ := newSaleService()

		_, err := svc.CreateSale(ctx, 10, 7, []domain.SaleItemInput{{ProductID: 3, Quantity: 1}})
		assert.ErrorIs(t, err, service.ErrProductNotSellable)
	})
}

func TestSaleService_DeliverSale(t *testing.T) {
	ctx := context.Background()

	t.Run("only paid sales can be delivered", func(t *testing.T) {
		svc, repo, _ := newSaleService()
		repo.sales[1] = domain.Sale{ID: 1, Status: domain.SaleIncomplete}

		assert.ErrorIs(t, svc.DeliverSale(ctx, 1), service.ErrSaleNotPaid)
	})

	t.Run("paid sale moves to delivered", func(t *testing.T) {
		svc, repo, _ := newSaleService()
		repo.sales[1] = domain.Sale{ID: 1, Status: domain.SalePaid}

		require.NoError(t, svc.DeliverSale(ctx, 1))
		assert.Equal(t, domain.SaleDelivered, repo.statuses[1])
	})

	t.Run("losing the status guard surfaces as not paid", func(t *testing.T) {
		svc, repo, _ := newSaleService()
		repo.sales[1] = domain.Sale{ID: 1, Status: domain.SalePaid}
		repo.forceStatusChanged = true

		assert.ErrorIs(t, svc.DeliverSale(ctx, 1), service.ErrSaleNotPaid)
	})
}

func TestSaleService_CancelSale(t *testing.T) {
	ctx := context.Background()

	t.Run("voids a pending sale", func(t *testing.T) {
		svc, repo, _ := newSaleService()
		repo.sales[1] = domain.Sale{ID: 1, Status: domain.SalePendingPayment}

		require.NoError(t, svc.CancelSale(ctx, 1))
		assert.Equal(t, []uint{1}, repo.cancelled)
	})

	t.Run("refused when an approved payment exists", func(t *testing.T) {
		svc, repo, payments := newSaleService()
		repo.sales[1] = domain.Sale{ID: 1, Status: domain.SaleIncomplete}
		payments.bySale[1] = []domain.Payment{{SaleID: 1, AmountCents: 100, Status: domain.PaymentApproved}}

		assert.ErrorIs(t, svc.CancelSale(ctx, 1), service.ErrSaleHasPayments)
		assert.Empty(t, repo.cancelled)
	})

	t.Run("in-review payments do not block cancellation", func(t *testing.T) {
		svc, repo, payments := newSaleService()
		repo.sales[1] = domain.Sale{ID: 1, Status: domain.SaleIncomplete}
		payments.bySale[1] = []domain.Payment{{SaleID: 1, AmountCents: 100, Status: domain.PaymentInReview}}

		require.NoError(t, svc.CancelSale(ctx, 1))
	})

	t.Run("payment approved after the read still blocks the void", func(t *testing.T) {
		svc, repo, _ := newSaleService()
		repo.sales[1] = domain.Sale{ID: 1, Status: domain.SaleIncomplete}
		repo.forceHasPayments = true

		assert.ErrorIs(t, svc.CancelSale(ctx, 1), service.ErrSaleHasPayments)
		assert.Empty(t, repo.cancelled)
	})

	t.Run("delivered and void sales cannot be cancelled", func(t *testing.T) {
		svc, repo, _ := newSaleService()
		repo.sales[1] = domain.Sale{ID: 1, Status: domain.SaleDelivered}
		repo.sales[2] = domain.Sale{ID: 2, Status: domain.SaleVoid}

		assert.ErrorIs(t, svc.CancelSale(ctx, 1), service.ErrSaleAlreadyResolved)
		assert.ErrorIs(t, svc.CancelSale(ctx, 2), service.ErrSaleAlreadyResolved)
	})
}

func TestSaleService_GetSaleReconciliation(t *testing.T) {
	ctx := context.Background()

	svc, repo, payments := newSaleService()
	repo.sales[1] = domain.Sale{ID: 1, TotalCents: 10000, PaidCents: 4000, Status: domain.SaleIncomplete}
	payments.bySale[1] = []domain.Payment{
		{SaleID: 1, AmountCents: 5000, Status: domain.PaymentInReview},
		{SaleID: 1, AmountCents: 4000, Status: domain.PaymentApproved},
	}

	_, rec, err := svc.GetSaleReconciliation(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(5000), rec.InReviewCents)
	assert.Equal(t, int64(1000), rec.RemainingCents())
}
