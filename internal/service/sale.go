package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/repository"
)

var (
	ErrSaleNotFound        = repository.ErrSaleNotFound
	ErrInsufficientStock   = repository.ErrInsufficientStock
	ErrEmptyCart           = domain.ErrEmptyCart
	ErrNoBuyer             = errors.New("a buyer must be selected")
	ErrProductNotSellable  = errors.New("product is not sellable")
	ErrSaleNotPaid         = errors.New("sale is not fully paid yet")
	ErrSaleHasPayments     = errors.New("sale has approved payments and cannot be cancelled")
	ErrSaleAlreadyResolved = errors.New("sale is already delivered or void")
)

type SaleRepository interface {
	Create(ctx context.Context, sale domain.Sale) (domain.Sale, error)
	FindByID(ctx context.Context, id uint) (domain.Sale, error)
	FindAll(ctx context.Context) ([]domain.Sale, error)
	UpdateStatus(ctx context.Context, id uint, from, to domain.SaleStatus) error
	Cancel(ctx context.Context, sale domain.Sale) error
}

type SaleMemberRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Member, error)
}

type SaleProductRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Product, error)
}

type SalePaymentRepository interface {
	FindBySaleID(ctx context.Context, saleID uint) ([]domain.Payment, error)
}

type SaleService struct {
	repo        SaleRepository
	memberRepo  SaleMemberRepository
	productRepo SaleProductRepository
	paymentRepo SalePaymentRepository
}

func NewSaleService(repo SaleRepository, memberRepo SaleMemberRepository, productRepo SaleProductRepository, paymentRepo SalePaymentRepository) *SaleService {
	return &SaleService{
		repo:        repo,
		memberRepo:  memberRepo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
	}
}

// CreateSale turns an order intent into a persisted sale. Quantities are
// re-validated against authoritative stock inside the insert transaction;
// prices are captured from the catalog at this moment and never change.
func (s *SaleService) CreateSale(ctx context.Context, buyerID, sellerID uint, items []domain.SaleItemInput) (domain.Sale, error) {
	if buyerID == 0 {
		return domain.Sale{}, ErrNoBuyer
	}
	if len(items) == 0 {
		return domain.Sale{}, ErrEmptyCart
	}

	if _, err := s.memberRepo.FindByID(ctx, buyerID); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return domain.Sale{}, ErrMemberNotFound
		}
		return domain.Sale{}, fmt.Errorf("s.memberRepo.FindByID -> %w", err)
	}

	sale := domain.Sale{
		BuyerID:  buyerID,
		SellerID: sellerID,
		Status:   domain.SalePendingPayment,
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return domain.Sale{}, fmt.Errorf("%w: quantity must be positive", ErrInsufficientStock)
		}

		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domain.Sale{}, ErrProductNotFound
			}
			return domain.Sale{}, fmt.Errorf("s.productRepo.FindByID -> %w", err)
		}
		if !product.Sellable {
			return domain.Sale{}, ErrProductNotSellable
		}
		if item.Quantity > product.Stock {
			return domain.Sale{}, fmt.Errorf("%w: %q has %d units left", ErrInsufficientStock, product.Name, product.Stock)
		}

		subtotal := product.PriceCents * int64(item.Quantity)
		sale.Items = append(sale.Items, domain.SaleItem{
			ProductID:      product.ID,
			ProductName:    product.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: product.PriceCents,
			SubtotalCents:  subtotal,
		})
		sale.TotalCents += subtotal
	}

	created, err := s.repo.Create(ctx, sale)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SaleService) GetSale(ctx context.Context, id uint) (domain.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return sale, nil
}

func (s *SaleService) ListSales(ctx context.Context) ([]domain.Sale, error) {
	sales, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return sales, nil
}

// GetSaleReconciliation recomputes the derived payment state of a sale.
func (s *SaleService) GetSaleReconciliation(ctx context.Context, id uint) (domain.Sale, domain.Reconciliation, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Sale{}, domain.Reconciliation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	payments, err := s.paymentRepo.FindBySaleID(ctx, id)
	if err != nil {
		return domain.Sale{}, domain.Reconciliation{}, fmt.Errorf("s.paymentRepo.FindBySaleID -> %w", err)
	}

	return sale, domain.Reconcile(sale.TotalCents, sale.PaidCents, payments), nil
}

func (s *SaleService) DeliverSale(ctx context.Context, id uint) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !sale.CanDeliver() {
		return ErrSaleNotPaid
	}

	// The PAID guard travels into the UPDATE so a racing cancel or a second
	// deliver cannot flip the status twice.
	if err := s.repo.UpdateStatus(ctx, id, domain.SalePaid, domain.SaleDelivered); err != nil {
		if errors.Is(err, repository.ErrSaleStatusChanged) {
			return ErrSaleNotPaid
		}
		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return nil
}

// CancelSale voids a sale, restoring stock and rejecting in-review payments.
// A sale with approved payments cannot be voided.
func (s *SaleService) CancelSale(ctx context.Context, id uint) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if sale.Status == domain.SaleDelivered || sale.Status == domain.SaleVoid {
		return ErrSaleAlreadyResolved
	}

	payments, err := s.paymentRepo.FindBySaleID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.paymentRepo.FindBySaleID -> %w", err)
	}

	hasApproved := false
	for _, p := range payments {
		if p.Status == domain.PaymentApproved {
			hasApproved = true
			break
		}
	}

	if !sale.CanCancel(hasApproved) {
		return ErrSaleHasPayments
	}

	// Cancel re-checks both guards inside its transaction; a payment
	// approved after the read above still blocks the void.
	if err := s.repo.Cancel(ctx, sale); err != nil {
		switch {
		case errors.Is(err, repository.ErrSaleHasPayments):
			return ErrSaleHasPayments
		case errors.Is(err, repository.ErrSaleStatusChanged):
			return ErrSaleAlreadyResolved
		}
		return fmt.Errorf("s.repo.Cancel -> %w", err)
	}

	return nil
}
