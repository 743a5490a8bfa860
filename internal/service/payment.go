package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/repository"
)

var (
	ErrPaymentNotFound      = repository.ErrPaymentNotFound
	ErrPaymentNotInReview   = repository.ErrPaymentNotInReview
	ErrSaleSettled          = errors.New("sale has no outstanding balance")
	ErrSaleNotPayable       = errors.New("sale does not accept payments")
	ErrReceiptRequired      = errors.New("a receipt attachment is required")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// ErrAmountExceedsRemaining names the actual remaining amount so the caller
// can show a precise message.
type ErrAmountExceedsRemaining struct {
	RemainingCents int64
}

func (e ErrAmountExceedsRemaining) Error() string {
	return fmt.Sprintf("amount exceeds the remaining balance of %s", domain.FormatCents(e.RemainingCents))
}

type PaymentRepository interface {
	Create(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	FindByID(ctx context.Context, id uint) (domain.Payment, error)
	FindBySaleID(ctx context.Context, saleID uint) ([]domain.Payment, error)
	FindAll(ctx context.Context) ([]domain.Payment, error)
	Reject(ctx context.Context, id uint, reviewedBy uint) error
	Approve(ctx context.Context, id uint, reviewedBy uint) error
}

type PaymentSaleRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Sale, error)
}

type PaymentService struct {
	repo     PaymentRepository
	saleRepo PaymentSaleRepository
}

func NewPaymentService(repo PaymentRepository, saleRepo PaymentSaleRepository) *PaymentService {
	return &PaymentService{
		repo:     repo,
		saleRepo: saleRepo,
	}
}

// RegisterPayment gates a new payment on the real outstanding balance:
// total minus approved minus still-in-review. The requested amount must fit
// inside it and a receipt is mandatory. The payment enters IN_REVIEW and
// never touches the sale's paid amount here.
func (s *PaymentService) RegisterPayment(ctx context.Context, saleID uint, amountCents int64, method domain.PaymentMethod, receiptPath string) (domain.Payment, error) {
	if receiptPath == "" {
		return domain.Payment{}, ErrReceiptRequired
	}
	if !method.IsValid() {
		return domain.Payment{}, ErrInvalidPaymentMethod
	}
	if amountCents <= 0 {
		return domain.Payment{}, domain.ErrInvalidAmount
	}

	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return domain.Payment{}, ErrSaleNotFound
		}
		return domain.Payment{}, fmt.Errorf("s.saleRepo.FindByID -> %w", err)
	}

	if sale.Status == domain.SaleVoid || sale.Status == domain.SaleDelivered {
		return domain.Payment{}, ErrSaleNotPayable
	}

	payments, err := s.repo.FindBySaleID(ctx, saleID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("s.repo.FindBySaleID -> %w", err)
	}

	rec := domain.Reconcile(sale.TotalCents, sale.PaidCents, payments)
	remaining := rec.RemainingCents()
	if remaining <= 0 {
		return domain.Payment{}, ErrSaleSettled
	}
	if amountCents > remaining {
		return domain.Payment{}, ErrAmountExceedsRemaining{RemainingCents: remaining}
	}

	created, err := s.repo.Create(ctx, domain.Payment{
		SaleID:      saleID,
		AmountCents: amountCents,
		Method:      method,
		Status:      domain.PaymentInReview,
		ReceiptPath: receiptPath,
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, id uint) (domain.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return payment, nil
}

func (s *PaymentService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	payments, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return payments, nil
}

func (s *PaymentService) ListSalePayments(ctx context.Context, saleID uint) ([]domain.Payment, error) {
	payments, err := s.repo.FindBySaleID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindBySaleID -> %w", err)
	}

	return payments, nil
}

// ApprovePayment settles an in-review payment into the sale. The sale moves
// to PAID once the approved total covers it, INCOMPLETE otherwise. The
// IN_REVIEW check is enforced by the storage layer inside the settling
// transaction, so two racing reviews of the same payment cannot both win.
func (s *PaymentService) ApprovePayment(ctx context.Context, paymentID, reviewerID uint) error {
	if err := s.repo.Approve(ctx, paymentID, reviewerID); err != nil {
		return fmt.Errorf("s.repo.Approve -> %w", err)
	}

	return nil
}

func (s *PaymentService) RejectPayment(ctx context.Context, paymentID, reviewerID uint) error {
	if err := s.repo.Reject(ctx, paymentID, reviewerID); err != nil {
		return fmt.Errorf("s.repo.Reject -> %w", err)
	}

	return nil
}
