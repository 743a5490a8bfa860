package repository

import (
	"context"
	"fmt"

	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/repository/dao"
)

var (
	ErrPaymentNotFound    = dao.ErrPaymentNotFound
	ErrPaymentNotInReview = dao.ErrPaymentNotInReview
)

type PaymentDAO interface {
	Insert(ctx context.Context, payment dao.Payment) (dao.Payment, error)
	FindByID(ctx context.Context, id uint) (dao.Payment, error)
	FindBySaleID(ctx context.Context, saleID uint) ([]dao.Payment, error)
	FindAll(ctx context.Context) ([]dao.Payment, error)
	Reject(ctx context.Context, id uint, reviewedBy uint) error
	Approve(ctx context.Context, id uint, reviewedBy uint) error
}

type PaymentRepository struct {
	dao PaymentDAO
}

func NewPaymentRepository(dao PaymentDAO) *PaymentRepository {
	return &PaymentRepository{
		dao: dao,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	created, err := r.dao.Insert(ctx, dao.Payment{
		SaleID:      payment.SaleID,
		AmountCents: payment.AmountCents,
		Method:      string(payment.Method),
		Status:      string(payment.Status),
		ReceiptPath: payment.ReceiptPath,
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uint) (domain.Payment, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *PaymentRepository) FindBySaleID(ctx context.Context, saleID uint) ([]domain.Payment, error) {
	found, err := r.dao.FindBySaleID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySaleID -> %w", err)
	}

	return r.daoListToDomain(found), nil
}

func (r *PaymentRepository) FindAll(ctx context.Context) ([]domain.Payment, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daoListToDomain(found), nil
}

func (r *PaymentRepository) Reject(ctx context.Context, id uint, reviewedBy uint) error {
	if err := r.dao.Reject(ctx, id, reviewedBy); err != nil {
		return fmt.Errorf("r.dao.Reject -> %w", err)
	}

	return nil
}

func (r *PaymentRepository) Approve(ctx context.Context, id uint, reviewedBy uint) error {
	if err := r.dao.Approve(ctx, id, reviewedBy); err != nil {
		return fmt.Errorf("r.dao.Approve -> %w", err)
	}

	return nil
}

func (r *PaymentRepository) daoListToDomain(payments []dao.Payment) []domain.Payment {
	out := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		out = append(out, r.daoToDomain(p))
	}
	return out
}

func (r *PaymentRepository) daoToDomain(p dao.Payment) domain.Payment {
	return domain.Payment{
		ID:          p.ID,
		SaleID:      p.SaleID,
		AmountCents: p.AmountCents,
		Method:      domain.PaymentMethod(p.Method),
		Status:      domain.PaymentStatus(p.Status),
		ReceiptPath: p.ReceiptPath,
		ReviewedBy:  p.ReviewedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
