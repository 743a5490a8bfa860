package repository

import (
	"context"
	"fmt"

	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/repository/dao"
)

var (
	ErrSaleNotFound      = dao.ErrSaleNotFound
	ErrSaleStatusChanged = dao.ErrSaleStatusChanged
	ErrSaleHasPayments   = dao.ErrSaleHasPayments
)

type SaleDAO interface {
	Insert(ctx context.Context, sale dao.Sale) (dao.Sale, error)
	FindByID(ctx context.Context, id uint) (dao.Sale, error)
	FindAll(ctx context.Context) ([]dao.Sale, error)
	UpdateStatus(ctx context.Context, id uint, from, to string) error
	Cancel(ctx context.Context, sale dao.Sale) error
}

type SaleRepository struct {
	dao SaleDAO
}

func NewSaleRepository(dao SaleDAO) *SaleRepository {
	return &SaleRepository{
		dao: dao,
	}
}

func (r *SaleRepository) Create(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	items := make([]dao.SaleItem, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, dao.SaleItem{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			SubtotalCents:  item.SubtotalCents,
		})
	}

	created, err := r.dao.Insert(ctx, dao.Sale{
		BuyerID:    sale.BuyerID,
		SellerID:   sale.SellerID,
		TotalCents: sale.TotalCents,
		PaidCents:  sale.PaidCents,
		Status:     string(sale.Status),
		Items:      items,
	})
	if err != nil {
		return domain.Sale{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SaleRepository) FindByID(ctx context.Context, id uint) (domain.Sale, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SaleRepository) FindAll(ctx context.Context) ([]domain.Sale, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	sales := make([]domain.Sale, 0, len(found))
	for _, s := range found {
		sales = append(sales, r.daoToDomain(s))
	}

	return sales, nil
}

func (r *SaleRepository) UpdateStatus(ctx context.Context, id uint, from, to domain.SaleStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(from), string(to)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *SaleRepository) Cancel(ctx context.Context, sale domain.Sale) error {
	daoSale := dao.Sale{ID: sale.ID}
	for _, item := range sale.Items {
		daoSale.Items = append(daoSale.Items, dao.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if err := r.dao.Cancel(ctx, daoSale); err != nil {
		return fmt.Errorf("r.dao.Cancel -> %w", err)
	}

	return nil
}

func (r *SaleRepository) daoToDomain(s dao.Sale) domain.Sale {
	items := make([]domain.SaleItem, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, domain.SaleItem{
			ID:             item.ID,
			SaleID:         item.SaleID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			SubtotalCents:  item.SubtotalCents,
		})
	}

	buyerName := ""
	if s.Buyer.ID != 0 {
		buyerName = s.Buyer.FirstName + " " + s.Buyer.LastName
	}
	sellerName := s.Seller.Name

	return domain.Sale{
		ID:         s.ID,
		BuyerID:    s.BuyerID,
		BuyerName:  buyerName,
		SellerID:   s.SellerID,
		SellerName: sellerName,
		TotalCents: s.TotalCents,
		PaidCents:  s.PaidCents,
		Status:     domain.SaleStatus(s.Status),
		Items:      items,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
