package repository

import (
	"context"
	"fmt"

	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/repository/dao"
)

var (
	ErrProductNotFound   = dao.ErrProductNotFound
	ErrInsufficientStock = dao.ErrInsufficientStock
)

type ProductDAO interface {
	Insert(ctx context.Context, product dao.Product) (dao.Product, error)
	Update(ctx context.Context, product dao.Product) (dao.Product, error)
	FindByID(ctx context.Context, id uint) (dao.Product, error)
	FindAll(ctx context.Context) ([]dao.Product, error)
	SetSellable(ctx context.Context, id uint, sellable bool) error
}

type ProductRepository struct {
	dao ProductDAO
}

func NewProductRepository(dao ProductDAO) *ProductRepository {
	return &ProductRepository{
		dao: dao,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(product))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(product))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (domain.Product, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	products := make([]domain.Product, 0, len(found))
	for _, p := range found {
		products = append(products, r.daoToDomain(p))
	}

	return products, nil
}

func (r *ProductRepository) SetSellable(ctx context.Context, id uint, sellable bool) error {
	if err := r.dao.SetSellable(ctx, id, sellable); err != nil {
		return fmt.Errorf("r.dao.SetSellable -> %w", err)
	}

	return nil
}

func (r *ProductRepository) domainToDAO(p domain.Product) dao.Product {
	return dao.Product{
		ID:         p.ID,
		Name:       p.Name,
		Type:       string(p.Type),
		PriceCents: p.PriceCents,
		Stock:      p.Stock,
		Sellable:   p.Sellable,
		PhotoPath:  p.PhotoPath,
	}
}

func (r *ProductRepository) daoToDomain(p dao.Product) domain.Product {
	return domain.Product{
		ID:         p.ID,
		Name:       p.Name,
		Type:       domain.ProductType(p.Type),
		PriceCents: p.PriceCents,
		Stock:      p.Stock,
		Sellable:   p.Sellable,
		PhotoPath:  p.PhotoPath,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
