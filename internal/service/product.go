package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/repository"
)

var (
	ErrProductNotFound    = repository.ErrProductNotFound
	ErrInvalidProductType = errors.New("invalid product type")
)

type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id uint) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	SetSellable(ctx context.Context, id uint, sellable bool) error
}

type ProductService struct {
	repo ProductRepository
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if !product.Type.IsValid() {
		return domain.Product{}, ErrInvalidProductType
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if !product.Type.IsValid() {
		return domain.Product{}, ErrInvalidProductType
	}

	existing, err := s.repo.FindByID(ctx, product.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	// Stock is only mutated by sale creation and cancellation.
	product.Stock = existing.Stock
	product.Sellable = existing.Sellable
	if product.PhotoPath == "" {
		product.PhotoPath = existing.PhotoPath
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return products, nil
}

func (s *ProductService) EnableProduct(ctx context.Context, id uint) error {
	if err := s.repo.SetSellable(ctx, id, true); err != nil {
		return fmt.Errorf("s.repo.SetSellable -> %w", err)
	}
	return nil
}

func (s *ProductService) DisableProduct(ctx context.Context, id uint) error {
	if err := s.repo.SetSellable(ctx, id, false); err != nil {
		return fmt.Errorf("s.repo.SetSellable -> %w", err)
	}
	return nil
}
