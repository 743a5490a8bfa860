package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Product struct {
	ID uint `gorm:"primaryKey"`

	Name       string `gorm:"not null"`
	Type       string `gorm:"not null"` // "bracelet", "clothing", "souvenir" or "other"
	PriceCents int64  `gorm:"not null"`
	Stock      int    `gorm:"not null;default:0"`
	Sellable   bool   `gorm:"not null;default:true"`
	PhotoPath  string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ProductDAO struct {
	db *gorm.DB
}

func NewProductDAO(db *gorm.DB) *ProductDAO {
	return &ProductDAO{
		db: db,
	}
}

func (d *ProductDAO) Insert(ctx context.Context, product Product) (Product, error) {
	result := d.db.WithContext(ctx).Create(&product)
	if result.Error != nil {
		return Product{}, result.Error
	}

	return product, nil
}

func (d *ProductDAO) Update(ctx context.Context, product Product) (Product, error) {
	result := d.db.WithContext(ctx).Save(&product)
	if result.Error != nil {
		return Product{}, result.Error
	}

	return product, nil
}

func (d *ProductDAO) FindByID(ctx context.Context, id uint) (Product, error) {
	var product Product

	result := d.db.WithContext(ctx).First(&product, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Product{}, ErrProductNotFound
		}

		return Product{}, result.Error
	}

	return product, nil
}

func (d *ProductDAO) FindAll(ctx context.Context) ([]Product, error) {
	var products []Product

	result := d.db.WithContext(ctx).Order("name").Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

func (d *ProductDAO) SetSellable(ctx context.Context, id uint, sellable bool) error {
	result := d.db.WithContext(ctx).Model(&Product{}).Where("id = ?", id).Update("sellable", sellable)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// IncrementStock adjusts stock by delta inside the caller's transaction (or
// the base session). A negative delta that would drop stock below zero
// affects no rows and returns ErrInsufficientStock.
func (d *ProductDAO) IncrementStock(ctx context.Context, tx *gorm.DB, id uint, delta int) error {
	if tx == nil {
		tx = d.db
	}

	result := tx.WithContext(ctx).Model(&Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}

	return nil
}
