package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrSaleNotFound      = errors.New("sale not found")
	ErrSaleStatusChanged = errors.New("sale status changed concurrently")
	ErrSaleHasPayments   = errors.New("sale has approved payments")
)

type Sale struct {
	ID uint `gorm:"primaryKey"`

	BuyerID    uint   `gorm:"not null"`
	Buyer      Member `gorm:"foreignKey:BuyerID"`
	SellerID   uint   `gorm:"not null"`
	Seller     User   `gorm:"foreignKey:SellerID"`
	TotalCents int64  `gorm:"not null"`
	PaidCents  int64  `gorm:"not null;default:0"`
	Status     string `gorm:"not null"`

	Items []SaleItem `gorm:"foreignKey:SaleID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SaleItem struct {
	ID uint `gorm:"primaryKey"`

	SaleID         uint   `gorm:"not null;index"`
	ProductID      uint   `gorm:"not null"`
	ProductName    string `gorm:"not null"`
	Quantity       int    `gorm:"not null"`
	UnitPriceCents int64  `gorm:"not null"`
	SubtotalCents  int64  `gorm:"not null"`
}

type SaleDAO struct {
	db         *gorm.DB
	productDAO *ProductDAO
}

func NewSaleDAO(db *gorm.DB) *SaleDAO {
	return &SaleDAO{
		db:         db,
		productDAO: NewProductDAO(db),
	}
}

// Insert creates the sale and its items and decrements product stock in a
// single transaction. The stock guard makes the database the arbiter of
// concurrent sales; losing a race surfaces as ErrInsufficientStock.
func (d *SaleDAO) Insert(ctx context.Context, sale Sale) (Sale, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range sale.Items {
			if err := d.productDAO.IncrementStock(ctx, tx, item.ProductID, -item.Quantity); err != nil {
				return err
			}
		}

		return tx.Create(&sale).Error
	})
	if err != nil {
		return Sale{}, err
	}

	return sale, nil
}

func (d *SaleDAO) FindByID(ctx context.Context, id uint) (Sale, error) {
	var sale Sale

	result := d.db.WithContext(ctx).
		Preload("Items").
		Preload("Buyer").
		Preload("Seller").
		First(&sale, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Sale{}, ErrSaleNotFound
		}

		return Sale{}, result.Error
	}

	return sale, nil
}

func (d *SaleDAO) FindAll(ctx context.Context) ([]Sale, error) {
	var sales []Sale

	result := d.db.WithContext(ctx).
		Preload("Items").
		Preload("Buyer").
		Preload("Seller").
		Order("created_at DESC").
		Find(&sales)
	if result.Error != nil {
		return nil, result.Error
	}

	return sales, nil
}

// UpdateStatus moves the sale from one status to another. The guard on the
// previous status turns a racing state change into ErrSaleStatusChanged
// instead of silently overwriting it.
func (d *SaleDAO) UpdateStatus(ctx context.Context, id uint, from, to string) error {
	result := d.db.WithContext(ctx).Model(&Sale{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var sale Sale
		if err := d.db.WithContext(ctx).First(&sale, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}

		return ErrSaleStatusChanged
	}

	return nil
}

func (d *SaleDAO) UpdatePaid(ctx context.Context, id uint, paidCents int64, status string) error {
	result := d.db.WithContext(ctx).Model(&Sale{}).Where("id = ?", id).
		Updates(map[string]any{"paid_cents": paidCents, "status": status})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSaleNotFound
	}

	return nil
}

// Cancel voids the sale, restores the stock of its items and rejects any
// payments still in review, atomically. The approved-payment count and the
// resolved-status guard are re-checked inside the transaction so a payment
// approved or a delivery completed after the caller's read still blocks
// the void.
func (d *SaleDAO) Cancel(ctx context.Context, sale Sale) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var approved int64
		err := tx.Model(&Payment{}).
			Where("sale_id = ? AND status = ?", sale.ID, "APPROVED").
			Count(&approved).Error
		if err != nil {
			return err
		}
		if approved > 0 {
			return ErrSaleHasPayments
		}

		for _, item := range sale.Items {
			if err := d.productDAO.IncrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		err = tx.Model(&Payment{}).
			Where("sale_id = ? AND status = ?", sale.ID, "IN_REVIEW").
			Update("status", "REJECTED").Error
		if err != nil {
			return err
		}

		result := tx.Model(&Sale{}).
			Where("id = ? AND status NOT IN ?", sale.ID, []string{"DELIVERED", "VOID"}).
			Update("status", "VOID")
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSaleStatusChanged
		}

		return nil
	})
}
