package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrMemberCIExists = errors.New("member with this CI already exists")
	ErrMemberNotFound = errors.New("member not found")
)

type Member struct {
	ID uint `gorm:"primaryKey"`

	FirstName      string `gorm:"not null"`
	LastName       string `gorm:"not null"`
	CI             string `gorm:"not null;uniqueIndex:idx_members_ci_expedition"`
	CIExpedition   string `gorm:"not null;uniqueIndex:idx_members_ci_expedition"`
	BirthDate      *time.Time
	Phone          string
	PhotoPath      string
	Active         bool   `gorm:"not null;default:true"`
	CredentialUUID string `gorm:"unique;not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type MemberDAO struct {
	db *gorm.DB
}

func NewMemberDAO(db *gorm.DB) *MemberDAO {
	return &MemberDAO{
		db: db,
	}
}

func (d *MemberDAO) Insert(ctx context.Context, member Member) (Member, error) {
	result := d.db.WithContext(ctx).Create(&member)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Member{}, ErrMemberCIExists
		}

		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) Update(ctx context.Context, member Member) (Member, error) {
	result := d.db.WithContext(ctx).Save(&member)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Member{}, ErrMemberCIExists
		}

		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) FindByID(ctx context.Context, id uint) (Member, error) {
	var member Member

	result := d.db.WithContext(ctx).First(&member, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Member{}, ErrMemberNotFound
		}

		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) FindByCredentialUUID(ctx context.Context, uuid string) (Member, error) {
	var member Member

	result := d.db.WithContext(ctx).First(&member, "credential_uuid = ?", uuid)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Member{}, ErrMemberNotFound
		}

		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) FindAll(ctx context.Context) ([]Member, error) {
	var members []Member

	result := d.db.WithContext(ctx).Order("last_name, first_name").Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}

func (d *MemberDAO) SetActive(ctx context.Context, id uint, active bool) error {
	result := d.db.WithContext(ctx).Model(&Member{}).Where("id = ?", id).Update("active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}
