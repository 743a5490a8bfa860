package repository

import (
	"context"
	"fmt"

	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/repository/dao"
)

var (
	ErrMemberCIExists = dao.ErrMemberCIExists
	ErrMemberNotFound = dao.ErrMemberNotFound
)

type MemberDAO interface {
	Insert(ctx context.Context, member dao.Member) (dao.Member, error)
	Update(ctx context.Context, member dao.Member) (dao.Member, error)
	FindByID(ctx context.Context, id uint) (dao.Member, error)
	FindByCredentialUUID(ctx context.Context, uuid string) (dao.Member, error)
	FindAll(ctx context.Context) ([]dao.Member, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

type MemberRepository struct {
	dao MemberDAO
}

func NewMemberRepository(dao MemberDAO) *MemberRepository {
	return &MemberRepository{
		dao: dao,
	}
}

func (r *MemberRepository) Create(ctx context.Context, member domain.Member) (domain.Member, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(member))
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *MemberRepository) Update(ctx context.Context, member domain.Member) (domain.Member, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(member))
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id uint) (domain.Member, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *MemberRepository) FindByCredentialUUID(ctx context.Context, uuid string) (domain.Member, error) {
	found, err := r.dao.FindByCredentialUUID(ctx, uuid)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.FindByCredentialUUID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *MemberRepository) FindAll(ctx context.Context) ([]domain.Member, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	members := make([]domain.Member, 0, len(found))
	for _, m := range found {
		members = append(members, r.daoToDomain(m))
	}

	return members, nil
}

func (r *MemberRepository) SetActive(ctx context.Context, id uint, active bool) error {
	if err := r.dao.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("r.dao.SetActive -> %w", err)
	}

	return nil
}

func (r *MemberRepository) domainToDAO(m domain.Member) dao.Member {
	return dao.Member{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		CI:             m.CI,
		CIExpedition:   m.CIExpedition,
		BirthDate:      m.BirthDate,
		Phone:          m.Phone,
		PhotoPath:      m.PhotoPath,
		Active:         m.Active,
		CredentialUUID: m.CredentialUUID,
	}
}

func (r *MemberRepository) daoToDomain(m dao.Member) domain.Member {
	return domain.Member{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		CI:             m.CI,
		CIExpedition:   m.CIExpedition,
		BirthDate:      m.BirthDate,
		Phone:          m.Phone,
		PhotoPath:      m.PhotoPath,
		Active:         m.Active,
		CredentialUUID: m.CredentialUUID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
