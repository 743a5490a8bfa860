package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/repository"
)

var (
	ErrMemberCIExists = repository.ErrMemberCIExists
	ErrMemberNotFound = repository.ErrMemberNotFound
)

type MemberRepository interface {
	Create(ctx context.Context, member domain.Member) (domain.Member, error)
	Update(ctx context.Context, member domain.Member) (domain.Member, error)
	FindByID(ctx context.Context, id uint) (domain.Member, error)
	FindByCredentialUUID(ctx context.Context, uuid string) (domain.Member, error)
	FindAll(ctx context.Context) ([]domain.Member, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

// CredentialCache caches public credential lookups. Invalidation is
// best-effort: a failed delete is logged, never surfaced.
type CredentialCache interface {
	Get(ctx context.Context, uuid string, out any) (bool, error)
	Set(ctx context.Context, uuid string, value any) error
	Invalidate(ctx context.Context, uuid string) error
}

type MemberService struct {
	repo  MemberRepository
	cache CredentialCache
}

func NewMemberService(repo MemberRepository, cache CredentialCache) *MemberService {
	return &MemberService{
		repo:  repo,
		cache: cache,
	}
}

func (s *MemberService) CreateMember(ctx context.Context, member domain.Member) (domain.Member, error) {
	member.Active = true
	member.CredentialUUID = uuid.NewString()

	created, err := s.repo.Create(ctx, member)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *MemberService) UpdateMember(ctx context.Context, member domain.Member) (domain.Member, error) {
	existing, err := s.repo.FindByID(ctx, member.ID)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	// The credential UUID is stable for the life of the member.
	member.CredentialUUID = existing.CredentialUUID
	member.Active = existing.Active
	if member.PhotoPath == "" {
		member.PhotoPath = existing.PhotoPath
	}

	updated, err := s.repo.Update(ctx, member)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.invalidateCredential(ctx, updated.CredentialUUID)

	return updated, nil
}

func (s *MemberService) GetMember(ctx context.Context, id uint) (domain.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return member, nil
}

// ListMembers filters by free text across names and CI, case-insensitively,
// and optionally by active state.
func (s *MemberService) ListMembers(ctx context.Context, search string, active *bool) ([]domain.Member, error) {
	members, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(search))
	filtered := make([]domain.Member, 0, len(members))
	for _, m := range members {
		if active != nil && m.Active != *active {
			continue
		}
		if q != "" {
			haystack := strings.ToLower(m.FullName() + " " + m.CI)
			if !strings.Contains(haystack, q) {
				continue
			}
		}
		filtered = append(filtered, m)
	}

	return filtered, nil
}

func (s *MemberService) DeactivateMember(ctx context.Context, id uint) error {
	return s.setActive(ctx, id, false)
}

func (s *MemberService) ReactivateMember(ctx context.Context, id uint) error {
	return s.setActive(ctx, id, true)
}

func (s *MemberService) setActive(ctx context.Context, id uint, active bool) error {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("s.repo.SetActive -> %w", err)
	}

	s.invalidateCredential(ctx, member.CredentialUUID)

	return nil
}

// VerifyCredential resolves the public credential for the unauthenticated
// verification route, serving from cache when possible.
func (s *MemberService) VerifyCredential(ctx context.Context, credentialUUID string) (domain.PublicCredential, error) {
	var cached domain.PublicCredential
	if s.cache != nil {
		hit, err := s.cache.Get(ctx, credentialUUID, &cached)
		if err != nil {
			zap.L().Warn("credential cache read failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	member, err := s.repo.FindByCredentialUUID(ctx, credentialUUID)
	if err != nil {
		return domain.PublicCredential{}, fmt.Errorf("s.repo.FindByCredentialUUID -> %w", err)
	}

	public := member.Public()
	if s.cache != nil {
		if err := s.cache.Set(ctx, credentialUUID, public); err != nil {
			zap.L().Warn("credential cache write failed", zap.Error(err))
		}
	}

	return public, nil
}

func (s *MemberService) invalidateCredential(ctx context.Context, credentialUUID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, credentialUUID); err != nil {
		zap.L().Warn("credential cache invalidation failed",
			zap.String("uuid", credentialUUID), zap.Error(err))
	}
}
