package repository

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/sandeepkv93/fraudguard/internal/domain"
	"github.com/sandeepkv93/fraudguard/internal/observability"
)

type EnrolledCardStore interface {
	Save(ctx context.Context, card *domain.EnrolledCard) error
	ListByAccount(ctx context.Context, accountID string) ([]domain.EnrolledCard, error)
}

type InMemoryEnrolledCardStore struct {
	mu        sync.RWMutex
	byAccount map[string][]domain.EnrolledCard
}

func NewInMemoryEnrolledCardStore() *InMemoryEnrolledCardStore {
	return &InMemoryEnrolledCardStore{byAccount: map[string][]domain.EnrolledCard{}}
}

func (s *InMemoryEnrolledCardStore) Save(ctx context.Context, card *domain.EnrolledCard) error {
	s.mu.Lock()
	s.byAccount[card.AccountID] = append(s.byAccount[card.AccountID], *card)
	s.mu.Unlock()
	observability.RecordRepositoryOperation(ctx, "enrolled_card", "save", "success")
	return nil
}

func (s *InMemoryEnrolledCardStore) ListByAccount(ctx context.Context, accountID string) ([]domain.EnrolledCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cards := s.byAccount[accountID]
	out := make([]domain.EnrolledCard, len(cards))
	copy(out, cards)
	observability.RecordRepositoryOperation(ctx, "enrolled_card", "list_by_account", "success")
	return out, nil
}

type GormEnrolledCardStore struct{ db *gorm.DB }

func NewGormEnrolledCardStore(db *gorm.DB) EnrolledCardStore { return &GormEnrolledCardStore{db: db} }

func (r *GormEnrolledCardStore) Save(ctx context.Context, card *domain.EnrolledCard) error {
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		observability.RecordRepositoryOperation(ctx, "enrolled_card", "save", "error")
		return err
	}
	observability.RecordRepositoryOperation(ctx, "enrolled_card", "save", "success")
	return nil
}

func (r *GormEnrolledCardStore) ListByAccount(ctx context.Context, accountID string) ([]domain.EnrolledCard, error) {
	cards := []domain.EnrolledCard{}
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Order("enrolled_at asc").Find(&cards).Error; err != nil {
		observability.RecordRepositoryOperation(ctx, "enrolled_card", "list_by_account", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "enrolled_card", "list_by_account", "success")
	return cards, nil
}
