package repository

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/sandeepkv93/fraudguard/internal/domain"
	"github.com/sandeepkv93/fraudguard/internal/observability"
)

// CredentialStore holds accounts. Email lookups are exact; no case folding is applied.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// Create inserts the account or returns ErrEmailTaken without writing anything.
	Create(ctx context.Context, account *domain.Account) error
	List(ctx context.Context) ([]domain.Account, error)
}

type InMemoryCredentialStore struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Account
	byEmail map[string]string
	order   []string
}

func NewInMemoryCredentialStore() *InMemoryCredentialStore {
	return &InMemoryCredentialStore{
		byID:    map[string]*domain.Account{},
		byEmail: map[string]string{},
	}
}

func (s *InMemoryCredentialStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		observability.RecordRepositoryOperation(ctx, "account", "find_by_email", "not_found")
		return nil, ErrAccountNotFound
	}
	a := *s.byID[id]
	observability.RecordRepositoryOperation(ctx, "account", "find_by_email", "success")
	return &a, nil
}

func (s *InMemoryCredentialStore) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.byID[id]
	if !ok {
		observability.RecordRepositoryOperation(ctx, "account", "find_by_id", "not_found")
		return nil, ErrAccountNotFound
	}
	a := *acc
	observability.RecordRepositoryOperation(ctx, "account", "find_by_id", "success")
	return &a, nil
}

func (s *InMemoryCredentialStore) Create(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[account.Email]; exists {
		observability.RecordRepositoryOperation(ctx, "account", "create", "conflict")
		return ErrEmailTaken
	}
	stored := *account
	s.byID[stored.ID] = &stored
	s.byEmail[stored.Email] = stored.ID
	s.order = append(s.order, stored.ID)
	observability.RecordRepositoryOperation(ctx, "account", "create", "success")
	return nil
}

func (s *InMemoryCredentialStore) List(ctx context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.byID[id])
	}
	observability.RecordRepositoryOperation(ctx, "account", "list", "success")
	return out, nil
}

type GormCredentialStore struct{ db *gorm.DB }

func NewGormCredentialStore(db *gorm.DB) CredentialStore { return &GormCredentialStore{db: db} }

func (r *GormCredentialStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var a domain.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, r.lookupError(ctx, "find_by_email", err)
	}
	observability.RecordRepositoryOperation(ctx, "account", "find_by_email", "success")
	return &a, nil
}

func (r *GormCredentialStore) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	var a domain.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, r.lookupError(ctx, "find_by_id", err)
	}
	observability.RecordRepositoryOperation(ctx, "account", "find_by_id", "success")
	return &a, nil
}

func (r *GormCredentialStore) Create(ctx context.Context, account *domain.Account) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Account{}).Where("email = ?", account.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		return tx.Create(account).Error
	})
	switch {
	case err == nil:
		observability.RecordRepositoryOperation(ctx, "account", "create", "success")
		return nil
	case errors.Is(err, ErrEmailTaken), errors.Is(err, gorm.ErrDuplicatedKey):
		// the unique index backs up the count check when two creates race
		observability.RecordRepositoryOperation(ctx, "account", "create", "conflict")
		return ErrEmailTaken
	default:
		observability.RecordRepositoryOperation(ctx, "account", "create", "error")
		return err
	}
}

func (r *GormCredentialStore) List(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&accounts).Error; err != nil {
		observability.RecordRepositoryOperation(ctx, "account", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "account", "list", "success")
	return accounts, nil
}

func (r *GormCredentialStore) lookupError(ctx context.Context, op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		observability.RecordRepositoryOperation(ctx, "account", op, "not_found")
		return ErrAccountNotFound
	}
	observability.RecordRepositoryOperation(ctx, "account", op, "error")
	return err
}
