package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/fraudguard/internal/domain"
	"github.com/sandeepkv93/fraudguard/internal/observability"
	"github.com/sandeepkv93/fraudguard/internal/repository"
	"github.com/sandeepkv93/fraudguard/internal/security"
)

type SeedAccount struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

type SeedReport struct {
	CreatedAccounts int  `json:"created_accounts"`
	Noop            bool `json:"noop"`
}

// DemoAccounts returns the two well-known accounts every fresh process starts with.
func DemoAccounts(adminPassword, userPassword string) []SeedAccount {
	return []SeedAccount{
		{Email: "admin@example.com", Password: adminPassword, Name: "Admin User", Role: domain.RoleAdmin},
		{Email: "user@example.com", Password: userPassword, Name: "Regular User", Role: domain.RoleUser},
	}
}

// Seed creates any missing accounts. Existing emails are left untouched, so running it twice is a no-op.
func Seed(ctx context.Context, store repository.CredentialStore, hasher *security.PasswordHasher, accounts []SeedAccount) (*SeedReport, error) {
	start := time.Now()
	defer func() {
		observability.RecordDatabaseStartupDuration(ctx, "seed", time.Since(start))
	}()

	report := &SeedReport{}
	for _, sa := range accounts {
		if _, err := store.FindByEmail(ctx, sa.Email); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrAccountNotFound) {
			observability.RecordDatabaseStartupEvent(ctx, "seed", "error")
			return nil, err
		}
		hash, err := hasher.Hash(sa.Password)
		if err != nil {
			observability.RecordDatabaseStartupEvent(ctx, "seed", "error")
			return nil, fmt.Errorf("hash seed password for %s: %w", sa.Email, err)
		}
		acc := &domain.Account{
			ID:           uuid.NewString(),
			Email:        sa.Email,
			PasswordHash: hash,
			Name:         sa.Name,
			Role:         sa.Role,
			CreatedAt:    time.Now().UTC(),
		}
		if err := store.Create(ctx, acc); err != nil {
			if errors.Is(err, repository.ErrEmailTaken) {
				continue
			}
			observability.RecordDatabaseStartupEvent(ctx, "seed", "error")
			return nil, fmt.Errorf("seed %s: %w", sa.Email, err)
		}
		report.CreatedAccounts++
	}
	report.Noop = report.CreatedAccounts == 0
	observability.RecordDatabaseStartupEvent(ctx, "seed", "success")
	return report, nil
}
