package health

import (
	"context"

	"gorm.io/gorm"

	"github.com/sandeepkv93/fraudguard/internal/repository"
)

// NewDBChecker pings the SQL pool behind db. A nil db yields a nil Checker, which
// NewProbeRunner skips, so the memory driver has no database probe.
func NewDBChecker(db *gorm.DB) Checker {
	if db == nil {
		return nil
	}
	return CheckFunc(func(ctx context.Context) CheckResult {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			return unhealthy("db", err.Error())
		}
		return healthy("db")
	})
}

// NewCredentialStoreChecker reports ready once the store answers with at least one account.
// An empty store means seeding never ran and nobody can sign in.
func NewCredentialStoreChecker(store repository.CredentialStore) Checker {
	if store == nil {
		return nil
	}
	return CheckFunc(func(ctx context.Context) CheckResult {
		accounts, err := store.List(ctx)
		switch {
		case err != nil:
			return unhealthy("credential_store", err.Error())
		case len(accounts) == 0:
			return unhealthy("credential_store", "no accounts seeded")
		}
		return healthy("credential_store")
	})
}
