package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sandeepkv93/fraudguard/internal/domain"
)

func newRepositoryDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Account{}, &domain.EnrolledCard{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func credentialStoresForTest(t *testing.T) map[string]CredentialStore {
	return map[string]CredentialStore{
		"memory": NewInMemoryCredentialStore(),
		"gorm":   NewGormCredentialStore(newRepositoryDBForTest(t)),
	}
}

func testAccount(id, email string, role domain.Role, createdAt time.Time) *domain.Account {
	return &domain.Account{ID: id, Email: email, PasswordHash: "hash-" + id, Name: "Name " + id, Role: role, CreatedAt: createdAt}
}

func TestCredentialStoreCreateAndFind(t *testing.T) {
	for name, store := range credentialStoresForTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now().UTC()
			if err := store.Create(ctx, testAccount("a1", "admin@example.com", domain.RoleAdmin, now)); err != nil {
				t.Fatalf("create: %v", err)
			}

			byEmail, err := store.FindByEmail(ctx, "admin@example.com")
			if err != nil {
				t.Fatalf("find by email: %v", err)
			}
			if byEmail.ID != "a1" || byEmail.Role != domain.RoleAdmin || byEmail.PasswordHash != "hash-a1" {
				t.Fatalf("unexpected account: %+v", byEmail)
			}
			byID, err := store.FindByID(ctx, "a1")
			if err != nil || byID.Email != "admin@example.com" {
				t.Fatalf("find by id: %+v %v", byID, err)
			}

			if _, err := store.FindByEmail(ctx, "Admin@example.com"); !errors.Is(err, ErrAccountNotFound) {
				t.Fatalf("expected exact-match email lookup, got %v", err)
			}
			if _, err := store.FindByID(ctx, "missing"); !errors.Is(err, ErrAccountNotFound) {
				t.Fatalf("expected ErrAccountNotFound, got %v", err)
			}
		})
	}
}

func TestCredentialStoreRejectsDuplicateEmail(t *testing.T) {
	for name, store := range credentialStoresForTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now().UTC()
			if err := store.Create(ctx, testAccount("u1", "user@example.com", domain.RoleUser, now)); err != nil {
				t.Fatalf("create: %v", err)
			}
			err := store.Create(ctx, testAccount("u2", "user@example.com", domain.RoleUser, now.Add(time.Second)))
			if !errors.Is(err, ErrEmailTaken) {
				t.Fatalf("expected ErrEmailTaken, got %v", err)
			}
			accounts, err := store.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(accounts) != 1 || accounts[0].ID != "u1" {
				t.Fatalf("expected store unchanged after conflict, got %+v", accounts)
			}
		})
	}
}

func TestCredentialStoreListKeepsCreationOrder(t *testing.T) {
	for name, store := range credentialStoresForTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Now().UTC()
			for i, email := range []string{"c@example.com", "a@example.com", "b@example.com"} {
				if err := store.Create(ctx, testAccount(fmt.Sprintf("id%d", i), email, domain.RoleUser, base.Add(time.Duration(i)*time.Second))); err != nil {
					t.Fatalf("create %s: %v", email, err)
				}
			}
			accounts, err := store.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			got := []string{}
			for _, a := range accounts {
				got = append(got, a.Email)
			}
			if strings.Join(got, ",") != "c@example.com,a@example.com,b@example.com" {
				t.Fatalf("unexpected order: %v", got)
			}
		})
	}
}

func TestInMemoryCredentialStoreConcurrentCreateSameEmail(t *testing.T) {
	store := NewInMemoryCredentialStore()
	ctx := context.Background()
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.Create(ctx, testAccount(fmt.Sprintf("id%d", i), "race@example.com", domain.RoleUser, time.Now()))
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			} else if !errors.Is(err, ErrEmailTaken) {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()
	if created != 1 {
		t.Fatalf("expected exactly one winner, got %d", created)
	}
}

func TestInMemoryCredentialStoreReturnsCopies(t *testing.T) {
	store := NewInMemoryCredentialStore()
	ctx := context.Background()
	if err := store.Create(ctx, testAccount("u1", "user@example.com", domain.RoleUser, time.Now())); err != nil {
		t.Fatalf("create: %v", err)
	}
	a, _ := store.FindByID(ctx, "u1")
	a.Role = domain.RoleAdmin
	again, _ := store.FindByID(ctx, "u1")
	if again.Role != domain.RoleUser {
		t.Fatal("expected store state to be isolated from returned values")
	}
}

func TestEnrolledCardStores(t *testing.T) {
	stores := map[string]EnrolledCardStore{
		"memory": NewInMemoryEnrolledCardStore(),
		"gorm":   NewGormEnrolledCardStore(newRepositoryDBForTest(t)),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now().UTC()
			cards := []*domain.EnrolledCard{
				{ID: "c1", AccountID: "u1", Last4: "1111", Holder: "Jane Doe", Expiry: "12/30", MaskedPhone: "••••••••67", EnrolledAt: now},
				{ID: "c2", AccountID: "u1", Last4: "4242", Holder: "Jane Doe", Expiry: "01/29", MaskedPhone: "••••••••67", EnrolledAt: now.Add(time.Second)},
				{ID: "c3", AccountID: "u2", Last4: "0005", Holder: "John Roe", Expiry: "03/31", MaskedPhone: "••••••••12", EnrolledAt: now},
			}
			for _, c := range cards {
				if err := store.Save(ctx, c); err != nil {
					t.Fatalf("save %s: %v", c.ID, err)
				}
			}
			got, err := store.ListByAccount(ctx, "u1")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != 2 || got[0].ID != "c1" || got[1].Last4 != "4242" {
				t.Fatalf("unexpected cards: %+v", got)
			}
			none, err := store.ListByAccount(ctx, "nobody")
			if err != nil || len(none) != 0 {
				t.Fatalf("expected empty list, got %+v %v", none, err)
			}
		})
	}
}
