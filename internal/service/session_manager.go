package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sandeepkv93/fraudguard/internal/domain"
	"github.com/sandeepkv93/fraudguard/internal/observability"
	"github.com/sandeepkv93/fraudguard/internal/repository"
	"github.com/sandeepkv93/fraudguard/internal/security"
)

const (
	SignInEntryGeneral = "general"
	SignInEntryAdmin   = "admin"
)

type SessionManager struct {
	store    repository.CredentialStore
	hasher   *security.PasswordHasher
	notifier Notifier
	logger   *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewSessionManager(store repository.CredentialStore, hasher *security.PasswordHasher, notifier Notifier, logger *slog.Logger) *SessionManager {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &SessionManager{store: store, hasher: hasher, notifier: notifier, logger: logger}
}

// SignIn authenticates against the credential store and, on success, replaces the session
// principal. With adminOnly set, a valid non-admin account is refused and the session is
// left exactly as it was.
func (m *SessionManager) SignIn(ctx context.Context, sess *Session, email, password string, adminOnly bool) (*domain.AccountView, error) {
	entry := SignInEntryGeneral
	if adminOnly {
		entry = SignInEntryAdmin
	}
	ctx, span := observability.Tracer().Start(ctx, "session.signin", trace.WithAttributes(attribute.String("entry", entry)))
	defer span.End()

	acc, err := m.authenticate(ctx, email, password)
	if err != nil {
		status := "error"
		if errors.Is(err, ErrInvalidCredentials) {
			status = "invalid_credentials"
			m.notifier.Notify(ctx, NewNotification(NoticeInvalidCredentials, email))
		}
		observability.RecordAuthSignIn(ctx, entry, status)
		span.SetStatus(codes.Error, status)
		m.logger.WarnContext(ctx, "sign-in rejected", "entry", entry, "reason", status)
		return nil, err
	}
	if adminOnly && acc.Role != domain.RoleAdmin {
		observability.RecordAuthSignIn(ctx, entry, "access_denied")
		span.SetStatus(codes.Error, "access_denied")
		m.notifier.Notify(ctx, NewNotification(NoticeAccessDenied, email))
		m.logger.WarnContext(ctx, "admin sign-in refused for non-admin account", "account_id", acc.ID)
		return nil, ErrAccessDenied
	}

	view := acc.View()
	prev := sess.setPrincipal(view)
	if prev != nil && prev.ID != view.ID {
		// a different principal must not inherit the previous one's card data
		discardActiveEnrollment(ctx, sess)
	}
	observability.RecordAuthSignIn(ctx, entry, "success")
	m.notifier.Notify(ctx, NewNotification(NoticeSignInSuccess, email))
	m.logger.InfoContext(ctx, "signed in", "account_id", view.ID, "role", view.Role, "entry", entry)
	return &view, nil
}

func (m *SessionManager) authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	acc, err := m.store.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return nil, fmt.Errorf("find account: %w", err)
		}
		// keep unknown-email timing close to a wrong password
		_, _ = m.hasher.Verify(m.dummyPasswordHash(), password)
		return nil, ErrInvalidCredentials
	}
	ok, err := m.hasher.Verify(acc.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return acc, nil
}

func (m *SessionManager) dummyPasswordHash() string {
	m.dummyOnce.Do(func() {
		h, err := m.hasher.Hash(uuid.NewString())
		if err == nil {
			m.dummyHash = h
		}
	})
	return m.dummyHash
}

// SignUp registers a user-role account. It never signs the caller in.
func (m *SessionManager) SignUp(ctx context.Context, email, password, name string) (*domain.AccountView, error) {
	ctx, span := observability.Tracer().Start(ctx, "session.signup")
	defer span.End()

	if err := validateSignUp(email, password, name); err != nil {
		observability.RecordAuthSignUp(ctx, "invalid")
		span.SetStatus(codes.Error, "invalid")
		return nil, err
	}
	hash, err := m.hasher.Hash(password)
	if err != nil {
		observability.RecordAuthSignUp(ctx, "error")
		span.RecordError(err)
		return nil, fmt.Errorf("hash password: %w", err)
	}
	acc := &domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := m.store.Create(ctx, acc); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			observability.RecordAuthSignUp(ctx, "email_in_use")
			span.SetStatus(codes.Error, "email_in_use")
			m.notifier.Notify(ctx, NewNotification(NoticeEmailInUse, email))
			return nil, ErrEmailInUse
		}
		observability.RecordAuthSignUp(ctx, "error")
		span.RecordError(err)
		return nil, fmt.Errorf("create account: %w", err)
	}

	view := acc.View()
	observability.RecordAuthSignUp(ctx, "success")
	m.notifier.Notify(ctx, NewNotification(NoticeSignUpSuccess, email))
	m.logger.InfoContext(ctx, "account registered", "account_id", view.ID)
	return &view, nil
}

func validateSignUp(email, password, name string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fieldError("email", "must be a valid email address")
	}
	if password == "" {
		return fieldError("password", "is required")
	}
	if strings.TrimSpace(name) == "" {
		return fieldError("name", "is required")
	}
	return nil
}

// SignOut clears the principal and discards any enrollment in flight. Signing out an
// anonymous session is a no-op.
func (m *SessionManager) SignOut(ctx context.Context, sess *Session) {
	prev := sess.clearPrincipal()
	discardActiveEnrollment(ctx, sess)
	if prev == nil {
		observability.RecordAuthSignOut(ctx, "noop")
		return
	}
	observability.RecordAuthSignOut(ctx, "success")
	m.notifier.Notify(ctx, NewNotification(NoticeSignedOut, prev.Email))
	m.logger.InfoContext(ctx, "signed out", "account_id", prev.ID)
}

func (m *SessionManager) CurrentRole(sess *Session) domain.Role {
	p := sess.Principal()
	if p == nil {
		return domain.RoleNone
	}
	return p.Role
}

// ListAccounts returns every account without credentials. Callers gate access by role.
func (m *SessionManager) ListAccounts(ctx context.Context) ([]domain.AccountView, error) {
	accounts, err := m.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	out := make([]domain.AccountView, 0, len(accounts))
	for i := range accounts {
		out = append(out, accounts[i].View())
	}
	return out, nil
}

func discardActiveEnrollment(ctx context.Context, sess *Session) {
	if e := sess.swapEnrollment(nil); e != nil {
		_ = e.Abandon(ctx)
	}
}
