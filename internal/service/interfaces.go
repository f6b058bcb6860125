package service

import (
	"context"

	"github.com/sandeepkv93/fraudguard/internal/domain"
)

type SessionManagerInterface interface {
	SignIn(ctx context.Context, sess *Session, email, password string, adminOnly bool) (*domain.AccountView, error)
	SignUp(ctx context.Context, email, password, name string) (*domain.AccountView, error)
	SignOut(ctx context.Context, sess *Session)
	CurrentRole(sess *Session) domain.Role
	ListAccounts(ctx context.Context) ([]domain.AccountView, error)
}

type EnrollmentServiceInterface interface {
	Start(ctx context.Context, sess *Session) (*Enrollment, error)
	Active(sess *Session) (*Enrollment, error)
	Abandon(ctx context.Context, sess *Session) error
	Cards(ctx context.Context, accountID string) ([]domain.EnrolledCard, error)
}

var (
	_ SessionManagerInterface    = (*SessionManager)(nil)
	_ EnrollmentServiceInterface = (*EnrollmentService)(nil)
	_ CodeDispatcher             = (*DevSMSDispatcher)(nil)
	_ Notifier                   = (*LogNotifier)(nil)
)
