package service

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/sandeepkv93/fraudguard/internal/domain"
)

// Session is one client's view of who is signed in and which enrollment is in flight.
// It is owned by a single client; the atomics only make replace-on-write safe against
// dispatch goroutines and concurrent requests sharing a cookie.
type Session struct {
	id         string
	principal  atomic.Pointer[domain.AccountView]
	enrollment atomic.Pointer[Enrollment]
}

func NewSession() *Session {
	return &Session{id: uuid.NewString()}
}

func (s *Session) ID() string { return s.id }

// Principal returns a copy of the signed-in account, or nil when anonymous.
func (s *Session) Principal() *domain.AccountView {
	p := s.principal.Load()
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func (s *Session) setPrincipal(v domain.AccountView) *domain.AccountView {
	return s.principal.Swap(&v)
}

func (s *Session) clearPrincipal() *domain.AccountView {
	return s.principal.Swap(nil)
}

func (s *Session) ActiveEnrollment() *Enrollment { return s.enrollment.Load() }

func (s *Session) swapEnrollment(e *Enrollment) *Enrollment {
	return s.enrollment.Swap(e)
}

func (s *Session) clearEnrollment(e *Enrollment) bool {
	return s.enrollment.CompareAndSwap(e, nil)
}
