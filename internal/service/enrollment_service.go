package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sandeepkv93/fraudguard/internal/domain"
	"github.com/sandeepkv93/fraudguard/internal/repository"
)

type EnrollmentService struct {
	cards      repository.EnrolledCardStore
	dispatcher CodeDispatcher
	generate   CodeGenerator
	logger     *slog.Logger
	now        func() time.Time
}

type EnrollmentOption func(*EnrollmentService)

// WithCodeGenerator replaces the crypto/rand code source, mainly for deterministic tests.
func WithCodeGenerator(g CodeGenerator) EnrollmentOption {
	return func(s *EnrollmentService) { s.generate = g }
}

func WithClock(now func() time.Time) EnrollmentOption {
	return func(s *EnrollmentService) { s.now = now }
}

func NewEnrollmentService(cards repository.EnrolledCardStore, dispatcher CodeDispatcher, logger *slog.Logger, opts ...EnrollmentOption) *EnrollmentService {
	s := &EnrollmentService{
		cards:      cards,
		dispatcher: dispatcher,
		generate:   DefaultCodeGenerator,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens a new enrollment for the session principal. Any enrollment already active in
// the session is abandoned; the newest one wins.
func (s *EnrollmentService) Start(ctx context.Context, sess *Session) (*Enrollment, error) {
	p := sess.Principal()
	if p == nil {
		return nil, ErrNotSignedIn
	}
	e := newEnrollment(ctx, p.ID, enrollmentDeps{
		dispatcher: s.dispatcher,
		generate:   s.generate,
		onComplete: s.Finish,
		logger:     s.logger,
		now:        s.now,
	})
	if prev := sess.swapEnrollment(e); prev != nil {
		if err := prev.Abandon(ctx); err == nil {
			s.logger.InfoContext(ctx, "previous enrollment discarded", "enrollment_id", prev.ID())
		}
	}
	s.logger.InfoContext(ctx, "enrollment started", "enrollment_id", e.ID(), "account_id", p.ID)
	return e, nil
}

// Active returns the session's current enrollment. A principal change since the enrollment
// began is treated as no enrollment at all.
func (s *EnrollmentService) Active(sess *Session) (*Enrollment, error) {
	e := sess.ActiveEnrollment()
	if e == nil {
		return nil, ErrNoActiveEnrollment
	}
	if p := sess.Principal(); p == nil || p.ID != e.AccountID() {
		return nil, ErrNoActiveEnrollment
	}
	return e, nil
}

// Abandon discards the active enrollment and detaches it from the session.
func (s *EnrollmentService) Abandon(ctx context.Context, sess *Session) error {
	e, err := s.Active(sess)
	if err != nil {
		return err
	}
	if err := e.Abandon(ctx); err != nil {
		return err
	}
	sess.clearEnrollment(e)
	s.logger.InfoContext(ctx, "enrollment abandoned", "enrollment_id", e.ID())
	return nil
}

// Finish persists a completed enrollment's masked card.
func (s *EnrollmentService) Finish(ctx context.Context, card *domain.EnrolledCard) error {
	if err := s.cards.Save(ctx, card); err != nil {
		return fmt.Errorf("save enrolled card: %w", err)
	}
	return nil
}

func (s *EnrollmentService) Cards(ctx context.Context, accountID string) ([]domain.EnrolledCard, error) {
	cards, err := s.cards.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list enrolled cards: %w", err)
	}
	return cards, nil
}
