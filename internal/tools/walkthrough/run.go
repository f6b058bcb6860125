package walkthrough

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sandeepkv93/fraudguard/internal/database"
	"github.com/sandeepkv93/fraudguard/internal/domain"
	"github.com/sandeepkv93/fraudguard/internal/repository"
	"github.com/sandeepkv93/fraudguard/internal/security"
	"github.com/sandeepkv93/fraudguard/internal/service"
)

// capturingDispatcher keeps the last delivered code so the walkthrough can answer its own
// verification step.
type capturingDispatcher struct {
	mu    sync.Mutex
	phone string
	code  string
}

func (d *capturingDispatcher) Dispatch(ctx context.Context, phone, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	d.phone, d.code = phone, code
	d.mu.Unlock()
	return nil
}

func (d *capturingDispatcher) last() (phone, code string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phone, d.code
}

// core is the in-process service graph the walkthrough drives: memory stores, seeded demo
// accounts and a capturing dispatcher in place of SMS.
type core struct {
	sessions    *service.SessionManager
	enrollments *service.EnrollmentService
	dispatcher  *capturingDispatcher
}

type coreOptions struct {
	adminPassword string
	userPassword  string
	hasher        *security.PasswordHasher
	logger        *slog.Logger
}

func newCore(ctx context.Context, opts coreOptions) (*core, error) {
	store := repository.NewInMemoryCredentialStore()
	if _, err := database.Seed(ctx, store, opts.hasher, database.DemoAccounts(opts.adminPassword, opts.userPassword)); err != nil {
		return nil, fmt.Errorf("seed demo accounts: %w", err)
	}
	dispatcher := &capturingDispatcher{}
	return &core{
		sessions:    service.NewSessionManager(store, opts.hasher, service.NewLogNotifier(opts.logger), opts.logger),
		enrollments: service.NewEnrollmentService(repository.NewInMemoryEnrolledCardStore(), dispatcher, opts.logger),
		dispatcher:  dispatcher,
	}, nil
}

type enrollInput struct {
	email    string
	password string
	admin    bool
	card     domain.CardDetails
	phone    string
}

func (c *core) enroll(ctx context.Context, in enrollInput) ([]string, error) {
	sess := service.NewSession()
	view, err := c.sessions.SignIn(ctx, sess, in.email, in.password, in.admin)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	details := []string{fmt.Sprintf("signed in as %s (%s), home %s", view.Email, view.Role, service.HomeFor(view.Role))}

	e, err := c.enrollments.Start(ctx, sess)
	if err != nil {
		return details, fmt.Errorf("start enrollment: %w", err)
	}
	details = append(details, "enrollment started: "+e.ID())

	if err := e.SubmitCard(ctx, in.card); err != nil {
		return details, fmt.Errorf("submit card: %w", err)
	}
	snap := e.Snapshot()
	details = append(details, fmt.Sprintf("card accepted: %s (%s, %s)", snap.MaskedCard, snap.Holder, snap.Expiry))

	dispatch, err := e.SubmitPhone(ctx, in.phone)
	if err != nil {
		return details, fmt.Errorf("submit phone: %w", err)
	}
	outcome, err := dispatch.Wait(ctx)
	if err != nil {
		return details, fmt.Errorf("deliver code: %w", err)
	}
	if outcome != service.DispatchDelivered {
		return details, fmt.Errorf("deliver code: dispatch %s", outcome)
	}
	phone, code := c.dispatcher.last()
	details = append(details, "code delivered to "+domain.MaskPhone(phone))

	if err := e.SubmitCode(ctx, code); err != nil {
		return details, fmt.Errorf("submit code: %w", err)
	}
	snap = e.Snapshot()
	if snap.EnrolledCard == nil {
		return details, errors.New("enrollment finished without a card")
	}
	details = append(details, fmt.Sprintf("card enrolled: %s ending %s, phone %s, stage %s",
		snap.EnrolledCard.ID, snap.EnrolledCard.Last4, snap.EnrolledCard.MaskedPhone, snap.Stage))

	cards, err := c.enrollments.Cards(ctx, view.ID)
	if err != nil {
		return details, fmt.Errorf("list cards: %w", err)
	}
	details = append(details, fmt.Sprintf("account now holds %d enrolled card(s)", len(cards)))
	return details, nil
}

func (c *core) accounts(ctx context.Context, email, password string) ([]string, error) {
	sess := service.NewSession()
	if _, err := c.sessions.SignIn(ctx, sess, email, password, true); err != nil {
		return nil, fmt.Errorf("admin sign in: %w", err)
	}
	accounts, err := c.sessions.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]string, 0, len(accounts))
	for _, a := range accounts {
		details = append(details, fmt.Sprintf("%s %s (%s)", a.Email, a.Name, a.Role))
	}
	return details, nil
}
