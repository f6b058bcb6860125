package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sandeepkv93/fraudguard/internal/domain"
	"github.com/sandeepkv93/fraudguard/internal/observability"
	"github.com/sandeepkv93/fraudguard/internal/security"
)

type Stage string

const (
	StageCardCapture  Stage = "card_capture"
	StagePhoneCapture Stage = "phone_capture"
	StageOTPConfirm   Stage = "otp_confirm"
	StageComplete     Stage = "complete"
	StageDiscarded    Stage = "discarded"
)

func (s Stage) Terminal() bool { return s == StageComplete || s == StageDiscarded }

// CodeGenerator returns a fresh numeric verification code.
type CodeGenerator func() (string, error)

func DefaultCodeGenerator() (string, error) { return security.NewNumericCode(otpDigits) }

// CompletionHook receives the masked card when an enrollment completes. A returned error
// aborts completion and leaves the enrollment in OtpConfirm.
type CompletionHook func(ctx context.Context, card *domain.EnrolledCard) error

// EnrollmentSnapshot is the only outward view of an enrollment. It never carries the full
// card number or the CVV.
type EnrollmentSnapshot struct {
	ID             string               `json:"id"`
	Stage          Stage                `json:"stage"`
	CardLast4      string               `json:"card_last4,omitempty"`
	MaskedCard     string               `json:"masked_card,omitempty"`
	Holder         string               `json:"holder,omitempty"`
	Expiry         string               `json:"expiry,omitempty"`
	MaskedPhone    string               `json:"masked_phone,omitempty"`
	OTPIssued      bool                 `json:"otp_issued"`
	Attempts       int                  `json:"attempts"`
	Resends        int                  `json:"resends"`
	LastDispatchAt *time.Time           `json:"last_dispatch_at,omitempty"`
	EnrolledCard   *domain.EnrolledCard `json:"enrolled_card,omitempty"`
}

// Enrollment drives one card through card capture, phone capture and code confirmation.
//
// Every dispatch carries the generation it was started under. A completion only counts if
// the generation still matches and the enrollment is not terminal; anything else is stale
// and dropped silently.
type Enrollment struct {
	id         string
	accountID  string
	dispatcher CodeDispatcher
	generate   CodeGenerator
	onComplete CompletionHook
	logger     *slog.Logger
	now        func() time.Time

	// lifetime is cancelled when the enrollment reaches a terminal stage
	lifetime context.Context
	cancel   context.CancelFunc

	mu             sync.Mutex
	stage          Stage
	card           domain.CardDetails
	phone          string
	code           string
	otpIssued      bool
	generation     uint64
	cancelDispatch context.CancelFunc
	attempts       int
	resends        int
	lastDispatchAt time.Time
	result         *domain.EnrolledCard
}

type enrollmentDeps struct {
	dispatcher CodeDispatcher
	generate   CodeGenerator
	onComplete CompletionHook
	logger     *slog.Logger
	now        func() time.Time
}

func newEnrollment(ctx context.Context, accountID string, deps enrollmentDeps) *Enrollment {
	lifetime, cancel := context.WithCancel(context.WithoutCancel(ctx))
	e := &Enrollment{
		id:         uuid.NewString(),
		accountID:  accountID,
		dispatcher: deps.dispatcher,
		generate:   deps.generate,
		onComplete: deps.onComplete,
		logger:     deps.logger,
		now:        deps.now,
		lifetime:   lifetime,
		cancel:     cancel,
		stage:      StageCardCapture,
	}
	if e.generate == nil {
		e.generate = DefaultCodeGenerator
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

func (e *Enrollment) ID() string        { return e.id }
func (e *Enrollment) AccountID() string { return e.accountID }

func (e *Enrollment) Stage() Stage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stage
}

func (e *Enrollment) Snapshot() EnrollmentSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := EnrollmentSnapshot{
		ID:          e.id,
		Stage:       e.stage,
		CardLast4:   e.card.Last4(),
		MaskedCard:  domain.MaskCardNumber(e.card.Number),
		Holder:      e.card.Holder,
		Expiry:      e.card.Expiry,
		MaskedPhone: domain.MaskPhone(e.phone),
		OTPIssued:   e.otpIssued,
		Attempts:    e.attempts,
		Resends:     e.resends,
	}
	if !e.lastDispatchAt.IsZero() {
		t := e.lastDispatchAt
		snap.LastDispatchAt = &t
	}
	if e.result != nil {
		card := *e.result
		snap.EnrolledCard = &card
		snap.CardLast4 = card.Last4
		snap.MaskedCard = domain.MaskCardNumber(card.Last4)
		snap.Holder = card.Holder
		snap.Expiry = card.Expiry
		snap.MaskedPhone = card.MaskedPhone
	}
	return snap
}

// SubmitCard validates and stores card details, moving CardCapture to PhoneCapture.
func (e *Enrollment) SubmitCard(ctx context.Context, card domain.CardDetails) error {
	ctx, span := e.startSpan(ctx, "enrollment.submit_card")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireStageLocked(StageCardCapture); err != nil {
		return spanError(span, err)
	}
	card = normalizeCard(card)
	if ferr := validateCard(card); ferr != nil {
		observability.RecordEnrollmentValidationFailure(ctx, string(e.stage), ferr.Field)
		return spanError(span, ferr)
	}
	e.card = card
	e.transitionLocked(ctx, StagePhoneCapture)
	return nil
}

// SubmitPhone binds a fresh code to phone and starts dispatching it. The returned handle
// reports when delivery finished; the code is only accepted after that.
func (e *Enrollment) SubmitPhone(ctx context.Context, phone string) (*Dispatch, error) {
	ctx, span := e.startSpan(ctx, "enrollment.submit_phone")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireStageLocked(StagePhoneCapture); err != nil {
		return nil, spanError(span, err)
	}
	if ferr := validatePhone(phone); ferr != nil {
		observability.RecordEnrollmentValidationFailure(ctx, string(e.stage), ferr.Field)
		return nil, spanError(span, ferr)
	}
	code, err := e.generate()
	if err != nil {
		return nil, spanError(span, fmt.Errorf("generate verification code: %w", err))
	}
	e.phone = phone
	e.code = code
	e.otpIssued = false
	e.transitionLocked(ctx, StageOTPConfirm)
	return e.startDispatchLocked(ctx), nil
}

// ResendCode replaces the current code with a new one for the same phone. The old code
// stops matching immediately.
func (e *Enrollment) ResendCode(ctx context.Context) (*Dispatch, error) {
	ctx, span := e.startSpan(ctx, "enrollment.resend_code")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireStageLocked(StageOTPConfirm); err != nil {
		return nil, spanError(span, err)
	}
	code, err := e.generate()
	if err != nil {
		return nil, spanError(span, fmt.Errorf("generate verification code: %w", err))
	}
	e.code = code
	e.otpIssued = false
	e.resends++
	e.transitionLocked(ctx, StageOTPConfirm)
	return e.startDispatchLocked(ctx), nil
}

// ChangePhone returns OtpConfirm to PhoneCapture. The outstanding code is invalidated and
// any dispatch still in flight is cancelled. Card details are kept.
func (e *Enrollment) ChangePhone(ctx context.Context) error {
	ctx, span := e.startSpan(ctx, "enrollment.change_phone")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireStageLocked(StageOTPConfirm); err != nil {
		return spanError(span, err)
	}
	e.invalidateCodeLocked()
	e.phone = ""
	e.transitionLocked(ctx, StagePhoneCapture)
	return nil
}

// SubmitCode checks code against the most recently dispatched one. A match completes the
// enrollment; a mismatch leaves it in OtpConfirm.
func (e *Enrollment) SubmitCode(ctx context.Context, code string) error {
	ctx, span := e.startSpan(ctx, "enrollment.submit_code")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireStageLocked(StageOTPConfirm); err != nil {
		return spanError(span, err)
	}
	if ferr := validateCode(code); ferr != nil {
		observability.RecordEnrollmentValidationFailure(ctx, string(e.stage), ferr.Field)
		return spanError(span, ferr)
	}
	if !e.otpIssued {
		return spanError(span, ErrCodeNotIssued)
	}
	e.attempts++
	if !security.CodesEqual(code, e.code) {
		e.logger.InfoContext(ctx, "verification code mismatch", "enrollment_id", e.id, "attempts", e.attempts)
		return spanError(span, ErrOTPMismatch)
	}

	enrolled := &domain.EnrolledCard{
		ID:          uuid.NewString(),
		AccountID:   e.accountID,
		Last4:       e.card.Last4(),
		Holder:      e.card.Holder,
		Expiry:      e.card.Expiry,
		MaskedPhone: domain.MaskPhone(e.phone),
		EnrolledAt:  e.now().UTC(),
	}
	if e.onComplete != nil {
		if err := e.onComplete(ctx, enrolled); err != nil {
			return spanError(span, fmt.Errorf("finish enrollment: %w", err))
		}
	}
	e.result = enrolled
	e.transitionLocked(ctx, StageComplete)
	e.closeLocked()
	e.logger.InfoContext(ctx, "card enrolled", "enrollment_id", e.id, "account_id", e.accountID, "card_id", enrolled.ID)
	return nil
}

// Abandon discards a non-terminal enrollment and wipes everything it captured. A dispatch
// still in flight is cancelled and its completion ignored.
func (e *Enrollment) Abandon(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stage.Terminal() {
		return ErrEnrollmentClosed
	}
	e.transitionLocked(ctx, StageDiscarded)
	e.closeLocked()
	e.phone = ""
	e.card = domain.CardDetails{}
	return nil
}

func (e *Enrollment) requireStageLocked(want Stage) error {
	if e.stage.Terminal() {
		return ErrEnrollmentClosed
	}
	if e.stage != want {
		return fmt.Errorf("%w: %s requires %s", ErrInvalidStage, e.stage, want)
	}
	return nil
}

func (e *Enrollment) transitionLocked(ctx context.Context, to Stage) {
	from := e.stage
	e.stage = to
	observability.RecordEnrollmentTransition(ctx, string(from), string(to))
	e.logger.DebugContext(ctx, "enrollment transition", "enrollment_id", e.id, "from", from, "to", to)
}

func (e *Enrollment) invalidateCodeLocked() {
	e.generation++
	if e.cancelDispatch != nil {
		e.cancelDispatch()
		e.cancelDispatch = nil
	}
	e.code = ""
	e.otpIssued = false
}

// closeLocked ends the enrollment's lifetime. Raw card number and CVV never survive it.
func (e *Enrollment) closeLocked() {
	e.invalidateCodeLocked()
	e.cancel()
	e.card.Number = ""
	e.card.CVV = ""
}

func (e *Enrollment) startDispatchLocked(ctx context.Context) *Dispatch {
	if e.cancelDispatch != nil {
		e.cancelDispatch()
	}
	e.generation++
	gen := e.generation
	dctx, cancel := context.WithCancel(e.lifetime)
	dctx = trace.ContextWithSpanContext(dctx, trace.SpanContextFromContext(ctx))
	e.cancelDispatch = cancel
	e.lastDispatchAt = e.now().UTC()

	d := newDispatch()
	phone, code := e.phone, e.code
	started := time.Now()
	go func() {
		defer cancel()
		err := e.dispatcher.Dispatch(dctx, phone, code)
		outcome := e.applyDispatch(gen, err)
		observability.RecordOTPDispatch(dctx, string(outcome), time.Since(started))
		if outcome == DispatchFailed {
			e.logger.WarnContext(dctx, "verification code dispatch failed", "enrollment_id", e.id, "error", err)
		}
		d.finish(outcome, err)
	}()
	return d
}

func (e *Enrollment) applyDispatch(gen uint64, err error) DispatchOutcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stage != StageOTPConfirm || gen != e.generation {
		return DispatchStale
	}
	if err != nil {
		return DispatchFailed
	}
	e.otpIssued = true
	return DispatchDelivered
}

func (e *Enrollment) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return observability.Tracer().Start(ctx, name, trace.WithAttributes(attribute.String("enrollment.id", e.id)))
}

func spanError(span trace.Span, err error) error {
	span.SetStatus(codes.Error, err.Error())
	return err
}

type DispatchOutcome string

const (
	DispatchDelivered DispatchOutcome = "delivered"
	DispatchFailed    DispatchOutcome = "failed"
	DispatchStale     DispatchOutcome = "stale"
)

// Dispatch is a handle on one asynchronous code delivery.
type Dispatch struct {
	done    chan struct{}
	outcome DispatchOutcome
	err     error
}

func newDispatch() *Dispatch { return &Dispatch{done: make(chan struct{})} }

func (d *Dispatch) finish(outcome DispatchOutcome, err error) {
	d.outcome = outcome
	if outcome == DispatchFailed {
		d.err = err
	}
	close(d.done)
}

func (d *Dispatch) Done() <-chan struct{} { return d.done }

// Wait blocks until the dispatch settles or ctx ends. The error is the dispatcher's own
// failure; a stale dispatch settles with DispatchStale and no error.
func (d *Dispatch) Wait(ctx context.Context) (DispatchOutcome, error) {
	select {
	case <-d.done:
		return d.outcome, d.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
