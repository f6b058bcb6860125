package health

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sandeepkv93/fraudguard/internal/observability"
)

type CheckResult struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

func healthy(name string) CheckResult { return CheckResult{Name: name, Healthy: true} }

func unhealthy(name string, reason string) CheckResult {
	return CheckResult{Name: name, Error: reason}
}

type Checker interface {
	Check(ctx context.Context) CheckResult
}

// CheckFunc adapts a plain function to Checker.
type CheckFunc func(ctx context.Context) CheckResult

func (f CheckFunc) Check(ctx context.Context) CheckResult { return f(ctx) }

// ProbeRunner answers readiness by running every registered Checker in parallel, each
// under its own timeout. Results come back in registration order.
type ProbeRunner struct {
	checkers    []Checker
	timeout     time.Duration
	gracePeriod time.Duration
	startedAt   time.Time
}

// NewProbeRunner drops nil checkers so optional dependencies can be passed unconditionally.
func NewProbeRunner(timeout, gracePeriod time.Duration, checkers ...Checker) *ProbeRunner {
	if timeout <= 0 {
		timeout = time.Second
	}
	r := &ProbeRunner{timeout: timeout, gracePeriod: gracePeriod, startedAt: time.Now()}
	for _, c := range checkers {
		if c != nil {
			r.checkers = append(r.checkers, c)
		}
	}
	return r
}

func (r *ProbeRunner) inGrace() bool {
	return r.gracePeriod > 0 && time.Since(r.startedAt) < r.gracePeriod
}

func (r *ProbeRunner) Ready(ctx context.Context) (bool, []CheckResult) {
	if r == nil {
		return true, nil
	}
	if r.inGrace() {
		observability.RecordHealthCheckResult(ctx, "startup_grace", "unready")
		return false, []CheckResult{unhealthy("startup_grace", "startup grace period active")}
	}

	results := make([]CheckResult, len(r.checkers))
	var g errgroup.Group
	for i, c := range r.checkers {
		g.Go(func() error {
			results[i] = r.run(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	ready := true
	for _, res := range results {
		ready = ready && res.Healthy
	}
	return ready, results
}

func (r *ProbeRunner) run(ctx context.Context, c Checker) CheckResult {
	checkCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	res := c.Check(checkCtx)
	if res.Healthy && checkCtx.Err() != nil {
		res = unhealthy(res.Name, checkCtx.Err().Error())
	}
	observability.RecordHealthCheckDuration(ctx, res.Name, time.Since(start))
	outcome := "ready"
	if !res.Healthy {
		outcome = "unready"
	}
	observability.RecordHealthCheckResult(ctx, res.Name, outcome)
	return res
}
