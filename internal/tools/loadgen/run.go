package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Config struct {
	BaseURL     string
	Profile     string
	Duration    time.Duration
	RPS         int
	Concurrency int
	Email       string
	Password    string
}

type Result struct {
	Scenarios     int64
	TotalRequests int64
	Failures      int64
	Status2xx     int64
	Status3xx     int64
	Status4xx     int64
	Status5xx     int64
}

// Details renders the counters as key=value lines for the CI and TUI output.
func (r Result) Details() []string {
	return []string{
		fmt.Sprintf("scenarios=%d", r.Scenarios),
		fmt.Sprintf("total_requests=%d", r.TotalRequests),
		fmt.Sprintf("failures=%d", r.Failures),
		fmt.Sprintf("status_2xx=%d", r.Status2xx),
		fmt.Sprintf("status_3xx=%d", r.Status3xx),
		fmt.Sprintf("status_4xx=%d", r.Status4xx),
		fmt.Sprintf("status_5xx=%d", r.Status5xx),
	}
}

type step struct {
	method string
	path   string
	body   any
}

// visitor is one browser-like client. Its cookie jar carries the session across steps, so
// every worker exercises its own server-side session.
type visitor struct {
	baseURL string
	client  *http.Client
	stats   *stats
}

type stats struct {
	total, failures, s2xx, s3xx, s4xx, s5xx atomic.Int64
}

func (s *stats) record(code int) {
	s.total.Add(1)
	switch {
	case code >= 200 && code < 300:
		s.s2xx.Add(1)
	case code >= 300 && code < 400:
		s.s3xx.Add(1)
	case code >= 400 && code < 500:
		s.s4xx.Add(1)
	case code >= 500:
		s.s5xx.Add(1)
	}
}

func newVisitor(baseURL string, st *stats) (*visitor, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &visitor{baseURL: baseURL, stats: st, client: &http.Client{
		Timeout: 5 * time.Second,
		Jar:     jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}, nil
}

func (v *visitor) run(ctx context.Context, steps []step) {
	for _, s := range steps {
		var body io.Reader
		if s.body != nil {
			raw, err := json.Marshal(s.body)
			if err != nil {
				v.stats.failures.Add(1)
				return
			}
			body = bytes.NewReader(raw)
		}
		req, err := http.NewRequestWithContext(ctx, s.method, v.baseURL+s.path, body)
		if err != nil {
			v.stats.failures.Add(1)
			return
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := v.client.Do(req)
		if err != nil {
			v.stats.failures.Add(1)
			return
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		v.stats.record(resp.StatusCode)
	}
}

func Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Duration <= 0 {
		cfg.Duration = 10 * time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 15
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	if cfg.Email == "" {
		cfg.Email = "user@example.com"
	}
	if cfg.Password == "" {
		cfg.Password = "user123"
	}

	scenarios := scenariosForProfile(cfg.Profile, cfg.Email, cfg.Password)
	if len(scenarios) == 0 {
		return Result{}, fmt.Errorf("unknown profile: %s", cfg.Profile)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	st := &stats{}
	var started atomic.Int64
	jobs := make(chan []step, cfg.Concurrency*2)
	wg := sync.WaitGroup{}

	for i := 0; i < cfg.Concurrency; i++ {
		v, err := newVisitor(cfg.BaseURL, st)
		if err != nil {
			cancel()
			close(jobs)
			wg.Wait()
			return Result{}, err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for steps := range jobs {
				started.Add(1)
				v.run(ctx, steps)
			}
		}()
	}

	ticker := time.NewTicker(time.Second / time.Duration(cfg.RPS))
	defer ticker.Stop()
	i := 0
	for {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return Result{
				Scenarios:     started.Load(),
				TotalRequests: st.total.Load(),
				Failures:      st.failures.Load(),
				Status2xx:     st.s2xx.Load(),
				Status3xx:     st.s3xx.Load(),
				Status4xx:     st.s4xx.Load(),
				Status5xx:     st.s5xx.Load(),
			}, nil
		case <-ticker.C:
			select {
			case jobs <- scenarios[i%len(scenarios)]:
				i++
			case <-ctx.Done():
			}
		}
	}
}

func scenariosForProfile(profile, email, password string) [][]step {
	creds := map[string]string{"email": email, "password": password}
	signIn := step{http.MethodPost, "/api/v1/auth/login", creds}
	signOut := step{http.MethodPost, "/api/v1/auth/logout", nil}
	auth := []step{
		{http.MethodGet, "/", nil},
		signIn,
		{http.MethodGet, "/api/v1/me", nil},
		{http.MethodGet, "/dashboard", nil},
		signOut,
	}
	enrollment := []step{
		signIn,
		{http.MethodPost, "/api/v1/enrollment", nil},
		{http.MethodPost, "/api/v1/enrollment/card", map[string]string{
			"card_number": "4111 1111 1111 1111", "cardholder_name": "Load Test", "expiry": "12/30", "cvv": "123",
		}},
		{http.MethodPost, "/api/v1/enrollment/phone", map[string]string{"phone": "5551234567"}},
		{http.MethodGet, "/api/v1/enrollment", nil},
		{http.MethodPost, "/api/v1/enrollment/resend", nil},
		{http.MethodDelete, "/api/v1/enrollment", nil},
	}
	errorHeavy := []step{
		{http.MethodPost, "/api/v1/auth/login", map[string]string{"email": email, "password": password + "-wrong"}},
		{http.MethodPost, "/api/v1/auth/admin/login", creds},
		{http.MethodGet, "/api/v1/admin/accounts", nil},
		{http.MethodPost, "/api/v1/enrollment/code", map[string]string{"code": "000000"}},
		signOut,
		{http.MethodGet, "/api/v1/me", nil},
	}

	switch strings.ToLower(profile) {
	case "", "mixed":
		return [][]step{auth, enrollment, errorHeavy}
	case "auth":
		return [][]step{auth}
	case "enrollment":
		return [][]step{enrollment}
	case "error-heavy":
		return [][]step{errorHeavy}
	default:
		return nil
	}
}
