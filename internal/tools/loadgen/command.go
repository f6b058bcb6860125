package loadgen

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/fraudguard/internal/observability"
	"github.com/sandeepkv93/fraudguard/internal/tools/common"
	"github.com/sandeepkv93/fraudguard/internal/tools/ui"
)

type options struct {
	cfg Config
	ci  bool
}

func NewRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{Use: "loadgen", Short: "Drive concurrent visitors against a running API"}
	f := cmd.PersistentFlags()
	f.StringVar(&opts.cfg.BaseURL, "base-url", "http://localhost:8080", "API base URL")
	f.StringVar(&opts.cfg.Profile, "profile", "mixed", "traffic profile: auth|enrollment|error-heavy|mixed")
	f.DurationVar(&opts.cfg.Duration, "duration", 15*time.Second, "traffic duration")
	f.IntVar(&opts.cfg.RPS, "rps", 20, "scenarios started per second")
	f.IntVar(&opts.cfg.Concurrency, "concurrency", 6, "concurrent visitors, each with its own session")
	f.StringVar(&opts.cfg.Email, "email", "user@example.com", "account used by the visitors")
	f.StringVar(&opts.cfg.Password, "password", "user123", "password for --email")
	f.BoolVar(&opts.ci, "ci", false, "non-interactive machine-readable output")
	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run load generation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(opts)
		},
	})
	return cmd
}

func execute(opts *options) error {
	title := "loadgen run"
	action := func(ctx context.Context) (details []string, err error) {
		start := time.Now()
		defer func() {
			outcome := "success"
			if err != nil {
				outcome = "error"
			}
			observability.RecordToolCommandRun(ctx, "loadgen", opts.cfg.Profile, outcome)
			observability.RecordToolCommandDuration(ctx, "loadgen", opts.cfg.Profile, outcome, time.Since(start))
		}()
		res, err := Run(ctx, opts.cfg)
		if err != nil {
			return nil, err
		}
		return res.Details(), nil
	}

	var (
		details []string
		err     error
	)
	if opts.ci {
		ctx, cancel := context.WithTimeout(context.Background(), opts.cfg.Duration+15*time.Second)
		details, err = action(ctx)
		cancel()
		common.PrintCIResult(err == nil, title, details, err)
	} else {
		details, err = ui.Run(title, action)
	}
	if err != nil {
		os.Exit(4)
	}
	return nil
}
