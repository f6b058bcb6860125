package walkthrough

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/fraudguard/internal/config"
	"github.com/sandeepkv93/fraudguard/internal/observability"
	"github.com/sandeepkv93/fraudguard/internal/security"
	"github.com/sandeepkv93/fraudguard/internal/tools/common"
	"github.com/sandeepkv93/fraudguard/internal/tools/ui"
)

type options struct {
	envFile string
	ci      bool
	verbose bool
}

func NewRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{Use: "walkthrough", Short: "Drive sign-in and card enrollment in-process"}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "path to env file")
	cmd.PersistentFlags().BoolVar(&opts.ci, "ci", false, "non-interactive machine-readable output")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "print service logs to stderr")
	cmd.AddCommand(newRunCommand(opts), newAccountsCommand(opts))
	return cmd
}

func newRunCommand(opts *options) *cobra.Command {
	in := enrollInput{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sign in, enroll a card and confirm it with the delivered code",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(opts, "walkthrough run", func(ctx context.Context, c *core) ([]string, error) {
				return c.enroll(ctx, in)
			})
		},
	}
	cmd.Flags().StringVar(&in.email, "email", "user@example.com", "account email")
	cmd.Flags().StringVar(&in.password, "password", "user123", "account password")
	cmd.Flags().BoolVar(&in.admin, "admin", false, "sign in through the administrator entry point")
	cmd.Flags().StringVar(&in.card.Number, "card", "4111 1111 1111 1111", "card number")
	cmd.Flags().StringVar(&in.card.Holder, "holder", "Jane Doe", "cardholder name")
	cmd.Flags().StringVar(&in.card.Expiry, "expiry", "12/30", "expiry as MM/YY")
	cmd.Flags().StringVar(&in.card.CVV, "cvv", "123", "card verification value")
	cmd.Flags().StringVar(&in.phone, "phone", "5551234567", "phone number, digits only")
	return cmd
}

func newAccountsCommand(opts *options) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Sign in as an administrator and list accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(opts, "walkthrough accounts", func(ctx context.Context, c *core) ([]string, error) {
				return c.accounts(ctx, email, password)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "admin@example.com", "administrator email")
	cmd.Flags().StringVar(&password, "password", "admin123", "administrator password")
	return cmd
}

func execute(opts *options, title string, fn func(context.Context, *core) ([]string, error)) error {
	action := func(ctx context.Context) (details []string, err error) {
		start := time.Now()
		defer func() {
			outcome := "success"
			if err != nil {
				outcome = "error"
			}
			observability.RecordToolCommandRun(ctx, "walkthrough", title, outcome)
			observability.RecordToolCommandDuration(ctx, "walkthrough", title, outcome, time.Since(start))
		}()
		cfg, err := loadConfig(opts.envFile)
		if err != nil {
			return nil, err
		}
		c, err := newCore(ctx, coreOptions{
			adminPassword: cfg.DemoAdminPassword,
			userPassword:  cfg.DemoUserPassword,
			hasher:        security.NewPasswordHasher(security.DefaultArgon2Params),
			logger:        toolLogger(opts.verbose),
		})
		if err != nil {
			return nil, err
		}
		return fn(ctx, c)
	}

	var (
		details []string
		err     error
	)
	if opts.ci {
		details, err = action(context.Background())
		common.PrintCIResult(err == nil, title, details, err)
	} else {
		details, err = ui.Run(title, action)
	}
	if err != nil {
		os.Exit(3)
	}
	return nil
}

// loadConfig forces the memory store; the walkthrough never touches a shared database.
func loadConfig(envFile string) (*config.Config, error) {
	if err := common.LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	if err := os.Setenv("STORE_DRIVER", config.StoreDriverMemory); err != nil {
		return nil, err
	}
	return config.Load()
}

func toolLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
