package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"linkswap/internal/adapter/auth"
	httpadapter "linkswap/internal/adapter/http"
	"linkswap/internal/adapter/memory"
	"linkswap/internal/adapter/postgres"
	"linkswap/internal/adapter/usecase"
	"linkswap/internal/adapter/verifier"
	"linkswap/internal/config"
	"linkswap/internal/core/domain"
	"linkswap/internal/core/port"
	"linkswap/internal/db"
	"linkswap/internal/observability/metrics"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "linkswap",
		Short:         "Credit-based backlink exchange",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.RunE = func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context(), false)
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd(), newTokenCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "insert demo data before serving")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info("migrations applied successfully")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo users, an asset and a funded campaign",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			pool, err := db.NewPostgresPool(cmd.Context(), cfg.Psql)
			if err != nil {
				return fmt.Errorf("database connection: %w", err)
			}
			defer pool.Close()

			demo, err := db.Seed(cmd.Context(), postgres.NewStore(pool))
			if err != nil {
				return err
			}
			logDemo(logger, demo)
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		user   string
		role   string
		status string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token signed with AUTH_SECRET",
		Long: `Issue a bearer token for local testing. Production tokens come from the
identity provider; this command signs with the same secret the server checks.

EXAMPLES:
  # Token for the seeded admin
  linkswap token --role admin

  # Token for a specific user, valid for a day
  linkswap token --user 0b8f5c0e-3d1b-4a8e-9f53-6a4c7e1d2b90 --ttl 24h
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			caller := domain.Caller{
				Role:   domain.Role(role),
				Status: domain.AccountStatus(status),
			}
			switch {
			case user != "":
				if caller.UserID, err = uuid.Parse(user); err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
			case caller.IsAdmin():
				caller.UserID = db.DemoIDs().Admin
			default:
				caller.UserID = db.DemoIDs().Advertiser
			}
			token, err := auth.NewJWTAuthenticator(cfg.Auth).Issue(caller, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "subject user id (defaults to a seeded demo user)")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleUser), "role claim: user or admin")
	cmd.Flags().StringVar(&status, "status", string(domain.AccountActive), "status claim: active or suspended")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}

// setup loads configuration and builds the structured logger.
func setup() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, fmt.Errorf("load config: %w", err)
	}

	logger := cfg.Log.Build(os.Stdout, cfg.Metrics.ServiceName, cfg.Env)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// runServe wires the store, verifier and use cases behind the HTTP handler
// and serves until SIGINT or SIGTERM, then drains in-flight requests.
func runServe(parent context.Context, seed bool) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Init(cfg.Metrics.Enabled, cfg.Metrics.ServiceName)

	var store port.Store
	if cfg.Storage.UseMemory() {
		logger.Warn("using in-memory storage; state is lost on restart")
		store = memory.NewStore()
	} else {
		if cfg.Psql.RunMigrations {
			if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info("migrations applied successfully")
		}
		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			return fmt.Errorf("database connection: %w", err)
		}
		defer pool.Close()
		store = postgres.NewStore(pool)
	}

	if seed {
		demo, err := db.Seed(ctx, store)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		logDemo(logger, demo)
	}

	handler := httpadapter.NewHandler(httpadapter.Services{
		Campaigns: usecase.NewCampaignUseCase(store, logger),
		Slots:     usecase.NewSlotUseCase(store, verifier.New(cfg.Verifier), logger),
		Ledger:    usecase.NewLedgerUseCase(store, logger),
		Directory: usecase.NewDirectoryUseCase(store, logger),
	}, auth.NewJWTAuthenticator(cfg.Auth), logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)), slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("server gracefully stopped")
		return nil
	})
	return g.Wait()
}

func logDemo(logger *slog.Logger, demo db.Demo) {
	logger.Info("demo data ready",
		slog.String("admin_id", demo.Admin.String()),
		slog.String("advertiser_id", demo.Advertiser.String()),
		slog.String("publisher_id", demo.Publisher.String()),
		slog.String("asset_id", demo.Asset.String()),
		slog.String("campaign_id", demo.Campaign.String()))
}
