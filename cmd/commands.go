package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpapi "bolpurmart/internal/adapters/in/http"
	"bolpurmart/internal/adapters/out/auth"
	"bolpurmart/internal/adapters/out/postgres"
	"bolpurmart/internal/core/application/session"
	"bolpurmart/internal/core/application/usecases/commands"
	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/logger"
	"bolpurmart/internal/metrics"

	"github.com/jaswdr/faker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

// NewRootCommand builds the partnerd command tree.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	var envFile string

	root := &cobra.Command{
		Use:           "partnerd",
		Short:         "Backend of the Bolpurmart delivery partner application",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")
	root.PersistentFlags().String("log-level", "info", "zap log level")
	_ = v.BindPFlag("LOG_LEVEL", root.PersistentFlags().Lookup("log-level"))

	load := func() (Config, *zap.Logger, error) {
		cfg, err := LoadConfig(v, envFile)
		if err != nil {
			return Config{}, nil, err
		}
		l, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
		if err != nil {
			return Config{}, nil, fmt.Errorf("building logger: %w", err)
		}
		return cfg, l, nil
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the partner API, live streams and background jobs",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, l, err := load()
				if err != nil {
					return err
				}
				defer func() { _ = l.Sync() }()
				return serve(cmd.Context(), cfg, l)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, l, err := load()
				if err != nil {
					return err
				}
				return migrate(cmd.Context(), cfg, l)
			},
		},
		newSeedCommand(load),
	)

	return root
}

func openDB(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgresdriver.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

func migrate(ctx context.Context, cfg Config, l *zap.Logger) error {
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	if err = postgres.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrating record stores: %w", err)
	}
	if err = auth.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrating credentials: %w", err)
	}
	l.Info("schema is up to date")
	return nil
}

func serve(ctx context.Context, cfg Config, l *zap.Logger) error {
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	root := NewCompositionRoot(cfg, db, l)

	feed, err := root.CreateChangeFeed()
	if err != nil {
		return fmt.Errorf("opening change feed: %w", err)
	}
	feed.OnSubscribersChanged(func(n int) { metrics.LiveSubscriptions.Set(float64(n)) })

	provider, err := root.CreateSessionProvider()
	if err != nil {
		return fmt.Errorf("creating session provider: %w", err)
	}

	liveViews := root.CreateViews(feed)
	registry := session.NewRegistry(ctx, provider, liveViews, l)
	registry.OnSessionsChanged(func(n int) { metrics.OpenSessions.Set(float64(n)) })

	handlers, err := root.CreateHTTPHandlers(provider)
	if err != nil {
		return err
	}
	server := httpapi.NewServer(handlers, provider, registry, liveViews, l)
	e, err := httpapi.NewRouter(ctx, server, provider, cfg.ServiceKey, l)
	if err != nil {
		return err
	}

	publisher := root.CreateEventPublisher()
	defer func() {
		if err := publisher.Close(); err != nil {
			l.Warn("closing event publisher", zap.Error(err))
		}
	}()
	jobManager := root.CreateJobManager(publisher)
	notifier := root.CreateNewOrderNotifier(feed)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return feed.Run(gctx) })
	g.Go(func() error { return notifier.Run(gctx) })
	g.Go(func() error {
		if err := jobManager.StartAll(); err != nil {
			return err
		}
		<-gctx.Done()
		jobManager.StopAll()
		return nil
	})
	g.Go(func() error {
		l.Info("http server listening", zap.String("port", cfg.HTTPPort))
		if err := e.Start(":" + cfg.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		registry.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newSeedCommand(load func() (Config, *zap.Logger, error)) *cobra.Command {
	var count int

	c := &cobra.Command{
		Use:   "seed",
		Short: "Insert confirmed orders the way the ordering system does",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, l, err := load()
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			root := NewCompositionRoot(cfg, db, l)
			return seed(cmd.Context(), root.CreateCreateOrderCommandHandler(), count, l)
		},
	}
	c.Flags().IntVar(&count, "count", 10, "number of orders to insert")
	return c
}

func seed(ctx context.Context, handler *commands.CreateOrderCommandHandler, count int, l *zap.Logger) error {
	fake := faker.New()

	for i := 0; i < count; i++ {
		fee, err := kernel.Rupees(int64(fake.IntBetween(20, 60)))
		if err != nil {
			return err
		}

		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewID(),
			fmt.Sprintf("%d%09d", fake.IntBetween(6, 9), fake.IntBetween(0, 999999999)),
			fmt.Sprintf("%s, Bolpur", fake.Address().StreetAddress()),
			&fee,
		)
		if err != nil {
			return err
		}
		if err = handler.Handle(ctx, cmd); err != nil {
			return fmt.Errorf("inserting order %d: %w", i+1, err)
		}
	}

	l.Info("seeded orders", zap.Int("count", count))
	return nil
}
