package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budgetforge/api"
	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/cache"
	"github.com/carson-networks/budgetforge/internal/config"
	"github.com/carson-networks/budgetforge/internal/events"
	"github.com/carson-networks/budgetforge/internal/logging"
	"github.com/carson-networks/budgetforge/internal/operator"
	"github.com/carson-networks/budgetforge/internal/scheduler"
	"github.com/carson-networks/budgetforge/internal/service"
	"github.com/carson-networks/budgetforge/internal/storage"
)

const startupPingTimeout = 5 * time.Second

func main() {
	logger := logging.SetupLogging()

	// Local development keeps settings in .env; it is fine for it to be absent.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "budgetforge",
		Usage: "personal finance API: accounts, transactions and bills",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "optional YAML config file, overridden by the environment",
				EnvVars: []string{"BUDGETFORGE_CONFIG"},
			},
		},
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API, the operator workers and the autopay scheduler",
				Action: func(c *cli.Context) error {
					return serve(c, logger)
				},
			},
			{
				Name:  "migrate",
				Usage: "apply pending database migrations and exit",
				Action: func(c *cli.Context) error {
					return migrate(c, logger)
				},
			},
			{
				Name:  "autopay",
				Usage: "pay every auto-pay bill that is due and exit",
				Action: func(c *cli.Context) error {
					return autopay(c, logger)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.WithError(err).Fatal("budgetforge")
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func migrate(c *cli.Context, logger *logrus.Logger) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := storage.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = storage.Migrate(db.DB, logger)
	return err
}

// runtime holds everything built from the config that commands share.
type runtime struct {
	storage   *storage.Storage
	operator  *operator.OperatorDelegator
	tokens    *auth.TokenService
	cache     cache.Cache
	publisher events.Publisher
	service   *service.Service
	closers   []func() error
}

func (r *runtime) close(logger *logrus.Logger) {
	r.operator.Stop()
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			logger.WithError(err).Warn("Shutdown.Close")
		}
	}
}

func build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*runtime, error) {
	db, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}
	rt := &runtime{storage: db, closers: []func() error{db.Close}}

	pingCtx, cancel := context.WithTimeout(ctx, startupPingTimeout)
	defer cancel()
	if err = db.Ping(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if cfg.RunMigrations {
		if _, err = storage.Migrate(db.DB, logger); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	rt.cache = cache.NoopCache{}
	if cfg.RedisAddress != "" {
		redisCache := cache.NewRedisCache(cache.RedisConfig{
			Address:    cfg.RedisAddress,
			Password:   cfg.RedisPassword,
			DB:         cfg.RedisDB,
			DefaultTTL: cfg.CacheTTL,
		})
		if err = redisCache.Ping(pingCtx); err != nil {
			logger.WithError(err).WithField("address", cfg.RedisAddress).Warn("Cache.Redis.Unavailable")
			_ = redisCache.Close()
		} else {
			rt.cache = redisCache
			rt.closers = append(rt.closers, redisCache.Close)
		}
	}

	rt.publisher = events.NewLogPublisher(logger)
	if cfg.AMQPURL != "" {
		amqpPublisher, dialErr := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if dialErr != nil {
			logger.WithError(dialErr).Warn("Events.AMQP.Unavailable")
		} else {
			rt.publisher = amqpPublisher
			rt.closers = append(rt.closers, amqpPublisher.Close)
		}
	}

	rt.tokens = auth.NewTokenService(auth.TokenConfig{
		Secret:          cfg.JWTSecret,
		Issuer:          cfg.JWTIssuer,
		Audience:        cfg.JWTAudience,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	})

	rt.operator = operator.NewOperatorDelegator(db, cfg.OperatorWorkers, logger)
	rt.operator.Start()

	rt.service = service.NewService(service.Dependencies{
		Reader:   db.Read(),
		Operator: rt.operator,
		Hasher:   auth.NewPasswordHasher(auth.DefaultArgon2Params),
		Tokens:   rt.tokens,
		Cache:    rt.cache,
		Events:   rt.publisher,
		Log:      logger,
	})
	return rt, nil
}

func serve(c *cli.Context, logger *logrus.Logger) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.close(logger)

	logger.Info("budgetforge starting")

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		rest := api.Rest{
			Logger:  logger,
			Port:    cfg.HTTPPort,
			Service: rt.service,
			Tokens:  rt.tokens,
			Cache:   rt.cache,
		}
		return rest.Serve(groupCtx)
	})

	if cfg.AutopayEnabled {
		sched, schedErr := scheduler.New(cfg.AutopaySchedule, rt.service.Bill, logger)
		if schedErr != nil {
			stop()
			_ = group.Wait()
			return schedErr
		}
		group.Go(func() error {
			return sched.Run(groupCtx)
		})
	}

	err = group.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("budgetforge stopped")
	return nil
}

func autopay(c *cli.Context, logger *logrus.Logger) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	rt, err := build(c.Context, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.close(logger)

	paid, failed, err := rt.service.Bill.AutoPayDue(c.Context)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"paid": paid, "failed": failed}).Info("Autopay.Complete")
	return nil
}
