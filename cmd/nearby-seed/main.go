// Command nearby-seed loads, generates and clears guru/gig records in the
// store used by the nearby API. It is a local development tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/config"
	dbRedis "github.com/kailas-cloud/nearby/internal/db/redis"
	"github.com/kailas-cloud/nearby/internal/domain/geo"
	logpkg "github.com/kailas-cloud/nearby/internal/logger"
	"github.com/kailas-cloud/nearby/internal/repository/candidate"
	"github.com/kailas-cloud/nearby/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:    "nearby-seed",
		Usage:   "load sample gurus and gigs into the nearby store",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file to load before reading config",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:    "env",
				Usage:   "config environment (config/<env>.yaml)",
				Sources: cli.EnvVars("ENV"),
				Value:   "local",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "load",
				Usage:     "load a JSON array fixture of one entity type",
				ArgsUsage: "<file.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Usage: "guru or gig", Required: true},
				},
				Action: loadAction,
			},
			{
				Name:  "generate",
				Usage: "generate random records around a point",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Usage: "guru or gig", Required: true},
					&cli.IntFlag{Name: "count", Usage: "number of records", Value: 100},
					&cli.FloatFlag{Name: "lat", Usage: "center latitude", Value: 40.7128},
					&cli.FloatFlag{Name: "lng", Usage: "center longitude", Value: -74.0060},
					&cli.FloatFlag{Name: "radius", Usage: "scatter radius in miles", Value: 25},
				},
				Action: generateAction,
			},
			{
				Name:  "clear",
				Usage: "delete every record of one entity type",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Usage: "guru or gig", Required: true},
				},
				Action: clearAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// seedContext holds what every subcommand needs.
type seedContext struct {
	writer *candidate.Writer
	logger *zap.Logger
	close  func()
}

func newSeedContext(ctx context.Context, cmd *cli.Command) (*seedContext, error) {
	if err := godotenv.Load(cmd.String("env-file")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	env := cmd.String("env")
	cfg, err := config.Load(env)
	if err != nil {
		return nil, err
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:     cfg.Database.Addrs,
		Username:  cfg.Database.Username,
		Password:  cfg.Database.Password,
		DB:        cfg.Database.DB,
		ScanCount: cfg.Database.ScanCount,
	})
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}

	return &seedContext{
		writer: candidate.NewWriter(store, candidate.NewKeyspace(cfg.Storage.KeyPrefix)),
		logger: logger,
		close: func() {
			store.Close()
			_ = logger.Sync()
		},
	}, nil
}

func loadAction(ctx context.Context, cmd *cli.Command) error {
	t, err := parseEntityType(cmd.String("type"))
	if err != nil {
		return err
	}
	path := cmd.Args().First()
	if path == "" {
		return errors.New("fixture file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}
	recs, stats, err := parseFixture(t, data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	sc, err := newSeedContext(ctx, cmd)
	if err != nil {
		return err
	}
	defer sc.close()

	if err := sc.writer.Put(ctx, t, recs); err != nil {
		return err
	}
	sc.logger.Info("fixture loaded",
		zap.String("entity_type", string(t)),
		zap.String("file", path),
		zap.Int("records", stats.Records),
		zap.Int("generated_ids", stats.GeneratedID),
		zap.Int("without_location", stats.NoLocation),
	)
	return nil
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	t, err := parseEntityType(cmd.String("type"))
	if err != nil {
		return err
	}
	center, err := geo.NewCoordinate(cmd.Float("lat"), cmd.Float("lng"))
	if err != nil {
		return err
	}
	count := cmd.Int("count")
	if count <= 0 {
		return errors.New("count must be positive")
	}

	sc, err := newSeedContext(ctx, cmd)
	if err != nil {
		return err
	}
	defer sc.close()

	recs := generate(t, count, center, cmd.Float("radius"), rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	if err := sc.writer.Put(ctx, t, recs); err != nil {
		return err
	}
	sc.logger.Info("records generated",
		zap.String("entity_type", string(t)),
		zap.Int("records", len(recs)),
		zap.Float64("lat", center.Lat),
		zap.Float64("lng", center.Lng),
	)
	return nil
}

func clearAction(ctx context.Context, cmd *cli.Command) error {
	t, err := parseEntityType(cmd.String("type"))
	if err != nil {
		return err
	}

	sc, err := newSeedContext(ctx, cmd)
	if err != nil {
		return err
	}
	defer sc.close()

	n, err := sc.writer.Clear(ctx, t)
	if err != nil {
		return err
	}
	sc.logger.Info("records cleared", zap.String("entity_type", string(t)), zap.Int64("deleted", n))
	return nil
}
