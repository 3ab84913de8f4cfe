package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/go-redis/redis/v8"
	"github.com/pbaille/things/internal/config"
	"github.com/pbaille/things/internal/domain"
	"github.com/pbaille/things/internal/observability"
	"github.com/pbaille/things/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configPath string
	v          = config.New()
	cfg        *config.Config
	logger     = observability.Discard()
)

// objectGraph is a store backend that can also seed projects and areas
type objectGraph interface {
	domain.ObjectStore
	AddProject(ctx context.Context, name, areaID string) (*domain.Object, error)
	AddArea(ctx context.Context, name string) (*domain.Object, error)
	Close() error
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "things",
		Short:         "Create, update and list to-dos in a Things-style object graph",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(v, configPath)
			if err != nil {
				return err
			}
			logger, err = observability.New(os.Stderr, observability.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})
			return err
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.Path(), "config file")
	flags.String("backend", "", "object store backend (sqlite or redis)")
	flags.String("db", "", "sqlite database path")
	flags.String("redis-addr", "", "redis address")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text or json)")
	bindFlags(v, rootCmd, map[string]string{
		"backend":        "backend",
		"sqlite.path":    "db",
		"redis.addr":     "redis-addr",
		"logging.level":  "log-level",
		"logging.format": "log-format",
	})

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(updateCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(areaCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(configCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		v.BindPFlag(key, cmd.PersistentFlags().Lookup(name))
	}
}

func openStore(ctx context.Context) (objectGraph, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		s, err := store.NewRedisStore(ctx, client, cfg.Redis.Prefix)
		if err != nil {
			client.Close()
			return nil, err
		}
		return s, nil
	default:
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(cfg.SQLite.Path), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		s, err := store.New(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
