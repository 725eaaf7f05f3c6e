package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/forgelight/forge-api/internal/config"
	"github.com/forgelight/forge-api/internal/redis"
	"github.com/forgelight/forge-api/internal/repositories/costtable"
	rulesetrepo "github.com/forgelight/forge-api/internal/repositories/ruleset"
	"github.com/forgelight/forge-api/internal/seed"
)

var seedDir string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load rule YAML files into Redis",
	Long:  `Load damage types, attributes, traits, and pricing tables from a directory of YAML files.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedDir, "dir", "data", "directory of rule YAML files")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	setupLogging(cfg.LogLevel)

	ctx := context.Background()

	client, err := redis.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}

	rulesets, err := rulesetrepo.NewRedis(&rulesetrepo.RedisConfig{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create ruleset repository: %w", err)
	}
	costs, err := costtable.NewRedis(&costtable.RedisConfig{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create cost table repository: %w", err)
	}

	loader, err := seed.NewLoader(&seed.Config{
		RulesetRepo:   rulesets,
		CostTableRepo: costs,
	})
	if err != nil {
		return fmt.Errorf("failed to create seed loader: %w", err)
	}

	if err := loader.LoadDir(ctx, seedDir); err != nil {
		return fmt.Errorf("failed to seed from %s: %w", seedDir, err)
	}

	slog.Info("seed complete", "dir", seedDir)
	return nil
}
