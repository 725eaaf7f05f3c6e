package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/forgelight/forge-api/internal/config"
	"github.com/forgelight/forge-api/internal/engine"
	forgeorch "github.com/forgelight/forge-api/internal/orchestrators/forge"
	monsterorch "github.com/forgelight/forge-api/internal/orchestrators/monster"
	"github.com/forgelight/forge-api/internal/pkg/idgen"
	"github.com/forgelight/forge-api/internal/pkg/rulecache"
	"github.com/forgelight/forge-api/internal/redis"
	"github.com/forgelight/forge-api/internal/repositories/costtable"
	itemrepo "github.com/forgelight/forge-api/internal/repositories/item"
	monsterrepo "github.com/forgelight/forge-api/internal/repositories/monster"
	rulesetrepo "github.com/forgelight/forge-api/internal/repositories/ruleset"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the forge-api gRPC server with all configured services.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	setupLogging(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	deps, err := buildDependencies(ctx, cfg)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	// Domain RPC handlers register here once the API surface lands; the
	// orchestrators in deps are the implementations they will wrap.
	_ = deps

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.Port)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down gRPC server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// dependencies holds the wired service implementations.
type dependencies struct {
	Forge   *forgeorch.Orchestrator
	Monster *monsterorch.Orchestrator
}

func buildDependencies(ctx context.Context, cfg *config.Config) (*dependencies, error) {
	client, err := redis.NewClient(cfg.RedisAddr, &redis.Options{
		PoolSize:        cfg.RedisPoolSize,
		MinIdleConns:    cfg.RedisMinIdle,
		ConnMaxIdleTime: cfg.RedisMaxIdleTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}

	items, err := itemrepo.NewRedis(&itemrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create item repository: %w", err)
	}
	monsters, err := monsterrepo.NewRedis(&monsterrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create monster repository: %w", err)
	}
	rulesets, err := rulesetrepo.NewRedis(&rulesetrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create ruleset repository: %w", err)
	}
	costs, err := costtable.NewRedis(&costtable.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create cost table repository: %w", err)
	}

	rules, err := rulecache.New(&rulecache.Config{
		TTL: cfg.RulesCacheTTL,
		Fetch: func(ctx context.Context) (*rulecache.Bundle, error) {
			rulesOut, err := rulesets.Get(ctx, rulesetrepo.GetInput{})
			if err != nil {
				return nil, err
			}
			costsOut, err := costs.Get(ctx, costtable.GetInput{})
			if err != nil {
				return nil, err
			}
			return &rulecache.Bundle{
				Ruleset:    rulesOut.Ruleset,
				ConfigRows: costsOut.ConfigRows,
				CostRows:   costsOut.CostRows,
			}, nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create rule cache: %w", err)
	}

	eng, err := engine.New(&engine.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	forgeService, err := forgeorch.NewOrchestrator(&forgeorch.Config{
		ItemRepo:    items,
		Rules:       rules,
		Engine:      eng,
		IDGenerator: idgen.NewPrefixed("item"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create forge orchestrator: %w", err)
	}

	monsterService, err := monsterorch.NewOrchestrator(&monsterorch.Config{
		MonsterRepo: monsters,
		Rules:       rules,
		Engine:      eng,
		IDGenerator: idgen.NewPrefixed("mon"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create monster orchestrator: %w", err)
	}

	return &dependencies{
		Forge:   forgeService,
		Monster: monsterService,
	}, nil
}

func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
