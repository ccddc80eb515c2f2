// Package roster parses roster service flags and launches the service.
package roster

import (
	"context"
	"flag"
	"fmt"
	"net"
	"strconv"
	"time"

	entrypoint "github.com/louisbranch/realmkeep/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/realmkeep/internal/platform/grpc"
	"github.com/louisbranch/realmkeep/internal/platform/logging"
	"github.com/louisbranch/realmkeep/internal/platform/otel"
	"github.com/louisbranch/realmkeep/internal/platform/timeouts"
	server "github.com/louisbranch/realmkeep/internal/services/roster/app"
	"go.uber.org/zap"
)

// Config holds roster command configuration.
type Config struct {
	HTTPAddr    string        `env:"ROSTER_HTTP_ADDR" envDefault:":8095"`
	GRPCPort    int           `env:"ROSTER_GRPC_PORT" envDefault:"8096"`
	DBPath      string        `env:"ROSTER_DB_PATH" envDefault:"data/roster.db"`
	CacheTTL    time.Duration `env:"ROSTER_CACHE_TTL" envDefault:"30s"`
	Logging     logging.Config
	Telemetry   otel.Config
	HealthCheck bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "The roster HTTP API address")
	fs.IntVar(&cfg.GRPCPort, "grpc-port", cfg.GRPCPort, "The roster gRPC health port")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The roster SQLite database path")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "How long listings stay cached; 0 disables")
	fs.BoolVar(&cfg.HealthCheck, "healthcheck", false, "Probe a running roster service and exit")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.GRPCPort < 0 || cfg.GRPCPort > 65535 {
		return Config{}, fmt.Errorf("grpc port %d out of range", cfg.GRPCPort)
	}
	if cfg.CacheTTL < 0 {
		return Config{}, fmt.Errorf("cache ttl %s must not be negative", cfg.CacheTTL)
	}
	return cfg, nil
}

// Run starts the roster service, or probes a running one in healthcheck mode.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.Logging, entrypoint.ServiceRoster)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.HealthCheck {
		return healthcheck(ctx, cfg, logger)
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRoster, entrypoint.RunOptions{
		Telemetry: cfg.Telemetry,
		Logger:    logger,
	}, func(ctx context.Context) error {
		return server.Run(ctx, server.Config{
			HTTPAddr: cfg.HTTPAddr,
			GRPCAddr: grpcAddr(cfg.GRPCPort),
			DBPath:   cfg.DBPath,
			CacheTTL: cfg.CacheTTL,
			Logger:   logger,
		})
	})
}

func healthcheck(ctx context.Context, cfg Config, logger *zap.Logger) error {
	probeCtx, cancel := context.WithTimeout(ctx, timeouts.HealthProbe)
	defer cancel()
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.GRPCPort))
	return platformgrpc.Probe(probeCtx, addr, server.HealthService, logger)
}

func grpcAddr(port int) string {
	return ":" + strconv.Itoa(port)
}
