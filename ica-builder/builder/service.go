package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/hyperlane-xyz/safe-ica/ica-builder/chains"
	chainsrpc "github.com/hyperlane-xyz/safe-ica/ica-builder/rpc"
	"github.com/hyperlane-xyz/safe-ica/ica-service/cliapp"
	icalog "github.com/hyperlane-xyz/safe-ica/ica-service/log"
	icarpc "github.com/hyperlane-xyz/safe-ica/ica-service/rpc"
	"github.com/hyperlane-xyz/safe-ica/ica-service/sources"
)

type InterchainService struct {
	Log      log.Logger
	Registry *chains.Registry
	Backend  *Backend
	Metrics  *Metrics

	Version   string
	rpcServer *icarpc.Server

	stopped atomic.Bool
}

// Main is the entrypoint of the serve command.
func Main(version string) cliapp.LifecycleAction {
	return func(cliCtx *cli.Context, closeApp context.CancelCauseFunc) (cliapp.Lifecycle, error) {
		cfg := NewConfig(cliCtx)
		if err := cfg.Check(); err != nil {
			return nil, fmt.Errorf("invalid CLI flags: %w", err)
		}

		l := icalog.NewLogger(os.Stdout, cfg.LogConfig)
		l.Info("Initializing interchain account builder", "version", version)
		return NewInterchainService(cliCtx.Context, version, cfg, l)
	}
}

func NewInterchainService(ctx context.Context, version string, cfg *CLIConfig, log log.Logger) (*InterchainService, error) {
	var is InterchainService
	if err := is.initFromCLIConfig(ctx, version, cfg, log); err != nil {
		return nil, errors.Join(err, is.Stop(ctx))
	}

	return &is, nil
}

func (is *InterchainService) initFromCLIConfig(ctx context.Context,
	version string, cfg *CLIConfig, log log.Logger) error {
	is.Version = version
	is.Log = log
	is.Metrics = NewMetrics()

	registry, err := cfg.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load chain registry: %w", err)
	}
	is.Registry = registry
	is.Log.Info("Loaded chain registry", "chains", len(registry.Chains()), "supported", len(registry.Supported()))

	routers := sources.NewRouterClient(is.Log, &sources.RouterClientConfig{CallTimeout: cfg.CallTimeout}, sources.DialEthClient)
	is.Backend = NewBackend(is.Log, registry, routers, is.Metrics)

	if err := is.initRPCServer(cfg); err != nil {
		return fmt.Errorf("failed to start RPC server: %w", err)
	}

	return nil
}

func (is *InterchainService) Start(ctx context.Context) error {
	is.Log.Info("Starting interchain account builder")
	return nil
}

func (is *InterchainService) Stop(ctx context.Context) error {
	is.Log.Info("Stopping interchain account builder")
	var result error
	if is.rpcServer != nil {
		if err := is.rpcServer.Stop(); err != nil {
			result = errors.Join(result, fmt.Errorf("failed to stop RPC server: %w", err))
		}
	}

	if result == nil {
		is.stopped.Store(true)
		is.Log.Info("Interchain account builder stopped")
	}

	return result
}

func (is *InterchainService) Stopped() bool {
	return is.stopped.Load()
}

// RPCEndpoint returns the address the RPC server listens on.
func (is *InterchainService) RPCEndpoint() string {
	return is.rpcServer.Endpoint()
}

func (is *InterchainService) initRPCServer(cfg *CLIConfig) error {
	opts := []icarpc.ServerOption{icarpc.WithLogger(is.Log)}
	if cfg.MetricsEnabled {
		opts = append(opts, icarpc.WithMetricsHandler(promhttp.HandlerFor(is.Metrics.Registry(), promhttp.HandlerOpts{})))
	}
	server := icarpc.NewServer(
		cfg.RPC.ListenAddr,
		cfg.RPC.ListenPort,
		is.Version,
		opts...,
	)

	server.AddAPI(GetInterchainAPI(NewInterchainAPI(is.Backend)))
	server.AddAPI(chainsrpc.GetChainsAPI(chainsrpc.NewChainsAPI(is.Registry)))
	is.Log.Info("Interchain and chains APIs enabled")

	is.Log.Info("Starting RPC server", "addr", cfg.RPC.ListenAddr, "port", cfg.RPC.ListenPort)
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start RPC server: %w", err)
	}
	is.rpcServer = server
	return nil
}
