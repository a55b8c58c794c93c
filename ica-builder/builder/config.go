package builder

import (
	"errors"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hyperlane-xyz/safe-ica/ica-builder/chains"
	"github.com/hyperlane-xyz/safe-ica/ica-builder/flags"
	icalog "github.com/hyperlane-xyz/safe-ica/ica-service/log"
	icarpc "github.com/hyperlane-xyz/safe-ica/ica-service/rpc"
)

type CLIConfig struct {
	// RegistryPath is a TOML chain registry; empty selects the embedded one.
	RegistryPath   string
	CallTimeout    time.Duration
	MetricsEnabled bool

	RPC       icarpc.CLIConfig
	LogConfig icalog.CLIConfig
}

func (c *CLIConfig) Check() error {
	if c.CallTimeout <= 0 {
		return errors.New("call timeout must be positive")
	}
	return c.RPC.Check()
}

// LoadRegistry reads and validates the configured chain registry.
func (c *CLIConfig) LoadRegistry() (*chains.Registry, error) {
	registry := chains.Default()
	if c.RegistryPath != "" {
		var err error
		if registry, err = chains.LoadFile(c.RegistryPath); err != nil {
			return nil, err
		}
	}
	if err := registry.Validate(); err != nil {
		return nil, err
	}
	return registry, nil
}

func NewConfig(ctx *cli.Context) *CLIConfig {
	return &CLIConfig{
		RegistryPath:   ctx.Path(flags.RegistryFlag.Name),
		CallTimeout:    ctx.Duration(flags.CallTimeoutFlag.Name),
		MetricsEnabled: ctx.Bool(flags.MetricsEnabledFlag.Name),

		RPC:       icarpc.ReadCLIConfig(ctx),
		LogConfig: icalog.ReadCLIConfig(ctx),
	}
}
