package flags

import (
	"github.com/urfave/cli/v2"

	icaservice "github.com/hyperlane-xyz/safe-ica/ica-service"
	icalog "github.com/hyperlane-xyz/safe-ica/ica-service/log"
	icarpc "github.com/hyperlane-xyz/safe-ica/ica-service/rpc"
	"github.com/hyperlane-xyz/safe-ica/ica-service/sources"
)

const EnvVarPrefix = "ICA_BUILDER"

func prefixEnvVars(name string) []string {
	return icaservice.PrefixEnvVar(EnvVarPrefix, name)
}

var (
	RegistryFlag = &cli.PathFlag{
		Name:    "registry",
		Usage:   "TOML chain registry. The embedded registry is used when unset",
		EnvVars: prefixEnvVars("REGISTRY"),
	}
	CallTimeoutFlag = &cli.DurationFlag{
		Name:    "call-timeout",
		Usage:   "Timeout of a getInterchainAccount read against a remote chain",
		Value:   sources.DefaultCallTimeout,
		EnvVars: prefixEnvVars("CALL_TIMEOUT"),
	}
	MetricsEnabledFlag = &cli.BoolFlag{
		Name:    "metrics.enabled",
		Usage:   "Serve prometheus metrics on /metrics",
		Value:   true,
		EnvVars: prefixEnvVars("METRICS_ENABLED"),
	}
)

// Flags of the one-shot subcommands.
var (
	OriginFlag = &cli.StringFlag{
		Name:     "origin",
		Usage:    "Origin chain name",
		Required: true,
	}
	RemoteFlag = &cli.StringFlag{
		Name:  "remote",
		Usage: "Remote chain name. Defaults to the preselected remote of the origin",
	}
	CallsFlag = &cli.PathFlag{
		Name:  "calls",
		Usage: "JSON file with the batch of {to, value, data} calls, '-' for stdin",
		Value: "-",
	}
	AddressFlag = &cli.StringFlag{
		Name:     "address",
		Usage:    "Origin address controlling the interchain account",
		Required: true,
	}
	AllFlag = &cli.BoolFlag{
		Name:  "all",
		Usage: "List unsupported registry chains too",
	}
)

func init() {
	Flags = []cli.Flag{
		RegistryFlag,
		CallTimeoutFlag,
		MetricsEnabledFlag,
	}

	Flags = append(Flags, icarpc.CLIFlags(EnvVarPrefix)...)
	Flags = append(Flags, icalog.CLIFlags(EnvVarPrefix)...)
}

var Flags []cli.Flag

// EnvVars returns every environment variable read by Flags.
func EnvVars() []string {
	var out []string
	for _, f := range Flags {
		if envFlag, ok := f.(interface{ GetEnvVars() []string }); ok {
			out = append(out, envFlag.GetEnvVars()...)
		}
	}
	return out
}

