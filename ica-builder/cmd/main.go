package main

import (
	"context"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/hyperlane-xyz/safe-ica/ica-builder/builder"
	"github.com/hyperlane-xyz/safe-ica/ica-builder/flags"
	icaservice "github.com/hyperlane-xyz/safe-ica/ica-service"
	"github.com/hyperlane-xyz/safe-ica/ica-service/cliapp"
	icalog "github.com/hyperlane-xyz/safe-ica/ica-service/log"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	icalog.SetupDefaults()

	for _, warning := range icaservice.ValidateEnvVars(flags.EnvVarPrefix, flags.EnvVars(), os.Environ()) {
		log.Warn(warning)
	}

	app := cli.NewApp()
	app.Flags = flags.Flags
	app.Version = icaservice.FormatVersion(Version, GitCommit, GitDate, "")
	app.Name = "ica-builder"
	app.Usage = "Interchain account batch builder"
	app.Description = "Wraps batches of remote chain calls into a single interchain account router dispatch on the origin chain"
	app.Action = cliapp.LifecycleCmd(builder.Main(Version))
	app.Commands = []*cli.Command{
		translateCommand,
		accountCommand,
		chainsCommand,
	}

	err := app.RunContext(context.Background(), os.Args)
	if err != nil {
		log.Crit("Application failed", "message", err)
	}
}
