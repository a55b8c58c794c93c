package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/hyperlane-xyz/safe-ica/ica-builder/builder"
	"github.com/hyperlane-xyz/safe-ica/ica-builder/chains"
	"github.com/hyperlane-xyz/safe-ica/ica-builder/flags"
	icalog "github.com/hyperlane-xyz/safe-ica/ica-service/log"
	"github.com/hyperlane-xyz/safe-ica/ica-service/sources"
)

var translateCommand = &cli.Command{
	Name:   "translate",
	Usage:  "Print the origin transaction dispatching a batch of remote calls",
	Flags:  []cli.Flag{flags.OriginFlag, flags.RemoteFlag, flags.CallsFlag},
	Action: translate,
}

var accountCommand = &cli.Command{
	Name:   "account",
	Usage:  "Print the interchain account of an origin address on the remote chain",
	Flags:  []cli.Flag{flags.OriginFlag, flags.RemoteFlag, flags.AddressFlag},
	Action: account,
}

var chainsCommand = &cli.Command{
	Name:   "chains",
	Usage:  "List the chains of the registry",
	Flags:  []cli.Flag{flags.AllFlag},
	Action: listChains,
}

func loadRegistry(ctx *cli.Context) (*chains.Registry, error) {
	cfg := builder.NewConfig(ctx)
	registry, err := cfg.LoadRegistry()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load chain registry")
	}
	return registry, nil
}

func remoteOf(ctx *cli.Context, registry *chains.Registry) string {
	if remote := ctx.String(flags.RemoteFlag.Name); remote != "" {
		return remote
	}
	return registry.DefaultRemote(ctx.String(flags.OriginFlag.Name))
}

func readCalls(path string) ([]builder.DestinationCall, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r = file
	}
	var calls []builder.DestinationCall
	if err := json.NewDecoder(r).Decode(&calls); err != nil {
		return nil, errors.Wrap(err, "failed to decode calls")
	}
	return calls, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func translate(ctx *cli.Context) error {
	registry, err := loadRegistry(ctx)
	if err != nil {
		return err
	}
	calls, err := readCalls(ctx.Path(flags.CallsFlag.Name))
	if err != nil {
		return err
	}

	txs, err := builder.NewTranslator(registry).Translate(ctx.String(flags.OriginFlag.Name), remoteOf(ctx, registry), calls)
	if err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, txs)
}

func account(ctx *cli.Context) error {
	registry, err := loadRegistry(ctx)
	if err != nil {
		return err
	}
	address := ctx.String(flags.AddressFlag.Name)
	if !common.IsHexAddress(address) {
		return fmt.Errorf("invalid address %q", address)
	}

	cfg := builder.NewConfig(ctx)
	logger := icalog.NewLogger(os.Stderr, cfg.LogConfig)
	routers := sources.NewRouterClient(logger, &sources.RouterClientConfig{CallTimeout: cfg.CallTimeout}, sources.DialEthClient)
	backend := builder.NewBackend(logger, registry, routers, builder.NewMetrics())

	resolved := backend.ResolveAccountAddress(ctx.Context, ctx.String(flags.OriginFlag.Name), remoteOf(ctx, registry), common.HexToAddress(address))
	if resolved == "" {
		return errors.New("interchain account could not be resolved")
	}
	_, err = fmt.Fprintln(ctx.App.Writer, resolved)
	return err
}

func listChains(ctx *cli.Context) error {
	registry, err := loadRegistry(ctx)
	if err != nil {
		return err
	}
	list := registry.Supported()
	if ctx.Bool(flags.AllFlag.Name) {
		list = registry.Chains()
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetHeader([]string{"Name", "Domain", "Type", "Router", "Explorer", "Supported"})
	for _, c := range list {
		table.Append([]string{
			c.Name,
			strconv.FormatUint(uint64(c.DomainID), 10),
			string(c.Type),
			c.RouterAddress.Hex(),
			c.BlockExplorerURL,
			strconv.FormatBool(registry.IsSupported(c.Name)),
		})
	}
	table.Render()
	return nil
}
