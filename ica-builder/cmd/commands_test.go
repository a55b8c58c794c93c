package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/hyperlane-xyz/safe-ica/ica-builder/builder"
	"github.com/hyperlane-xyz/safe-ica/ica-builder/flags"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := cli.NewApp()
	app.Flags = flags.Flags
	app.Writer = &out
	app.Commands = []*cli.Command{translateCommand, accountCommand, chainsCommand}
	err := app.RunContext(context.Background(), append([]string{"ica-builder"}, args...))
	return out.String(), err
}

func TestTranslateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.json")
	calls := `[
		{"to": "0x000000000000000000000000000000000000000a", "data": "0x1234", "value": "0"},
		{"to": "0x000000000000000000000000000000000000000b", "data": "0x5678"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(calls), 0o644))

	out, err := runApp(t, "translate", "--origin", "ethereum", "--calls", path)
	require.NoError(t, err)
	require.Contains(t, out, `"value": "0"`)

	var txs []builder.Transaction
	require.NoError(t, json.Unmarshal([]byte(out), &txs))
	require.Len(t, txs, 1)

	domain, decoded, err := builder.DecodeDispatch(txs[0].Data)
	require.NoError(t, err)
	require.Equal(t, uint32(137), domain, "ethereum defaults to polygon as remote")
	require.Len(t, decoded, 2)
}

func TestTranslateCommandRejectsValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.json")
	calls := `[{"to": "0x000000000000000000000000000000000000000a", "data": "0x00", "value": "5"}]`
	require.NoError(t, os.WriteFile(path, []byte(calls), 0o644))

	_, err := runApp(t, "translate", "--origin", "ethereum", "--remote", "polygon", "--calls", path)
	require.ErrorIs(t, err, builder.ErrValueTransfer)
}

func TestChainsCommand(t *testing.T) {
	out, err := runApp(t, "chains")
	require.NoError(t, err)
	require.Contains(t, out, "ethereum")
	require.Contains(t, out, "moonbasealpha")
}

func TestAccountCommandInvalidAddress(t *testing.T) {
	_, err := runApp(t, "account", "--origin", "ethereum", "--address", "nope")
	require.ErrorContains(t, err, "invalid address")
}
