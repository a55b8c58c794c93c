package builder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"

	"github.com/hyperlane-xyz/safe-ica/ica-builder/chains"
	icalog "github.com/hyperlane-xyz/safe-ica/ica-service/log"
	icarpc "github.com/hyperlane-xyz/safe-ica/ica-service/rpc"
	"github.com/hyperlane-xyz/safe-ica/ica-service/testutils"
)

const registryTemplate = `
[[chains]]
name = "ethereum"
domain_id = 1
type = "mainnet"
rpc_url = "%[1]s"
block_explorer_url = "https://etherscan.io/"
router_address = "0x28DB114018576cF6c9A523C17903455A161d18C4"

[[chains]]
name = "polygon"
domain_id = 137
type = "mainnet"
rpc_url = "%[1]s"
block_explorer_url = "https://polygonscan.com"
router_address = "0x28DB114018576cF6c9A523C17903455A161d18C4"
`

func startTestService(t *testing.T) (*InterchainService, *gethrpc.Client, *testutils.FakeChain) {
	t.Helper()
	chain := testutils.NewFakeChain(t)
	chain.Accounts[testutils.AccountKey{Domain: 1, Sender: safeAddress}] = icaAddress

	path := filepath.Join(t.TempDir(), "registry.toml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(registryTemplate, chain.URL)), 0o644))

	cfg := &CLIConfig{
		RegistryPath:   path,
		CallTimeout:    time.Second,
		MetricsEnabled: true,
		RPC:            icarpc.CLIConfig{ListenAddr: "127.0.0.1", ListenPort: 0},
		LogConfig:      icalog.DefaultCLIConfig(),
	}
	require.NoError(t, cfg.Check())

	service, err := NewInterchainService(context.Background(), "test", cfg, testLogger())
	require.NoError(t, err)
	require.NoError(t, service.Start(context.Background()))
	t.Cleanup(func() {
		require.NoError(t, service.Stop(context.Background()))
		require.True(t, service.Stopped())
	})

	client, err := gethrpc.Dial("http://" + service.RPCEndpoint())
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return service, client, chain
}

func TestServiceInterchainAPI(t *testing.T) {
	_, client, _ := startTestService(t)

	calls := []map[string]interface{}{
		{"to": "0x000000000000000000000000000000000000000a", "data": "0x1234", "value": "0"},
		{"to": "0x000000000000000000000000000000000000000b", "data": "0x5678"},
	}

	var supported bool
	require.NoError(t, client.Call(&supported, "ica_isBatchSupported", calls))
	require.True(t, supported)

	var txs []Transaction
	require.NoError(t, client.Call(&txs, "ica_translateTransactions", "ethereum", "polygon", calls))
	require.Len(t, txs, 1)
	require.Equal(t, "0", txs[0].Value)
	require.Equal(t, ethereumRouter, txs[0].To)

	var decoded DispatchArgs
	require.NoError(t, client.Call(&decoded, "ica_decodeDispatch", txs[0].Data))
	require.Equal(t, uint32(137), decoded.DestinationDomain)
	require.Equal(t, []DispatchCall{
		{To: common.HexToAddress("0xa"), Data: hexutil.MustDecode("0x1234")},
		{To: common.HexToAddress("0xb"), Data: hexutil.MustDecode("0x5678")},
	}, decoded.Calls)

	var account string
	require.NoError(t, client.Call(&account, "ica_getInterchainAccount", "ethereum", "polygon", safeAddress))
	require.Equal(t, icaAddress.Hex(), account)

	var link string
	require.NoError(t, client.Call(&link, "ica_originExplorerUrl", "ethereum", "0xdead"))
	require.Equal(t, "https://etherscan.io/tx/0xdead", link)
	require.NoError(t, client.Call(&link, "ica_interchainExplorerUrl", "0xdead"))
	require.Equal(t, "https://explorer.hyperlane.xyz/?search=0xdead", link)
}

func TestServiceRejectsValueBatch(t *testing.T) {
	_, client, _ := startTestService(t)

	calls := []map[string]interface{}{
		{"to": "0x000000000000000000000000000000000000000a", "data": "0x00", "value": "5"},
	}

	var supported bool
	require.NoError(t, client.Call(&supported, "ica_isBatchSupported", calls))
	require.False(t, supported)

	var txs []Transaction
	err := client.Call(&txs, "ica_translateTransactions", "ethereum", "polygon", calls)
	require.ErrorContains(t, err, ErrValueTransfer.Error())
}

func TestServiceChainsAPI(t *testing.T) {
	_, client, _ := startTestService(t)

	var supported []chains.Chain
	require.NoError(t, client.Call(&supported, "chains_supportedChains"))
	require.Len(t, supported, 2)
	require.Equal(t, "ethereum", supported[0].Name)

	var remote string
	require.NoError(t, client.Call(&remote, "chains_defaultRemoteChain", "ethereum"))
	require.Equal(t, "polygon", remote)

	var info chains.Chain
	require.NoError(t, client.Call(&info, "chains_chainInfo", "polygon"))
	require.Equal(t, uint32(137), info.DomainID)
	require.Error(t, client.Call(&info, "chains_chainInfo", "solana"))
}

func TestServiceMetrics(t *testing.T) {
	service, client, _ := startTestService(t)

	var account string
	require.NoError(t, client.Call(&account, "ica_getInterchainAccount", "ethereum", "polygon", safeAddress))

	resp, err := http.Get("http://" + service.RPCEndpoint() + icarpc.MetricsPath)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `ica_account_resolutions_total{outcome="ok"} 1`)
}

func TestServiceInvalidRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[chains]]\nname = \"ethereum\"\n"), 0o644))

	cfg := &CLIConfig{
		RegistryPath: path,
		CallTimeout:  time.Second,
		RPC:          icarpc.CLIConfig{ListenAddr: "127.0.0.1"},
	}
	_, err := NewInterchainService(context.Background(), "test", cfg, testLogger())
	require.ErrorIs(t, err, chains.ErrMissingDomain)
}

func TestCLIConfigCheck(t *testing.T) {
	cfg := &CLIConfig{CallTimeout: 0, RPC: icarpc.CLIConfig{ListenPort: 8545}}
	require.Error(t, cfg.Check())

	cfg.CallTimeout = time.Second
	require.NoError(t, cfg.Check())
}

func TestServiceRejectsIncompleteCalls(t *testing.T) {
	_, client, _ := startTestService(t)

	var txs []Transaction
	err := client.Call(&txs, "ica_translateTransactions", "ethereum", "polygon", []map[string]interface{}{
		{"to": "0x000000000000000000000000000000000000000a"},
	})
	require.ErrorContains(t, err, "missing required field 'data'")

	err = client.Call(&txs, "ica_translateTransactions", "ethereum", "polygon", []map[string]interface{}{
		{"data": "0x1234"},
	})
	require.ErrorContains(t, err, "missing required field 'to'")
	require.Empty(t, txs)
}
