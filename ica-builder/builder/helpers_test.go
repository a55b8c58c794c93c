package builder

import (
	"io"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/hyperlane-xyz/safe-ica/ica-builder/chains"
	"github.com/stretchr/testify/require"
)

var (
	ethereumRouter = common.HexToAddress("0x28DB114018576cF6c9A523C17903455A161d18C4")
	goerliRouter   = common.HexToAddress("0xc61Bbf8eAb0b748Ecb532A7ffC49Ab7ca6D3a39D")
)

func testRegistry(t *testing.T, rpcURL string) *chains.Registry {
	t.Helper()
	r, err := chains.NewRegistry([]chains.Chain{
		{
			Name:             "ethereum",
			DomainID:         1,
			Type:             chains.Mainnet,
			RPCURL:           rpcURL,
			BlockExplorerURL: "https://etherscan.io/",
			RouterAddress:    ethereumRouter,
		},
		{
			Name:             "polygon",
			DomainID:         137,
			Type:             chains.Mainnet,
			RPCURL:           rpcURL,
			BlockExplorerURL: "https://polygonscan.com",
			RouterAddress:    ethereumRouter,
		},
		{
			Name:          "goerli",
			DomainID:      5,
			Type:          chains.Testnet,
			RouterAddress: goerliRouter,
		},
		{
			Name: "norouter",
		},
	}, nil)
	require.NoError(t, err)
	return r
}

func testLogger() log.Logger {
	return log.NewLogger(log.NewTerminalHandler(io.Discard, false))
}
