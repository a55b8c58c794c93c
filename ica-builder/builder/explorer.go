package builder

import (
	"strings"

	"github.com/hyperlane-xyz/safe-ica/ica-builder/chains"
)

const InterchainExplorerURL = "https://explorer.hyperlane.xyz"

// OriginExplorerURL links to txHash on the origin chain explorer.
func OriginExplorerURL(registry *chains.Registry, origin, txHash string) string {
	chain, ok := registry.Lookup(origin)
	if !ok || chain.BlockExplorerURL == "" {
		return ""
	}
	return strings.TrimSuffix(chain.BlockExplorerURL, "/") + "/tx/" + txHash
}

// InterchainExplorerLink links to the message search of the interchain
// explorer.
func InterchainExplorerLink(txHash string) string {
	if txHash == "" {
		return ""
	}
	return InterchainExplorerURL + "/?search=" + txHash
}
