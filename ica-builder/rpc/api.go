package rpc

import (
	"fmt"

	gethrpc "github.com/ethereum/go-ethereum/rpc"

	"github.com/hyperlane-xyz/safe-ica/ica-builder/chains"
)

const APINamespace = "chains"

type chainsAPI struct {
	registry *chains.Registry
}

func NewChainsAPI(registry *chains.Registry) *chainsAPI {
	return &chainsAPI{registry: registry}
}

func GetChainsAPI(api *chainsAPI) gethrpc.API {
	return gethrpc.API{
		Namespace: APINamespace,
		Service:   api,
	}
}

func (api *chainsAPI) SupportedChains() []chains.Chain {
	return api.registry.Supported()
}

func (api *chainsAPI) DefaultRemoteChain(origin string) string {
	return api.registry.DefaultRemote(origin)
}

func (api *chainsAPI) ChainInfo(name string) (*chains.Chain, error) {
	chain, ok := api.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", chains.ErrUnknownChain, name)
	}
	return &chain, nil
}
