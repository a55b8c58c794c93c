package builder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

const APINamespace = "ica"

type InterchainAPIBackend interface {
	Translate(origin, remote string, calls []DestinationCall) ([]Transaction, error)
	ResolveAccountAddress(ctx context.Context, origin, remote string, originAddress common.Address) string
	OriginExplorerURL(origin, txHash string) string
}

type DispatchArgs struct {
	DestinationDomain uint32         `json:"destinationDomain"`
	Calls             []DispatchCall `json:"calls"`
}

type DispatchCall struct {
	To   common.Address `json:"to"`
	Data hexutil.Bytes  `json:"data"`
}

type interchainAPI struct {
	b InterchainAPIBackend
}

func NewInterchainAPI(b InterchainAPIBackend) *interchainAPI {
	return &interchainAPI{b: b}
}

func GetInterchainAPI(api *interchainAPI) gethrpc.API {
	return gethrpc.API{
		Namespace: APINamespace,
		Service:   api,
	}
}

func (api *interchainAPI) IsBatchSupported(calls []DestinationCall) bool {
	return IsBatchSupported(calls)
}

func (api *interchainAPI) TranslateTransactions(origin, remote string, calls []DestinationCall) ([]Transaction, error) {
	return api.b.Translate(origin, remote, calls)
}

func (api *interchainAPI) DecodeDispatch(data hexutil.Bytes) (*DispatchArgs, error) {
	domain, calls, err := DecodeDispatch(data)
	if err != nil {
		return nil, err
	}
	args := &DispatchArgs{
		DestinationDomain: domain,
		Calls:             make([]DispatchCall, len(calls)),
	}
	for i, call := range calls {
		args.Calls[i] = DispatchCall{To: call.To, Data: call.Data}
	}
	return args, nil
}

func (api *interchainAPI) GetInterchainAccount(ctx context.Context, origin, remote string, originAddress common.Address) string {
	return api.b.ResolveAccountAddress(ctx, origin, remote, originAddress)
}

func (api *interchainAPI) OriginExplorerUrl(origin, txHash string) string {
	return api.b.OriginExplorerURL(origin, txHash)
}

func (api *interchainAPI) InterchainExplorerUrl(txHash string) string {
	return InterchainExplorerLink(txHash)
}
