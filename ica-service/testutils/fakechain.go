package testutils

import (
	"context"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/hyperlane-xyz/safe-ica/ica-builder/bindings"
)

// FakeChain serves eth_call for getInterchainAccount over HTTP.
type FakeChain struct {
	URL string

	// Accounts maps (origin domain, sender) to the account returned.
	Accounts map[AccountKey]common.Address
	// Revert makes every call fail.
	Revert bool
	// Delay holds every call until it elapses or the request is cancelled.
	Delay time.Duration

	calls atomic.Int64
}

type AccountKey struct {
	Domain uint32
	Sender common.Address
}

// NewFakeChain starts a fake chain that is shut down with the test.
func NewFakeChain(t *testing.T) *FakeChain {
	t.Helper()
	chain := &FakeChain{Accounts: make(map[AccountKey]common.Address)}

	server := gethrpc.NewServer()
	if err := server.RegisterName("eth", &ethAPI{chain: chain}); err != nil {
		t.Fatalf("failed to register fake eth API: %v", err)
	}
	httpServer := httptest.NewServer(server)
	t.Cleanup(func() {
		httpServer.Close()
		server.Stop()
	})
	chain.URL = httpServer.URL
	return chain
}

// Calls returns the number of eth_call requests served.
func (c *FakeChain) Calls() int64 {
	return c.calls.Load()
}

type ethAPI struct {
	chain *FakeChain
}

func (api *ethAPI) Call(ctx context.Context, args map[string]interface{}, block string) (hexutil.Bytes, error) {
	api.chain.calls.Add(1)
	if api.chain.Delay > 0 {
		select {
		case <-time.After(api.chain.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if api.chain.Revert {
		return nil, fmt.Errorf("execution reverted")
	}

	input, ok := args["input"].(string)
	if !ok {
		input, ok = args["data"].(string)
	}
	if !ok {
		return nil, fmt.Errorf("missing call input")
	}
	data, err := hexutil.Decode(input)
	if err != nil {
		return nil, err
	}

	method := bindings.RouterMetaData().Methods[bindings.GetInterchainAccountMethod]
	if len(data) < 4 || string(data[:4]) != string(method.ID) {
		return nil, fmt.Errorf("unexpected selector")
	}
	values, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, err
	}
	key := AccountKey{Domain: values[0].(uint32), Sender: values[1].(common.Address)}
	return method.Outputs.Pack(api.chain.Accounts[key])
}
