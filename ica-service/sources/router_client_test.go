package sources

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/hyperlane-xyz/safe-ica/ica-service/testutils"
	"github.com/stretchr/testify/require"
)

var (
	router = common.HexToAddress("0x28DB114018576cF6c9A523C17903455A161d18C4")
	sender = common.HexToAddress("0x1111111111111111111111111111111111111111")
	ica    = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func newTestClient(timeout time.Duration) *RouterClient {
	logger := log.NewLogger(log.NewTerminalHandler(io.Discard, false))
	return NewRouterClient(logger, &RouterClientConfig{CallTimeout: timeout}, nil)
}

func TestGetInterchainAccount(t *testing.T) {
	chain := testutils.NewFakeChain(t)
	chain.Accounts[testutils.AccountKey{Domain: 1, Sender: sender}] = ica

	account, err := newTestClient(time.Second).GetInterchainAccount(context.Background(), chain.URL, router, 1, sender)
	require.NoError(t, err)
	require.Equal(t, ica, account)
	require.EqualValues(t, 1, chain.Calls())
}

func TestGetInterchainAccountZero(t *testing.T) {
	chain := testutils.NewFakeChain(t)

	_, err := newTestClient(time.Second).GetInterchainAccount(context.Background(), chain.URL, router, 5, sender)
	require.ErrorIs(t, err, ErrZeroAccount)
}

func TestGetInterchainAccountRevert(t *testing.T) {
	chain := testutils.NewFakeChain(t)
	chain.Revert = true

	_, err := newTestClient(time.Second).GetInterchainAccount(context.Background(), chain.URL, router, 1, sender)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrCallTimedOut)
}

func TestGetInterchainAccountTimeout(t *testing.T) {
	chain := testutils.NewFakeChain(t)
	chain.Delay = 5 * time.Second

	start := time.Now()
	_, err := newTestClient(50*time.Millisecond).GetInterchainAccount(context.Background(), chain.URL, router, 1, sender)
	require.ErrorIs(t, err, ErrCallTimedOut)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestGetInterchainAccountNoEndpoint(t *testing.T) {
	_, err := newTestClient(time.Second).GetInterchainAccount(context.Background(), "", router, 1, sender)
	require.ErrorIs(t, err, ErrNoEndpoint)
}

func TestGetInterchainAccountUnreachable(t *testing.T) {
	_, err := newTestClient(time.Second).GetInterchainAccount(context.Background(), "http://127.0.0.1:1", router, 1, sender)
	require.Error(t, err)
}

func TestNewRouterClientDefaults(t *testing.T) {
	chain := testutils.NewFakeChain(t)
	chain.Accounts[testutils.AccountKey{Domain: 1, Sender: sender}] = ica

	logger := log.NewLogger(log.NewTerminalHandler(io.Discard, false))
	client := NewRouterClient(logger, nil, nil)
	require.Equal(t, DefaultCallTimeout, client.config.CallTimeout)

	account, err := client.GetInterchainAccount(context.Background(), chain.URL, router, 1, sender)
	require.NoError(t, err)
	require.Equal(t, ica, account)
}
