package sources

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/hyperlane-xyz/safe-ica/ica-builder/bindings"
	"github.com/pkg/errors"
)

var (
	ErrNoEndpoint   = errors.New("no RPC endpoint")
	ErrZeroAccount  = errors.New("router returned the zero address")
	ErrCallTimedOut = errors.New("router call timed out")
)

const DefaultCallTimeout = 10 * time.Second

type RouterClientConfig struct {
	CallTimeout time.Duration
}

func RouterClientDefaultConfig() *RouterClientConfig {
	return &RouterClientConfig{
		CallTimeout: DefaultCallTimeout,
	}
}

// ContractCaller is a read-only connection to a chain.
type ContractCaller interface {
	bind.ContractCaller
	Close()
}

// Dialer opens a connection to the chain behind rpcURL.
type Dialer func(ctx context.Context, rpcURL string) (ContractCaller, error)

func DialEthClient(ctx context.Context, rpcURL string) (ContractCaller, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// RouterClient reads interchain account routers on remote chains. Every read
// dials a fresh connection and is bounded by the configured call timeout.
type RouterClient struct {
	log    log.Logger
	config *RouterClientConfig
	dial   Dialer
}

func NewRouterClient(log log.Logger, config *RouterClientConfig, dial Dialer) *RouterClient {
	if config == nil {
		config = RouterClientDefaultConfig()
	}
	if dial == nil {
		dial = DialEthClient
	}
	return &RouterClient{
		log:    log,
		config: config,
		dial:   dial,
	}
}

// GetInterchainAccount asks the router at routerAddress on the chain behind
// rpcURL for the account controlled by sender on originDomain.
func (c *RouterClient) GetInterchainAccount(ctx context.Context, rpcURL string, routerAddress common.Address, originDomain uint32, sender common.Address) (common.Address, error) {
	if rpcURL == "" {
		return common.Address{}, ErrNoEndpoint
	}
	if c.config.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.CallTimeout)
		defer cancel()
	}

	client, err := c.dial(ctx, rpcURL)
	if err != nil {
		return common.Address{}, c.wrap(ctx, err, "failed to dial remote chain")
	}
	defer client.Close()

	c.log.Debug("Reading interchain account", "url", rpcURL, "router", routerAddress, "domain", originDomain, "sender", sender)
	router := bindings.NewInterchainAccountRouterCaller(routerAddress, client)
	account, err := router.GetInterchainAccount(&bind.CallOpts{Context: ctx}, originDomain, sender)
	if err != nil {
		return common.Address{}, c.wrap(ctx, err, "failed to call getInterchainAccount")
	}
	if account == (common.Address{}) {
		return common.Address{}, ErrZeroAccount
	}
	return account, nil
}

func (c *RouterClient) wrap(ctx context.Context, err error, msg string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Wrapf(ErrCallTimedOut, "%s: %v", msg, err)
	}
	return errors.Wrap(err, msg)
}
