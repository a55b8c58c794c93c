package builder

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/hyperlane-xyz/safe-ica/ica-builder/chains"
	"github.com/hyperlane-xyz/safe-ica/ica-service/sources"
)

const (
	outcomeOK          = "ok"
	outcomeRejected    = "rejected"
	outcomeFailed      = "failed"
	outcomeUnknown     = "unknown_chain"
	outcomeNoEndpoint  = "no_endpoint"
	outcomeTimeout     = "timeout"
	outcomeZeroAccount = "zero_account"
)

// Backend resolves interchain accounts and builds dispatch transactions for
// the chains of a registry.
type Backend struct {
	log        log.Logger
	registry   *chains.Registry
	translator *Translator
	routers    *sources.RouterClient
	metrics    *Metrics
}

func NewBackend(log log.Logger, registry *chains.Registry, routers *sources.RouterClient, metrics *Metrics) *Backend {
	return &Backend{
		log:        log,
		registry:   registry,
		translator: NewTranslator(registry),
		routers:    routers,
		metrics:    metrics,
	}
}

func (b *Backend) Registry() *chains.Registry {
	return b.registry
}

// Translate wraps calls into the single origin transaction dispatching them
// to remote.
func (b *Backend) Translate(origin, remote string, calls []DestinationCall) ([]Transaction, error) {
	txs, err := b.translator.Translate(origin, remote, calls)
	switch {
	case err == nil:
		b.metrics.RecordTranslation(outcomeOK)
		b.log.Info("Translated batch", "origin", origin, "remote", remote, "calls", len(calls))
	case errors.Is(err, ErrValueTransfer):
		b.metrics.RecordTranslation(outcomeRejected)
		b.log.Warn("Rejected batch", "origin", origin, "remote", remote, "err", err)
	default:
		b.metrics.RecordTranslation(outcomeFailed)
		b.log.Error("Failed to translate batch", "origin", origin, "remote", remote, "err", err)
	}
	return txs, err
}

// ResolveAccountAddress returns the interchain account that executes calls
// dispatched by originAddress, or "" when it cannot be read. Failures are
// logged and never returned.
func (b *Backend) ResolveAccountAddress(ctx context.Context, origin, remote string, originAddress common.Address) string {
	logger := b.log.New("origin", origin, "remote", remote, "sender", originAddress)

	remoteInfo, ok := b.registry.Lookup(remote)
	if !ok {
		b.metrics.RecordResolution(outcomeUnknown)
		logger.Warn("Unknown remote chain")
		return ""
	}
	originDomain, ok := b.registry.DomainID(origin)
	if !ok {
		b.metrics.RecordResolution(outcomeUnknown)
		logger.Warn("No domain id for origin chain")
		return ""
	}
	routerAddress, ok := b.registry.RouterAddress(origin)
	if !ok {
		b.metrics.RecordResolution(outcomeUnknown)
		logger.Warn("No router for origin chain")
		return ""
	}

	account, err := b.routers.GetInterchainAccount(ctx, remoteInfo.RPCURL, routerAddress, originDomain, originAddress)
	if err != nil {
		switch {
		case errors.Is(err, sources.ErrNoEndpoint):
			b.metrics.RecordResolution(outcomeNoEndpoint)
		case errors.Is(err, sources.ErrCallTimedOut):
			b.metrics.RecordResolution(outcomeTimeout)
		case errors.Is(err, sources.ErrZeroAccount):
			b.metrics.RecordResolution(outcomeZeroAccount)
		default:
			b.metrics.RecordResolution(outcomeFailed)
		}
		logger.Error("Failed to resolve interchain account", "err", err)
		return ""
	}

	b.metrics.RecordResolution(outcomeOK)
	return account.Hex()
}

// OriginExplorerURL returns the origin explorer page of a transaction, or ""
// when the chain has no explorer.
func (b *Backend) OriginExplorerURL(origin, txHash string) string {
	return OriginExplorerURL(b.registry, origin, txHash)
}
