package builder

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/hyperlane-xyz/safe-ica/ica-builder/bindings"
	"github.com/hyperlane-xyz/safe-ica/ica-builder/chains"
	"github.com/pkg/errors"
)

// Translator wraps a batch of remote calls into a single dispatch
// transaction on the origin chain. It holds no mutable state.
type Translator struct {
	registry *chains.Registry
	router   abi.ABI
}

func NewTranslator(registry *chains.Registry) *Translator {
	return &Translator{
		registry: registry,
		router:   bindings.RouterMetaData(),
	}
}

// Translate returns exactly one transaction calling dispatch on the origin
// router with the remote domain and the calls in their original order.
func (t *Translator) Translate(origin, remote string, calls []DestinationCall) ([]Transaction, error) {
	routerAddress, ok := t.registry.RouterAddress(origin)
	if !ok {
		return nil, fmt.Errorf("%w: origin %q", ErrUnknownRouter, origin)
	}
	destinationDomain, ok := t.registry.DomainID(remote)
	if !ok {
		return nil, fmt.Errorf("%w: remote %q", ErrUnknownDomain, remote)
	}
	if idx := UnsupportedCalls(calls); len(idx) > 0 {
		return nil, &UnsupportedValueError{Indices: idx}
	}

	routerCalls := make([]bindings.RouterCall, len(calls))
	for i, call := range calls {
		if call.To == (common.Address{}) {
			return nil, errors.Wrapf(ErrEncoding, "call %d has no target", i)
		}
		if call.Data == nil {
			return nil, errors.Wrapf(ErrEncoding, "call %d has no data", i)
		}
		routerCalls[i] = bindings.RouterCall{
			To:   call.To,
			Data: call.Data,
		}
	}

	data, err := t.router.Pack(bindings.DispatchMethod, destinationDomain, routerCalls)
	if err != nil {
		return nil, errors.Wrapf(ErrEncoding, "%v", err)
	}

	return []Transaction{
		{
			To:    routerAddress,
			Value: "0",
			Data:  data,
		},
	}, nil
}

// DecodeDispatch unpacks calldata produced by Translate.
func DecodeDispatch(data []byte) (uint32, []bindings.RouterCall, error) {
	router := bindings.RouterMetaData()
	if len(data) < 4 {
		return 0, nil, errors.New("calldata shorter than a selector")
	}
	method, err := router.MethodById(data[:4])
	if err != nil {
		return 0, nil, err
	}
	if method.Name != bindings.DispatchMethod {
		return 0, nil, fmt.Errorf("unexpected method %s", method.Name)
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return 0, nil, errors.Wrap(err, "failed to unpack dispatch arguments")
	}

	domain := *abi.ConvertType(args[0], new(uint32)).(*uint32)
	calls := *abi.ConvertType(args[1], new([]bindings.RouterCall)).(*[]bindings.RouterCall)
	return domain, calls, nil
}
