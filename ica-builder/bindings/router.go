package bindings

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

const RouterABI = `[
	{
		"type": "function",
		"name": "dispatch",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "_destinationDomain", "type": "uint32"},
			{
				"name": "calls",
				"type": "tuple[]",
				"components": [
					{"name": "to", "type": "address"},
					{"name": "data", "type": "bytes"}
				]
			}
		],
		"outputs": [{"name": "", "type": "bytes32"}]
	},
	{
		"type": "function",
		"name": "getInterchainAccount",
		"stateMutability": "view",
		"inputs": [
			{"name": "_originDomain", "type": "uint32"},
			{"name": "_sender", "type": "address"}
		],
		"outputs": [{"name": "", "type": "address"}]
	}
]`

const (
	DispatchMethod             = "dispatch"
	GetInterchainAccountMethod = "getInterchainAccount"
)

// RouterCall is a single call relayed by the router to the interchain account.
type RouterCall struct {
	To   common.Address `json:"to"`
	Data []byte         `json:"data"`
}

var parsedRouterABI = mustParseABI(RouterABI)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}

// RouterMetaData returns the parsed router ABI.
func RouterMetaData() abi.ABI {
	return parsedRouterABI
}

// InterchainAccountRouterCaller is a read-only binding to an interchain
// account router.
type InterchainAccountRouterCaller struct {
	contract *bind.BoundContract
}

func NewInterchainAccountRouterCaller(address common.Address, caller bind.ContractCaller) *InterchainAccountRouterCaller {
	contract := bind.NewBoundContract(address, parsedRouterABI, caller, nil, nil)
	return &InterchainAccountRouterCaller{contract: contract}
}

// GetInterchainAccount is a free data retrieval call.
//
// Solidity: function getInterchainAccount(uint32 _originDomain, address _sender) view returns(address)
func (c *InterchainAccountRouterCaller) GetInterchainAccount(opts *bind.CallOpts, originDomain uint32, sender common.Address) (common.Address, error) {
	var out []interface{}
	err := c.contract.Call(opts, &out, GetInterchainAccountMethod, originDomain, sender)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}
