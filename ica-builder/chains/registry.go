package chains

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// Chain is the static metadata of a chain the router is deployed on.
type Chain struct {
	Name             string         `toml:"name" json:"name"`
	DisplayName      string         `toml:"display_name" json:"displayName"`
	ChainID          uint64         `toml:"chain_id" json:"chainId"`
	DomainID         uint32         `toml:"domain_id" json:"domainId"`
	Type             NetworkType    `toml:"type" json:"type"`
	RPCURL           string         `toml:"rpc_url" json:"rpcUrl"`
	BlockExplorerURL string         `toml:"block_explorer_url" json:"blockExplorerUrl"`
	RouterAddress    common.Address `toml:"router_address" json:"routerAddress"`
}

var (
	ErrDuplicateChain = errors.New("duplicate chain")
	ErrMissingDomain  = errors.New("missing domain id")
	ErrMissingRouter  = errors.New("missing router address")
	ErrUnknownChain   = errors.New("unknown chain")
)

// Registry maps chain names to their metadata. It is never mutated after
// construction and is safe for concurrent use.
type Registry struct {
	chains    []Chain
	byName    map[string]int
	supported map[string]struct{}
}

type registryFile struct {
	Supported []string `toml:"supported"`
	Chains    []Chain  `toml:"chains"`
}

//go:embed registry.toml
var defaultRegistryTOML string

// NewRegistry builds a registry from the given chains. A nil supported list
// marks every chain as supported.
func NewRegistry(chains []Chain, supported []string) (*Registry, error) {
	r := &Registry{
		chains: make([]Chain, len(chains)),
		byName: make(map[string]int, len(chains)),
	}
	copy(r.chains, chains)
	for i, c := range r.chains {
		if _, ok := r.byName[c.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateChain, c.Name)
		}
		r.byName[c.Name] = i
	}
	if supported != nil {
		r.supported = make(map[string]struct{}, len(supported))
		for _, name := range supported {
			r.supported[name] = struct{}{}
		}
	}
	return r, nil
}

// Load decodes a TOML registry.
func Load(rd io.Reader) (*Registry, error) {
	var f registryFile
	if _, err := toml.NewDecoder(rd).Decode(&f); err != nil {
		return nil, errors.Wrap(err, "failed to decode chain registry")
	}
	return NewRegistry(f.Chains, f.Supported)
}

func LoadFile(path string) (*Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open chain registry %s", path)
	}
	defer file.Close()
	return Load(file)
}

// Default returns the registry embedded in the binary.
func Default() *Registry {
	var f registryFile
	if _, err := toml.Decode(defaultRegistryTOML, &f); err != nil {
		panic(err)
	}
	r, err := NewRegistry(f.Chains, f.Supported)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate reports every supported chain that cannot act as an origin or
// remote: missing domain id, missing router or unknown name.
func (r *Registry) Validate() error {
	var result *multierror.Error
	for name := range r.supported {
		if _, ok := r.byName[name]; !ok {
			result = multierror.Append(result, fmt.Errorf("%w: %s is listed as supported", ErrUnknownChain, name))
		}
	}
	for _, c := range r.Supported() {
		if c.DomainID == 0 {
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrMissingDomain, c.Name))
		}
		if c.RouterAddress == (common.Address{}) {
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrMissingRouter, c.Name))
		}
	}
	return result.ErrorOrNil()
}

func (r *Registry) Lookup(name string) (Chain, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Chain{}, false
	}
	return r.chains[i], true
}

// RouterAddress returns the interchain account router deployed on the chain.
// The zero address counts as absent.
func (r *Registry) RouterAddress(name string) (common.Address, bool) {
	c, ok := r.Lookup(name)
	if !ok || c.RouterAddress == (common.Address{}) {
		return common.Address{}, false
	}
	return c.RouterAddress, true
}

func (r *Registry) DomainID(name string) (uint32, bool) {
	c, ok := r.Lookup(name)
	if !ok || c.DomainID == 0 {
		return 0, false
	}
	return c.DomainID, true
}

// Chains returns every registered chain in registry order.
func (r *Registry) Chains() []Chain {
	out := make([]Chain, len(r.chains))
	copy(out, r.chains)
	return out
}

// Supported returns the registered chains that are offered as origin or
// remote, in registry order.
func (r *Registry) Supported() []Chain {
	out := make([]Chain, 0, len(r.chains))
	for _, c := range r.chains {
		if r.IsSupported(c.Name) {
			out = append(out, c)
		}
	}
	return out
}

func (r *Registry) IsSupported(name string) bool {
	if _, ok := r.byName[name]; !ok {
		return false
	}
	if r.supported == nil {
		return true
	}
	_, ok := r.supported[name]
	return ok
}

// DefaultRemote picks the remote chain preselected for an origin: goerli for
// testnets, ethereum otherwise, falling back to mumbai and polygon when the
// origin is that chain itself.
func (r *Registry) DefaultRemote(origin string) string {
	if origin == "" {
		return ""
	}
	if c, ok := r.Lookup(origin); ok && c.Type == Testnet {
		if origin != "goerli" {
			return "goerli"
		}
		return "mumbai"
	}
	if origin != "ethereum" {
		return "ethereum"
	}
	return "polygon"
}
