package contract

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ContractType names a bundled contract
type ContractType string

const (
	BBI ContractType = "BBI"
)

// Known BBI methods
const (
	MethodEtherRaised = "etherRaised"
)

//go:embed abi/*.json
var bundledABI embed.FS

// Descriptor is a contract's interface definition bound to its on-chain address
type Descriptor struct {
	Type    ContractType
	ABIJSON string
	Address common.Address

	abi abi.ABI
}

// ABI returns the parsed interface definition
func (d *Descriptor) ABI() *abi.ABI {
	return &d.abi
}

type registryEntry struct {
	resource string // file name inside the registry FS
	address  string
}

// Registry resolves contract types to descriptors. Parsed descriptors are cached.
type Registry struct {
	fsys    fs.FS
	mu      sync.Mutex
	entries map[ContractType]registryEntry
	cache   map[ContractType]*Descriptor
}

// NewRegistry creates an empty registry reading ABI resources from fsys
func NewRegistry(fsys fs.FS) *Registry {
	return &Registry{
		fsys:    fsys,
		entries: make(map[ContractType]registryEntry),
		cache:   make(map[ContractType]*Descriptor),
	}
}

// DefaultRegistry returns a registry over the bundled ABI files
func DefaultRegistry() *Registry {
	sub, err := fs.Sub(bundledABI, "abi")
	if err != nil {
		panic(fmt.Sprintf("bundled abi directory missing: %v", err))
	}
	r := NewRegistry(sub)
	r.Register(BBI, "bbi.json", "0x37D40510a2F5Bc98AA7a0f7BF4b3453Bcfb90Ac1")
	return r
}

// Register maps a contract type to an ABI resource and an address
func (r *Registry) Register(t ContractType, resource, address string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[t] = registryEntry{resource: resource, address: address}
	delete(r.cache, t)
}

// Types lists the registered contract types
func (r *Registry) Types() []ContractType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]ContractType, 0, len(r.entries))
	for t := range r.entries {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Resolve returns the descriptor for t. A registered type whose ABI resource is
// missing is a packaging error and panics.
func (r *Registry) Resolve(t ContractType) (*Descriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.cache[t]; ok {
		return d, nil
	}

	entry, ok := r.entries[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownContract, t)
	}

	raw, err := fs.ReadFile(r.fsys, entry.resource)
	if err != nil {
		panic(fmt.Sprintf("abi resource %q for contract %s: %v", entry.resource, t, err))
	}

	if !common.IsHexAddress(entry.address) {
		return nil, fmt.Errorf("%w: invalid address %q", ErrContractResolution, entry.address)
	}

	parsed, err := abi.JSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContractResolution, err)
	}

	d := &Descriptor{
		Type:    t,
		ABIJSON: string(raw),
		Address: common.HexToAddress(entry.address),
		abi:     parsed,
	}
	r.cache[t] = d
	return d, nil
}

// Method looks up a method of the resolved contract
func (r *Registry) Method(t ContractType, name string) (abi.Method, error) {
	d, err := r.Resolve(t)
	if err != nil {
		return abi.Method{}, err
	}
	m, ok := d.abi.Methods[name]
	if !ok {
		return abi.Method{}, fmt.Errorf("%w: %s has no method %q", ErrInvalidMethod, t, name)
	}
	return m, nil
}
