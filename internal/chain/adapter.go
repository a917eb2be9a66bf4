package chain

import "strings"

type Kind string

const (
	KindEVM    Kind = "evm"
	KindSolana Kind = "solana"
)

// AdapterContext is what a wallet connection exposes to an adapter.
type AdapterContext struct {
	Address string
	ChainID int64
	Cluster string
}

// Adapter decides whether a connected wallet can send transactions
// to this deployment.
type Adapter interface {
	Kind() Kind
	CanTransact(ctx AdapterContext) bool
}

// EvmAdapter requires an address on RequiredChainID.
type EvmAdapter struct {
	RequiredChainID int64
}

func (a EvmAdapter) Kind() Kind { return KindEVM }

func (a EvmAdapter) CanTransact(ctx AdapterContext) bool {
	return strings.TrimSpace(ctx.Address) != "" && ctx.ChainID == a.RequiredChainID
}

// SolanaAdapter is a placeholder; Solana wallets cannot transact with the
// EVM contract.
type SolanaAdapter struct{}

func (SolanaAdapter) Kind() Kind { return KindSolana }

func (SolanaAdapter) CanTransact(AdapterContext) bool { return false }
