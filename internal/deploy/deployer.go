package deploy

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"eventx/internal/chain"
	"eventx/pkg/logger"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

var ErrInsufficientBalance = errors.New("insufficient balance for deployment, please fund your account")

// Backend is the RPC surface a deployment needs. *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

type Deployer struct {
	backend Backend
	chainID int64
	now     func() time.Time
	log     *logger.Logger
}

func NewDeployer(backend Backend, chainID int64) *Deployer {
	return &Deployer{
		backend: backend,
		chainID: chainID,
		now:     time.Now,
		log:     logger.GetDefault(),
	}
}

// Balance returns the native balance of addr.
func (d *Deployer) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	return d.backend.BalanceAt(ctx, addr, nil)
}

// Deploy creates the contract with constructor (name, symbol), waits for it
// to be mined and reads its owner.
func (d *Deployer) Deploy(ctx context.Context, key *ecdsa.PrivateKey, artifact *Artifact, name, symbol string) (*Record, error) {
	from := chain.AddressOf(key)

	balance, err := d.Balance(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance of %s: %w", from.Hex(), err)
	}
	d.log.Info("Deploying contracts", "account", from.Hex(), "balance", chain.FormatEther(balance))
	if balance.Sign() == 0 {
		return nil, ErrInsufficientBalance
	}

	parsed, err := artifact.ParsedABI()
	if err != nil {
		return nil, fmt.Errorf("invalid artifact abi: %w", err)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(d.chainID))
	if err != nil {
		return nil, err
	}
	opts.Context = ctx

	address, tx, contract, err := bind.DeployContract(opts, parsed, artifact.Code(), d.backend, name, symbol)
	if err != nil {
		return nil, fmt.Errorf("deploy transaction failed: %w", err)
	}
	d.log.LogTransactionSubmitted(ctx, "deploy", tx.Hash().Hex())

	if _, err := bind.WaitDeployed(ctx, d.backend, tx); err != nil {
		return nil, fmt.Errorf("waiting for deployment %s: %w", tx.Hash().Hex(), err)
	}

	var out []interface{}
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, "owner"); err != nil {
		return nil, fmt.Errorf("failed to read owner: %w", err)
	}
	owner, _ := out[0].(common.Address)

	return &Record{
		Network:         NetworkName,
		ChainID:         d.chainID,
		Deployer:        from.Hex(),
		DeploymentTime:  d.now().UTC().Format("2006-01-02T15:04:05.000Z"),
		TransactionHash: tx.Hash().Hex(),
		Contracts: Contracts{
			Ticket: ContractRecord{
				Address:         address.Hex(),
				ConstructorArgs: []string{name, symbol},
				Owner:           owner.Hex(),
			},
		},
	}, nil
}
