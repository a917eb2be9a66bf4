package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"eventx/internal/shared/config"
	"eventx/internal/shared/metrics"
	"eventx/pkg/logger"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is the RPC surface the ticket binding needs. *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// TicketContract reads and writes the Ticket contract.
type TicketContract struct {
	address        common.Address
	chainID        *big.Int
	backend        Backend
	contract       *bind.BoundContract
	receiptTimeout time.Duration
	log            *logger.Logger
}

// Dial connects to the configured RPC endpoint and binds the Ticket contract.
func Dial(ctx context.Context, cfg config.ChainConfig) (*TicketContract, *ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to rpc %s: %w", cfg.RPCURL, err)
	}
	return NewTicketContract(client, cfg), client, nil
}

// NewTicketContract binds the contract at cfg.ContractAddress on backend.
func NewTicketContract(backend Backend, cfg config.ChainConfig) *TicketContract {
	address := common.HexToAddress(cfg.ContractAddress)
	timeout := cfg.ReceiptTimeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &TicketContract{
		address:        address,
		chainID:        big.NewInt(cfg.ChainID),
		backend:        backend,
		contract:       bind.NewBoundContract(address, ParsedTicketABI, backend, backend, backend),
		receiptTimeout: timeout,
		log:            logger.GetDefault(),
	}
}

func (tc *TicketContract) Address() common.Address { return tc.address }

func (tc *TicketContract) ChainID() int64 { return tc.chainID.Int64() }

func (tc *TicketContract) call(ctx context.Context, method string, params ...interface{}) ([]interface{}, error) {
	start := time.Now()
	var out []interface{}
	err := tc.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, params...)
	elapsed := time.Since(start)

	metrics.ObserveChainCall(method, elapsed, err)
	tc.log.LogChainCall(ctx, method, elapsed, err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return out, nil
}

func (tc *TicketContract) Owner(ctx context.Context) (common.Address, error) {
	out, err := tc.call(ctx, "owner")
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(out, 0), nil
}

func (tc *TicketContract) OwnerOf(ctx context.Context, tokenID uint64) (common.Address, error) {
	out, err := tc.call(ctx, "ownerOf", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(out, 0), nil
}

func (tc *TicketContract) BalanceOf(ctx context.Context, owner common.Address) (uint64, error) {
	out, err := tc.call(ctx, "balanceOf", owner)
	if err != nil {
		return 0, err
	}
	return asBig(out, 0).Uint64(), nil
}

func (tc *TicketContract) TokenOfOwnerByIndex(ctx context.Context, owner common.Address, index uint64) (uint64, error) {
	out, err := tc.call(ctx, "tokenOfOwnerByIndex", owner, new(big.Int).SetUint64(index))
	if err != nil {
		return 0, err
	}
	return asBig(out, 0).Uint64(), nil
}

// TicketInfo returns the occasion and seat of a minted token.
func (tc *TicketContract) TicketInfo(ctx context.Context, tokenID uint64) (Ticket, error) {
	out, err := tc.call(ctx, "ticketInfo", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return Ticket{}, err
	}
	return Ticket{
		TokenID:    tokenID,
		OccasionID: asBig(out, 0).Uint64(),
		SeatNumber: asBig(out, 1).Uint64(),
	}, nil
}

func (tc *TicketContract) TokenURI(ctx context.Context, tokenID uint64) (string, error) {
	out, err := tc.call(ctx, "tokenURI", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return "", err
	}
	return asString(out, 0), nil
}

func (tc *TicketContract) IsRefundable(ctx context.Context, tokenID uint64) (bool, error) {
	out, err := tc.call(ctx, "isRefundable", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return false, err
	}
	return asBool(out, 0), nil
}

func (tc *TicketContract) TotalOccasions(ctx context.Context) (uint64, error) {
	out, err := tc.call(ctx, "totalOccasions")
	if err != nil {
		return 0, err
	}
	return asBig(out, 0).Uint64(), nil
}

// GetOccasion reads one event. Unknown ids come back zeroed from the
// contract and are reported as ErrEventNotFound.
func (tc *TicketContract) GetOccasion(ctx context.Context, id uint64) (*Event, error) {
	out, err := tc.call(ctx, "getOccasion", new(big.Int).SetUint64(id))
	if err != nil {
		return nil, err
	}
	if len(out) < 13 {
		return nil, fmt.Errorf("getOccasion: unexpected output length %d", len(out))
	}

	cost := asBig(out, 2)
	ev := &Event{
		ID:               asBig(out, 0).Uint64(),
		Title:            asString(out, 1),
		PriceWei:         cost.String(),
		Price:            FormatEther(cost),
		TicketsRemaining: asBig(out, 3).Uint64(),
		MaxTickets:       asBig(out, 4).Uint64(),
		Date:             asString(out, 5),
		Time:             asString(out, 6),
		Location:         asString(out, 7),
		Organizer:        asAddress(out, 8).Hex(),
		EventTimestamp:   asBig(out, 9).Int64(),
		Canceled:         asBool(out, 10),
		Occurred:         asBool(out, 11),
		MaxResalePrice:   asBig(out, 12).String(),
	}
	if ev.ID == 0 {
		return nil, fmt.Errorf("occasion %d: %w", id, ErrEventNotFound)
	}
	return ev, nil
}

// Mint submits a payable mint signed by key. It does not wait for inclusion.
func (tc *TicketContract) Mint(ctx context.Context, key *ecdsa.PrivateKey, eventID, seatNumber uint64, value *big.Int) (*types.Transaction, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(key, tc.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to build transactor: %w", err)
	}
	opts.Context = ctx
	opts.Value = value

	tx, err := tc.contract.Transact(opts, "mint", new(big.Int).SetUint64(eventID), new(big.Int).SetUint64(seatNumber))
	if err != nil {
		return nil, fmt.Errorf("mint: %w", err)
	}
	tc.log.LogTransactionSubmitted(ctx, "mint", tx.Hash().Hex())
	return tx, nil
}

// WaitMined blocks until tx has a receipt, bounded by the receipt timeout.
// A failed receipt is returned together with ErrTransactionReverted.
func (tc *TicketContract) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, tc.receiptTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(ctx, tc.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return receipt, fmt.Errorf("%s: %w", tx.Hash().Hex(), ErrTransactionReverted)
	}
	return receipt, nil
}

// WaitMinedHash waits for a transaction submitted by someone else.
func (tc *TicketContract) WaitMinedHash(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	tx, _, err := tc.backend.TransactionByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", hash.Hex(), err)
	}
	return tc.WaitMined(ctx, tx)
}

// PackRefund builds the unsigned refund(tokenId) call.
func (tc *TicketContract) PackRefund(tokenID uint64) (UnsignedTx, error) {
	return tc.unsigned(nil, "refund", new(big.Int).SetUint64(tokenID))
}

// PackList builds the unsigned list(...) call that creates an event.
func (tc *TicketContract) PackList(p ListParams) (UnsignedTx, error) {
	if p.PriceWei == nil || p.MaxResalePrice == nil {
		return UnsignedTx{}, errors.New("list: price and max resale price are required")
	}
	return tc.unsigned(nil, "list",
		p.Title,
		p.PriceWei,
		new(big.Int).SetUint64(p.MaxTickets),
		p.Date,
		p.Time,
		p.Location,
		big.NewInt(p.EventTimestamp),
		p.MaxResalePrice,
	)
}

func (tc *TicketContract) unsigned(value *big.Int, method string, args ...interface{}) (UnsignedTx, error) {
	data, err := ParsedTicketABI.Pack(method, args...)
	if err != nil {
		return UnsignedTx{}, fmt.Errorf("pack %s: %w", method, err)
	}
	if value == nil {
		value = new(big.Int)
	}
	return UnsignedTx{
		To:      tc.address.Hex(),
		Data:    hexutil.Encode(data),
		Value:   value.String(),
		ChainID: tc.chainID.Int64(),
	}, nil
}

func asBig(out []interface{}, i int) *big.Int {
	if i < len(out) {
		if v, ok := out[i].(*big.Int); ok && v != nil {
			return v
		}
	}
	return new(big.Int)
}

func asString(out []interface{}, i int) string {
	if i < len(out) {
		if v, ok := out[i].(string); ok {
			return v
		}
	}
	return ""
}

func asBool(out []interface{}, i int) bool {
	if i < len(out) {
		if v, ok := out[i].(bool); ok {
			return v
		}
	}
	return false
}

func asAddress(out []interface{}, i int) common.Address {
	if i < len(out) {
		if v, ok := out[i].(common.Address); ok {
			return v
		}
	}
	return common.Address{}
}
