package settlement

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"eventx/internal/chain"
	"eventx/internal/notifications"
	"eventx/internal/shared/metrics"
	"eventx/pkg/logger"

	"github.com/ethereum/go-ethereum/core/types"
)

var ErrNotConfigured = errors.New("server not configured for settlement")

// Minter submits and confirms mint transactions.
type Minter interface {
	Mint(ctx context.Context, key *ecdsa.PrivateKey, eventID, seatNumber uint64, value *big.Int) (*types.Transaction, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// Publisher announces minted tickets.
type Publisher interface {
	PublishTicketMinted(ctx context.Context, msg notifications.TicketMinted) error
}

type Service interface {
	SetPublisher(publisher Publisher)
	Mint(ctx context.Context, cmd MintCommand) (*MintResponse, error)
}

type service struct {
	minter    Minter
	repo      Repository
	publisher Publisher
	rawKey    string
	log       *logger.Logger
}

// NewService builds the settlement service. An empty signingKey leaves
// settlement disabled; every Mint then fails with ErrNotConfigured.
func NewService(minter Minter, repo Repository, signingKey string) Service {
	return &service{
		minter: minter,
		repo:   repo,
		rawKey: strings.TrimSpace(signingKey),
		log:    logger.GetDefault(),
	}
}

func (s *service) SetPublisher(publisher Publisher) {
	s.publisher = publisher
}

func (s *service) Mint(ctx context.Context, cmd MintCommand) (*MintResponse, error) {
	if s.rawKey == "" {
		metrics.ObserveSettlement("rejected")
		return nil, ErrNotConfigured
	}
	key, err := chain.ParsePrivateKey(s.rawKey)
	if err != nil {
		metrics.ObserveSettlement("rejected")
		return nil, err
	}

	tx, err := s.minter.Mint(ctx, key, cmd.EventID, cmd.SeatNumber, cmd.PriceWei)
	if err != nil {
		s.fail(ctx, cmd, "", StatusFailed, err)
		return nil, err
	}
	hash := tx.Hash().Hex()

	receipt, err := s.minter.WaitMined(ctx, tx)
	if err != nil {
		status := StatusFailed
		if errors.Is(err, chain.ErrTransactionReverted) {
			status = StatusReverted
		}
		s.fail(ctx, cmd, hash, status, err)
		return nil, err
	}

	tokenID := chain.MintedTokenID(receipt.Logs)
	s.record(ctx, cmd, hash, tokenID, StatusMinted, "")
	metrics.ObserveSettlement("minted")

	var logged *uint64
	if tokenID != nil && tokenID.IsUint64() {
		v := tokenID.Uint64()
		logged = &v
	}
	s.log.LogSettlement(ctx, cmd.EventID, cmd.SeatNumber, hash, logged)

	if s.publisher != nil && tokenID != nil {
		msg := notifications.TicketMinted{
			TokenID:    tokenID.String(),
			EventID:    cmd.EventID,
			SeatNumber: cmd.SeatNumber,
			PriceWei:   cmd.PriceWei.String(),
			TxHash:     hash,
		}
		if err := s.publisher.PublishTicketMinted(ctx, msg); err != nil {
			s.log.WarnContext(ctx, "failed to publish ticket minted", "tx_hash", hash, "error", err.Error())
		}
	}

	return &MintResponse{Hash: hash, TokenID: tokenID}, nil
}

func (s *service) fail(ctx context.Context, cmd MintCommand, hash string, status Status, err error) {
	s.log.LogSettlementFailed(ctx, cmd.EventID, cmd.SeatNumber, err)
	metrics.ObserveSettlement(strings.ToLower(string(status)))
	s.record(ctx, cmd, hash, nil, status, err.Error())
}

// record writes the ledger row. Ledger failures never change the response.
func (s *service) record(ctx context.Context, cmd MintCommand, hash string, tokenID *big.Int, status Status, errMsg string) {
	if s.repo == nil {
		return
	}
	row := &Settlement{
		EventID:    cmd.EventID,
		SeatNumber: cmd.SeatNumber,
		PriceWei:   cmd.PriceWei.String(),
		TxHash:     hash,
		Status:     status,
		Error:      errMsg,
	}
	if tokenID != nil {
		id := tokenID.String()
		row.TokenID = &id
	}
	if err := s.repo.Create(context.WithoutCancel(ctx), row); err != nil {
		s.log.WarnContext(ctx, "failed to record settlement", "tx_hash", hash, "error", fmt.Sprint(err))
	}
}
