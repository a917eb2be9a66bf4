package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventx/internal/shared/config"
	"eventx/pkg/logger"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrNonceNotFound    = errors.New("no pending sign-in for this address")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrSignerMismatch   = errors.New("signature does not match address")
)

type Service interface {
	IssueNonce(ctx context.Context, address string, chainID int64) (*Challenge, error)
	Verify(ctx context.Context, address, signature string, chainID int64) (*TokenResponse, error)
}

type service struct {
	nonces   NonceStore
	config   *config.Config
	newNonce func() string
	now      func() time.Time
}

func NewService(nonces NonceStore, cfg *config.Config) Service {
	return &service{
		nonces:   nonces,
		config:   cfg,
		newNonce: uuid.NewString,
		now:      time.Now,
	}
}

// IssueNonce starts a sign-in for address on the wallet's chain. chainID 0
// means the wallet did not report one and the ticket chain is assumed.
func (s *service) IssueNonce(ctx context.Context, address string, chainID int64) (*Challenge, error) {
	address = strings.ToLower(address)
	if chainID <= 0 {
		chainID = s.config.Chain.ChainID
	}
	nonce := s.newNonce()
	ttl := s.config.Redis.NonceTTL

	if err := s.nonces.Save(ctx, address, nonce, ttl); err != nil {
		return nil, fmt.Errorf("failed to store nonce: %w", err)
	}

	return &Challenge{
		Address:   address,
		Nonce:     nonce,
		ChainID:   chainID,
		Message:   LoginMessage(address, nonce, chainID),
		ExpiresAt: s.now().Add(ttl),
	}, nil
}

// Verify consumes the pending nonce, recovers the personal_sign signer of the
// login message for chainID and issues a session token when it matches
// address. The token carries chainID as the wallet's chain; it is not
// checked against the ticket chain here.
func (s *service) Verify(ctx context.Context, address, signature string, chainID int64) (*TokenResponse, error) {
	address = strings.ToLower(address)
	nonce, err := s.nonces.Take(ctx, address)
	if err != nil {
		return nil, err
	}
	if chainID <= 0 {
		return nil, ErrInvalidSignature
	}

	signer, err := recoverSigner(LoginMessage(address, nonce, chainID), signature)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(signer.Hex(), address) {
		return nil, ErrSignerMismatch
	}

	token, err := s.issueToken(signer, chainID)
	if err != nil {
		return nil, err
	}
	logger.GetDefault().LogAuthSuccess(ctx, signer.Hex())
	return token, nil
}

func (s *service) issueToken(addr common.Address, chainID int64) (*TokenResponse, error) {
	now := s.now()
	claims := Claims{
		Address: addr.Hex(),
		ChainID: chainID,
		Type:    "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.ExpiresIn)),
			Issuer:    "eventx",
			Subject:   addr.Hex(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.config.JWT.ExpiresIn.Seconds()),
		Address:     addr.Hex(),
		ChainID:     chainID,
	}, nil
}

func recoverSigner(message, signature string) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return common.Address{}, ErrInvalidSignature
	}
	// wallets return v as 27/28
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return common.Address{}, ErrInvalidSignature
	}
	return crypto.PubkeyToAddress(*pub), nil
}
