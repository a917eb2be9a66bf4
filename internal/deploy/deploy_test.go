package deploy

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"eventx/internal/chain"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

type fakeBackend struct {
	Backend

	balance *big.Int
	owner   common.Address
	sent    []*types.Transaction
}

func (f *fakeBackend) BalanceAt(context.Context, common.Address, *big.Int) (*big.Int, error) {
	return f.balance, nil
}

func (f *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1), BaseFee: big.NewInt(1_000_000_000)}, nil
}

func (f *fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return 0, nil
}

func (f *fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 3_000_000, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeBackend) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	from := crypto.PubkeyToAddress(mustKey().PublicKey)
	return &types.Receipt{
		Status:          types.ReceiptStatusSuccessful,
		ContractAddress: crypto.CreateAddress(from, 0),
	}, nil
}

func (f *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60, 0x80}, nil
}

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	method, err := chain.ParsedTicketABI.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	return method.Outputs.Pack(f.owner)
}

func mustKey() *ecdsa.PrivateKey {
	key, err := chain.ParsePrivateKey(testKey)
	if err != nil {
		panic(err)
	}
	return key
}

func writeArtifact(t *testing.T, bytecode string) string {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"contractName": "Ticket",
		"abi":          json.RawMessage(chain.TicketABI),
		"bytecode":     bytecode,
	})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "Ticket.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestLoadArtifact(t *testing.T) {
	a, err := LoadArtifact(writeArtifact(t, "0x6080604052"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, a.Code())

	parsed, err := a.ParsedABI()
	require.NoError(t, err)
	assert.Contains(t, parsed.Methods, "owner")

	_, err = LoadArtifact(writeArtifact(t, "0x"))
	assert.ErrorContains(t, err, "no bytecode")

	_, err = LoadArtifact(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestDeploy(t *testing.T) {
	owner := crypto.PubkeyToAddress(mustKey().PublicKey)
	backend := &fakeBackend{balance: big.NewInt(1e18), owner: owner}
	d := NewDeployer(backend, 42101)
	d.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	artifact, err := LoadArtifact(writeArtifact(t, "0x6080604052"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rec, err := d.Deploy(ctx, mustKey(), artifact, "EventX Tickets", "EVTX")
	require.NoError(t, err)

	require.Len(t, backend.sent, 1)
	assert.Nil(t, backend.sent[0].To())
	assert.Equal(t, int64(42101), backend.sent[0].ChainId().Int64())

	assert.Equal(t, "push-testnet-donut", rec.Network)
	assert.Equal(t, "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23", rec.Deployer)
	assert.Equal(t, "2025-03-01T12:00:00.000Z", rec.DeploymentTime)
	assert.Equal(t, crypto.CreateAddress(owner, 0).Hex(), rec.Contracts.Ticket.Address)
	assert.Equal(t, []string{"EventX Tickets", "EVTX"}, rec.Contracts.Ticket.ConstructorArgs)
	assert.Equal(t, owner.Hex(), rec.Contracts.Ticket.Owner)
	assert.Equal(t, backend.sent[0].Hash().Hex(), rec.TransactionHash)
}

func TestDeploy_ZeroBalance(t *testing.T) {
	backend := &fakeBackend{balance: big.NewInt(0)}
	artifact, err := LoadArtifact(writeArtifact(t, "0x6080604052"))
	require.NoError(t, err)

	_, err = NewDeployer(backend, 42101).Deploy(context.Background(), mustKey(), artifact, "EventX Tickets", "EVTX")

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Empty(t, backend.sent)
}

func TestWriteRecord(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deployments")
	rec := &Record{
		Network: NetworkName,
		ChainID: 42101,
		Contracts: Contracts{Ticket: ContractRecord{
			Address:         "0x5FbDB2315678afecb367f032d93F642f64180aa3",
			ConstructorArgs: []string{"EventX Tickets", "EVTX"},
		}},
	}

	path, err := WriteRecord(dir, rec)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ticket-push-testnet.json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"network\": \"push-testnet-donut\"")

	back, err := ReadRecord(path)
	require.NoError(t, err)
	assert.Equal(t, rec.Contracts.Ticket.Address, back.Contracts.Ticket.Address)
}
