package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"eventx/internal/shared/config"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

// fakeBackend answers contract reads from canned outputs keyed by method name.
// Methods not overridden panic through the nil embedded interface.
type fakeBackend struct {
	Backend

	outputs  map[string][]interface{}
	callErr  map[string]error
	sent     []*types.Transaction
	receipt  *types.Receipt
	calldata [][]byte
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		outputs: map[string][]interface{}{},
		callErr: map[string]error{},
	}
}

func (f *fakeBackend) CallContract(ctx context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	method, err := ParsedTicketABI.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	f.calldata = append(f.calldata, msg.Data)
	if err := f.callErr[method.Name]; err != nil {
		return nil, err
	}
	return method.Outputs.Pack(f.outputs[method.Name]...)
}

func (f *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *fakeBackend) PendingCodeAt(context.Context, common.Address) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1), BaseFee: big.NewInt(1_000_000_000)}, nil
}

func (f *fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return 7, nil
}

func (f *fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 150_000, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeBackend) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	if f.receipt == nil {
		return nil, ethereum.NotFound
	}
	return f.receipt, nil
}

func testChainConfig() config.ChainConfig {
	return config.ChainConfig{
		RPCURL:          "http://localhost:8545",
		ChainID:         42101,
		ContractAddress: testContract,
		ReceiptTimeout:  2 * time.Second,
	}
}

func TestGetOccasion(t *testing.T) {
	backend := newFakeBackend()
	organizer := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	backend.outputs["getOccasion"] = []interface{}{
		big.NewInt(3), "Launch Party", big.NewInt(1_500_000_000_000_000_000),
		big.NewInt(40), big.NewInt(100), "2025-06-01", "19:00", "Berlin",
		organizer, big.NewInt(1_748_800_000), false, true, big.NewInt(2_000_000_000_000_000_000),
	}
	tc := NewTicketContract(backend, testChainConfig())

	ev, err := tc.GetOccasion(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, uint64(3), ev.ID)
	assert.Equal(t, "Launch Party", ev.Title)
	assert.Equal(t, "1500000000000000000", ev.PriceWei)
	assert.Equal(t, "1.5", ev.Price)
	assert.Equal(t, uint64(40), ev.TicketsRemaining)
	assert.Equal(t, uint64(100), ev.MaxTickets)
	assert.Equal(t, organizer.Hex(), ev.Organizer)
	assert.Equal(t, int64(1_748_800_000), ev.EventTimestamp)
	assert.False(t, ev.Canceled)
	assert.True(t, ev.Occurred)
}

func TestGetOccasion_ZeroIDIsNotFound(t *testing.T) {
	backend := newFakeBackend()
	backend.outputs["getOccasion"] = []interface{}{
		big.NewInt(0), "", big.NewInt(0), big.NewInt(0), big.NewInt(0), "", "", "",
		common.Address{}, big.NewInt(0), false, false, big.NewInt(0),
	}
	tc := NewTicketContract(backend, testChainConfig())

	_, err := tc.GetOccasion(context.Background(), 99)

	assert.True(t, errors.Is(err, ErrEventNotFound))
}

func TestReads(t *testing.T) {
	backend := newFakeBackend()
	holder := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	backend.outputs["ownerOf"] = []interface{}{holder}
	backend.outputs["balanceOf"] = []interface{}{big.NewInt(2)}
	backend.outputs["tokenOfOwnerByIndex"] = []interface{}{big.NewInt(11)}
	backend.outputs["ticketInfo"] = []interface{}{big.NewInt(3), big.NewInt(17)}
	backend.outputs["tokenURI"] = []interface{}{"data:image/svg+xml,<svg/>"}
	backend.outputs["isRefundable"] = []interface{}{true}
	backend.outputs["totalOccasions"] = []interface{}{big.NewInt(5)}
	tc := NewTicketContract(backend, testChainConfig())
	ctx := context.Background()

	owner, err := tc.OwnerOf(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, holder, owner)

	balance, err := tc.BalanceOf(ctx, holder)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), balance)

	tokenID, err := tc.TokenOfOwnerByIndex(ctx, holder, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), tokenID)

	ticket, err := tc.TicketInfo(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, Ticket{TokenID: 11, OccasionID: 3, SeatNumber: 17}, ticket)

	uri, err := tc.TokenURI(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, "data:image/svg+xml,<svg/>", uri)

	refundable, err := tc.IsRefundable(ctx, 11)
	require.NoError(t, err)
	assert.True(t, refundable)

	total, err := tc.TotalOccasions(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), total)
}

func TestCallErrorIsWrapped(t *testing.T) {
	backend := newFakeBackend()
	backend.callErr["ownerOf"] = errors.New("execution reverted: ERC721: invalid token ID")
	tc := NewTicketContract(backend, testChainConfig())

	_, err := tc.OwnerOf(context.Background(), 404)

	assert.ErrorContains(t, err, "ownerOf")
	assert.ErrorContains(t, err, "invalid token ID")
}

func TestMint_SubmitsPayableTransaction(t *testing.T) {
	backend := newFakeBackend()
	tc := NewTicketContract(backend, testChainConfig())
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	tx, err := tc.Mint(context.Background(), key, 3, 17, big.NewInt(1000))

	require.NoError(t, err)
	require.Len(t, backend.sent, 1)
	assert.Equal(t, tx.Hash(), backend.sent[0].Hash())
	assert.Equal(t, big.NewInt(1000), tx.Value())
	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, common.HexToAddress(testContract), *tx.To())
	assert.Equal(t, big.NewInt(42101), tx.ChainId())

	args, err := ParsedTicketABI.Methods["mint"].Inputs.Unpack(tx.Data()[4:])
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(3), args[0])
	assert.Equal(t, big.NewInt(17), args[1])
}

func TestWaitMined(t *testing.T) {
	tx := types.NewTx(&types.LegacyTx{Nonce: 1})

	t.Run("success", func(t *testing.T) {
		backend := newFakeBackend()
		backend.receipt = &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: tx.Hash()}
		tc := NewTicketContract(backend, testChainConfig())

		receipt, err := tc.WaitMined(context.Background(), tx)

		require.NoError(t, err)
		assert.Equal(t, tx.Hash(), receipt.TxHash)
	})

	t.Run("reverted", func(t *testing.T) {
		backend := newFakeBackend()
		backend.receipt = &types.Receipt{Status: types.ReceiptStatusFailed, TxHash: tx.Hash()}
		tc := NewTicketContract(backend, testChainConfig())

		receipt, err := tc.WaitMined(context.Background(), tx)

		assert.True(t, errors.Is(err, ErrTransactionReverted))
		assert.NotNil(t, receipt)
	})
}

func TestPackRefund(t *testing.T) {
	tc := NewTicketContract(newFakeBackend(), testChainConfig())

	utx, err := tc.PackRefund(11)

	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testContract).Hex(), utx.To)
	assert.Equal(t, "0", utx.Value)
	assert.Equal(t, int64(42101), utx.ChainID)

	data, err := hexutil.Decode(utx.Data)
	require.NoError(t, err)
	assert.Equal(t, ParsedTicketABI.Methods["refund"].ID, data[:4])
}

func TestPackList(t *testing.T) {
	tc := NewTicketContract(newFakeBackend(), testChainConfig())

	utx, err := tc.PackList(ListParams{
		Title:          "Launch Party",
		PriceWei:       big.NewInt(10),
		MaxTickets:     100,
		Date:           "2025-06-01",
		Time:           "19:00",
		Location:       "Berlin",
		EventTimestamp: 1_748_800_000,
		MaxResalePrice: big.NewInt(20),
	})
	require.NoError(t, err)

	data, err := hexutil.Decode(utx.Data)
	require.NoError(t, err)
	args, err := ParsedTicketABI.Methods["list"].Inputs.Unpack(data[4:])
	require.NoError(t, err)
	assert.Equal(t, "Launch Party", args[0])
	assert.Equal(t, big.NewInt(100), args[2])
	assert.Equal(t, "Berlin", args[5])

	_, err = tc.PackList(ListParams{Title: "x"})
	assert.Error(t, err)
}
