package chain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/crypto/sha3"
)

// TransferTopic is keccak256("Transfer(address,address,uint256)").
var TransferTopic = eventTopic("Transfer(address,address,uint256)")

func eventTopic(signature string) common.Hash {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	return common.BytesToHash(h.Sum(nil))
}

// MintedTokenID returns the token id of the first Transfer log that carries
// one in its fourth topic, or nil when there is none.
func MintedTokenID(logs []*types.Log) *big.Int {
	for _, l := range logs {
		if l == nil || len(l.Topics) < 4 {
			continue
		}
		if l.Topics[0] != TransferTopic {
			continue
		}
		return new(big.Int).SetBytes(l.Topics[3].Bytes())
	}
	return nil
}
