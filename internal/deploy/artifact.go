package deploy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Artifact is the subset of a compiled Hardhat artifact needed to deploy.
type Artifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

func LoadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if len(a.ABI) == 0 {
		return nil, errors.New("artifact has no abi")
	}
	if code := strings.TrimPrefix(a.Bytecode, "0x"); code == "" {
		return nil, errors.New("artifact has no bytecode")
	}
	return &a, nil
}

func (a *Artifact) ParsedABI() (abi.ABI, error) {
	return abi.JSON(bytes.NewReader(a.ABI))
}

func (a *Artifact) Code() []byte {
	return common.FromHex(a.Bytecode)
}
