package deploy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	NetworkName = "push-testnet-donut"
	RecordFile  = "ticket-push-testnet.json"
)

// Record is written to deployments/ticket-push-testnet.json after a deploy.
type Record struct {
	Network         string    `json:"network"`
	ChainID         int64     `json:"chainId"`
	Deployer        string    `json:"deployer"`
	DeploymentTime  string    `json:"deploymentTime"`
	TransactionHash string    `json:"transactionHash"`
	Contracts       Contracts `json:"contracts"`
}

type Contracts struct {
	Ticket ContractRecord `json:"Ticket"`
}

type ContractRecord struct {
	Address         string   `json:"address"`
	ConstructorArgs []string `json:"constructorArgs"`
	Owner           string   `json:"owner"`
}

// WriteRecord stores rec under dir, creating dir when needed, and returns the file path.
func WriteRecord(dir string, rec *Record) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, RecordFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write deployment record: %w", err)
	}
	return path, nil
}

func ReadRecord(path string) (*Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse deployment record %s: %w", path, err)
	}
	return &rec, nil
}
