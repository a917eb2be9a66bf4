// Package envsync points the frontend environment file at the latest
// contract deployment.
package envsync

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"eventx/internal/deploy"
)

const ignitionKey = "TicketModule#Ticket"

// ErrAddressNotFound carries the message the CLI prints before exiting.
var ErrAddressNotFound = errors.New("could not find deployed address, run the deployment first")

var lineBreak = regexp.MustCompile(`\r?\n`)

// Paths locates the deployment outputs and the env file to update.
type Paths struct {
	Ignition         string
	DeploymentRecord string
	EnvFile          string
}

// DefaultPaths is the layout of the monorepo rooted at root.
func DefaultPaths(root string, chainID int64) Paths {
	return Paths{
		Ignition: filepath.Join(root, "smart-contract", "ignition", "deployments",
			"chain-"+strconv.FormatInt(chainID, 10), "deployed_addresses.json"),
		DeploymentRecord: filepath.Join(root, "smart-contract", "deployments", deploy.RecordFile),
		EnvFile:          filepath.Join(root, "fe", ".env.local"),
	}
}

// Entry is one KEY=value line.
type Entry struct {
	Key   string
	Value string
}

// ReadAddress prefers the ignition output and falls back to the deployment
// record. Unreadable files are skipped.
func ReadAddress(p Paths) (string, error) {
	if raw, err := os.ReadFile(p.Ignition); err == nil {
		var addrs map[string]string
		if json.Unmarshal(raw, &addrs) == nil && addrs[ignitionKey] != "" {
			return addrs[ignitionKey], nil
		}
	}
	if rec, err := deploy.ReadRecord(p.DeploymentRecord); err == nil && rec.Contracts.Ticket.Address != "" {
		return rec.Contracts.Ticket.Address, nil
	}
	return "", ErrAddressNotFound
}

// Upsert replaces the first line whose trimmed text starts with KEY= or
// appends one.
func Upsert(lines []string, key, value string) []string {
	line := key + "=" + value
	for i, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), key+"=") {
			lines[i] = line
			return lines
		}
	}
	return append(lines, line)
}

// Apply upserts entries into content. Empty lines are dropped and the result
// ends with a newline.
func Apply(content string, entries []Entry) string {
	var lines []string
	for _, l := range lineBreak.Split(content, -1) {
		if l != "" {
			lines = append(lines, l)
		}
	}
	for _, e := range entries {
		lines = Upsert(lines, e.Key, e.Value)
	}
	return strings.Join(lines, "\n") + "\n"
}

// FrontendEntries are the variables the frontend reads.
func FrontendEntries(address string, chainID int64, rpcURL string) []Entry {
	return []Entry{
		{Key: "NEXT_PUBLIC_CONTRACT_ADDRESS", Value: address},
		{Key: "NEXT_PUBLIC_CHAIN_ID", Value: strconv.FormatInt(chainID, 10)},
		{Key: "NEXT_PUBLIC_RPC_URL", Value: rpcURL},
	}
}

// Sync writes the frontend entries for the latest deployment into p.EnvFile.
func Sync(p Paths, chainID int64, rpcURL string) ([]Entry, error) {
	address, err := ReadAddress(p)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(p.EnvFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", p.EnvFile, err)
	}

	entries := FrontendEntries(address, chainID, rpcURL)
	if err := os.MkdirAll(filepath.Dir(p.EnvFile), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(p.EnvFile, []byte(Apply(string(content), entries)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", p.EnvFile, err)
	}
	return entries, nil
}
