package envsync

import (
	"os"
	"path/filepath"
	"testing"

	"eventx/internal/deploy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ignitionAddr = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	recordAddr   = "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
	rpc          = "https://evm.rpc-testnet-donut-node1.push.org"
)

func testPaths(t *testing.T) Paths {
	t.Helper()
	return DefaultPaths(t.TempDir(), 42101)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestApply(t *testing.T) {
	content := "FOO=bar\r\n\n  NEXT_PUBLIC_CHAIN_ID=1\nNEXT_PUBLIC_CHAIN_IDX=keep\n"

	out := Apply(content, FrontendEntries(ignitionAddr, 42101, rpc))

	assert.Equal(t, "FOO=bar\n"+
		"NEXT_PUBLIC_CHAIN_ID=42101\n"+
		"NEXT_PUBLIC_CHAIN_IDX=keep\n"+
		"NEXT_PUBLIC_CONTRACT_ADDRESS="+ignitionAddr+"\n"+
		"NEXT_PUBLIC_RPC_URL="+rpc+"\n", out)
	assert.Equal(t, out, Apply(out, FrontendEntries(ignitionAddr, 42101, rpc)))
}

func TestReadAddress(t *testing.T) {
	t.Run("ignition first", func(t *testing.T) {
		p := testPaths(t)
		writeFile(t, p.Ignition, `{"TicketModule#Ticket":"`+ignitionAddr+`"}`)
		_, err := deploy.WriteRecord(filepath.Dir(p.DeploymentRecord), &deploy.Record{
			Contracts: deploy.Contracts{Ticket: deploy.ContractRecord{Address: recordAddr}},
		})
		require.NoError(t, err)

		addr, err := ReadAddress(p)
		require.NoError(t, err)
		assert.Equal(t, ignitionAddr, addr)
	})

	t.Run("falls back to record", func(t *testing.T) {
		p := testPaths(t)
		writeFile(t, p.Ignition, `not json`)
		_, err := deploy.WriteRecord(filepath.Dir(p.DeploymentRecord), &deploy.Record{
			Contracts: deploy.Contracts{Ticket: deploy.ContractRecord{Address: recordAddr}},
		})
		require.NoError(t, err)

		addr, err := ReadAddress(p)
		require.NoError(t, err)
		assert.Equal(t, recordAddr, addr)
	})

	t.Run("none", func(t *testing.T) {
		_, err := ReadAddress(testPaths(t))
		assert.ErrorIs(t, err, ErrAddressNotFound)
	})
}

func TestSync_Idempotent(t *testing.T) {
	p := testPaths(t)
	writeFile(t, p.Ignition, `{"TicketModule#Ticket":"`+ignitionAddr+`"}`)
	writeFile(t, p.EnvFile, "NEXT_PUBLIC_APP_NAME=EventX\n\nNEXT_PUBLIC_CONTRACT_ADDRESS=0xold\n")

	_, err := Sync(p, 42101, rpc)
	require.NoError(t, err)
	first, err := os.ReadFile(p.EnvFile)
	require.NoError(t, err)

	_, err = Sync(p, 42101, rpc)
	require.NoError(t, err)
	second, err := os.ReadFile(p.EnvFile)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, "NEXT_PUBLIC_APP_NAME=EventX\n"+
		"NEXT_PUBLIC_CONTRACT_ADDRESS="+ignitionAddr+"\n"+
		"NEXT_PUBLIC_CHAIN_ID=42101\n"+
		"NEXT_PUBLIC_RPC_URL="+rpc+"\n", string(first))
}

func TestSync_CreatesEnvFile(t *testing.T) {
	p := testPaths(t)
	writeFile(t, p.Ignition, `{"TicketModule#Ticket":"`+ignitionAddr+`"}`)

	entries, err := Sync(p, 42101, rpc)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	_, err = os.Stat(p.EnvFile)
	assert.NoError(t, err)
}
