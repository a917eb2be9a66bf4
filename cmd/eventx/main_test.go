package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSyncEnv(t *testing.T) {
	root := t.TempDir()
	ignition := filepath.Join(root, "smart-contract", "ignition", "deployments", "chain-42101", "deployed_addresses.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(ignition), 0o755))
	require.NoError(t, os.WriteFile(ignition, []byte(`{"TicketModule#Ticket":"0x5FbDB2315678afecb367f032d93F642f64180aa3"}`), 0o644))

	out, err := run(t, "sync-env", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "NEXT_PUBLIC_CONTRACT_ADDRESS=0x5FbDB2315678afecb367f032d93F642f64180aa3")

	env, err := os.ReadFile(filepath.Join(root, "fe", ".env.local"))
	require.NoError(t, err)
	assert.Contains(t, string(env), "NEXT_PUBLIC_CHAIN_ID=42101\n")
}

func TestSyncEnv_NoDeployment(t *testing.T) {
	out, err := run(t, "sync-env", "--root", t.TempDir())

	require.ErrorIs(t, err, errSyncEnvFailed)
	assert.Equal(t, msgNoDeployment+"\n", out)
	assert.NotContains(t, out, "Error:")
}

func TestDeploy_MissingKey(t *testing.T) {
	t.Setenv("PRIVATE_KEY", "")
	t.Setenv("DEPLOYER_PRIVATE_KEY", "")

	out, err := run(t, "deploy", "--env-file", filepath.Join(t.TempDir(), "none.env"))

	require.Error(t, err)
	assert.Contains(t, out, "PRIVATE_KEY is missing")
}

func TestSmoke(t *testing.T) {
	hits := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits[r.URL.Path]++
		if r.URL.Path == "/api/v1/events/7" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	p := &SmokeRunner{BaseURL: srv.URL + "/api/v1", Client: srv.Client()}
	report := p.Run(context.Background(), 7)

	assert.Equal(t, 6, report.Total)
	assert.Equal(t, 4, report.Successful)
	assert.Nil(t, report.ImageCached)
	assert.Equal(t, 2, hits["/api/v1/events"])
	assert.Equal(t, 2, hits["/api/v1/events/upcoming"])
	assert.Equal(t, "HTTP 404", report.Results[4].Error)
}

func TestSmokeCmd_WritesReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()
	out := filepath.Join(t.TempDir(), "smoke.json")

	stdout, err := run(t, "smoke", "--base-url", srv.URL, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Successful: 6/6")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"successful": 6`)
}
