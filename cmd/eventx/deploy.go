package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"eventx/internal/chain"
	"eventx/internal/deploy"
	"eventx/internal/shared/config"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type deployOptions struct {
	envFile  string
	artifact string
	outDir   string
	name     string
	symbol   string
}

func newDeployCmd() *cobra.Command {
	opts := deployOptions{}
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the Ticket contract to Push Testnet Donut",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDeploy(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.envFile, "env-file", filepath.Join("smart-contract", ".env"), "dotenv file with PRIVATE_KEY")
	cmd.Flags().StringVar(&opts.artifact, "artifact",
		filepath.Join("smart-contract", "artifacts", "contracts", "Ticket.sol", "Ticket.json"), "compiled Hardhat artifact")
	cmd.Flags().StringVar(&opts.outDir, "out", "deployments", "directory for the deployment record")
	cmd.Flags().StringVar(&opts.name, "name", "EventX Tickets", "token name")
	cmd.Flags().StringVar(&opts.symbol, "symbol", "EVTX", "token symbol")
	return cmd
}

func runDeploy(cmd *cobra.Command, opts deployOptions) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// a missing file is fine when the variables come from the shell
	_ = godotenv.Load(opts.envFile)

	fmt.Fprintln(out, "Deploying Ticket contract to Push Testnet Donut...")

	rpcURL := os.Getenv("PUSH_TESTNET_RPC")
	if rpcURL == "" {
		rpcURL = config.DefaultRPCURL
	}
	key, err := chain.ParsePrivateKey(config.Load().Chain.DeployerKey)
	if errors.Is(err, chain.ErrMissingKey) {
		return fmt.Errorf("PRIVATE_KEY is missing in environment. Set PRIVATE_KEY (or DEPLOYER_PRIVATE_KEY) in %s", opts.envFile)
	}
	if err != nil {
		return err
	}

	artifact, err := deploy.LoadArtifact(opts.artifact)
	if err != nil {
		return err
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
	}
	defer client.Close()

	deployer := deploy.NewDeployer(client, config.DefaultChainID)
	fmt.Fprintln(out, "Deploying contracts with the account:", chain.AddressOf(key).Hex())

	rec, err := deployer.Deploy(ctx, key, artifact, opts.name, opts.symbol)
	if err != nil {
		return fmt.Errorf("deployment failed: %w", err)
	}

	path, err := deploy.WriteRecord(opts.outDir, rec)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Deployment info saved to", path)

	fmt.Fprintln(out, "\n=== Deployment Summary ===")
	fmt.Fprintln(out, "Network: Push Testnet Donut")
	fmt.Fprintln(out, "Chain ID:", rec.ChainID)
	fmt.Fprintln(out, "Deployer:", rec.Deployer)
	fmt.Fprintln(out, "Ticket Contract:", rec.Contracts.Ticket.Address)
	fmt.Fprintln(out, "Contract Owner:", rec.Contracts.Ticket.Owner)
	fmt.Fprintln(out, "Transaction Hash:", rec.TransactionHash)
	return nil
}
