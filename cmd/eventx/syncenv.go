package main

import (
	"errors"
	"fmt"

	"eventx/internal/envsync"
	"eventx/internal/shared/config"

	"github.com/spf13/cobra"
)

const msgNoDeployment = "Could not find deployed address. Run the deployment first."

// errSyncEnvFailed is returned after the message has already been printed.
var errSyncEnvFailed = errors.New("sync-env failed")

func newSyncEnvCmd() *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "sync-env",
		Short: "Write the deployed contract address into fe/.env.local",
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths := envsync.DefaultPaths(root, config.DefaultChainID)
			entries, err := envsync.Sync(paths, config.DefaultChainID, config.DefaultRPCURL)
			if errors.Is(err, envsync.ErrAddressNotFound) {
				fmt.Fprintln(cmd.ErrOrStderr(), msgNoDeployment)
				cmd.SilenceErrors = true
				return errSyncEnvFailed
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Updated %s with:\n", paths.EnvFile)
			for _, e := range entries {
				fmt.Fprintf(out, "  %s=%s\n", e.Key, e.Value)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", ".", "repository root")
	return cmd
}
