// Command eventx deploys the Ticket contract, syncs the frontend env file
// and smoke-tests a running API.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "eventx",
		Short:         "EventX deployment tooling",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newDeployCmd(), newSyncEnvCmd(), newSmokeCmd())
	return root
}
