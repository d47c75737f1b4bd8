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
		Use:          "uploadd",
		Short:        "Multipart file upload service with static file serving",
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newPushCmd(), newFetchCmd())

	return root
}
