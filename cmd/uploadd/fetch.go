package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourname/upload_lite/pkg/uploadclient"
)

func newFetchCmd() *cobra.Command {
	var server, output string

	cmd := &cobra.Command{
		Use:   "fetch KEY",
		Short: "Download a stored file by its storage key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if output == "" {
				output = key
			}

			var progress io.Writer
			if output != "-" {
				progress = cmd.ErrOrStderr()
			}

			rc, err := uploadclient.New(progress).Fetch(cmd.Context(), server, key)
			if err != nil {
				return err
			}
			defer rc.Close()

			dst := cmd.OutOrStdout()
			if output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				dst = f
			}

			_, err = io.Copy(dst, rc)
			return err
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "http://localhost:3000", "upload service base URL")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path, '-' for stdout (default: the key)")

	return cmd
}
