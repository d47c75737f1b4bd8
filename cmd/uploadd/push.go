package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/yourname/upload_lite/pkg/uploadclient"
	"github.com/yourname/upload_lite/pkg/uploadproto"
)

func newPushCmd() *cobra.Command {
	var server, category string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "push FILE...",
		Short: "Upload files to a running server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := make([]uploadclient.UploadFile, 0, len(args))
			for _, p := range args {
				f, err := os.Open(p)
				if err != nil {
					return err
				}
				defer f.Close()

				info, err := f.Stat()
				if err != nil {
					return err
				}
				files = append(files, uploadclient.UploadFile{
					Category: category,
					FileName: filepath.Base(p),
					Reader:   f,
					Size:     info.Size(),
				})
			}

			var progress io.Writer = cmd.ErrOrStderr()
			if quiet {
				progress = nil
			}

			res, err := uploadclient.New(progress).Upload(cmd.Context(), server, files...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range res.Files {
				fmt.Fprintf(out, "%s\t%s\t%s\n", f.Key, humanize.Bytes(uint64(f.Size)), uploadproto.JoinURL(server, f.URL))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "http://localhost:3000", "upload service base URL")
	cmd.Flags().StringVar(&category, "category", "files", "category (multipart field name) for every file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not draw progress bars")

	return cmd
}
