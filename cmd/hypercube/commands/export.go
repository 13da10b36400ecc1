package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/hypercube"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		out         string
		put         string
		compression string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the loaded cube as a record stream",
		Long: `Write the loaded cube as a JSON Lines record stream.

--out writes to a local file or - for stdout. --put stores the stream under
the given name in the configured backend instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (out == "") == (put == "") {
				return fmt.Errorf("exactly one of --out and --put is required")
			}

			ctx := cmd.Context()
			c, err := a.loadCube(ctx, cmd.InOrStdin())
			if err != nil {
				return err
			}

			codec, err := hypercube.CodecByName(a.cfg.Source.Codec)
			if err != nil {
				return err
			}
			opts := []hypercube.Option{
				hypercube.WithLogger(a.logger),
				hypercube.WithCodec(codec),
				hypercube.WithCompression(compression),
			}

			if put != "" {
				store, err := openStore(ctx, a.cfg.Source)
				if err != nil {
					return err
				}
				if store == nil {
					return fmt.Errorf("--put needs a directory or bucket source")
				}
				var buf bytes.Buffer
				if err := hypercube.Export(ctx, c, &buf, opts...); err != nil {
					return err
				}
				return store.Put(ctx, put, buf.Bytes())
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := hypercube.Export(ctx, c, w, opts...); err != nil {
				return err
			}
			if f, ok := w.(*os.File); ok && out != "-" {
				return f.Sync()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file or - for stdout")
	cmd.Flags().StringVar(&put, "put", "", "Blob name to store the stream under")
	cmd.Flags().StringVar(&compression, "compress", "none", "Compression: none, lz4 or zstd")
	return cmd
}
