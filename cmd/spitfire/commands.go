package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wandadars/spitfire/ndarray"
	"github.com/wandadars/spitfire/persistence"
	"github.com/wandadars/spitfire/textdump"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print the format header and contents of a library file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if persistence.IsLegacy(data) {
				fmt.Fprintf(out, "Format:      legacy (version %d)\n", persistence.LegacyVersion)
			} else {
				h, err := persistence.ReadHeader(bytes.NewReader(data))
				if err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				fmt.Fprintf(out, "Format:      version %d\n", h.Version)
				fmt.Fprintf(out, "Compression: %s\n", h.Compression)
				fmt.Fprintf(out, "Payload:     %d bytes stored, %d bytes raw\n", h.StoredLength, h.RawLength)
				fmt.Fprintf(out, "Checksum:    %08x\n", h.Checksum)
			}

			lib, err := persistence.Load(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintln(out, lib.String())
			a.logger.DebugContext(cmd.Context(), "library inspected", "file", args[0], "bytes", len(data))
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		order string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "export <file> <dir>",
		Short: "Write a library file as a directory of text files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ord, err := ndarray.ParseOrder(order)
			if err != nil {
				return err
			}
			lib, err := persistence.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			err = textdump.WriteDir(args[1], lib,
				textdump.WithOrder(ord),
				textdump.WithOverwrite(force),
			)
			a.logger.LogExport(cmd.Context(), args[0], args[1], err)
			return err
		},
	}
	cmd.Flags().StringVar(&order, "order", "F", "flattening order of property values (C or F)")
	cmd.Flags().BoolVar(&force, "force", false, "replace the output directory if it exists")
	return cmd
}

func newConvertCmd(a *app) *cobra.Command {
	var compression string
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Rewrite a library file in the current format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.cfg.Compression
			if cmd.Flags().Changed("compression") {
				var err error
				if c, err = persistence.ParseCompression(compression); err != nil {
					return err
				}
			}
			lib, err := persistence.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if err := persistence.SaveToFile(args[1], lib, persistence.WithCompression(c)); err != nil {
				a.logger.LogSave(cmd.Context(), args[1], 0, err)
				return err
			}
			a.logger.InfoContext(cmd.Context(), "library converted",
				"in", args[0],
				"out", args[1],
				"compression", c.String(),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&compression, "compression", "", "payload compression (none, lz4 or zstd)")
	return cmd
}
