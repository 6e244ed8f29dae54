package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wandadars/spitfire"
	"github.com/wandadars/spitfire/persistence"
)

func newPushCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "push <file> <store> <name>",
		Short: "Upload a library file to a store",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := persistence.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			repo, err := a.repository(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			return repo.Save(cmd.Context(), args[2], lib)
		},
	}
}

func newPullCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pull <store> <out> <name>...",
		Short: "Download libraries from a store into a local directory",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			libs, err := repo.LoadAll(cmd.Context(), args[2:]...)
			if err != nil {
				return err
			}
			for _, name := range args[2:] {
				// Written in the repository layout so <out> is itself a store.
				path := filepath.Join(args[1], filepath.FromSlash(name)+spitfire.Extension)
				if err := persistence.SaveToFile(path, libs[name], persistence.WithCompression(a.cfg.Compression)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls <store>",
		Short: "List the libraries in a store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			names, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
