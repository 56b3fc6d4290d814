package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/it-institute-cms/internal/auth"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print a bcrypt hash for manual user insertion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, truncated, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, hash)
		if truncated {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: password longer than 72 bytes was truncated before hashing")
		}
		return nil
	},
}
