package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var hashPasscodeCmd = &cobra.Command{
	Use:   "hash-passcode <passcode>",
	Short: "Print the bcrypt hash to use as ADMIN_PASSCODE_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash passcode: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, string(hash))
		fmt.Fprintln(cmd.ErrOrStderr(), "Set this in the environment before starting the API:")
		fmt.Fprintf(cmd.ErrOrStderr(), "  ADMIN_PASSCODE_HASH='%s'\n", hash)
		return nil
	},
}
