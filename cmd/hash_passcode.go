package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"portfolio/api/utils"
)

var hashPasscodeCmd = &cobra.Command{
	Use:   "hash-passcode <passcode>",
	Short: "Print a bcrypt hash suitable for BLOG_ADMIN_PASS_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := utils.HashPasscode(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}
