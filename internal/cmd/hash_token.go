package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/branch-roster/internal/application"
)

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token <token>",
	Short: "Derive the argon2id hash of an API token for ROSTER_API_TOKEN_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := args[0]
		if token == "" {
			return errors.New("token must not be empty")
		}
		hash, err := application.CreateTokenHash(token, application.DefaultArgon2idParams)
		if err != nil {
			return fmt.Errorf("hash token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashTokenCmd)
}
