package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/mamba-kebabs/ordering/internal/auth"
	"github.com/spf13/cobra"
)

// NewHashPasswordCommand prints a bcrypt hash for ADMIN_PASSWORD_HASH. The password is
// read from the first argument or, when absent, from the first line of stdin.
func NewHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var plain string
			if len(args) == 1 {
				plain = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no password given")
				}
				plain = strings.TrimRight(line, "\r\n")
			}
			if plain == "" {
				return auth.ErrEmptySecret
			}

			hash, err := auth.HashPassword(plain)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
