package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd is the parent of every account command.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the local account",
	Long:  `Register, log in, change the password or the user name.`,
}
