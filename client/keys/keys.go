// Package keys wires the sdk keyring commands onto hubctl's keystore
// layout: an encrypted file keyring in the key directory.
package keys

import (
	"github.com/spf13/cobra"

	"github.com/cometbft/cometbft/libs/cli"

	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/keys"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
)

// KeyCommands registers a subtree of commands to manage the local keystore.
func KeyCommands(defaultKeyDir string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage keys in the local keystore",
		Long: `Keyring management commands.

Keys are stored in an encrypted file keyring under the key directory by
default. The "os" backend uses the operating system's credential store
instead, and "test" stores keys unencrypted; use the latter only against
test networks.`,
	}

	cmd.AddCommand(
		keys.MnemonicKeyCommand(),
		keys.AddKeyCommand(),
		keys.ExportKeyCommand(),
		keys.ImportKeyCommand(),
		keys.ListKeysCmd(),
		keys.ShowKeysCmd(),
		keys.DeleteKeyCommand(),
		keys.RenameKeyCommand(),
	)

	cmd.PersistentFlags().String(flags.FlagHome, defaultKeyDir, "The keystore directory")
	cmd.PersistentFlags().String(flags.FlagKeyringDir, "", "The keyring directory; defaults to the keystore directory")
	cmd.PersistentFlags().String(flags.FlagKeyringBackend, keyring.BackendFile, "Keyring backend (os|file|test)")
	cmd.PersistentFlags().String(cli.OutputFlag, "text", "Output format (text|json)")
	return cmd
}
