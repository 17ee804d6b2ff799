// Package flags defines the command line surface of hubctl.
package flags

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/crypto/keyring"
)

const (
	FlagNetwork          = "network"
	FlagNode             = "node"
	FlagKey              = "key"
	FlagKeyDir           = "key-dir"
	FlagKeyringBackend   = "keyring-backend"
	FlagHubAddress       = "hub-address"
	FlagValidatorAddress = "validator-address"
	FlagVerbose          = "verbose"

	FlagGas           = "gas"
	FlagGasAdjustment = "gas-adjustment"
	FlagGasPrices     = "gas-prices"
	FlagFees          = "fees"
	FlagMemo          = "memo"
	FlagTimeout       = "timeout"

	FlagOutput  = "output"
	FlagExtract = "extract"
)

// GasAuto asks the node to simulate the tx and use the adjusted estimate.
const GasAuto = "auto"

const (
	DefaultGasAdjustment = 1.4
	DefaultCommitTimeout = 60 * time.Second
)

// AddPersistentFlags registers the flags shared by every command: which
// network to talk to, which key signs, and where the keystore lives.
func AddPersistentFlags(cmd *cobra.Command, defaultKeyDir string) {
	cmd.PersistentFlags().String(FlagNetwork, "", "Name or chain id of the target network")
	cmd.PersistentFlags().String(FlagNode, "", "CometBFT RPC endpoint (overrides the network default)")
	cmd.PersistentFlags().String(FlagKey, "", "Name of the signing key in the keystore")
	cmd.PersistentFlags().String(FlagKeyDir, defaultKeyDir, "Directory holding the keystore and networks.toml")
	cmd.PersistentFlags().String(FlagKeyringBackend, keyring.BackendFile, "Keyring backend (os|file|test)")
	cmd.PersistentFlags().String(FlagHubAddress, "", "Address of the hub contract")
	cmd.PersistentFlags().Bool(FlagVerbose, false, "Enable debug logging")
}

// AddTxFlags registers the flags of broadcasting commands.
func AddTxFlags(cmd *cobra.Command) {
	cmd.Flags().String(FlagGas, GasAuto, "Gas limit, or 'auto' to simulate")
	cmd.Flags().Float64(FlagGasAdjustment, DefaultGasAdjustment, "Multiplier applied to simulated gas")
	cmd.Flags().String(FlagGasPrices, "", "Gas prices, e.g. 0.015uluna (defaults to the network's)")
	cmd.Flags().String(FlagFees, "", "Fixed fees, e.g. 5000uluna (overrides gas prices)")
	cmd.Flags().String(FlagMemo, "", "Tx memo")
	cmd.Flags().Duration(FlagTimeout, DefaultCommitTimeout, "How long to wait for the tx to be committed")
}

// AddQueryFlags registers the flags of query commands.
func AddQueryFlags(cmd *cobra.Command) {
	cmd.Flags().String(FlagOutput, "yaml", "Output format (yaml|json)")
}
