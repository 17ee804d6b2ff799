package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	sdkclient "github.com/cosmos/cosmos-sdk/client"
	sdkflags "github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/version"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	hubclient "github.com/erisprotocol/hubctl/client"
	"github.com/erisprotocol/hubctl/client/cli"
	"github.com/erisprotocol/hubctl/client/flags"
	"github.com/erisprotocol/hubctl/client/keys"
)

func init() {
	// the stock sdk keys commands derive their keyring service name from
	// version.Name; it must match the service the signing path opens
	version.Name = hubclient.KeyringServiceName
	version.AppName = "hubctl"
}

// NewRootCmd creates the hubctl root command.
func NewRootCmd() *cobra.Command {
	encodingConfig := hubclient.MakeEncodingConfig()
	defaultKeyDir := hubclient.MustGetDefaultKeyDir()

	initClientCtx := sdkclient.Context{}.
		WithCodec(encodingConfig.Codec).
		WithInterfaceRegistry(encodingConfig.InterfaceRegistry).
		WithTxConfig(encodingConfig.TxConfig).
		WithLegacyAmino(encodingConfig.Amino).
		WithInput(os.Stdin).
		WithAccountRetriever(authtypes.AccountRetriever{}).
		WithBroadcastMode(sdkflags.BroadcastSync).
		WithHomeDir(defaultKeyDir)

	rootCmd := &cobra.Command{
		Use:   "hubctl",
		Short: "Operator CLI for an amplifier liquid staking hub contract",
		Long: strings.TrimSpace(`
hubctl signs and broadcasts admin operations of an amplifier liquid staking
hub contract: validator set management, reward harvesting, delegation
rebalancing, unbonding batch submission and configuration changes. It loads
the signing key from a local keystore, submits one transaction per
invocation and waits for it to be committed.
`),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			initClientCtx = initClientCtx.WithCmdContext(cmd.Context())

			// the keystore and the client config live under --key-dir
			if keyDir, err := cmd.Flags().GetString(flags.FlagKeyDir); err == nil && keyDir != "" {
				initClientCtx = initClientCtx.WithHomeDir(keyDir).WithKeyringDir(keyDir)
			}

			initClientCtx, err := sdkclient.ReadPersistentCommandFlags(initClientCtx, cmd.Flags())
			if err != nil {
				return err
			}

			return sdkclient.SetCmdClientContextHandler(initClientCtx, cmd)
		},
	}

	flags.AddPersistentFlags(rootCmd, defaultKeyDir)

	rootCmd.AddCommand(
		cli.NewValidatorCmd(),
		cli.NewHarvestCmd(),
		cli.NewTuneDelegationsCmd(),
		cli.NewRebalanceCmd(),
		cli.NewReconcileCmd(),
		cli.NewSubmitBatchCmd(),
		cli.NewUpdateConfigCmd(),
		cli.NewOwnershipCmd(),
		cli.GetQueryCmd(),
		keys.KeyCommands(defaultKeyDir),
	)

	return rootCmd
}
