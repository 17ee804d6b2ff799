// Package cli implements the hubctl command set.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	hubclient "github.com/erisprotocol/hubctl/client"
	"github.com/erisprotocol/hubctl/client/flags"
	"github.com/erisprotocol/hubctl/hub"
)

const (
	flagMinRedelegation     = "min-redelegation"
	flagOperator            = "operator"
	flagProtocolFeeContract = "protocol-fee-contract"
	flagProtocolRewardFee   = "protocol-reward-fee"
	flagEpochPeriod         = "epoch-period"
	flagUnbondPeriod        = "unbond-period"
	flagAllowDonations      = "allow-donations"
	flagExpiresIn           = "expires-in"
)

// NewValidatorCmd returns the parent command for delegation set management.
func NewValidatorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validator",
		Short: "Manage the hub's validator set",
	}

	cmd.AddCommand(
		NewValidatorAddCmd(),
		NewValidatorRemoveCmd(),
	)
	return cmd
}

// NewValidatorAddCmd returns the command registering a validator with the hub.
func NewValidatorAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a validator with the hub's delegation set",
		Long: strings.TrimSpace(`
Register a validator with the hub's delegation set. Only the contract owner
may do this.

Example:
$ hubctl validator add --network terra --key ops --hub-address terra1... \
    --validator-address terravaloper1...
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExecute(cmd, func(net hubclient.Network) (hub.ExecuteMsg, error) {
				validator, _ := cmd.Flags().GetString(flags.FlagValidatorAddress)
				if err := net.ValidateValAddress(validator); err != nil {
					return hub.ExecuteMsg{}, err
				}
				return hub.ExecuteMsg{
					AddValidator: &hub.AddValidator{Validator: validator},
				}, nil
			})
		},
	}

	cmd.Flags().String(flags.FlagValidatorAddress, "", "Operator address of the validator to register")
	mustMarkRequired(cmd, flags.FlagValidatorAddress)
	flags.AddTxFlags(cmd)
	return cmd
}

// NewValidatorRemoveCmd returns the command dropping a validator from the hub.
func NewValidatorRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a validator from the hub's delegation set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExecute(cmd, func(net hubclient.Network) (hub.ExecuteMsg, error) {
				validator, _ := cmd.Flags().GetString(flags.FlagValidatorAddress)
				if err := net.ValidateValAddress(validator); err != nil {
					return hub.ExecuteMsg{}, err
				}
				return hub.ExecuteMsg{
					RemoveValidator: &hub.RemoveValidator{Validator: validator},
				}, nil
			})
		},
	}

	cmd.Flags().String(flags.FlagValidatorAddress, "", "Operator address of the validator to remove")
	mustMarkRequired(cmd, flags.FlagValidatorAddress)
	flags.AddTxFlags(cmd)
	return cmd
}

// NewHarvestCmd returns the command compounding staking rewards.
func NewHarvestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Claim staking rewards and restake them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExecute(cmd, func(hubclient.Network) (hub.ExecuteMsg, error) {
				return hub.ExecuteMsg{Harvest: &hub.Harvest{}}, nil
			})
		},
	}

	flags.AddTxFlags(cmd)
	return cmd
}

// NewTuneDelegationsCmd returns the command recomputing delegation targets.
func NewTuneDelegationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tune-delegations",
		Short: "Recompute the hub's target delegation distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExecute(cmd, func(hubclient.Network) (hub.ExecuteMsg, error) {
				return hub.ExecuteMsg{TuneDelegations: &hub.TuneDelegations{}}, nil
			})
		},
	}

	flags.AddTxFlags(cmd)
	return cmd
}

// NewRebalanceCmd returns the command redelegating stake towards the target
// distribution.
func NewRebalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebalance",
		Short: "Redelegate stake to match the target distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExecute(cmd, func(hubclient.Network) (hub.ExecuteMsg, error) {
				msg := hub.ExecuteMsg{Rebalance: &hub.Rebalance{}}
				if cmd.Flags().Changed(flagMinRedelegation) {
					raw, _ := cmd.Flags().GetString(flagMinRedelegation)
					amount, err := parseMinRedelegation(raw)
					if err != nil {
						return hub.ExecuteMsg{}, err
					}
					msg.Rebalance.MinRedelegation = &amount
				}
				return msg, nil
			})
		},
	}

	cmd.Flags().String(flagMinRedelegation, "", "Skip redelegations below this amount of the native token")
	flags.AddTxFlags(cmd)
	return cmd
}

// NewReconcileCmd returns the command reconciling unbonded batches.
func NewReconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile unbonded batches against the contract balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExecute(cmd, func(hubclient.Network) (hub.ExecuteMsg, error) {
				return hub.ExecuteMsg{Reconcile: &hub.Reconcile{}}, nil
			})
		},
	}

	flags.AddTxFlags(cmd)
	return cmd
}

// NewSubmitBatchCmd returns the command submitting the pending unbonding
// batch.
func NewSubmitBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit-batch",
		Short: "Submit the pending unbonding batch to the chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExecute(cmd, func(hubclient.Network) (hub.ExecuteMsg, error) {
				return hub.ExecuteMsg{SubmitBatch: &hub.SubmitBatch{}}, nil
			})
		},
	}

	flags.AddTxFlags(cmd)
	return cmd
}

// NewUpdateConfigCmd returns the command updating contract configuration.
// Only flags that are explicitly set end up in the payload.
func NewUpdateConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-config",
		Short: "Update hub contract configuration",
		Long: strings.TrimSpace(`
Update hub contract configuration. Fields not passed as flags are left
untouched by the contract.

Example:
$ hubctl update-config --network terra --key ops --hub-address terra1... \
    --protocol-reward-fee 0.05 --allow-donations=true
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExecute(cmd, func(net hubclient.Network) (hub.ExecuteMsg, error) {
				update, err := updateConfigFromFlags(cmd.Flags(), net)
				if err != nil {
					return hub.ExecuteMsg{}, err
				}
				return hub.ExecuteMsg{UpdateConfig: update}, nil
			})
		},
	}

	cmd.Flags().String(flagOperator, "", "New operator address")
	cmd.Flags().String(flagProtocolFeeContract, "", "New protocol fee collector contract")
	cmd.Flags().String(flagProtocolRewardFee, "", "New protocol reward fee, e.g. 0.05")
	cmd.Flags().Uint64(flagEpochPeriod, 0, "New epoch period in seconds")
	cmd.Flags().Uint64(flagUnbondPeriod, 0, "New unbond period in seconds")
	cmd.Flags().Bool(flagAllowDonations, false, "Whether donations to the hub are allowed")
	flags.AddTxFlags(cmd)
	return cmd
}

func updateConfigFromFlags(fs *pflag.FlagSet, net hubclient.Network) (*hub.UpdateConfig, error) {
	update := &hub.UpdateConfig{}

	if fs.Changed(flagOperator) {
		operator, _ := fs.GetString(flagOperator)
		if err := net.ValidateAccAddress(operator); err != nil {
			return nil, err
		}
		update.Operator = &operator
	}
	if fs.Changed(flagProtocolFeeContract) {
		contract, _ := fs.GetString(flagProtocolFeeContract)
		if err := net.ValidateAccAddress(contract); err != nil {
			return nil, err
		}
		update.ProtocolFeeContract = &contract
	}
	if fs.Changed(flagProtocolRewardFee) {
		raw, _ := fs.GetString(flagProtocolRewardFee)
		fee, err := math.LegacyNewDecFromStr(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid protocol reward fee: %s", raw)
		}
		update.ProtocolRewardFee = &fee
	}
	if fs.Changed(flagEpochPeriod) {
		period, _ := fs.GetUint64(flagEpochPeriod)
		update.EpochPeriod = &period
	}
	if fs.Changed(flagUnbondPeriod) {
		period, _ := fs.GetUint64(flagUnbondPeriod)
		update.UnbondPeriod = &period
	}
	if fs.Changed(flagAllowDonations) {
		allow, _ := fs.GetBool(flagAllowDonations)
		update.AllowDonations = &allow
	}

	return update, nil
}

// NewOwnershipCmd returns the parent command for the two-step ownership
// hand-over.
func NewOwnershipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ownership",
		Short: "Manage contract ownership",
	}

	propose := &cobra.Command{
		Use:   "propose <new-owner>",
		Short: "Propose a new contract owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExecute(cmd, func(net hubclient.Network) (hub.ExecuteMsg, error) {
				if err := net.ValidateAccAddress(args[0]); err != nil {
					return hub.ExecuteMsg{}, err
				}
				expiresIn, _ := cmd.Flags().GetUint64(flagExpiresIn)
				return hub.ExecuteMsg{
					ProposeNewOwner: &hub.ProposeNewOwner{Owner: args[0], ExpiresIn: expiresIn},
				}, nil
			})
		},
	}
	propose.Flags().Uint64(flagExpiresIn, 1209600, "Proposal validity in seconds")
	flags.AddTxFlags(propose)

	drop := &cobra.Command{
		Use:   "drop",
		Short: "Drop the pending ownership proposal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExecute(cmd, func(hubclient.Network) (hub.ExecuteMsg, error) {
				return hub.ExecuteMsg{DropOwnershipProposal: &hub.DropOwnershipProposal{}}, nil
			})
		},
	}
	flags.AddTxFlags(drop)

	claim := &cobra.Command{
		Use:   "claim",
		Short: "Claim contract ownership from a pending proposal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExecute(cmd, func(hubclient.Network) (hub.ExecuteMsg, error) {
				return hub.ExecuteMsg{ClaimOwnership: &hub.ClaimOwnership{}}, nil
			})
		},
	}
	flags.AddTxFlags(claim)

	cmd.AddCommand(propose, drop, claim)
	return cmd
}

// runExecute is the shared submit path: resolve network and hub address,
// build the message, sign, broadcast, wait for commit, print the hash.
func runExecute(cmd *cobra.Command, build func(net hubclient.Network) (hub.ExecuteMsg, error)) error {
	verbose, _ := cmd.Flags().GetBool(flags.FlagVerbose)
	logger := hubclient.NewLogger(cmd.ErrOrStderr(), verbose)

	cctx, net, err := hubclient.ContextFromCmd(cmd)
	if err != nil {
		return err
	}

	hubAddr, err := hubclient.HubAddressFromCmd(cmd, net)
	if err != nil {
		return err
	}

	msg, err := build(net)
	if err != nil {
		return err
	}

	opts, err := txOptionsFromFlags(cmd.Flags(), net)
	if err != nil {
		return err
	}

	c := hubclient.New(cctx, net, logger)

	res, err := c.ExecuteHub(cmd.Context(), hubAddr, msg, nil, opts)
	if err != nil {
		return err
	}

	result, err := c.WaitForCommit(cmd.Context(), res.TxHash, opts.Timeout)
	if err != nil {
		return err
	}

	for _, ev := range hubclient.ContractEvents(result) {
		logger.Debug("contract event", "type", ev.Type, "contract", ev.Contract)
	}

	printSuccess(cmd.OutOrStdout(), res.TxHash)
	return nil
}

// printSuccess writes the confirmation line operators and scripts grep for.
func printSuccess(w io.Writer, txHash string) {
	fmt.Fprintf(w, "Success! Txhash: %s\n", txHash)
}

// parseMinRedelegation parses the amount flag. The contract stores it as
// an unsigned 128-bit integer, so negatives are rejected here.
func parseMinRedelegation(raw string) (math.Int, error) {
	amount, ok := math.NewIntFromString(raw)
	if !ok || amount.IsNegative() {
		return math.Int{}, fmt.Errorf("invalid min redelegation amount: %s", raw)
	}
	return amount, nil
}

func txOptionsFromFlags(fs *pflag.FlagSet, net hubclient.Network) (hubclient.TxOptions, error) {
	gasStr, _ := fs.GetString(flags.FlagGas)
	gas, err := parseGas(gasStr)
	if err != nil {
		return hubclient.TxOptions{}, err
	}

	adjustment, _ := fs.GetFloat64(flags.FlagGasAdjustment)
	prices, _ := fs.GetString(flags.FlagGasPrices)
	fees, _ := fs.GetString(flags.FlagFees)
	memo, _ := fs.GetString(flags.FlagMemo)
	timeout, _ := fs.GetDuration(flags.FlagTimeout)

	if prices == "" && fees == "" {
		prices = net.GasPrice
	}

	// the sdk tx factory panics on malformed coin strings
	if prices != "" {
		if _, err := sdk.ParseDecCoins(prices); err != nil {
			return hubclient.TxOptions{}, fmt.Errorf("invalid gas prices %q: %w", prices, err)
		}
	}
	if fees != "" {
		if _, err := sdk.ParseCoinsNormalized(fees); err != nil {
			return hubclient.TxOptions{}, fmt.Errorf("invalid fees %q: %w", fees, err)
		}
	}

	return hubclient.TxOptions{
		Gas:           gas,
		GasAdjustment: adjustment,
		GasPrices:     prices,
		Fees:          fees,
		Memo:          memo,
		Timeout:       timeout,
	}, nil
}

// parseGas returns the fixed gas limit, or zero when simulation is wanted.
func parseGas(s string) (uint64, error) {
	if s == "" || s == flags.GasAuto {
		return 0, nil
	}
	gas, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid gas limit %q", s)
	}
	return gas, nil
}

func mustMarkRequired(cmd *cobra.Command, name string) {
	if err := cmd.MarkFlagRequired(name); err != nil {
		panic(err) // should never happen
	}
}
