package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/math"

	"github.com/cosmos/cosmos-sdk/types/bech32"

	hubclient "github.com/erisprotocol/hubctl/client"
	"github.com/erisprotocol/hubctl/client/flags"
)

func encodeAddr(t *testing.T, hrp string) string {
	t.Helper()
	bz := make([]byte, 20)
	for i := range bz {
		bz[i] = byte(i + 1)
	}
	addr, err := bech32.ConvertAndEncode(hrp, bz)
	require.NoError(t, err)
	return addr
}

func TestParseGas(t *testing.T) {
	gas, err := parseGas("auto")
	require.NoError(t, err)
	require.Zero(t, gas)

	gas, err = parseGas("")
	require.NoError(t, err)
	require.Zero(t, gas)

	gas, err = parseGas("350000")
	require.NoError(t, err)
	require.Equal(t, uint64(350000), gas)

	_, err = parseGas("lots")
	require.Error(t, err)
}

func TestPrintSuccess(t *testing.T) {
	var buf bytes.Buffer
	printSuccess(&buf, "E54169BD2EFF28FE3C9AB1E0AF1C532D339904327204B75DBD7C45FC5C1E0B08")
	require.Equal(t,
		"Success! Txhash: E54169BD2EFF28FE3C9AB1E0AF1C532D339904327204B75DBD7C45FC5C1E0B08\n",
		buf.String())
}

func TestParseMinRedelegation(t *testing.T) {
	amount, err := parseMinRedelegation("1000000")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1000000), amount)

	amount, err = parseMinRedelegation("0")
	require.NoError(t, err)
	require.True(t, amount.IsZero())

	_, err = parseMinRedelegation("-1")
	require.Error(t, err)

	_, err = parseMinRedelegation("a lot")
	require.Error(t, err)
}

func TestTxOptionsDefaults(t *testing.T) {
	net := hubclient.Network{GasPrice: "0.015uluna"}

	cmd := NewHarvestCmd()
	opts, err := txOptionsFromFlags(cmd.Flags(), net)
	require.NoError(t, err)

	// simulate by default, network gas price, default timeout
	require.Zero(t, opts.Gas)
	require.Equal(t, flags.DefaultGasAdjustment, opts.GasAdjustment)
	require.Equal(t, "0.015uluna", opts.GasPrices)
	require.Equal(t, flags.DefaultCommitTimeout, opts.Timeout)

	// explicit fees suppress the network gas price
	cmd = NewHarvestCmd()
	require.NoError(t, cmd.Flags().Set(flags.FlagFees, "5000uluna"))
	opts, err = txOptionsFromFlags(cmd.Flags(), net)
	require.NoError(t, err)
	require.Empty(t, opts.GasPrices)
	require.Equal(t, "5000uluna", opts.Fees)
}

func TestUpdateConfigFromFlags(t *testing.T) {
	net := hubclient.Network{Bech32Prefix: "terra"}
	operator := encodeAddr(t, "terra")

	cmd := NewUpdateConfigCmd()
	require.NoError(t, cmd.Flags().Set(flagOperator, operator))
	require.NoError(t, cmd.Flags().Set(flagProtocolRewardFee, "0.05"))
	require.NoError(t, cmd.Flags().Set(flagAllowDonations, "false"))

	update, err := updateConfigFromFlags(cmd.Flags(), net)
	require.NoError(t, err)

	require.NotNil(t, update.Operator)
	require.Equal(t, operator, *update.Operator)
	require.NotNil(t, update.ProtocolRewardFee)
	require.Equal(t, math.LegacyMustNewDecFromStr("0.05"), *update.ProtocolRewardFee)

	// explicitly set to false is still an update
	require.NotNil(t, update.AllowDonations)
	require.False(t, *update.AllowDonations)

	// untouched flags stay out of the payload
	require.Nil(t, update.ProtocolFeeContract)
	require.Nil(t, update.EpochPeriod)
	require.Nil(t, update.UnbondPeriod)
}

func TestUpdateConfigFromFlagsRejectsBadInput(t *testing.T) {
	net := hubclient.Network{Bech32Prefix: "terra"}

	cmd := NewUpdateConfigCmd()
	require.NoError(t, cmd.Flags().Set(flagOperator, encodeAddr(t, "juno")))
	_, err := updateConfigFromFlags(cmd.Flags(), net)
	require.ErrorIs(t, err, hubclient.ErrInvalidAddress)

	cmd = NewUpdateConfigCmd()
	require.NoError(t, cmd.Flags().Set(flagProtocolRewardFee, "five percent"))
	_, err = updateConfigFromFlags(cmd.Flags(), net)
	require.Error(t, err)
}
