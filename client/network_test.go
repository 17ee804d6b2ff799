package client_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cosmos/cosmos-sdk/types/bech32"

	"github.com/erisprotocol/hubctl/client"
)

func TestResolveBuiltinNetwork(t *testing.T) {
	testCases := []struct {
		name       string
		lookup     string
		expChainID string
	}{
		{name: "by name", lookup: "terra", expChainID: "phoenix-1"},
		{name: "by chain id", lookup: "phoenix-1", expChainID: "phoenix-1"},
		{name: "testnet", lookup: "terra-testnet", expChainID: "pisco-1"},
		{name: "juno", lookup: "juno", expChainID: "juno-1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			net, err := client.ResolveNetwork(nil, tc.lookup)
			require.NoError(t, err)
			require.Equal(t, tc.expChainID, net.ChainID)
			require.NotEmpty(t, net.Node)
			require.NotEmpty(t, net.Bech32Prefix)
			require.NotEmpty(t, net.Denom)
		})
	}
}

func TestResolveUnknownNetwork(t *testing.T) {
	_, err := client.ResolveNetwork(nil, "atlantis")
	require.ErrorIs(t, err, client.ErrUnknownNetwork)

	_, err = client.ResolveNetwork(nil, "")
	require.ErrorIs(t, err, client.ErrUnknownNetwork)
}

func TestNetworkOverrides(t *testing.T) {
	keyDir := t.TempDir()
	networksToml := `
[networks.terra]
node = "https://rpc.internal:443"
hub-address = "terra1hub"

[networks.devnet]
chain-id = "localterra"
node = "http://localhost:26657"
bech32-prefix = "terra"
denom = "uluna"
gas-price = "0.015uluna"
`
	require.NoError(t, os.WriteFile(filepath.Join(keyDir, "networks.toml"), []byte(networksToml), 0o600))

	v, err := client.LoadNetworkOverrides(keyDir)
	require.NoError(t, err)

	// builtin network with overridden node and default hub
	net, err := client.ResolveNetwork(v, "terra")
	require.NoError(t, err)
	require.Equal(t, "phoenix-1", net.ChainID)
	require.Equal(t, "https://rpc.internal:443", net.Node)
	require.Equal(t, "terra1hub", net.HubAddress)

	// network defined only in the file
	net, err = client.ResolveNetwork(v, "devnet")
	require.NoError(t, err)
	require.Equal(t, "localterra", net.ChainID)
	require.Equal(t, "uluna", net.Denom)

	// file-only network missing required fields
	_, err = client.ResolveNetwork(v, "atlantis")
	require.ErrorIs(t, err, client.ErrUnknownNetwork)
}

func TestNetworkOverridesMissingFile(t *testing.T) {
	v, err := client.LoadNetworkOverrides(t.TempDir())
	require.NoError(t, err)

	net, err := client.ResolveNetwork(v, "terra")
	require.NoError(t, err)
	require.Equal(t, "phoenix-1", net.ChainID)
}

func TestIncompleteFileNetwork(t *testing.T) {
	keyDir := t.TempDir()
	networksToml := `
[networks.partial]
chain-id = "partial-1"
`
	require.NoError(t, os.WriteFile(filepath.Join(keyDir, "networks.toml"), []byte(networksToml), 0o600))

	v, err := client.LoadNetworkOverrides(keyDir)
	require.NoError(t, err)

	_, err = client.ResolveNetwork(v, "partial")
	require.ErrorIs(t, err, client.ErrBadNetwork)
}

func encodeAddr(t *testing.T, hrp string, size int) string {
	t.Helper()
	bz := make([]byte, size)
	for i := range bz {
		bz[i] = byte(i + 1)
	}
	addr, err := bech32.ConvertAndEncode(hrp, bz)
	require.NoError(t, err)
	return addr
}

func TestValidateAccAddress(t *testing.T) {
	net := client.Network{Bech32Prefix: "terra"}

	require.NoError(t, net.ValidateAccAddress(encodeAddr(t, "terra", 20)))
	// contract addresses are 32 bytes
	require.NoError(t, net.ValidateAccAddress(encodeAddr(t, "terra", 32)))

	err := net.ValidateAccAddress(encodeAddr(t, "juno", 20))
	require.ErrorIs(t, err, client.ErrInvalidAddress)

	err = net.ValidateAccAddress(encodeAddr(t, "terra", 10))
	require.ErrorIs(t, err, client.ErrInvalidAddress)

	err = net.ValidateAccAddress("garbage")
	require.ErrorIs(t, err, client.ErrInvalidAddress)
}

func TestValidateValAddress(t *testing.T) {
	net := client.Network{Bech32Prefix: "terra"}

	require.NoError(t, net.ValidateValAddress(encodeAddr(t, "terravaloper", 20)))

	// account address where an operator address is expected
	err := net.ValidateValAddress(encodeAddr(t, "terra", 20))
	require.ErrorIs(t, err, client.ErrInvalidAddress)

	err = net.ValidateValAddress(encodeAddr(t, "junovaloper", 20))
	require.ErrorIs(t, err, client.ErrInvalidAddress)
}
