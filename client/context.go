package client

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	errorsmod "cosmossdk.io/errors"

	sdkclient "github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"

	"github.com/erisprotocol/hubctl/client/flags"
)

// KeyringServiceName namespaces the keystore entries.
const KeyringServiceName = "hubctl"

// MustGetDefaultKeyDir returns $HOME/.hubctl, the default keystore and
// config location.
func MustGetDefaultKeyDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return filepath.Join(home, ".hubctl")
}

// ContextFromCmd resolves the target network and upgrades the base client
// context stashed by the root command with the RPC connection, keyring and
// signing key named on the command line. The signing key is optional here;
// broadcasting fails later if none was selected.
func ContextFromCmd(cmd *cobra.Command) (sdkclient.Context, Network, error) {
	cctx := sdkclient.GetClientContextFromCmd(cmd)
	fs := cmd.Flags()

	netName, _ := fs.GetString(flags.FlagNetwork)
	keyDir, _ := fs.GetString(flags.FlagKeyDir)
	backend, _ := fs.GetString(flags.FlagKeyringBackend)
	keyName, _ := fs.GetString(flags.FlagKey)
	node, _ := fs.GetString(flags.FlagNode)

	overrides, err := LoadNetworkOverrides(keyDir)
	if err != nil {
		return cctx, Network{}, errorsmod.Wrap(err, "read networks.toml")
	}

	net, err := ResolveNetwork(overrides, netName)
	if err != nil {
		return cctx, Network{}, err
	}
	net.SetAddressPrefixes()

	if node == "" {
		node = net.Node
	}
	rpcClient, err := sdkclient.NewClientFromNode(node)
	if err != nil {
		return cctx, net, errorsmod.Wrapf(err, "connect to node %s", node)
	}

	kr, err := keyring.New(KeyringServiceName, backend, keyDir, cctx.Input, cctx.Codec)
	if err != nil {
		return cctx, net, errorsmod.Wrap(err, "open keystore")
	}

	cctx = cctx.
		WithChainID(net.ChainID).
		WithNodeURI(node).
		WithClient(rpcClient).
		WithKeyring(kr)

	if keyName != "" {
		rec, err := kr.Key(keyName)
		if err != nil {
			return cctx, net, errorsmod.Wrapf(err, "load key %q from %s", keyName, keyDir)
		}
		addr, err := rec.GetAddress()
		if err != nil {
			return cctx, net, err
		}
		cctx = cctx.
			WithFrom(keyName).
			WithFromName(keyName).
			WithFromAddress(addr)
	}

	return cctx, net, nil
}

// HubAddressFromCmd returns the hub contract address from the flag or the
// network definition, validated against the network's bech32 prefix.
func HubAddressFromCmd(cmd *cobra.Command, net Network) (string, error) {
	addr, _ := cmd.Flags().GetString(flags.FlagHubAddress)
	if addr == "" {
		addr = net.HubAddress
	}
	if addr == "" {
		return "", ErrNoHubAddress.Wrapf("pass --%s or set hub-address for network %s in networks.toml", flags.FlagHubAddress, net.Name)
	}
	if err := net.ValidateAccAddress(addr); err != nil {
		return "", err
	}
	return addr, nil
}
