package client

import (
	"errors"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// Network describes the chain a hub contract is deployed on. Builtin
// definitions can be overridden, and new networks added, through
// `networks.toml` in the key directory:
//
//	[networks.terra]
//	node = "https://rpc.mycompany.internal:443"
//
//	[networks.devnet]
//	chain-id = "localterra"
//	node = "http://localhost:26657"
//	bech32-prefix = "terra"
//	denom = "uluna"
//	gas-price = "0.015uluna"
//	hub-address = "terra1..."
type Network struct {
	Name         string
	ChainID      string
	Node         string
	Bech32Prefix string
	Denom        string
	GasPrice     string
	HubAddress   string
}

var builtinNetworks = []Network{
	{
		Name:         "terra",
		ChainID:      "phoenix-1",
		Node:         "https://terra-rpc.polkachu.com:443",
		Bech32Prefix: "terra",
		Denom:        "uluna",
		GasPrice:     "0.015uluna",
	},
	{
		Name:         "terra-testnet",
		ChainID:      "pisco-1",
		Node:         "https://terra-testnet-rpc.polkachu.com:443",
		Bech32Prefix: "terra",
		Denom:        "uluna",
		GasPrice:     "0.015uluna",
	},
	{
		Name:         "juno",
		ChainID:      "juno-1",
		Node:         "https://juno-rpc.polkachu.com:443",
		Bech32Prefix: "juno",
		Denom:        "ujuno",
		GasPrice:     "0.075ujuno",
	},
	{
		Name:         "osmosis",
		ChainID:      "osmosis-1",
		Node:         "https://osmosis-rpc.polkachu.com:443",
		Bech32Prefix: "osmo",
		Denom:        "uosmo",
		GasPrice:     "0.0025uosmo",
	},
	{
		Name:         "migaloo",
		ChainID:      "migaloo-1",
		Node:         "https://migaloo-rpc.polkachu.com:443",
		Bech32Prefix: "migaloo",
		Denom:        "uwhale",
		GasPrice:     "1uwhale",
	},
}

// LoadNetworkOverrides reads networks.toml from the key directory. A missing
// file is not an error; flags and builtin definitions then stand alone.
func LoadNetworkOverrides(keyDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName("networks")
	v.SetConfigType("toml")
	v.AddConfigPath(keyDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, err
	}
	return v, nil
}

// ResolveNetwork looks up a network by name or chain id, applying any
// overrides from networks.toml. Networks defined only in the file must carry
// at least chain-id, node, bech32-prefix and denom.
func ResolveNetwork(v *viper.Viper, name string) (Network, error) {
	if name == "" {
		return Network{}, ErrUnknownNetwork.Wrap("--network is required")
	}

	net, found := builtinNetwork(name)

	if v != nil {
		if raw := v.GetStringMap("networks." + name); len(raw) > 0 {
			if !found {
				net = Network{Name: name}
			}
			applyNetworkOverrides(&net, raw)
			found = true
		}
	}

	if !found {
		return Network{}, ErrUnknownNetwork.Wrap(name)
	}
	if net.ChainID == "" || net.Node == "" || net.Bech32Prefix == "" || net.Denom == "" {
		return Network{}, ErrBadNetwork.Wrap(net.Name)
	}
	return net, nil
}

func builtinNetwork(name string) (Network, bool) {
	for _, net := range builtinNetworks {
		if net.Name == name || net.ChainID == name {
			return net, true
		}
	}
	return Network{}, false
}

func applyNetworkOverrides(net *Network, raw map[string]any) {
	if val, ok := raw["chain-id"]; ok {
		net.ChainID = cast.ToString(val)
	}
	if val, ok := raw["node"]; ok {
		net.Node = cast.ToString(val)
	}
	if val, ok := raw["bech32-prefix"]; ok {
		net.Bech32Prefix = cast.ToString(val)
	}
	if val, ok := raw["denom"]; ok {
		net.Denom = cast.ToString(val)
	}
	if val, ok := raw["gas-price"]; ok {
		net.GasPrice = cast.ToString(val)
	}
	if val, ok := raw["hub-address"]; ok {
		net.HubAddress = cast.ToString(val)
	}
}

// ValidateAccAddress checks that addr is a bech32 account or contract
// address under the network's prefix. Contract addresses are 32 bytes on
// wasm chains, account addresses 20.
func (n Network) ValidateAccAddress(addr string) error {
	hrp, bz, err := bech32.DecodeAndConvert(addr)
	if err != nil {
		return ErrInvalidAddress.Wrap(err.Error())
	}
	if hrp != n.Bech32Prefix {
		return ErrInvalidAddress.Wrapf("expected prefix %q, got %q", n.Bech32Prefix, hrp)
	}
	if l := len(bz); l != 20 && l != 32 {
		return ErrInvalidAddress.Wrapf("unexpected address length %d", l)
	}
	return nil
}

// ValidateValAddress checks that addr is a validator operator address under
// the network's prefix.
func (n Network) ValidateValAddress(addr string) error {
	expHRP := n.Bech32Prefix + sdk.PrefixValidator + sdk.PrefixOperator
	hrp, bz, err := bech32.DecodeAndConvert(addr)
	if err != nil {
		return ErrInvalidAddress.Wrap(err.Error())
	}
	if hrp != expHRP {
		return ErrInvalidAddress.Wrapf("expected prefix %q, got %q", expHRP, hrp)
	}
	if len(bz) != 20 {
		return ErrInvalidAddress.Wrapf("unexpected address length %d", len(bz))
	}
	return nil
}

// SetAddressPrefixes points the sdk's global bech32 configuration at the
// network's prefix. Must run before any sdk address is rendered.
func (n Network) SetAddressPrefixes() {
	prefix := n.Bech32Prefix
	cfg := sdk.GetConfig()
	cfg.SetBech32PrefixForAccount(prefix, prefix+sdk.PrefixPublic)
	cfg.SetBech32PrefixForValidator(
		prefix+sdk.PrefixValidator+sdk.PrefixOperator,
		prefix+sdk.PrefixValidator+sdk.PrefixOperator+sdk.PrefixPublic,
	)
	cfg.SetBech32PrefixForConsensusNode(
		prefix+sdk.PrefixValidator+sdk.PrefixConsensus,
		prefix+sdk.PrefixValidator+sdk.PrefixConsensus+sdk.PrefixPublic,
	)
}
