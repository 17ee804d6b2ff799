// Package client drives a hub contract on a remote Cosmos SDK chain: it
// signs contract-execution messages with a key from the local keystore,
// broadcasts them through a CometBFT RPC node and polls until commit. Smart
// queries go through the wasm module's gRPC surface over the same
// connection.
package client

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"time"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"

	coretypes "github.com/cometbft/cometbft/rpc/core/types"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	sdkclient "github.com/cosmos/cosmos-sdk/client"
	clienttx "github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"

	"github.com/erisprotocol/hubctl/hub"
)

// commitPollInterval is how often the committed tx lookup is retried.
const commitPollInterval = 500 * time.Millisecond

// TxOptions carries the per-invocation broadcast knobs.
type TxOptions struct {
	// Gas is the fixed gas limit; zero means simulate and adjust.
	Gas           uint64
	GasAdjustment float64
	GasPrices     string
	Fees          string
	Memo          string
	// Timeout bounds the wait for the committed tx after broadcast.
	Timeout time.Duration
}

// Client submits execute messages to, and queries, a single hub contract
// deployment.
type Client struct {
	cctx   sdkclient.Context
	net    Network
	logger log.Logger
}

// New returns a client over a fully populated sdk client context.
func New(cctx sdkclient.Context, net Network, logger log.Logger) *Client {
	return &Client{cctx: cctx, net: net, logger: logger}
}

// Network returns the resolved network definition.
func (c *Client) Network() Network {
	return c.net
}

// ExecuteHub signs and broadcasts a single hub execute message. The returned
// response reflects the CheckTx result; use WaitForCommit for the final
// on-chain outcome.
func (c *Client) ExecuteHub(ctx context.Context, contract string, msg hub.ExecuteMsg, funds sdk.Coins, opts TxOptions) (*sdk.TxResponse, error) {
	if c.cctx.FromName == "" {
		return nil, ErrNoKey.Wrap("pass --key")
	}

	payload, err := msg.Marshal()
	if err != nil {
		return nil, err
	}

	exec := &wasmtypes.MsgExecuteContract{
		Sender:   c.cctx.GetFromAddress().String(),
		Contract: contract,
		Msg:      wasmtypes.RawContractMessage(payload),
		Funds:    funds,
	}

	c.logger.Debug("executing hub contract",
		"contract", contract,
		"sender", exec.Sender,
		"msg", string(payload),
	)
	return c.broadcast(ctx, opts, exec)
}

func (c *Client) broadcast(ctx context.Context, opts TxOptions, msgs ...sdk.Msg) (*sdk.TxResponse, error) {
	txf := clienttx.Factory{}.
		WithChainID(c.cctx.ChainID).
		WithKeybase(c.cctx.Keyring).
		WithTxConfig(c.cctx.TxConfig).
		WithAccountRetriever(c.cctx.AccountRetriever).
		WithGasAdjustment(opts.GasAdjustment).
		WithGasPrices(opts.GasPrices).
		WithFees(opts.Fees).
		WithMemo(opts.Memo).
		WithSignMode(signing.SignMode_SIGN_MODE_DIRECT)

	// fetches account number and sequence from the node
	txf, err := txf.Prepare(c.cctx)
	if err != nil {
		return nil, errorsmod.Wrap(err, "prepare account")
	}

	if opts.Gas == 0 {
		_, adjusted, err := clienttx.CalculateGas(c.cctx, txf, msgs...)
		if err != nil {
			return nil, errorsmod.Wrap(err, "simulate")
		}
		txf = txf.WithGas(adjusted)
		c.logger.Debug("gas simulated", "gas", adjusted)
	} else {
		txf = txf.WithGas(opts.Gas)
	}

	builder, err := txf.BuildUnsignedTx(msgs...)
	if err != nil {
		return nil, err
	}

	if err := clienttx.Sign(ctx, txf, c.cctx.FromName, builder, true); err != nil {
		return nil, errorsmod.Wrap(err, "sign")
	}

	txBytes, err := c.cctx.TxConfig.TxEncoder()(builder.GetTx())
	if err != nil {
		return nil, err
	}

	res, err := c.cctx.BroadcastTx(txBytes)
	if err != nil {
		return nil, errorsmod.Wrap(err, "broadcast")
	}
	if res.Code != 0 {
		return res, ErrTxFailed.Wrapf("code %d (codespace %s): %s", res.Code, res.Codespace, res.RawLog)
	}

	c.logger.Info("tx broadcast", "txhash", res.TxHash)
	return res, nil
}

// txGetter is the slice of the RPC client WaitForCommit needs.
type txGetter interface {
	Tx(ctx context.Context, hash []byte, prove bool) (*coretypes.ResultTx, error)
}

// WaitForCommit polls the node until the tx shows up in a block or the
// timeout elapses. A committed tx with a non-zero code is returned together
// with ErrTxFailed.
func (c *Client) WaitForCommit(ctx context.Context, txHash string, timeout time.Duration) (*coretypes.ResultTx, error) {
	return waitForCommit(ctx, c.cctx.Client, txHash, timeout, c.logger)
}

func waitForCommit(ctx context.Context, getter txGetter, txHash string, timeout time.Duration, logger log.Logger) (*coretypes.ResultTx, error) {
	hashBytes, err := hex.DecodeString(txHash)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "invalid tx hash %q", txHash)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(commitPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ErrCommitTimeout.Wrapf("%s after %s", txHash, timeout)
		case <-ticker.C:
			result, err := getter.Tx(ctx, hashBytes, false)
			if err != nil {
				// not indexed yet
				logger.Debug("tx not committed yet", "txhash", txHash)
				continue
			}
			if result.TxResult.Code != 0 {
				return result, ErrTxFailed.Wrapf(
					"code %d (codespace %s): %s",
					result.TxResult.Code, result.TxResult.Codespace, result.TxResult.Log,
				)
			}
			logger.Debug("tx committed", "txhash", txHash, "height", result.Height)
			return result, nil
		}
	}
}

// QuerySmart runs a hub smart query and decodes the JSON response into
// result.
func (c *Client) QuerySmart(ctx context.Context, contract string, query hub.QueryMsg, result any) error {
	data, err := query.Marshal()
	if err != nil {
		return err
	}
	raw, err := c.QuerySmartRaw(ctx, contract, data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, result)
}

// QuerySmartRaw runs an arbitrary smart query against a contract and returns
// the raw JSON response.
func (c *Client) QuerySmartRaw(ctx context.Context, contract string, query []byte) ([]byte, error) {
	queryClient := wasmtypes.NewQueryClient(c.cctx)
	res, err := queryClient.SmartContractState(ctx, &wasmtypes.QuerySmartContractStateRequest{
		Address:   contract,
		QueryData: wasmtypes.RawContractMessage(query),
	})
	if err != nil {
		return nil, errorsmod.Wrapf(err, "smart query %s", contract)
	}
	return res.Data, nil
}
