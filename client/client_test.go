package client

import (
	"context"
	"errors"
	"testing"
	"time"

	abci "github.com/cometbft/cometbft/abci/types"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"
)

type stubTxGetter struct {
	calls      int
	foundAfter int
	result     *coretypes.ResultTx
}

func (s *stubTxGetter) Tx(_ context.Context, _ []byte, _ bool) (*coretypes.ResultTx, error) {
	s.calls++
	if s.calls < s.foundAfter {
		return nil, errors.New("tx not found")
	}
	return s.result, nil
}

const testTxHash = "8E3E6A8D34DC54E45571041E3A9A937C9E4851FE99D16A9A01CB2CB60BAB6537"

func TestWaitForCommitFound(t *testing.T) {
	getter := &stubTxGetter{
		foundAfter: 2,
		result: &coretypes.ResultTx{
			Height:   42,
			TxResult: abci.ExecTxResult{Code: 0},
		},
	}

	res, err := waitForCommit(context.Background(), getter, testTxHash, 10*time.Second, log.NewNopLogger())
	require.NoError(t, err)
	require.Equal(t, int64(42), res.Height)
	require.Equal(t, 2, getter.calls)
}

func TestWaitForCommitTxFailed(t *testing.T) {
	getter := &stubTxGetter{
		foundAfter: 1,
		result: &coretypes.ResultTx{
			Height: 42,
			TxResult: abci.ExecTxResult{
				Code:      5,
				Codespace: "wasm",
				Log:       "unauthorized: sender is not owner",
			},
		},
	}

	res, err := waitForCommit(context.Background(), getter, testTxHash, 10*time.Second, log.NewNopLogger())
	require.ErrorIs(t, err, ErrTxFailed)
	require.NotNil(t, res)
	require.Contains(t, err.Error(), "unauthorized")
}

func TestWaitForCommitTimeout(t *testing.T) {
	getter := &stubTxGetter{foundAfter: 1 << 30}

	_, err := waitForCommit(context.Background(), getter, testTxHash, 100*time.Millisecond, log.NewNopLogger())
	require.ErrorIs(t, err, ErrCommitTimeout)
}

func TestWaitForCommitBadHash(t *testing.T) {
	getter := &stubTxGetter{}

	_, err := waitForCommit(context.Background(), getter, "not-a-hash", time.Second, log.NewNopLogger())
	require.Error(t, err)
	require.Zero(t, getter.calls)
}
