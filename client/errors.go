package client

import (
	"cosmossdk.io/errors"
)

// Codespace for client sentinel errors.
const Codespace = "hubctl"

var (
	ErrUnknownNetwork = errors.Register(Codespace, 1, "unknown network")
	ErrBadNetwork     = errors.Register(Codespace, 2, "incomplete network definition")
	ErrNoHubAddress   = errors.Register(Codespace, 3, "no hub contract address")
	ErrNoKey          = errors.Register(Codespace, 4, "no signing key selected")
	ErrInvalidAddress = errors.Register(Codespace, 5, "invalid bech32 address")
	ErrTxFailed       = errors.Register(Codespace, 6, "transaction failed")
	ErrCommitTimeout  = errors.Register(Codespace, 7, "timed out waiting for tx commit")
)
