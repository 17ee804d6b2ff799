package hub

import (
	"cosmossdk.io/errors"
)

// Codespace for hub contract message errors.
const Codespace = "hub"

var (
	ErrNoVariant        = errors.Register(Codespace, 1, "message has no variant set")
	ErrMultipleVariants = errors.Register(Codespace, 2, "message has more than one variant set")
	ErrEmptyValidator   = errors.Register(Codespace, 3, "validator address is empty")
	ErrEmptyOwner       = errors.Register(Codespace, 4, "owner address is empty")
	ErrEmptyUpdate      = errors.Register(Codespace, 5, "update_config has no fields to update")
)
