// Package hub defines the JSON message surface of the amplifier liquid
// staking hub contract. The contract speaks CosmWasm's tagged-enum
// convention: every execute or query payload is an object with exactly one
// snake_case key naming the variant, e.g.
//
//	{"add_validator":{"validator":"...valoper..."}}
//
// Optional fields are omitted from the JSON entirely when unset.
package hub

import (
	"encoding/json"

	"cosmossdk.io/math"
)

// ExecuteMsg is the tagged union of hub execute variants. Exactly one field
// must be non-nil; Validate enforces this before the payload is marshaled
// into a MsgExecuteContract.
type ExecuteMsg struct {
	AddValidator          *AddValidator          `json:"add_validator,omitempty"`
	RemoveValidator       *RemoveValidator       `json:"remove_validator,omitempty"`
	Harvest               *Harvest               `json:"harvest,omitempty"`
	TuneDelegations       *TuneDelegations       `json:"tune_delegations,omitempty"`
	Rebalance             *Rebalance             `json:"rebalance,omitempty"`
	Reconcile             *Reconcile             `json:"reconcile,omitempty"`
	SubmitBatch           *SubmitBatch           `json:"submit_batch,omitempty"`
	UpdateConfig          *UpdateConfig          `json:"update_config,omitempty"`
	ProposeNewOwner       *ProposeNewOwner       `json:"propose_new_owner,omitempty"`
	DropOwnershipProposal *DropOwnershipProposal `json:"drop_ownership_proposal,omitempty"`
	ClaimOwnership        *ClaimOwnership        `json:"claim_ownership,omitempty"`
}

// AddValidator registers a validator with the hub's delegation set.
type AddValidator struct {
	Validator string `json:"validator"`
}

// RemoveValidator removes a validator from the delegation set. The hub
// redelegates its stake away before dropping it.
type RemoveValidator struct {
	Validator string `json:"validator"`
}

// Harvest claims staking rewards and restakes them.
type Harvest struct{}

// TuneDelegations recomputes the target delegation distribution.
type TuneDelegations struct{}

// Rebalance redelegates stake to match the target distribution.
// MinRedelegation suppresses dust moves below the given amount.
type Rebalance struct {
	MinRedelegation *math.Int `json:"min_redelegation,omitempty"`
}

// Reconcile reconciles unbonded batches against the contract balance.
type Reconcile struct{}

// SubmitBatch submits the pending unbonding batch to the chain.
type SubmitBatch struct{}

// UpdateConfig updates contract configuration. Nil fields are left
// untouched by the contract and must not appear in the JSON.
type UpdateConfig struct {
	Operator            *string         `json:"operator,omitempty"`
	ProtocolFeeContract *string         `json:"protocol_fee_contract,omitempty"`
	ProtocolRewardFee   *math.LegacyDec `json:"protocol_reward_fee,omitempty"`
	EpochPeriod         *uint64         `json:"epoch_period,omitempty"`
	UnbondPeriod        *uint64         `json:"unbond_period,omitempty"`
	AllowDonations      *bool           `json:"allow_donations,omitempty"`
}

// ProposeNewOwner creates a request to change the contract's ownership.
// The proposal expires ExpiresIn seconds after the block it is included in.
type ProposeNewOwner struct {
	Owner     string `json:"owner"`
	ExpiresIn uint64 `json:"expires_in"`
}

// DropOwnershipProposal removes a pending ownership proposal.
type DropOwnershipProposal struct{}

// ClaimOwnership claims contract ownership from a pending proposal.
type ClaimOwnership struct{}

// Validate checks that exactly one variant is set and that the set variant
// carries its required fields.
func (m ExecuteMsg) Validate() error {
	variants := []bool{
		m.AddValidator != nil,
		m.RemoveValidator != nil,
		m.Harvest != nil,
		m.TuneDelegations != nil,
		m.Rebalance != nil,
		m.Reconcile != nil,
		m.SubmitBatch != nil,
		m.UpdateConfig != nil,
		m.ProposeNewOwner != nil,
		m.DropOwnershipProposal != nil,
		m.ClaimOwnership != nil,
	}

	set := 0
	for _, v := range variants {
		if v {
			set++
		}
	}
	switch {
	case set == 0:
		return ErrNoVariant
	case set > 1:
		return ErrMultipleVariants.Wrapf("%d variants set", set)
	}

	switch {
	case m.AddValidator != nil && m.AddValidator.Validator == "":
		return ErrEmptyValidator.Wrap("add_validator")
	case m.RemoveValidator != nil && m.RemoveValidator.Validator == "":
		return ErrEmptyValidator.Wrap("remove_validator")
	case m.ProposeNewOwner != nil && m.ProposeNewOwner.Owner == "":
		return ErrEmptyOwner.Wrap("propose_new_owner")
	case m.UpdateConfig != nil && *m.UpdateConfig == (UpdateConfig{}):
		return ErrEmptyUpdate
	}

	return nil
}

// Marshal validates the message and returns its JSON encoding, ready to be
// used as the msg field of a MsgExecuteContract.
func (m ExecuteMsg) Marshal() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}
