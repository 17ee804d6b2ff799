package hub

import (
	"encoding/json"

	"cosmossdk.io/math"
)

// QueryMsg is the tagged union of hub smart-query variants. Exactly one
// field must be non-nil.
type QueryMsg struct {
	Config               *ConfigQuery          `json:"config,omitempty"`
	State                *StateQuery           `json:"state,omitempty"`
	PendingBatch         *PendingBatchQuery    `json:"pending_batch,omitempty"`
	PreviousBatch        *PreviousBatchQuery   `json:"previous_batch,omitempty"`
	PreviousBatches      *PreviousBatchesQuery `json:"previous_batches,omitempty"`
	UnbondRequestsByUser *UnbondRequestsQuery  `json:"unbond_requests_by_user,omitempty"`
}

// ConfigQuery returns the contract configuration.
type ConfigQuery struct{}

// StateQuery returns the overall contract state.
type StateQuery struct{}

// PendingBatchQuery returns the batch currently accumulating unbond requests.
type PendingBatchQuery struct{}

// PreviousBatchQuery returns a previously submitted batch by id.
type PreviousBatchQuery struct {
	ID uint64 `json:"id"`
}

// PreviousBatchesQuery pages over previously submitted batches.
type PreviousBatchesQuery struct {
	StartAfter *uint64 `json:"start_after,omitempty"`
	Limit      *uint32 `json:"limit,omitempty"`
}

// UnbondRequestsQuery lists the unbond requests of a single user.
type UnbondRequestsQuery struct {
	User       string  `json:"user"`
	StartAfter *uint64 `json:"start_after,omitempty"`
	Limit      *uint32 `json:"limit,omitempty"`
}

// Validate checks that exactly one query variant is set.
func (m QueryMsg) Validate() error {
	variants := []bool{
		m.Config != nil,
		m.State != nil,
		m.PendingBatch != nil,
		m.PreviousBatch != nil,
		m.PreviousBatches != nil,
		m.UnbondRequestsByUser != nil,
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
	return nil
}

// Marshal validates the query and returns its JSON encoding.
func (m QueryMsg) Marshal() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// ConfigResponse mirrors the contract's config query response.
type ConfigResponse struct {
	Owner               string         `json:"owner"`
	NewOwner            *string        `json:"new_owner,omitempty"`
	Operator            string         `json:"operator"`
	StakeToken          string         `json:"stake_token"`
	EpochPeriod         uint64         `json:"epoch_period"`
	UnbondPeriod        uint64         `json:"unbond_period"`
	Validators          []string       `json:"validators"`
	ProtocolFeeContract string         `json:"protocol_fee_contract"`
	ProtocolRewardFee   math.LegacyDec `json:"protocol_reward_fee"`
	AllowDonations      bool           `json:"allow_donations"`
}

// StateResponse mirrors the contract's state query response. Amounts are
// Uint128 on the contract side and decode into math.Int.
type StateResponse struct {
	TotalStakeToken math.Int       `json:"total_ustake"`
	TotalNative     math.Int       `json:"total_native"`
	ExchangeRate    math.LegacyDec `json:"exchange_rate"`
	UnlockedCoins   []Coin         `json:"unlocked_coins"`
}

// Coin is the cosmwasm_std::Coin JSON shape.
type Coin struct {
	Denom  string   `json:"denom"`
	Amount math.Int `json:"amount"`
}

// PendingBatchResponse mirrors the pending_batch query response.
type PendingBatchResponse struct {
	ID             uint64   `json:"id"`
	TotalShares    math.Int `json:"ustake_to_burn"`
	EstUnbondStart uint64   `json:"est_unbond_start_time"`
}

// Batch mirrors a previously submitted unbonding batch.
type Batch struct {
	ID              uint64   `json:"id"`
	Reconciled      bool     `json:"reconciled"`
	TotalShares     math.Int `json:"total_shares"`
	AmountUnclaimed math.Int `json:"amount_unclaimed"`
	EstUnbondEnd    uint64   `json:"est_unbond_end_time"`
}

// UnbondRequest mirrors a single user unbond request.
type UnbondRequest struct {
	ID     uint64   `json:"id"`
	User   string   `json:"user"`
	Shares math.Int `json:"shares"`
}
