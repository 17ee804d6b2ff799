package hub_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/math"

	"github.com/erisprotocol/hubctl/hub"
)

func TestExecuteMsgJSON(t *testing.T) {
	fee := math.LegacyMustNewDecFromStr("0.05")
	minRedelegation := math.NewInt(50000)
	operator := "terra1zly98gvcec54m3caxlqexce7rus6rzgplz7eketsdz4nwduortgqgsxgpq"

	testCases := []struct {
		name    string
		msg     hub.ExecuteMsg
		expJSON string
	}{
		{
			name: "add_validator",
			msg: hub.ExecuteMsg{
				AddValidator: &hub.AddValidator{Validator: "terravaloper1259cmu5zyklsdkmgstxhwqpe0utfe5hhyty0at"},
			},
			expJSON: `{"add_validator":{"validator":"terravaloper1259cmu5zyklsdkmgstxhwqpe0utfe5hhyty0at"}}`,
		},
		{
			name: "remove_validator",
			msg: hub.ExecuteMsg{
				RemoveValidator: &hub.RemoveValidator{Validator: "terravaloper1259cmu5zyklsdkmgstxhwqpe0utfe5hhyty0at"},
			},
			expJSON: `{"remove_validator":{"validator":"terravaloper1259cmu5zyklsdkmgstxhwqpe0utfe5hhyty0at"}}`,
		},
		{
			name:    "harvest",
			msg:     hub.ExecuteMsg{Harvest: &hub.Harvest{}},
			expJSON: `{"harvest":{}}`,
		},
		{
			name:    "tune_delegations",
			msg:     hub.ExecuteMsg{TuneDelegations: &hub.TuneDelegations{}},
			expJSON: `{"tune_delegations":{}}`,
		},
		{
			name:    "rebalance without threshold",
			msg:     hub.ExecuteMsg{Rebalance: &hub.Rebalance{}},
			expJSON: `{"rebalance":{}}`,
		},
		{
			name: "rebalance with threshold",
			msg: hub.ExecuteMsg{
				Rebalance: &hub.Rebalance{MinRedelegation: &minRedelegation},
			},
			expJSON: `{"rebalance":{"min_redelegation":"50000"}}`,
		},
		{
			name:    "reconcile",
			msg:     hub.ExecuteMsg{Reconcile: &hub.Reconcile{}},
			expJSON: `{"reconcile":{}}`,
		},
		{
			name:    "submit_batch",
			msg:     hub.ExecuteMsg{SubmitBatch: &hub.SubmitBatch{}},
			expJSON: `{"submit_batch":{}}`,
		},
		{
			name: "update_config omits unset fields",
			msg: hub.ExecuteMsg{
				UpdateConfig: &hub.UpdateConfig{ProtocolRewardFee: &fee},
			},
			expJSON: `{"update_config":{"protocol_reward_fee":"0.050000000000000000"}}`,
		},
		{
			name: "update_config with operator",
			msg: hub.ExecuteMsg{
				UpdateConfig: &hub.UpdateConfig{Operator: &operator},
			},
			expJSON: `{"update_config":{"operator":"` + operator + `"}}`,
		},
		{
			name: "propose_new_owner",
			msg: hub.ExecuteMsg{
				ProposeNewOwner: &hub.ProposeNewOwner{Owner: operator, ExpiresIn: 1209600},
			},
			expJSON: `{"propose_new_owner":{"owner":"` + operator + `","expires_in":1209600}}`,
		},
		{
			name:    "drop_ownership_proposal",
			msg:     hub.ExecuteMsg{DropOwnershipProposal: &hub.DropOwnershipProposal{}},
			expJSON: `{"drop_ownership_proposal":{}}`,
		},
		{
			name:    "claim_ownership",
			msg:     hub.ExecuteMsg{ClaimOwnership: &hub.ClaimOwnership{}},
			expJSON: `{"claim_ownership":{}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bz, err := tc.msg.Marshal()
			require.NoError(t, err)
			require.JSONEq(t, tc.expJSON, string(bz))
		})
	}
}

func TestExecuteMsgValidate(t *testing.T) {
	testCases := []struct {
		name     string
		msg      hub.ExecuteMsg
		expError error
	}{
		{
			name:     "no variant",
			msg:      hub.ExecuteMsg{},
			expError: hub.ErrNoVariant,
		},
		{
			name: "two variants",
			msg: hub.ExecuteMsg{
				Harvest:   &hub.Harvest{},
				Reconcile: &hub.Reconcile{},
			},
			expError: hub.ErrMultipleVariants,
		},
		{
			name: "empty validator on add",
			msg: hub.ExecuteMsg{
				AddValidator: &hub.AddValidator{},
			},
			expError: hub.ErrEmptyValidator,
		},
		{
			name: "empty validator on remove",
			msg: hub.ExecuteMsg{
				RemoveValidator: &hub.RemoveValidator{},
			},
			expError: hub.ErrEmptyValidator,
		},
		{
			name: "empty owner on propose",
			msg: hub.ExecuteMsg{
				ProposeNewOwner: &hub.ProposeNewOwner{ExpiresIn: 100},
			},
			expError: hub.ErrEmptyOwner,
		},
		{
			name: "update_config with nothing to update",
			msg: hub.ExecuteMsg{
				UpdateConfig: &hub.UpdateConfig{},
			},
			expError: hub.ErrEmptyUpdate,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.Validate()
			require.ErrorIs(t, err, tc.expError)

			_, err = tc.msg.Marshal()
			require.ErrorIs(t, err, tc.expError)
		})
	}
}

func TestExecuteMsgRoundTrip(t *testing.T) {
	// the contract rejects unknown fields, so the encoding must carry the
	// variant key and nothing else
	msg := hub.ExecuteMsg{
		AddValidator: &hub.AddValidator{Validator: "junovaloper1t8ehvswxjfn3ejzkjtntcyrqwvmvuknzmvtaaa"},
	}

	bz, err := msg.Marshal()
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(bz, &decoded))
	require.Len(t, decoded, 1)
	require.Contains(t, decoded, "add_validator")
}
