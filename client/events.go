package client

import (
	"strings"

	coretypes "github.com/cometbft/cometbft/rpc/core/types"
)

// ContractEvent is a flattened wasm event emitted by a contract execution.
type ContractEvent struct {
	Type       string
	Contract   string
	Attributes map[string]string
}

// ContractEvents extracts the wasm events from a committed tx. The wasm
// module emits a bare "wasm" event plus "wasm-"-prefixed custom events; the
// _contract_address attribute identifies the emitter.
func ContractEvents(res *coretypes.ResultTx) []ContractEvent {
	if res == nil {
		return nil
	}

	var events []ContractEvent
	for _, ev := range res.TxResult.Events {
		if ev.Type != "wasm" && !strings.HasPrefix(ev.Type, "wasm-") {
			continue
		}

		out := ContractEvent{
			Type:       ev.Type,
			Attributes: make(map[string]string, len(ev.Attributes)),
		}
		for _, attr := range ev.Attributes {
			if attr.Key == "_contract_address" {
				out.Contract = attr.Value
				continue
			}
			out.Attributes[attr.Key] = attr.Value
		}
		events = append(events, out)
	}
	return events
}
