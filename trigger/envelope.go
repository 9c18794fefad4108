// Package trigger models the unit of work delivered to a component
// invocation and classifies it into a normalized request.
//
// An Envelope is constructed once per invocation by the external runtime
// (or by the replay tooling), is immutable, and is discarded after the
// invocation returns. Classification recovers the correlation id, the
// opaque payload and the destination the result must be routed to.
package trigger

import (
	"github.com/ethereum/go-ethereum/core/types"
)

// Origin tags the source that produced an envelope.
type Origin uint8

const (
	// OriginRawInvocation is a local invocation with a caller-supplied buffer.
	OriginRawInvocation Origin = iota
	// OriginEvmContractEvent is a log emitted by the trigger contract.
	OriginEvmContractEvent
	// OriginCosmosContractEvent is a CosmWasm contract event.
	OriginCosmosContractEvent
)

func (o Origin) String() string {
	switch o {
	case OriginRawInvocation:
		return "raw"
	case OriginEvmContractEvent:
		return "evm-contract-event"
	case OriginCosmosContractEvent:
		return "cosmos-contract-event"
	default:
		return "unknown"
	}
}

// Destination tells the encoder where the result of an invocation goes.
type Destination uint8

const (
	// DestCliOutput hands the raw result bytes back to the local harness.
	DestCliOutput Destination = iota
	// DestEthereum submits an ABI-encoded DataWithId record on-chain.
	DestEthereum
	// DestCosmos is reserved for non-EVM submission.
	DestCosmos
)

func (d Destination) String() string {
	switch d {
	case DestCliOutput:
		return "cli-output"
	case DestEthereum:
		return "ethereum"
	case DestCosmos:
		return "cosmos"
	default:
		return "unknown"
	}
}

// CosmosAttribute is one string key/value pair of a CosmWasm event.
type CosmosAttribute struct {
	Key   string
	Value string
}

// CosmosEvent is the origin-specific content of a CosmWasm contract event.
type CosmosEvent struct {
	ContractAddress string
	ChainName       string
	Type            string
	BlockHeight     uint64
	Attributes      []CosmosAttribute
}

// Envelope is the tagged unit of work of one invocation.
// Exactly one origin-specific field is populated, matching the origin tag.
type Envelope struct {
	origin Origin
	log    *types.Log
	cosmos *CosmosEvent
	raw    []byte
}

// RawInvocationEnvelope wraps a local raw buffer.
func RawInvocationEnvelope(raw []byte) Envelope {
	return Envelope{origin: OriginRawInvocation, raw: raw}
}

// EvmContractEventEnvelope wraps an on-chain log.
func EvmContractEventEnvelope(log *types.Log) Envelope {
	return Envelope{origin: OriginEvmContractEvent, log: log}
}

// CosmosContractEventEnvelope wraps a CosmWasm contract event.
func CosmosContractEventEnvelope(ev *CosmosEvent) Envelope {
	return Envelope{origin: OriginCosmosContractEvent, cosmos: ev}
}

// Origin returns the envelope's origin tag.
func (e Envelope) Origin() Origin {
	return e.origin
}

// DecodedRequest is the normalized output of classification.
type DecodedRequest struct {
	// TriggerID correlates an on-chain submission back to its trigger.
	// 0 is reserved for invocations with no on-chain correlation.
	TriggerID uint64
	// Payload is the opaque business payload. It is never assumed to be
	// valid UTF-8 before explicit decoding (see package codec).
	Payload []byte
	// Destination routes the invocation result.
	Destination Destination
}
