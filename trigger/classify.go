package trigger

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/anvdev/cosmic-wavs-sub000/codec"
)

var (
	// ErrUnsupportedOrigin is returned for an origin tag matching no
	// recognized variant. Fatal, never retried here.
	ErrUnsupportedOrigin = errors.New("unsupported trigger origin")
	// ErrMalformedEnvelope is returned when a recognized origin's nested
	// structure fails to decode. Fatal, never retried here.
	ErrMalformedEnvelope = errors.New("malformed trigger envelope")
)

// cosmosWasmEventType is the only CosmWasm event type carrying triggers.
const cosmosWasmEventType = "wasm"

// cosmosKnownActions are the action attribute values recognized as triggers.
var cosmosKnownActions = map[string]bool{
	"burn":              true,
	"register_infusion": true,
}

// Classify inspects the envelope's origin and produces the normalized
// request. It is a pure function of the envelope: no external state, no
// retries. Any failure is fatal to the invocation and surfaces as
// ErrUnsupportedOrigin or ErrMalformedEnvelope.
func Classify(env Envelope) (DecodedRequest, error) {
	switch env.origin {
	case OriginRawInvocation:
		// raw bytes are handed downstream uninterpreted
		return DecodedRequest{
			TriggerID:   0,
			Payload:     env.raw,
			Destination: DestCliOutput,
		}, nil
	case OriginEvmContractEvent:
		return classifyEvmLog(env.log)
	case OriginCosmosContractEvent:
		return classifyCosmosEvent(env.cosmos)
	default:
		return DecodedRequest{}, fmt.Errorf("%w: origin tag %d", ErrUnsupportedOrigin, uint8(env.origin))
	}
}

// classifyEvmLog decodes a NewTrigger log in two steps: first the log data
// into the raw TriggerInfo bytes, then the nested ABI record. Each step
// fails independently and the error names the failed step.
func classifyEvmLog(log *types.Log) (DecodedRequest, error) {
	if log == nil {
		return DecodedRequest{}, fmt.Errorf("%w: nil contract log", ErrMalformedEnvelope)
	}
	if len(log.Topics) == 0 || log.Topics[0] != codec.NewTriggerEventID {
		return DecodedRequest{}, fmt.Errorf("%w: log is not a NewTrigger event", ErrMalformedEnvelope)
	}

	infoBytes, err := codec.UnpackNewTriggerLog(log.Data)
	if err != nil {
		return DecodedRequest{}, fmt.Errorf("%w: event log data: %v", ErrMalformedEnvelope, err)
	}

	info, err := codec.DecodeTriggerInfo(infoBytes)
	if err != nil {
		return DecodedRequest{}, fmt.Errorf("%w: nested TriggerInfo record: %v", ErrMalformedEnvelope, err)
	}

	return DecodedRequest{
		TriggerID:   info.TriggerId,
		Payload:     info.Data,
		Destination: DestEthereum,
	}, nil
}

// classifyCosmosEvent filters CosmWasm events by type and action attribute
// and assembles the payload from attribute values. The block height serves
// as the correlation id.
func classifyCosmosEvent(ev *CosmosEvent) (DecodedRequest, error) {
	if ev == nil {
		return DecodedRequest{}, fmt.Errorf("%w: nil cosmos event", ErrMalformedEnvelope)
	}
	if ev.Type != cosmosWasmEventType {
		return DecodedRequest{}, fmt.Errorf("%w: event type %q is not %q", ErrMalformedEnvelope, ev.Type, cosmosWasmEventType)
	}

	action, ok := attributeValue(ev.Attributes, "action")
	if !ok {
		return DecodedRequest{}, fmt.Errorf("%w: no action attribute", ErrMalformedEnvelope)
	}
	if !cosmosKnownActions[action] {
		return DecodedRequest{}, fmt.Errorf("%w: unrecognized action %q", ErrMalformedEnvelope, action)
	}

	sender, ok := attributeValue(ev.Attributes, "sender")
	if !ok {
		return DecodedRequest{}, fmt.Errorf("%w: no sender attribute", ErrMalformedEnvelope)
	}
	tokenIDStr, ok := attributeValue(ev.Attributes, "token_id")
	if !ok {
		return DecodedRequest{}, fmt.Errorf("%w: no token_id attribute", ErrMalformedEnvelope)
	}
	tokenID, err := strconv.ParseUint(tokenIDStr, 10, 64)
	if err != nil {
		return DecodedRequest{}, fmt.Errorf("%w: token_id attribute: %v", ErrMalformedEnvelope, err)
	}

	payload := make([]byte, 0, len(ev.ContractAddress)+8+len(sender)+len(ev.ChainName))
	payload = append(payload, ev.ContractAddress...)
	payload = append(payload, bigendian.Uint64ToBytes(tokenID)...)
	payload = append(payload, sender...)
	payload = append(payload, ev.ChainName...)

	return DecodedRequest{
		TriggerID:   ev.BlockHeight,
		Payload:     payload,
		Destination: DestCosmos,
	}, nil
}

func attributeValue(attrs []CosmosAttribute, key string) (string, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
