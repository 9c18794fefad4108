// Package runner drives one component invocation end to end:
// classification, payload decoding, the business handler and result
// encoding. A run is a pure function of the envelope, the shape hint and
// the handler; nothing is carried across invocations.
package runner

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/anvdev/cosmic-wavs-sub000/codec"
	"github.com/anvdev/cosmic-wavs-sub000/trigger"
	"github.com/anvdev/cosmic-wavs-sub000/utils/safe"
)

// ErrUnsupportedDestination is returned when a result cannot be encoded
// for the destination the envelope was classified to.
var ErrUnsupportedDestination = errors.New("unsupported result destination")

// Handler consumes one decoded invocation and produces the result bytes.
// Returning an error fails the whole invocation; no partial output is
// emitted.
type Handler func(req trigger.DecodedRequest, val codec.Value) ([]byte, error)

// Run executes the pipeline for a single envelope. Any stage failure
// aborts the invocation and surfaces the stage's error unchanged.
func Run(env trigger.Envelope, shape codec.Shape, h Handler) ([]byte, error) {
	req, err := trigger.Classify(env)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"origin":     env.Origin().String(),
		"triggerId":  req.TriggerID,
		"inputLen":   len(req.Payload),
		"inputBytes": safe.HexPreview(req.Payload, 8),
	}).Info("invocation")

	val, err := codec.Decode(req.Payload, shape)
	if err != nil {
		return nil, err
	}

	result, err := h(req, val)
	if err != nil {
		return nil, fmt.Errorf("handler: %w", err)
	}

	return EncodeResult(req.TriggerID, result, req.Destination)
}

// EncodeResult wraps the handler output for its destination.
//
// Local output is the result verbatim. An Ethereum-bound result is packed
// into a DataWithId record keyed by the trigger id. Cosmos submission is
// reserved and rejected rather than guessed at.
func EncodeResult(triggerID uint64, result []byte, dest trigger.Destination) ([]byte, error) {
	switch dest {
	case trigger.DestCliOutput:
		return result, nil
	case trigger.DestEthereum:
		return codec.EncodeDataWithId(triggerID, result)
	case trigger.DestCosmos:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDestination, dest)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDestination, dest)
	}
}
