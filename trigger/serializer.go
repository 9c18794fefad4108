package trigger

import (
	"errors"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/anvdev/cosmic-wavs-sub000/utils/cser"
)

// Replay records: an Envelope captured by the runtime can be stored as a
// canonical compact binary record and fed back through the pipeline later.
// The CSER form is the canonical encoding; EncodeRLP/DecodeRLP wrap it for
// transports that speak RLP.

var (
	// ErrSerMalformedEnvelope is returned when an envelope violates the
	// record structure (origin tag and populated field disagree, topic
	// count out of range).
	ErrSerMalformedEnvelope = errors.New("serialization of malformed envelope")
)

const (
	// maxLogTopics is the EVM limit (LOG4).
	maxLogTopics = 4
	// maxCosmosAttributes bounds attribute list allocation on decode.
	maxCosmosAttributes = 1024
)

// MarshalCSER writes the envelope as [origin tag][origin-specific body].
func (e *Envelope) MarshalCSER(w *cser.Writer) error {
	w.U8(uint8(e.origin))
	switch e.origin {
	case OriginRawInvocation:
		w.SliceBytes(e.raw)
		return nil
	case OriginEvmContractEvent:
		if e.log == nil || len(e.log.Topics) > maxLogTopics {
			return ErrSerMalformedEnvelope
		}
		w.FixedBytes(e.log.Address[:])
		w.VarUint(uint64(len(e.log.Topics)))
		for _, topic := range e.log.Topics {
			w.FixedBytes(topic[:])
		}
		w.SliceBytes(e.log.Data)
		w.U64(e.log.BlockNumber)
		return nil
	case OriginCosmosContractEvent:
		if e.cosmos == nil {
			return ErrSerMalformedEnvelope
		}
		w.String(e.cosmos.ContractAddress)
		w.String(e.cosmos.ChainName)
		w.String(e.cosmos.Type)
		w.U64(e.cosmos.BlockHeight)
		w.VarUint(uint64(len(e.cosmos.Attributes)))
		for _, a := range e.cosmos.Attributes {
			w.String(a.Key)
			w.String(a.Value)
		}
		return nil
	default:
		return ErrSerMalformedEnvelope
	}
}

// UnmarshalCSER is the inverse of MarshalCSER. Allocation is bounded before
// any slice is made; a record violating the bounds fails to decode.
func (e *Envelope) UnmarshalCSER(r *cser.Reader) error {
	origin := Origin(r.U8())
	switch origin {
	case OriginRawInvocation:
		*e = RawInvocationEnvelope(normalize(r.SliceBytes(cser.MaxAlloc)))
		return nil
	case OriginEvmContractEvent:
		log := &types.Log{}
		r.FixedBytes(log.Address[:])
		topicsNum := r.VarUint()
		if topicsNum > maxLogTopics {
			return cser.ErrTooLargeAlloc
		}
		log.Topics = make([]common.Hash, topicsNum)
		for i := range log.Topics {
			r.FixedBytes(log.Topics[i][:])
		}
		log.Data = normalize(r.SliceBytes(cser.MaxAlloc))
		log.BlockNumber = r.U64()
		*e = EvmContractEventEnvelope(log)
		return nil
	case OriginCosmosContractEvent:
		ev := &CosmosEvent{}
		ev.ContractAddress = r.String(cser.MaxAlloc)
		ev.ChainName = r.String(cser.MaxAlloc)
		ev.Type = r.String(cser.MaxAlloc)
		ev.BlockHeight = r.U64()
		attrsNum := r.VarUint()
		if attrsNum > maxCosmosAttributes {
			return cser.ErrTooLargeAlloc
		}
		if attrsNum > 0 {
			ev.Attributes = make([]CosmosAttribute, attrsNum)
			for i := range ev.Attributes {
				ev.Attributes[i].Key = r.String(cser.MaxAlloc)
				ev.Attributes[i].Value = r.String(cser.MaxAlloc)
			}
		}
		*e = CosmosContractEventEnvelope(ev)
		return nil
	default:
		return cser.ErrMalformedEncoding
	}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (e *Envelope) MarshalBinary() ([]byte, error) {
	return cser.MarshalBinaryAdapter(e.MarshalCSER)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (e *Envelope) UnmarshalBinary(raw []byte) error {
	return cser.UnmarshalBinaryAdapter(raw, e.UnmarshalCSER)
}

// EncodeRLP implements rlp.Encoder.
func (e *Envelope) EncodeRLP(w io.Writer) error {
	bytes, err := e.MarshalBinary()
	if err != nil {
		return err
	}

	return rlp.Encode(w, &bytes)
}

// DecodeRLP implements rlp.Decoder.
func (e *Envelope) DecodeRLP(src *rlp.Stream) error {
	bytes, err := src.Bytes()
	if err != nil {
		return err
	}

	return e.UnmarshalBinary(bytes)
}

// normalize maps a zero-length decoded slice to nil, so a round-tripped
// envelope compares equal to the one that was marshalled.
func normalize(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
