package runner

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvdev/cosmic-wavs-sub000/codec"
	"github.com/anvdev/cosmic-wavs-sub000/trigger"
)

func echoHandler(req trigger.DecodedRequest, val codec.Value) ([]byte, error) {
	switch val.Kind() {
	case codec.KindText:
		return []byte(val.Text()), nil
	default:
		return val.Raw(), nil
	}
}

func packBareString(t *testing.T, s string) []byte {
	t.Helper()
	stringType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	payload, err := abi.Arguments{{Type: stringType}}.Pack(s)
	require.NoError(t, err)
	return payload
}

func newTriggerLog(t *testing.T, triggerID uint64, data []byte) *types.Log {
	t.Helper()
	info, err := codec.EncodeTriggerInfo(codec.TriggerInfo{
		TriggerId: triggerID,
		Creator:   common.HexToAddress("0x01"),
		Data:      data,
	})
	require.NoError(t, err)
	logData, err := codec.PackNewTriggerLog(info)
	require.NoError(t, err)
	return &types.Log{
		Topics: []common.Hash{codec.NewTriggerEventID},
		Data:   logData,
	}
}

func TestRun_RawLocalEcho(t *testing.T) {
	payload := []byte("1027")
	env := trigger.RawInvocationEnvelope(payload)

	out, err := Run(env, codec.ShapeRaw, echoHandler)
	require.NoError(t, err)
	assert.Equal(t, payload, out, "local output is the handler result verbatim")

	again, err := Run(env, codec.ShapeRaw, echoHandler)
	require.NoError(t, err)
	assert.Equal(t, out, again, "same envelope, same result")
}

func TestRun_EvmEventToDataWithId(t *testing.T) {
	log := newTriggerLog(t, 42, packBareString(t, "BTC:82717"))

	out, err := Run(trigger.EvmContractEventEnvelope(log), codec.ShapeText, echoHandler)
	require.NoError(t, err)

	id, data, err := codec.DecodeDataWithId(out)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	assert.Equal(t, []byte("BTC:82717"), data)
}

func TestRun_ClassifyFailureAborts(t *testing.T) {
	out, err := Run(trigger.EvmContractEventEnvelope(nil), codec.ShapeRaw, echoHandler)
	assert.ErrorIs(t, err, trigger.ErrMalformedEnvelope)
	assert.Nil(t, out)
}

func TestRun_DecodeFailureAborts(t *testing.T) {
	env := trigger.RawInvocationEnvelope([]byte{1, 2, 3, 4, 5, 6, 7})

	out, err := Run(env, codec.ShapeAddress, echoHandler)
	assert.ErrorIs(t, err, codec.ErrUnrecognizedShape)
	assert.Nil(t, out)
}

func TestRun_HandlerFailureAborts(t *testing.T) {
	boom := errors.New("boom")
	failing := func(trigger.DecodedRequest, codec.Value) ([]byte, error) {
		return []byte("partial"), boom
	}

	out, err := Run(trigger.RawInvocationEnvelope([]byte("x")), codec.ShapeRaw, failing)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out, "a failed invocation produces no output")
}

func TestEncodeResult_Destinations(t *testing.T) {
	out, err := EncodeResult(7, []byte("ok"), trigger.DestCliOutput)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), out)

	record, err := EncodeResult(7, []byte("ok"), trigger.DestEthereum)
	require.NoError(t, err)
	id, data, err := codec.DecodeDataWithId(record)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)
	assert.Equal(t, []byte("ok"), data)

	_, err = EncodeResult(7, []byte("ok"), trigger.DestCosmos)
	assert.ErrorIs(t, err, ErrUnsupportedDestination)

	_, err = EncodeResult(7, []byte("ok"), trigger.Destination(250))
	assert.ErrorIs(t, err, ErrUnsupportedDestination)
}
