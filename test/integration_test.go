package test

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvdev/cosmic-wavs-sub000/cmd/wavs/launcher"
	"github.com/anvdev/cosmic-wavs-sub000/codec"
	"github.com/anvdev/cosmic-wavs-sub000/runner"
	"github.com/anvdev/cosmic-wavs-sub000/trigger"
)

// The tests here run the whole pipeline the way the CLI does: an envelope
// goes through classification, payload decoding, the built-in handler and
// result encoding, with no shortcuts through package internals.

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
		Creator:   common.HexToAddress("0x02"),
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

func TestPipeline_RawInvocationEcho(t *testing.T) {
	out, err := runner.Run(trigger.RawInvocationEnvelope([]byte("hello")), codec.ShapeRaw, launcher.FormatHandler)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), out)
}

func TestPipeline_RawAmountFormatting(t *testing.T) {
	payload := packBareString(t, "82717")

	out, err := runner.Run(trigger.RawInvocationEnvelope(payload), codec.ShapeText, launcher.FormatHandler)
	require.NoError(t, err)
	assert.Equal(t, []byte("0.082717"), out, "integer text renders as a micro-unit amount")
}

func TestPipeline_AddressPayloadWithDiscardedSelector(t *testing.T) {
	addr := common.HexToAddress("0x1122334455667788990011223344556677889900")

	// 4-byte selector (unknown, discarded) + 32-byte zero-padded address word
	payload := make([]byte, 36)
	copy(payload[16:], addr.Bytes())

	out, err := runner.Run(trigger.RawInvocationEnvelope(payload), codec.ShapeAddress, launcher.FormatHandler)
	require.NoError(t, err)
	assert.Equal(t, []byte(addr.Hex()), out)
}

func TestPipeline_EvmEventRoundTrip(t *testing.T) {
	log := newTriggerLog(t, 42, packBareString(t, "BTC:82717"))

	out, err := runner.Run(trigger.EvmContractEventEnvelope(log), codec.ShapeText, launcher.FormatHandler)
	require.NoError(t, err)

	// result is correlated back to the trigger that caused it
	peeked, err := codec.PeekTriggerID(out)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), peeked)

	id, data, err := codec.DecodeDataWithId(out)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	assert.Equal(t, []byte("BTC:82717"), data)
}

func TestPipeline_CosmosDestinationReserved(t *testing.T) {
	env := trigger.CosmosContractEventEnvelope(&trigger.CosmosEvent{
		ContractAddress: "juno1contract",
		ChainName:       "juno",
		Type:            "wasm",
		BlockHeight:     9,
		Attributes: []trigger.CosmosAttribute{
			{Key: "action", Value: "burn"},
			{Key: "sender", Value: "juno1sender"},
			{Key: "token_id", Value: "3"},
		},
	})

	_, err := runner.Run(env, codec.ShapeRaw, launcher.FormatHandler)
	assert.ErrorIs(t, err, runner.ErrUnsupportedDestination)
}

func TestPipeline_ReplayedRecordMatchesDirectRun(t *testing.T) {
	env := trigger.EvmContractEventEnvelope(newTriggerLog(t, 7, packBareString(t, "replayed")))

	direct, err := runner.Run(env, codec.ShapeText, launcher.FormatHandler)
	require.NoError(t, err)

	record, err := rlp.EncodeToBytes(&env)
	require.NoError(t, err)

	replayed := trigger.Envelope{}
	require.NoError(t, rlp.DecodeBytes(record, &replayed))

	out, err := runner.Run(replayed, codec.ShapeText, launcher.FormatHandler)
	require.NoError(t, err)
	assert.Equal(t, direct, out, "a captured record replays to the identical result")
}
