package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/rummy/internal/protocol"
)

func TestBufferPool_GetPut(t *testing.T) {
	t.Parallel()

	buf := GetBuffer()
	require.NotNil(t, buf)
	buf.WriteString("data")
	PutBuffer(buf)

	assert.Zero(t, GetBuffer().Len())
	assert.NotPanics(t, func() { PutBuffer(nil) })
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(protocol.MsgPrompt, protocol.PromptPayload{ID: 3, Text: "keep this card (y/n): "})
	data, err := Encode(msg)
	require.NoError(t, err)
	assert.NotEqual(t, byte('\n'), data[len(data)-1])

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgPrompt, decoded.Type)

	p, err := protocol.ParsePayload[protocol.PromptPayload](decoded)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, "keep this card (y/n): ", p.Text)
}

func TestEncode_DoesNotAliasPool(t *testing.T) {
	t.Parallel()

	first, err := Encode(MustNewMessage(protocol.MsgText, protocol.TextPayload{Text: "first"}))
	require.NoError(t, err)
	_, err = Encode(MustNewMessage(protocol.MsgText, protocol.TextPayload{Text: "second"}))
	require.NoError(t, err)

	assert.Contains(t, string(first), "first")
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("{not json"))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"payload":{}}`))
	assert.Error(t, err)
}
