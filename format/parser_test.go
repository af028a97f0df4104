package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tourze/tls-extension-tls13/tls13errors"
)

func TestDecodeU16(t *testing.T) {
	value, offset, err := DecodeU16([]byte{0xAB, 0x12, 0x34}, 1)
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), value)
	require.Equal(t, 3, offset)

	_, offset, err = DecodeU16([]byte{0xAB, 0x12}, 1)
	require.ErrorIs(t, err, tls13errors.ErrTruncatedInput)
	require.ErrorIs(t, err, tls13errors.ErrInvalidExtensionData)
	require.Equal(t, 1, offset)
}

func TestEncodeU16(t *testing.T) {
	require.Equal(t, []byte{0x00, 0x00}, EncodeU16(0))
	require.Equal(t, []byte{0xFF, 0xFE}, EncodeU16(0xFFFE))
}

func TestParserReadFixedWidth(t *testing.T) {
	body := []byte{0x01, 0x00, 0x00, 0x03, 0xE8}
	offset, b, err := ParserReadByte(body, 0)
	require.NoError(t, err)
	require.Equal(t, byte(1), b)
	offset, v, err := ParserReadUint32(body, offset)
	require.NoError(t, err)
	require.Equal(t, uint32(1000), v)
	require.NoError(t, ParserReadFinish(body, offset))

	_, _, err = ParserReadUint32(body, 2)
	require.ErrorIs(t, err, tls13errors.ErrTruncatedInput)
	_, _, err = ParserReadByte(body, len(body))
	require.ErrorIs(t, err, tls13errors.ErrTruncatedInput)
	require.ErrorIs(t, ParserReadFinish(body, 4), tls13errors.ErrExcessBytes)
}

func TestParserReadLengthPrefixed(t *testing.T) {
	body := []byte{0x00, 0x02, 0xAA, 0xBB, 0x01, 0xCC}
	offset, value, err := ParserReadUint16Length(body, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{0xAA, 0xBB}, value)
	offset, value, err = ParserReadByteLength(body, offset)
	require.NoError(t, err)
	require.Equal(t, []byte{0xCC}, value)
	require.Equal(t, len(body), offset)

	// declared length exceeds what is present
	for i := 0; i < len(body); i++ {
		_, _, err1 := ParserReadUint16Length(body[:i], 0)
		_, _, err2 := ParserReadByteLength(body[:i], 4)
		require.True(t, errors.Is(err1, tls13errors.ErrTruncatedInput) || errors.Is(err2, tls13errors.ErrTruncatedInput))
	}
	_, _, err = ParserReadUint16Length([]byte{0x00, 0x03, 0xAA, 0xBB}, 0)
	require.ErrorIs(t, err, tls13errors.ErrTruncatedInput)
}

func TestWriteLengthPrefixed(t *testing.T) {
	body := AppendUint16Length(nil, []byte{1, 2, 3})
	body = AppendByteLength(body, []byte{4})
	body = AppendUint32(body, 0x01020304)
	require.Equal(t, []byte{0, 3, 1, 2, 3, 1, 4, 1, 2, 3, 4}, body)

	body, mark := MarkUint16Offset(nil)
	FillUint16Offset(body, mark)
	require.Equal(t, []byte{0, 0}, body)

	require.Panics(t, func() {
		AppendByteLength(nil, make([]byte, 256))
	})
	require.Panics(t, func() {
		AppendUint16Length(nil, make([]byte, 0x10000))
	})
}

func TestCloneBytes(t *testing.T) {
	require.Nil(t, CloneBytes(nil))
	src := []byte{1, 2}
	dst := CloneBytes(src)
	src[0] = 9
	require.Equal(t, []byte{1, 2}, dst)
	require.Nil(t, CloneBytes([]byte{}))
}
