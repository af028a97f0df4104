package format

import (
	"encoding/binary"

	"github.com/tourze/tls-extension-tls13/tls13errors"
)

// All readers return offset unchanged on error and never slice
// past len(body). Lists must be parsed inside the slice returned by
// ParserReadUint16Length/ParserReadByteLength, so entries are bounded
// by the declared list end, not by the end of the whole body.

func ParserReadFinish(body []byte, offset int) error {
	if offset != len(body) {
		return tls13errors.ErrExcessBytes
	}
	return nil
}

func ParserReadByte(body []byte, offset int) (_ int, value byte, err error) {
	if len(body) < offset+1 {
		return offset, 0, tls13errors.ErrTruncatedInput
	}
	return offset + 1, body[offset], nil
}

func ParserReadByteLength(body []byte, offset int) (_ int, value []byte, err error) {
	if len(body) < offset+1 {
		return offset, nil, tls13errors.ErrTruncatedInput
	}
	endOffset := offset + 1 + int(body[offset])
	if len(body) < endOffset {
		return offset, nil, tls13errors.ErrTruncatedInput
	}
	return endOffset, body[offset+1 : endOffset], nil
}

func ParserReadUint16(body []byte, offset int) (_ int, value uint16, err error) {
	if len(body) < offset+2 {
		return offset, 0, tls13errors.ErrTruncatedInput
	}
	return offset + 2, binary.BigEndian.Uint16(body[offset:]), nil
}

func ParserReadUint16Length(body []byte, offset int) (_ int, value []byte, err error) {
	if len(body) < offset+2 {
		return offset, nil, tls13errors.ErrTruncatedInput
	}
	endOffset := offset + 2 + int(binary.BigEndian.Uint16(body[offset:]))
	if len(body) < endOffset {
		return offset, nil, tls13errors.ErrTruncatedInput
	}
	return endOffset, body[offset+2 : endOffset], nil
}

func ParserReadUint32(body []byte, offset int) (_ int, value uint32, err error) {
	if len(body) < offset+4 {
		return offset, 0, tls13errors.ErrTruncatedInput
	}
	return offset + 4, binary.BigEndian.Uint32(body[offset:]), nil
}

// DecodeU16 is ParserReadUint16 with value first, for callers
// which think of it as a decoder rather than a cursor step.
func DecodeU16(buf []byte, offset int) (value uint16, newOffset int, err error) {
	newOffset, value, err = ParserReadUint16(buf, offset)
	return value, newOffset, err
}

// Result is copied, so it does not alias body. Empty value gives nil.
func CloneBytes(value []byte) []byte {
	if len(value) == 0 {
		return nil
	}
	return append(make([]byte, 0, len(value)), value...)
}
