package format

import (
	"encoding/binary"

	"github.com/tourze/tls-extension-tls13/safecast"
)

func EncodeU16(v uint16) []byte {
	return binary.BigEndian.AppendUint16(nil, v)
}

func AppendUint16(b []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(b, v)
}

func AppendUint32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

// Mark* appends zero length placeholder and returns offset where the
// length-prefixed content starts. Fill* writes len(body)-mark into placeholder.
// Content longer than the prefix allows is a programming error, constructors
// of extension values must prevent it.

func MarkByteOffset(body []byte) ([]byte, int) {
	body = append(body, 0)
	return body, len(body)
}

func FillByteOffset(body []byte, mark int) {
	body[mark-1] = safecast.Cast[byte](len(body) - mark)
}

func MarkUint16Offset(body []byte) ([]byte, int) {
	body = append(body, 0, 0)
	return body, len(body)
}

func FillUint16Offset(body []byte, mark int) {
	binary.BigEndian.PutUint16(body[mark-2:], safecast.Cast[uint16](len(body)-mark))
}

func AppendByteLength(body []byte, value []byte) []byte {
	body, mark := MarkByteOffset(body)
	body = append(body, value...)
	FillByteOffset(body, mark)
	return body
}

func AppendUint16Length(body []byte, value []byte) []byte {
	body, mark := MarkUint16Offset(body)
	body = append(body, value...)
	FillUint16Offset(body, mark)
	return body
}
