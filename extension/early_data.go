// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package extension

import (
	"github.com/tourze/tls-extension-tls13/constants"
	"github.com/tourze/tls-extension-tls13/format"
	"github.com/tourze/tls-extension-tls13/tls13errors"
)

type EarlyDataFormat byte

const (
	EarlyDataClientHello EarlyDataFormat = iota
	EarlyDataServerHello
	EarlyDataEncryptedExtensions
	EarlyDataNewSessionTicket
)

func (f EarlyDataFormat) String() string {
	switch f {
	case EarlyDataClientHello:
		return "ClientHello"
	case EarlyDataServerHello:
		return "ServerHello"
	case EarlyDataEncryptedExtensions:
		return "EncryptedExtensions"
	case EarlyDataNewSessionTicket:
		return "NewSessionTicket"
	}
	return "unknown"
}

// [rfc8446:4.2.10] EarlyDataIndication is empty except in NewSessionTicket,
// where it carries max_early_data_size.
type EarlyData struct {
	Format           EarlyDataFormat
	MaxEarlyDataSize uint32 // NewSessionTicket only
}

func NewEarlyData(msgFormat EarlyDataFormat) *EarlyData {
	return &EarlyData{Format: msgFormat}
}

func DecodeEarlyData(body []byte, msgFormat EarlyDataFormat, strict bool) (*EarlyData, error) {
	msg := &EarlyData{}
	if err := msg.Parse(body, msgFormat, strict); err != nil {
		return nil, err
	}
	return msg, nil
}

func (msg *EarlyData) Type() uint16 { return constants.EXTENSION_EARLY_DATA }

func (msg *EarlyData) IsApplicableForVersion(tlsVersion string) bool { return isTLS13(tlsVersion) }

// Parse replaces contents of msg only on success.
// Without strict, bytes of empty indications are ignored, as are bytes after max_early_data_size.
func (msg *EarlyData) Parse(body []byte, msgFormat EarlyDataFormat, strict bool) (err error) {
	result := EarlyData{Format: msgFormat}
	if msgFormat != EarlyDataNewSessionTicket {
		if strict && len(body) != 0 {
			return tls13errors.ErrInvalidEarlyDataIndicationSize
		}
		*msg = result
		return nil
	}
	offset := 0
	if offset, result.MaxEarlyDataSize, err = format.ParserReadUint32(body, offset); err != nil {
		return tls13errors.ErrEarlyDataTicketTooShort
	}
	if strict && offset != len(body) {
		return tls13errors.ErrInvalidEarlyDataIndicationSize
	}
	*msg = result
	return nil
}

func (msg *EarlyData) Write(body []byte) []byte {
	if msg.Format == EarlyDataNewSessionTicket {
		return format.AppendUint32(body, msg.MaxEarlyDataSize)
	}
	return body
}

func (msg *EarlyData) Encode() []byte {
	return msg.Write(nil)
}
