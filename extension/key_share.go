// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package extension

import (
	"errors"

	"golang.org/x/crypto/curve25519"

	"github.com/tourze/tls-extension-tls13/constants"
	"github.com/tourze/tls-extension-tls13/format"
	"github.com/tourze/tls-extension-tls13/safecast"
	"github.com/tourze/tls-extension-tls13/tls13errors"
)

type KeyShareFormat byte

const (
	KeyShareClientHello KeyShareFormat = iota
	KeyShareServerHello
	// [rfc8446:4.2.8] HelloRetryRequest carries only selected group
	KeyShareHelloRetryRequest
)

func (f KeyShareFormat) String() string {
	switch f {
	case KeyShareClientHello:
		return "ClientHello"
	case KeyShareServerHello:
		return "ServerHello"
	case KeyShareHelloRetryRequest:
		return "HelloRetryRequest"
	}
	return "unknown"
}

var ErrKeyExchangeTooLong = errors.New("key_share key exchange does not fit 16-bit length")
var ErrKeyShareListTooLong = errors.New("key_share client entries do not fit 16-bit length")
var ErrKeyShareServerSingleEntry = errors.New("key_share server format holds exactly one entry")
var ErrKeyShareHRRNoEntries = errors.New("key_share HelloRetryRequest format holds selected group only")

type KeyShareEntry struct {
	Group       uint16
	KeyExchange []byte
}

func NewKeyShareEntry(group uint16, keyExchange []byte) (KeyShareEntry, error) {
	if !safecast.Fits(len(keyExchange), constants.MaxUint16Length) {
		return KeyShareEntry{}, ErrKeyExchangeTooLong
	}
	return KeyShareEntry{Group: group, KeyExchange: keyExchange}, nil
}

func (entry *KeyShareEntry) size() int {
	return 4 + len(entry.KeyExchange)
}

func (entry *KeyShareEntry) write(body []byte) []byte {
	body = format.AppendUint16(body, entry.Group)
	return format.AppendUint16Length(body, entry.KeyExchange)
}

// [rfc8446:4.2.8.1] and [rfc8446:4.2.8.2], unknown groups are only checked for emptiness
func (entry *KeyShareEntry) validate() error {
	switch entry.Group {
	case constants.SupportedGroup_X25519:
		if len(entry.KeyExchange) != curve25519.PointSize {
			return tls13errors.ErrKeyShareX25519WrongFormat
		}
	case constants.SupportedGroup_X448:
		if len(entry.KeyExchange) != constants.X448PointSize {
			return tls13errors.ErrKeyShareX448WrongFormat
		}
	case constants.SupportedGroup_SECP256R1:
		return validateUncompressedPoint(entry.KeyExchange, constants.SECP256R1UncompressedPointSize)
	case constants.SupportedGroup_SECP384R1:
		return validateUncompressedPoint(entry.KeyExchange, constants.SECP384R1UncompressedPointSize)
	case constants.SupportedGroup_SECP521R1:
		return validateUncompressedPoint(entry.KeyExchange, constants.SECP521R1UncompressedPointSize)
	}
	if len(entry.KeyExchange) == 0 {
		return tls13errors.ErrKeyShareEmptyKeyExchange
	}
	return nil
}

func validateUncompressedPoint(point []byte, size int) error {
	if len(point) != size || point[0] != 4 {
		return tls13errors.ErrKeyShareECDHEWrongFormat
	}
	return nil
}

type KeyShare struct {
	Format KeyShareFormat

	// client preference order for ClientHello, single entry for ServerHello
	Entries []KeyShareEntry

	// HelloRetryRequest only
	SelectedGroup uint16
}

func NewKeyShare(msgFormat KeyShareFormat) *KeyShare {
	return &KeyShare{Format: msgFormat}
}

func DecodeKeyShare(body []byte, msgFormat KeyShareFormat, strict bool) (*KeyShare, error) {
	msg := &KeyShare{}
	if err := msg.Parse(body, msgFormat, strict); err != nil {
		return nil, err
	}
	return msg, nil
}

func (msg *KeyShare) Type() uint16 { return constants.EXTENSION_KEY_SHARE }

func (msg *KeyShare) IsApplicableForVersion(tlsVersion string) bool { return isTLS13(tlsVersion) }

func (msg *KeyShare) IsServerFormat() bool { return msg.Format != KeyShareClientHello }

func (msg *KeyShare) AddEntry(entry KeyShareEntry) error {
	if !safecast.Fits(len(entry.KeyExchange), constants.MaxUint16Length) {
		return ErrKeyExchangeTooLong
	}
	switch msg.Format {
	case KeyShareServerHello:
		if len(msg.Entries) != 0 {
			return ErrKeyShareServerSingleEntry
		}
	case KeyShareHelloRetryRequest:
		return ErrKeyShareHRRNoEntries
	default:
		size := entry.size()
		for i := range msg.Entries {
			size += msg.Entries[i].size()
		}
		if size > constants.MaxUint16Length {
			return ErrKeyShareListTooLong
		}
	}
	msg.Entries = append(msg.Entries, entry)
	return nil
}

// EntryByGroup returns first entry with group, in insertion order.
func (msg *KeyShare) EntryByGroup(group uint16) (KeyShareEntry, bool) {
	for _, entry := range msg.Entries {
		if entry.Group == group {
			return entry, true
		}
	}
	return KeyShareEntry{}, false
}

func parseKeyShareEntry(body []byte, offset int) (_ int, entry KeyShareEntry, err error) {
	if len(body) < offset+4 {
		return offset, entry, tls13errors.ErrKeyShareClientEntryHeaderIncomplete
	}
	if offset, entry.Group, err = format.ParserReadUint16(body, offset); err != nil {
		return offset, entry, tls13errors.ErrKeyShareClientEntryHeaderIncomplete
	}
	var keyExchange []byte
	if offset, keyExchange, err = format.ParserReadUint16Length(body, offset); err != nil {
		return offset, entry, tls13errors.ErrKeyShareClientKeyExchangeIncomplete
	}
	entry.KeyExchange = format.CloneBytes(keyExchange)
	return offset, entry, nil
}

// entriesBody is exactly the declared client_shares vector
func (msg *KeyShare) parseEntries(entriesBody []byte, strict bool) (err error) {
	offset := 0
	for offset < len(entriesBody) {
		var entry KeyShareEntry
		if offset, entry, err = parseKeyShareEntry(entriesBody, offset); err != nil {
			return err
		}
		if strict {
			if err := entry.validate(); err != nil {
				return err
			}
			// [rfc8446:4.2.8] Clients MUST NOT offer multiple KeyShareEntry values for the same group
			if _, ok := msg.EntryByGroup(entry.Group); ok {
				return tls13errors.ErrKeyShareDuplicateGroup
			}
		}
		msg.Entries = append(msg.Entries, entry)
	}
	return nil
}

func (msg *KeyShare) parseServer(body []byte, strict bool) (offset int, err error) {
	if len(body) < 4 {
		return 0, tls13errors.ErrKeyShareServerTooShort
	}
	var entry KeyShareEntry
	if offset, entry.Group, err = format.ParserReadUint16(body, offset); err != nil {
		return offset, tls13errors.ErrKeyShareServerTooShort
	}
	var keyExchange []byte
	if offset, keyExchange, err = format.ParserReadUint16Length(body, offset); err != nil {
		return offset, tls13errors.ErrKeyShareServerKeyExchangeIncomplete
	}
	entry.KeyExchange = format.CloneBytes(keyExchange)
	if strict {
		if err := entry.validate(); err != nil {
			return offset, err
		}
	}
	msg.Entries = append(msg.Entries, entry)
	return offset, nil
}

func (msg *KeyShare) parseClient(body []byte, strict bool) (offset int, err error) {
	if len(body) < 2 {
		return 0, tls13errors.ErrKeyShareClientTooShort
	}
	var entriesBody []byte
	if offset, entriesBody, err = format.ParserReadUint16Length(body, offset); err != nil {
		return offset, tls13errors.ErrKeyShareClientEntriesLengthMismatch
	}
	return offset, msg.parseEntries(entriesBody, strict)
}

// Parse replaces contents of msg only on success.
func (msg *KeyShare) Parse(body []byte, msgFormat KeyShareFormat, strict bool) (err error) {
	result := KeyShare{Format: msgFormat}
	var offset int
	switch msgFormat {
	case KeyShareHelloRetryRequest:
		if offset, result.SelectedGroup, err = format.ParserReadUint16(body, offset); err != nil {
			return tls13errors.ErrKeyShareHRRTooShort
		}
	case KeyShareServerHello:
		offset, err = result.parseServer(body, strict)
	default:
		offset, err = result.parseClient(body, strict)
	}
	if err != nil {
		return err
	}
	if err := finish(body, offset, strict); err != nil {
		return err
	}
	*msg = result
	return nil
}

func (msg *KeyShare) Write(body []byte) []byte {
	switch msg.Format {
	case KeyShareHelloRetryRequest:
		return format.AppendUint16(body, msg.SelectedGroup)
	case KeyShareServerHello:
		if len(msg.Entries) != 1 {
			panic("server hello must contain single selected key_share")
		}
		return msg.Entries[0].write(body)
	}
	body, mark := format.MarkUint16Offset(body)
	for i := range msg.Entries {
		body = msg.Entries[i].write(body)
	}
	format.FillUint16Offset(body, mark)
	return body
}

func (msg *KeyShare) Encode() []byte {
	return msg.Write(nil)
}
