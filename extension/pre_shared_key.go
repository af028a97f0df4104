// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package extension

import (
	"errors"

	"github.com/tourze/tls-extension-tls13/constants"
	"github.com/tourze/tls-extension-tls13/format"
	"github.com/tourze/tls-extension-tls13/safecast"
	"github.com/tourze/tls-extension-tls13/tls13errors"
)

type PreSharedKeyFormat byte

const (
	PreSharedKeyClientHello PreSharedKeyFormat = iota
	PreSharedKeyServerHello
)

func (f PreSharedKeyFormat) String() string {
	switch f {
	case PreSharedKeyClientHello:
		return "ClientHello"
	case PreSharedKeyServerHello:
		return "ServerHello"
	}
	return "unknown"
}

var ErrPSKIdentityTooLong = errors.New("pre_shared_key identity does not fit 16-bit length")
var ErrPSKIdentitiesTooLong = errors.New("pre_shared_key identities do not fit 16-bit length")
var ErrPSKBinderTooLong = errors.New("pre_shared_key binder does not fit 8-bit length")
var ErrPSKBindersTooLong = errors.New("pre_shared_key binders do not fit 16-bit length")
var ErrPSKServerFormat = errors.New("pre_shared_key server format carries selected identity only")

type PSKIdentity struct {
	Identity            []byte
	ObfuscatedTicketAge uint32
}

func (identity *PSKIdentity) size() int {
	return 2 + len(identity.Identity) + 4
}

func (identity *PSKIdentity) write(body []byte) []byte {
	body = format.AppendUint16Length(body, identity.Identity)
	return format.AppendUint32(body, identity.ObfuscatedTicketAge)
}

func parsePSKIdentity(body []byte, offset int) (_ int, identity PSKIdentity, err error) {
	var value []byte
	if offset, value, err = format.ParserReadUint16Length(body, offset); err != nil {
		if len(body) < offset+2 {
			return offset, identity, tls13errors.ErrPSKIdentityLengthIncomplete
		}
		return offset, identity, tls13errors.ErrPSKIdentityDataIncomplete
	}
	if offset, identity.ObfuscatedTicketAge, err = format.ParserReadUint32(body, offset); err != nil {
		return offset, identity, tls13errors.ErrPSKIdentityDataIncomplete
	}
	identity.Identity = format.CloneBytes(value)
	return offset, identity, nil
}

// Identities and Binders are separate vectors on the wire [rfc8446:4.2.11],
// so that binders can be excluded from the partial transcript hash.
// They are paired by position, which is checked only by strict parsing.
type PreSharedKey struct {
	Format PreSharedKeyFormat

	Identities []PSKIdentity
	Binders    [][]byte

	// ServerHello only
	SelectedIdentity uint16
}

func NewPreSharedKey(msgFormat PreSharedKeyFormat) *PreSharedKey {
	return &PreSharedKey{Format: msgFormat}
}

func DecodePreSharedKey(body []byte, msgFormat PreSharedKeyFormat, strict bool) (*PreSharedKey, error) {
	msg := &PreSharedKey{}
	if err := msg.Parse(body, msgFormat, strict); err != nil {
		return nil, err
	}
	return msg, nil
}

func (msg *PreSharedKey) Type() uint16 { return constants.EXTENSION_PRE_SHARED_KEY }

func (msg *PreSharedKey) IsApplicableForVersion(tlsVersion string) bool { return isTLS13(tlsVersion) }

func (msg *PreSharedKey) IsServerFormat() bool { return msg.Format == PreSharedKeyServerHello }

func (msg *PreSharedKey) identitiesSize() int {
	size := 0
	for i := range msg.Identities {
		size += msg.Identities[i].size()
	}
	return size
}

func (msg *PreSharedKey) bindersSize() int {
	size := 0
	for _, binder := range msg.Binders {
		size += 1 + len(binder)
	}
	return size
}

func (msg *PreSharedKey) AddIdentity(identity PSKIdentity) error {
	if msg.Format == PreSharedKeyServerHello {
		return ErrPSKServerFormat
	}
	if !safecast.Fits(len(identity.Identity), constants.MaxUint16Length) {
		return ErrPSKIdentityTooLong
	}
	if msg.identitiesSize()+identity.size() > constants.MaxUint16Length {
		return ErrPSKIdentitiesTooLong
	}
	msg.Identities = append(msg.Identities, identity)
	return nil
}

func (msg *PreSharedKey) AddBinder(binder []byte) error {
	if msg.Format == PreSharedKeyServerHello {
		return ErrPSKServerFormat
	}
	if !safecast.Fits(len(binder), constants.MaxPSKBinderLength) {
		return ErrPSKBinderTooLong
	}
	if msg.bindersSize()+1+len(binder) > constants.MaxUint16Length {
		return ErrPSKBindersTooLong
	}
	msg.Binders = append(msg.Binders, binder)
	return nil
}

// BindersSize is length of encoded binders vector including its 2-byte length.
// Truncated ClientHello used for binder computation [rfc8446:4.2.11.2]
// is the ClientHello without the last BindersSize bytes.
func (msg *PreSharedKey) BindersSize() int {
	if msg.Format == PreSharedKeyServerHello {
		return 0
	}
	return 2 + msg.bindersSize()
}

// identitiesBody is exactly the declared identities vector
func (msg *PreSharedKey) parseIdentities(identitiesBody []byte, strict bool) (err error) {
	offset := 0
	for offset < len(identitiesBody) {
		var identity PSKIdentity
		if offset, identity, err = parsePSKIdentity(identitiesBody, offset); err != nil {
			return err
		}
		if strict && len(identity.Identity) == 0 {
			return tls13errors.ErrPSKEmptyIdentity
		}
		msg.Identities = append(msg.Identities, identity)
	}
	return nil
}

// bindersBody is exactly the declared binders vector
func (msg *PreSharedKey) parseBinders(bindersBody []byte, strict bool) (err error) {
	offset := 0
	for offset < len(bindersBody) {
		var binder []byte
		// length byte is always present here, as offset < len(bindersBody)
		if offset, binder, err = format.ParserReadByteLength(bindersBody, offset); err != nil {
			return tls13errors.ErrPSKBinderDataIncomplete
		}
		if strict && len(binder) < constants.MinPSKBinderLength {
			return tls13errors.ErrPSKBinderTooShort
		}
		msg.Binders = append(msg.Binders, format.CloneBytes(binder))
	}
	return nil
}

func (msg *PreSharedKey) parseClient(body []byte, strict bool) (offset int, err error) {
	// identities and binders vector lengths at least
	if len(body) < 4 {
		return 0, tls13errors.ErrPSKClientTooShort
	}
	var insideBody []byte
	if offset, insideBody, err = format.ParserReadUint16Length(body, offset); err != nil {
		return offset, tls13errors.ErrPSKIdentitiesLengthMismatch
	}
	if err := msg.parseIdentities(insideBody, strict); err != nil {
		return offset, err
	}
	if len(body) < offset+2 {
		return offset, tls13errors.ErrPSKBindersLengthMissing
	}
	if offset, insideBody, err = format.ParserReadUint16Length(body, offset); err != nil {
		return offset, tls13errors.ErrPSKBindersLengthMismatch
	}
	if err := msg.parseBinders(insideBody, strict); err != nil {
		return offset, err
	}
	if strict {
		if len(msg.Identities) == 0 {
			return offset, tls13errors.ErrPSKNoIdentities
		}
		if len(msg.Identities) != len(msg.Binders) {
			return offset, tls13errors.ErrPSKBindersMismatch
		}
	}
	return offset, nil
}

// Parse replaces contents of msg only on success.
func (msg *PreSharedKey) Parse(body []byte, msgFormat PreSharedKeyFormat, strict bool) (err error) {
	result := PreSharedKey{Format: msgFormat}
	var offset int
	if msgFormat == PreSharedKeyServerHello {
		if offset, result.SelectedIdentity, err = format.ParserReadUint16(body, offset); err != nil {
			return tls13errors.ErrPSKServerTooShort
		}
	} else if offset, err = result.parseClient(body, strict); err != nil {
		return err
	}
	if err := finish(body, offset, strict); err != nil {
		return err
	}
	*msg = result
	return nil
}

func (msg *PreSharedKey) Write(body []byte) []byte {
	if msg.Format == PreSharedKeyServerHello {
		return format.AppendUint16(body, msg.SelectedIdentity)
	}
	var mark int
	body, mark = format.MarkUint16Offset(body)
	for i := range msg.Identities {
		body = msg.Identities[i].write(body)
	}
	format.FillUint16Offset(body, mark)
	body, mark = format.MarkUint16Offset(body)
	for _, binder := range msg.Binders {
		body = format.AppendByteLength(body, binder)
	}
	format.FillUint16Offset(body, mark)
	return body
}

func (msg *PreSharedKey) Encode() []byte {
	return msg.Write(nil)
}
