// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package extension

import (
	"errors"
	"slices"

	"github.com/tourze/tls-extension-tls13/constants"
	"github.com/tourze/tls-extension-tls13/format"
	"github.com/tourze/tls-extension-tls13/safecast"
	"github.com/tourze/tls-extension-tls13/tls13errors"
)

var ErrPSKModesTooMany = errors.New("psk_key_exchange_modes list does not fit 8-bit length")

// Same body is used in both directions, though only clients send it [rfc8446:4.2.9].
// Unknown modes are kept as is, so re-encoding is lossless.
type PSKKeyExchangeModes struct {
	Modes []constants.PSKMode
}

func NewPSKKeyExchangeModes(modes ...constants.PSKMode) (*PSKKeyExchangeModes, error) {
	if !safecast.Fits(len(modes), constants.MaxUint8Length) {
		return nil, ErrPSKModesTooMany
	}
	return &PSKKeyExchangeModes{Modes: modes}, nil
}

func DecodePSKKeyExchangeModes(body []byte, strict bool) (*PSKKeyExchangeModes, error) {
	msg := &PSKKeyExchangeModes{}
	if err := msg.Parse(body, strict); err != nil {
		return nil, err
	}
	return msg, nil
}

func (msg *PSKKeyExchangeModes) Type() uint16 { return constants.EXTENSION_PSK_KEY_EXCHANGE_MODES }

func (msg *PSKKeyExchangeModes) IsApplicableForVersion(tlsVersion string) bool {
	return isTLS13(tlsVersion)
}

func (msg *PSKKeyExchangeModes) Has(mode constants.PSKMode) bool {
	return slices.Contains(msg.Modes, mode)
}

func (msg *PSKKeyExchangeModes) AddMode(mode constants.PSKMode) error {
	if len(msg.Modes) >= constants.MaxUint8Length {
		return ErrPSKModesTooMany
	}
	msg.Modes = append(msg.Modes, mode)
	return nil
}

// Parse replaces contents of msg only on success.
func (msg *PSKKeyExchangeModes) Parse(body []byte, strict bool) (err error) {
	if len(body) < 1 {
		return tls13errors.ErrPSKModesTooShort
	}
	offset := 0
	var insideBody []byte
	if offset, insideBody, err = format.ParserReadByteLength(body, offset); err != nil {
		return tls13errors.ErrPSKModesListIncomplete
	}
	if strict && len(insideBody) == 0 {
		return tls13errors.ErrPSKModesEmpty // psk_ke_modes<1..255>
	}
	if err := finish(body, offset, strict); err != nil {
		return err
	}
	var modes []constants.PSKMode
	for _, mode := range insideBody {
		modes = append(modes, constants.PSKMode(mode))
	}
	msg.Modes = modes
	return nil
}

func (msg *PSKKeyExchangeModes) Write(body []byte) []byte {
	body, mark := format.MarkByteOffset(body)
	for _, mode := range msg.Modes {
		body = append(body, byte(mode))
	}
	format.FillByteOffset(body, mark)
	return body
}

func (msg *PSKKeyExchangeModes) Encode() []byte {
	return msg.Write(nil)
}
