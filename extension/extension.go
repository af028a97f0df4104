// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package extension encodes and decodes bodies of TLS 1.3 handshake extensions
// key_share, pre_shared_key, psk_key_exchange_modes and early_data [rfc8446:4.2].
//
// Body is extension_data only, type and length header are owned by the caller.
// Parse methods take strict flag. Without it, parsing is as permissive as RFC allows
// wire-wise (bytes after declared content are ignored, counts are not cross-checked).
// With it, RFC 8446 presentation language limits are enforced too.
//
// After parsing, slices inside values are copies, so body may be reused.
// Empty opaque values and lists are decoded as nil, so values built with nil
// round-trip exactly.
package extension

import (
	"github.com/tourze/tls-extension-tls13/constants"
	"github.com/tourze/tls-extension-tls13/format"
)

// Extension is what the extension dispatch framework needs from each codec.
type Extension interface {
	Type() uint16
	IsApplicableForVersion(tlsVersion string) bool
	// Write appends encoded body to body and returns it. Never fails,
	// values which do not fit wire format are rejected when constructed.
	Write(body []byte) []byte
}

var _ Extension = (*KeyShare)(nil)
var _ Extension = (*PreSharedKey)(nil)
var _ Extension = (*PSKKeyExchangeModes)(nil)
var _ Extension = (*EarlyData)(nil)

func isTLS13(tlsVersion string) bool {
	return tlsVersion == constants.TLSVersion13
}

// finish applies trailing bytes policy after body was parsed up to offset.
func finish(body []byte, offset int, strict bool) error {
	if !strict {
		return nil
	}
	return format.ParserReadFinish(body, offset)
}
