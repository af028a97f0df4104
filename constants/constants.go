// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package constants

// The only protocol version extensions in this module are legal for,
// in the textual form used by the extension dispatch framework.
const TLSVersion13 = "1.3"

// IANA TLS ExtensionType values [rfc8446:4.2]
const (
	EXTENSION_PRE_SHARED_KEY         = 0x0029
	EXTENSION_EARLY_DATA             = 0x002a
	EXTENSION_PSK_KEY_EXCHANGE_MODES = 0x002d
	EXTENSION_KEY_SHARE              = 0x0033
)

// NamedGroup values we know key_exchange sizes for [rfc8446:4.2.7]
const (
	SupportedGroup_SECP256R1 = 0x0017
	SupportedGroup_SECP384R1 = 0x0018
	SupportedGroup_SECP521R1 = 0x0019
	SupportedGroup_X25519    = 0x001d
	SupportedGroup_X448      = 0x001e
)

// Uncompressed point sizes including the leading 4 [rfc8446:4.2.8.2]
const (
	SECP256R1UncompressedPointSize = 65
	SECP384R1UncompressedPointSize = 97
	SECP521R1UncompressedPointSize = 133
	X448PointSize                  = 56
)

type PSKMode byte

// [rfc8446:4.2.9]
const (
	PSK_Mode_PSK_KE     PSKMode = 0
	PSK_Mode_PSK_DHE_KE PSKMode = 1
)

// Binder is HMAC output, so shortest is 32 bytes for SHA-256 [rfc8446:4.2.11]
const MinPSKBinderLength = 32
const MaxPSKBinderLength = 0xFF

const MaxUint8Length = 0xFF
const MaxUint16Length = 0xFFFF
