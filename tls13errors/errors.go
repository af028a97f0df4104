package tls13errors

import (
	"fmt"
)

// we do not allocation on error returning path,
// so all errors are completely static

// Error is the single kind returned by extension decoders.
// All values match ErrInvalidExtensionData with errors.Is.
type Error struct {
	code int
	text string
}

func (e *Error) Error() string {
	return fmt.Sprintf("tls13 invalid extension data: %d %s", e.code, e.text)
}

func (e *Error) Code() int { return e.code }

func (e *Error) Reason() string { return e.text }

func (e *Error) Is(target error) bool {
	return target == ErrInvalidExtensionData
}

func NewInvalidExtensionData(code int, text string) error {
	return &Error{
		code: code,
		text: text,
	}
}

var ErrInvalidExtensionData = NewInvalidExtensionData(-600, "invalid extension data")

var ErrTruncatedInput = NewInvalidExtensionData(-601, "truncated input")
var ErrExcessBytes = NewInvalidExtensionData(-602, "excess bytes after extension body")

var ErrKeyShareServerTooShort = NewInvalidExtensionData(-610, "key_share server extension data too short")
var ErrKeyShareServerKeyExchangeIncomplete = NewInvalidExtensionData(-611, "key_share server extension key exchange data incomplete")
var ErrKeyShareClientTooShort = NewInvalidExtensionData(-612, "key_share client extension data too short")
var ErrKeyShareClientEntriesLengthMismatch = NewInvalidExtensionData(-613, "key_share client extension entries length mismatch")
var ErrKeyShareClientEntryHeaderIncomplete = NewInvalidExtensionData(-614, "key_share client extension entry header incomplete")
var ErrKeyShareClientKeyExchangeIncomplete = NewInvalidExtensionData(-615, "key_share client extension key exchange data incomplete")
var ErrKeyShareHRRTooShort = NewInvalidExtensionData(-616, "key_share HelloRetryRequest must contain selected group")
var ErrKeyShareEmptyKeyExchange = NewInvalidExtensionData(-617, "key_share key exchange must not be empty")
var ErrKeyShareDuplicateGroup = NewInvalidExtensionData(-618, "key_share client extension offers same group twice")
var ErrKeyShareX25519WrongFormat = NewInvalidExtensionData(-619, "key_share x25519 public key has wrong format")
var ErrKeyShareX448WrongFormat = NewInvalidExtensionData(-620, "key_share x448 public key has wrong format")
var ErrKeyShareECDHEWrongFormat = NewInvalidExtensionData(-621, "key_share ecdhe public key must be uncompressed point")

var ErrPSKServerTooShort = NewInvalidExtensionData(-630, "pre_shared_key server extension data too short")
var ErrPSKClientTooShort = NewInvalidExtensionData(-631, "pre_shared_key client extension data too short")
var ErrPSKIdentitiesLengthMismatch = NewInvalidExtensionData(-632, "pre_shared_key client extension identities length mismatch")
var ErrPSKIdentityLengthIncomplete = NewInvalidExtensionData(-633, "pre_shared_key client extension identity length field incomplete")
var ErrPSKIdentityDataIncomplete = NewInvalidExtensionData(-634, "pre_shared_key client extension identity data incomplete")
var ErrPSKBindersLengthMissing = NewInvalidExtensionData(-635, "pre_shared_key client extension binders length field missing")
var ErrPSKBindersLengthMismatch = NewInvalidExtensionData(-636, "pre_shared_key client extension binders length mismatch")
var ErrPSKBinderDataIncomplete = NewInvalidExtensionData(-638, "pre_shared_key client extension binder data incomplete")
var ErrPSKNoIdentities = NewInvalidExtensionData(-639, "pre_shared_key client extension must offer at least one identity")
var ErrPSKEmptyIdentity = NewInvalidExtensionData(-640, "pre_shared_key identity must not be empty")
var ErrPSKBindersMismatch = NewInvalidExtensionData(-641, "there must be equal number of identities and binders")
var ErrPSKBinderTooShort = NewInvalidExtensionData(-642, "pre_shared_key binder shorter than 32 bytes")

var ErrPSKModesTooShort = NewInvalidExtensionData(-650, "psk_key_exchange_modes extension data too short")
var ErrPSKModesListIncomplete = NewInvalidExtensionData(-651, "psk_key_exchange_modes list incomplete")
var ErrPSKModesEmpty = NewInvalidExtensionData(-652, "psk_key_exchange_modes must contain at least one mode")

var ErrEarlyDataTicketTooShort = NewInvalidExtensionData(-660, "early_data new session ticket extension data too short")
var ErrInvalidEarlyDataIndicationSize = NewInvalidExtensionData(-661, "invalid early_data indication size")
