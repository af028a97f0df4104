package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/tourze/tls-extension-tls13/extension"
)

var errUnknownExtension = errors.New("unknown extension type")
var errUnknownFormat = errors.New("format is not valid for extension")

func decode(extensionType string, msgFormat string, body []byte, strict bool) (extension.Extension, error) {
	switch extensionType {
	case "key_share":
		var f extension.KeyShareFormat
		switch msgFormat {
		case "client_hello":
			f = extension.KeyShareClientHello
		case "server_hello":
			f = extension.KeyShareServerHello
		case "hello_retry_request":
			f = extension.KeyShareHelloRetryRequest
		default:
			return nil, errUnknownFormat
		}
		return extension.DecodeKeyShare(body, f, strict)
	case "pre_shared_key":
		var f extension.PreSharedKeyFormat
		switch msgFormat {
		case "client_hello":
			f = extension.PreSharedKeyClientHello
		case "server_hello":
			f = extension.PreSharedKeyServerHello
		default:
			return nil, errUnknownFormat
		}
		return extension.DecodePreSharedKey(body, f, strict)
	case "psk_key_exchange_modes":
		return extension.DecodePSKKeyExchangeModes(body, strict)
	case "early_data":
		var f extension.EarlyDataFormat
		switch msgFormat {
		case "client_hello":
			f = extension.EarlyDataClientHello
		case "server_hello":
			f = extension.EarlyDataServerHello
		case "encrypted_extensions":
			f = extension.EarlyDataEncryptedExtensions
		case "new_session_ticket":
			f = extension.EarlyDataNewSessionTicket
		default:
			return nil, errUnknownFormat
		}
		return extension.DecodeEarlyData(body, f, strict)
	}
	return nil, errUnknownExtension
}

func describe(w io.Writer, ext extension.Extension) {
	switch msg := ext.(type) {
	case *extension.KeyShare:
		fmt.Fprintf(w, "key_share (%d) %s\n", msg.Type(), msg.Format)
		if msg.Format == extension.KeyShareHelloRetryRequest {
			fmt.Fprintf(w, "  selected_group=0x%04x\n", msg.SelectedGroup)
		}
		for _, entry := range msg.Entries {
			fmt.Fprintf(w, "  group=0x%04x key_exchange=%s\n", entry.Group, hex.EncodeToString(entry.KeyExchange))
		}
	case *extension.PreSharedKey:
		fmt.Fprintf(w, "pre_shared_key (%d) %s\n", msg.Type(), msg.Format)
		if msg.IsServerFormat() {
			fmt.Fprintf(w, "  selected_identity=%d\n", msg.SelectedIdentity)
			return
		}
		for _, identity := range msg.Identities {
			fmt.Fprintf(w, "  identity=%s obfuscated_ticket_age=%d\n",
				hex.EncodeToString(identity.Identity), identity.ObfuscatedTicketAge)
		}
		for _, binder := range msg.Binders {
			fmt.Fprintf(w, "  binder=%s\n", hex.EncodeToString(binder))
		}
	case *extension.PSKKeyExchangeModes:
		fmt.Fprintf(w, "psk_key_exchange_modes (%d)\n", msg.Type())
		for _, mode := range msg.Modes {
			fmt.Fprintf(w, "  mode=%d\n", mode)
		}
	case *extension.EarlyData:
		fmt.Fprintf(w, "early_data (%d) %s\n", msg.Type(), msg.Format)
		if msg.Format == extension.EarlyDataNewSessionTicket {
			fmt.Fprintf(w, "  max_early_data_size=%d\n", msg.MaxEarlyDataSize)
		}
	}
}
