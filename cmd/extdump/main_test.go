package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tourze/tls-extension-tls13/tls13errors"
)

func noEnv(string) string { return "" }

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig([]string{"-type", "key_share", "-format", "server_hello", "001d00020102"}, noEnv, io.Discard)
	require.NoError(t, err)
	require.Equal(t, config{ExtensionType: "key_share", Format: "server_hello", HexBody: "001d00020102"}, cfg)

	_, err = parseConfig([]string{"001d"}, noEnv, io.Discard)
	require.ErrorIs(t, err, errUsage)
	_, err = parseConfig([]string{"-type", "early_data", "00", "11"}, noEnv, io.Discard)
	require.ErrorIs(t, err, errUsage)
}

func TestParseConfigEnv(t *testing.T) {
	env := map[string]string{"EXTDUMP_STRICT": "true", "EXTDUMP_DEBUG": "1"}
	cfg, err := parseConfig([]string{"-type", "early_data"}, func(name string) string { return env[name] }, io.Discard)
	require.NoError(t, err)
	require.True(t, cfg.Strict)
	require.True(t, cfg.Debug)
	require.Equal(t, "client_hello", cfg.Format)

	cfg, err = parseConfig([]string{"-type", "early_data", "-strict=false"}, func(name string) string { return env[name] }, io.Discard)
	require.NoError(t, err)
	require.False(t, cfg.Strict)

	env["EXTDUMP_STRICT"] = "maybe"
	_, err = parseConfig([]string{"-type", "early_data"}, func(name string) string { return env[name] }, io.Discard)
	require.ErrorContains(t, err, "EXTDUMP_STRICT")
}

func TestRun(t *testing.T) {
	for name, tc := range map[string]struct {
		cfg    config
		stdin  string
		output string
	}{
		"key share client": {
			cfg:    config{ExtensionType: "key_share", Format: "client_hello", HexBody: "0006001d00020102"},
			output: "key_share (51) ClientHello\n  group=0x001d key_exchange=0102\nencoded: 0006001d00020102\n",
		},
		"key share hrr": {
			cfg:    config{ExtensionType: "key_share", Format: "hello_retry_request", HexBody: "0017"},
			output: "key_share (51) HelloRetryRequest\n  selected_group=0x0017\nencoded: 0017\n",
		},
		"psk server": {
			cfg:    config{ExtensionType: "pre_shared_key", Format: "server_hello", HexBody: "0002"},
			output: "pre_shared_key (41) ServerHello\n  selected_identity=2\nencoded: 0002\n",
		},
		"psk client from stdin": {
			cfg:    config{ExtensionType: "pre_shared_key", Format: "client_hello"},
			stdin:  "0007 0001ab000003e8\n0002 01cd\n",
			output: "pre_shared_key (41) ClientHello\n  identity=ab obfuscated_ticket_age=1000\n  binder=cd\nencoded: 00070001ab000003e8000201cd\n",
		},
		"modes": {
			cfg:    config{ExtensionType: "psk_key_exchange_modes", HexBody: "020001"},
			output: "psk_key_exchange_modes (45)\n  mode=0\n  mode=1\nencoded: 020001\n",
		},
		"early data ticket": {
			cfg:    config{ExtensionType: "early_data", Format: "new_session_ticket", HexBody: "00004000"},
			output: "early_data (42) NewSessionTicket\n  max_early_data_size=16384\nencoded: 00004000\n",
		},
		"early data encrypted extensions": {
			cfg:    config{ExtensionType: "early_data", Format: "encrypted_extensions", HexBody: ""},
			output: "early_data (42) EncryptedExtensions\nencoded: \n",
		},
	} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, run(tc.cfg, strings.NewReader(tc.stdin), &out, zap.NewNop()))
			require.Equal(t, tc.output, out.String())
		})
	}
}

func TestRunErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	err := run(config{ExtensionType: "key_share", Format: "client_hello", HexBody: "0006001d0000"}, strings.NewReader(""), io.Discard, logger)
	require.ErrorIs(t, err, tls13errors.ErrKeyShareClientEntriesLengthMismatch)
	entries := logs.FilterMessage("invalid extension data").All()
	require.Len(t, entries, 1)
	require.Equal(t, "key_share", entries[0].ContextMap()["type"])
	require.Equal(t, 1, logs.FilterMessage("decoding extension").Len())

	err = run(config{ExtensionType: "key_share", Format: "new_session_ticket", HexBody: "00"}, strings.NewReader(""), io.Discard, logger)
	require.ErrorIs(t, err, errUnknownFormat)
	err = run(config{ExtensionType: "pre_shared_key", Format: "encrypted_extensions", HexBody: "00"}, strings.NewReader(""), io.Discard, logger)
	require.ErrorIs(t, err, errUnknownFormat)
	err = run(config{ExtensionType: "early_data", Format: "hello_retry_request", HexBody: "00"}, strings.NewReader(""), io.Discard, logger)
	require.ErrorIs(t, err, errUnknownFormat)
	err = run(config{ExtensionType: "cookie", HexBody: "00"}, strings.NewReader(""), io.Discard, logger)
	require.ErrorIs(t, err, errUnknownExtension)
	err = run(config{ExtensionType: "key_share", HexBody: "zz"}, strings.NewReader(""), io.Discard, logger)
	require.ErrorContains(t, err, "not hex")

	err = run(config{ExtensionType: "early_data", Format: "client_hello", Strict: true, HexBody: "00"}, strings.NewReader(""), io.Discard, logger)
	require.ErrorIs(t, err, tls13errors.ErrInvalidEarlyDataIndicationSize)
}

func TestNewLogger(t *testing.T) {
	for _, debug := range []bool{false, true} {
		logger, err := newLogger(debug)
		require.NoError(t, err)
		require.Equal(t, debug, logger.Core().Enabled(zapcore.DebugLevel))
	}
}
