package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
)

type config struct {
	ExtensionType string
	Format        string
	Strict        bool
	Debug         bool
	HexBody       string // empty means read from stdin
}

var errUsage = errors.New("usage: extdump -type <extension> [-format <message>] [-strict] [-debug] [hex body]")

func envBool(getenv func(string) string, name string) (bool, error) {
	value := getenv(name)
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("environment variable %s: %w", name, err)
	}
	return b, nil
}

// flags win over EXTDUMP_* environment, which may come from .env file
func parseConfig(args []string, getenv func(string) string, output io.Writer) (cfg config, err error) {
	var strictDefault, debugDefault bool
	if strictDefault, err = envBool(getenv, "EXTDUMP_STRICT"); err != nil {
		return cfg, err
	}
	if debugDefault, err = envBool(getenv, "EXTDUMP_DEBUG"); err != nil {
		return cfg, err
	}
	fs := flag.NewFlagSet("extdump", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.ExtensionType, "type", "", "key_share, pre_shared_key, psk_key_exchange_modes or early_data")
	fs.StringVar(&cfg.Format, "format", "client_hello",
		"client_hello, server_hello, hello_retry_request, encrypted_extensions or new_session_ticket")
	fs.BoolVar(&cfg.Strict, "strict", strictDefault, "enforce RFC 8446 limits and reject trailing bytes")
	fs.BoolVar(&cfg.Debug, "debug", debugDefault, "development logging")
	if err = fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.ExtensionType == "" || fs.NArg() > 1 {
		return cfg, errUsage
	}
	cfg.HexBody = fs.Arg(0)
	return cfg, nil
}
