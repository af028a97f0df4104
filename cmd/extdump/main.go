// extdump decodes TLS 1.3 extension body given in hex, prints it
// and the canonical re-encoding.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tourze/tls-extension-tls13/tls13errors"
)

func readBody(cfg config, stdin io.Reader) ([]byte, error) {
	text := cfg.HexBody
	if text == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}
	text = strings.Join(strings.Fields(text), "")
	body, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("body is not hex: %w", err)
	}
	return body, nil
}

func run(cfg config, stdin io.Reader, stdout io.Writer, logger *zap.Logger) error {
	body, err := readBody(cfg, stdin)
	if err != nil {
		return err
	}
	logger.Debug("decoding extension",
		zap.String("type", cfg.ExtensionType),
		zap.String("format", cfg.Format),
		zap.Bool("strict", cfg.Strict),
		zap.Int("body_length", len(body)))
	ext, err := decode(cfg.ExtensionType, cfg.Format, body, cfg.Strict)
	if err != nil {
		var extErr *tls13errors.Error
		if errors.As(err, &extErr) {
			logger.Error("invalid extension data",
				zap.String("type", cfg.ExtensionType),
				zap.String("format", cfg.Format),
				zap.Int("code", extErr.Code()),
				zap.String("reason", extErr.Reason()))
		}
		return err
	}
	describe(stdout, ext)
	fmt.Fprintf(stdout, "encoded: %s\n", hex.EncodeToString(ext.Write(nil)))
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "extdump: loading .env: %v\n", err)
	}
	cfg, err := parseConfig(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "extdump: logger: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, os.Stdin, os.Stdout, logger); err != nil {
		logger.Error("extdump failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
