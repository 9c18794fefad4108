// This file maps CLI context to the launcher's runtime configuration.

package launcher

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/urfave/cli.v1"

	"github.com/anvdev/cosmic-wavs-sub000/codec"
)

// Config aggregates everything the launcher needs for one run.
type Config struct {
	Logging LoggingConfig
}

type LoggingConfig struct {
	Verbosity int
	JSON      bool
	SentryDSN string
}

func makeConfig(ctx *cli.Context) Config {
	return Config{
		Logging: LoggingConfig{
			Verbosity: ctx.GlobalInt("log.verbosity"),
			JSON:      ctx.GlobalBool("log.json"),
			SentryDSN: ctx.GlobalString("sentry.dsn"),
		},
	}
}

// parseShape maps the --shape flag value to a decoder shape.
func parseShape(raw string) (codec.Shape, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "raw":
		return codec.ShapeRaw, nil
	case "text":
		return codec.ShapeText, nil
	case "address":
		return codec.ShapeAddress, nil
	default:
		return 0, fmt.Errorf("unknown shape %q (want raw|text|address)", raw)
	}
}

// readPayload resolves the exec payload: --input hex, --input.file contents,
// or stdin when neither flag is set.
func readPayload(ctx *cli.Context) ([]byte, error) {
	if ctx.IsSet("input") && ctx.IsSet("input.file") {
		return nil, fmt.Errorf("--input and --input.file are mutually exclusive")
	}
	if ctx.IsSet("input") {
		return decodeHexInput(ctx.String("input"))
	}
	if ctx.IsSet("input.file") {
		payload, err := os.ReadFile(ctx.String("input.file"))
		if err != nil {
			return nil, fmt.Errorf("read input file: %w", err)
		}
		return payload, nil
	}
	payload, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return payload, nil
}

func decodeHexInput(raw string) ([]byte, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	payload, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode --input hex: %w", err)
	}
	return payload, nil
}
