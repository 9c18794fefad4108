// Package launcher wires the CLI commands to the invocation pipeline.
package launcher

import (
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/anvdev/cosmic-wavs-sub000/codec"
	"github.com/anvdev/cosmic-wavs-sub000/flags"
	"github.com/anvdev/cosmic-wavs-sub000/runner"
	"github.com/anvdev/cosmic-wavs-sub000/trigger"
	"github.com/anvdev/cosmic-wavs-sub000/utils/safe"
)

// formatDecimals is the fractional precision the built-in handler renders
// integer amounts with (micro-units, matching the USDC/USDT convention).
const formatDecimals = 6

var app = flags.NewApp()

func init() {
	app.Before = func(ctx *cli.Context) error {
		return setupLogging(makeConfig(ctx).Logging)
	}
	app.Commands = []cli.Command{
		{
			Name:   "exec",
			Usage:  "Run the built-in handler on a local payload",
			Flags:  []cli.Flag{flags.InputFlag, flags.InputFileFlag, flags.ShapeFlag},
			Action: execCommand,
		},
		{
			Name:   "replay",
			Usage:  "Re-run the pipeline on a captured envelope record",
			Flags:  []cli.Flag{flags.RecordFlag, flags.ShapeFlag},
			Action: replayCommand,
		},
	}
}

// Launch parses flags and runs the selected command.
func Launch(args []string) error {
	return app.Run(args)
}

func setupLogging(cfg LoggingConfig) error {
	if cfg.Verbosity < 0 || cfg.Verbosity > int(logrus.TraceLevel) {
		return fmt.Errorf("log verbosity %d out of range [0,%d]", cfg.Verbosity, int(logrus.TraceLevel))
	}
	logrus.SetLevel(logrus.Level(cfg.Verbosity))
	logrus.SetOutput(os.Stderr)
	if cfg.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return fmt.Errorf("sentry hook: %w", err)
		}
		logrus.AddHook(hook)
	}
	return nil
}

func execCommand(ctx *cli.Context) error {
	shape, err := parseShape(ctx.String("shape"))
	if err != nil {
		return err
	}
	payload, err := readPayload(ctx)
	if err != nil {
		return err
	}
	if shape == codec.ShapeRaw {
		// local text input arrives NUL-padded from fixed-width buffers
		payload = safe.TrimRightZeros(payload)
	}

	out, err := runner.Run(trigger.RawInvocationEnvelope(payload), shape, FormatHandler)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func replayCommand(ctx *cli.Context) error {
	if !ctx.IsSet("record") {
		return fmt.Errorf("--record is required")
	}
	raw, err := os.ReadFile(ctx.String("record"))
	if err != nil {
		return fmt.Errorf("read record: %w", err)
	}
	env := trigger.Envelope{}
	if err := rlp.DecodeBytes(raw, &env); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	shape, err := parseShape(ctx.String("shape"))
	if err != nil {
		return err
	}

	out, err := runner.Run(env, shape, FormatHandler)
	if err != nil {
		return err
	}
	if env.Origin() == trigger.OriginRawInvocation {
		_, err = os.Stdout.Write(out)
		return err
	}
	// on-chain records are binary, print them hex-encoded
	_, err = fmt.Fprintln(os.Stdout, hexutil.Encode(out))
	return err
}

// FormatHandler is the built-in echo/format handler.
//
// Text that parses as a non-negative integer is treated as a micro-unit
// amount and rendered as a decimal number. Any other text is echoed, an
// address is rendered in checksummed hex and raw bytes pass through.
func FormatHandler(req trigger.DecodedRequest, val codec.Value) ([]byte, error) {
	switch val.Kind() {
	case codec.KindText:
		text := val.Text()
		if amount, ok := new(big.Int).SetString(text, 10); ok && amount.Sign() >= 0 {
			return []byte(safe.FormatUnits(amount, formatDecimals)), nil
		}
		return []byte(text), nil
	case codec.KindAddress:
		return []byte(val.Address().Hex()), nil
	case codec.KindRaw:
		return val.Raw(), nil
	default:
		return nil, fmt.Errorf("unhandled value kind %d", val.Kind())
	}
}
