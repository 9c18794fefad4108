package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// Input and logging flags shared by the exec and replay commands.
var (
	InputFlag = cli.StringFlag{
		Name:  "input",
		Usage: "Hex-encoded payload (with or without 0x prefix)",
	}
	InputFileFlag = cli.StringFlag{
		Name:  "input.file",
		Usage: "Read the payload from a file instead of --input",
	}
	ShapeFlag = cli.StringFlag{
		Name:  "shape",
		Usage: "Expected payload shape (raw|text|address)",
		Value: "raw",
	}
	RecordFlag = cli.StringFlag{
		Name:  "record",
		Usage: "File holding an RLP-wrapped envelope record to replay",
	}
	LogJSONFlag = cli.BoolFlag{
		Name:  "log.json",
		Usage: "Format logs as JSON",
	}
	LogVerbosityFlag = cli.IntFlag{
		Name:  "log.verbosity",
		Usage: "Logging verbosity (0=panic,1=fatal,2=error,3=warn,4=info,5=debug,6=trace)",
		Value: 4,
	}
	SentryDSNFlag = cli.StringFlag{
		Name:  "sentry.dsn",
		Usage: "Sentry DSN for error reporting (disabled when empty)",
	}
)

// CommonFlags returns the base set of CLI flags shared across commands.
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		LogJSONFlag,
		LogVerbosityFlag,
		SentryDSNFlag,
	}
}
